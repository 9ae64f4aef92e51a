package bitmap

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"
)

// pixelCodec moves one pixel between its memory image and the NRGBA
// exchange space. Multi-byte words are little-endian, floats are IEEE 754.
type pixelCodec struct {
	encode func(dst []byte, c color.NRGBA)
	decode func(src []byte) color.NRGBA
}

// pixelCodecs lists every format with color access. Adding a format means
// adding its entry here; there is no generic fallback.
var pixelCodecs = map[PixelFormat]pixelCodec{
	FormatAlpha8: {
		encode: func(d []byte, c color.NRGBA) { d[0] = c.A },
		decode: func(s []byte) color.NRGBA { return Alpha8{s[0]}.NRGBA() },
	},
	FormatGray8: {
		encode: func(d []byte, c color.NRGBA) { d[0] = NewGray8(c).Y },
		decode: func(s []byte) color.NRGBA { return Gray8{s[0]}.NRGBA() },
	},
	FormatGray16: {
		encode: func(d []byte, c color.NRGBA) { binary.LittleEndian.PutUint16(d, NewGray16(c).Y) },
		decode: func(s []byte) color.NRGBA { return Gray16{binary.LittleEndian.Uint16(s)}.NRGBA() },
	},
	FormatGrayFloat: {
		encode: func(d []byte, c color.NRGBA) { putFloats(d, NewGrayFloat(c).Y) },
		decode: func(s []byte) color.NRGBA { return GrayFloat{getFloat(s, 0)}.NRGBA() },
	},
	FormatBGR565: {
		encode: func(d []byte, c color.NRGBA) { binary.LittleEndian.PutUint16(d, uint16(NewBGR565(c))) },
		decode: func(s []byte) color.NRGBA { return BGR565(binary.LittleEndian.Uint16(s)).NRGBA() },
	},
	FormatBGRA4444: {
		encode: func(d []byte, c color.NRGBA) { binary.LittleEndian.PutUint16(d, uint16(NewBGRA4444(c))) },
		decode: func(s []byte) color.NRGBA { return BGRA4444(binary.LittleEndian.Uint16(s)).NRGBA() },
	},
	FormatBGRA5551: {
		encode: func(d []byte, c color.NRGBA) { binary.LittleEndian.PutUint16(d, uint16(NewBGRA5551(c))) },
		decode: func(s []byte) color.NRGBA { return BGRA5551(binary.LittleEndian.Uint16(s)).NRGBA() },
	},
	FormatRGB24: {
		encode: func(d []byte, c color.NRGBA) { d[0], d[1], d[2] = c.R, c.G, c.B },
		decode: func(s []byte) color.NRGBA { return color.NRGBA{s[0], s[1], s[2], 255} },
	},
	FormatBGR24: {
		encode: func(d []byte, c color.NRGBA) { d[0], d[1], d[2] = c.B, c.G, c.R },
		decode: func(s []byte) color.NRGBA { return color.NRGBA{s[2], s[1], s[0], 255} },
	},
	FormatRGBA32: {
		encode: func(d []byte, c color.NRGBA) { d[0], d[1], d[2], d[3] = c.R, c.G, c.B, c.A },
		decode: func(s []byte) color.NRGBA { return color.NRGBA{s[0], s[1], s[2], s[3]} },
	},
	FormatBGRA32: {
		encode: func(d []byte, c color.NRGBA) { d[0], d[1], d[2], d[3] = c.B, c.G, c.R, c.A },
		decode: func(s []byte) color.NRGBA { return color.NRGBA{s[2], s[1], s[0], s[3]} },
	},
	FormatARGB32: {
		encode: func(d []byte, c color.NRGBA) { d[0], d[1], d[2], d[3] = c.A, c.R, c.G, c.B },
		decode: func(s []byte) color.NRGBA { return color.NRGBA{s[1], s[2], s[3], s[0]} },
	},
	FormatVectorBGR: {
		encode: func(d []byte, c color.NRGBA) {
			p := NewVectorBGR(c)
			putFloats(d, p.B, p.G, p.R)
		},
		decode: func(s []byte) color.NRGBA {
			return VectorBGR{getFloat(s, 0), getFloat(s, 1), getFloat(s, 2)}.NRGBA()
		},
	},
	FormatVectorBGRA: {
		encode: func(d []byte, c color.NRGBA) {
			p := NewVectorBGRA(c)
			putFloats(d, p.B, p.G, p.R, p.A)
		},
		decode: func(s []byte) color.NRGBA {
			return VectorBGRA{getFloat(s, 0), getFloat(s, 1), getFloat(s, 2), getFloat(s, 3)}.NRGBA()
		},
	},
	FormatVectorRGBA: {
		encode: func(d []byte, c color.NRGBA) {
			p := NewVectorRGBA(c)
			putFloats(d, p.R, p.G, p.B, p.A)
		},
		decode: func(s []byte) color.NRGBA {
			return VectorRGBA{getFloat(s, 0), getFloat(s, 1), getFloat(s, 2), getFloat(s, 3)}.NRGBA()
		},
	},
}

func putFloats(d []byte, fs ...float32) {
	for i, f := range fs {
		binary.LittleEndian.PutUint32(d[4*i:], math.Float32bits(f))
	}
}

func getFloat(s []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(s[4*i:]))
}

// SupportsColor reports whether views of format f accept FillColor, ColorAt
// and SetColorAt.
func SupportsColor(f PixelFormat) bool {
	_, ok := pixelCodecs[f]
	return ok
}

func codecFor(f PixelFormat) (pixelCodec, error) {
	pc, ok := pixelCodecs[f]
	if !ok {
		return pixelCodec{}, fmt.Errorf("%w: no color access for %v", ErrFormatUnsupported, f)
	}
	return pc, nil
}

// FillColor converts c to the view's pixel format and writes it to every
// pixel. Formats without a color codec fail with ErrFormatUnsupported.
func (v View) FillColor(c color.Color) error {
	if err := v.checkWritable(); err != nil {
		return err
	}
	pc, err := codecFor(v.layout.format)
	if err != nil {
		return err
	}
	var buf [16]byte
	value := buf[:v.layout.pixelByteSize]
	pc.encode(value, toNRGBA(c))
	return v.SetPixelBytes(value)
}

// ColorAt decodes the pixel at (x, y).
func (v View) ColorAt(x, y int) (color.NRGBA, error) {
	pc, err := codecFor(v.layout.format)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := v.Pixel(x, y)
	if err != nil {
		return color.NRGBA{}, err
	}
	return pc.decode(b), nil
}

// SetColorAt converts c and writes it at (x, y).
func (v View) SetColorAt(x, y int, c color.Color) error {
	pc, err := codecFor(v.layout.format)
	if err != nil {
		return err
	}
	b, err := v.WritablePixel(x, y)
	if err != nil {
		return err
	}
	pc.encode(b, toNRGBA(c))
	return nil
}
