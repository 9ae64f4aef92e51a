package bitmap

import (
	"image/color"
	"math"
)

// Pixel is implemented by the fixed-size pixel element types of this
// package. Each type's memory image matches its PixelFormat; multi-byte
// packed words are little-endian.
type Pixel interface {
	color.Color
	PixelFormat() PixelFormat
	NRGBA() color.NRGBA
}

// Alpha8 is an 8-bit alpha mask pixel.
type Alpha8 struct{ A uint8 }

// Gray8 is an 8-bit luminance pixel.
type Gray8 struct{ Y uint8 }

// Gray16 is a 16-bit luminance pixel.
type Gray16 struct{ Y uint16 }

// GrayFloat is a luminance pixel in the 0..1 range.
type GrayFloat struct{ Y float32 }

// BGR565 packs blue in bits 0-4, green in bits 5-10 and red in bits 11-15.
type BGR565 uint16

// BGRA4444 packs blue, green, red and alpha nibbles from the low bits up.
type BGRA4444 uint16

// BGRA5551 packs 5-bit blue, green and red from the low bits up, with a
// 1-bit alpha in bit 15.
type BGRA5551 uint16

// RGB24 is a 24-bit pixel in R, G, B byte order.
type RGB24 struct{ R, G, B uint8 }

// BGR24 is a 24-bit pixel in B, G, R byte order.
type BGR24 struct{ B, G, R uint8 }

// RGBA32 is a 32-bit pixel in R, G, B, A byte order.
type RGBA32 struct{ R, G, B, A uint8 }

// BGRA32 is a 32-bit pixel in B, G, R, A byte order.
type BGRA32 struct{ B, G, R, A uint8 }

// ARGB32 is a 32-bit pixel in A, R, G, B byte order.
type ARGB32 struct{ A, R, G, B uint8 }

// VectorBGR holds blue, green and red as floats in the 0..1 range.
type VectorBGR struct{ B, G, R float32 }

// VectorBGRA holds blue, green, red and alpha as floats in the 0..1 range.
type VectorBGRA struct{ B, G, R, A float32 }

// VectorRGBA holds red, green, blue and alpha as floats in the 0..1 range.
type VectorRGBA struct{ R, G, B, A float32 }

// toNRGBA converts any color to the non-premultiplied 8-bit color used as
// the common exchange space.
func toNRGBA(c color.Color) color.NRGBA {
	if n, ok := c.(color.NRGBA); ok {
		return n
	}
	if p, ok := c.(Pixel); ok {
		return p.NRGBA()
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// luma8 uses the ITU-R BT.601 weights.
func luma8(c color.NRGBA) uint8 {
	return uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114 + 500) / 1000)
}

func luma16(c color.NRGBA) uint16 {
	return uint16((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) * 257 / 1000)
}

// quantize maps an 8-bit value to a bits-wide value, rounding to nearest.
func quantize(v uint8, bits uint) uint16 {
	maxV := uint32(1)<<bits - 1
	return uint16((uint32(v)*maxV + 127) / 255)
}

// expand maps a bits-wide value back to 8 bits.
func expand(v uint16, bits uint) uint8 {
	maxV := uint32(1)<<bits - 1
	return uint8((uint32(v)*255 + maxV/2) / maxV)
}

func unitToByte(f float32) uint8 {
	if math.IsNaN(float64(f)) || f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(math.Round(float64(f) * 255))
}

func byteToUnit(v uint8) float32 {
	return float32(v) / 255
}

// NewAlpha8 converts c to an Alpha8 pixel.
func NewAlpha8(c color.Color) Alpha8 { return Alpha8{toNRGBA(c).A} }

func (p Alpha8) PixelFormat() PixelFormat  { return FormatAlpha8 }
func (p Alpha8) NRGBA() color.NRGBA        { return color.NRGBA{A: p.A} }
func (p Alpha8) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewGray8 converts c to a Gray8 pixel.
func NewGray8(c color.Color) Gray8 { return Gray8{luma8(toNRGBA(c))} }

func (p Gray8) PixelFormat() PixelFormat  { return FormatGray8 }
func (p Gray8) NRGBA() color.NRGBA        { return color.NRGBA{p.Y, p.Y, p.Y, 255} }
func (p Gray8) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewGray16 converts c to a Gray16 pixel.
func NewGray16(c color.Color) Gray16 { return Gray16{luma16(toNRGBA(c))} }

func (p Gray16) PixelFormat() PixelFormat { return FormatGray16 }
func (p Gray16) NRGBA() color.NRGBA {
	y := uint8((uint32(p.Y)*255 + 32767) / 65535)
	return color.NRGBA{y, y, y, 255}
}
func (p Gray16) RGBA() (r, g, b, a uint32) {
	y := uint32(p.Y)
	return y, y, y, 0xffff
}

// NewGrayFloat converts c to a GrayFloat pixel.
func NewGrayFloat(c color.Color) GrayFloat {
	n := toNRGBA(c)
	return GrayFloat{(0.299*float32(n.R) + 0.587*float32(n.G) + 0.114*float32(n.B)) / 255}
}

func (p GrayFloat) PixelFormat() PixelFormat { return FormatGrayFloat }
func (p GrayFloat) NRGBA() color.NRGBA {
	y := unitToByte(p.Y)
	return color.NRGBA{y, y, y, 255}
}
func (p GrayFloat) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewBGR565 converts c to a BGR565 pixel.
func NewBGR565(c color.Color) BGR565 {
	n := toNRGBA(c)
	return BGR565(quantize(n.B, 5) | quantize(n.G, 6)<<5 | quantize(n.R, 5)<<11)
}

func (p BGR565) PixelFormat() PixelFormat { return FormatBGR565 }
func (p BGR565) NRGBA() color.NRGBA {
	v := uint16(p)
	return color.NRGBA{
		R: expand(v>>11&0x1f, 5),
		G: expand(v>>5&0x3f, 6),
		B: expand(v&0x1f, 5),
		A: 255,
	}
}
func (p BGR565) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewBGRA4444 converts c to a BGRA4444 pixel.
func NewBGRA4444(c color.Color) BGRA4444 {
	n := toNRGBA(c)
	return BGRA4444(quantize(n.B, 4) | quantize(n.G, 4)<<4 | quantize(n.R, 4)<<8 | quantize(n.A, 4)<<12)
}

func (p BGRA4444) PixelFormat() PixelFormat { return FormatBGRA4444 }
func (p BGRA4444) NRGBA() color.NRGBA {
	v := uint16(p)
	return color.NRGBA{
		R: expand(v>>8&0xf, 4),
		G: expand(v>>4&0xf, 4),
		B: expand(v&0xf, 4),
		A: expand(v>>12&0xf, 4),
	}
}
func (p BGRA4444) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewBGRA5551 converts c to a BGRA5551 pixel. Alpha is set when c.A >= 128.
func NewBGRA5551(c color.Color) BGRA5551 {
	n := toNRGBA(c)
	v := quantize(n.B, 5) | quantize(n.G, 5)<<5 | quantize(n.R, 5)<<10
	if n.A >= 128 {
		v |= 1 << 15
	}
	return BGRA5551(v)
}

func (p BGRA5551) PixelFormat() PixelFormat { return FormatBGRA5551 }
func (p BGRA5551) NRGBA() color.NRGBA {
	v := uint16(p)
	c := color.NRGBA{
		R: expand(v>>10&0x1f, 5),
		G: expand(v>>5&0x1f, 5),
		B: expand(v&0x1f, 5),
	}
	if v&(1<<15) != 0 {
		c.A = 255
	}
	return c
}
func (p BGRA5551) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewRGB24 converts c to an RGB24 pixel, dropping alpha.
func NewRGB24(c color.Color) RGB24 {
	n := toNRGBA(c)
	return RGB24{n.R, n.G, n.B}
}

func (p RGB24) PixelFormat() PixelFormat  { return FormatRGB24 }
func (p RGB24) NRGBA() color.NRGBA        { return color.NRGBA{p.R, p.G, p.B, 255} }
func (p RGB24) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewBGR24 converts c to a BGR24 pixel, dropping alpha.
func NewBGR24(c color.Color) BGR24 {
	n := toNRGBA(c)
	return BGR24{n.B, n.G, n.R}
}

func (p BGR24) PixelFormat() PixelFormat  { return FormatBGR24 }
func (p BGR24) NRGBA() color.NRGBA        { return color.NRGBA{p.R, p.G, p.B, 255} }
func (p BGR24) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewRGBA32 converts c to an RGBA32 pixel.
func NewRGBA32(c color.Color) RGBA32 {
	n := toNRGBA(c)
	return RGBA32{n.R, n.G, n.B, n.A}
}

func (p RGBA32) PixelFormat() PixelFormat  { return FormatRGBA32 }
func (p RGBA32) NRGBA() color.NRGBA        { return color.NRGBA{p.R, p.G, p.B, p.A} }
func (p RGBA32) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewBGRA32 converts c to a BGRA32 pixel.
func NewBGRA32(c color.Color) BGRA32 {
	n := toNRGBA(c)
	return BGRA32{n.B, n.G, n.R, n.A}
}

func (p BGRA32) PixelFormat() PixelFormat  { return FormatBGRA32 }
func (p BGRA32) NRGBA() color.NRGBA        { return color.NRGBA{p.R, p.G, p.B, p.A} }
func (p BGRA32) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewARGB32 converts c to an ARGB32 pixel.
func NewARGB32(c color.Color) ARGB32 {
	n := toNRGBA(c)
	return ARGB32{n.A, n.R, n.G, n.B}
}

func (p ARGB32) PixelFormat() PixelFormat  { return FormatARGB32 }
func (p ARGB32) NRGBA() color.NRGBA        { return color.NRGBA{p.R, p.G, p.B, p.A} }
func (p ARGB32) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewVectorBGR converts c to a VectorBGR pixel, dropping alpha.
func NewVectorBGR(c color.Color) VectorBGR {
	n := toNRGBA(c)
	return VectorBGR{byteToUnit(n.B), byteToUnit(n.G), byteToUnit(n.R)}
}

func (p VectorBGR) PixelFormat() PixelFormat { return FormatVectorBGR }
func (p VectorBGR) NRGBA() color.NRGBA {
	return color.NRGBA{unitToByte(p.R), unitToByte(p.G), unitToByte(p.B), 255}
}
func (p VectorBGR) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewVectorBGRA converts c to a VectorBGRA pixel.
func NewVectorBGRA(c color.Color) VectorBGRA {
	n := toNRGBA(c)
	return VectorBGRA{byteToUnit(n.B), byteToUnit(n.G), byteToUnit(n.R), byteToUnit(n.A)}
}

func (p VectorBGRA) PixelFormat() PixelFormat { return FormatVectorBGRA }
func (p VectorBGRA) NRGBA() color.NRGBA {
	return color.NRGBA{unitToByte(p.R), unitToByte(p.G), unitToByte(p.B), unitToByte(p.A)}
}
func (p VectorBGRA) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

// NewVectorRGBA converts c to a VectorRGBA pixel.
func NewVectorRGBA(c color.Color) VectorRGBA {
	n := toNRGBA(c)
	return VectorRGBA{byteToUnit(n.R), byteToUnit(n.G), byteToUnit(n.B), byteToUnit(n.A)}
}

func (p VectorRGBA) PixelFormat() PixelFormat { return FormatVectorRGBA }
func (p VectorRGBA) NRGBA() color.NRGBA {
	return color.NRGBA{unitToByte(p.R), unitToByte(p.G), unitToByte(p.B), unitToByte(p.A)}
}
func (p VectorRGBA) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }
