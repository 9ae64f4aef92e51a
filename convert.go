package bitmap

import (
	"fmt"
	"unsafe"
)

// rowConverter converts n pixels from src into dst.
type rowConverter func(dst, src []byte, n int)

type formatPair struct {
	src, dst PixelFormat
}

// conversions is the table of supported cross-format blits. Pairs missing
// from it fail with ErrConversionUnsupported.
var conversions = map[formatPair]rowConverter{
	// Channel reordering.
	{FormatRGB24, FormatBGR24}:   permute(3, 3, 2, 1, 0, -1),
	{FormatBGR24, FormatRGB24}:   permute(3, 3, 2, 1, 0, -1),
	{FormatRGBA32, FormatBGRA32}: permute(4, 4, 2, 1, 0, 3),
	{FormatBGRA32, FormatRGBA32}: permute(4, 4, 2, 1, 0, 3),
	{FormatARGB32, FormatRGBA32}: permute(4, 4, 1, 2, 3, 0),
	{FormatRGBA32, FormatARGB32}: permute(4, 4, 3, 0, 1, 2),
	{FormatARGB32, FormatBGRA32}: permute(4, 4, 3, 2, 1, 0),
	{FormatBGRA32, FormatARGB32}: permute(4, 4, 3, 2, 1, 0),

	// Adding an opaque alpha channel.
	{FormatRGB24, FormatRGBA32}: permute(3, 4, 0, 1, 2, -1),
	{FormatRGB24, FormatBGRA32}: permute(3, 4, 2, 1, 0, -1),
	{FormatBGR24, FormatBGRA32}: permute(3, 4, 0, 1, 2, -1),
	{FormatBGR24, FormatRGBA32}: permute(3, 4, 2, 1, 0, -1),
	{FormatRGB24, FormatARGB32}: permute(3, 4, -1, 0, 1, 2),
	{FormatBGR24, FormatARGB32}: permute(3, 4, -1, 2, 1, 0),

	// Dropping alpha.
	{FormatRGBA32, FormatRGB24}: permute(4, 3, 0, 1, 2, -1),
	{FormatRGBA32, FormatBGR24}: permute(4, 3, 2, 1, 0, -1),
	{FormatBGRA32, FormatBGR24}: permute(4, 3, 0, 1, 2, -1),
	{FormatBGRA32, FormatRGB24}: permute(4, 3, 2, 1, 0, -1),
	{FormatARGB32, FormatRGB24}: permute(4, 3, 1, 2, 3, -1),
	{FormatARGB32, FormatBGR24}: permute(4, 3, 3, 2, 1, -1),

	// Gray expansion.
	{FormatGray8, FormatRGB24}:  permute(1, 3, 0, 0, 0, -1),
	{FormatGray8, FormatBGR24}:  permute(1, 3, 0, 0, 0, -1),
	{FormatGray8, FormatRGBA32}: permute(1, 4, 0, 0, 0, -1),
	{FormatGray8, FormatBGRA32}: permute(1, 4, 0, 0, 0, -1),
	{FormatGray8, FormatGray16}: gray8To16,
	{FormatGray16, FormatGray8}: gray16To8,

	// Alpha masks.
	{FormatAlpha8, FormatRGBA32}: viaColor(FormatAlpha8, FormatRGBA32),
	{FormatAlpha8, FormatBGRA32}: viaColor(FormatAlpha8, FormatBGRA32),
	{FormatRGBA32, FormatAlpha8}: permute(4, 1, 3, -1, -1, -1),
	{FormatBGRA32, FormatAlpha8}: permute(4, 1, 3, -1, -1, -1),

	// Luminance.
	{FormatRGB24, FormatGray8}:  viaColor(FormatRGB24, FormatGray8),
	{FormatBGR24, FormatGray8}:  viaColor(FormatBGR24, FormatGray8),
	{FormatRGBA32, FormatGray8}: viaColor(FormatRGBA32, FormatGray8),
	{FormatBGRA32, FormatGray8}: viaColor(FormatBGRA32, FormatGray8),

	// Packed 16-bit formats.
	{FormatBGR565, FormatBGR24}:    viaColor(FormatBGR565, FormatBGR24),
	{FormatBGR24, FormatBGR565}:    viaColor(FormatBGR24, FormatBGR565),
	{FormatBGR565, FormatBGRA32}:   viaColor(FormatBGR565, FormatBGRA32),
	{FormatBGRA32, FormatBGR565}:   viaColor(FormatBGRA32, FormatBGR565),
	{FormatBGRA4444, FormatBGRA32}: viaColor(FormatBGRA4444, FormatBGRA32),
	{FormatBGRA32, FormatBGRA4444}: viaColor(FormatBGRA32, FormatBGRA4444),
	{FormatBGRA5551, FormatBGRA32}: viaColor(FormatBGRA5551, FormatBGRA32),
	{FormatBGRA32, FormatBGRA5551}: viaColor(FormatBGRA32, FormatBGRA5551),

	// Float vectors.
	{FormatGrayFloat, FormatGray8}:   viaColor(FormatGrayFloat, FormatGray8),
	{FormatGray8, FormatGrayFloat}:   viaColor(FormatGray8, FormatGrayFloat),
	{FormatVectorBGR, FormatBGR24}:   viaColor(FormatVectorBGR, FormatBGR24),
	{FormatBGR24, FormatVectorBGR}:   viaColor(FormatBGR24, FormatVectorBGR),
	{FormatVectorBGRA, FormatBGRA32}: viaColor(FormatVectorBGRA, FormatBGRA32),
	{FormatBGRA32, FormatVectorBGRA}: viaColor(FormatBGRA32, FormatVectorBGRA),
	{FormatVectorRGBA, FormatRGBA32}: viaColor(FormatVectorRGBA, FormatRGBA32),
	{FormatRGBA32, FormatVectorRGBA}: viaColor(FormatRGBA32, FormatVectorRGBA),
}

// permute builds a converter for byte-per-channel formats. idx[i] names the
// source byte copied to destination byte i; -1 writes 0xff.
func permute(srcSize, dstSize int, idx ...int) rowConverter {
	var order [4]int
	copy(order[:], idx)
	return func(dst, src []byte, n int) {
		for i := range n {
			s := src[i*srcSize : i*srcSize+srcSize]
			d := dst[i*dstSize : i*dstSize+dstSize]
			for j := range d {
				if k := order[j]; k >= 0 {
					d[j] = s[k]
				} else {
					d[j] = 0xff
				}
			}
		}
	}
}

// viaColor converts through the NRGBA exchange space.
func viaColor(src, dst PixelFormat) rowConverter {
	sc, dc := pixelCodecs[src], pixelCodecs[dst]
	ss, _ := src.ByteCount()
	ds, _ := dst.ByteCount()
	return func(d, s []byte, n int) {
		for i := range n {
			dc.encode(d[i*ds:i*ds+ds], sc.decode(s[i*ss:i*ss+ss]))
		}
	}
}

func gray8To16(dst, src []byte, n int) {
	for i := range n {
		dst[2*i] = src[i]
		dst[2*i+1] = src[i]
	}
}

func gray16To8(dst, src []byte, n int) {
	for i := range n {
		v := uint32(src[2*i]) | uint32(src[2*i+1])<<8
		dst[i] = uint8((v*255 + 32767) / 65535)
	}
}

// CanConvert reports whether Blit accepts a source in format src for a
// destination in format dst.
func CanConvert(src, dst PixelFormat) bool {
	if src == dst {
		return true
	}
	_, ok := conversions[formatPair{src, dst}]
	return ok
}

func converterFor(src, dst PixelFormat) (rowConverter, error) {
	if src == dst {
		return nil, nil
	}
	conv, ok := conversions[formatPair{src, dst}]
	if !ok {
		return nil, fmt.Errorf("%w: %v to %v", ErrConversionUnsupported, src, dst)
	}
	return conv, nil
}

// Blit copies src into v with the source's top-left corner at (dstX, dstY).
// Only the overlap of the placed source and v is written; an empty overlap
// is a no-op. Identical formats copy bytes row by row; different formats go
// through the conversion table. Every check runs before the first write.
func (v View) Blit(dstX, dstY int, src View) error {
	if err := v.checkWritable(); err != nil {
		return err
	}
	conv, err := converterFor(src.layout.format, v.layout.format)
	if err != nil {
		return err
	}

	target := Clamp(Rect(dstX, dstY, src.layout.width, src.layout.height), v.Bounds())
	if target.IsEmpty() {
		return nil
	}
	sx, sy := target.X-dstX, target.Y-dstY

	if conv != nil {
		Logger().Debug("bitmap: converting blit",
			"src", src.layout.format, "dst", v.layout.format, "region", target)
	}

	first, last, step := 0, target.Height, 1
	if conv == nil && overlapsBelow(
		v.data[target.Y*v.layout.stride+target.X*v.layout.pixelByteSize:],
		src.data[sy*src.layout.stride+sx*src.layout.pixelByteSize:],
	) {
		// Bottom-up, so overlapping source rows are read before they are
		// overwritten.
		first, last, step = target.Height-1, -1, -1
	}
	for y := first; y != last; y += step {
		s, _ := src.layout.PixelRun(src.data, sx, sy+y, target.Width)
		d, _ := v.layout.PixelRun(v.data, target.X, target.Y+y, target.Width)
		if conv == nil {
			copy(d, s)
		} else {
			conv(d, s, target.Width)
		}
	}
	return nil
}

// overlapsBelow reports whether dst starts inside src, past its first byte.
func overlapsBelow(dst, src []byte) bool {
	if len(dst) == 0 || len(src) == 0 {
		return false
	}
	d := uintptr(unsafe.Pointer(unsafe.SliceData(dst)))
	s := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	return d > s && d < s+uintptr(len(src))
}
