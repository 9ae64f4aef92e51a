package bitmap

import (
	"fmt"
	"math"
)

// Layout describes how the pixels of a bitmap are addressed in a byte
// buffer: dimensions, pixel format and the scanline stride.
//
// Layout is a comparable value; == compares every field, stride included.
// Use SameShape for the weaker comparison that ignores stride.
type Layout struct {
	width         int
	height        int
	pixelByteSize int
	stride        int
	format        PixelFormat
}

// Shape is the stride-independent part of a Layout.
type Shape struct {
	Width, Height int
	Format        PixelFormat
}

// NewLayout validates and builds a layout. A stride of 0 selects the tightly
// packed stride width*pixelByteSize.
func NewLayout(width, height int, format PixelFormat, stride int) (Layout, error) {
	if width < 0 || height < 0 {
		return Layout{}, fmt.Errorf("%w: %w: negative size %dx%d", ErrLayoutInvalid, ErrArgumentInvalid, width, height)
	}
	pixelByteSize, err := format.ByteCount()
	if err != nil {
		return Layout{}, fmt.Errorf("%w: %w", ErrLayoutInvalid, err)
	}
	if pixelByteSize > 0 && width > math.MaxInt/pixelByteSize {
		return Layout{}, fmt.Errorf("%w: row of %d pixels overflows", ErrLayoutInvalid, width)
	}
	rowBytes := width * pixelByteSize
	switch {
	case stride == 0:
		stride = rowBytes
	case stride < 0:
		return Layout{}, fmt.Errorf("%w: negative stride %d", ErrLayoutInvalid, stride)
	case stride < rowBytes && width > 0 && height > 0:
		return Layout{}, fmt.Errorf("%w: stride %d smaller than row size %d", ErrLayoutInvalid, stride, rowBytes)
	}
	if height > 1 && stride > 0 && (height-1 > (math.MaxInt-rowBytes)/stride) {
		return Layout{}, fmt.Errorf("%w: %d rows of stride %d overflow", ErrLayoutInvalid, height, stride)
	}
	return Layout{
		width:         width,
		height:        height,
		pixelByteSize: pixelByteSize,
		stride:        stride,
		format:        format,
	}, nil
}

// MustLayout is like NewLayout but panics on error. It is intended for
// layouts built from constants.
func MustLayout(width, height int, format PixelFormat, stride int) Layout {
	l, err := NewLayout(width, height, format, stride)
	if err != nil {
		panic(err)
	}
	return l
}

// Width returns the width in pixels.
func (l Layout) Width() int { return l.width }

// Height returns the height in pixels.
func (l Layout) Height() int { return l.height }

// PixelByteSize returns the size of one pixel in bytes.
func (l Layout) PixelByteSize() int { return l.pixelByteSize }

// Stride returns the number of bytes from the start of one row to the next.
func (l Layout) Stride() int { return l.stride }

// PixelFormat returns the pixel format.
func (l Layout) PixelFormat() PixelFormat { return l.format }

// RowByteSize returns the number of bytes holding pixels in one row.
func (l Layout) RowByteSize() int { return l.width * l.pixelByteSize }

// BitmapByteSize returns the number of bytes required to store the bitmap.
// The last row carries no trailing stride padding.
func (l Layout) BitmapByteSize() int {
	if l.height == 0 {
		return 0
	}
	return l.stride*(l.height-1) + l.pixelByteSize*l.width
}

// IsContinuous reports whether rows are packed without padding.
func (l Layout) IsContinuous() bool {
	return l.stride == l.width*l.pixelByteSize
}

// IsEmpty reports whether the layout holds no pixel bytes.
func (l Layout) IsEmpty() bool {
	return l.width == 0 || l.height == 0 || l.pixelByteSize == 0
}

// Bounds returns the rectangle (0, 0, Width, Height).
func (l Layout) Bounds() Bounds {
	return Bounds{Width: l.width, Height: l.height}
}

// Shape returns the stride-independent part of the layout.
func (l Layout) Shape() Shape {
	return Shape{Width: l.width, Height: l.height, Format: l.format}
}

// Equal reports structural equality: size, pixel size, format and stride.
func (l Layout) Equal(other Layout) bool {
	return l == other
}

// SameShape reports whether both layouts have the same size and format,
// ignoring stride.
func (l Layout) SameShape(other Layout) bool {
	return l.Shape() == other.Shape()
}

// Hash returns a hash of the shape. Layouts that differ only in stride hash
// equally.
func (l Layout) Hash() uint64 {
	return uint64(l.width) ^ uint64(l.height)<<20 ^ uint64(l.format)<<32
}

// WithPixelFormat returns a tightly packed layout of the same size in
// another format.
func (l Layout) WithPixelFormat(format PixelFormat) (Layout, error) {
	return NewLayout(l.width, l.height, format, 0)
}

// Slice returns the byte offset of the region b and the layout of the
// region. The child keeps the parent stride and format; no data is touched.
//
// TODO: formats narrower than 8 bits per channel may need their channel
// order swapped when b starts at an odd pixel offset; this is not handled.
func (l Layout) Slice(b Bounds) (int, Layout, error) {
	if b.Width < 0 || b.Height < 0 || !l.Bounds().Contains(b) {
		return 0, Layout{}, fmt.Errorf("%w: %v not inside %v", ErrOutOfBounds, b, l.Bounds())
	}
	offset := l.stride*b.Y + l.pixelByteSize*b.X
	child := Layout{
		width:         b.Width,
		height:        b.Height,
		pixelByteSize: l.pixelByteSize,
		stride:        l.stride,
		format:        l.format,
	}
	return offset, child, nil
}

// Scanline returns the pixel bytes of row y in buf.
func (l Layout) Scanline(buf []byte, y int) ([]byte, error) {
	if y < 0 || y >= l.height {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfBounds, y, l.height)
	}
	return l.span(buf, y*l.stride, l.RowByteSize())
}

// Pixel returns the bytes of the pixel at (x, y) in buf.
func (l Layout) Pixel(buf []byte, x, y int) ([]byte, error) {
	return l.PixelRun(buf, x, y, 1)
}

// PixelRun returns count contiguous pixels starting at (x, y) in buf.
func (l Layout) PixelRun(buf []byte, x, y, count int) ([]byte, error) {
	if y < 0 || y >= l.height || x < 0 || count < 0 || x+count > l.width {
		return nil, fmt.Errorf("%w: run of %d at (%d, %d) in %dx%d", ErrOutOfBounds, count, x, y, l.width, l.height)
	}
	return l.span(buf, y*l.stride+x*l.pixelByteSize, count*l.pixelByteSize)
}

func (l Layout) span(buf []byte, start, n int) ([]byte, error) {
	if start < 0 || n < 0 || start > len(buf) || n > len(buf)-start {
		return nil, fmt.Errorf("%w: buffer of %d bytes, need %d at %d", ErrOutOfBounds, len(buf), n, start)
	}
	return buf[start : start+n : start+n], nil
}

// String returns "format×width×height".
func (l Layout) String() string {
	return fmt.Sprintf("%v×%d×%d", l.format, l.width, l.height)
}
