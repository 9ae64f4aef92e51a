package bitmap

import (
	"fmt"
	"iter"
	"unsafe"
)

// TypedView is a View whose pixels are addressed as elements of type P.
// P is any fixed-size type whose size equals the layout's pixel byte size;
// its bytes are reinterpreted in place with host byte order.
type TypedView[P any] struct {
	View
}

// OfType specializes v to pixel type P. It fails with ErrFormatMismatch when
// the size of P differs from the pixel byte size; no reinterpretation of a
// different size ever happens.
func OfType[P any](v View) (TypedView[P], error) {
	var zero P
	if size := int(unsafe.Sizeof(zero)); size != v.layout.pixelByteSize {
		return TypedView[P]{}, fmt.Errorf("%w: %T is %d bytes, %v pixels are %d",
			ErrFormatMismatch, zero, size, v.layout.format, v.layout.pixelByteSize)
	}
	return TypedView[P]{View: v}, nil
}

// WrapPixels creates a writable, tightly packed typed view over pix, using
// the pixel format reported by P.
func WrapPixels[P Pixel](pix []P, width, height int) (TypedView[P], error) {
	var zero P
	layout, err := NewLayout(width, height, zero.PixelFormat(), 0)
	if err != nil {
		return TypedView[P]{}, err
	}
	if len(pix) < width*height {
		return TypedView[P]{}, fmt.Errorf("%w: %d pixels for %v", ErrLayoutInvalid, len(pix), layout)
	}
	var buf []byte
	if len(pix) > 0 {
		buf = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(pix))), len(pix)*int(unsafe.Sizeof(zero)))
	}
	v, err := NewView(buf, layout)
	if err != nil {
		return TypedView[P]{}, err
	}
	return TypedView[P]{View: v}, nil
}

// AsView returns the typeless view.
func (t TypedView[P]) AsView() View { return t.View }

// AsReadOnly returns a read-only typed view over the same memory.
func (t TypedView[P]) AsReadOnly() TypedView[P] {
	return TypedView[P]{View: t.View.AsReadOnly()}
}

// Slice returns the typed view of region b.
func (t TypedView[P]) Slice(b Bounds) (TypedView[P], error) {
	v, err := t.View.Slice(b)
	if err != nil {
		return TypedView[P]{}, err
	}
	return TypedView[P]{View: v}, nil
}

func pixelsOf[P any](row []byte) []P {
	var zero P
	n := len(row) / int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*P)(unsafe.Pointer(unsafe.SliceData(row))), n)
}

// ScanlinePixels returns row y for reading.
func (t TypedView[P]) ScanlinePixels(y int) ([]P, error) {
	row, err := t.View.Scanline(y)
	if err != nil {
		return nil, err
	}
	return pixelsOf[P](row), nil
}

// WritableScanlinePixels returns row y for writing.
func (t TypedView[P]) WritableScanlinePixels(y int) ([]P, error) {
	row, err := t.View.WritableScanline(y)
	if err != nil {
		return nil, err
	}
	return pixelsOf[P](row), nil
}

// At returns the pixel at (x, y).
func (t TypedView[P]) At(x, y int) (P, error) {
	b, err := t.View.Pixel(x, y)
	if err != nil {
		var zero P
		return zero, err
	}
	return pixelsOf[P](b)[0], nil
}

// SetPixel writes p at (x, y).
func (t TypedView[P]) SetPixel(x, y int, p P) error {
	b, err := t.View.WritablePixel(x, y)
	if err != nil {
		return err
	}
	pixelsOf[P](b)[0] = p
	return nil
}

// Fill writes p to every pixel. A continuous view is filled as one run,
// otherwise row by row.
func (t TypedView[P]) Fill(p P) error {
	if err := t.checkWritable(); err != nil {
		return err
	}
	if t.layout.IsEmpty() {
		return nil
	}
	if t.layout.IsContinuous() {
		fillPixels(pixelsOf[P](t.data), p)
		return nil
	}
	for y := range t.layout.height {
		row, _ := t.layout.Scanline(t.data, y)
		fillPixels(pixelsOf[P](row), p)
	}
	return nil
}

func fillPixels[P any](dst []P, p P) {
	if len(dst) == 0 {
		return
	}
	dst[0] = p
	for n := 1; n < len(dst); n *= 2 {
		copy(dst[n:], dst[:n])
	}
}

// Blit copies src into t with its top-left corner at (dstX, dstY).
func (t TypedView[P]) Blit(dstX, dstY int, src TypedView[P]) error {
	return t.View.Blit(dstX, dstY, src.View)
}

// ApplyPixels combines src into dst with its top-left corner at (x, y).
// Each destination pixel inside the overlap is replaced by fn(dst, src);
// pixels outside it are left alone. The formats of dst and src play no
// part, fn defines the transform.
func ApplyPixels[D, S any](dst TypedView[D], x, y int, src TypedView[S], fn func(D, S) D) error {
	if fn == nil {
		return fmt.Errorf("%w: nil pixel function", ErrArgumentInvalid)
	}
	if err := dst.checkWritable(); err != nil {
		return err
	}
	target := Clamp(Rect(x, y, src.layout.width, src.layout.height), dst.Bounds())
	if target.IsEmpty() {
		return nil
	}
	sx, sy := target.X-x, target.Y-y

	first, last, step := 0, target.Height, 1
	var scratch []S
	if sharesMemory(dst.data, src.data) {
		scratch = make([]S, target.Width)
		if overlapsBelow(
			dst.data[target.Y*dst.layout.stride+target.X*dst.layout.pixelByteSize:],
			src.data[sy*src.layout.stride+sx*src.layout.pixelByteSize:],
		) {
			first, last, step = target.Height-1, -1, -1
		}
	}
	for row := first; row != last; row += step {
		s, _ := src.layout.PixelRun(src.data, sx, sy+row, target.Width)
		d, _ := dst.layout.PixelRun(dst.data, target.X, target.Y+row, target.Width)
		sp, dp := pixelsOf[S](s), pixelsOf[D](d)
		if scratch != nil {
			sp = scratch[:copy(scratch, sp)]
		}
		for i, p := range sp {
			dp[i] = fn(dp[i], p)
		}
	}
	return nil
}

// sharesMemory reports whether a and b address any common byte.
func sharesMemory(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	pa := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	pb := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return pa < pb+uintptr(len(b)) && pb < pa+uintptr(len(a))
}

// Rows iterates the scanlines for reading.
func (t TypedView[P]) Rows() iter.Seq2[int, []P] {
	return func(yield func(int, []P) bool) {
		for y := range t.layout.height {
			row, _ := t.layout.Scanline(t.data, y)
			if !yield(y, pixelsOf[P](row)) {
				return
			}
		}
	}
}

// All iterates every pixel in row-major order, yielding its position.
func (t TypedView[P]) All() iter.Seq2[Point, P] {
	return func(yield func(Point, P) bool) {
		for y, row := range t.Rows() {
			for x, p := range row {
				if !yield(Point{X: x, Y: y}, p) {
					return
				}
			}
		}
	}
}

// Point is an integer pixel position.
type Point struct {
	X, Y int
}

// FillPixel writes p to every pixel of v after specializing it to P.
func FillPixel[P any](v View, p P) error {
	t, err := OfType[P](v)
	if err != nil {
		return err
	}
	return t.Fill(p)
}
