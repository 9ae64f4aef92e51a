package bitmap

import (
	"fmt"
)

// Bitmap owns a pixel buffer. It is the only type in this package that
// allocates pixel memory; views over it borrow that memory.
type Bitmap struct {
	layout Layout
	pix    []byte
}

// NewBitmap allocates a zeroed bitmap for layout.
func NewBitmap(layout Layout) *Bitmap {
	return &Bitmap{layout: layout, pix: make([]byte, layout.BitmapByteSize())}
}

// NewBitmapOf allocates a tightly packed bitmap.
func NewBitmapOf(width, height int, format PixelFormat) (*Bitmap, error) {
	layout, err := NewLayout(width, height, format, 0)
	if err != nil {
		return nil, err
	}
	return NewBitmap(layout), nil
}

// Layout returns the bitmap layout.
func (b *Bitmap) Layout() Layout { return b.layout }

// Bytes returns the backing buffer.
func (b *Bitmap) Bytes() []byte { return b.pix }

// View returns a writable view over the bitmap.
func (b *Bitmap) View() View {
	return View{layout: b.layout, data: b.pix}
}

// ReadOnlyView returns a read-only view over the bitmap.
func (b *Bitmap) ReadOnlyView() View {
	return View{layout: b.layout, data: b.pix, readOnly: true}
}

// ToBitmap copies the view into a new tightly packed bitmap of the same
// format.
func (v View) ToBitmap() *Bitmap {
	layout, _ := NewLayout(v.layout.width, v.layout.height, v.layout.format, 0)
	dst := NewBitmap(layout)
	v.copyRows(dst.View())
	return dst
}

// ToBitmapAs copies the view into a new tightly packed bitmap of format,
// converting through the blit table when the formats differ.
func (v View) ToBitmapAs(format PixelFormat) (*Bitmap, error) {
	if format == v.layout.format {
		return v.ToBitmap(), nil
	}
	if !CanConvert(v.layout.format, format) {
		return nil, fmt.Errorf("%w: %v to %v", ErrConversionUnsupported, v.layout.format, format)
	}
	layout, err := v.layout.WithPixelFormat(format)
	if err != nil {
		return nil, err
	}
	dst := NewBitmap(layout)
	if err := dst.View().Blit(0, 0, v); err != nil {
		return nil, err
	}
	return dst, nil
}

// ToBitmapWith copies src into a new tightly packed bitmap of format,
// converting every pixel with fn. D must have the byte size of format.
func ToBitmapWith[D, S any](src TypedView[S], format PixelFormat, fn func(S) D) (*Bitmap, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil converter", ErrArgumentInvalid)
	}
	dst, err := NewBitmapOf(src.layout.width, src.layout.height, format)
	if err != nil {
		return nil, err
	}
	tv, err := OfType[D](dst.View())
	if err != nil {
		return nil, err
	}
	err = ApplyPixels(tv, 0, 0, src, func(_ D, s S) D { return fn(s) })
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// CopyTo copies the view into dst, reusing dst's buffer when its layout is
// already the tightly packed layout of v. It reports whether dst had to be
// reallocated.
func (v View) CopyTo(dst *Bitmap) (bool, error) {
	if dst == nil {
		return false, fmt.Errorf("%w: nil bitmap", ErrArgumentInvalid)
	}
	layout, _ := NewLayout(v.layout.width, v.layout.height, v.layout.format, 0)
	refreshed := false
	if dst.layout != layout || len(dst.pix) != layout.BitmapByteSize() {
		*dst = *NewBitmap(layout)
		refreshed = true
	}
	v.copyRows(dst.View())
	return refreshed, nil
}

// copyRows copies equal-shaped views row by row.
func (v View) copyRows(dst View) {
	if v.layout.IsContinuous() && dst.layout.IsContinuous() {
		copy(dst.data, v.data)
		return
	}
	for y := range v.layout.height {
		s, _ := v.layout.Scanline(v.data, y)
		d, _ := dst.layout.Scanline(dst.data, y)
		copy(d, s)
	}
}
