package bitmap

import (
	"fmt"
	"math/rand/v2"
	"unsafe"
)

// View is a borrowed, bounds-checked window over a byte buffer, paired with
// the Layout describing its pixels. A View never owns memory: it is valid
// only while the buffer it was built over is alive and not concurrently
// mutated. Do not keep a View in a longer-lived structure than the buffer's
// owner; hand raw pointers to foreign code only through PinReadable and
// PinWritable.
//
// A View is either read-only or read-write; the capability is fixed at
// construction. Mutating operations on a read-only view fail with
// ErrReadOnly before touching memory.
type View struct {
	layout   Layout
	data     []byte
	readOnly bool
}

// NewView creates a writable view over buf. buf must hold at least
// layout.BitmapByteSize() bytes; the view covers exactly that many.
func NewView(buf []byte, layout Layout) (View, error) {
	data, err := fitBuffer(buf, layout)
	if err != nil {
		return View{}, err
	}
	return View{layout: layout, data: data}, nil
}

// NewReadOnlyView creates a read-only view over buf.
func NewReadOnlyView(buf []byte, layout Layout) (View, error) {
	data, err := fitBuffer(buf, layout)
	if err != nil {
		return View{}, err
	}
	return View{layout: layout, data: data, readOnly: true}, nil
}

// FromPointer creates a view over foreign memory. The caller guarantees ptr
// addresses at least layout.BitmapByteSize() bytes that stay valid, and are
// not moved or freed, for as long as the view is used.
func FromPointer(ptr unsafe.Pointer, layout Layout, readOnly bool) (View, error) {
	if ptr == nil {
		return View{}, fmt.Errorf("%w: nil pointer", ErrArgumentInvalid)
	}
	data := unsafe.Slice((*byte)(ptr), layout.BitmapByteSize())
	return View{layout: layout, data: data, readOnly: readOnly}, nil
}

func fitBuffer(buf []byte, layout Layout) ([]byte, error) {
	size := layout.BitmapByteSize()
	if buf == nil && size > 0 {
		return nil, fmt.Errorf("%w: nil buffer", ErrArgumentInvalid)
	}
	if len(buf) < size {
		return nil, fmt.Errorf("%w: buffer of %d bytes, layout %v needs %d", ErrLayoutInvalid, len(buf), layout, size)
	}
	return buf[:size:size], nil
}

// Layout returns the layout of the view.
func (v View) Layout() Layout { return v.layout }

// Width returns the width in pixels.
func (v View) Width() int { return v.layout.width }

// Height returns the height in pixels.
func (v View) Height() int { return v.layout.height }

// PixelFormat returns the pixel format.
func (v View) PixelFormat() PixelFormat { return v.layout.format }

// PixelByteSize returns the size of one pixel in bytes.
func (v View) PixelByteSize() int { return v.layout.pixelByteSize }

// Stride returns the scanline stride in bytes.
func (v View) Stride() int { return v.layout.stride }

// Bounds returns (0, 0, Width, Height).
func (v View) Bounds() Bounds { return v.layout.Bounds() }

// IsReadOnly reports whether mutating operations are refused.
func (v View) IsReadOnly() bool { return v.readOnly }

// IsEmpty reports whether the view has no pixels.
func (v View) IsEmpty() bool { return v.layout.IsEmpty() }

// ReadableBytes returns the bytes covered by the view, row padding included.
// Callers must not write through the returned slice of a read-only view.
func (v View) ReadableBytes() []byte { return v.data }

// WritableBytes returns the bytes covered by the view, or nil for read-only
// views.
func (v View) WritableBytes() []byte {
	if v.readOnly {
		return nil
	}
	return v.data
}

// AsReadOnly returns a read-only view over the same memory.
func (v View) AsReadOnly() View {
	return View{layout: v.layout, data: v.data, readOnly: true}
}

// Slice returns a view of the region b, sharing memory with v and keeping
// its capability. b must be contained in v.Bounds().
func (v View) Slice(b Bounds) (View, error) {
	offset, layout, err := v.layout.Slice(b)
	if err != nil {
		return View{}, err
	}
	size := layout.BitmapByteSize()
	if size == 0 {
		return View{layout: layout, data: v.data[:0:0], readOnly: v.readOnly}, nil
	}
	return View{
		layout:   layout,
		data:     v.data[offset : offset+size : offset+size],
		readOnly: v.readOnly,
	}, nil
}

// Window clamps req against the view extent and returns the resulting
// region. The second result is false when the intersection is empty.
func (v View) Window(req Bounds) (View, bool) {
	r := Clamp(req, v.Bounds())
	if r.IsEmpty() {
		return View{}, false
	}
	w, err := v.Slice(r)
	if err != nil {
		return View{}, false
	}
	return w, true
}

// Scanline returns the pixel bytes of row y for reading.
func (v View) Scanline(y int) ([]byte, error) {
	return v.layout.Scanline(v.data, y)
}

// WritableScanline returns the pixel bytes of row y for writing.
func (v View) WritableScanline(y int) ([]byte, error) {
	if err := v.checkWritable(); err != nil {
		return nil, err
	}
	return v.layout.Scanline(v.data, y)
}

// Pixel returns the bytes of the pixel at (x, y) for reading.
func (v View) Pixel(x, y int) ([]byte, error) {
	return v.layout.Pixel(v.data, x, y)
}

// WritablePixel returns the bytes of the pixel at (x, y) for writing.
func (v View) WritablePixel(x, y int) ([]byte, error) {
	if err := v.checkWritable(); err != nil {
		return nil, err
	}
	return v.layout.Pixel(v.data, x, y)
}

func (v View) checkWritable() error {
	if v.readOnly {
		return fmt.Errorf("%w: %v", ErrReadOnly, v.layout)
	}
	return nil
}

// SetPixelBytes writes value to every pixel. len(value) must equal the
// pixel byte size. A continuous view is filled in one pass, otherwise each
// scanline is filled in turn.
func (v View) SetPixelBytes(value []byte) error {
	if err := v.checkWritable(); err != nil {
		return err
	}
	if len(value) != v.layout.pixelByteSize {
		return fmt.Errorf("%w: %d byte value for %v", ErrFormatMismatch, len(value), v.layout.format)
	}
	if v.layout.IsEmpty() {
		return nil
	}
	if v.layout.IsContinuous() {
		fillPattern(v.data, value)
		return nil
	}
	for y := range v.layout.height {
		row, _ := v.layout.Scanline(v.data, y)
		fillPattern(row, value)
	}
	return nil
}

// fillPattern repeats pattern over dst by doubling copies.
func fillPattern(dst, pattern []byte) {
	if len(dst) == 0 {
		return
	}
	n := copy(dst, pattern)
	for n < len(dst) {
		n += copy(dst[n:], dst[:n])
	}
}

// SetRandom fills every row with random bytes. Row padding is left alone.
func (v View) SetRandom(r *rand.Rand) error {
	if err := v.checkWritable(); err != nil {
		return err
	}
	for y := range v.layout.height {
		row, _ := v.layout.Scanline(v.data, y)
		for i := range row {
			row[i] = byte(r.Uint32())
		}
	}
	return nil
}

// String returns the layout description.
func (v View) String() string {
	return v.layout.String()
}
