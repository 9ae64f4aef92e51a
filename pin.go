package bitmap

import (
	"runtime"
	"unsafe"
)

// PinReadable calls fn with a pointer to the first byte of the view and its
// layout. The memory is pinned for the duration of fn and the pointer must
// not be used after fn returns. fn must not write through the pointer.
//
// For an empty view fn receives a nil pointer.
func (v View) PinReadable(fn func(ptr unsafe.Pointer, layout Layout) error) error {
	return v.pin(fn)
}

// PinWritable is like PinReadable but allows fn to write through the
// pointer. It fails with ErrReadOnly on a read-only view without calling fn.
func (v View) PinWritable(fn func(ptr unsafe.Pointer, layout Layout) error) error {
	if err := v.checkWritable(); err != nil {
		return err
	}
	return v.pin(fn)
}

func (v View) pin(fn func(unsafe.Pointer, Layout) error) error {
	if len(v.data) == 0 {
		return fn(nil, v.layout)
	}
	ptr := unsafe.Pointer(unsafe.SliceData(v.data))

	var pinner runtime.Pinner
	defer pinner.Unpin()
	pinner.Pin(ptr)

	return fn(ptr, v.layout)
}
