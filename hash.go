package bitmap

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
)

// Hash returns a 64-bit FNV-1a digest of the pixel bytes and the layout,
// stride included. Row padding is not read. Views with equal pixels but
// different strides hash differently; use PixelHash to compare content
// across strides.
func (v View) Hash() uint64 {
	h := fnv.New64a()
	writeLayout(h, v.layout, true)
	v.writeRows(h)
	return h.Sum64()
}

// PixelHash is like Hash but ignores the stride.
func (v View) PixelHash() uint64 {
	h := fnv.New64a()
	writeLayout(h, v.layout, false)
	v.writeRows(h)
	return h.Sum64()
}

func writeLayout(h hash.Hash64, l Layout, withStride bool) {
	var buf [32]byte
	b := binary.LittleEndian.AppendUint64(buf[:0], uint64(l.width))
	b = binary.LittleEndian.AppendUint64(b, uint64(l.height))
	b = binary.LittleEndian.AppendUint32(b, uint32(l.format))
	if withStride {
		b = binary.LittleEndian.AppendUint64(b, uint64(l.stride))
	}
	h.Write(b)
}

func (v View) writeRows(h hash.Hash64) {
	if v.layout.IsEmpty() {
		return
	}
	if v.layout.IsContinuous() {
		h.Write(v.data)
		return
	}
	for y := range v.layout.height {
		row, _ := v.layout.Scanline(v.data, y)
		h.Write(row)
	}
}
