package bitmap

import (
	"fmt"
	"math"
)

// Warp draws src into v under m using nearest-neighbor sampling. m maps
// source coordinates to destination coordinates. Every destination pixel
// inside the transformed footprint of src takes the source pixel containing
// the inverse-mapped destination pixel center; pixels whose center maps
// outside src are left unchanged.
//
// Source and destination formats must match exactly; no conversion happens
// during a warp.
func (v View) Warp(m Affine, src View) error {
	if err := v.checkWritable(); err != nil {
		return err
	}
	if src.layout.format != v.layout.format {
		return fmt.Errorf("%w: warp from %v to %v", ErrFormatMismatch, src.layout.format, v.layout.format)
	}
	inv, ok := m.Invert()
	if !ok {
		return fmt.Errorf("%w: singular transform", ErrArgumentInvalid)
	}
	if src.IsEmpty() || v.IsEmpty() {
		return nil
	}

	area := m.footprint(src.Bounds(), v.Bounds())
	pbs := v.layout.pixelByteSize
	sw, sh := float64(src.layout.width), float64(src.layout.height)

	for y := area.Y; y < area.Y+area.Height; y++ {
		row, _ := v.layout.Scanline(v.data, y)
		for x := area.X; x < area.X+area.Width; x++ {
			fx, fy := inv.TransformPoint(float64(x)+0.5, float64(y)+0.5)
			if !(fx >= 0 && fy >= 0 && fx < sw && fy < sh) {
				continue
			}
			s, _ := src.layout.Pixel(src.data, int(math.Floor(fx)), int(math.Floor(fy)))
			copy(row[x*pbs:x*pbs+pbs], s)
		}
	}
	return nil
}

// Fit resizes src into the full extent of v with nearest-neighbor sampling.
// Formats must match.
func (v View) Fit(src View) error {
	if err := v.checkWritable(); err != nil {
		return err
	}
	if src.layout.format != v.layout.format {
		return fmt.Errorf("%w: fit from %v to %v", ErrFormatMismatch, src.layout.format, v.layout.format)
	}
	if src.IsEmpty() || v.IsEmpty() {
		return nil
	}
	if src.layout.width == v.layout.width && src.layout.height == v.layout.height {
		return v.Blit(0, 0, src)
	}
	sx := float64(v.layout.width) / float64(src.layout.width)
	sy := float64(v.layout.height) / float64(src.layout.height)
	return v.Warp(Scale(sx, sy), src)
}

// Warp draws src into t under m.
func (t TypedView[P]) Warp(m Affine, src TypedView[P]) error {
	return t.View.Warp(m, src.View)
}

// Fit resizes src into t.
func (t TypedView[P]) Fit(src TypedView[P]) error {
	return t.View.Fit(src.View)
}
