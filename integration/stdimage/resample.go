// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stdimage

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/bitmap"
)

// Filter selects the resampling kernel used by Resample and Transform.
type Filter int

const (
	FilterNearest Filter = iota
	FilterBox
	FilterLinear
	FilterCubic
	FilterLanczos
)

// Transform has no lanczos or box kernel; those fall back to the closest
// x/image interpolator.
var filters = [...]struct {
	name       string
	resampling gift.Resampling
	kernel     draw.Interpolator
}{
	FilterNearest: {"nearest", gift.NearestNeighborResampling, draw.NearestNeighbor},
	FilterBox:     {"box", gift.BoxResampling, draw.ApproxBiLinear},
	FilterLinear:  {"linear", gift.LinearResampling, draw.BiLinear},
	FilterCubic:   {"cubic", gift.CubicResampling, draw.CatmullRom},
	FilterLanczos: {"lanczos", gift.LanczosResampling, draw.CatmullRom},
}

// ParseFilter returns the filter with the given name.
func ParseFilter(name string) (Filter, error) {
	for i, f := range filters {
		if f.name == name {
			return Filter(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown filter %q", bitmap.ErrArgumentInvalid, name)
}

// String returns the filter name.
func (f Filter) String() string {
	if f < 0 || int(f) >= len(filters) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filters[f].name
}

// Resample scales v to width x height with a convolution filter. Unlike
// bitmap.View.Fit it interpolates, so pixels pass through the closest image
// model. The result keeps the pixel format of v when a conversion back from
// that model exists, and stays in the model's format otherwise.
func Resample(v bitmap.View, width, height int, f Filter) (*bitmap.Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resample to %dx%d", bitmap.ErrArgumentInvalid, width, height)
	}
	if f < 0 || int(f) >= len(filters) {
		return nil, fmt.Errorf("%w: %v", bitmap.ErrArgumentInvalid, f)
	}
	if v.IsEmpty() {
		return nil, fmt.Errorf("%w: resample of empty view", bitmap.ErrArgumentInvalid)
	}
	src, err := FromView(v, true)
	if err != nil {
		return nil, err
	}

	g := gift.New(gift.Resize(width, height, filters[f].resampling))
	r := g.Bounds(src.Bounds())
	var dst draw.Image
	switch src.(type) {
	case *image.Gray:
		dst = image.NewGray(r)
	case *image.Gray16:
		dst = image.NewGray16(r)
	case *image.Alpha:
		dst = image.NewAlpha(r)
	default:
		dst = image.NewNRGBA(r)
	}
	g.Draw(dst, src)

	out, err := ToBitmap(dst)
	if err != nil {
		return nil, err
	}
	format := v.PixelFormat()
	if got := out.Layout().PixelFormat(); got != format && bitmap.CanConvert(got, format) {
		return out.ReadOnlyView().ToBitmapAs(format)
	}
	return out, nil
}

// Transform draws src into dst under m, which maps source coordinates to
// destination coordinates as bitmap.Affine does. It interpolates with f
// through x/image/draw; destination pixels outside the transformed source
// keep their value. Use bitmap.View.Warp for exact nearest sampling without
// a trip through an image model.
func Transform(dst bitmap.View, m f64.Aff3, src bitmap.View, f Filter) error {
	if f < 0 || int(f) >= len(filters) {
		return fmt.Errorf("%w: %v", bitmap.ErrArgumentInvalid, f)
	}
	if dst.IsReadOnly() {
		return bitmap.ErrReadOnly
	}
	if _, ok := bitmap.AffineFromAff3(m).Invert(); !ok {
		return fmt.Errorf("%w: singular transform", bitmap.ErrArgumentInvalid)
	}
	if src.IsEmpty() || dst.IsEmpty() {
		return nil
	}
	si, err := FromView(src, true)
	if err != nil {
		return err
	}
	di, err := FromView(dst, true)
	if err != nil {
		return err
	}
	target, ok := di.(draw.Image)
	if !ok {
		return fmt.Errorf("%w: %T is not drawable", ErrNotWrappable, di)
	}
	filters[f].kernel.Transform(target, m, si, si.Bounds(), draw.Src, nil)
	return copyBack(dst, target)
}

// copyBack writes img over the same-sized view v.
func copyBack(v bitmap.View, img image.Image) error {
	out, err := ToBitmap(img)
	if err != nil {
		return err
	}
	ov := out.ReadOnlyView()
	if bitmap.CanConvert(ov.PixelFormat(), v.PixelFormat()) {
		return v.Blit(0, 0, ov)
	}
	for y := range v.Height() {
		for x := range v.Width() {
			c, err := ov.ColorAt(x, y)
			if err != nil {
				return err
			}
			if err := v.SetColorAt(x, y, c); err != nil {
				return err
			}
		}
	}
	return nil
}
