// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stdimage

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/bitmap"
)

// ErrNotWrappable is returned by Wrap when the image type has no pixel
// format that shares its memory layout.
var ErrNotWrappable = errors.New("stdimage: image cannot be wrapped without copying")

// Model identifies one of the concrete image types of the standard library.
type Model int

const (
	ModelUnknown Model = iota
	ModelGray          // *image.Gray
	ModelGray16        // *image.Gray16, big-endian samples
	ModelAlpha         // *image.Alpha
	ModelNRGBA         // *image.NRGBA
	ModelRGBA          // *image.RGBA, premultiplied alpha
)

var modelNames = [...]string{
	ModelUnknown: "unknown",
	ModelGray:    "Gray",
	ModelGray16:  "Gray16",
	ModelAlpha:   "Alpha",
	ModelNRGBA:   "NRGBA",
	ModelRGBA:    "RGBA",
}

// String returns the image type name.
func (m Model) String() string {
	if m < 0 || int(m) >= len(modelNames) {
		return modelNames[ModelUnknown]
	}
	return modelNames[m]
}

// exact maps models whose memory image is a bitmap pixel format as is.
var exact = map[Model]bitmap.PixelFormat{
	ModelGray:  bitmap.FormatGray8,
	ModelAlpha: bitmap.FormatAlpha8,
	ModelNRGBA: bitmap.FormatRGBA32,
}

// compatible lists the substitutes used when a format has no exact model.
var compatible = map[bitmap.PixelFormat]Model{
	bitmap.FormatGray16:     ModelGray16,
	bitmap.FormatGrayFloat:  ModelGray16,
	bitmap.FormatRGB24:      ModelNRGBA,
	bitmap.FormatBGR24:      ModelNRGBA,
	bitmap.FormatBGRA32:     ModelNRGBA,
	bitmap.FormatARGB32:     ModelNRGBA,
	bitmap.FormatBGR565:     ModelNRGBA,
	bitmap.FormatBGRA4444:   ModelNRGBA,
	bitmap.FormatBGRA5551:   ModelNRGBA,
	bitmap.FormatVectorBGR:  ModelNRGBA,
	bitmap.FormatVectorBGRA: ModelNRGBA,
	bitmap.FormatVectorRGBA: ModelNRGBA,
}

// ModelOf returns the model of img.
func ModelOf(img image.Image) Model {
	switch img.(type) {
	case *image.Gray:
		return ModelGray
	case *image.Gray16:
		return ModelGray16
	case *image.Alpha:
		return ModelAlpha
	case *image.NRGBA:
		return ModelNRGBA
	case *image.RGBA:
		return ModelRGBA
	default:
		return ModelUnknown
	}
}

// PixelFormatOf returns the pixel format sharing the memory layout of m.
// Premultiplied RGBA and big-endian Gray16 have none and fail with
// bitmap.ErrFormatUnsupported.
func PixelFormatOf(m Model) (bitmap.PixelFormat, error) {
	f, ok := exact[m]
	if !ok {
		return 0, fmt.Errorf("%w: no pixel format matches image.%v", bitmap.ErrFormatUnsupported, m)
	}
	return f, nil
}

// ModelFor returns the image model storing pixels of format f. Without
// allowCompatible only a model with the same memory layout is accepted;
// with it, a close model is substituted and pixels are converted on copy.
func ModelFor(f bitmap.PixelFormat, allowCompatible bool) (Model, error) {
	for m, mf := range exact {
		if mf == f {
			return m, nil
		}
	}
	if allowCompatible {
		if m, ok := compatible[f]; ok {
			bitmap.Logger().Warn("stdimage: substituting image model", "format", f, "model", m)
			return m, nil
		}
	}
	return ModelUnknown, fmt.Errorf("%w: no image model for %v", bitmap.ErrFormatUnsupported, f)
}

// Wrap returns a view sharing memory with img. The view is valid while img
// is alive. Image types without an exact pixel format fail with
// ErrNotWrappable; use ToBitmap to copy them instead.
func Wrap(img image.Image) (bitmap.View, error) {
	pix, stride, err := pixels(img)
	if err != nil {
		return bitmap.View{}, err
	}
	f, err := PixelFormatOf(ModelOf(img))
	if err != nil {
		return bitmap.View{}, fmt.Errorf("%w: %w", ErrNotWrappable, err)
	}
	b := img.Bounds()
	layout, err := bitmap.NewLayout(b.Dx(), b.Dy(), f, stride)
	if err != nil {
		return bitmap.View{}, err
	}
	return bitmap.NewView(pix, layout)
}

func pixels(img image.Image) ([]byte, int, error) {
	switch m := img.(type) {
	case *image.Gray:
		return m.Pix, m.Stride, nil
	case *image.Alpha:
		return m.Pix, m.Stride, nil
	case *image.NRGBA:
		return m.Pix, m.Stride, nil
	case nil:
		return nil, 0, fmt.Errorf("%w: nil image", bitmap.ErrArgumentInvalid)
	default:
		return nil, 0, fmt.Errorf("%w: %T", ErrNotWrappable, img)
	}
}

// ToBitmap copies any image into an owned bitmap. Images with an exact
// pixel format keep it; Gray16 becomes little-endian Gray16; everything
// else is converted to non-premultiplied RGBA32.
func ToBitmap(img image.Image) (*bitmap.Bitmap, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", bitmap.ErrArgumentInvalid)
	}
	if v, err := Wrap(img); err == nil {
		return v.ToBitmap(), nil
	}

	b := img.Bounds()
	if g, ok := img.(*image.Gray16); ok {
		out, err := bitmap.NewBitmapOf(b.Dx(), b.Dy(), bitmap.FormatGray16)
		if err != nil {
			return nil, err
		}
		dst := out.Bytes()
		for y := range b.Dy() {
			row := g.Pix[y*g.Stride : y*g.Stride+2*b.Dx()]
			for x := range b.Dx() {
				// Swap big-endian samples to little-endian.
				dst[2*(y*b.Dx()+x)] = row[2*x+1]
				dst[2*(y*b.Dx()+x)+1] = row[2*x]
			}
		}
		return out, nil
	}

	bitmap.Logger().Debug("stdimage: converting image", "type", fmt.Sprintf("%T", img), "to", bitmap.FormatRGBA32)
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	v, err := Wrap(nrgba)
	if err != nil {
		return nil, err
	}
	return v.ToBitmap(), nil
}

// FromView copies v into a new image of the model selected by ModelFor.
func FromView(v bitmap.View, allowCompatible bool) (image.Image, error) {
	m, err := ModelFor(v.PixelFormat(), allowCompatible)
	if err != nil {
		return nil, err
	}
	r := image.Rect(0, 0, v.Width(), v.Height())

	switch m {
	case ModelGray16:
		return toGray16(v, r)
	case ModelGray:
		img := image.NewGray(r)
		return img, blitInto(img, v)
	case ModelAlpha:
		img := image.NewAlpha(r)
		return img, blitInto(img, v)
	default:
		img := image.NewNRGBA(r)
		return img, blitInto(img, v)
	}
}

func blitInto(img image.Image, v bitmap.View) error {
	dst, err := Wrap(img)
	if err != nil {
		return err
	}
	if bitmap.CanConvert(v.PixelFormat(), dst.PixelFormat()) {
		return dst.Blit(0, 0, v)
	}
	// No direct table entry: decode pixel by pixel through color access.
	for y := range v.Height() {
		for x := range v.Width() {
			c, err := v.ColorAt(x, y)
			if err != nil {
				return err
			}
			if err := dst.SetColorAt(x, y, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func toGray16(v bitmap.View, r image.Rectangle) (image.Image, error) {
	img := image.NewGray16(r)
	for y := range v.Height() {
		for x := range v.Width() {
			var g uint16
			if v.PixelFormat() == bitmap.FormatGray16 {
				px, err := v.Pixel(x, y)
				if err != nil {
					return nil, err
				}
				g = uint16(px[0]) | uint16(px[1])<<8
			} else {
				c, err := v.ColorAt(x, y)
				if err != nil {
					return nil, err
				}
				g = bitmap.NewGray16(c).Y
			}
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1] = byte(g>>8), byte(g)
		}
	}
	return img, nil
}
