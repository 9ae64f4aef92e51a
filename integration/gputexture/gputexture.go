// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gputexture

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/bitmap"
)

// RowAlignment is the byte alignment of BytesPerRow required for
// buffer-to-texture copies.
const RowAlignment = 256

// exact pairs texture formats with the pixel format of identical memory
// layout. All samples are little-endian, as on every supported GPU backend.
var exact = []struct {
	texture gputypes.TextureFormat
	pixel   bitmap.PixelFormat
}{
	{gputypes.TextureFormatR8Unorm, bitmap.FormatGray8},
	{gputypes.TextureFormatR16Unorm, bitmap.FormatGray16},
	{gputypes.TextureFormatR32Float, bitmap.FormatGrayFloat},
	{gputypes.TextureFormatRGBA8Unorm, bitmap.FormatRGBA32},
	{gputypes.TextureFormatBGRA8Unorm, bitmap.FormatBGRA32},
	{gputypes.TextureFormatRGBA32Float, bitmap.FormatVectorRGBA},
}

// srgb maps sRGB-encoded textures to the pixel format holding the same bytes.
// The transfer function is not applied.
var srgb = map[gputypes.TextureFormat]bitmap.PixelFormat{
	gputypes.TextureFormatRGBA8UnormSrgb: bitmap.FormatRGBA32,
	gputypes.TextureFormatBGRA8UnormSrgb: bitmap.FormatBGRA32,
}

// widen lists pixel formats without a texture equivalent and the pixel
// format they are converted to before upload.
var widen = map[bitmap.PixelFormat]bitmap.PixelFormat{
	bitmap.FormatRGB24:    bitmap.FormatRGBA32,
	bitmap.FormatBGR24:    bitmap.FormatBGRA32,
	bitmap.FormatARGB32:   bitmap.FormatRGBA32,
	bitmap.FormatBGR565:   bitmap.FormatBGRA32,
	bitmap.FormatBGRA4444: bitmap.FormatBGRA32,
	bitmap.FormatBGRA5551: bitmap.FormatBGRA32,
}

// PixelFormatOf returns the pixel format for texels of tf. sRGB textures are
// accepted only with allowCompatible, as their linear counterpart.
func PixelFormatOf(tf gputypes.TextureFormat, allowCompatible bool) (bitmap.PixelFormat, error) {
	for _, e := range exact {
		if e.texture == tf {
			return e.pixel, nil
		}
	}
	if f, ok := srgb[tf]; ok && allowCompatible {
		bitmap.Logger().Warn("gputexture: reading sRGB texels as linear", "texture", tf, "format", f)
		return f, nil
	}
	return 0, fmt.Errorf("%w: texture format %v", bitmap.ErrFormatUnsupported, tf)
}

// TextureFormatFor returns the texture format storing pixels of f. With
// allowCompatible, formats without an equivalent map to the texture format
// of their widened pixel format; Upload performs that conversion.
func TextureFormatFor(f bitmap.PixelFormat, allowCompatible bool) (gputypes.TextureFormat, error) {
	if tf, ok := textureOf(f); ok {
		return tf, nil
	}
	if allowCompatible {
		if w, ok := widen[f]; ok {
			tf, _ := textureOf(w)
			bitmap.Logger().Warn("gputexture: substituting texture format", "format", f, "texture", tf)
			return tf, nil
		}
	}
	return gputypes.TextureFormatUndefined, fmt.Errorf("%w: no texture format for %v", bitmap.ErrFormatUnsupported, f)
}

func textureOf(f bitmap.PixelFormat) (gputypes.TextureFormat, bool) {
	for _, e := range exact {
		if e.pixel == f {
			return e.texture, true
		}
	}
	return gputypes.TextureFormatUndefined, false
}

// Layout builds the bitmap layout of a single 2D image described by a
// texture copy. A BytesPerRow of 0 means tightly packed rows.
// allowCompatible is passed to PixelFormatOf.
func Layout(tf gputypes.TextureFormat, size gputypes.Extent3D, dl gputypes.TextureDataLayout, allowCompatible bool) (bitmap.Layout, error) {
	if size.DepthOrArrayLayers > 1 {
		return bitmap.Layout{}, fmt.Errorf("%w: %d layers, want 1", bitmap.ErrArgumentInvalid, size.DepthOrArrayLayers)
	}
	f, err := PixelFormatOf(tf, allowCompatible)
	if err != nil {
		return bitmap.Layout{}, err
	}
	return bitmap.NewLayout(int(size.Width), int(size.Height), f, int(dl.BytesPerRow))
}

// ReadbackView returns a read-only view over buf, a mapped buffer filled by
// a texture-to-buffer copy with data layout dl.
func ReadbackView(buf []byte, tf gputypes.TextureFormat, size gputypes.Extent3D, dl gputypes.TextureDataLayout, allowCompatible bool) (bitmap.View, error) {
	layout, err := Layout(tf, size, dl, allowCompatible)
	if err != nil {
		return bitmap.View{}, err
	}
	if dl.Offset > uint64(len(buf)) {
		return bitmap.View{}, fmt.Errorf("%w: offset %d beyond %d-byte buffer", bitmap.ErrLayoutInvalid, dl.Offset, len(buf))
	}
	return bitmap.NewReadOnlyView(buf[dl.Offset:], layout)
}

// AlignedStride rounds the row size of l up to RowAlignment.
func AlignedStride(l bitmap.Layout) int {
	return (l.RowByteSize() + RowAlignment - 1) / RowAlignment * RowAlignment
}

// Upload is a staging copy of a view, ready for a buffer-to-texture copy.
type Upload struct {
	// Pixels holds the rows at the aligned stride.
	Pixels *bitmap.Bitmap
	// Format is the texture format of the pixels.
	Format gputypes.TextureFormat
	// DataLayout describes Pixels for the copy command.
	DataLayout gputypes.TextureDataLayout
	// Size is the copy extent.
	Size gputypes.Extent3D
}

// NewUpload copies v into a staging bitmap with RowAlignment-aligned rows,
// widening formats that no texture stores directly.
func NewUpload(v bitmap.View) (*Upload, error) {
	tf, err := TextureFormatFor(v.PixelFormat(), true)
	if err != nil {
		return nil, err
	}
	target, _ := PixelFormatOf(tf, false)

	tight, err := bitmap.NewLayout(v.Width(), v.Height(), target, 0)
	if err != nil {
		return nil, err
	}
	layout, err := bitmap.NewLayout(v.Width(), v.Height(), target, AlignedStride(tight))
	if err != nil {
		return nil, err
	}
	staging := bitmap.NewBitmap(layout)
	if err := staging.View().Blit(0, 0, v); err != nil {
		return nil, err
	}

	return &Upload{
		Pixels: staging,
		Format: tf,
		DataLayout: gputypes.TextureDataLayout{
			BytesPerRow:  uint32(layout.Stride()),
			RowsPerImage: uint32(layout.Height()),
		},
		Size: gputypes.Extent3D{
			Width:              uint32(layout.Width()),
			Height:             uint32(layout.Height()),
			DepthOrArrayLayers: 1,
		},
	}, nil
}

// Descriptor returns a descriptor for a single-sample 2D texture that can
// receive this upload.
func (u *Upload) Descriptor(label string, usage gputypes.TextureUsage) gputypes.TextureDescriptor {
	return gputypes.TextureDescriptor{
		Label:         label,
		Size:          u.Size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        u.Format,
		Usage:         usage | gputypes.TextureUsageCopyDst,
	}
}
