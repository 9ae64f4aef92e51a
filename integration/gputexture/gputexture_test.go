// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gputexture

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/bitmap"
)

func TestFormatRoundTrip(t *testing.T) {
	for _, e := range exact {
		t.Run(e.texture.String(), func(t *testing.T) {
			f, err := PixelFormatOf(e.texture, false)
			if err != nil || f != e.pixel {
				t.Fatalf("PixelFormatOf(%v) = %v, %v, want %v", e.texture, f, err, e.pixel)
			}
			tf, err := TextureFormatFor(f, false)
			if err != nil || tf != e.texture {
				t.Errorf("TextureFormatFor(%v) = %v, %v, want %v", f, tf, err, e.texture)
			}
		})
	}
}

func TestPixelFormatOfSrgb(t *testing.T) {
	if _, err := PixelFormatOf(gputypes.TextureFormatRGBA8UnormSrgb, false); !errors.Is(err, bitmap.ErrFormatUnsupported) {
		t.Errorf("strict sRGB lookup error = %v, want ErrFormatUnsupported", err)
	}
	f, err := PixelFormatOf(gputypes.TextureFormatBGRA8UnormSrgb, true)
	if err != nil || f != bitmap.FormatBGRA32 {
		t.Errorf("PixelFormatOf(BGRA8UnormSrgb, true) = %v, %v, want BGRA32", f, err)
	}
	if _, err := PixelFormatOf(gputypes.TextureFormatRG8Unorm, true); !errors.Is(err, bitmap.ErrFormatUnsupported) {
		t.Errorf("RG8Unorm error = %v, want ErrFormatUnsupported", err)
	}
}

func TestTextureFormatForWidened(t *testing.T) {
	for f, w := range widen {
		if _, err := TextureFormatFor(f, false); !errors.Is(err, bitmap.ErrFormatUnsupported) {
			t.Errorf("TextureFormatFor(%v, false) error = %v, want ErrFormatUnsupported", f, err)
		}
		tf, err := TextureFormatFor(f, true)
		if err != nil {
			t.Fatalf("TextureFormatFor(%v, true) error = %v", f, err)
		}
		if want, _ := textureOf(w); tf != want {
			t.Errorf("TextureFormatFor(%v, true) = %v, want %v", f, tf, want)
		}
		if !bitmap.CanConvert(f, w) {
			t.Errorf("CanConvert(%v, %v) = false, upload would fail", f, w)
		}
	}
}

func TestLayout(t *testing.T) {
	size := gputypes.Extent3D{Width: 10, Height: 3, DepthOrArrayLayers: 1}

	l, err := Layout(gputypes.TextureFormatRGBA8Unorm, size, gputypes.TextureDataLayout{BytesPerRow: 256}, false)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if l.Width() != 10 || l.Height() != 3 || l.Stride() != 256 || l.PixelFormat() != bitmap.FormatRGBA32 {
		t.Errorf("Layout() = %v", l)
	}

	l, err = Layout(gputypes.TextureFormatR8Unorm, size, gputypes.TextureDataLayout{}, false)
	if err != nil || l.Stride() != 10 {
		t.Errorf("tight Layout() = %v, %v, want stride 10", l, err)
	}

	size.DepthOrArrayLayers = 2
	if _, err := Layout(gputypes.TextureFormatR8Unorm, size, gputypes.TextureDataLayout{}, false); !errors.Is(err, bitmap.ErrArgumentInvalid) {
		t.Errorf("layered Layout() error = %v, want ErrArgumentInvalid", err)
	}

	size.DepthOrArrayLayers = 1
	if _, err := Layout(gputypes.TextureFormatRGBA8Unorm, size, gputypes.TextureDataLayout{BytesPerRow: 8}, false); !errors.Is(err, bitmap.ErrLayoutInvalid) {
		t.Errorf("short BytesPerRow error = %v, want ErrLayoutInvalid", err)
	}

	// sRGB texels only map when the caller accepts a compatible format.
	dl := gputypes.TextureDataLayout{}
	if _, err := Layout(gputypes.TextureFormatRGBA8UnormSrgb, size, dl, false); !errors.Is(err, bitmap.ErrFormatUnsupported) {
		t.Errorf("exact sRGB Layout() error = %v, want ErrFormatUnsupported", err)
	}
	if l, err := Layout(gputypes.TextureFormatRGBA8UnormSrgb, size, dl, true); err != nil || l.PixelFormat() != bitmap.FormatRGBA32 {
		t.Errorf("compatible sRGB Layout() = %v, %v, want RGBA32", l, err)
	}
	buf := make([]byte, 4*10*3)
	if _, err := ReadbackView(buf, gputypes.TextureFormatBGRA8UnormSrgb, size, dl, false); !errors.Is(err, bitmap.ErrFormatUnsupported) {
		t.Errorf("exact sRGB ReadbackView() error = %v, want ErrFormatUnsupported", err)
	}
}

func TestReadbackView(t *testing.T) {
	size := gputypes.Extent3D{Width: 2, Height: 2, DepthOrArrayLayers: 1}
	dl := gputypes.TextureDataLayout{Offset: 4, BytesPerRow: 256}
	buf := make([]byte, 4+256+2)
	buf[4+256+1] = 0x7f

	v, err := ReadbackView(buf, gputypes.TextureFormatR8Unorm, size, dl, false)
	if err != nil {
		t.Fatalf("ReadbackView() error = %v", err)
	}
	if !v.IsReadOnly() {
		t.Error("readback view should be read-only")
	}
	px, err := v.Pixel(1, 1)
	if err != nil || px[0] != 0x7f {
		t.Errorf("Pixel(1, 1) = %v, %v, want [127]", px, err)
	}

	dl.Offset = 1000
	if _, err := ReadbackView(buf, gputypes.TextureFormatR8Unorm, size, dl, false); !errors.Is(err, bitmap.ErrLayoutInvalid) {
		t.Errorf("offset past end error = %v, want ErrLayoutInvalid", err)
	}
}

func TestAlignedStride(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{1, 256},
		{64, 256},
		{65, 512},
		{128, 512},
	}
	for _, tt := range tests {
		l := bitmap.MustLayout(tt.width, 1, bitmap.FormatRGBA32, 0)
		if got := AlignedStride(l); got != tt.want {
			t.Errorf("AlignedStride(width %d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestNewUpload(t *testing.T) {
	src, err := bitmap.NewBitmapOf(3, 2, bitmap.FormatRGB24)
	if err != nil {
		t.Fatal(err)
	}
	for i := range src.Bytes() {
		src.Bytes()[i] = byte(i + 1)
	}

	up, err := NewUpload(src.ReadOnlyView())
	if err != nil {
		t.Fatalf("NewUpload() error = %v", err)
	}
	if up.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", up.Format)
	}
	if up.DataLayout.BytesPerRow != 256 || up.DataLayout.RowsPerImage != 2 {
		t.Errorf("DataLayout = %+v", up.DataLayout)
	}
	if up.Size != (gputypes.Extent3D{Width: 3, Height: 2, DepthOrArrayLayers: 1}) {
		t.Errorf("Size = %+v", up.Size)
	}

	v := up.Pixels.View()
	px, _ := v.Pixel(2, 1)
	// Source pixel (2, 1) starts at byte 3*3 + 2*3 = 15.
	want := []byte{16, 17, 18, 0xff}
	for i := range want {
		if px[i] != want[i] {
			t.Fatalf("Pixel(2, 1) = %v, want %v", px, want)
		}
	}

	desc := up.Descriptor("upload", gputypes.TextureUsageTextureBinding)
	if desc.Usage != gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst {
		t.Errorf("Usage = %v, want TextureBinding|CopyDst", desc.Usage)
	}
	if desc.Dimension != gputypes.TextureDimension2D || desc.MipLevelCount != 1 || desc.SampleCount != 1 {
		t.Errorf("Descriptor() = %+v", desc)
	}
}

func TestNewUploadUnsupported(t *testing.T) {
	src, _ := bitmap.NewBitmapOf(2, 2, bitmap.FormatIndex8)
	if _, err := NewUpload(src.View()); !errors.Is(err, bitmap.ErrFormatUnsupported) {
		t.Errorf("NewUpload(Index8) error = %v, want ErrFormatUnsupported", err)
	}
}
