// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stdimage

import (
	"errors"
	"testing"

	"github.com/gogpu/bitmap"
)

func TestParseFilter(t *testing.T) {
	for _, f := range []Filter{FilterNearest, FilterBox, FilterLinear, FilterCubic, FilterLanczos} {
		got, err := ParseFilter(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFilter(%q) = %v, %v, want %v", f.String(), got, err, f)
		}
	}
	if _, err := ParseFilter("sinc"); !errors.Is(err, bitmap.ErrArgumentInvalid) {
		t.Errorf("ParseFilter(sinc) error = %v, want ErrArgumentInvalid", err)
	}
}

func TestResample_GrayKeepsFormat(t *testing.T) {
	src, _ := bitmap.NewBitmapOf(2, 1, bitmap.FormatGray8)
	copy(src.Bytes(), []byte{0, 200})

	out, err := Resample(src.ReadOnlyView(), 6, 1, FilterLinear)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	l := out.Layout()
	if l.Width() != 6 || l.Height() != 1 || l.PixelFormat() != bitmap.FormatGray8 {
		t.Fatalf("Resample() layout = %v, want 6x1 Gray8", l)
	}
	px := out.Bytes()
	for i := 1; i < len(px); i++ {
		if px[i] < px[i-1] {
			t.Errorf("row %v is not monotonic", px)
			break
		}
	}
	if px[0] >= px[5] {
		t.Errorf("row %v should rise from left to right", px)
	}
}

func TestResample_UniformRGB(t *testing.T) {
	src, _ := bitmap.NewBitmapOf(3, 3, bitmap.FormatRGB24)
	for i := 0; i < len(src.Bytes()); i += 3 {
		copy(src.Bytes()[i:], []byte{10, 20, 30})
	}

	out, err := Resample(src.ReadOnlyView(), 7, 5, FilterLanczos)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	if out.Layout().PixelFormat() != bitmap.FormatRGB24 {
		t.Fatalf("format = %v, want RGB24", out.Layout().PixelFormat())
	}
	want := []byte{10, 20, 30}
	for i, b := range out.Bytes() {
		if d := int(b) - int(want[i%3]); d < -1 || d > 1 {
			t.Fatalf("byte %d = %d, want %d", i, b, want[i%3])
		}
	}
}

func TestResample_Errors(t *testing.T) {
	src, _ := bitmap.NewBitmapOf(2, 2, bitmap.FormatRGBA32)
	v := src.View()

	if _, err := Resample(v, 0, 4, FilterBox); !errors.Is(err, bitmap.ErrArgumentInvalid) {
		t.Errorf("zero width error = %v, want ErrArgumentInvalid", err)
	}
	if _, err := Resample(v, 4, 4, Filter(99)); !errors.Is(err, bitmap.ErrArgumentInvalid) {
		t.Errorf("bad filter error = %v, want ErrArgumentInvalid", err)
	}
	idx, _ := bitmap.NewBitmapOf(2, 2, bitmap.FormatIndex8)
	if _, err := Resample(idx.View(), 4, 4, FilterBox); !errors.Is(err, bitmap.ErrFormatUnsupported) {
		t.Errorf("Index8 error = %v, want ErrFormatUnsupported", err)
	}
}

func TestTransform(t *testing.T) {
	src, _ := bitmap.NewBitmapOf(2, 1, bitmap.FormatGray8)
	copy(src.Bytes(), []byte{0, 200})

	tests := []struct {
		name string
		m    bitmap.Affine
		want string
	}{
		{"scale", bitmap.Scale(2, 1), "\x00\x00\xc8\xc8"},
		{"translate", bitmap.Translate(2, 0), "\x32\x32\x00\xc8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, _ := bitmap.NewBitmapOf(4, 1, bitmap.FormatGray8)
			copy(dst.Bytes(), []byte{50, 50, 50, 50})
			if err := Transform(dst.View(), tt.m.Aff3(), src.ReadOnlyView(), FilterNearest); err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if got := string(dst.Bytes()); got != tt.want {
				t.Errorf("Transform() = %v, want %v", dst.Bytes(), []byte(tt.want))
			}
		})
	}
}

func TestTransform_UniformKeepsColor(t *testing.T) {
	src, _ := bitmap.NewBitmapOf(3, 3, bitmap.FormatRGB24)
	for i := 0; i < len(src.Bytes()); i += 3 {
		copy(src.Bytes()[i:], []byte{10, 20, 30})
	}
	dst, _ := bitmap.NewBitmapOf(6, 6, bitmap.FormatRGB24)

	if err := Transform(dst.View(), bitmap.Scale(2, 2).Aff3(), src.ReadOnlyView(), FilterLinear); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	for i := 0; i < len(dst.Bytes()); i += 3 {
		if got := dst.Bytes()[i : i+3]; string(got) != "\x0a\x14\x1e" {
			t.Fatalf("pixel %d = %v, want [10 20 30]", i/3, got)
		}
	}
}

func TestTransform_Errors(t *testing.T) {
	src, _ := bitmap.NewBitmapOf(2, 2, bitmap.FormatGray8)
	dst, _ := bitmap.NewBitmapOf(2, 2, bitmap.FormatGray8)

	if err := Transform(dst.ReadOnlyView(), bitmap.Identity().Aff3(), src.ReadOnlyView(), FilterNearest); !errors.Is(err, bitmap.ErrReadOnly) {
		t.Errorf("read-only error = %v, want ErrReadOnly", err)
	}
	if err := Transform(dst.View(), bitmap.Scale(0, 1).Aff3(), src.ReadOnlyView(), FilterNearest); !errors.Is(err, bitmap.ErrArgumentInvalid) {
		t.Errorf("singular error = %v, want ErrArgumentInvalid", err)
	}
	if err := Transform(dst.View(), bitmap.Identity().Aff3(), src.ReadOnlyView(), Filter(99)); !errors.Is(err, bitmap.ErrArgumentInvalid) {
		t.Errorf("bad filter error = %v, want ErrArgumentInvalid", err)
	}
}
