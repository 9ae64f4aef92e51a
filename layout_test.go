package bitmap

import (
	"errors"
	"math"
	"testing"
)

func TestLayout_BitmapByteSize(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   int
	}{
		{"no trailing stride", MustLayout(10, 1, FormatX32, 64), 40},
		{"padded rows", MustLayout(10, 3, FormatX32, 64), 64*2 + 40},
		{"packed", MustLayout(10, 3, FormatBGR24, 0), 90},
		{"zero height", MustLayout(10, 0, FormatBGR24, 0), 0},
		{"zero width", MustLayout(0, 5, FormatBGR24, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layout.BitmapByteSize(); got != tt.want {
				t.Errorf("BitmapByteSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLayout_Equality(t *testing.T) {
	a := MustLayout(10, 10, FormatAlpha8, 0)
	b := MustLayout(10, 10, FormatAlpha8, 15)

	if a.Hash() != b.Hash() {
		t.Errorf("Hash() differs: %d vs %d", a.Hash(), b.Hash())
	}
	if !a.SameShape(b) {
		t.Error("SameShape() = false, want true")
	}
	if a == b || a.Equal(b) {
		t.Error("layouts with different strides must not be equal")
	}
	if a != MustLayout(10, 10, FormatAlpha8, 10) {
		t.Error("explicit default stride should equal stride 0")
	}
	if a.SameShape(MustLayout(10, 10, FormatGray8, 0)) {
		t.Error("different formats must not share a shape")
	}
}

func TestLayout_Continuous(t *testing.T) {
	if !MustLayout(4, 4, FormatRGBA32, 0).IsContinuous() {
		t.Error("packed layout should be continuous")
	}
	if MustLayout(4, 4, FormatRGBA32, 20).IsContinuous() {
		t.Error("padded layout should not be continuous")
	}
}

func TestNewLayout_Errors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		format        PixelFormat
		stride        int
		want          []error
	}{
		{"negative width", -1, 4, FormatGray8, 0, []error{ErrLayoutInvalid, ErrArgumentInvalid}},
		{"negative height", 4, -1, FormatGray8, 0, []error{ErrLayoutInvalid, ErrArgumentInvalid}},
		{"invalid format", 4, 4, PixelFormat(ChannelRed4), 0, []error{ErrLayoutInvalid, ErrFormatInvalid}},
		{"short stride", 4, 4, FormatBGR24, 11, []error{ErrLayoutInvalid}},
		{"negative stride", 4, 4, FormatBGR24, -12, []error{ErrLayoutInvalid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLayout(tt.width, tt.height, tt.format, tt.stride)
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("NewLayout() error = %v, want %v", err, want)
				}
			}
		})
	}

	// A short stride is accepted when the layout has no pixels.
	if _, err := NewLayout(0, 4, FormatBGR24, 1); err != nil {
		t.Errorf("NewLayout(0, 4, stride 1) = %v", err)
	}
}

func TestNewLayout_Overflow(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		stride        int
	}{
		{"row bytes", 1 << 62, 1, 0},
		{"rows times stride", 1 << 20, 1 << 50, 0},
		{"explicit stride", 4, 3, math.MaxInt - 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLayout(tt.width, tt.height, FormatX32, tt.stride); !errors.Is(err, ErrLayoutInvalid) {
				t.Errorf("NewLayout(%d, %d, %d) error = %v, want ErrLayoutInvalid", tt.width, tt.height, tt.stride, err)
			}
		})
	}

	// One huge row stays representable.
	if _, err := NewLayout(4, 1, FormatX32, math.MaxInt-2); err != nil {
		t.Errorf("single row with huge stride = %v", err)
	}
}

func TestLayout_SpanRejectsBadRanges(t *testing.T) {
	l := MustLayout(4, 4, FormatGray8, 0)
	buf := make([]byte, l.BitmapByteSize())

	for _, r := range []struct{ start, n int }{{-4, 4}, {0, -1}, {17, 0}, {12, math.MaxInt}} {
		if _, err := l.span(buf, r.start, r.n); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("span(%d, %d) error = %v, want ErrOutOfBounds", r.start, r.n, err)
		}
	}
	if b, err := l.span(buf, 16, 0); err != nil || len(b) != 0 {
		t.Errorf("span(16, 0) = %v, %v", b, err)
	}
}

func TestLayout_Slice(t *testing.T) {
	parent := MustLayout(8, 6, FormatBGR24, 32)

	offset, child, err := parent.Slice(Rect(2, 3, 4, 2))
	if err != nil {
		t.Fatalf("Slice() = %v", err)
	}
	if want := 32*3 + 3*2; offset != want {
		t.Errorf("offset = %d, want %d", offset, want)
	}
	if child.Width() != 4 || child.Height() != 2 || child.Stride() != 32 || child.PixelFormat() != FormatBGR24 {
		t.Errorf("child = %v stride %d", child, child.Stride())
	}

	for _, b := range []Bounds{
		Rect(-1, 0, 2, 2),
		Rect(0, -1, 2, 2),
		Rect(7, 0, 2, 1),
		Rect(0, 5, 1, 2),
		Rect(0, 0, 9, 1),
		Rect(0, 0, -1, 1),
	} {
		if _, _, err := parent.Slice(b); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Slice(%v) error = %v, want ErrOutOfBounds", b, err)
		}
	}
}

func TestLayout_Addressing(t *testing.T) {
	l := MustLayout(4, 3, FormatRGB24, 16)
	buf := make([]byte, l.BitmapByteSize())
	for i := range buf {
		buf[i] = byte(i)
	}

	row, err := l.Scanline(buf, 2)
	if err != nil || len(row) != 12 || row[0] != 32 {
		t.Errorf("Scanline(2) = %v, %v", row, err)
	}
	px, err := l.Pixel(buf, 1, 1)
	if err != nil || len(px) != 3 || px[0] != 19 {
		t.Errorf("Pixel(1, 1) = %v, %v", px, err)
	}
	run, err := l.PixelRun(buf, 1, 0, 3)
	if err != nil || len(run) != 9 || run[0] != 3 {
		t.Errorf("PixelRun(1, 0, 3) = %v, %v", run, err)
	}

	if _, err := l.Scanline(buf, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Scanline(3) error = %v, want ErrOutOfBounds", err)
	}
	if _, err := l.PixelRun(buf, 2, 0, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("PixelRun past width error = %v, want ErrOutOfBounds", err)
	}
	if _, err := l.Pixel(buf[:10], 3, 2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Pixel on short buffer error = %v, want ErrOutOfBounds", err)
	}
}

func TestLayout_String(t *testing.T) {
	if got := MustLayout(3, 2, FormatBGRA32, 0).String(); got != "BGRA32×3×2" {
		t.Errorf("String() = %q", got)
	}
}
