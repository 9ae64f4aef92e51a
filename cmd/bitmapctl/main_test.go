package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/codec"
)

// writeInput stores a 4x3 Gray8 image whose pixel (x, y) is 10*y + x + 1.
func writeInput(t *testing.T, dir string) string {
	t.Helper()
	b, err := bitmap.NewBitmapOf(4, 3, bitmap.FormatGray8)
	if err != nil {
		t.Fatal(err)
	}
	for y := range 3 {
		for x := range 4 {
			b.Bytes()[y*4+x] = byte(10*y + x + 1)
		}
	}
	path := filepath.Join(dir, "in.png")
	if err := codec.EncodeFile(path, b.View(), nil); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if err := run(append([]string{"--log-level", "error"}, args...), &stdout, &stderr); err != nil {
		t.Fatalf("run(%v) error = %v\n%s", args, err, stderr.String())
	}
	return stdout.String()
}

func readOutput(t *testing.T, path string) bitmap.View {
	t.Helper()
	b, _, err := codec.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile(%q) error = %v", path, err)
	}
	return b.ReadOnlyView()
}

func gray(t *testing.T, v bitmap.View, x, y int) byte {
	t.Helper()
	px, err := v.Pixel(x, y)
	if err != nil {
		t.Fatalf("Pixel(%d, %d) error = %v", x, y, err)
	}
	return px[0]
}

func TestInfo(t *testing.T) {
	in := writeInput(t, t.TempDir())
	out := runCLI(t, "info", in)
	for _, want := range []string{"size:       4x3", "format:     Gray8"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "out.bmz")

	runCLI(t, "convert", in, out, "--pixel-format", "rgba32")

	v := readOutput(t, out)
	if v.PixelFormat() != bitmap.FormatRGBA32 || v.Width() != 4 || v.Height() != 3 {
		t.Fatalf("converted layout = %v", v.Layout())
	}
	c, _ := v.ColorAt(2, 1)
	if c.R != 13 || c.G != 13 || c.B != 13 || c.A != 0xff {
		t.Errorf("ColorAt(2, 1) = %v, want gray 13", c)
	}
}

func TestConvertUnknownPixelFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	var stdout, stderr bytes.Buffer
	err := run([]string{"convert", in, filepath.Join(dir, "o.png"), "--pixel-format", "CMYK"}, &stdout, &stderr)
	if err == nil {
		t.Error("run(convert CMYK) error = nil, want error")
	}
}

func TestMirror(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "m.png")

	runCLI(t, "--parallel", "mirror", in, out, "--horizontal", "--vertical")

	v := readOutput(t, out)
	if got := gray(t, v, 0, 0); got != 24 {
		t.Errorf("mirrored (0, 0) = %d, want 24", got)
	}
	if got := gray(t, v, 3, 2); got != 1 {
		t.Errorf("mirrored (3, 2) = %d, want 1", got)
	}
}

func TestCropClamps(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "c.png")

	runCLI(t, "crop", in, out, "--x", "1", "--y", "1", "--width", "10", "--height", "10")

	v := readOutput(t, out)
	if v.Width() != 3 || v.Height() != 2 {
		t.Fatalf("cropped size = %dx%d, want 3x2", v.Width(), v.Height())
	}
	if got := gray(t, v, 0, 0); got != 12 {
		t.Errorf("cropped (0, 0) = %d, want 12", got)
	}
}

func TestFitAndDefaultExtension(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "thumb")

	runCLI(t, "fit", in, out, "--width", "8", "--height", "6")

	v := readOutput(t, out+".png")
	if v.Width() != 8 || v.Height() != 6 {
		t.Fatalf("fitted size = %dx%d, want 8x6", v.Width(), v.Height())
	}
	if got := gray(t, v, 7, 5); got != 24 {
		t.Errorf("fitted (7, 5) = %d, want 24", got)
	}
}

func TestFitFiltered(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "smooth.png")

	runCLI(t, "fit", in, out, "--width", "2", "--height", "2", "--filter", "box")

	v := readOutput(t, out)
	if v.Width() != 2 || v.Height() != 2 || v.PixelFormat() != bitmap.FormatGray8 {
		t.Fatalf("filtered layout = %v, want 2x2 Gray8", v.Layout())
	}
}

func TestRotate(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "r.png")

	runCLI(t, "rotate", in, out, "--degrees", "180")

	v := readOutput(t, out)
	if got := gray(t, v, 0, 0); got != 24 {
		t.Errorf("rotated (0, 0) = %d, want 24", got)
	}
	if got := gray(t, v, 3, 2); got != 1 {
		t.Errorf("rotated (3, 2) = %d, want 1", got)
	}
}

func TestRotate_Filtered(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "r.png")

	runCLI(t, "rotate", in, out, "--degrees", "0", "--filter", "linear")

	v := readOutput(t, out)
	if v.Width() != 4 || v.Height() != 3 || v.PixelFormat() != bitmap.FormatGray8 {
		t.Fatalf("rotated layout = %v, want 4x3 Gray8", v.Layout())
	}
	if got := gray(t, v, 2, 1); got != 13 {
		t.Errorf("unrotated (2, 1) = %d, want 13", got)
	}
}

func TestWarp(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)

	tests := []struct {
		name   string
		filter string
	}{
		{"nearest", "nearest"},
		{"cubic", "cubic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+".png")
			// Shift right by one pixel; column 0 keeps the background.
			runCLI(t, "warp", in, out, "--matrix", "1,0,1,0,1,0", "--background", "#000000", "--filter", tt.filter)

			v := readOutput(t, out)
			if got := gray(t, v, 0, 1); got != 0 {
				t.Errorf("(0, 1) = %d, want background 0", got)
			}
			if got := gray(t, v, 1, 1); got != 11 {
				t.Errorf("(1, 1) = %d, want 11", got)
			}
			if got := gray(t, v, 3, 2); got != 23 {
				t.Errorf("(3, 2) = %d, want 23", got)
			}
		})
	}

	var stdout, stderr bytes.Buffer
	err := run([]string{"warp", in, filepath.Join(dir, "bad.png"), "--matrix", "1,0,0"}, &stdout, &stderr)
	if err == nil {
		t.Error("run(warp) with 3 values error = nil, want error")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	cfg := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(cfg, []byte("default_format: bmz\nworkers: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	runCLI(t, "--config", cfg, "mirror", in, filepath.Join(dir, "out"), "-y")

	if _, err := os.Stat(filepath.Join(dir, "out.bmz")); err != nil {
		t.Errorf("expected out.bmz: %v", err)
	}
}

func TestMirrorNeedsAxis(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	var stdout, stderr bytes.Buffer
	if err := run([]string{"mirror", in, filepath.Join(dir, "o.png")}, &stdout, &stderr); err == nil {
		t.Error("run(mirror) without axes error = nil, want error")
	}
}
