package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/integration/stdimage"
)

// InfoCmd prints what is known about an image file.
type InfoCmd struct {
	File string `arg:"" help:"Image file." type:"existingfile"`
}

// Run executes the command.
func (c *InfoCmd) Run(g *Globals) error {
	b, err := load(c.File)
	if err != nil {
		return err
	}
	v := b.ReadOnlyView()
	l := v.Layout()
	fmt.Fprintf(g.out, "file:       %s\n", c.File)
	fmt.Fprintf(g.out, "size:       %dx%d\n", l.Width(), l.Height())
	fmt.Fprintf(g.out, "format:     %v (%d bytes/pixel, alpha=%t)\n", l.PixelFormat(), l.PixelByteSize(), l.PixelFormat().HasAlpha())
	fmt.Fprintf(g.out, "bytes:      %d\n", l.BitmapByteSize())
	fmt.Fprintf(g.out, "pixel hash: %016x\n", v.PixelHash())
	return nil
}

// ConvertCmd re-encodes an image, optionally changing the pixel format.
type ConvertCmd struct {
	In          string `arg:"" help:"Input image." type:"existingfile"`
	Out         string `arg:"" help:"Output image; the extension selects the file format."`
	PixelFormat string `help:"Target pixel format name, such as RGBA32 or BGR565."`
}

// Run executes the command.
func (c *ConvertCmd) Run(g *Globals) error {
	b, err := load(c.In)
	if err != nil {
		return err
	}
	if c.PixelFormat != "" {
		f, ok := bitmap.LookupPixelFormat(c.PixelFormat)
		if !ok {
			return fmt.Errorf("unknown pixel format %q", c.PixelFormat)
		}
		if b, err = b.ReadOnlyView().ToBitmapAs(f); err != nil {
			return err
		}
	}
	return g.save(c.Out, b.ReadOnlyView())
}

// MirrorCmd flips an image.
type MirrorCmd struct {
	In         string `arg:"" help:"Input image." type:"existingfile"`
	Out        string `arg:"" help:"Output image."`
	Horizontal bool   `short:"x" help:"Reverse columns."`
	Vertical   bool   `short:"y" help:"Reverse rows."`
}

// Run executes the command.
func (c *MirrorCmd) Run(g *Globals) error {
	if !c.Horizontal && !c.Vertical {
		return errors.New("mirror: pass --horizontal, --vertical or both")
	}
	b, err := load(c.In)
	if err != nil {
		return err
	}
	if err := b.View().Mirror(c.Horizontal, c.Vertical, g.cfg.Parallel); err != nil {
		return err
	}
	return g.save(c.Out, b.ReadOnlyView())
}

// CropCmd writes a rectangle of an image. The rectangle is clamped to the
// image.
type CropCmd struct {
	In     string `arg:"" help:"Input image." type:"existingfile"`
	Out    string `arg:"" help:"Output image."`
	X      int    `help:"Left edge."`
	Y      int    `help:"Top edge."`
	Width  int    `required:"" help:"Width in pixels."`
	Height int    `required:"" help:"Height in pixels."`
}

// Run executes the command.
func (c *CropCmd) Run(g *Globals) error {
	b, err := load(c.In)
	if err != nil {
		return err
	}
	w, ok := b.ReadOnlyView().Window(bitmap.Rect(c.X, c.Y, c.Width, c.Height))
	if !ok {
		return fmt.Errorf("crop: %v does not intersect the %dx%d image", bitmap.Rect(c.X, c.Y, c.Width, c.Height), b.Layout().Width(), b.Layout().Height())
	}
	return g.save(c.Out, w)
}

// FitCmd resizes an image.
type FitCmd struct {
	In     string `arg:"" help:"Input image." type:"existingfile"`
	Out    string `arg:"" help:"Output image."`
	Width  int    `required:"" help:"Target width."`
	Height int    `required:"" help:"Target height."`
	Filter string `default:"nearest" enum:"nearest,box,linear,cubic,lanczos" help:"Resampling filter (${enum})."`
}

// Run executes the command.
func (c *FitCmd) Run(g *Globals) error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("fit: invalid size %dx%d", c.Width, c.Height)
	}
	b, err := load(c.In)
	if err != nil {
		return err
	}
	if c.Filter != "nearest" {
		f, err := stdimage.ParseFilter(c.Filter)
		if err != nil {
			return err
		}
		out, err := stdimage.Resample(b.ReadOnlyView(), c.Width, c.Height, f)
		if err != nil {
			return err
		}
		return g.save(c.Out, out.ReadOnlyView())
	}
	dst, err := bitmap.NewBitmapOf(c.Width, c.Height, b.Layout().PixelFormat())
	if err != nil {
		return err
	}
	if err := dst.View().Fit(b.ReadOnlyView()); err != nil {
		return err
	}
	return g.save(c.Out, dst.ReadOnlyView())
}

// RotateCmd rotates an image about its center, keeping its size.
type RotateCmd struct {
	In         string  `arg:"" help:"Input image." type:"existingfile"`
	Out        string  `arg:"" help:"Output image."`
	Degrees    float64 `required:"" help:"Clockwise rotation in degrees."`
	Background string  `default:"#00000000" help:"Fill for uncovered pixels as #rrggbb or #rrggbbaa."`
	Filter     string  `default:"nearest" enum:"nearest,box,linear,cubic,lanczos" help:"Sampling filter (${enum})."`
}

// Run executes the command.
func (c *RotateCmd) Run(g *Globals) error {
	b, err := load(c.In)
	if err != nil {
		return err
	}
	l := b.Layout()
	m := bitmap.RotateAt(c.Degrees*math.Pi/180, float64(l.Width())/2, float64(l.Height())/2)
	return g.transform(b, c.Out, m.Aff3(), c.Filter, c.Background)
}

// WarpCmd applies an affine matrix to an image, keeping its size.
type WarpCmd struct {
	In         string    `arg:"" help:"Input image." type:"existingfile"`
	Out        string    `arg:"" help:"Output image."`
	Matrix     []float64 `required:"" help:"Row-major source-to-destination matrix a,b,c,d,e,f."`
	Background string    `default:"#00000000" help:"Fill for uncovered pixels as #rrggbb or #rrggbbaa."`
	Filter     string    `default:"nearest" enum:"nearest,box,linear,cubic,lanczos" help:"Sampling filter (${enum})."`
}

// Run executes the command.
func (c *WarpCmd) Run(g *Globals) error {
	if len(c.Matrix) != 6 {
		return fmt.Errorf("warp: matrix needs 6 values, got %d", len(c.Matrix))
	}
	var m f64.Aff3
	copy(m[:], c.Matrix)
	b, err := load(c.In)
	if err != nil {
		return err
	}
	return g.transform(b, c.Out, m, c.Filter, c.Background)
}

// transform draws src under m onto a same-sized canvas filled with
// background and saves it. The nearest filter stays on bitmap.View.Warp.
func (g *Globals) transform(src *bitmap.Bitmap, out string, m f64.Aff3, filter, background string) error {
	bg, err := parseHexColor(background)
	if err != nil {
		return err
	}
	f, err := stdimage.ParseFilter(filter)
	if err != nil {
		return err
	}
	dst := bitmap.NewBitmap(src.Layout())
	dv := dst.View()
	if bitmap.SupportsColor(dv.PixelFormat()) {
		if err := dv.FillColor(bg); err != nil {
			return err
		}
	}
	if f == stdimage.FilterNearest {
		err = dv.Warp(bitmap.AffineFromAff3(m), src.ReadOnlyView())
	} else {
		err = stdimage.Transform(dv, m, src.ReadOnlyView(), f)
	}
	if err != nil {
		return err
	}
	return g.save(out, dst.ReadOnlyView())
}

func parseHexColor(s string) (color.NRGBA, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
	if err != nil || (len(raw) != 3 && len(raw) != 4) {
		return color.NRGBA{}, fmt.Errorf("invalid color %q, want #rrggbb or #rrggbbaa", s)
	}
	c := color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}
	if len(raw) == 4 {
		c.A = raw[3]
	}
	return c, nil
}
