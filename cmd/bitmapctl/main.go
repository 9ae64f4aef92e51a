// Command bitmapctl inspects and transforms image files with the bitmap
// package.
//
// Usage:
//
//	bitmapctl info photo.jpg
//	bitmapctl convert in.png out.bmz --pixel-format BGR565
//	bitmapctl mirror in.png out.png --horizontal
//	bitmapctl crop in.png out.png --x 10 --y 10 --width 64 --height 64
//	bitmapctl fit in.png thumb.png --width 128 --height 96
//	bitmapctl rotate in.png out.png --degrees 30 --background "#000000ff"
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/codec"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `help:"YAML configuration file." type:"path" env:"BITMAPCTL_CONFIG"`
	LogLevel string `help:"Log level (debug, info, warn, error). Overrides the config file."`
	Parallel bool   `help:"Allow parallel row processing."`
	Workers  int    `help:"Worker goroutines for parallel processing, 0 for GOMAXPROCS."`

	cfg Config
	out io.Writer
}

// CLI is the command tree.
type CLI struct {
	Globals

	Info    InfoCmd    `cmd:"" help:"Print the layout and hashes of an image."`
	Convert ConvertCmd `cmd:"" help:"Convert an image to another file or pixel format."`
	Mirror  MirrorCmd  `cmd:"" help:"Mirror an image."`
	Crop    CropCmd    `cmd:"" help:"Cut a rectangle out of an image."`
	Fit     FitCmd     `cmd:"" help:"Resize an image with nearest-neighbor sampling."`
	Rotate  RotateCmd  `cmd:"" help:"Rotate an image about its center."`
	Warp    WarpCmd    `cmd:"" help:"Apply an affine matrix to an image."`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("bitmapctl failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("bitmapctl"),
		kong.Description("Inspect and transform image files."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := cli.Globals.setup(stderr); err != nil {
		return err
	}
	defer bitmap.SetMaxWorkers(0)
	cli.Globals.out = stdout
	return ctx.Run(&cli.Globals)
}

// setup loads the configuration, applies flag overrides and installs the
// logger.
func (g *Globals) setup(stderr io.Writer) error {
	cfg, err := LoadConfig(g.Config)
	if err != nil {
		return err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.Parallel {
		cfg.Parallel = true
	}
	if g.Workers != 0 {
		cfg.Workers = g.Workers
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	bitmap.SetLogger(logger)
	bitmap.SetMaxWorkers(cfg.Workers)

	g.cfg = cfg
	logger.Debug("configured", "config", g.Config, "parallel", cfg.Parallel, "workers", bitmap.MaxWorkers())
	return nil
}

func (g *Globals) options() *codec.Options {
	return &codec.Options{Quality: g.cfg.JPEGQuality, Compress: g.cfg.Compress}
}

// save encodes v to path, adding the configured default extension when
// path has none.
func (g *Globals) save(path string, v bitmap.View) error {
	if _, err := codec.FormatFromPath(path); err != nil && g.cfg.DefaultFormat != "" {
		path += "." + g.cfg.DefaultFormat
	}
	if err := codec.EncodeFile(path, v, g.options()); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	slog.Info("wrote", "file", path, "layout", v.Layout())
	return nil
}

func load(path string) (*bitmap.Bitmap, error) {
	b, format, err := codec.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	slog.Debug("read", "file", path, "format", format, "layout", b.Layout())
	return b, nil
}
