package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register the WebP decoder

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/integration/stdimage"
)

// Errors returned by the codec functions.
var (
	// ErrUnknownFormat is returned for a file format that is neither
	// registered with the image package nor the bitmap container.
	ErrUnknownFormat = errors.New("codec: unknown file format")

	// ErrEncodeUnsupported is returned when a format can be read but not written.
	ErrEncodeUnsupported = errors.New("codec: format cannot be encoded")

	// ErrCorrupt is returned when container data is malformed.
	ErrCorrupt = errors.New("codec: corrupt data")
)

// Format names a file format. Its value matches the name registered with
// the image package.
type Format string

// Supported file formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WebP Format = "webp"
	QOI  Format = "qoi"
	BMZ  Format = "bmz"
)

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".webp": WebP,
	".qoi":  QOI,
	".bmz":  BMZ,
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}
	return f, nil
}

// CanEncode reports whether Encode can write f.
func (f Format) CanEncode() bool {
	switch f {
	case PNG, JPEG, GIF, BMP, TIFF, QOI, BMZ:
		return true
	}
	return false
}

// Options tune encoding. The zero value selects defaults.
type Options struct {
	// Quality is the JPEG quality in [1, 100]. Zero selects jpeg.DefaultQuality.
	Quality int

	// Compress enables Deflate for TIFF and better-ratio zstd for BMZ.
	Compress bool
}

// Decode reads an image in any supported format into an owned bitmap. Image
// types with an exact pixel format keep it; others are converted to RGBA32.
func Decode(r io.Reader) (*bitmap.Bitmap, Format, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bmzMagic)); err == nil && bytes.Equal(head, bmzMagic[:]) {
		b, err := decodeBMZ(br)
		return b, BMZ, err
	}

	img, name, err := image.Decode(br)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: %w", ErrUnknownFormat, err)
		}
		return nil, Format(name), fmt.Errorf("codec: decode %s: %w", name, err)
	}
	b, err := stdimage.ToBitmap(img)
	if err != nil {
		return nil, Format(name), err
	}
	bitmap.Logger().Debug("codec: decoded", "format", name, "layout", b.Layout())
	return b, Format(name), nil
}

// TryDecode is like Decode but reports failure as false. The error is logged
// at debug level.
func TryDecode(r io.Reader) (*bitmap.Bitmap, bool) {
	b, _, err := Decode(r)
	if err != nil {
		bitmap.Logger().Debug("codec: decode failed", "err", err)
		return nil, false
	}
	return b, true
}

// Encode writes v to w in format f. Formats other than BMZ go through the
// closest standard image model, converting pixels when needed.
func Encode(w io.Writer, v bitmap.View, f Format, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	if f == BMZ {
		return encodeBMZ(w, v, opts.Compress)
	}
	if !f.CanEncode() {
		if _, ok := extensions["."+string(f)]; ok {
			return fmt.Errorf("%w: %s", ErrEncodeUnsupported, f)
		}
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	img, err := stdimage.FromView(v, true)
	if err != nil {
		return err
	}

	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		q := opts.Quality
		if q == 0 {
			q = jpeg.DefaultQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: min(max(q, 1), 100)})
	case GIF:
		return gif.Encode(w, img, nil)
	case BMP:
		return bmp.Encode(w, img)
	case QOI:
		return qoi.Encode(w, img)
	default: // TIFF
		to := &tiff.Options{}
		if opts.Compress {
			to.Compression = tiff.Deflate
			to.Predictor = true
		}
		return tiff.Encode(w, img, to)
	}
}

// TryEncode is like Encode but reports failure as false. The error is logged
// at debug level.
func TryEncode(w io.Writer, v bitmap.View, f Format, opts *Options) bool {
	if err := Encode(w, v, f, opts); err != nil {
		bitmap.Logger().Debug("codec: encode failed", "format", f, "err", err)
		return false
	}
	return true
}

// DecodeFile decodes the file at path.
func DecodeFile(path string) (*bitmap.Bitmap, Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()
	return Decode(file)
}

// EncodeFile writes v to path in the format named by its extension.
func EncodeFile(path string, v bitmap.View, opts *Options) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(file)
	if err := Encode(bw, v, f, opts); err != nil {
		return err
	}
	return bw.Flush()
}
