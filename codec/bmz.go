package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/bitmap"
)

// A BMZ file stores a bitmap losslessly in any pixel format:
//
//	magic  [4]byte  "BMZ1"
//	width  uint32   little-endian
//	height uint32
//	format uint32   packed pixel format code
//	pixels          zstd stream of tightly packed rows
var bmzMagic = [4]byte{'B', 'M', 'Z', '1'}

type bmzHeader struct {
	Width  uint32
	Height uint32
	Format uint32
}

// maxBMZBytes bounds the pixel payload accepted from a header.
const maxBMZBytes = 1 << 31

func encodeBMZ(w io.Writer, v bitmap.View, compress bool) error {
	if _, err := w.Write(bmzMagic[:]); err != nil {
		return err
	}
	hdr := bmzHeader{
		Width:  uint32(v.Width()),
		Height: uint32(v.Height()),
		Format: uint32(v.PixelFormat()),
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return err
	}

	level := zstd.SpeedDefault
	if compress {
		level = zstd.SpeedBetterCompression
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return err
	}
	for y := range v.Height() {
		row, _ := v.Scanline(y)
		if _, err := enc.Write(row); err != nil {
			enc.Close()
			return err
		}
	}
	return enc.Close()
}

func decodeBMZ(r io.Reader) (*bitmap.Bitmap, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil || magic != bmzMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	var hdr bmzHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	f, err := bitmap.ParsePixelFormat(hdr.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	pbs, _ := f.ByteCount()
	if uint64(hdr.Width)*uint64(hdr.Height)*uint64(pbs) > maxBMZBytes {
		return nil, fmt.Errorf("%w: %dx%d %v exceeds size limit", ErrCorrupt, hdr.Width, hdr.Height, f)
	}
	out, err := bitmap.NewBitmapOf(int(hdr.Width), int(hdr.Height), f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	defer dec.Close()
	if _, err := io.ReadFull(dec, out.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: pixels: %w", ErrCorrupt, err)
	}
	bitmap.Logger().Debug("codec: decoded", "format", BMZ, "layout", out.Layout())
	return out, nil
}
