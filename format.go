package bitmap

import (
	"fmt"
	"strings"
)

// PixelFormat describes the memory layout of one pixel as up to four ordered
// channels packed into a 32-bit code, channel 0 in the low byte.
//
// The code is the identity of the format: two formats are equal exactly when
// their codes are equal, regardless of how they were built. Unused slots hold
// ChannelEmpty.
type PixelFormat uint32

// Well-known formats.
const (
	FormatX8  = PixelFormat(ChannelUndefined8)
	FormatX16 = PixelFormat(ChannelUndefined8) | PixelFormat(ChannelUndefined8)<<8
	FormatX24 = PixelFormat(ChannelUndefined8) | PixelFormat(ChannelUndefined8)<<8 | PixelFormat(ChannelUndefined8)<<16
	FormatX32 = PixelFormat(ChannelUndefined8) | PixelFormat(ChannelUndefined8)<<8 | PixelFormat(ChannelUndefined8)<<16 | PixelFormat(ChannelUndefined8)<<24

	FormatX64  = PixelFormat(ChannelUndefined16) | PixelFormat(ChannelUndefined16)<<8 | PixelFormat(ChannelUndefined16)<<16 | PixelFormat(ChannelUndefined16)<<24
	FormatX128 = PixelFormat(ChannelUndefined32) | PixelFormat(ChannelUndefined32)<<8 | PixelFormat(ChannelUndefined32)<<16 | PixelFormat(ChannelUndefined32)<<24

	FormatAlpha8    = PixelFormat(ChannelAlpha8)
	FormatGray8     = PixelFormat(ChannelGray8)
	FormatIndex8    = PixelFormat(ChannelIndex8)
	FormatGray16    = PixelFormat(ChannelGray16)
	FormatGrayFloat = PixelFormat(ChannelGray32F)

	FormatBGR565   = PixelFormat(ChannelBlue5) | PixelFormat(ChannelGreen6)<<8 | PixelFormat(ChannelRed5)<<16
	FormatBGRA4444 = PixelFormat(ChannelBlue4) | PixelFormat(ChannelGreen4)<<8 | PixelFormat(ChannelRed4)<<16 | PixelFormat(ChannelAlpha4)<<24
	FormatBGRA5551 = PixelFormat(ChannelBlue5) | PixelFormat(ChannelGreen5)<<8 | PixelFormat(ChannelRed5)<<16 | PixelFormat(ChannelAlpha1)<<24

	FormatRGB24 = PixelFormat(ChannelRed8) | PixelFormat(ChannelGreen8)<<8 | PixelFormat(ChannelBlue8)<<16
	FormatBGR24 = PixelFormat(ChannelBlue8) | PixelFormat(ChannelGreen8)<<8 | PixelFormat(ChannelRed8)<<16

	FormatRGBA32 = PixelFormat(ChannelRed8) | PixelFormat(ChannelGreen8)<<8 | PixelFormat(ChannelBlue8)<<16 | PixelFormat(ChannelAlpha8)<<24
	FormatBGRA32 = PixelFormat(ChannelBlue8) | PixelFormat(ChannelGreen8)<<8 | PixelFormat(ChannelRed8)<<16 | PixelFormat(ChannelAlpha8)<<24
	FormatARGB32 = PixelFormat(ChannelAlpha8) | PixelFormat(ChannelRed8)<<8 | PixelFormat(ChannelGreen8)<<16 | PixelFormat(ChannelBlue8)<<24

	FormatVectorBGR  = PixelFormat(ChannelBlue32F) | PixelFormat(ChannelGreen32F)<<8 | PixelFormat(ChannelRed32F)<<16
	FormatVectorBGRA = PixelFormat(ChannelBlue32F) | PixelFormat(ChannelGreen32F)<<8 | PixelFormat(ChannelRed32F)<<16 | PixelFormat(ChannelAlpha32F)<<24
	FormatVectorRGBA = PixelFormat(ChannelRed32F) | PixelFormat(ChannelGreen32F)<<8 | PixelFormat(ChannelBlue32F)<<16 | PixelFormat(ChannelAlpha32F)<<24
)

// formatNames is read-only after package initialization.
var formatNames = map[PixelFormat]string{
	FormatX8:         "X8",
	FormatX16:        "X16",
	FormatX24:        "X24",
	FormatX32:        "X32",
	FormatX64:        "X64",
	FormatX128:       "X128",
	FormatAlpha8:     "Alpha8",
	FormatGray8:      "Gray8",
	FormatIndex8:     "Index8",
	FormatGray16:     "Gray16",
	FormatGrayFloat:  "GrayFloat",
	FormatBGR565:     "BGR565",
	FormatBGRA4444:   "BGRA4444",
	FormatBGRA5551:   "BGRA5551",
	FormatRGB24:      "RGB24",
	FormatBGR24:      "BGR24",
	FormatRGBA32:     "RGBA32",
	FormatBGRA32:     "BGRA32",
	FormatARGB32:     "ARGB32",
	FormatVectorBGR:  "VectorBGR",
	FormatVectorBGRA: "VectorBGRA",
	FormatVectorRGBA: "VectorRGBA",
}

// NewPixelFormat packs up to four channels into a format, padding the
// remaining slots with ChannelEmpty. It fails with ErrFormatInvalid when
// more than four channels are given, a channel is unknown, or the bit total
// is zero or not a multiple of 8.
func NewPixelFormat(channels ...Channel) (PixelFormat, error) {
	if len(channels) > 4 {
		return 0, fmt.Errorf("%w: %d channels, at most 4", ErrFormatInvalid, len(channels))
	}
	var f PixelFormat
	for i, c := range channels {
		if !c.IsValid() {
			return 0, fmt.Errorf("%w: unknown channel %d", ErrFormatInvalid, c)
		}
		f |= PixelFormat(c) << (8 * i)
	}
	if _, err := f.ByteCount(); err != nil {
		return 0, err
	}
	return f, nil
}

// ParsePixelFormat validates a raw packed code.
func ParsePixelFormat(code uint32) (PixelFormat, error) {
	f := PixelFormat(code)
	if _, err := f.ByteCount(); err != nil {
		return 0, err
	}
	return f, nil
}

// LookupPixelFormat returns the well-known format with the given name,
// matched case-insensitively.
func LookupPixelFormat(name string) (PixelFormat, bool) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return f, true
		}
	}
	return 0, false
}

// UndefinedOfSize returns an opaque format of n bytes, used to wrap memory
// whose channel semantics are unknown. n must be 1, 2, 3, 4, 8 or 16.
func UndefinedOfSize(n int) (PixelFormat, error) {
	switch n {
	case 1:
		return FormatX8, nil
	case 2:
		return FormatX16, nil
	case 3:
		return FormatX24, nil
	case 4:
		return FormatX32, nil
	case 8:
		return FormatX64, nil
	case 16:
		return FormatX128, nil
	default:
		return 0, fmt.Errorf("%w: no undefined format of %d bytes", ErrFormatUnsupported, n)
	}
}

// Channel returns the channel stored in slot i (0..3).
func (f PixelFormat) Channel(i int) Channel {
	if i < 0 || i > 3 {
		return ChannelEmpty
	}
	return Channel(f >> (8 * i))
}

// Channels returns the four slots in memory order.
func (f PixelFormat) Channels() [4]Channel {
	return [4]Channel{f.Channel(0), f.Channel(1), f.Channel(2), f.Channel(3)}
}

// BitCount returns the sum of the slot bit widths, or -1 if a slot holds an
// unknown channel.
func (f PixelFormat) BitCount() int {
	total := 0
	for _, c := range f.Channels() {
		bits := c.Bits()
		if bits < 0 {
			return -1
		}
		total += bits
	}
	return total
}

// ByteCount returns the size of one pixel in bytes.
func (f PixelFormat) ByteCount() (int, error) {
	bits := f.BitCount()
	switch {
	case bits < 0:
		return 0, fmt.Errorf("%w: %#08x has an unknown channel", ErrFormatInvalid, uint32(f))
	case bits == 0:
		return 0, fmt.Errorf("%w: %#08x has zero length", ErrFormatInvalid, uint32(f))
	case bits&7 != 0:
		return 0, fmt.Errorf("%w: %#08x is %d bits, not a multiple of 8", ErrFormatInvalid, uint32(f), bits)
	}
	return bits / 8, nil
}

// IsValid reports whether ByteCount succeeds.
func (f PixelFormat) IsValid() bool {
	_, err := f.ByteCount()
	return err == nil
}

// IsDefined reports whether f is valid and none of its channels is Undefined.
func (f PixelFormat) IsDefined() bool {
	if !f.IsValid() {
		return false
	}
	for _, c := range f.Channels() {
		if c.Kind() == KindUndefined {
			return false
		}
	}
	return true
}

// HasAlpha reports whether any slot is an alpha channel.
func (f PixelFormat) HasAlpha() bool {
	for _, c := range f.Channels() {
		if c.Kind() == KindAlpha {
			return true
		}
	}
	return false
}

// IsIndexed reports whether any slot is a palette index.
func (f PixelFormat) IsIndexed() bool {
	for _, c := range f.Channels() {
		if c.Kind() == KindIndex {
			return true
		}
	}
	return false
}

// String returns the well-known name, or the channel list joined by dashes.
func (f PixelFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	var parts []string
	for _, c := range f.Channels() {
		if c != ChannelEmpty {
			parts = append(parts, c.String())
		}
	}
	if len(parts) == 0 {
		return "Empty"
	}
	return strings.Join(parts, "-")
}
