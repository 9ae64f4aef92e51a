// Package bitmap describes pixel memory and gives bounds-checked, zero-copy
// access to it.
//
// # Overview
//
// A [PixelFormat] packs up to four [Channel] values into one 32-bit code
// that is both the identity of the format and the recipe for decoding a
// pixel. A [Layout] adds width, height and scanline stride, and a [View]
// pairs a layout with a borrowed byte buffer.
//
//	layout, _ := bitmap.NewLayout(640, 480, bitmap.FormatBGRA32, 0)
//	buf := make([]byte, layout.BitmapByteSize())
//	v, _ := bitmap.NewView(buf, layout)
//
//	v.FillColor(color.NRGBA{R: 255, A: 255})
//	crop, _ := v.Slice(bitmap.Rect(10, 10, 100, 100))
//	crop.Mirror(true, false, false)
//
// # Memory
//
// Views never allocate or own memory. Only [Bitmap], the owned buffer
// returned by [View.ToBitmap], allocates. A view is valid as long as the
// buffer it covers; raw pointers leave the package only through
// [View.PinReadable] and [View.PinWritable].
//
// # Typed access
//
// [OfType] reinterprets a view as a [TypedView] of fixed-size pixel
// elements such as [BGRA32] or [Gray16]. The element size must equal the
// pixel byte size. Packed 16-bit and float elements use host byte order;
// the color accessors ([View.FillColor], [View.ColorAt]) always read and
// write little-endian memory.
//
// # Conversion
//
// [View.Blit] copies between identical formats byte for byte and between
// differing formats through a fixed table of converters. Pairs not in the
// table fail with [ErrConversionUnsupported]; see [CanConvert].
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Pixel (x, y) covers [x, x+1) × [y, y+1); its center is (x+0.5, y+0.5)
package bitmap
