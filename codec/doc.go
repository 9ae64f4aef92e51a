// Package codec reads and writes bitmaps as image files.
//
// Decoding recognizes PNG, JPEG, GIF, BMP, TIFF, WebP, QOI and the BMZ
// container by content. Encoding supports all of them except WebP.
//
// BMZ is a zstd-compressed dump of the pixel rows together with the layout,
// so any pixel format round-trips exactly. The other formats go through the
// standard image models and may convert pixels; see stdimage.ModelFor.
//
//	b, format, err := codec.DecodeFile("in.png")
//	if err != nil {
//		return err
//	}
//	err = codec.EncodeFile("out.bmz", b.View(), &codec.Options{Compress: true})
package codec
