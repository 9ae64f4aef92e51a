// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package stdimage bridges bitmap views and the image types of the Go
// standard library.
//
// # Zero-copy wrap
//
// *image.Gray, *image.Alpha and *image.NRGBA store pixels exactly like
// Gray8, Alpha8 and RGBA32, so Wrap returns a view over their Pix slice:
//
//	img := image.NewNRGBA(image.Rect(0, 0, 640, 480))
//	v, _ := stdimage.Wrap(img)
//	v.FillColor(color.White) // writes into img.Pix
//
// # Copy bridge
//
// *image.RGBA holds premultiplied alpha and *image.Gray16 big-endian
// samples; neither is a bitmap format. ToBitmap copies and converts them,
// and FromView copies a view into a new image, optionally substituting a
// compatible image type (for example BGR24 into *image.NRGBA).
package stdimage
