// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gputexture connects bitmap views to GPU texture copies described
// with gputypes.
//
// Texture formats map to pixel formats only when the texel memory is
// identical. Pixel formats without a texture equivalent are widened by
// NewUpload, which also pads rows to the 256-byte alignment required for
// buffer-to-texture copies:
//
//	up, err := gputexture.NewUpload(view)
//	if err != nil {
//		return err
//	}
//	desc := up.Descriptor("atlas", gputypes.TextureUsageTextureBinding)
//	// create the texture from desc, then write up.Pixels.Bytes()
//	// with up.DataLayout and up.Size.
//
// Readback goes the other way: ReadbackView interprets a mapped buffer as a
// read-only view.
package gputexture
