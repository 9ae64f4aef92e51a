package bitmap

import "errors"

// Errors reported by the bitmap core. Every failing operation wraps exactly
// one of these, so callers test with errors.Is.
var (
	// ErrArgumentInvalid is returned for nil pointers, nil buffers and
	// negative dimensions.
	ErrArgumentInvalid = errors.New("bitmap: invalid argument")

	// ErrFormatInvalid is returned when a channel layout sums to zero bits
	// or to a bit count that is not a multiple of 8.
	ErrFormatInvalid = errors.New("bitmap: invalid pixel format")

	// ErrFormatUnsupported is returned when a format is not in the set an
	// operation supports, including premultiplied alpha formats.
	ErrFormatUnsupported = errors.New("bitmap: unsupported pixel format")

	// ErrFormatMismatch is returned when an operation requires identical
	// source and destination formats.
	ErrFormatMismatch = errors.New("bitmap: pixel format mismatch")

	// ErrConversionUnsupported is returned when no conversion is registered
	// for a pair of formats.
	ErrConversionUnsupported = errors.New("bitmap: conversion not supported")

	// ErrOutOfBounds is returned when a slice, pixel or run request exceeds
	// the layout extents.
	ErrOutOfBounds = errors.New("bitmap: out of bounds")

	// ErrReadOnly is returned by mutating operations on a read-only view.
	ErrReadOnly = errors.New("bitmap: view is read-only")

	// ErrLayoutInvalid is returned when a stride is smaller than a row or the
	// buffer does not cover the layout.
	ErrLayoutInvalid = errors.New("bitmap: invalid layout")
)
