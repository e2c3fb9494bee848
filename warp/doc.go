// Package warp implements the document rectification engine: given a
// decoded source image and a four-corner quadrilateral marking a document
// boundary, it computes an axis-aligned destination rectangle sized from
// the quadrilateral's edge lengths, solves the projective transform between
// the two, and resamples the source into the destination with bilinear
// interpolation.
//
// The byte-level entry point decodes, rectifies, and re-encodes in one
// call, preserving the input's format family:
//
//	out, format, err := warp.Rectify(imageBytes, quad)
//
// JPEG, PNG, TIFF, and BMP input is supported. Destination pixels whose
// inverse-mapped source location falls outside the source bounds are
// filled with [Background].
//
// Rectification is a pure, synchronous, CPU-bound computation: no internal
// concurrency, no shared mutable state, no I/O. Concurrent calls on
// independent images are safe.
package warp
