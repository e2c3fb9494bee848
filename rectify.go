// Package rectify provides a fluent API for correcting the perspective of
// photographed documents and handing the result to an OCR backend.
//
// Given an image and the four corners of the document within it (top-left,
// top-right, bottom-right, bottom-left), the pipeline computes a projective
// transform mapping that quadrilateral onto an axis-aligned rectangle and
// resamples the image accordingly, producing a flat page suitable for
// high-accuracy text recognition.
//
// Basic usage:
//
//	out, err := rectify.FromFile("receipt.jpg").
//	    Corners(
//	        geometry.Point{X: 85.5, Y: 307.8},
//	        geometry.Point{X: 231.6, Y: 306.8},
//	        geometry.Point{X: 240.1, Y: 572.4},
//	        geometry.Point{X: 87.6, Y: 574.5},
//	    ).
//	    Image()
//
// With recognition:
//
//	text, err := rectify.FromBytes(data).
//	    CornerPoints(points).
//	    WithOCR(backend).
//	    Text(ctx)
//
// For advanced use cases the lower-level geometry, warp, and ocr packages
// are also available.
package rectify

import (
	"github.com/tsawler/rectify/geometry"
)

// FromBytes starts a pipeline from in-memory image bytes. The buffer is
// treated as read-only; the pipeline never modifies it.
//
// Example:
//
//	out, err := rectify.FromBytes(data).CornerPoints(points).Image()
func FromBytes(data []byte) *Pipeline {
	return &Pipeline{
		data:    data,
		options: defaultOptions(),
	}
}

// FromFile starts a pipeline that reads the image from a file when a
// terminal operation runs.
//
// Example:
//
//	out, err := rectify.FromFile("page.jpg").Corners(p0, p1, p2, p3).Image()
func FromFile(filename string) *Pipeline {
	return &Pipeline{
		filename: filename,
		options:  defaultOptions(),
	}
}

// Quad validates four corner points supplied as a slice. It is a thin
// re-export of geometry.NewQuad for callers that want to validate input
// up front rather than at the pipeline's terminal operation.
func Quad(points []geometry.Point) (geometry.Quad, error) {
	return geometry.NewQuad(points)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	out := rectify.Must(rectify.FromFile("page.jpg").Corners(p0, p1, p2, p3).Image())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
