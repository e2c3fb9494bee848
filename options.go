package rectify

import (
	"github.com/tsawler/rectify/geometry"
	"github.com/tsawler/rectify/ocr"
)

// pipelineOptions holds configuration accumulated by the fluent chain.
type pipelineOptions struct {
	// corners is nil when no quadrilateral was supplied; the pipeline then
	// passes the image through without rectification.
	corners []geometry.Point

	// maxDimension caps the longer side of the output image in pixels.
	// Zero disables the cap.
	maxDimension int

	// backend recognizes text in terminal operations that need OCR.
	backend ocr.Adapter
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		corners:      nil,
		maxDimension: 0,
		backend:      nil,
	}
}

// clone creates a deep copy of pipelineOptions.
func (o pipelineOptions) clone() pipelineOptions {
	newOpts := pipelineOptions{
		maxDimension: o.maxDimension,
		backend:      o.backend,
	}
	if o.corners != nil {
		newOpts.corners = make([]geometry.Point, len(o.corners))
		copy(newOpts.corners, o.corners)
	}
	return newOpts
}
