package rectify

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/rectify/geometry"
	"github.com/tsawler/rectify/ocr"
	"github.com/tsawler/rectify/raster"
	"github.com/tsawler/rectify/warp"
)

// ErrNoOCR is returned by Text and Result when no OCR backend was
// configured with WithOCR.
var ErrNoOCR = errors.New("no OCR backend configured")

// Pipeline is a fluent builder for a single rectification request. Each
// configuration method returns a new Pipeline instance, making chains safe
// for concurrent use.
//
// A pipeline with no corners configured passes the image through without
// rectification, so callers can route both cropped and uncropped uploads
// through the same code path.
type Pipeline struct {
	// Source: exactly one of data and filename is set.
	data     []byte
	filename string

	options pipelineOptions

	// Accumulated configuration error (fail-fast).
	err error
}

// clone creates a shallow copy of the Pipeline with a deep copy of options.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		data:     p.data,
		filename: p.filename,
		options:  p.options.clone(),
		err:      p.err,
	}
}

// Corners sets the document corners in the fixed winding order top-left,
// top-right, bottom-right, bottom-left. The four-argument signature makes
// the point count structural; winding order remains the caller's
// responsibility and is never inferred or auto-corrected.
func (p *Pipeline) Corners(p0, p1, p2, p3 geometry.Point) *Pipeline {
	newP := p.clone()
	newP.options.corners = []geometry.Point{p0, p1, p2, p3}
	return newP
}

// CornerPoints sets the document corners from a slice, for callers whose
// input arrives as a decoded list (e.g. request JSON). The count is
// validated when a terminal operation runs; anything other than exactly
// four points fails with geometry.ErrPointCount.
func (p *Pipeline) CornerPoints(points []geometry.Point) *Pipeline {
	newP := p.clone()
	newP.options.corners = make([]geometry.Point, len(points))
	copy(newP.options.corners, points)
	return newP
}

// MaxDimension caps the longer side of the output image at px pixels,
// downscaling proportionally when the rectified image exceeds it. Useful
// when the downstream OCR service enforces an upload size limit. Zero
// (the default) disables the cap.
func (p *Pipeline) MaxDimension(px int) *Pipeline {
	newP := p.clone()
	newP.options.maxDimension = px
	return newP
}

// WithOCR sets the OCR backend used by Text and Result.
func (p *Pipeline) WithOCR(backend ocr.Adapter) *Pipeline {
	newP := p.clone()
	newP.options.backend = backend
	return newP
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Image runs the pipeline and returns the resulting image bytes, encoded
// in the same format family as the input.
func (p *Pipeline) Image() ([]byte, error) {
	out, _, err := p.render()
	return out, err
}

// Text runs the pipeline and hands the resulting image to the configured
// OCR backend, returning the recognized text. The rectification itself is
// an uninterruptible unit of CPU work; ctx governs the recognition call.
func (p *Pipeline) Text(ctx context.Context) (string, error) {
	result, err := p.Result(ctx)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// Result runs the pipeline and returns the OCR backend's full result,
// including per-word layout metadata when the backend provides it.
func (p *Pipeline) Result(ctx context.Context) (*ocr.Result, error) {
	if p.options.backend == nil {
		return nil, ErrNoOCR
	}
	out, format, err := p.render()
	if err != nil {
		return nil, err
	}
	return p.options.backend.Recognize(ctx, out, format.ContentType())
}

// render decodes the source, applies rectification and downscaling as
// configured, and re-encodes. When nothing needs doing the original bytes
// are returned untouched.
func (p *Pipeline) render() ([]byte, raster.Format, error) {
	if p.err != nil {
		return nil, raster.Unknown, p.err
	}

	data, err := p.load()
	if err != nil {
		return nil, raster.Unknown, err
	}

	if p.options.corners == nil && p.options.maxDimension <= 0 {
		return data, raster.DetectFromMagic(data), nil
	}

	img, format, err := warp.Decode(data)
	if err != nil {
		return nil, format, err
	}

	if p.options.corners != nil {
		quad, err := geometry.NewQuad(p.options.corners)
		if err != nil {
			return nil, format, err
		}
		rectified, err := warp.RectifyImage(img, quad)
		if err != nil {
			return nil, format, err
		}
		img = rectified
	}

	if p.options.maxDimension > 0 {
		img = warp.Downscale(img, p.options.maxDimension)
	}

	out, err := warp.Encode(img, format)
	if err != nil {
		return nil, format, err
	}
	return out, format, nil
}

// load returns the source bytes, reading the file if the pipeline was
// created with FromFile.
func (p *Pipeline) load() ([]byte, error) {
	if p.data != nil {
		return p.data, nil
	}
	if p.filename == "" {
		return nil, fmt.Errorf("no image source specified")
	}
	data, err := os.ReadFile(p.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.filename, err)
	}
	return data, nil
}
