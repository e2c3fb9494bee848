package ocr

import (
	"context"
	"errors"
	"image"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrUnavailable is returned when an OCR backend cannot be reached or
	// fails on its side.
	ErrUnavailable = errors.New("ocr backend unavailable")

	// ErrTimeout is returned when recognition does not complete within the
	// caller's deadline.
	ErrTimeout = errors.New("ocr request timed out")

	// ErrNotEnabled is returned by the local engine when OCR support was
	// not compiled in. Rebuild with -tags ocr to enable it.
	ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

	// ErrImageTooLarge is returned when the image exceeds the size limit a
	// backend accepts.
	ErrImageTooLarge = errors.New("image exceeds maximum size for OCR")
)

// Adapter recognizes text in raster image bytes. Implementations must be
// safe for use from multiple goroutines only if documented as such; the
// pipeline uses one adapter per call chain.
type Adapter interface {
	// Recognize extracts text from image bytes. contentType is a hint such
	// as "image/jpeg"; backends may ignore it. The returned Result is fully
	// owned by the caller.
	Recognize(ctx context.Context, image []byte, contentType string) (*Result, error)
}

// Result holds the outcome of a recognition call.
type Result struct {
	// Text is the recognized text, whitespace-trimmed and NFC-normalized.
	Text string

	// Words carries per-word layout metadata when the backend provides it.
	// May be empty.
	Words []Word
}

// Word is a single recognized word with its position on the page.
type Word struct {
	Text string
	// BBox is the word's bounding box in rectified-image pixel coordinates.
	BBox image.Rectangle
	// Confidence is the backend's confidence in [0, 100], or 0 if unknown.
	Confidence float64
}

// normalizeText trims surrounding whitespace and applies Unicode NFC so
// that composed and decomposed forms from different backends compare equal.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
