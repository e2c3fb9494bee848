//go:build ocr

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract performs recognition with a local Tesseract installation via
// gosseract. A Tesseract instance is not safe for concurrent use; the
// pipeline creates or borrows one per call.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates a local OCR engine. The engine should be closed when
// no longer needed to release Tesseract resources.
func NewTesseract() (*Tesseract, error) {
	return &Tesseract{client: gosseract.NewClient()}, nil
}

// Close releases Tesseract resources.
func (t *Tesseract) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages can
// be specified as a "+" separated string (e.g. "eng+kor"). Default is "eng".
func (t *Tesseract) SetLanguage(lang string) error {
	return t.client.SetLanguage(lang)
}

// Recognize extracts text from image bytes. The content type hint is
// ignored; Tesseract sniffs the format itself. Word-level metadata is
// recovered from Tesseract's hOCR output when available.
func (t *Tesseract) Recognize(ctx context.Context, image []byte, contentType string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		if err == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, err
	}

	if err := t.client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := t.client.Text()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	result := &Result{Text: normalizeText(text)}

	// Word positions are best effort; a recognition result without layout
	// metadata is still useful.
	if hocr, err := t.client.HOCRText(); err == nil {
		if words, err := ParseHOCR([]byte(hocr)); err == nil {
			result.Words = words
		}
	}
	return result, nil
}
