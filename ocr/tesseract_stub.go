//go:build !ocr

package ocr

import "context"

// Tesseract is the stub local engine used when the "ocr" build tag is not
// set. All operations fail with ErrNotEnabled.
//
// To enable local OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
type Tesseract struct{}

// NewTesseract returns an error indicating OCR support is not enabled.
func NewTesseract() (*Tesseract, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op for the stub engine. It is safe to call on a nil engine.
func (t *Tesseract) Close() error {
	return nil
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (t *Tesseract) SetLanguage(lang string) error {
	return ErrNotEnabled
}

// Recognize returns an error indicating OCR support is not enabled.
func (t *Tesseract) Recognize(ctx context.Context, image []byte, contentType string) (*Result, error) {
	return nil, ErrNotEnabled
}
