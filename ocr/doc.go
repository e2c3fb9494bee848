// Package ocr defines the text-recognition contract consumed by the
// rectification pipeline, plus two backends that satisfy it.
//
// The pipeline hands a backend a fully-formed, immutable image byte buffer
// and a content-type hint, and receives recognized text with optional
// per-word layout metadata:
//
//	result, err := backend.Recognize(ctx, imageBytes, "image/jpeg")
//
// Recognition is I/O-bound (or CPU-heavy, for the local engine) and runs
// under the caller's context. Backends never retry on their own; retry
// policy belongs to the caller.
//
// # Backends
//
// [Tesseract] wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system and is compiled only when the
// "ocr" build tag is set; without the tag a stub is used that fails with
// [ErrNotEnabled].
//
// [Remote] talks to an HTTP OCR service that accepts a multipart request
// with a JSON envelope and the image file, and responds with recognized
// fields. Transport failures surface as [ErrUnavailable], context
// deadlines as [ErrTimeout].
package ocr
