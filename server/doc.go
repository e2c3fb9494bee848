// Package server exposes the rectification pipeline over HTTP.
//
// A single endpoint accepts a multipart upload with the image and an
// optional JSON array of four corner points, returning either the
// rectified image bytes or, when recognition is requested, the OCR result
// as JSON.
//
// Errors map to distinct, stable error codes so clients can tell bad
// input (wrong point count, degenerate quadrilateral) apart from
// processing failures (codec errors, OCR backend trouble):
//
//	POST /v1/rectify           multipart: file, vertices (optional JSON)
//	POST /v1/rectify?ocr=1     same, but returns recognized text as JSON
//	GET  /healthz
//	GET  /metrics              Prometheus metrics
package server
