package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tsawler/rectify/geometry"
	"github.com/tsawler/rectify/ocr"
	"github.com/tsawler/rectify/warp"
)

// Stable error codes exposed to clients. Input errors are deterministic
// and recoverable by the caller supplying corrected input; codec and OCR
// failures are processing errors on the service side.
const (
	CodeInvalidInput   = "invalid_input"
	CodeGeometryError  = "geometry_error"
	CodeDecodeError    = "decode_error"
	CodeEncodeError    = "encode_error"
	CodeImageTooLarge  = "image_too_large"
	CodeOCRUnavailable = "ocr_unavailable"
	CodeOCRTimeout     = "ocr_timeout"
	CodeInternal       = "internal_error"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// classify maps pipeline errors to an HTTP status and a stable error code.
// Wrong point count and bad shape stay distinguishable so clients can
// report a precise diagnostic.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, geometry.ErrPointCount):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, geometry.ErrDegenerate):
		return http.StatusBadRequest, CodeGeometryError
	case errors.Is(err, warp.ErrDecode):
		return http.StatusInternalServerError, CodeDecodeError
	case errors.Is(err, warp.ErrEncode):
		return http.StatusInternalServerError, CodeEncodeError
	case errors.Is(err, ocr.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, CodeImageTooLarge
	case errors.Is(err, ocr.ErrTimeout):
		return http.StatusGatewayTimeout, CodeOCRTimeout
	case errors.Is(err, ocr.ErrUnavailable), errors.Is(err, ocr.ErrNotEnabled):
		return http.StatusServiceUnavailable, CodeOCRUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writePipelineError classifies err and writes the corresponding response.
func writePipelineError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err.Error())
}
