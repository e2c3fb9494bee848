package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tsawler/rectify"
	"github.com/tsawler/rectify/geometry"
	"github.com/tsawler/rectify/ocr"
)

// Server exposes the rectification pipeline over HTTP.
type Server struct {
	cfg     Config
	backend ocr.Adapter // nil when no OCR backend is configured
	router  *mux.Router
}

// New creates a server with the given configuration and OCR backend. A nil
// backend disables the recognition endpoint variant.
func New(cfg Config, backend ocr.Adapter) *Server {
	s := &Server{cfg: cfg, backend: backend}

	r := mux.NewRouter()
	r.HandleFunc("/v1/rectify", s.handleRectify).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.Use(metricsMiddleware)
	s.router = r

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// vertexPayload matches the client's corner point JSON:
// [{"x": 85.5, "y": 307.8}, ...]
type vertexPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// recognitionResponse is the JSON body returned when OCR is requested.
type recognitionResponse struct {
	Text  string         `json:"text"`
	Words []wordResponse `json:"words,omitempty"`
}

type wordResponse struct {
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	BBox       bboxResponse `json:"bbox"`
}

type bboxResponse struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// handleRectify accepts a multipart upload (file + optional vertices JSON)
// and returns the rectified image, or the OCR result when ?ocr=1.
func (s *Server) handleRectify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "invalid multipart request")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "empty file")
		return
	}

	pipeline := rectify.FromBytes(data)
	if s.cfg.MaxDimension > 0 {
		pipeline = pipeline.MaxDimension(s.cfg.MaxDimension)
	}

	// Vertices are optional; a missing or null field means the image is
	// processed without rectification.
	if raw := r.FormValue("vertices"); raw != "" && raw != "null" {
		var payload []vertexPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidInput, "invalid JSON in vertices field")
			return
		}
		points := make([]geometry.Point, len(payload))
		for i, v := range payload {
			points[i] = geometry.Point{X: v.X, Y: v.Y}
		}
		pipeline = pipeline.CornerPoints(points)
	}

	if r.URL.Query().Get("ocr") == "1" {
		s.respondRecognition(w, r, pipeline)
		return
	}

	out, err := pipeline.Image()
	if err != nil {
		writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(out))
	w.Header().Set("Content-Length", fmt.Sprint(len(out)))
	w.Write(out)
}

func (s *Server) respondRecognition(w http.ResponseWriter, r *http.Request, pipeline *rectify.Pipeline) {
	if s.backend == nil {
		writeError(w, http.StatusServiceUnavailable, CodeOCRUnavailable, "no OCR backend configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(s.cfg.OCR.TimeoutSeconds)*time.Second)
	defer cancel()

	result, err := pipeline.WithOCR(s.backend).Result(ctx)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	resp := recognitionResponse{Text: result.Text}
	for _, word := range result.Words {
		resp.Words = append(resp.Words, wordResponse{
			Text:       word.Text,
			Confidence: word.Confidence,
			BBox:       toBBox(word.BBox),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func toBBox(r image.Rectangle) bboxResponse {
	return bboxResponse{
		X:      r.Min.X,
		Y:      r.Min.Y,
		Width:  r.Dx(),
		Height: r.Dy(),
	}
}
