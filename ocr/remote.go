package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxImageBytes is the largest image the remote backend accepts.
const MaxImageBytes = 10 * 1024 * 1024

// Remote recognizes text through an HTTP OCR service. The service accepts
// a multipart request with a JSON envelope in the "message" field and the
// image in the "file" field, authenticated with a secret header, and
// responds with recognized fields per image.
//
// Remote is safe for concurrent use.
type Remote struct {
	url    string
	secret string
	client *http.Client
}

// NewRemote creates a remote OCR backend for the given endpoint. If client
// is nil, a default client with a 30 second timeout is used.
func NewRemote(url, secret string, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Remote{url: url, secret: secret, client: client}
}

// remoteEnvelope is the JSON envelope sent in the "message" form field.
type remoteEnvelope struct {
	Version   string        `json:"version"`
	RequestID string        `json:"requestId"`
	Timestamp int64         `json:"timestamp"`
	Images    []remoteImage `json:"images"`
}

type remoteImage struct {
	Format string `json:"format"`
	Name   string `json:"name"`
}

// remoteResponse is the service's recognition response.
type remoteResponse struct {
	Images []struct {
		Fields []remoteField `json:"fields"`
	} `json:"images"`
}

type remoteField struct {
	InferText       string  `json:"inferText"`
	InferConfidence float64 `json:"inferConfidence"`
	BoundingPoly    struct {
		Vertices []remoteVertex `json:"vertices"`
	} `json:"boundingPoly"`
}

type remoteVertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Recognize sends the image to the remote service and collects the
// recognized fields. Field texts are joined with single spaces to form
// Result.Text. The call runs entirely under ctx; deadline expiry maps to
// ErrTimeout and transport or server-side failures to ErrUnavailable.
func (r *Remote) Recognize(ctx context.Context, imageData []byte, contentType string) (*Result, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("empty image buffer")
	}
	if len(imageData) > MaxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrImageTooLarge, len(imageData), MaxImageBytes)
	}

	env := remoteEnvelope{
		Version:   "V2",
		RequestID: uuid.NewString(),
		Timestamp: time.Now().UnixMilli(),
		Images: []remoteImage{{
			Format: formatFromContentType(contentType),
			Name:   "image",
		}},
	}
	message, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding request envelope: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("message", string(message)); err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	fw, err := mw.CreateFormFile("file", "image"+extensionForFormat(env.Images[0].Format))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if _, err := fw.Write(imageData); err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, &body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if r.secret != "" {
		req.Header.Set("X-OCR-SECRET", r.secret)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: service returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	result := &Result{}
	var texts []string
	for _, img := range parsed.Images {
		for _, field := range img.Fields {
			text := normalizeText(field.InferText)
			if text == "" {
				continue
			}
			texts = append(texts, text)
			result.Words = append(result.Words, Word{
				Text:       text,
				BBox:       boundingRect(field.BoundingPoly.Vertices),
				Confidence: field.InferConfidence * 100,
			})
		}
	}
	result.Text = strings.Join(texts, " ")
	return result, nil
}

// formatFromContentType maps a MIME content type to the short format name
// the service expects ("image/jpeg" -> "jpg").
func formatFromContentType(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/tiff":
		return "tiff"
	case "image/bmp":
		return "bmp"
	default:
		return "jpg"
	}
}

func extensionForFormat(format string) string {
	return "." + format
}

// boundingRect computes the axis-aligned bounds of a recognized field's
// polygon vertices.
func boundingRect(vertices []remoteVertex) image.Rectangle {
	if len(vertices) == 0 {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return image.Rect(int(minX), int(minY), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}
