package rectify

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/tsawler/rectify/geometry"
	"github.com/tsawler/rectify/ocr"
	"github.com/tsawler/rectify/raster"
	"github.com/tsawler/rectify/warp"
)

// testPNG builds an in-memory PNG of the given size.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

// fakeAdapter records the recognition request and returns a fixed result.
type fakeAdapter struct {
	gotImage       []byte
	gotContentType string
	result         *ocr.Result
	err            error
}

func (f *fakeAdapter) Recognize(ctx context.Context, img []byte, contentType string) (*ocr.Result, error) {
	f.gotImage = img
	f.gotContentType = contentType
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestPipeline_Image(t *testing.T) {
	data := testPNG(t, 120, 80)

	out, err := FromBytes(data).
		Corners(
			geometry.Point{X: 0, Y: 0},
			geometry.Point{X: 100, Y: 0},
			geometry.Point{X: 100, Y: 50},
			geometry.Point{X: 0, Y: 50},
		).
		Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}

	if got := raster.DetectFromMagic(out); got != raster.PNG {
		t.Errorf("output format = %v, want PNG", got)
	}
	img, _, err := warp.Decode(out)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("output %dx%d, want 100x50", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPipeline_PassThroughWithoutCorners(t *testing.T) {
	data := testPNG(t, 40, 40)

	out, err := FromBytes(data).Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("pass-through should return the original bytes unchanged")
	}
}

func TestPipeline_Errors(t *testing.T) {
	data := testPNG(t, 50, 50)
	valid := []geometry.Point{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 40}}

	tests := []struct {
		name     string
		pipeline *Pipeline
		want     error
	}{
		{
			name:     "wrong point count",
			pipeline: FromBytes(data).CornerPoints(valid[:3]),
			want:     geometry.ErrPointCount,
		},
		{
			name: "degenerate corners",
			pipeline: FromBytes(data).CornerPoints([]geometry.Point{
				{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
			}),
			want: geometry.ErrDegenerate,
		},
		{
			name:     "garbage bytes",
			pipeline: FromBytes([]byte("not an image")).CornerPoints(valid),
			want:     warp.ErrDecode,
		},
		{
			name:     "missing source",
			pipeline: FromFile("/nonexistent/path/image.png").CornerPoints(valid),
			want:     nil, // any error; file read failure has no sentinel
		},
	}

	for _, tt := range tests {
		_, err := tt.pipeline.Image()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestPipeline_MaxDimension(t *testing.T) {
	data := testPNG(t, 200, 100)

	out, err := FromBytes(data).MaxDimension(100).Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	img, _, err := warp.Decode(out)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("output %dx%d, want 100x50", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPipeline_Text(t *testing.T) {
	data := testPNG(t, 60, 60)
	adapter := &fakeAdapter{result: &ocr.Result{Text: "hello from ocr"}}

	text, err := FromBytes(data).
		Corners(
			geometry.Point{X: 0, Y: 0},
			geometry.Point{X: 50, Y: 0},
			geometry.Point{X: 50, Y: 50},
			geometry.Point{X: 0, Y: 50},
		).
		WithOCR(adapter).
		Text(context.Background())
	if err != nil {
		t.Fatalf("Text: %v", err)
	}

	if text != "hello from ocr" {
		t.Errorf("Text = %q, want %q", text, "hello from ocr")
	}
	if adapter.gotContentType != "image/png" {
		t.Errorf("adapter content type = %q, want image/png", adapter.gotContentType)
	}
	if raster.DetectFromMagic(adapter.gotImage) != raster.PNG {
		t.Error("adapter did not receive rectified PNG bytes")
	}
}

func TestPipeline_TextWithoutBackend(t *testing.T) {
	data := testPNG(t, 20, 20)
	if _, err := FromBytes(data).Text(context.Background()); !errors.Is(err, ErrNoOCR) {
		t.Errorf("got %v, want ErrNoOCR", err)
	}
}

func TestPipeline_OCRErrorPropagates(t *testing.T) {
	data := testPNG(t, 20, 20)
	adapter := &fakeAdapter{err: ocr.ErrUnavailable}

	_, err := FromBytes(data).WithOCR(adapter).Text(context.Background())
	if !errors.Is(err, ocr.ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}

func TestPipeline_Immutability(t *testing.T) {
	data := testPNG(t, 30, 30)
	base := FromBytes(data)

	derived := base.CornerPoints([]geometry.Point{
		{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20},
	})
	if base.options.corners != nil {
		t.Error("configuring a derived pipeline mutated the base")
	}

	out, err := base.Image()
	if err != nil {
		t.Fatalf("base Image: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("base pipeline no longer passes through unchanged")
	}

	if _, err := derived.Image(); err != nil {
		t.Errorf("derived Image: %v", err)
	}
}

func TestQuad(t *testing.T) {
	if _, err := Quad([]geometry.Point{{X: 0, Y: 0}}); !errors.Is(err, geometry.ErrPointCount) {
		t.Errorf("got %v, want ErrPointCount", err)
	}
	q, err := Quad([]geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	if err != nil {
		t.Fatalf("Quad: %v", err)
	}
	if q[2] != (geometry.Point{X: 10, Y: 10}) {
		t.Errorf("q[2] = %v, want (10,10)", q[2])
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(FromBytes([]byte("garbage")).CornerPoints([]geometry.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}).Image())
}
