package warp

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/tsawler/rectify/geometry"
	"github.com/tsawler/rectify/raster"
)

// Background is the fill color for destination pixels whose inverse-mapped
// source location falls outside the source image bounds.
var Background = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

// Rectify decodes image bytes, rectifies the region marked by quad into an
// axis-aligned rectangle, and re-encodes the result in the same format
// family as the input. The returned format identifies that family.
//
// The input buffer is never modified. On any failure the returned byte
// slice is nil; a partial image is never returned.
func Rectify(data []byte, quad geometry.Quad) ([]byte, raster.Format, error) {
	img, format, err := Decode(data)
	if err != nil {
		return nil, format, err
	}

	out, err := RectifyImage(img, quad)
	if err != nil {
		return nil, format, err
	}

	encoded, err := Encode(out, format)
	if err != nil {
		return nil, format, err
	}
	return encoded, format, nil
}

// RectifyImage resamples the quadrilateral region of img into an
// axis-aligned rectangle.
//
// The destination width is the longer of the quadrilateral's top and
// bottom edges, the height the longer of its left and right edges; output
// dimensions truncate any fractional remainder. The transform maps the
// quadrilateral corners onto (0,0), (w-1,0), (w-1,h-1), (0,h-1), and each
// destination pixel is bilinearly interpolated from its inverse-mapped
// source location.
//
// Degenerate quadrilaterals fail with geometry.ErrDegenerate.
func RectifyImage(img image.Image, quad geometry.Quad) (*image.NRGBA, error) {
	width, height := quad.DstSize()

	// Fractional sizes truncate toward zero, never round.
	outW, outH := int(width), int(height)
	if outW < 1 || outH < 1 {
		return nil, fmt.Errorf("%w: computed output size %dx%d", geometry.ErrDegenerate, outW, outH)
	}

	dst := geometry.Quad{
		{X: 0, Y: 0},
		{X: width - 1, Y: 0},
		{X: width - 1, Y: height - 1},
		{X: 0, Y: height - 1},
	}

	// Solve the destination->source transform so each output pixel can be
	// pulled from its source location.
	inverse, err := geometry.QuadToQuad(dst, quad)
	if err != nil {
		return nil, err
	}

	src := toNRGBA(img)
	out := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			sx, sy := inverse.Apply(float64(x), float64(y))
			out.SetNRGBA(x, y, sampleBilinear(src, sx, sy))
		}
	}
	return out, nil
}

// Downscale proportionally scales img so that its longer side is at most
// maxDim pixels. Images already within the limit are returned unchanged.
func Downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if maxDim <= 0 || longest <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(longest)
	outW := int(float64(w) * scale)
	outH := int(float64(h) * scale)
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	out := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	draw.BiLinear.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

// sampleBilinear interpolates the source at a fractional location. Samples
// outside the valid coordinate range, including NaN coordinates from a
// near-singular transform, return Background.
func sampleBilinear(src *image.NRGBA, x, y float64) color.NRGBA {
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	if !(x >= 0 && y >= 0 && x <= float64(w-1) && y <= float64(h-1)) {
		return Background
	}

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > w-1 {
		x1 = w - 1
	}
	if y1 > h-1 {
		y1 = h - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	p00 := src.NRGBAAt(x0, y0)
	p10 := src.NRGBAAt(x1, y0)
	p01 := src.NRGBAAt(x0, y1)
	p11 := src.NRGBAAt(x1, y1)

	return color.NRGBA{
		R: lerp2(p00.R, p10.R, p01.R, p11.R, fx, fy),
		G: lerp2(p00.G, p10.G, p01.G, p11.G, fx, fy),
		B: lerp2(p00.B, p10.B, p01.B, p11.B, fx, fy),
		A: lerp2(p00.A, p10.A, p01.A, p11.A, fx, fy),
	}
}

// lerp2 bilinearly blends four channel values with fractions fx, fy.
func lerp2(v00, v10, v01, v11 uint8, fx, fy float64) uint8 {
	top := float64(v00)*(1-fx) + float64(v10)*fx
	bottom := float64(v01)*(1-fx) + float64(v11)*fx
	return uint8(top*(1-fy) + bottom*fy + 0.5)
}

// toNRGBA converts an image to NRGBA with its origin at (0,0).
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == image.Pt(0, 0) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
