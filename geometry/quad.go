package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrPointCount is returned when a quadrilateral is built from anything
// other than exactly four points.
var ErrPointCount = errors.New("exactly 4 coordinates are required")

// ErrDegenerate is returned when four points are collinear or otherwise
// enclose zero area, so no valid rectification transform exists for them.
var ErrDegenerate = errors.New("degenerate quadrilateral: points enclose zero area")

// degenerateEps is the threshold below which the absolute signed area of a
// quadrilateral is treated as zero. Coordinates are in pixels, so any
// usable document region has an area many orders of magnitude above this.
const degenerateEps = 1e-9

// Point represents a 2D point in source-image pixel coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Quad is an ordered quadrilateral: exactly four points in the winding
// order top-left, top-right, bottom-right, bottom-left. The fixed-size
// array makes the four-point invariant structural rather than checked.
type Quad [4]Point

// NewQuad validates caller-supplied corner points and returns them as a
// Quad. It fails with ErrPointCount unless exactly four points are given,
// and with ErrDegenerate when the points enclose zero area. It has no side
// effects.
func NewQuad(points []Point) (Quad, error) {
	if len(points) != 4 {
		return Quad{}, fmt.Errorf("%w (got %d)", ErrPointCount, len(points))
	}

	var q Quad
	copy(q[:], points)

	if q.IsDegenerate() {
		return Quad{}, ErrDegenerate
	}
	return q, nil
}

// Area returns the signed area of the quadrilateral computed with the
// shoelace formula. Positive for one winding, negative for the other;
// zero when the points are collinear.
func (q Quad) Area() float64 {
	var sum float64
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		sum += q[i].X*q[j].Y - q[j].X*q[i].Y
	}
	return sum / 2
}

// IsDegenerate reports whether the quadrilateral encloses (effectively)
// zero area, i.e. whether its points are collinear or coincident.
func (q Quad) IsDegenerate() bool {
	return math.Abs(q.Area()) < degenerateEps
}

// TopEdge returns the length of the edge from the top-left corner to the
// top-right corner.
func (q Quad) TopEdge() float64 { return q[1].Distance(q[0]) }

// BottomEdge returns the length of the edge from the bottom-left corner to
// the bottom-right corner.
func (q Quad) BottomEdge() float64 { return q[2].Distance(q[3]) }

// LeftEdge returns the length of the edge from the top-left corner to the
// bottom-left corner.
func (q Quad) LeftEdge() float64 { return q[3].Distance(q[0]) }

// RightEdge returns the length of the edge from the top-right corner to the
// bottom-right corner.
func (q Quad) RightEdge() float64 { return q[2].Distance(q[1]) }

// DstSize computes the destination rectangle dimensions for rectifying this
// quadrilateral: the width is the longer of the top and bottom edges, the
// height the longer of the left and right edges. Taking the max of the two
// opposing edges avoids cropping content when the quadrilateral is skewed
// by perspective.
func (q Quad) DstSize() (width, height float64) {
	width = math.Max(q.TopEdge(), q.BottomEdge())
	height = math.Max(q.LeftEdge(), q.RightEdge())
	return width, height
}
