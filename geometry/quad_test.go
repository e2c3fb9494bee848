package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestPoint_Distance(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want float64
	}{
		{"same point", Point{1, 1}, Point{1, 1}, 0},
		{"horizontal", Point{0, 0}, Point{100, 0}, 100},
		{"vertical", Point{0, 0}, Point{0, 50}, 50},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-3, -4}, Point{0, 0}, 5},
	}

	for _, tt := range tests {
		if got := tt.p.Distance(tt.q); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: Distance() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewQuad_PointCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 5} {
		points := make([]Point, n)
		for i := range points {
			// Non-collinear placement so only the count can fail.
			points[i] = Point{float64(i * 10), float64((i % 2) * 10)}
		}
		_, err := NewQuad(points)
		if !errors.Is(err, ErrPointCount) {
			t.Errorf("NewQuad with %d points: got %v, want ErrPointCount", n, err)
		}
	}
}

func TestNewQuad_Valid(t *testing.T) {
	points := []Point{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	quad, err := NewQuad(points)
	if err != nil {
		t.Fatalf("NewQuad: %v", err)
	}
	for i, p := range points {
		if quad[i] != p {
			t.Errorf("quad[%d] = %v, want %v", i, quad[i], p)
		}
	}
}

func TestNewQuad_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"collinear horizontal", []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"collinear diagonal", []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"all coincident", []Point{{5, 5}, {5, 5}, {5, 5}, {5, 5}}},
	}

	for _, tt := range tests {
		_, err := NewQuad(tt.points)
		if !errors.Is(err, ErrDegenerate) {
			t.Errorf("%s: got %v, want ErrDegenerate", tt.name, err)
		}
	}
}

func TestQuad_Area(t *testing.T) {
	// 100x50 rectangle in the expected winding (top-left origin image
	// coordinates, y growing downward).
	q := Quad{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	if got := math.Abs(q.Area()); got != 5000 {
		t.Errorf("|Area()| = %v, want 5000", got)
	}

	collinear := Quad{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	if got := collinear.Area(); got != 0 {
		t.Errorf("collinear Area() = %v, want 0", got)
	}
}

func TestQuad_DstSize(t *testing.T) {
	tests := []struct {
		name       string
		quad       Quad
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "axis-aligned rectangle",
			quad:       Quad{{0, 0}, {100, 0}, {100, 50}, {0, 50}},
			wantWidth:  100,
			wantHeight: 50,
		},
		{
			name: "asymmetric trapezoid takes the max edge, not the average",
			quad: Quad{{10, 0}, {90, 0}, {100, 60}, {0, 60}},
			// top edge 80, bottom edge 100 -> width 100
			wantWidth:  100,
			wantHeight: math.Sqrt(10*10 + 60*60),
		},
		{
			name:       "translated rectangle",
			quad:       Quad{{20, 30}, {120, 30}, {120, 80}, {20, 80}},
			wantWidth:  100,
			wantHeight: 50,
		},
	}

	for _, tt := range tests {
		w, h := tt.quad.DstSize()
		if math.Abs(w-tt.wantWidth) > 1e-9 || math.Abs(h-tt.wantHeight) > 1e-9 {
			t.Errorf("%s: DstSize() = (%v, %v), want (%v, %v)",
				tt.name, w, h, tt.wantWidth, tt.wantHeight)
		}
	}
}

func TestQuad_Edges(t *testing.T) {
	q := Quad{{0, 0}, {80, 0}, {100, 60}, {0, 60}}
	if got := q.TopEdge(); got != 80 {
		t.Errorf("TopEdge() = %v, want 80", got)
	}
	if got := q.BottomEdge(); got != 100 {
		t.Errorf("BottomEdge() = %v, want 100", got)
	}
	if got := q.LeftEdge(); got != 60 {
		t.Errorf("LeftEdge() = %v, want 60", got)
	}
	want := math.Sqrt(20*20 + 60*60)
	if got := q.RightEdge(); math.Abs(got-want) > 1e-12 {
		t.Errorf("RightEdge() = %v, want %v", got, want)
	}
}
