package geometry

import (
	"errors"
	"math"
	"testing"
)

// approxEq reports whether two coordinates agree to within tolerance.
func approxEq(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestQuadToQuad_MapsCorners(t *testing.T) {
	tests := []struct {
		name     string
		from, to Quad
	}{
		{
			name: "identity",
			from: Quad{{0, 0}, {100, 0}, {100, 50}, {0, 50}},
			to:   Quad{{0, 0}, {100, 0}, {100, 50}, {0, 50}},
		},
		{
			name: "rectangle to rectangle (scale + translate)",
			from: Quad{{10, 20}, {110, 20}, {110, 70}, {10, 70}},
			to:   Quad{{0, 0}, {200, 0}, {200, 100}, {0, 100}},
		},
		{
			name: "skewed quadrilateral to rectangle",
			from: Quad{{12, 8}, {190, 15}, {200, 140}, {5, 130}},
			to:   Quad{{0, 0}, {180, 0}, {180, 125}, {0, 125}},
		},
		{
			name: "rectangle to skewed quadrilateral",
			from: Quad{{0, 0}, {80, 0}, {80, 60}, {0, 60}},
			to:   Quad{{5, 3}, {77, 10}, {85, 55}, {2, 62}},
		},
	}

	for _, tt := range tests {
		tr, err := QuadToQuad(tt.from, tt.to)
		if err != nil {
			t.Errorf("%s: QuadToQuad() error: %v", tt.name, err)
			continue
		}
		for i := 0; i < 4; i++ {
			x, y := tr.Apply(tt.from[i].X, tt.from[i].Y)
			if !approxEq(x, tt.to[i].X, 1e-6) || !approxEq(y, tt.to[i].Y, 1e-6) {
				t.Errorf("%s: corner %d maps to (%v, %v), want (%v, %v)",
					tt.name, i, x, y, tt.to[i].X, tt.to[i].Y)
			}
		}
	}
}

func TestQuadToQuad_RoundTrip(t *testing.T) {
	src := Quad{{12, 8}, {190, 15}, {200, 140}, {5, 130}}
	dst := Quad{{0, 0}, {180, 0}, {180, 125}, {0, 125}}

	fwd, err := QuadToQuad(src, dst)
	if err != nil {
		t.Fatalf("forward transform: %v", err)
	}
	inv, err := QuadToQuad(dst, src)
	if err != nil {
		t.Fatalf("inverse transform: %v", err)
	}

	// Interior points must survive a forward+inverse round trip.
	probes := []Point{{50, 50}, {100, 70}, {150, 120}, {20, 30}}
	for _, p := range probes {
		fx, fy := fwd.Apply(p.X, p.Y)
		bx, by := inv.Apply(fx, fy)
		if !approxEq(bx, p.X, 1e-6) || !approxEq(by, p.Y, 1e-6) {
			t.Errorf("round trip of (%v, %v) gave (%v, %v)", p.X, p.Y, bx, by)
		}
	}
}

func TestQuadToQuad_Degenerate(t *testing.T) {
	rect := Quad{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	collinear := Quad{{0, 0}, {1, 0}, {2, 0}, {3, 0}}

	if _, err := QuadToQuad(collinear, rect); !errors.Is(err, ErrDegenerate) {
		t.Errorf("degenerate source: got %v, want ErrDegenerate", err)
	}
	if _, err := QuadToQuad(rect, collinear); !errors.Is(err, ErrDegenerate) {
		t.Errorf("degenerate destination: got %v, want ErrDegenerate", err)
	}
}

func TestPerspective_AffineBranch(t *testing.T) {
	// A parallelogram keeps opposing edges parallel, which exercises the
	// affine special case of the solver.
	from := Quad{{0, 0}, {100, 0}, {120, 50}, {20, 50}}
	to := Quad{{0, 0}, {100, 0}, {100, 50}, {0, 50}}

	tr, err := QuadToQuad(from, to)
	if err != nil {
		t.Fatalf("QuadToQuad: %v", err)
	}
	// Midpoint of the parallelogram maps to the midpoint of the rectangle.
	x, y := tr.Apply(60, 25)
	if !approxEq(x, 50, 1e-6) || !approxEq(y, 25, 1e-6) {
		t.Errorf("midpoint maps to (%v, %v), want (50, 25)", x, y)
	}
}
