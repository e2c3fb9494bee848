package geometry

// Perspective is a 3x3 projective transform (homography) between two
// planes. It is a derived value: computed once by QuadToQuad and not
// mutated afterwards.
type Perspective struct {
	a11, a12, a13 float64
	a21, a22, a23 float64
	a31, a32, a33 float64
}

// QuadToQuad solves for the unique projective transform mapping the four
// corners of from onto the four corners of to, using the standard
// four-point-correspondence construction (quadrilateral -> unit square ->
// quadrilateral). It fails with ErrDegenerate when either quadrilateral
// encloses zero area, since no invertible transform exists then.
func QuadToQuad(from, to Quad) (*Perspective, error) {
	if from.IsDegenerate() || to.IsDegenerate() {
		return nil, ErrDegenerate
	}

	qToS, err := quadToSquare(from)
	if err != nil {
		return nil, err
	}
	sToQ, err := squareToQuad(to)
	if err != nil {
		return nil, err
	}
	return sToQ.times(qToS), nil
}

// Apply maps a point through the transform, including the perspective
// divide.
func (t *Perspective) Apply(x, y float64) (float64, float64) {
	d := t.a13*x + t.a23*y + t.a33
	return (t.a11*x + t.a21*y + t.a31) / d,
		(t.a12*x + t.a22*y + t.a32) / d
}

// squareToQuad computes the transform from the unit square to the given
// quadrilateral.
func squareToQuad(q Quad) (*Perspective, error) {
	x0, y0 := q[0].X, q[0].Y
	x1, y1 := q[1].X, q[1].Y
	x2, y2 := q[2].X, q[2].Y
	x3, y3 := q[3].X, q[3].Y

	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3
	if dx3 == 0 && dy3 == 0 {
		// Opposing edges are parallel; the transform is affine.
		return &Perspective{
			a11: x1 - x0, a21: x2 - x1, a31: x0,
			a12: y1 - y0, a22: y2 - y1, a32: y0,
			a13: 0, a23: 0, a33: 1,
		}, nil
	}

	dx1 := x1 - x2
	dx2 := x3 - x2
	dy1 := y1 - y2
	dy2 := y3 - y2
	den := dx1*dy2 - dx2*dy1
	if den == 0 {
		return nil, ErrDegenerate
	}
	a13 := (dx3*dy2 - dx2*dy3) / den
	a23 := (dx1*dy3 - dx3*dy1) / den
	return &Perspective{
		a11: x1 - x0 + a13*x1, a21: x3 - x0 + a23*x3, a31: x0,
		a12: y1 - y0 + a13*y1, a22: y3 - y0 + a23*y3, a32: y0,
		a13: a13, a23: a23, a33: 1,
	}, nil
}

// quadToSquare computes the transform from the given quadrilateral to the
// unit square, as the adjoint of the square-to-quadrilateral transform.
// For a projective transform the adjoint is equivalent to the inverse up
// to scale, and the scale cancels in the perspective divide.
func quadToSquare(q Quad) (*Perspective, error) {
	t, err := squareToQuad(q)
	if err != nil {
		return nil, err
	}
	return t.adjoint(), nil
}

// adjoint returns the adjoint (transpose of the cofactor matrix).
func (t *Perspective) adjoint() *Perspective {
	return &Perspective{
		a11: t.a22*t.a33 - t.a23*t.a32,
		a21: t.a23*t.a31 - t.a21*t.a33,
		a31: t.a21*t.a32 - t.a22*t.a31,
		a12: t.a13*t.a32 - t.a12*t.a33,
		a22: t.a11*t.a33 - t.a13*t.a31,
		a32: t.a12*t.a31 - t.a11*t.a32,
		a13: t.a12*t.a23 - t.a13*t.a22,
		a23: t.a13*t.a21 - t.a11*t.a23,
		a33: t.a11*t.a22 - t.a12*t.a21,
	}
}

// times returns the composition t * other (other applied first).
func (t *Perspective) times(other *Perspective) *Perspective {
	return &Perspective{
		a11: t.a11*other.a11 + t.a21*other.a12 + t.a31*other.a13,
		a21: t.a11*other.a21 + t.a21*other.a22 + t.a31*other.a23,
		a31: t.a11*other.a31 + t.a21*other.a32 + t.a31*other.a33,
		a12: t.a12*other.a11 + t.a22*other.a12 + t.a32*other.a13,
		a22: t.a12*other.a21 + t.a22*other.a22 + t.a32*other.a23,
		a32: t.a12*other.a31 + t.a22*other.a32 + t.a32*other.a33,
		a13: t.a13*other.a11 + t.a23*other.a12 + t.a33*other.a13,
		a23: t.a13*other.a21 + t.a23*other.a22 + t.a33*other.a23,
		a33: t.a13*other.a31 + t.a23*other.a32 + t.a33*other.a33,
	}
}
