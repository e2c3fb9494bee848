// Package geometry provides the 2D primitives used by the rectification
// engine: points, document-corner quadrilaterals, and the 3x3 projective
// (homography) transform that maps one quadrilateral onto another.
//
// # Quadrilaterals
//
// A [Quad] is a fixed-size array of exactly four points in a fixed winding
// order: top-left, top-right, bottom-right, bottom-left. Use [NewQuad] to
// build one from caller-supplied coordinates; it rejects inputs that do not
// contain exactly four points and inputs whose points enclose zero area:
//
//	quad, err := geometry.NewQuad(points)
//	if errors.Is(err, geometry.ErrPointCount) {
//	    // wrong number of points
//	}
//	if errors.Is(err, geometry.ErrDegenerate) {
//	    // collinear or otherwise zero-area
//	}
//
// Callers are responsible for supplying points in the expected winding
// order. The package does not infer or auto-correct winding.
//
// # Perspective transforms
//
// [QuadToQuad] solves for the unique projective transform mapping the four
// corners of one quadrilateral to the four corners of another:
//
//	tr, err := geometry.QuadToQuad(src, dst)
//	x, y := tr.Apply(px, py)
package geometry
