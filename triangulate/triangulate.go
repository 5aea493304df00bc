// Package triangulate defines the interior triangulation contract used to fill
// flattened glyph outlines, and provides a constrained Delaunay engine backed
// by github.com/ByteArena/poly2tri-go.
//
// Engines receive the full point set of an outline and the concatenated,
// closed boundary-edge chains of its contours. They return triangles as
// point-index triples in counter-clockwise winding, so that with the Y axis
// growing up the front face points toward +z.
package triangulate

import (
	"errors"

	"github.com/golang/geo/r2"
)

// Edge is a directed boundary edge between two point indices.
type Edge struct {
	From, To uint32
}

// Triangle is a point-index triple.
type Triangle [3]uint32

// Reversed returns the triangle with opposite winding: (a, b, c) → (c, b, a).
func (t Triangle) Reversed() Triangle {
	return Triangle{t[2], t[1], t[0]}
}

// Offset returns the triangle with r added to every index.
func (t Triangle) Offset(r uint32) Triangle {
	return Triangle{t[0] + r, t[1] + r, t[2] + r}
}

// Triangulator fills the region bounded by closed contours.
//
// Implementations must be safe for concurrent use; the engines in this
// package are stateless.
type Triangulator interface {
	Triangulate(points []r2.Point, edges []Edge) ([]Triangle, error)
}

// Func adapts an ordinary function to the Triangulator interface.
type Func func(points []r2.Point, edges []Edge) ([]Triangle, error)

// Triangulate implements Triangulator.
func (f Func) Triangulate(points []r2.Point, edges []Edge) ([]Triangle, error) {
	return f(points, edges)
}

// ErrTriangulation is matched by every *TriangulationError.
var ErrTriangulation = errors.New("triangulate: triangulation failed")

// TriangulationError reports geometry the engine rejected, typically
// self-intersecting or degenerate contours.
type TriangulationError struct {
	Reason string
	Err    error
}

func (e *TriangulationError) Error() string {
	msg := "triangulate: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *TriangulationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTriangulation.
func (e *TriangulationError) Is(target error) bool {
	return target == ErrTriangulation
}
