package meshtext

import (
	"fmt"

	"github.com/gogpu/meshtext/internal/outline"
	"github.com/gogpu/meshtext/triangulate"
)

// contourEdges derives the boundary-edge chain of every contour, wrapping
// from the last point back to the first, and concatenates them.
func contourEdges(o *outline.Outline) ([]triangulate.Edge, error) {
	n := o.PointCount()
	total := 0
	for _, c := range o.Contours {
		total += c.Len()
	}

	edges := make([]triangulate.Edge, 0, total)
	for ci, c := range o.Contours {
		if !c.Closed {
			return nil, &ContourError{Contour: ci, Reason: "contour was never closed", Err: ErrOpenContour}
		}
		if c.Len() < 3 {
			return nil, &ContourError{Contour: ci, Reason: fmt.Sprintf("%d points, need at least 3", c.Len()), Err: ErrOpenContour}
		}

		start := len(edges)
		for i, from := range c.Indices {
			to := c.Indices[(i+1)%c.Len()]
			if int(from) >= n || int(to) >= n {
				return nil, &ContourError{Contour: ci, Reason: fmt.Sprintf("point index out of range [0, %d)", n), Err: ErrOpenContour}
			}
			edges = append(edges, triangulate.Edge{From: from, To: to})
		}
		if err := checkChain(edges[start:]); err != nil {
			return nil, &ContourError{Contour: ci, Reason: err.Error(), Err: ErrOpenContour}
		}
	}
	return edges, nil
}

// checkChain verifies that each edge starts where the previous one ended and
// that the last edge returns to the start of the first.
func checkChain(chain []triangulate.Edge) error {
	for i := 1; i < len(chain); i++ {
		if chain[i].From != chain[i-1].To {
			return fmt.Errorf("edge %d starts at %d, previous edge ends at %d", i, chain[i].From, chain[i-1].To)
		}
	}
	if last := chain[len(chain)-1]; last.To != chain[0].From {
		return fmt.Errorf("chain ends at %d, not at its start %d", last.To, chain[0].From)
	}
	return nil
}

// triangulateOutline fills the outline's interior with the engine.
// Contours are validated first; the engine never sees an open chain.
func triangulateOutline(engine triangulate.Triangulator, o *outline.Outline) ([]triangulate.Triangle, error) {
	if o.IsEmpty() {
		return nil, nil
	}
	edges, err := contourEdges(o)
	if err != nil {
		return nil, err
	}
	tris, err := engine.Triangulate(o.Points, edges)
	if err != nil {
		return nil, fmt.Errorf("meshtext: triangulate %d contours: %w", len(o.Contours), err)
	}
	return tris, nil
}
