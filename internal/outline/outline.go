// Package outline flattens glyph drawing commands into polygon contours.
//
// A Builder consumes the move/line/quad/cubic/close command stream of exactly
// one glyph and produces an Outline: a shared point cloud in
// font-height-normalized units plus the list of closed contours indexing it.
package outline

import (
	"errors"

	"github.com/golang/geo/r2"
)

// ErrMalformedOutline is returned when the command stream cannot describe a
// set of closed contours.
var ErrMalformedOutline = errors.New("outline: malformed outline")

// Contour is one polygonal loop of an Outline.
//
// Indices reference Outline.Points. The closing edge from the last index back
// to the first is implicit and never stored as a trailing duplicate.
type Contour struct {
	Indices []uint32

	// Closed reports whether the contour was terminated by Close. Contours
	// interrupted by a new MoveTo or by the end of the glyph are left open.
	Closed bool
}

// Len returns the number of points in the contour.
func (c Contour) Len() int {
	return len(c.Indices)
}

// Outline is a flattened glyph outline.
type Outline struct {
	// Points is the point cloud shared by all contours.
	Points []r2.Point

	// Contours are the loops of the outline, in command order.
	Contours []Contour
}

// IsEmpty reports whether the outline has no contours.
// Glyphs such as space legitimately produce an empty outline.
func (o *Outline) IsEmpty() bool {
	return o == nil || len(o.Contours) == 0
}

// PointCount returns the number of points in the outline.
func (o *Outline) PointCount() int {
	if o == nil {
		return 0
	}
	return len(o.Points)
}
