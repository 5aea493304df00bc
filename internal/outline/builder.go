package outline

import (
	"fmt"
	"slices"

	"github.com/golang/geo/r2"
)

// Builder accumulates the drawing commands of a single glyph.
//
// Coordinates are divided by the font reference height as they are recorded,
// so curve evaluation happens in normalized space. A Builder is owned by one
// request and must not be shared; Outline is terminal.
//
// Errors are sticky: after the first malformed command the remaining commands
// are ignored and Outline reports the error.
type Builder struct {
	height     float64
	quadSteps  uint32
	cubicSteps uint32

	points   []r2.Point
	contours []Contour

	current []uint32 // scratch indices of the contour being built
	pen     r2.Point
	open    bool

	err error
}

// NewBuilder creates a Builder normalizing by height and approximating each
// quadratic curve with quadSteps segments and each cubic with cubicSteps.
// Zero step counts are treated as 1.
func NewBuilder(height float64, quadSteps, cubicSteps uint32) *Builder {
	if height == 0 {
		height = 1
	}
	return &Builder{
		height:     height,
		quadSteps:  max(quadSteps, 1),
		cubicSteps: max(cubicSteps, 1),
	}
}

// MoveTo starts a new contour at (x, y).
// A contour that was still open is kept, unclosed.
func (b *Builder) MoveTo(x, y float64) {
	if b.err != nil {
		return
	}
	if b.open {
		b.flushOpen()
	}
	b.open = true
	b.current = b.current[:0]
	b.add(b.normalize(x, y))
}

// LineTo appends a straight segment to (x, y).
func (b *Builder) LineTo(x, y float64) {
	if !b.ready("line") {
		return
	}
	b.add(b.normalize(x, y))
}

// QuadTo appends the quadratic curve through control (cx, cy) ending at (x, y).
func (b *Builder) QuadTo(cx, cy, x, y float64) {
	if !b.ready("quadratic curve") {
		return
	}
	p0, p1, p2 := b.pen, b.normalize(cx, cy), b.normalize(x, y)
	n := b.quadSteps
	for step := uint32(1); step < n; step++ {
		t := float64(step) / float64(n)
		b.add(quadPoint(p0, p1, p2, t))
	}
	b.add(p2)
}

// CubeTo appends the cubic curve through controls (c1x, c1y) and (c2x, c2y)
// ending at (x, y).
func (b *Builder) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !b.ready("cubic curve") {
		return
	}
	p0, p1, p2, p3 := b.pen, b.normalize(c1x, c1y), b.normalize(c2x, c2y), b.normalize(x, y)
	n := b.cubicSteps
	for step := uint32(1); step < n; step++ {
		t := float64(step) / float64(n)
		b.add(cubicPoint(p0, p1, p2, p3, t))
	}
	b.add(p3)
}

// Close terminates the current contour.
func (b *Builder) Close() {
	if !b.ready("close") {
		return
	}
	b.open = false

	// A final point landing back on the first one only repeats the implicit
	// closing edge. It is always the most recently recorded point.
	if n := len(b.current); n > 1 && b.points[b.current[n-1]] == b.points[b.current[0]] {
		b.current = b.current[:n-1]
		b.points = b.points[:len(b.points)-1]
	}

	if len(b.current) < 3 {
		b.fail(fmt.Sprintf("contour %d has %d points, need at least 3", len(b.contours), len(b.current)))
		return
	}

	b.contours = append(b.contours, Contour{Indices: slices.Clone(b.current), Closed: true})
	b.pen = b.points[b.current[0]]
	b.current = b.current[:0]
}

// Outline returns the accumulated outline. A contour still open at this point
// is included unclosed.
func (b *Builder) Outline() (*Outline, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.open {
		b.flushOpen()
		b.open = false
	}
	return &Outline{Points: b.points, Contours: b.contours}, nil
}

// Err returns the first error encountered, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) normalize(x, y float64) r2.Point {
	return r2.Point{X: x / b.height, Y: y / b.height}
}

// add records p as the next point of the current contour. Zero-length
// segments are dropped.
func (b *Builder) add(p r2.Point) {
	if n := len(b.current); n > 0 && b.points[b.current[n-1]] == p {
		return
	}
	b.current = append(b.current, uint32(len(b.points))) // #nosec G115 -- glyph point counts are far below 2^32
	b.points = append(b.points, p)
	b.pen = p
}

func (b *Builder) flushOpen() {
	b.contours = append(b.contours, Contour{Indices: slices.Clone(b.current)})
	b.current = b.current[:0]
}

// ready reports whether a drawing command may be applied, recording an error
// when no contour has been started.
func (b *Builder) ready(op string) bool {
	if b.err != nil {
		return false
	}
	if !b.open {
		b.fail(op + " without a preceding move")
		return false
	}
	return true
}

func (b *Builder) fail(msg string) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %s", ErrMalformedOutline, msg)
	}
}
