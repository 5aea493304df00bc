package meshtext

import (
	"errors"
	"fmt"

	"github.com/gogpu/meshtext/internal/outline"
	"github.com/gogpu/meshtext/triangulate"
)

// Sentinel errors for mesh generation.
var (
	// ErrMalformedOutline is returned when a glyph's drawing commands do not
	// describe closed contours: a segment or Close without a preceding
	// MoveTo, or a contour with fewer than three distinct points.
	ErrMalformedOutline = outline.ErrMalformedOutline

	// ErrOpenContour is returned when a contour's boundary edges do not form
	// a closed chain. It wraps ErrMalformedOutline.
	ErrOpenContour = fmt.Errorf("meshtext: open contour: %w", ErrMalformedOutline)

	// ErrTriangulation is returned when the triangulation engine rejects an
	// outline. Use errors.As with *triangulate.TriangulationError for details.
	ErrTriangulation = triangulate.ErrTriangulation

	// ErrInvalidQuality is returned when a QualitySettings step count is zero.
	ErrInvalidQuality = errors.New("meshtext: invalid quality settings")

	// ErrNilSource is returned when a generator is created without a font source.
	ErrNilSource = errors.New("meshtext: nil font source")
)

// ContourError describes which contour of a glyph failed validation.
type ContourError struct {
	Contour int
	Reason  string
	Err     error
}

func (e *ContourError) Error() string {
	return fmt.Sprintf("meshtext: contour %d: %s", e.Contour, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ContourError) Unwrap() error {
	return e.Err
}
