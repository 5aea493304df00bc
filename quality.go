package meshtext

import "fmt"

// Default curve subdivision counts.
const (
	DefaultQuadSteps  = 5
	DefaultCubicSteps = 3
)

// QualitySettings controls how finely curves are flattened.
// Each quadratic Bézier becomes QuadSteps line segments and each cubic
// becomes CubicSteps. Higher values give smoother glyphs and more triangles.
type QualitySettings struct {
	QuadSteps  uint32
	CubicSteps uint32
}

// DefaultQuality returns the default quality settings.
func DefaultQuality() QualitySettings {
	return QualitySettings{
		QuadSteps:  DefaultQuadSteps,
		CubicSteps: DefaultCubicSteps,
	}
}

// Validate returns ErrInvalidQuality if either step count is zero.
func (q QualitySettings) Validate() error {
	if q.QuadSteps == 0 {
		return fmt.Errorf("%w: quad steps must be at least 1", ErrInvalidQuality)
	}
	if q.CubicSteps == 0 {
		return fmt.Errorf("%w: cubic steps must be at least 1", ErrInvalidQuality)
	}
	return nil
}
