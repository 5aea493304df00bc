package meshtext

import "github.com/gogpu/meshtext/triangulate"

// GeneratorOption configures a MeshGenerator during creation.
//
// Example:
//
//	// Default quality and the poly2tri engine
//	gen, err := meshtext.NewMeshGenerator(src)
//
//	// Smoother curves
//	gen, err := meshtext.NewMeshGenerator(src, meshtext.WithQuality(meshtext.QualitySettings{
//	    QuadSteps: 12, CubicSteps: 8,
//	}))
type GeneratorOption func(*generatorOptions)

// generatorOptions holds optional configuration for MeshGenerator creation.
type generatorOptions struct {
	quality      QualitySettings
	triangulator triangulate.Triangulator
}

// defaultOptions returns the default generator options.
func defaultOptions() generatorOptions {
	return generatorOptions{
		quality:      DefaultQuality(),
		triangulator: nil, // Will be set to poly2tri if nil
	}
}

// WithQuality sets the curve flattening quality.
// Zero step counts make NewMeshGenerator fail with ErrInvalidQuality.
func WithQuality(q QualitySettings) GeneratorOption {
	return func(o *generatorOptions) {
		o.quality = q
	}
}

// WithTriangulator replaces the triangulation engine.
// Use this for dependency injection of a custom engine.
func WithTriangulator(t triangulate.Triangulator) GeneratorOption {
	return func(o *generatorOptions) {
		o.triangulator = t
	}
}
