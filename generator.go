package meshtext

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/gogpu/meshtext/internal/extrude"
	"github.com/gogpu/meshtext/internal/outline"
	"github.com/gogpu/meshtext/text"
	"github.com/gogpu/meshtext/triangulate"
)

// MeshGenerator turns glyphs of one font into triangle meshes.
//
// A MeshGenerator is immutable after creation and safe for concurrent use.
// Every request builds its own outline; nothing is cached. Wrap it in a
// CachedGenerator to reuse meshes across requests.
type MeshGenerator struct {
	source       text.Source
	quality      QualitySettings
	triangulator triangulate.Triangulator
}

// NewMeshGenerator creates a generator for the glyphs of src.
//
// Example:
//
//	src, err := text.NewSourceFromFile("Go-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gen, err := meshtext.NewMeshGenerator(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mesh, err := gen.GenerateIndexedMesh('A', false)
func NewMeshGenerator(src text.Source, opts ...GeneratorOption) (*MeshGenerator, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.quality.Validate(); err != nil {
		return nil, err
	}
	if options.triangulator == nil {
		options.triangulator = triangulate.NewPoly2Tri()
	}

	return &MeshGenerator{
		source:       src,
		quality:      options.quality,
		triangulator: options.triangulator,
	}, nil
}

// Source returns the font source the generator reads glyphs from.
func (g *MeshGenerator) Source() text.Source {
	return g.source
}

// Quality returns the curve flattening quality.
func (g *MeshGenerator) Quality() QualitySettings {
	return g.quality
}

// GenerateIndexedMesh builds the mesh of the glyph mapped to r.
// Runes the font does not map use its fallback glyph.
//
// With flat set the mesh is the glyph face at z = 0. Otherwise it is a
// closed solid one unit deep, centered on z = 0.
func (g *MeshGenerator) GenerateIndexedMesh(r rune, flat bool) (*IndexedMesh, error) {
	return g.GenerateGlyph(g.source.GlyphIndex(r), flat)
}

// GenerateGlyph builds the mesh of glyph gid.
//
// A glyph without an outline, such as a space, yields an empty mesh with an
// all-zero bounding box and no error.
func (g *MeshGenerator) GenerateGlyph(gid text.GlyphID, flat bool) (*IndexedMesh, error) {
	height := g.source.ReferenceHeight()
	b := outline.NewBuilder(height, g.quality.QuadSteps, g.quality.CubicSteps)

	rect, ok, err := g.source.Outline(gid, b)
	if err != nil {
		return nil, fmt.Errorf("meshtext: glyph %d: %w", gid, err)
	}
	if !ok {
		Logger().Debug("meshtext: glyph has no outline", "glyph", gid)
		return &IndexedMesh{}, nil
	}

	o, err := b.Outline()
	if err != nil {
		return nil, fmt.Errorf("meshtext: glyph %d: %w", gid, err)
	}

	tris, err := triangulateOutline(g.triangulator, o)
	if err != nil {
		return nil, fmt.Errorf("meshtext: glyph %d: %w", gid, err)
	}

	var (
		m          extrude.Mesh
		minZ, maxZ float64
	)
	if flat {
		m = extrude.Flat(o.Points, tris)
	} else {
		m = extrude.Extrude(o.Points, tris)
		minZ, maxZ = extrude.BackZ, extrude.FrontZ
	}

	Logger().Debug("meshtext: glyph meshed",
		"glyph", gid,
		"flat", flat,
		"contours", len(o.Contours),
		"points", o.PointCount(),
		"triangles", m.TriangleCount())

	return &IndexedMesh{
		BBox:     boxFromRect(normalizeRect(rect, height), minZ, maxZ),
		Vertices: m.Vertices,
		Indices:  m.Indices,
	}, nil
}

// GenerateMesh builds the non-indexed mesh of the glyph mapped to r.
func (g *MeshGenerator) GenerateMesh(r rune, flat bool) (*Mesh, error) {
	m, err := g.GenerateIndexedMesh(r, flat)
	if err != nil {
		return nil, err
	}
	return m.Flatten(), nil
}

// GenerateIndexedMeshTransformed builds the mesh of the glyph mapped to r
// and applies mat to its vertices and bounding box.
func (g *MeshGenerator) GenerateIndexedMeshTransformed(r rune, flat bool, mat Matrix) (*IndexedMesh, error) {
	m, err := g.GenerateIndexedMesh(r, flat)
	if err != nil {
		return nil, err
	}
	return m.Transform(mat), nil
}

// GenerateMeshTransformed is the non-indexed form of
// GenerateIndexedMeshTransformed.
func (g *MeshGenerator) GenerateMeshTransformed(r rune, flat bool, mat Matrix) (*Mesh, error) {
	m, err := g.GenerateIndexedMeshTransformed(r, flat, mat)
	if err != nil {
		return nil, err
	}
	return m.Flatten(), nil
}

// normalizeRect divides a font-unit rectangle by the reference height the
// same way the outline builder divides points.
func normalizeRect(rect r2.Rect, height float64) r2.Rect {
	if rect.IsEmpty() {
		return rect
	}
	if height == 0 {
		height = 1
	}
	return r2.RectFromPoints(
		r2.Point{X: rect.X.Lo / height, Y: rect.Y.Lo / height},
		r2.Point{X: rect.X.Hi / height, Y: rect.Y.Hi / height},
	)
}
