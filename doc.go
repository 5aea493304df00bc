// Package meshtext turns font glyphs into triangle meshes.
//
// # Overview
//
// meshtext reads the vector outline of a glyph from a TrueType or OpenType
// font, flattens its curves into polygons, fills the polygons with triangles
// and returns an indexed mesh. The mesh is either the flat glyph face at
// z = 0 or a closed solid extruded one unit deep.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/meshtext"
//	    "github.com/gogpu/meshtext/text"
//	)
//
//	src, err := text.NewSourceFromFile("Go-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gen, err := meshtext.NewMeshGenerator(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Extruded solid of 'A'
//	mesh, err := gen.GenerateIndexedMesh('A', false)
//
// # Pipeline
//
// Each request runs three stages:
//   - Outline: drawing commands from the font are flattened into contours.
//     Quadratic curves become QualitySettings.QuadSteps segments and cubic
//     curves CubicSteps segments.
//   - Triangulation: closed contours are filled by a triangulate.Triangulator.
//     Open contours are rejected with ErrOpenContour before triangulation.
//   - Assembly: the fill becomes a flat mesh, or front and back caps joined by
//     side walls along the silhouette.
//
// # Coordinate System
//
// Coordinates are divided by the font's reference height (ascender minus
// descender plus line gap), so a line of text is about one unit tall:
//   - Origin at the glyph origin on the baseline
//   - X increases right
//   - Y increases up
//   - Z increases toward the viewer; the front cap is at z = 0.5
//
// Triangles are wound counter-clockwise when seen from outside.
//
// # Concurrency
//
// MeshGenerator and CachedGenerator are safe for concurrent use. Meshes
// returned by CachedGenerator are shared and must not be modified.
package meshtext

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
