// Package extrude assembles indexed triangle meshes from a triangulated
// glyph face, either flat or extruded into a closed solid of unit depth.
package extrude

import (
	"github.com/golang/geo/r2"

	"github.com/gogpu/meshtext/triangulate"
)

// Cap depths of an extruded solid.
const (
	FrontZ = 0.5
	BackZ  = -0.5
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	// Vertices holds x, y, z triples.
	Vertices []float32

	// Indices holds vertex index triples, one per triangle.
	Indices []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Flat promotes the points to z = 0 and keeps the triangles verbatim.
func Flat(points []r2.Point, tris []triangulate.Triangle) Mesh {
	m := Mesh{
		Vertices: make([]float32, 0, 3*len(points)),
		Indices:  make([]uint32, 0, 3*len(tris)),
	}
	m.Vertices = appendLayer(m.Vertices, points, 0)
	for _, t := range tris {
		m.Indices = append(m.Indices, t[0], t[1], t[2])
	}
	return m
}

// Extrude builds a closed solid from the front-face triangulation.
//
// The vertex buffer is the front layer at FrontZ followed by its mirror at
// BackZ. The index buffer is the front cap, the back cap with reversed
// winding, then two wall triangles per boundary edge.
func Extrude(points []r2.Point, tris []triangulate.Triangle) Mesh {
	r := uint32(len(points)) // #nosec G115 -- glyph point counts are far below 2^32
	boundary := BoundaryEdges(tris)

	m := Mesh{
		Vertices: make([]float32, 0, 6*len(points)),
		Indices:  make([]uint32, 0, 6*len(tris)+6*len(boundary)),
	}
	m.Vertices = appendLayer(m.Vertices, points, FrontZ)
	m.Vertices = appendLayer(m.Vertices, points, BackZ)

	for _, t := range tris {
		m.Indices = append(m.Indices, t[0], t[1], t[2])
	}
	for _, t := range tris {
		b := t.Reversed().Offset(r)
		m.Indices = append(m.Indices, b[0], b[1], b[2])
	}

	// The face lies to the left of every boundary edge, so walls wound
	// a → b+r → b face away from it.
	for _, e := range boundary {
		a, b := e.From, e.To
		m.Indices = append(m.Indices,
			a, b+r, b,
			a, a+r, b+r,
		)
	}
	return m
}

// BoundaryEdges returns the edges that belong to exactly one triangle, with
// the direction they have in that triangle.
//
// Edges are toggled in a set keyed by their undirected endpoints, so interior
// edges shared by two triangles cancel out regardless of visitation order.
// The survivors are returned in triangle order.
func BoundaryEdges(tris []triangulate.Triangle) []triangulate.Edge {
	seen := make(map[uint64]struct{}, 3*len(tris)/2)
	for _, t := range tris {
		for i := range 3 {
			k := edgeKey(t[i], t[(i+1)%3])
			if _, ok := seen[k]; ok {
				delete(seen, k)
			} else {
				seen[k] = struct{}{}
			}
		}
	}

	edges := make([]triangulate.Edge, 0, len(seen))
	for _, t := range tris {
		for i := range 3 {
			a, b := t[i], t[(i+1)%3]
			k := edgeKey(a, b)
			if _, ok := seen[k]; ok {
				delete(seen, k)
				edges = append(edges, triangulate.Edge{From: a, To: b})
			}
		}
	}
	return edges
}

func edgeKey(a, b uint32) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

func appendLayer(dst []float32, points []r2.Point, z float32) []float32 {
	for _, p := range points {
		dst = append(dst, float32(p.X), float32(p.Y), z)
	}
	return dst
}
