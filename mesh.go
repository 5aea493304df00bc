package meshtext

// IndexedMesh is a triangle mesh with a shared vertex buffer.
//
// Vertices holds three float32 components (x, y, z) per vertex and Indices
// holds three vertex indices per triangle, wound counter-clockwise when seen
// from outside the solid. Coordinates are normalized by the font's reference
// height, so a line of text is about one unit tall.
type IndexedMesh struct {
	BBox     BoundingBox
	Vertices []float32
	Indices  []uint32
}

// Mesh is the non-indexed form of IndexedMesh: every triangle carries its
// own three vertices, in the order Indices would dereference them.
type Mesh struct {
	BBox     BoundingBox
	Vertices []float32
}

// VertexCount returns the number of vertices.
func (m *IndexedMesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *IndexedMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has no triangles.
func (m *IndexedMesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// Flatten expands the mesh into its non-indexed form.
func (m *IndexedMesh) Flatten() *Mesh {
	out := &Mesh{
		BBox:     m.BBox,
		Vertices: make([]float32, 0, 3*len(m.Indices)),
	}
	for _, idx := range m.Indices {
		out.Vertices = append(out.Vertices, m.Vertices[3*idx:3*idx+3]...)
	}
	return out
}

// Vertices2D returns the vertex buffer with the z component dropped,
// two float32 per vertex. Useful for flat meshes drawn in 2D.
func (m *IndexedMesh) Vertices2D() []float32 {
	out := make([]float32, 0, 2*m.VertexCount())
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		out = append(out, m.Vertices[i], m.Vertices[i+1])
	}
	return out
}

// Transform returns a copy of the mesh with m applied to every vertex and to
// the bounding box. Indices are shared with the receiver unless mat mirrors
// the mesh, in which case every triangle is rewound to stay counter-clockwise.
func (m *IndexedMesh) Transform(mat Matrix) *IndexedMesh {
	out := &IndexedMesh{
		BBox:     m.BBox,
		Vertices: append([]float32(nil), m.Vertices...),
		Indices:  m.Indices,
	}
	if mat.Determinant() < 0 {
		out.Indices = make([]uint32, len(m.Indices))
		for i := 0; i+2 < len(m.Indices); i += 3 {
			out.Indices[i] = m.Indices[i]
			out.Indices[i+1] = m.Indices[i+2]
			out.Indices[i+2] = m.Indices[i+1]
		}
	}
	if !mat.IsIdentity() {
		mat.transformVertices(out.Vertices)
		if !m.BBox.IsZero() {
			out.BBox = m.BBox.Transform(mat)
		}
	}
	return out
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 9
}
