package meshtext

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Vertex attribute locations used by VertexLayout.
const (
	PositionLocation = 0
)

// VertexLayout returns the GPU vertex buffer layout of IndexedMesh.Vertices
// and Mesh.Vertices: one float32x3 position per vertex at location 0.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: gputypes.VertexFormatFloat32x3.Size(),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{
				Format:         gputypes.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: PositionLocation,
			},
		},
	}
}

// IndexFormat returns the index format of IndexedMesh.Indices.
func IndexFormat() gputypes.IndexFormat {
	return gputypes.IndexFormatUint32
}

// PrimitiveState returns the primitive assembly state for drawing the mesh.
//
// Triangles are wound counter-clockwise. Extruded meshes are closed solids, so
// back faces can be culled. A flat mesh has no back side and is drawn from
// both directions.
func (m *IndexedMesh) PrimitiveState() gputypes.PrimitiveState {
	state := gputypes.PrimitiveState{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  gputypes.CullModeNone,
	}
	if m.BBox.Size().Z > 0 {
		state.CullMode = gputypes.CullModeBack
	}
	return state
}

// VertexBytes returns the vertex buffer as little-endian bytes, ready for
// upload with the layout from VertexLayout.
func (m *IndexedMesh) VertexBytes() []byte {
	return float32Bytes(m.Vertices)
}

// IndexBytes returns the index buffer as little-endian bytes.
func (m *IndexedMesh) IndexBytes() []byte {
	out := make([]byte, 0, 4*len(m.Indices))
	for _, idx := range m.Indices {
		out = binary.LittleEndian.AppendUint32(out, idx)
	}
	return out
}

// VertexBytes returns the vertex buffer as little-endian bytes.
func (m *Mesh) VertexBytes() []byte {
	return float32Bytes(m.Vertices)
}

func float32Bytes(values []float32) []byte {
	out := make([]byte, 0, 4*len(values))
	for _, v := range values {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}
