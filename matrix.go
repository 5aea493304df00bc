package meshtext

import (
	"math"

	"github.com/golang/geo/r3"
)

// Matrix represents a 3D affine transformation matrix.
// It uses a 3x4 matrix in row-major order:
//
//	| a  b  c  d |
//	| e  f  g  h |
//	| i  j  k  l |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c*z + d
//	y' = e*x + f*y + g*z + h
//	z' = i*x + j*y + k*z + l
type Matrix struct {
	A, B, C, D float64
	E, F, G, H float64
	I, J, K, L float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, F: 1, K: 1,
	}
}

// Translate creates a translation matrix.
func Translate(x, y, z float64) Matrix {
	return Matrix{
		A: 1, D: x,
		F: 1, H: y,
		K: 1, L: z,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y, z float64) Matrix {
	return Matrix{
		A: x,
		F: y,
		K: z,
	}
}

// RotateZ creates a rotation about the Z axis (angle in radians).
// Positive angles turn X toward Y.
func RotateZ(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin,
		E: sin, F: cos,
		K: 1,
	}
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.E + m.C*other.I,
		B: m.A*other.B + m.B*other.F + m.C*other.J,
		C: m.A*other.C + m.B*other.G + m.C*other.K,
		D: m.A*other.D + m.B*other.H + m.C*other.L + m.D,

		E: m.E*other.A + m.F*other.E + m.G*other.I,
		F: m.E*other.B + m.F*other.F + m.G*other.J,
		G: m.E*other.C + m.F*other.G + m.G*other.K,
		H: m.E*other.D + m.F*other.H + m.G*other.L + m.H,

		I: m.I*other.A + m.J*other.E + m.K*other.I,
		J: m.I*other.B + m.J*other.F + m.K*other.J,
		K: m.I*other.C + m.J*other.G + m.K*other.K,
		L: m.I*other.D + m.J*other.H + m.K*other.L + m.L,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.A*p.X + m.B*p.Y + m.C*p.Z + m.D,
		Y: m.E*p.X + m.F*p.Y + m.G*p.Z + m.H,
		Z: m.I*p.X + m.J*p.Y + m.K*p.Z + m.L,
	}
}

// Determinant returns the determinant of the linear part of m.
// It is negative when m mirrors space.
func (m Matrix) Determinant() float64 {
	return m.A*(m.F*m.K-m.G*m.J) -
		m.B*(m.E*m.K-m.G*m.I) +
		m.C*(m.E*m.J-m.F*m.I)
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// transformVertices applies m in place to a packed xyz vertex buffer.
func (m Matrix) transformVertices(vertices []float32) {
	for i := 0; i+2 < len(vertices); i += 3 {
		p := m.TransformPoint(r3.Vector{
			X: float64(vertices[i]),
			Y: float64(vertices[i+1]),
			Z: float64(vertices[i+2]),
		})
		vertices[i] = float32(p.X)
		vertices[i+1] = float32(p.Y)
		vertices[i+2] = float32(p.Z)
	}
}
