package meshtext

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// BoundingBox is an axis-aligned box in normalized glyph space.
//
// Flat meshes have a zero z-extent. Extruded meshes span z from -0.5 to 0.5.
// A glyph without an outline has an all-zero box.
type BoundingBox struct {
	Min r3.Vector
	Max r3.Vector
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b BoundingBox) Size() r3.Vector {
	return b.Max.Sub(b.Min)
}

// Contains reports whether v lies inside or on the box.
func (b BoundingBox) Contains(v r3.Vector) bool {
	return v.X >= b.Min.X && v.X <= b.Max.X &&
		v.Y >= b.Min.Y && v.Y <= b.Max.Y &&
		v.Z >= b.Min.Z && v.Z <= b.Max.Z
}

// IsZero reports whether the box is the all-zero box of an empty glyph.
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

// Transform maps all eight corners through m and returns their bounds.
func (b BoundingBox) Transform(m Matrix) BoundingBox {
	out := BoundingBox{
		Min: r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for i := range 8 {
		corner := b.Min
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		p := m.TransformPoint(corner)
		out.Min = r3.Vector{X: math.Min(out.Min.X, p.X), Y: math.Min(out.Min.Y, p.Y), Z: math.Min(out.Min.Z, p.Z)}
		out.Max = r3.Vector{X: math.Max(out.Max.X, p.X), Y: math.Max(out.Max.Y, p.Y), Z: math.Max(out.Max.Z, p.Z)}
	}
	return out
}

// boxFromRect lifts a normalized 2D glyph rectangle into 3D.
// Coordinates are rounded through float32 like the vertex buffer, so every
// vertex stays inside the box.
func boxFromRect(rect r2.Rect, minZ, maxZ float64) BoundingBox {
	if rect.IsEmpty() {
		return BoundingBox{}
	}
	return BoundingBox{
		Min: r3.Vector{X: f32(rect.X.Lo), Y: f32(rect.Y.Lo), Z: minZ},
		Max: r3.Vector{X: f32(rect.X.Hi), Y: f32(rect.Y.Hi), Z: maxZ},
	}
}

func f32(v float64) float64 {
	return float64(float32(v))
}
