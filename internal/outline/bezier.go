package outline

import "github.com/golang/geo/r2"

// lerp returns the point at parameter t on the segment a→b.
func lerp(a, b r2.Point, t float64) r2.Point {
	return a.Add(b.Sub(a).Mul(t))
}

// quadPoint evaluates the quadratic Bézier p0, p1, p2 at t using de Casteljau.
func quadPoint(p0, p1, p2 r2.Point, t float64) r2.Point {
	return lerp(lerp(p0, p1, t), lerp(p1, p2, t), t)
}

// cubicPoint evaluates the cubic Bézier p0..p3 at t by reducing it to two
// quadratic evaluations followed by one linear interpolation.
func cubicPoint(p0, p1, p2, p3 r2.Point, t float64) r2.Point {
	return lerp(quadPoint(p0, p1, p2, t), quadPoint(p1, p2, p3, t), t)
}
