package triangulate

import (
	"fmt"
	"maps"
	"math"
	"sort"

	"github.com/ByteArena/poly2tri-go"
	"github.com/golang/geo/r2"
)

// Poly2Tri is a constrained Delaunay triangulator.
//
// Rings are classified by containment depth: rings at even depth are filled
// shapes, rings at odd depth are holes of the ring directly containing them.
// Every filled shape is swept separately together with its holes.
//
// Input is rescaled to a fixed box before sweeping, and runs of nearly
// collinear points are swept as a single edge, then fanned back in. Rings
// whose edges cross or touch are rejected up front.
type Poly2Tri struct{}

// NewPoly2Tri returns a poly2tri backed Triangulator.
func NewPoly2Tri() *Poly2Tri {
	return &Poly2Tri{}
}

// sweepExtent is the size of the square the outline is scaled into before
// sweeping. poly2tri compares orientations against an absolute epsilon of
// 1e-5, which em-normalized glyph coordinates fall under.
const sweepExtent = 1 << 12

// collinearArea is the largest doubled triangle area, in sweep space, for
// which a contour point is merged into the edge joining its neighbours.
const collinearArea = 1e-3

// ring is one closed boundary chain, as point indices.
type ring struct {
	indices []uint32
	depth   int
	parent  int // index of the enclosing filled ring for holes, -1 otherwise

	// kept is the chain handed to poly2tri. merged holds, per kept edge, the
	// nearly collinear points dropped from it.
	kept   []uint32
	merged map[Edge][]uint32
}

// Triangulate implements Triangulator.
func (p *Poly2Tri) Triangulate(points []r2.Point, edges []Edge) (tris []Triangle, err error) {
	rings, err := splitRings(len(points), edges)
	if err != nil {
		return nil, err
	}
	if len(rings) == 0 {
		return nil, nil
	}
	classify(points, rings)

	sp := sweepSpace(points)
	for i := range rings {
		rings[i].simplify(sp)
		if len(rings[i].kept) < 3 {
			return nil, &TriangulationError{Reason: fmt.Sprintf("contour %d has no area", i)}
		}
	}
	if err := checkSimple(sp, rings); err != nil {
		return nil, err
	}

	// poly2tri reports bad input by panicking.
	defer func() {
		if r := recover(); r != nil {
			tris = nil
			err = &TriangulationError{Reason: fmt.Sprint(r)}
		}
	}()

	for i := range rings {
		if rings[i].depth%2 != 0 {
			continue
		}

		index := make(map[*poly2tri.Point]uint32)
		merged := make(map[Edge][]uint32)
		contour := sweepPoints(sp, rings[i].kept, index)
		maps.Copy(merged, rings[i].merged)
		swctx := poly2tri.NewSweepContext(contour, false)
		for j := range rings {
			if rings[j].parent == i {
				swctx.AddHole(sweepPoints(sp, rings[j].kept, index))
				maps.Copy(merged, rings[j].merged)
			}
		}
		swctx.Triangulate()

		var shape []Triangle
		for _, t := range swctx.GetTriangles() {
			var tri Triangle
			for k, pt := range t.Points {
				idx, ok := index[pt]
				if !ok {
					return nil, &TriangulationError{Reason: fmt.Sprintf("output point %v is not an input point", pt)}
				}
				tri[k] = idx
			}
			shape = append(shape, tri)
		}
		shape, err = restoreMerged(shape, merged)
		if err != nil {
			return nil, err
		}
		for _, tri := range shape {
			tris = append(tris, counterClockwise(points, tri))
		}
	}
	return tris, nil
}

func sweepPoints(sp []r2.Point, indices []uint32, index map[*poly2tri.Point]uint32) []*poly2tri.Point {
	out := make([]*poly2tri.Point, len(indices))
	for i, idx := range indices {
		p := poly2tri.NewPoint(sp[idx].X, sp[idx].Y)
		index[p] = idx
		out[i] = p
	}
	return out
}

// sweepSpace maps points into [0, sweepExtent]², preserving aspect ratio.
func sweepSpace(points []r2.Point) []r2.Point {
	bounds := r2.EmptyRect()
	for _, p := range points {
		bounds = bounds.AddPoint(p)
	}
	scale := 1.0
	if size := max(bounds.X.Length(), bounds.Y.Length()); size > 0 {
		scale = sweepExtent / size
	}
	sp := make([]r2.Point, len(points))
	for i, p := range points {
		sp[i] = p.Sub(bounds.Lo()).Mul(scale)
	}
	return sp
}

// simplify fills r.kept with the ring minus runs of points lying on the edge
// between their kept neighbours, recording each run in r.merged.
func (r *ring) simplify(sp []r2.Point) {
	n := len(r.indices)
	at := func(k int) uint32 { return r.indices[k%n] }

	// Start at the sharpest corner; it is never merged.
	start, sharpest := 0, -1.0
	for i := range n {
		a, b, c := sp[at(i+n-1)], sp[at(i)], sp[at(i+1)]
		if area := math.Abs(b.Sub(a).Cross(c.Sub(b))); area > sharpest {
			start, sharpest = i, area
		}
	}

	r.kept = append(r.kept[:0], at(start))
	r.merged = nil
	a := at(start)
	var run []uint32
	for k := 1; k <= n; k++ {
		idx := at(start + k)
		if k < n {
			candidate := append(run, idx)
			if onEdge(sp, a, at(start+k+1), candidate) {
				run = candidate
				continue
			}
		}
		if len(run) > 0 {
			if r.merged == nil {
				r.merged = make(map[Edge][]uint32)
			}
			r.merged[Edge{From: a, To: idx}] = run
			run = nil
		}
		if k < n {
			r.kept = append(r.kept, idx)
		}
		a = idx
	}
}

// onEdge reports whether every point of run lies strictly between a and c,
// within collinearArea of the line through them.
func onEdge(sp []r2.Point, a, c uint32, run []uint32) bool {
	d := sp[c].Sub(sp[a])
	length2 := d.Dot(d)
	if length2 == 0 {
		return false
	}
	for _, b := range run {
		v := sp[b].Sub(sp[a])
		if math.Abs(d.Cross(v)) > collinearArea {
			return false
		}
		if t := d.Dot(v); t <= 0 || t >= length2 {
			return false
		}
	}
	return true
}

// restoreMerged splits every triangle resting on a merged edge into a fan
// through the dropped points, so the result covers every contour point.
func restoreMerged(tris []Triangle, merged map[Edge][]uint32) ([]Triangle, error) {
	if len(merged) == 0 {
		return tris, nil
	}
	out := make([]Triangle, 0, len(tris)+len(merged))
	var stack []Triangle
	for _, t := range tris {
		stack = append(stack[:0], t)
		for len(stack) > 0 {
			t := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			split := false
			for k := range 3 {
				u, v, x := t[k], t[(k+1)%3], t[(k+2)%3]
				run, ok := merged[Edge{From: u, To: v}]
				if !ok {
					if run, ok = merged[Edge{From: v, To: u}]; ok {
						u, v = v, u
					}
				}
				if !ok {
					continue
				}
				delete(merged, Edge{From: u, To: v})

				chain := make([]uint32, 0, len(run)+2)
				chain = append(append(append(chain, u), run...), v)
				for i := len(chain) - 2; i >= 0; i-- {
					stack = append(stack, Triangle{chain[i], chain[i+1], x})
				}
				split = true
				break
			}
			if !split {
				out = append(out, t)
			}
		}
	}
	if len(merged) != 0 {
		return nil, &TriangulationError{Reason: "contour edge missing from sweep output"}
	}
	return out, nil
}

// segment is a kept ring edge with its x extent in sweep space.
type segment struct {
	a, b   uint32
	lo, hi float64
}

// checkSimple rejects rings whose kept edges cross or touch anywhere other
// than at a shared endpoint. poly2tri can recurse without bound on such input.
func checkSimple(sp []r2.Point, rings []ring) error {
	var segs []segment
	for _, r := range rings {
		for i, a := range r.kept {
			b := r.kept[(i+1)%len(r.kept)]
			segs = append(segs, segment{
				a: a, b: b,
				lo: min(sp[a].X, sp[b].X),
				hi: max(sp[a].X, sp[b].X),
			})
		}
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].lo < segs[j].lo })

	for i, s := range segs {
		for _, t := range segs[i+1:] {
			if t.lo > s.hi {
				break
			}
			if s.a == t.a || s.a == t.b || s.b == t.a || s.b == t.b {
				continue
			}
			if intersects(sp[s.a], sp[s.b], sp[t.a], sp[t.b]) {
				return &TriangulationError{Reason: fmt.Sprintf("contour edges (%d, %d) and (%d, %d) intersect", s.a, s.b, t.a, t.b)}
			}
		}
	}
	return nil
}

func orient(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// intersects reports whether segments p1p2 and p3p4 share any point.
func intersects(p1, p2, p3, p4 r2.Point) bool {
	d1, d2 := orient(p3, p4, p1), orient(p3, p4, p2)
	d3, d4 := orient(p1, p2, p3), orient(p1, p2, p4)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && inBox(p3, p4, p1)) ||
		(d2 == 0 && inBox(p3, p4, p2)) ||
		(d3 == 0 && inBox(p1, p2, p3)) ||
		(d4 == 0 && inBox(p1, p2, p4))
}

// inBox reports whether p lies in the bounding box of segment ab.
func inBox(a, b, p r2.Point) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

// splitRings regroups a concatenated edge list into its closed chains.
func splitRings(n int, edges []Edge) ([]ring, error) {
	var rings []ring
	start := 0
	for i, e := range edges {
		if int(e.From) >= n || int(e.To) >= n {
			return nil, &TriangulationError{Reason: fmt.Sprintf("edge %d (%d, %d) out of range for %d points", i, e.From, e.To, n)}
		}
		if i > start && e.From != edges[i-1].To {
			return nil, &TriangulationError{Reason: fmt.Sprintf("edge %d does not continue the chain", i)}
		}
		if e.To != edges[start].From {
			continue
		}
		if i-start+1 < 3 {
			return nil, &TriangulationError{Reason: fmt.Sprintf("ring ending at edge %d has fewer than 3 edges", i)}
		}
		indices := make([]uint32, 0, i-start+1)
		for _, re := range edges[start : i+1] {
			indices = append(indices, re.From)
		}
		rings = append(rings, ring{indices: indices, parent: -1})
		start = i + 1
	}
	if start != len(edges) {
		return nil, &TriangulationError{Reason: "last edge chain is not closed"}
	}
	return rings, nil
}

// classify computes every ring's containment depth and links holes to the
// filled ring directly around them.
func classify(points []r2.Point, rings []ring) {
	for i := range rings {
		sample := points[rings[i].indices[0]]
		for j := range rings {
			if i != j && contains(points, rings[j].indices, sample) {
				rings[i].depth++
			}
		}
	}
	for i := range rings {
		if rings[i].depth%2 == 0 {
			continue
		}
		sample := points[rings[i].indices[0]]
		for j := range rings {
			if rings[j].depth == rings[i].depth-1 && contains(points, rings[j].indices, sample) {
				rings[i].parent = j
				break
			}
		}
	}
}

// contains reports whether p lies inside the polygon using the even-odd rule.
func contains(points []r2.Point, indices []uint32, p r2.Point) bool {
	inside := false
	n := len(indices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := points[indices[i]], points[indices[j]]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// counterClockwise orders t so that its signed area is non-negative.
func counterClockwise(points []r2.Point, t Triangle) Triangle {
	a, b, c := points[t[0]], points[t[1]], points[t[2]]
	if b.Sub(a).Cross(c.Sub(a)) < 0 {
		return Triangle{t[0], t[2], t[1]}
	}
	return t
}
