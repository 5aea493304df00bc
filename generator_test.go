package meshtext

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/meshtext/text"
	"github.com/gogpu/meshtext/triangulate"
)

// scriptSource is a text.Source whose single glyph is drawn by a function.
type scriptSource struct {
	draw   func(s text.Sink)
	bounds r2.Rect
	height float64
	err    error
}

func (s *scriptSource) GlyphIndex(r rune) text.GlyphID {
	if r == ' ' {
		return 0
	}
	return 1
}

func (s *scriptSource) Outline(gid text.GlyphID, sink text.Sink) (r2.Rect, bool, error) {
	if s.err != nil {
		return r2.EmptyRect(), false, s.err
	}
	if gid == 0 || s.draw == nil {
		return r2.EmptyRect(), false, nil
	}
	s.draw(sink)
	return s.bounds, true, nil
}

func (s *scriptSource) ReferenceHeight() float64 {
	if s.height == 0 {
		return 1
	}
	return s.height
}

func unitSquareSource() *scriptSource {
	return &scriptSource{
		draw: func(s text.Sink) {
			s.MoveTo(0, 0)
			s.LineTo(1, 0)
			s.LineTo(1, 1)
			s.LineTo(0, 1)
			s.Close()
		},
		bounds: r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}),
	}
}

// countingTriangulator returns fixed triangles and counts its calls.
type countingTriangulator struct {
	calls atomic.Int32
	tris  []triangulate.Triangle
}

func (c *countingTriangulator) Triangulate([]r2.Point, []triangulate.Edge) ([]triangulate.Triangle, error) {
	c.calls.Add(1)
	return c.tris, nil
}

func newGoRegularGenerator(t *testing.T, parser string, opts ...GeneratorOption) *MeshGenerator {
	t.Helper()
	src, err := text.NewSource(goregular.TTF, text.WithParser(parser))
	if err != nil {
		t.Fatalf("NewSource(%s) failed: %v", parser, err)
	}
	gen, err := NewMeshGenerator(src, opts...)
	if err != nil {
		t.Fatalf("NewMeshGenerator failed: %v", err)
	}
	return gen
}

func vertexAt(vertices []float32, i uint32) r3.Vector {
	return r3.Vector{
		X: float64(vertices[3*i]),
		Y: float64(vertices[3*i+1]),
		Z: float64(vertices[3*i+2]),
	}
}

func TestNewMeshGenerator_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  text.Source
		opts []GeneratorOption
		want error
	}{
		{"nil source", nil, nil, ErrNilSource},
		{"zero quad steps", unitSquareSource(), []GeneratorOption{WithQuality(QualitySettings{QuadSteps: 0, CubicSteps: 3})}, ErrInvalidQuality},
		{"zero cubic steps", unitSquareSource(), []GeneratorOption{WithQuality(QualitySettings{QuadSteps: 5, CubicSteps: 0})}, ErrInvalidQuality},
		{"zero quality", unitSquareSource(), []GeneratorOption{WithQuality(QualitySettings{})}, ErrInvalidQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewMeshGenerator(tt.src, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewMeshGenerator() error = %v, want %v", err, tt.want)
			}
			if gen != nil {
				t.Error("NewMeshGenerator() returned a generator on error")
			}
		})
	}
}

func TestNewMeshGenerator_Defaults(t *testing.T) {
	gen, err := NewMeshGenerator(unitSquareSource())
	if err != nil {
		t.Fatalf("NewMeshGenerator failed: %v", err)
	}
	if got, want := gen.Quality(), (QualitySettings{QuadSteps: 5, CubicSteps: 3}); got != want {
		t.Errorf("Quality() = %+v, want %+v", got, want)
	}
	if gen.Source() == nil {
		t.Error("Source() = nil")
	}
}

func TestGenerate_UnitSquare(t *testing.T) {
	stub := &countingTriangulator{tris: []triangulate.Triangle{{0, 1, 2}, {0, 2, 3}}}
	engines := map[string]triangulate.Triangulator{
		"stub":     stub,
		"poly2tri": triangulate.NewPoly2Tri(),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			gen, err := NewMeshGenerator(unitSquareSource(), WithTriangulator(engine))
			if err != nil {
				t.Fatalf("NewMeshGenerator failed: %v", err)
			}

			m, err := gen.GenerateIndexedMesh('x', false)
			if err != nil {
				t.Fatalf("GenerateIndexedMesh failed: %v", err)
			}
			if got := m.VertexCount(); got != 8 {
				t.Errorf("VertexCount() = %d, want 8", got)
			}
			if got := m.TriangleCount(); got != 12 {
				t.Errorf("TriangleCount() = %d, want 12", got)
			}
			if got := len(m.Indices); got != 36 {
				t.Errorf("len(Indices) = %d, want 36", got)
			}
			wantBox := BoundingBox{Min: r3.Vector{X: 0, Y: 0, Z: -0.5}, Max: r3.Vector{X: 1, Y: 1, Z: 0.5}}
			if m.BBox != wantBox {
				t.Errorf("BBox = %+v, want %+v", m.BBox, wantBox)
			}

			flat, err := gen.GenerateIndexedMesh('x', true)
			if err != nil {
				t.Fatalf("GenerateIndexedMesh(flat) failed: %v", err)
			}
			if flat.VertexCount() != 4 || flat.TriangleCount() != 2 {
				t.Errorf("flat mesh = %d vertices, %d triangles, want 4, 2", flat.VertexCount(), flat.TriangleCount())
			}
			if flat.BBox.Min.Z != 0 || flat.BBox.Max.Z != 0 {
				t.Errorf("flat BBox z = [%v, %v], want [0, 0]", flat.BBox.Min.Z, flat.BBox.Max.Z)
			}
		})
	}

	if stub.calls.Load() != 2 {
		t.Errorf("stub engine called %d times, want 2", stub.calls.Load())
	}
}

func TestGenerate_StubEngineBuffers(t *testing.T) {
	stub := &countingTriangulator{tris: []triangulate.Triangle{{0, 1, 2}, {0, 2, 3}}}
	gen, err := NewMeshGenerator(unitSquareSource(), WithTriangulator(stub))
	if err != nil {
		t.Fatalf("NewMeshGenerator failed: %v", err)
	}

	m, err := gen.GenerateIndexedMesh('x', false)
	if err != nil {
		t.Fatalf("GenerateIndexedMesh failed: %v", err)
	}

	wantVertices := []float32{
		0, 0, 0.5, 1, 0, 0.5, 1, 1, 0.5, 0, 1, 0.5,
		0, 0, -0.5, 1, 0, -0.5, 1, 1, -0.5, 0, 1, -0.5,
	}
	if diff := cmp.Diff(wantVertices, m.Vertices); diff != "" {
		t.Errorf("Vertices mismatch (-want +got):\n%s", diff)
	}
	wantIndices := []uint32{
		// front
		0, 1, 2, 0, 2, 3,
		// back
		6, 5, 4, 7, 6, 4,
		// walls along (0,1) (1,2) (2,3) (3,0)
		0, 5, 1, 0, 4, 5,
		1, 6, 2, 1, 5, 6,
		2, 7, 3, 2, 6, 7,
		3, 4, 0, 3, 7, 4,
	}
	if diff := cmp.Diff(wantIndices, m.Indices); diff != "" {
		t.Errorf("Indices mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_OpenContourSkipsEngine(t *testing.T) {
	tests := []struct {
		name string
		draw func(s text.Sink)
	}{
		{"never closed", func(s text.Sink) {
			s.MoveTo(0, 0)
			s.LineTo(1, 0)
			s.LineTo(1, 1)
		}},
		{"interrupted by move", func(s text.Sink) {
			s.MoveTo(0, 0)
			s.LineTo(1, 0)
			s.LineTo(1, 1)
			s.MoveTo(2, 2)
			s.LineTo(3, 2)
			s.LineTo(3, 3)
			s.Close()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &countingTriangulator{}
			src := &scriptSource{draw: tt.draw, bounds: r2.RectFromPoints(r2.Point{}, r2.Point{X: 3, Y: 3})}
			gen, err := NewMeshGenerator(src, WithTriangulator(stub))
			if err != nil {
				t.Fatalf("NewMeshGenerator failed: %v", err)
			}

			for _, flat := range []bool{true, false} {
				_, err := gen.GenerateIndexedMesh('x', flat)
				if !errors.Is(err, ErrOpenContour) {
					t.Errorf("flat=%v: error = %v, want %v", flat, err, ErrOpenContour)
				}
				if !errors.Is(err, ErrMalformedOutline) {
					t.Errorf("flat=%v: error = %v, want it to wrap %v", flat, err, ErrMalformedOutline)
				}
				var ce *ContourError
				if !errors.As(err, &ce) || ce.Contour != 0 {
					t.Errorf("flat=%v: error = %v, want *ContourError for contour 0", flat, err)
				}
			}
			if n := stub.calls.Load(); n != 0 {
				t.Errorf("engine called %d times, want 0", n)
			}
		})
	}
}

func TestGenerate_MalformedOutline(t *testing.T) {
	tests := []struct {
		name string
		draw func(s text.Sink)
	}{
		{"line without move", func(s text.Sink) {
			s.LineTo(1, 0)
		}},
		{"close without move", func(s text.Sink) {
			s.Close()
		}},
		{"two point contour", func(s text.Sink) {
			s.MoveTo(0, 0)
			s.LineTo(1, 0)
			s.Close()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &countingTriangulator{}
			gen, err := NewMeshGenerator(&scriptSource{draw: tt.draw}, WithTriangulator(stub))
			if err != nil {
				t.Fatalf("NewMeshGenerator failed: %v", err)
			}
			if _, err := gen.GenerateIndexedMesh('x', false); !errors.Is(err, ErrMalformedOutline) {
				t.Errorf("error = %v, want %v", err, ErrMalformedOutline)
			}
			if n := stub.calls.Load(); n != 0 {
				t.Errorf("engine called %d times, want 0", n)
			}
		})
	}
}

func TestGenerate_ErrorsPropagate(t *testing.T) {
	t.Run("source", func(t *testing.T) {
		sourceErr := errors.New("broken glyph table")
		gen, err := NewMeshGenerator(&scriptSource{err: sourceErr})
		if err != nil {
			t.Fatalf("NewMeshGenerator failed: %v", err)
		}
		if _, err := gen.GenerateIndexedMesh('x', false); !errors.Is(err, sourceErr) {
			t.Errorf("error = %v, want %v", err, sourceErr)
		}
	})

	t.Run("engine", func(t *testing.T) {
		engineErr := &triangulate.TriangulationError{Reason: "rejected"}
		engine := triangulate.Func(func([]r2.Point, []triangulate.Edge) ([]triangulate.Triangle, error) {
			return nil, engineErr
		})
		gen, err := NewMeshGenerator(unitSquareSource(), WithTriangulator(engine))
		if err != nil {
			t.Fatalf("NewMeshGenerator failed: %v", err)
		}
		_, err = gen.GenerateIndexedMesh('x', true)
		if !errors.Is(err, ErrTriangulation) {
			t.Errorf("error = %v, want %v", err, ErrTriangulation)
		}
		var te *triangulate.TriangulationError
		if !errors.As(err, &te) || te != engineErr {
			t.Errorf("error = %v, want the engine's *TriangulationError", err)
		}
	})
}

func TestGenerate_EmptyGlyph(t *testing.T) {
	for _, parser := range []string{"sfnt", "gotext"} {
		gen := newGoRegularGenerator(t, parser)
		for _, flat := range []bool{true, false} {
			m, err := gen.GenerateIndexedMesh(' ', flat)
			if err != nil {
				t.Fatalf("%s flat=%v: GenerateIndexedMesh(' ') failed: %v", parser, flat, err)
			}
			if len(m.Vertices) != 0 || len(m.Indices) != 0 {
				t.Errorf("%s flat=%v: mesh has %d vertices, %d indices, want 0, 0", parser, flat, len(m.Vertices), len(m.Indices))
			}
			if !m.BBox.IsZero() {
				t.Errorf("%s flat=%v: BBox = %+v, want zero", parser, flat, m.BBox)
			}
		}
	}
}

func TestGenerate_GoRegular(t *testing.T) {
	for _, parser := range []string{"sfnt", "gotext"} {
		gen := newGoRegularGenerator(t, parser)
		for _, r := range "AOBg8e" {
			t.Run(parser+"/"+string(r), func(t *testing.T) {
				flat, err := gen.GenerateIndexedMesh(r, true)
				if err != nil {
					t.Fatalf("flat: %v", err)
				}
				solid, err := gen.GenerateIndexedMesh(r, false)
				if err != nil {
					t.Fatalf("extruded: %v", err)
				}

				if flat.TriangleCount() == 0 {
					t.Fatal("flat mesh has no triangles")
				}
				// Every outline point lies on exactly one boundary edge.
				if got, want := solid.VertexCount(), 2*flat.VertexCount(); got != want {
					t.Errorf("extruded VertexCount() = %d, want %d", got, want)
				}
				if got, want := solid.TriangleCount(), 2*flat.TriangleCount()+2*flat.VertexCount(); got != want {
					t.Errorf("extruded TriangleCount() = %d, want %d", got, want)
				}

				checkInsideBox(t, flat)
				checkInsideBox(t, solid)
				checkWatertight(t, solid)
			})
		}
	}
}

// TestGenerate_EveryGlyph meshes the whole font. Printable ASCII must always
// succeed; other glyphs may only fail with a reported geometry error.
func TestGenerate_EveryGlyph(t *testing.T) {
	if testing.Short() {
		t.Skip("meshes every glyph of the font")
	}
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	var buf sfnt.Buffer
	ascii := make(map[text.GlyphID]rune)
	for r := rune(0x21); r < 0x7f; r++ {
		if gi, err := f.GlyphIndex(&buf, r); err == nil && gi != 0 {
			ascii[text.GlyphID(gi)] = r
		}
	}

	tests := []struct {
		name    string
		quality QualitySettings
		strict  bool
	}{
		{"coarse", QualitySettings{QuadSteps: 1, CubicSteps: 1}, false},
		{"default", DefaultQuality(), true},
		{"fine", QualitySettings{QuadSteps: 10, CubicSteps: 10}, true},
	}

	for _, parser := range []string{"sfnt", "gotext"} {
		for _, tt := range tests {
			t.Run(parser+"/"+tt.name, func(t *testing.T) {
				gen := newGoRegularGenerator(t, parser, WithQuality(tt.quality))

				failed := 0
				for gid := range text.GlyphID(f.NumGlyphs()) {
					solid, err := gen.GenerateGlyph(gid, false)
					if err != nil {
						if r, ok := ascii[gid]; ok && tt.strict {
							t.Errorf("glyph %d (%q): %v", gid, r, err)
							continue
						}
						if !errors.Is(err, ErrTriangulation) && !errors.Is(err, ErrMalformedOutline) {
							t.Errorf("glyph %d: unexpected error %v", gid, err)
						}
						failed++
						continue
					}
					checkInsideBox(t, solid)
					checkWatertight(t, solid)
				}
				if failed > 0 {
					t.Logf("%d of %d glyphs rejected as degenerate", failed, f.NumGlyphs())
				}
			})
		}
	}
}

func TestGenerate_NearlyCollinearOutlines(t *testing.T) {
	// These outlines have long runs of short, nearly collinear edges.
	for _, parser := range []string{"sfnt", "gotext"} {
		for _, q := range []QualitySettings{DefaultQuality(), {QuadSteps: 10, CubicSteps: 10}} {
			gen := newGoRegularGenerator(t, parser, WithQuality(q))
			for _, r := range "{}*$()" {
				m, err := gen.GenerateIndexedMesh(r, false)
				if err != nil {
					t.Errorf("%s %+v: GenerateIndexedMesh(%q) failed: %v", parser, q, r, err)
					continue
				}
				checkWatertight(t, m)
			}
		}
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	gen := newGoRegularGenerator(t, "sfnt")
	for _, flat := range []bool{true, false} {
		first, err := gen.GenerateIndexedMesh('R', flat)
		if err != nil {
			t.Fatalf("GenerateIndexedMesh failed: %v", err)
		}
		again, err := gen.GenerateIndexedMesh('R', flat)
		if err != nil {
			t.Fatalf("GenerateIndexedMesh failed: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Errorf("flat=%v: repeated generation differs (-first +again):\n%s", flat, diff)
		}
	}
}

func TestGenerate_QualityMonotonic(t *testing.T) {
	var prev int
	for _, steps := range []uint32{1, 2, 4, 8} {
		gen := newGoRegularGenerator(t, "sfnt", WithQuality(QualitySettings{QuadSteps: steps, CubicSteps: steps}))
		m, err := gen.GenerateIndexedMesh('O', true)
		if err != nil {
			t.Fatalf("steps=%d: %v", steps, err)
		}
		if m.VertexCount() <= prev {
			t.Errorf("steps=%d: VertexCount() = %d, want more than %d", steps, m.VertexCount(), prev)
		}
		prev = m.VertexCount()
	}
}

func TestGenerate_UnmappedRuneUsesFallback(t *testing.T) {
	gen := newGoRegularGenerator(t, "sfnt")
	viaRune, err := gen.GenerateIndexedMesh('\U0010FFFD', true)
	if err != nil {
		t.Fatalf("GenerateIndexedMesh failed: %v", err)
	}
	viaGlyph, err := gen.GenerateGlyph(0, true)
	if err != nil {
		t.Fatalf("GenerateGlyph(0) failed: %v", err)
	}
	if diff := cmp.Diff(viaGlyph, viaRune); diff != "" {
		t.Errorf("unmapped rune mesh differs from glyph 0 (-glyph0 +rune):\n%s", diff)
	}
}

func TestGenerateMesh(t *testing.T) {
	gen := newGoRegularGenerator(t, "sfnt")
	indexed, err := gen.GenerateIndexedMesh('k', false)
	if err != nil {
		t.Fatalf("GenerateIndexedMesh failed: %v", err)
	}
	m, err := gen.GenerateMesh('k', false)
	if err != nil {
		t.Fatalf("GenerateMesh failed: %v", err)
	}
	if got, want := len(m.Vertices), 3*len(indexed.Indices); got != want {
		t.Errorf("len(Vertices) = %d, want %d", got, want)
	}
	if m.TriangleCount() != indexed.TriangleCount() {
		t.Errorf("TriangleCount() = %d, want %d", m.TriangleCount(), indexed.TriangleCount())
	}
	if m.BBox != indexed.BBox {
		t.Errorf("BBox = %+v, want %+v", m.BBox, indexed.BBox)
	}
}

func TestGenerateTransformed(t *testing.T) {
	gen := newGoRegularGenerator(t, "sfnt")
	mat := Translate(2, -1, 0).Multiply(Scale(3, 3, 0.25))

	plain, err := gen.GenerateIndexedMesh('H', false)
	if err != nil {
		t.Fatalf("GenerateIndexedMesh failed: %v", err)
	}
	moved, err := gen.GenerateIndexedMeshTransformed('H', false, mat)
	if err != nil {
		t.Fatalf("GenerateIndexedMeshTransformed failed: %v", err)
	}

	if diff := cmp.Diff(plain.Indices, moved.Indices); diff != "" {
		t.Errorf("indices changed by transform (-plain +moved):\n%s", diff)
	}
	for i := uint32(0); i < uint32(plain.VertexCount()); i++ {
		want := mat.TransformPoint(vertexAt(plain.Vertices, i))
		got := vertexAt(moved.Vertices, i)
		if got.Sub(want).Norm() > 1e-5 {
			t.Fatalf("vertex %d = %v, want %v", i, got, want)
		}
	}
	if moved.BBox.Min.Z != -0.125 || moved.BBox.Max.Z != 0.125 {
		t.Errorf("BBox z = [%v, %v], want [-0.125, 0.125]", moved.BBox.Min.Z, moved.BBox.Max.Z)
	}
	checkInsideBox(t, moved)

	flatMoved, err := gen.GenerateMeshTransformed('H', false, mat)
	if err != nil {
		t.Fatalf("GenerateMeshTransformed failed: %v", err)
	}
	if diff := cmp.Diff(moved.Flatten(), flatMoved); diff != "" {
		t.Errorf("GenerateMeshTransformed mismatch (-want +got):\n%s", diff)
	}
}

func checkInsideBox(t *testing.T, m *IndexedMesh) {
	t.Helper()
	const eps = 1e-6
	grown := BoundingBox{
		Min: m.BBox.Min.Sub(r3.Vector{X: eps, Y: eps, Z: eps}),
		Max: m.BBox.Max.Add(r3.Vector{X: eps, Y: eps, Z: eps}),
	}
	for i := uint32(0); i < uint32(m.VertexCount()); i++ {
		if v := vertexAt(m.Vertices, i); !grown.Contains(v) {
			t.Fatalf("vertex %d = %v outside BBox %+v", i, v, m.BBox)
		}
	}
}

// checkWatertight verifies that every directed edge has exactly one
// opposite, which holds for a closed, consistently oriented surface.
func checkWatertight(t *testing.T, m *IndexedMesh) {
	t.Helper()
	directed := make(map[[2]uint32]int)
	for i := 0; i < len(m.Indices); i += 3 {
		for k := range 3 {
			directed[[2]uint32{m.Indices[i+k], m.Indices[i+(k+1)%3]}]++
		}
	}
	for e, n := range directed {
		if n != 1 || directed[[2]uint32{e[1], e[0]}] != 1 {
			t.Fatalf("edge %v used %d times, opposite %d times", e, n, directed[[2]uint32{e[1], e[0]}])
		}
	}
}

func TestGenerate_Normalized(t *testing.T) {
	gen := newGoRegularGenerator(t, "sfnt")
	m, err := gen.GenerateIndexedMesh('H', true)
	if err != nil {
		t.Fatalf("GenerateIndexedMesh failed: %v", err)
	}
	// A capital is shorter than the full line height.
	if h := m.BBox.Size().Y; h <= 0.3 || h >= 1 || math.IsNaN(h) {
		t.Errorf("BBox height = %v, want within (0.3, 1)", h)
	}
	if m.BBox.Min.Y < -1e-6 {
		t.Errorf("BBox.Min.Y = %v, want 'H' to sit on the baseline", m.BBox.Min.Y)
	}
}
