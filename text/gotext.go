package text

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/golang/geo/r2"
)

// GoTextSource is a Source backed by github.com/go-text/typesetting.
//
// The parsed *font.Font is shared. A font.Face carries glyph caches that
// are not safe for concurrent use, so one is created per call.
type GoTextSource struct {
	font   *font.Font
	height float64
}

var _ Source = (*GoTextSource)(nil)

// NewGoTextSource parses TrueType or OpenType data with go-text/typesetting.
// The data slice is copied internally.
func NewGoTextSource(data []byte) (*GoTextSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	return parseGoText(dataCopy)
}

func parseGoText(data []byte) (*GoTextSource, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &FontError{Op: "failed to parse font", Err: err}
	}

	s := &GoTextSource{font: face.Font}
	if ext, ok := face.FontHExtents(); ok {
		s.height = float64(ext.Ascender - ext.Descender + ext.LineGap)
	}
	if s.height <= 0 {
		s.height = float64(face.Upem())
	}
	return s, nil
}

// GlyphIndex implements Source.
func (s *GoTextSource) GlyphIndex(r rune) GlyphID {
	gid, ok := s.font.NominalGlyph(r)
	if !ok {
		return 0
	}
	return GlyphID(gid)
}

// ReferenceHeight implements Source.
func (s *GoTextSource) ReferenceHeight() float64 {
	return s.height
}

// UnitsPerEm returns the font's design units per em.
func (s *GoTextSource) UnitsPerEm() int {
	return int(s.font.Upem())
}

// Outline implements Source.
// SVG glyphs use their fallback outline; bitmap and color glyphs have none.
func (s *GoTextSource) Outline(gid GlyphID, sink Sink) (r2.Rect, bool, error) {
	if gid > math.MaxUint16 {
		return r2.EmptyRect(), false, fmt.Errorf("%w: %d", ErrGlyphNotFound, gid)
	}

	var segments []ot.Segment
	switch data := font.NewFace(s.font).GlyphData(font.GID(gid)).(type) {
	case font.GlyphOutline:
		segments = data.Segments
	case font.GlyphSVG:
		segments = data.Outline.Segments
	case nil:
		return r2.EmptyRect(), false, fmt.Errorf("%w: %d", ErrGlyphNotFound, gid)
	default:
		return r2.EmptyRect(), false, nil
	}

	if len(segments) == 0 {
		return r2.EmptyRect(), false, nil
	}

	bounds := r2.EmptyRect()
	point := func(p ot.SegmentPoint) r2.Point {
		pt := r2.Point{X: float64(p.X), Y: float64(p.Y)}
		bounds = bounds.AddPoint(pt)
		return pt
	}

	open := false
	for _, seg := range segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				sink.Close()
			}
			open = true
			p := point(seg.Args[0])
			sink.MoveTo(p.X, p.Y)

		case ot.SegmentOpLineTo:
			p := point(seg.Args[0])
			sink.LineTo(p.X, p.Y)

		case ot.SegmentOpQuadTo:
			c, p := point(seg.Args[0]), point(seg.Args[1])
			sink.QuadTo(c.X, c.Y, p.X, p.Y)

		case ot.SegmentOpCubeTo:
			c1, c2, p := point(seg.Args[0]), point(seg.Args[1]), point(seg.Args[2])
			sink.CubeTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
		}
	}
	if open {
		sink.Close()
	}

	return bounds, true, nil
}
