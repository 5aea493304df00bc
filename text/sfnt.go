package text

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SFNTSource is a Source backed by golang.org/x/image/font/sfnt.
//
// Glyphs are loaded with ppem set to the raw 26.6 value of the font's units
// per em, so the fixed point coordinates sfnt returns are exactly font units.
type SFNTSource struct {
	font   *sfnt.Font
	ppem   fixed.Int26_6
	height float64
}

var _ Source = (*SFNTSource)(nil)

// NewSFNTSource parses TrueType or OpenType data with golang.org/x/image.
// The data slice is copied internally.
func NewSFNTSource(data []byte) (*SFNTSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	return parseSFNT(dataCopy)
}

// parseSFNT parses data without copying it.
func parseSFNT(data []byte) (*SFNTSource, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, &FontError{Op: "failed to parse font", Err: err}
	}
	return newSFNTSource(f)
}

func newSFNTSource(f *sfnt.Font) (*SFNTSource, error) {
	s := &SFNTSource{
		font: f,
		ppem: fixed.Int26_6(f.UnitsPerEm()),
	}

	var buf sfnt.Buffer
	m, err := f.Metrics(&buf, s.ppem, font.HintingNone)
	if err != nil {
		return nil, &FontError{Op: "failed to read font metrics", Err: err}
	}
	s.height = float64(m.Height)
	if s.height <= 0 {
		s.height = float64(f.UnitsPerEm())
	}
	return s, nil
}

// GlyphIndex implements Source.
func (s *SFNTSource) GlyphIndex(r rune) GlyphID {
	var buf sfnt.Buffer
	idx, err := s.font.GlyphIndex(&buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// ReferenceHeight implements Source.
func (s *SFNTSource) ReferenceHeight() float64 {
	return s.height
}

// UnitsPerEm returns the font's design units per em.
func (s *SFNTSource) UnitsPerEm() int {
	return int(s.font.UnitsPerEm())
}

// Outline implements Source.
// Colored glyphs (bitmap or COLR emoji) have no vector outline.
func (s *SFNTSource) Outline(gid GlyphID, sink Sink) (r2.Rect, bool, error) {
	if gid > math.MaxUint16 {
		return r2.EmptyRect(), false, fmt.Errorf("%w: %d", ErrGlyphNotFound, gid)
	}

	var buf sfnt.Buffer
	segments, err := s.font.LoadGlyph(&buf, sfnt.GlyphIndex(gid), s.ppem, nil)
	switch {
	case errors.Is(err, sfnt.ErrColoredGlyph):
		return r2.EmptyRect(), false, nil
	case errors.Is(err, sfnt.ErrNotFound):
		return r2.EmptyRect(), false, fmt.Errorf("%w: %d", ErrGlyphNotFound, gid)
	case err != nil:
		return r2.EmptyRect(), false, &FontError{Op: fmt.Sprintf("failed to load glyph %d", gid), Err: err}
	}

	if len(segments) == 0 {
		return r2.EmptyRect(), false, nil
	}

	bounds := r2.EmptyRect()
	point := func(p fixed.Point26_6) r2.Point {
		// sfnt's Y axis grows down.
		pt := r2.Point{X: float64(p.X), Y: -float64(p.Y)}
		bounds = bounds.AddPoint(pt)
		return pt
	}

	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				sink.Close()
			}
			open = true
			p := point(seg.Args[0])
			sink.MoveTo(p.X, p.Y)

		case sfnt.SegmentOpLineTo:
			p := point(seg.Args[0])
			sink.LineTo(p.X, p.Y)

		case sfnt.SegmentOpQuadTo:
			c, p := point(seg.Args[0]), point(seg.Args[1])
			sink.QuadTo(c.X, c.Y, p.X, p.Y)

		case sfnt.SegmentOpCubeTo:
			c1, c2, p := point(seg.Args[0]), point(seg.Args[1]), point(seg.Args[2])
			sink.CubeTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
		}
	}
	if open {
		sink.Close()
	}

	return bounds, true, nil
}
