package text

import (
	"fmt"
	"os"

	"github.com/golang/geo/r2"
)

// GlyphID identifies a glyph within a font.
// Glyph 0 is the font's fallback (.notdef) glyph.
type GlyphID uint32

// Sink receives the drawing commands of one glyph outline.
//
// Coordinates are in font units with the Y axis growing up. Every contour
// starts with MoveTo and ends with Close.
type Sink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubeTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

// Source provides glyph outlines from a parsed font.
//
// A Source is read-only after creation and safe for concurrent use.
type Source interface {
	// GlyphIndex maps a rune to its glyph. Unmapped runes resolve to glyph 0.
	GlyphIndex(r rune) GlyphID

	// Outline replays the outline of gid into sink and returns the glyph's
	// bounding rectangle in font units. It returns false without calling
	// sink when the glyph has no vector outline, e.g. a space.
	Outline(gid GlyphID, sink Sink) (bounds r2.Rect, ok bool, err error)

	// ReferenceHeight returns the font height used to normalize
	// coordinates: ascender - descender + line gap, in font units.
	ReferenceHeight() float64
}

// sourceConfig holds configuration for Source creation.
type sourceConfig struct {
	parserName string
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
	}
}

// SourceOption configures Source creation.
type SourceOption func(*sourceConfig)

// WithParser selects the named font parser backend.
// Built in parsers are "sfnt" (golang.org/x/image, the default) and
// "gotext" (github.com/go-text/typesetting).
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// NewSource parses font data (TTF or OTF) into a Source.
// The data slice is copied internally and can be reused after this call.
func NewSource(data []byte, opts ...SourceOption) (Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parser, ok := getParser(config.parserName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParser, config.parserName)
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	return parser.Parse(dataCopy)
}

// NewSourceFromFile loads a Source from a font file path.
func NewSourceFromFile(path string, opts ...SourceOption) (Source, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewSource(data, opts...)
}
