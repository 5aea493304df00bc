// Package text provides glyph outlines from TrueType and OpenType fonts.
//
// A Source is a parsed font, shared across goroutines. It maps runes to
// glyphs and replays a glyph's outline as MoveTo, LineTo, QuadTo, CubeTo and
// Close commands into a Sink, in font units with the Y axis growing up.
//
// # Example usage
//
//	src, err := text.NewSourceFromFile("Go-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gid := src.GlyphIndex('A')
//	bounds, ok, err := src.Outline(gid, sink)
//
// # Pluggable Parser Backend
//
// Font parsing is abstracted through the Parser interface. Two parsers are
// built in: "sfnt" (golang.org/x/image/font/sfnt, the default) and "gotext"
// (github.com/go-text/typesetting). Custom parsers can be registered:
//
//	text.RegisterParser("myparser", myCustomParser)
//	src, err := text.NewSource(data, text.WithParser("myparser"))
package text
