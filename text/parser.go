package text

import (
	"slices"
	"sync"
)

// Parser is an interface for font parsing backends.
// This abstraction allows swapping the font library that provides outlines.
//
// The default implementation uses golang.org/x/image/font/sfnt.
type Parser interface {
	// Parse parses font data (TTF or OTF) and returns a Source.
	// The parser may retain data.
	Parse(data []byte) (Source, error)
}

// ParserFunc adapts an ordinary function to the Parser interface.
type ParserFunc func(data []byte) (Source, error)

// Parse implements Parser.
func (f ParserFunc) Parse(data []byte) (Source, error) {
	return f(data)
}

// defaultParserName is the name of the default parser.
const defaultParserName = "sfnt"

// parserRegistry holds registered font parsers.
var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]Parser{
		"sfnt": ParserFunc(func(data []byte) (Source, error) {
			return parseSFNT(data)
		}),
		"gotext": ParserFunc(func(data []byte) (Source, error) {
			return parseGoText(data)
		}),
	}
)

// RegisterParser registers a custom font parser.
// Registering an existing name replaces it.
func RegisterParser(name string, parser Parser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// Parsers returns the sorted names of all registered parsers.
func Parsers() []string {
	parserMu.RLock()
	defer parserMu.RUnlock()
	names := make([]string, 0, len(parserRegistry))
	for name := range parserRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// getParser returns the parser registered under name.
func getParser(name string) (Parser, bool) {
	parserMu.RLock()
	defer parserMu.RUnlock()
	p, ok := parserRegistry[name]
	return p, ok
}
