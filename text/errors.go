package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnknownParser is returned when a source is requested from a parser
	// name that was never registered.
	ErrUnknownParser = errors.New("text: unknown font parser")

	// ErrGlyphNotFound is returned when a glyph id is out of range for the font.
	ErrGlyphNotFound = errors.New("text: glyph not found")
)

// FontError represents a failure of the underlying font library.
type FontError struct {
	Op  string
	Err error
}

func (e *FontError) Error() string {
	if e.Err == nil {
		return "text: " + e.Op
	}
	return "text: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FontError) Unwrap() error {
	return e.Err
}
