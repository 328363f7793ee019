package text

import (
	"unicode"
)

// TextShaper estimates text metrics without a font program. Backends
// without real glyph metrics fall back to it.
type TextShaper struct {
	// NarrowAdvance is the advance of a narrow glyph in ems
	NarrowAdvance float64
	// WideAdvance is the advance of a full-width glyph in ems
	WideAdvance float64
}

// Font represents a font used for text shaping
type Font struct {
	Family string
	Size   float64
}

// NewTextShaper creates a new text shaper
func NewTextShaper() *TextShaper {
	return &TextShaper{
		NarrowAdvance: 0.5,
		WideAdvance:   1.0,
	}
}

// MeasureText returns the approximate advance width of a single line of text
func (s *TextShaper) MeasureText(text string, font *Font) float64 {
	if font == nil || font.Size <= 0 {
		return 0
	}

	total := 0.0
	for _, r := range text {
		switch {
		case r == '\n' || unicode.IsControl(r):
			continue
		case IsWide(r):
			total += s.WideAdvance
		default:
			total += s.NarrowAdvance
		}
	}
	return total * font.Size
}
