package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// PostalMark is the Japanese postal symbol that may prefix a postal code
const PostalMark = "〒"

// NormalizeWidth folds full-width ASCII variants (digits, hyphens, latin letters)
// to their narrow forms and trims surrounding whitespace. Kana and kanji are
// left untouched.
func NormalizeWidth(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}

// Digits returns the ASCII digits of s in order after width folding.
// Anything else, including hyphens and the postal mark, is skipped.
func Digits(s string) string {
	folded := width.Narrow.String(s)
	var b strings.Builder
	for _, r := range folded {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsWide reports whether r occupies a full em when rendered
func IsWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	case width.EastAsianAmbiguous:
		return unicode.Is(unicode.Han, r)
	}
	return false
}
