package text

import "unicode/utf8"

// Wrap splits text into consecutive chunks of maxLength code points. The
// last chunk holds the remainder. Chunking ignores word boundaries since
// Japanese addresses are not space delimited. Concatenating the result
// always yields text again.
func Wrap(text string, maxLength int) []string {
	if maxLength <= 0 || utf8.RuneCountInString(text) <= maxLength {
		return []string{text}
	}

	runes := []rune(text)
	lines := make([]string, 0, (len(runes)+maxLength-1)/maxLength)
	for start := 0; start < len(runes); start += maxLength {
		end := min(start+maxLength, len(runes))
		lines = append(lines, string(runes[start:end]))
	}
	return lines
}

// WrapLines wraps every non-empty entry of lines independently and
// concatenates the results in order
func WrapLines(lines []string, maxLength int) []string {
	var out []string
	for _, l := range lines {
		if l == "" {
			continue
		}
		out = append(out, Wrap(l, maxLength)...)
	}
	return out
}

// Truncate keeps at most maxLines entries
func Truncate(lines []string, maxLines int) []string {
	if maxLines < 0 {
		maxLines = 0
	}
	if len(lines) <= maxLines {
		return lines
	}
	return lines[:maxLines]
}
