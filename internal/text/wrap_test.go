package text

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      []string
	}{
		{"empty", "", 5, []string{""}},
		{"short", "東京都", 5, []string{"東京都"}},
		{"exact", "12345", 5, []string{"12345"}},
		{"one over", "123456", 5, []string{"12345", "6"}},
		{"kanji by code point", "東京都渋谷区神南一丁目", 4, []string{"東京都渋", "谷区神南", "一丁目"}},
		{"mixed width", "大阪府ABC1-2", 3, []string{"大阪府", "ABC", "1-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.input, tt.maxLength))
		})
	}
}

func TestWrapProperties(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"東京都渋谷区XXX 1-2-3",
		"北海道札幌市中央区北一条西二丁目一番地 札幌市役所本庁舎",
		strings.Repeat("あ", 100),
	}

	for _, s := range inputs {
		for maxLength := 1; maxLength <= 25; maxLength++ {
			lines := Wrap(s, maxLength)
			require.Equal(t, s, strings.Join(lines, ""), "lossless for %q/%d", s, maxLength)

			n := utf8.RuneCountInString(s)
			want := 1
			if n > 0 {
				want = (n + maxLength - 1) / maxLength
			}
			assert.Len(t, lines, want)
			for _, l := range lines {
				assert.LessOrEqual(t, utf8.RuneCountInString(l), maxLength)
			}
		}
	}
}

func TestWrapLinesAndTruncate(t *testing.T) {
	lines := WrapLines([]string{"東京都渋谷区", "", "神南一丁目"}, 4)
	assert.Equal(t, []string{"東京都渋", "谷区", "神南一丁", "目"}, lines)

	assert.Equal(t, []string{"東京都渋", "谷区", "神南一丁"}, Truncate(lines, 3))
	assert.Equal(t, lines, Truncate(lines, 10))
	assert.Empty(t, Truncate(lines, 0))
	assert.Nil(t, WrapLines(nil, 4))
}

func TestDigits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123-4567", "1234567"},
		{"〒123-4567", "1234567"},
		{"１２３－４５６７", "1234567"},
		{"1234567", "1234567"},
		{"12-34", "1234"},
		{"123-45678", "12345678"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Digits(tt.input))
		})
	}
}

func TestNormalizeWidth(t *testing.T) {
	assert.Equal(t, "03-1234-5678", NormalizeWidth("  ０３－１２３４－５６７８ "))
	assert.Equal(t, "山田太郎", NormalizeWidth("山田太郎"))
}

func TestTextShaperMeasure(t *testing.T) {
	s := NewTextShaper()
	f := &Font{Size: 10}

	assert.InDelta(t, 20.0, s.MeasureText("東京", f), 1e-9)
	assert.InDelta(t, 10.0, s.MeasureText("ab", f), 1e-9)
	assert.InDelta(t, 0.0, s.MeasureText("ab", nil), 1e-9)
	assert.Greater(t, s.MeasureText("様", f), s.MeasureText("1", f))
}
