package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLeavesSafeInput(t *testing.T) {
	assert.Equal(t, "report 2024.pdf", Sanitize("report 2024.pdf"))
}

func TestSanitizeReplacesControlSequences(t *testing.T) {
	assert.Equal(t, "bad?[31m path", Sanitize("bad\x1b[31m\npath"))
	assert.Equal(t, "a b", Sanitize("a\tb"))
}

func TestSanitizeLabelsFormattingRunes(t *testing.T) {
	got := Sanitize("invoice\u202efdp.exe")
	assert.Equal(t, "invoice<RLO>fdp.exe", got)
	assert.NotContains(t, got, "\u202e")
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, DisplayWidth("hello"))
	assert.Equal(t, 4, DisplayWidth("日本"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exact", 5, "exact"},
		{"longer-name.txt", 8, "longer-…"},
		{"日本語ファイル", 5, "日本…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.text, tt.width)
		assert.Equal(t, tt.want, got, "Truncate(%q, %d)", tt.text, tt.width)
		assert.LessOrEqual(t, DisplayWidth(got), max(tt.width, 0))
	}
}

func TestFitPads(t *testing.T) {
	assert.Equal(t, "ab   ", Fit("ab", 5))
	assert.Equal(t, "abcd…", Fit("abcdefgh", 5))
	assert.Equal(t, 6, DisplayWidth(Fit("日本語ファイル", 6)))
}
