package selection

import (
	"strings"

	fsutil "github.com/kk-code-lab/fbrowse/internal/fs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// JumpToKey selects the next entry in listing whose name starts with the
// letter key, searching forward from just after the last selected entry.
// The scan does not wrap. While a previous jump key is still held the call
// does nothing. It returns the selected entry when a jump happened.
func (e *Engine) JumpToKey(listing []string, key rune) (string, bool) {
	letter := normalizeLetter(key)
	if letter == 0 || len(listing) == 0 {
		return "", false
	}
	if e.keys.State() == KeyHeld {
		return "", false
	}

	normalized := make([]string, len(listing))
	for i, p := range listing {
		normalized[i] = fsutil.NormalizePath(p)
	}

	upper := cases.Upper(language.Und)
	start := e.lastSelectedIndex(normalized) + 1
	prefix := string(letter)
	for i := start; i < len(normalized); i++ {
		name := upper.String(fsutil.BaseName(normalized[i]))
		if strings.HasPrefix(name, prefix) {
			e.SelectByKey(normalized[i], letter)
			return normalized[i], true
		}
	}
	return "", false
}

// ReleaseKey ends the debounce for key. Releasing any other key is ignored.
func (e *Engine) ReleaseKey(key rune) {
	e.keys.release(key)
}

// HeldKey returns the jump key still considered held, or 0.
func (e *Engine) HeldKey() rune {
	return e.keys.Key()
}

// KeyState exposes the jump debounce state.
func (e *Engine) KeyState() KeyState {
	return e.keys.State()
}

// ConsumeScroll returns the last jump target once, so the view scrolls to it a
// single time.
func (e *Engine) ConsumeScroll() (string, bool) {
	return e.keys.consumeScroll()
}

// normalizeLetter upper-cases ASCII letters and returns 0 for anything else.
func normalizeLetter(key rune) rune {
	switch {
	case key >= 'A' && key <= 'Z':
		return key
	case key >= 'a' && key <= 'z':
		return key - 'a' + 'A'
	default:
		return 0
	}
}
