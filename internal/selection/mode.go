// Package selection tracks which filesystem entries are active in the browser
// and how clicks and key presses change that set.
package selection

// Mode is the interaction policy applied by Select.
type Mode int

const (
	Single Mode = iota
	Multiple
	Ranged
)

func (m Mode) String() string {
	switch m {
	case Single:
		return "single"
	case Multiple:
		return "multiple"
	case Ranged:
		return "ranged"
	default:
		return "unknown"
	}
}

// ModifierState is the modifier-key snapshot the shell takes once per tick.
type ModifierState struct {
	Range bool // shift
	Multi bool // ctrl / cmd
}

// DeriveMode maps modifier state onto a selection mode. The range modifier
// wins over the multi modifier.
func DeriveMode(mods ModifierState) Mode {
	switch {
	case mods.Range:
		return Ranged
	case mods.Multi:
		return Multiple
	default:
		return Single
	}
}
