package input

import "github.com/kk-code-lab/fbrowse/internal/selection"

// Action is a user intent produced from a terminal event.
type Action interface{}

// ===== BROWSING =====

type QuitAction struct{}
type SuspendAction struct{}

// MoveAction moves the cursor by Delta rows. With Extend set the rows passed
// over join the selection as a range.
type MoveAction struct {
	Delta  int
	Extend bool
}
type MoveToStartAction struct{}
type MoveToEndAction struct{}

// PageAction moves by one screen in Direction (-1 or 1).
type PageAction struct {
	Direction int
}
type OpenAction struct{}
type GoUpAction struct{}
type RefreshAction struct{}
type ToggleHiddenAction struct{}

// ===== SELECTION =====

// SelectCursorAction applies a selection gesture to the entry under the cursor.
type SelectCursorAction struct {
	Modifiers selection.ModifierState
}

// JumpAction is an A-Z jump. Key is the letter as typed.
type JumpAction struct {
	Key rune
}

// EscapeAction backs out of whatever is active: a running search, the
// results view, then the selection.
type EscapeAction struct{}

// ===== SEARCH =====

type QueryStartAction struct{}
type QueryCharAction struct {
	Char rune
}
type QueryBackspaceAction struct{}
type QueryAbortAction struct{}

// QuerySubmitAction starts a search. Everywhere searches every volume instead
// of the current directory.
type QuerySubmitAction struct {
	Everywhere bool
}

// ===== VIEW =====

type ResizeAction struct {
	Width  int
	Height int
}
