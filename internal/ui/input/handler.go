package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/fbrowse/internal/selection"
)

// Mode tells the handler how to read printable keys.
type Mode int

const (
	// ModeBrowse reads letters as A-Z jumps.
	ModeBrowse Mode = iota
	// ModeQuery feeds printable keys into the search query.
	ModeQuery
)

// InputHandler converts tcell events to Actions.
type InputHandler struct {
	actionChan chan<- Action
	mode       Mode
}

// NewInputHandler creates a handler that emits on actionChan.
func NewInputHandler(actionChan chan<- Action) *InputHandler {
	return &InputHandler{actionChan: actionChan}
}

// SetMode switches between browsing and query editing.
func (ih *InputHandler) SetMode(mode Mode) {
	ih.mode = mode
}

// Mode reports the current input mode.
func (ih *InputHandler) Mode() Mode {
	return ih.mode
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the event asks the application to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// Modifiers maps terminal modifier bits onto selection modifiers: Shift
// extends a range, Ctrl, Alt and Meta toggle.
func Modifiers(mod tcell.ModMask) selection.ModifierState {
	return selection.ModifierState{
		Range: mod&tcell.ModShift != 0,
		Multi: mod&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0,
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		ih.actionChan <- QuitAction{}
		return false
	case tcell.KeyCtrlR:
		ih.actionChan <- RefreshAction{}
		return true
	case tcell.KeyCtrlZ:
		ih.actionChan <- SuspendAction{}
		return true
	}

	if ih.mode == ModeQuery {
		ih.processQueryKey(ev)
		return true
	}

	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- EscapeAction{}
	case tcell.KeyUp:
		ih.actionChan <- MoveAction{Delta: -1, Extend: shift}
	case tcell.KeyDown:
		ih.actionChan <- MoveAction{Delta: 1, Extend: shift}
	case tcell.KeyPgUp:
		ih.actionChan <- PageAction{Direction: -1}
	case tcell.KeyPgDn:
		ih.actionChan <- PageAction{Direction: 1}
	case tcell.KeyHome:
		ih.actionChan <- MoveToStartAction{}
	case tcell.KeyEnd:
		ih.actionChan <- MoveToEndAction{}
	case tcell.KeyEnter, tcell.KeyRight:
		ih.actionChan <- OpenAction{}
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- GoUpAction{}
	case tcell.KeyRune:
		ih.processBrowseRune(ev)
	}
	return true
}

func (ih *InputHandler) processBrowseRune(ev *tcell.EventKey) {
	r := ev.Rune()
	switch r {
	case ' ':
		// Space toggles like a modified click; with Shift it extends.
		mods := Modifiers(ev.Modifiers())
		if !mods.Range {
			mods.Multi = true
		}
		ih.actionChan <- SelectCursorAction{Modifiers: mods}
		return
	case '/':
		ih.actionChan <- QueryStartAction{}
		return
	case '.':
		ih.actionChan <- ToggleHiddenAction{}
		return
	}

	if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		return
	}
	if r < unicode.MaxASCII && unicode.IsLetter(r) {
		ih.actionChan <- JumpAction{Key: r}
	}
}

func (ih *InputHandler) processQueryKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- QueryAbortAction{}
	case tcell.KeyEnter:
		ih.actionChan <- QuerySubmitAction{}
	case tcell.KeyCtrlE:
		ih.actionChan <- QuerySubmitAction{Everywhere: true}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- QueryBackspaceAction{}
	case tcell.KeyRune:
		if r := ev.Rune(); unicode.IsPrint(r) {
			ih.actionChan <- QueryCharAction{Char: r}
		}
	}
}
