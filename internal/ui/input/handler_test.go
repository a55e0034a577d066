package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/fbrowse/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emit(t *testing.T, handler *InputHandler, ch chan Action, ev tcell.Event) Action {
	t.Helper()
	handler.ProcessEvent(ev)
	select {
	case action := <-ch:
		return action
	default:
		return nil
	}
}

func newHandler() (*InputHandler, chan Action) {
	ch := make(chan Action, 4)
	return NewInputHandler(ch), ch
}

func TestLettersJumpInBrowseMode(t *testing.T) {
	handler, ch := newHandler()

	action := emit(t, handler, ch, tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	assert.Equal(t, JumpAction{Key: 'd'}, action)

	action = emit(t, handler, ch, tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift))
	assert.Equal(t, JumpAction{Key: 'D'}, action)
}

func TestNonASCIILettersDoNotJump(t *testing.T) {
	handler, ch := newHandler()
	assert.Nil(t, emit(t, handler, ch, tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone)))
	assert.Nil(t, emit(t, handler, ch, tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone)))
}

func TestLettersFeedQueryInQueryMode(t *testing.T) {
	handler, ch := newHandler()
	handler.SetMode(ModeQuery)

	assert.Equal(t, QueryCharAction{Char: 'd'}, emit(t, handler, ch, tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)))
	assert.Equal(t, QueryCharAction{Char: '/'}, emit(t, handler, ch, tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone)))
	assert.Equal(t, QuerySubmitAction{}, emit(t, handler, ch, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.Equal(t, QueryAbortAction{}, emit(t, handler, ch, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestShiftArrowExtends(t *testing.T) {
	handler, ch := newHandler()

	assert.Equal(t, MoveAction{Delta: 1, Extend: true}, emit(t, handler, ch, tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModShift)))
	assert.Equal(t, MoveAction{Delta: -1}, emit(t, handler, ch, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)))
}

func TestSpaceTogglesCursorEntry(t *testing.T) {
	handler, ch := newHandler()

	action := emit(t, handler, ch, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	require.IsType(t, SelectCursorAction{}, action)
	assert.Equal(t, selection.Multiple, selection.DeriveMode(action.(SelectCursorAction).Modifiers))
}

func TestSlashStartsQuery(t *testing.T) {
	handler, ch := newHandler()
	assert.Equal(t, QueryStartAction{}, emit(t, handler, ch, tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone)))
}

func TestCtrlCQuits(t *testing.T) {
	handler, ch := newHandler()
	handler.SetMode(ModeQuery)

	assert.False(t, handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.Equal(t, QuitAction{}, <-ch)
}

func TestResizeEmitsDimensions(t *testing.T) {
	handler, ch := newHandler()
	assert.Equal(t, ResizeAction{Width: 80, Height: 24}, emit(t, handler, ch, tcell.NewEventResize(80, 24)))
}

func TestModifiers(t *testing.T) {
	tests := []struct {
		mod  tcell.ModMask
		want selection.Mode
	}{
		{tcell.ModNone, selection.Single},
		{tcell.ModCtrl, selection.Multiple},
		{tcell.ModMeta, selection.Multiple},
		{tcell.ModShift, selection.Ranged},
		{tcell.ModShift | tcell.ModCtrl, selection.Ranged},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, selection.DeriveMode(Modifiers(tt.mod)), "mod %v", tt.mod)
	}
}
