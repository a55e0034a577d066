package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	inputui "github.com/kk-code-lab/fbrowse/internal/ui/input"
	renderui "github.com/kk-code-lab/fbrowse/internal/ui/render"
)

const doubleClickThreshold = 300 * time.Millisecond

// Run drives the shell until the user quits.
func (app *Application) Run() {
	app.render()
	renderPending := false

	eventChan := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	ticker := time.NewTicker(app.tick)
	defer ticker.Stop()

	var changes <-chan struct{}
	var watchErrs <-chan error
	if app.watcher != nil {
		changes = app.watcher.Changes()
		watchErrs = app.watcher.Errors()
	}

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case now := <-ticker.C:
			if app.browser.Tick(now) {
				renderPending = true
			}
		case <-changes:
			app.browser.Refresh()
			renderPending = true
		case err := <-watchErrs:
			app.log.Warnf("watcher: %v", err)
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps presses to selection gestures. Only the press transition
// counts, so dragging with a held button does not toggle rows repeatedly.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	buttons := ev.Buttons()
	pressed := buttons &^ app.lastButtons
	app.lastButtons = buttons & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)

	switch {
	case buttons&tcell.WheelUp != 0:
		app.browser.Move(-1, false)
		return true
	case buttons&tcell.WheelDown != 0:
		app.browser.Move(1, false)
		return true
	}

	if pressed&(tcell.ButtonPrimary|tcell.ButtonSecondary) == 0 {
		return false
	}

	_, y := ev.Position()
	_, h := app.screen.Size()
	idx, ok := renderui.RowAt(app.browser.View(), h, y)
	if !ok {
		return false
	}

	if pressed&tcell.ButtonSecondary != 0 {
		app.browser.ContextSelectAt(idx)
		app.lastClickKey = ""
		return true
	}

	now := app.now()
	mods := inputui.Modifiers(ev.Modifiers())
	clickKey := fmt.Sprintf("row-%d", idx)
	doubleClick := app.lastClickKey == clickKey && now.Sub(app.lastClickTime) <= doubleClickThreshold
	app.lastClickKey = clickKey
	app.lastClickTime = now

	if doubleClick && !mods.Range && !mods.Multi {
		app.lastClickKey = ""
		app.browser.OpenAt(idx)
		app.syncWatcher()
		return true
	}

	app.browser.SelectAt(idx, mods)
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action inputui.Action) bool {
	b := app.browser

	switch a := action.(type) {
	case nil:
		return false
	case inputui.QuitAction:
		app.shouldQuit = true
		return false
	case inputui.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
	case inputui.ResizeAction:
		app.screen.Sync()
	case inputui.MoveAction:
		b.Move(a.Delta, a.Extend)
	case inputui.PageAction:
		b.Page(a.Direction)
	case inputui.MoveToStartAction:
		b.MoveTo(0)
	case inputui.MoveToEndAction:
		b.MoveTo(len(b.Listing()) - 1)
	case inputui.OpenAction:
		b.Open()
	case inputui.GoUpAction:
		b.GoUp()
	case inputui.RefreshAction:
		b.Refresh()
	case inputui.ToggleHiddenAction:
		b.ToggleHidden()
	case inputui.SelectCursorAction:
		b.SelectCursor(a.Modifiers)
	case inputui.JumpAction:
		b.Jump(a.Key, app.now())
	case inputui.EscapeAction:
		b.Escape()
	case inputui.QueryStartAction:
		b.StartQuery()
	case inputui.QueryCharAction:
		b.QueryChar(a.Char)
	case inputui.QueryBackspaceAction:
		b.QueryBackspace()
	case inputui.QueryAbortAction:
		b.AbortQuery()
	case inputui.QuerySubmitAction:
		b.SubmitQuery(a.Everywhere)
	default:
		return false
	}

	if b.Editing() {
		app.input.SetMode(inputui.ModeQuery)
	} else {
		app.input.SetMode(inputui.ModeBrowse)
	}
	app.syncWatcher()
	return true
}
