package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/fbrowse/internal/config"
	fsutil "github.com/kk-code-lab/fbrowse/internal/fs"
	"github.com/kk-code-lab/fbrowse/internal/logger"
	"github.com/kk-code-lab/fbrowse/internal/search"
	inputui "github.com/kk-code-lab/fbrowse/internal/ui/input"
	renderui "github.com/kk-code-lab/fbrowse/internal/ui/render"
)

// Application represents the running shell.
type Application struct {
	screen   tcell.Screen
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan inputui.Action
	browser  *Browser
	pipeline *search.Pipeline
	watcher  *fsutil.Watcher
	log      *logger.Logger
	tick     time.Duration

	watchedDir  string
	shouldQuit  bool
	lastButtons tcell.ButtonMask

	lastClickKey  string
	lastClickTime time.Time
	now           func() time.Time
}

// NewApplication opens the terminal and shows dir.
func NewApplication(cfg *config.Config, log *logger.Logger, dir string) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	app, err := newApplication(screen, cfg, log, dir)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(screen tcell.Screen, cfg *config.Config, log *logger.Logger, dir string) (*Application, error) {
	if log == nil {
		log = logger.Discard()
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	pipeline, err := search.New(cfg.SearchOptions(log))
	if err != nil {
		return nil, err
	}

	browser, err := NewBrowser(dir, cfg, pipeline, log)
	if err != nil {
		return nil, err
	}

	actionCh := make(chan inputui.Action, 16)
	app := &Application{
		screen:   screen,
		renderer: renderui.NewRenderer(screen),
		input:    inputui.NewInputHandler(actionCh),
		actionCh: actionCh,
		browser:  browser,
		pipeline: pipeline,
		log:      log,
		tick:     cfg.TickInterval(),
		now:      time.Now,
	}

	if watcher, err := fsutil.NewWatcher(); err != nil {
		log.Warnf("directory watching disabled: %v", err)
	} else {
		app.watcher = watcher
	}
	app.syncWatcher()
	app.resize()
	return app, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.pipeline.Reset()
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	app.screen.Fini()
	return nil
}

// CurrentPath returns the directory on display, printed on exit.
func (app *Application) CurrentPath() string {
	return app.browser.Dir()
}

func (app *Application) syncWatcher() {
	if app.watcher == nil || app.browser.Dir() == app.watchedDir {
		return
	}
	if err := app.watcher.Watch(app.browser.Dir()); err != nil {
		app.log.Warnf("%v", err)
		return
	}
	app.watchedDir = app.browser.Dir()
}

func (app *Application) resize() {
	_, h := app.screen.Size()
	app.browser.SetHeight(renderui.ListHeight(app.browser.View(), h))
}

func (app *Application) render() {
	app.resize()
	app.renderer.Render(app.browser.View())
}
