package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kk-code-lab/fbrowse/internal/config"
	fsutil "github.com/kk-code-lab/fbrowse/internal/fs"
	"github.com/kk-code-lab/fbrowse/internal/logger"
	"github.com/kk-code-lab/fbrowse/internal/search"
	"github.com/kk-code-lab/fbrowse/internal/selection"
	renderui "github.com/kk-code-lab/fbrowse/internal/ui/render"
)

const (
	folderDeletedMessage = "Folder was deleted"
	emptyFolderMessage   = "Empty folder"
	noResultsMessage     = "No matches"
)

// Browser is the screen-independent state of the shell: the directory on
// display, the cursor, the selection and the search results.
type Browser struct {
	dir        string
	entries    []fsutil.Entry
	listOpts   fsutil.ListOptions
	dirDeleted bool

	cursor int
	scroll int
	height int

	engine         *selection.Engine
	nothingMessage string
	keyRelease     time.Duration
	lastLetterAt   time.Time

	pipeline    *search.Pipeline
	showResults bool
	editing     bool
	query       string
	results     []search.Match

	status    string
	statusErr bool

	log *logger.Logger
}

// NewBrowser opens dir.
func NewBrowser(dir string, cfg *config.Config, pipeline *search.Pipeline, log *logger.Logger) (*Browser, error) {
	if log == nil {
		log = logger.Discard()
	}
	b := &Browser{
		listOpts:       fsutil.ListOptions{ShowHidden: cfg.Listing.ShowHidden},
		engine:         selection.NewEngine(),
		nothingMessage: cfg.UI.NothingSelected,
		keyRelease:     cfg.KeyReleaseTimeout(),
		pipeline:       pipeline,
		height:         1,
		log:            log,
	}
	if err := b.Load(dir); err != nil {
		return nil, err
	}
	return b, nil
}

// Dir returns the directory on display.
func (b *Browser) Dir() string {
	return b.dir
}

// Engine exposes the selection engine.
func (b *Browser) Engine() *selection.Engine {
	return b.engine
}

// Editing reports whether the search query is being typed.
func (b *Browser) Editing() bool {
	return b.editing
}

// SetHeight sets how many list rows are visible.
func (b *Browser) SetHeight(rows int) {
	if rows < 1 {
		rows = 1
	}
	b.height = rows
	b.scroll = renderui.ClampScroll(b.cursor, b.scroll, b.height, b.rowCount())
}

// Load displays dir. The selection is cleared and any search is closed.
func (b *Browser) Load(dir string) error {
	dir = fsutil.NormalizePath(dir)
	entries, err := fsutil.List(dir, b.listOpts)
	if err != nil {
		b.setError(err)
		return err
	}

	b.closeResults()
	b.dir = dir
	b.entries = entries
	b.dirDeleted = false
	b.cursor = 0
	b.scroll = 0
	b.engine.Clear()
	b.clearStatus()
	b.log.Debugf("loaded %s: %d entries", dir, len(entries))
	return nil
}

// Refresh re-reads the current directory, keeping the cursor on the same
// entry when it still exists and dropping vanished entries from the
// selection. A directory that disappeared switches to the deleted state.
func (b *Browser) Refresh() {
	if b.dir == "" {
		return
	}

	var cursorPath string
	if !b.showResults && b.cursor < len(b.entries) {
		cursorPath = b.entries[b.cursor].Path
	}

	entries, err := fsutil.List(b.dir, b.listOpts)
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		if !b.dirDeleted {
			b.log.Infof("current directory %s was deleted", b.dir)
		}
		b.dirDeleted = true
		b.entries = nil
	case err != nil:
		b.setError(err)
		return
	default:
		b.dirDeleted = false
		b.entries = entries
	}

	if removed := b.engine.PruneMissing(nil); len(removed) > 0 {
		b.log.Debugf("pruned %d missing entries from selection", len(removed))
	}

	if !b.showResults {
		b.cursor = 0
		for i, e := range b.entries {
			if e.Path == cursorPath {
				b.cursor = i
				break
			}
		}
	}
	b.clampCursor()
}

// ToggleHidden flips whether hidden entries are listed.
func (b *Browser) ToggleHidden() {
	b.listOpts.ShowHidden = !b.listOpts.ShowHidden
	b.Refresh()
	if b.listOpts.ShowHidden {
		b.setStatus("Showing hidden files")
	} else {
		b.setStatus("Hiding hidden files")
	}
}

// Listing returns the paths currently on display, in display order.
func (b *Browser) Listing() []string {
	if b.showResults {
		out := make([]string, len(b.results))
		for i, m := range b.results {
			out[i] = m.Path
		}
		return out
	}
	return fsutil.Paths(b.entries)
}

func (b *Browser) rowCount() int {
	if b.showResults {
		return len(b.results)
	}
	return len(b.entries)
}

// Move shifts the cursor. With extend the new row joins the selection as a
// range from the last selected row.
func (b *Browser) Move(delta int, extend bool) {
	if b.rowCount() == 0 {
		return
	}
	b.cursor += delta
	b.clampCursor()
	if extend {
		b.SelectAt(b.cursor, selection.ModifierState{Range: true})
	}
}

// MoveTo places the cursor on row idx.
func (b *Browser) MoveTo(idx int) {
	b.cursor = idx
	b.clampCursor()
}

// Page moves one screen up or down.
func (b *Browser) Page(direction int) {
	b.Move(direction*b.height, false)
}

func (b *Browser) clampCursor() {
	n := b.rowCount()
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	b.scroll = renderui.ClampScroll(b.cursor, b.scroll, b.height, n)
}

// SelectAt applies a click-style gesture with mods to row idx.
func (b *Browser) SelectAt(idx int, mods selection.ModifierState) {
	listing := b.Listing()
	if idx < 0 || idx >= len(listing) {
		return
	}
	b.cursor = idx
	b.clampCursor()
	b.engine.SetMode(selection.DeriveMode(mods))
	b.engine.Select(listing[idx], listing)
}

// SelectCursor applies a gesture to the row under the cursor.
func (b *Browser) SelectCursor(mods selection.ModifierState) {
	b.SelectAt(b.cursor, mods)
}

// ContextSelectAt prepares row idx for a context action.
func (b *Browser) ContextSelectAt(idx int) {
	listing := b.Listing()
	if idx < 0 || idx >= len(listing) {
		return
	}
	b.cursor = idx
	b.clampCursor()
	b.engine.ContextSelect(listing[idx])
}

// Jump handles an A-Z key press. While the same letter is held, repeats only
// extend the hold.
func (b *Browser) Jump(key rune, now time.Time) {
	if b.engine.KeyState() == selection.KeyHeld {
		if b.engine.HeldKey() == upperASCII(key) {
			b.lastLetterAt = now
			return
		}
		b.engine.ReleaseKey(b.engine.HeldKey())
	}

	if _, ok := b.engine.JumpToKey(b.Listing(), key); ok {
		b.lastLetterAt = now
		b.scrollToSelection()
	}
}

// Tick advances time-based state: it releases a held letter after the
// release timeout and collects search matches. It reports whether anything
// visible changed.
func (b *Browser) Tick(now time.Time) bool {
	changed := false

	if b.engine.KeyState() == selection.KeyHeld && now.Sub(b.lastLetterAt) >= b.keyRelease {
		b.engine.ReleaseKey(b.engine.HeldKey())
		changed = true
	}

	if b.showResults {
		if batch := b.pipeline.Drain(); len(batch) > 0 {
			b.results = append(b.results, batch...)
			b.clampCursor()
			changed = true
		}
		if b.pipeline.State() == search.Running {
			changed = true
		}
	}
	return changed
}

func (b *Browser) scrollToSelection() {
	target, ok := b.engine.ConsumeScroll()
	if !ok {
		return
	}
	for i, p := range b.Listing() {
		if p == target {
			b.cursor = i
			break
		}
	}
	b.clampCursor()
}

// Open acts on the cursor row: directories are entered, a file search result
// reveals the file in its directory. Files in a listing are left alone.
func (b *Browser) Open() {
	b.OpenAt(b.cursor)
}

// OpenAt acts on row idx like Open.
func (b *Browser) OpenAt(idx int) {
	if b.showResults {
		if idx < 0 || idx >= len(b.results) {
			return
		}
		m := b.results[idx]
		if m.IsDir {
			_ = b.Load(m.Path)
			return
		}
		if err := b.Load(filepath.Dir(m.Path)); err == nil {
			b.focus(m.Path)
		}
		return
	}

	if idx < 0 || idx >= len(b.entries) {
		return
	}
	if e := b.entries[idx]; e.IsDir {
		_ = b.Load(e.Path)
	}
}

// GoUp shows the parent directory with the cursor on the one just left.
func (b *Browser) GoUp() {
	if b.showResults {
		b.closeResults()
		return
	}
	parent := filepath.Dir(b.dir)
	if parent == b.dir {
		return
	}
	child := b.dir
	if err := b.Load(parent); err == nil {
		b.focus(child)
	}
}

func (b *Browser) focus(path string) {
	for i, e := range b.entries {
		if e.Path == path {
			b.cursor = i
			break
		}
	}
	b.clampCursor()
}

// Escape backs out one level: a running search is cancelled, then finished
// results are closed, then the selection is cleared.
func (b *Browser) Escape() {
	switch {
	case b.showResults && b.pipeline.State() == search.Running:
		b.pipeline.Cancel()
		b.setStatus("Search cancelled")
	case b.showResults:
		b.closeResults()
	default:
		b.engine.Clear()
		b.clearStatus()
	}
}

// StartQuery begins typing a search query.
func (b *Browser) StartQuery() {
	b.editing = true
	b.query = ""
}

// QueryChar appends r to the query.
func (b *Browser) QueryChar(r rune) {
	b.query += string(r)
}

// QueryBackspace removes the last rune of the query.
func (b *Browser) QueryBackspace() {
	runes := []rune(b.query)
	if len(runes) > 0 {
		b.query = string(runes[:len(runes)-1])
	}
}

// AbortQuery stops typing without searching.
func (b *Browser) AbortQuery() {
	b.editing = false
	if !b.showResults {
		b.query = ""
	}
}

// SubmitQuery starts a search for the typed query below the current
// directory, or on every volume when everywhere is set.
func (b *Browser) SubmitQuery(everywhere bool) {
	b.editing = false
	if b.query == "" {
		b.setStatus("Type a name to search for")
		return
	}

	roots := []string{b.dir}
	if everywhere || b.dirDeleted {
		roots = fsutil.SearchRoots()
	}

	b.results = nil
	b.showResults = true
	b.cursor = 0
	b.scroll = 0
	b.engine.Clear()
	b.pipeline.Start(search.NewRequest(b.query, roots...))
	b.clearStatus()
}

func (b *Browser) closeResults() {
	if b.pipeline != nil {
		b.pipeline.Reset()
	}
	b.showResults = false
	b.editing = false
	b.results = nil
	b.query = ""
	b.cursor = 0
	b.scroll = 0
}

func (b *Browser) setStatus(msg string) {
	b.status = msg
	b.statusErr = false
}

func (b *Browser) setError(err error) {
	b.status = err.Error()
	b.statusErr = true
	b.log.Warnf("%v", err)
}

func (b *Browser) clearStatus() {
	b.status = ""
	b.statusErr = false
}

// View projects the state onto a frame.
func (b *Browser) View() renderui.View {
	v := renderui.View{
		Title:        b.dir,
		QueryVisible: b.editing || b.showResults,
		Query:        b.query,
		Editing:      b.editing,
		Cursor:       b.cursor,
		Scroll:       b.scroll,
		Details:      b.details(),
		Status:       b.status,
		StatusError:  b.statusErr,
	}
	if v.Status == "" {
		v.Status = b.help()
	}

	if b.showResults {
		stats := b.pipeline.Stats()
		v.SearchState = fmt.Sprintf("%s, %d found", stats.State, len(b.results))
		v.Rows = make([]renderui.Row, len(b.results))
		for i, m := range b.results {
			v.Rows[i] = renderui.Row{
				Name:     m.Name,
				Detail:   filepath.Dir(m.Path),
				IsDir:    m.IsDir,
				Selected: b.engine.IsSelected(m.Path),
			}
		}
		if stats.State != search.Running {
			v.Empty = noResultsMessage
		}
		return v
	}

	v.Rows = make([]renderui.Row, len(b.entries))
	for i, e := range b.entries {
		row := renderui.Row{
			Name:      e.Name,
			IsDir:     e.IsDir,
			IsSymlink: e.IsSymlink,
			Selected:  b.engine.IsSelected(e.Path),
		}
		if !e.IsDir {
			row.Detail = fsutil.HumanSize(e.Size)
		}
		v.Rows[i] = row
	}
	v.Empty = emptyFolderMessage
	if b.dirDeleted {
		v.Empty = folderDeletedMessage
	}
	return v
}

// details describes the selection: the empty message, the single path, or a
// count with the total size of the selected files.
func (b *Browser) details() string {
	result, err := b.engine.Selection(b.nothingMessage)
	if err != nil {
		var empty *selection.EmptySelectionError
		if errors.As(err, &empty) {
			return empty.Message
		}
		return err.Error()
	}

	if result.Kind == selection.ResultSingle {
		return result.Path()
	}

	var total int64
	for _, p := range result.Paths {
		total += b.sizeOf(p)
	}
	return fmt.Sprintf("%d selected, %s", len(result.Paths), fsutil.HumanSize(total))
}

func (b *Browser) sizeOf(path string) int64 {
	for _, e := range b.entries {
		if e.Path == path {
			if e.IsDir {
				return 0
			}
			return e.Size
		}
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0
	}
	return info.Size()
}

func (b *Browser) help() string {
	switch {
	case b.editing:
		return "Enter search here | Ctrl-E search everywhere | Esc cancel"
	case b.showResults:
		return "Enter open | Space toggle | Esc back"
	default:
		return "A-Z jump | Space toggle | Shift+arrows range | / search | . hidden | Ctrl-Q quit"
	}
}

func upperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
