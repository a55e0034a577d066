package selection

import (
	"sort"

	fsutil "github.com/kk-code-lab/fbrowse/internal/fs"
)

// ResultKind tells single from multiple selection results.
type ResultKind int

const (
	ResultSingle ResultKind = iota
	ResultMultiple
)

// Result is a value copy of the selection at the time Selection was called.
type Result struct {
	Kind  ResultKind
	Paths []string
}

// Path returns the selected entry of a single result.
func (r Result) Path() string {
	if len(r.Paths) == 0 {
		return ""
	}
	return r.Paths[0]
}

// Engine owns the selected set, the active mode and the key-jump state.
// It is not safe for concurrent use; the shell calls it from its loop only.
type Engine struct {
	selected map[string]struct{}
	mode     Mode
	keys     KeySelect
}

// NewEngine returns an engine with nothing selected in Single mode.
func NewEngine() *Engine {
	return &Engine{
		selected: make(map[string]struct{}),
		mode:     Single,
	}
}

// Mode returns the active selection mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// SetMode applies the mode derived from this tick's modifiers.
func (e *Engine) SetMode(mode Mode) {
	e.mode = mode
}

// Len returns the number of selected entries.
func (e *Engine) Len() int {
	return len(e.selected)
}

// IsSelected reports whether entry is in the selected set.
func (e *Engine) IsSelected(entry string) bool {
	_, ok := e.selected[fsutil.NormalizePath(entry)]
	return ok
}

// Select applies a click on entry according to the active mode. listing is
// the ordered set of candidates on display and is only consulted in Ranged mode.
func (e *Engine) Select(entry string, listing []string) {
	entry = fsutil.NormalizePath(entry)
	if entry == "" {
		return
	}

	switch e.mode {
	case Single:
		_, already := e.selected[entry]
		if already && len(e.selected) == 1 {
			e.clearSet()
			return
		}
		e.clearSet()
		e.selected[entry] = struct{}{}

	case Multiple:
		if _, ok := e.selected[entry]; ok {
			delete(e.selected, entry)
			return
		}
		e.selected[entry] = struct{}{}

	case Ranged:
		e.selectRange(entry, listing)
	}
}

// selectRange adds listing[min(anchor,target)..max(anchor,target)] to the set.
// The anchor is positional: the highest listing index that is currently
// selected, or 0 when none is.
func (e *Engine) selectRange(entry string, listing []string) {
	if len(listing) == 0 {
		return
	}

	normalized := make([]string, len(listing))
	target := -1
	for i, p := range listing {
		normalized[i] = fsutil.NormalizePath(p)
		if normalized[i] == entry {
			target = i
		}
	}
	if target < 0 {
		return
	}

	anchor := e.lastSelectedIndex(normalized)
	if anchor < 0 {
		anchor = 0
	}

	lo, hi := anchor, target
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		e.selected[normalized[i]] = struct{}{}
	}
}

// lastSelectedIndex scans listing from the end for a selected entry.
// listing must already be normalized.
func (e *Engine) lastSelectedIndex(listing []string) int {
	for i := len(listing) - 1; i >= 0; i-- {
		if _, ok := e.selected[listing[i]]; ok {
			return i
		}
	}
	return -1
}

// SelectByKey collapses the selection to entry regardless of mode and marks
// key as held so the jump is not repeated until the key is released.
func (e *Engine) SelectByKey(entry string, key rune) {
	entry = fsutil.NormalizePath(entry)
	if entry == "" {
		return
	}
	e.Clear()
	e.selected[entry] = struct{}{}
	e.keys.press(normalizeLetter(key), entry)
}

// ContextSelect prepares the selection for a context action on entry: an
// unselected entry replaces the selection, a selected one keeps it intact.
func (e *Engine) ContextSelect(entry string) {
	entry = fsutil.NormalizePath(entry)
	if entry == "" {
		return
	}
	if _, ok := e.selected[entry]; ok {
		return
	}
	e.Clear()
	e.selected[entry] = struct{}{}
}

// Deselect removes entry if it is selected.
func (e *Engine) Deselect(entry string) {
	delete(e.selected, fsutil.NormalizePath(entry))
}

// Clear empties the selection and returns to Single mode.
func (e *Engine) Clear() {
	e.clearSet()
	e.mode = Single
}

func (e *Engine) clearSet() {
	for k := range e.selected {
		delete(e.selected, k)
	}
}

// Selection returns a copy of the selection. An empty selection yields an
// *EmptySelectionError carrying emptyMessage.
func (e *Engine) Selection(emptyMessage string) (Result, error) {
	if len(e.selected) == 0 {
		return Result{}, &EmptySelectionError{Message: emptyMessage}
	}

	paths := e.Paths()
	if e.mode == Single {
		return Result{Kind: ResultSingle, Paths: paths[:1]}, nil
	}
	return Result{Kind: ResultMultiple, Paths: paths}, nil
}

// Paths returns the selected entries sorted by path.
func (e *Engine) Paths() []string {
	paths := make([]string, 0, len(e.selected))
	for p := range e.selected {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// PruneMissing drops every selected entry for which exists reports false and
// returns the dropped paths in sorted order.
func (e *Engine) PruneMissing(exists func(string) bool) []string {
	if exists == nil {
		exists = fsutil.Exists
	}

	var removed []string
	for p := range e.selected {
		if !exists(p) {
			removed = append(removed, p)
		}
	}
	for _, p := range removed {
		delete(e.selected, p)
	}
	sort.Strings(removed)
	return removed
}
