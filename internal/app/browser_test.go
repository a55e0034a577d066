package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kk-code-lab/fbrowse/internal/config"
	fsutil "github.com/kk-code-lab/fbrowse/internal/fs"
	"github.com/kk-code-lab/fbrowse/internal/search"
	"github.com/kk-code-lab/fbrowse/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
}

func newTestBrowser(t *testing.T, dir string) *Browser {
	t.Helper()
	cfg := config.Default()
	pipeline, err := search.New(cfg.SearchOptions(nil))
	require.NoError(t, err)
	t.Cleanup(pipeline.Reset)

	b, err := NewBrowser(dir, cfg, pipeline, nil)
	require.NoError(t, err)
	b.SetHeight(20)
	return b
}

func p(root string, parts ...string) string {
	return fsutil.NormalizePath(filepath.Join(append([]string{root}, parts...)...))
}

func TestNewBrowserMissingDirectory(t *testing.T) {
	cfg := config.Default()
	pipeline, err := search.New(cfg.SearchOptions(nil))
	require.NoError(t, err)

	_, err = NewBrowser(filepath.Join(t.TempDir(), "nope"), cfg, pipeline, nil)
	assert.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestBrowserListsDirectoriesFirst(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"b.txt": "", "a.txt": "", "zdir/x": ""})
	b := newTestBrowser(t, root)

	assert.Equal(t, []string{p(root, "zdir"), p(root, "a.txt"), p(root, "b.txt")}, b.Listing())
}

func TestBrowserClickGestures(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "12", "b.txt": "345", "c.txt": "6789"})
	b := newTestBrowser(t, root)

	assert.Equal(t, "Nothing selected", b.details())

	b.SelectAt(0, selection.ModifierState{})
	assert.Equal(t, p(root, "a.txt"), b.details())

	b.SelectAt(2, selection.ModifierState{Multi: true})
	assert.Equal(t, []string{p(root, "a.txt"), p(root, "c.txt")}, b.Engine().Paths())
	assert.Equal(t, "2 selected, 6 B", b.details())

	b.SelectAt(1, selection.ModifierState{})
	assert.Equal(t, []string{p(root, "b.txt")}, b.Engine().Paths())

	// a plain click on the only selected entry clears it
	b.SelectAt(1, selection.ModifierState{})
	assert.Zero(t, b.Engine().Len())
}

func TestBrowserShiftMoveExtendsRange(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a": "", "b": "", "c": "", "d": ""})
	b := newTestBrowser(t, root)

	b.SelectAt(1, selection.ModifierState{})
	b.Move(1, true)
	b.Move(1, true)

	assert.Equal(t, []string{p(root, "b"), p(root, "c"), p(root, "d")}, b.Engine().Paths())
	assert.Equal(t, 3, b.cursor)
}

func TestBrowserContextSelect(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a": "", "b": "", "c": ""})
	b := newTestBrowser(t, root)

	b.SelectAt(0, selection.ModifierState{})
	b.SelectAt(1, selection.ModifierState{Multi: true})

	b.ContextSelectAt(1)
	assert.Equal(t, 2, b.Engine().Len(), "context on a selected row keeps the selection")

	b.ContextSelectAt(2)
	assert.Equal(t, []string{p(root, "c")}, b.Engine().Paths())
}

func TestBrowserJumpHoldsUntilRelease(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"apple": "", "avocado": "", "banana": ""})
	b := newTestBrowser(t, root)
	t0 := time.Unix(1000, 0)

	b.Jump('a', t0)
	assert.Equal(t, []string{p(root, "apple")}, b.Engine().Paths())
	assert.Equal(t, 0, b.cursor)

	// key repeat while held does not advance
	b.Jump('a', t0.Add(100*time.Millisecond))
	assert.Equal(t, []string{p(root, "apple")}, b.Engine().Paths())

	assert.False(t, b.Tick(t0.Add(200*time.Millisecond)))
	assert.Equal(t, selection.KeyHeld, b.Engine().KeyState())

	assert.True(t, b.Tick(t0.Add(100*time.Millisecond+b.keyRelease)))
	assert.Equal(t, selection.KeyIdle, b.Engine().KeyState())

	b.Jump('A', t0.Add(2*time.Second))
	assert.Equal(t, []string{p(root, "avocado")}, b.Engine().Paths())
	assert.Equal(t, 1, b.cursor)
}

func TestBrowserJumpOtherLetterReleasesHeldKey(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"apple": "", "banana": ""})
	b := newTestBrowser(t, root)
	t0 := time.Unix(1000, 0)

	b.Jump('a', t0)
	b.Jump('b', t0.Add(10*time.Millisecond))

	assert.Equal(t, []string{p(root, "banana")}, b.Engine().Paths())
	assert.Equal(t, 1, b.cursor)
}

func TestBrowserOpenDirectoryClearsSelection(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"docs/readme.md": "", "a.txt": ""})
	b := newTestBrowser(t, root)

	b.SelectAt(1, selection.ModifierState{})
	b.OpenAt(0)

	assert.Equal(t, p(root, "docs"), b.Dir())
	assert.Zero(t, b.Engine().Len())

	b.OpenAt(0) // a file: nothing happens
	assert.Equal(t, p(root, "docs"), b.Dir())

	b.GoUp()
	assert.Equal(t, fsutil.NormalizePath(root), b.Dir())
	assert.Equal(t, 0, b.cursor, "cursor lands on the directory just left")
}

func TestBrowserRefreshPrunesSelection(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a": "", "b": ""})
	b := newTestBrowser(t, root)

	b.SelectAt(0, selection.ModifierState{Multi: true})
	b.SelectAt(1, selection.ModifierState{Multi: true})
	require.NoError(t, os.Remove(filepath.Join(root, "a")))

	b.Refresh()

	assert.Equal(t, []string{p(root, "b")}, b.Engine().Paths())
	assert.Equal(t, []string{p(root, "b")}, b.Listing())
}

func TestBrowserRefreshDeletedFolder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"gone/file": ""})
	b := newTestBrowser(t, filepath.Join(root, "gone"))
	b.SelectAt(0, selection.ModifierState{})

	require.NoError(t, os.RemoveAll(filepath.Join(root, "gone")))
	b.Refresh()

	v := b.View()
	assert.Empty(t, v.Rows)
	assert.Equal(t, folderDeletedMessage, v.Empty)
	assert.Zero(t, b.Engine().Len())
}

func TestBrowserToggleHidden(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{".secret": "", "plain": ""})
	b := newTestBrowser(t, root)
	visible := len(b.Listing())

	b.ToggleHidden()
	assert.Greater(t, len(b.Listing()), visible)
	b.ToggleHidden()
	assert.Len(t, b.Listing(), visible)
}

func TestBrowserSearchAndReveal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/deep/Widget.go": "",
		"src/other.go":       "",
		"widget-notes.txt":   "",
	})
	b := newTestBrowser(t, root)

	b.StartQuery()
	for _, r := range "widgex" {
		b.QueryChar(r)
	}
	b.QueryBackspace()
	b.QueryChar('t')
	require.True(t, b.Editing())
	b.SubmitQuery(false)
	require.False(t, b.Editing())

	require.Eventually(t, func() bool {
		b.Tick(time.Now())
		return b.pipeline.State() == search.Completed && len(b.results) == 2
	}, 5*time.Second, 10*time.Millisecond)

	v := b.View()
	assert.True(t, v.QueryVisible)
	assert.Equal(t, "widget", v.Query)
	assert.Contains(t, v.SearchState, "completed")

	var idx int
	for i, m := range b.results {
		if m.Name == "Widget.go" {
			idx = i
		}
	}
	b.OpenAt(idx)
	assert.Equal(t, p(root, "src", "deep"), b.Dir())
	assert.Equal(t, p(root, "src", "deep", "Widget.go"), b.Listing()[b.cursor])
	assert.False(t, b.View().QueryVisible)
}

func TestBrowserEscapeOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"hit.txt": ""})
	b := newTestBrowser(t, root)

	b.StartQuery()
	b.QueryChar('h')
	b.SubmitQuery(false)
	require.Eventually(t, func() bool {
		b.Tick(time.Now())
		return b.pipeline.State() == search.Completed
	}, 5*time.Second, 10*time.Millisecond)

	b.SelectAt(0, selection.ModifierState{})
	b.Escape()
	assert.False(t, b.showResults)
	assert.Equal(t, search.Idle, b.pipeline.State())

	b.SelectAt(0, selection.ModifierState{})
	b.Escape()
	assert.Zero(t, b.Engine().Len())
}

func TestBrowserEmptyQueryDoesNotSearch(t *testing.T) {
	b := newTestBrowser(t, t.TempDir())
	b.StartQuery()
	b.SubmitQuery(false)

	assert.False(t, b.showResults)
	assert.Equal(t, search.Idle, b.pipeline.State())
	assert.NotEmpty(t, b.status)
}
