package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	fsutil "github.com/kk-code-lab/fbrowse/internal/fs"
	"github.com/kk-code-lab/fbrowse/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	}
}

// execute runs the root command with an isolated config file.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "none.yaml")
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommandHelp(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "fbrowse")
	assert.Contains(t, out, "search")
	assert.Contains(t, out, "roots")
}

func TestSearchCommandPrintsMatches(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a/b/Report-2024.pdf", "a/notes.txt", "report.md")

	out, errOut, err := execute(t, "search", "REPORT", root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.ElementsMatch(t, []string{
		fsutil.NormalizePath(filepath.Join(root, "a", "b", "Report-2024.pdf")),
		fsutil.NormalizePath(filepath.Join(root, "report.md")),
	}, lines)
	assert.Contains(t, errOut, "2 matches")
}

func TestSearchCommandLimit(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "m1", "m2", "m3", "m4", "m5")

	out, _, err := execute(t, "search", "m", "--limit", "2", root)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestSearchCommandRequiresQuery(t *testing.T) {
	_, _, err := execute(t, "search")
	assert.Error(t, err)
}

func TestRunSearchStopsOnCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "x1", "x2")

	p, err := search.New(search.Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	count, stats := runSearch(ctx, p, search.NewRequest("x", root), 0, func(search.Match) {})

	assert.LessOrEqual(t, count, 2)
	assert.NotEqual(t, search.Running, stats.State)
}

func TestListCommand(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "zeta.txt", "alpha/inner", ".hidden")

	out, _, err := execute(t, "ls", root)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "alpha"+string(os.PathSeparator)))
	assert.True(t, strings.HasSuffix(lines[1], "zeta.txt"))
	assert.Contains(t, lines[1], "4 B")

	out, _, err = execute(t, "ls", "--all", root)
	require.NoError(t, err)
	assert.Contains(t, out, ".hidden")
}

func TestListCommandMissingDirectory(t *testing.T) {
	_, _, err := execute(t, "ls", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestRootsCommand(t *testing.T) {
	out, _, err := execute(t, "roots")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestInvalidConfigIsReported(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("search:\n  buffer: 0\n"), 0o600))

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "ls", t.TempDir()})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.buffer")
}

func TestFormatNameHighlightsOnlyWithColor(t *testing.T) {
	mp := newMatchPrinter(&bytes.Buffer{}, "port")
	assert.Equal(t, "Report.pdf", mp.formatName(search.Match{Name: "Report.pdf"}))
}
