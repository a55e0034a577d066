package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kk-code-lab/fbrowse/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 550*time.Millisecond, cfg.KeyReleaseTimeout())
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
search:
  workers: 3
  exclude: ["target"]
ui:
  nothing_selected: "Pick something"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Search.Workers)
	assert.Equal(t, []string{"target"}, cfg.Search.Exclude)
	assert.Equal(t, "Pick something", cfg.UI.NothingSelected)
	// untouched keys keep their defaults
	assert.Equal(t, 1024, cfg.Search.Buffer)
	assert.Equal(t, 50, cfg.UI.TickMS)
}

func TestLoadExplicitEmptyListWins(t *testing.T) {
	cfg, err := Load(writeConfig(t, "search:\n  exclude: []\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Search.Exclude)
}

func TestLoadNormalizesLogLevel(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log:\n  level: LOUD\n"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "search: [unclosed\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"negative workers", "search:\n  workers: -1\n", "search.workers"},
		{"zero buffer", "search:\n  buffer: 0\n", "search.buffer"},
		{"zero drain limit", "search:\n  drain_limit: 0\n", "search.drain_limit"},
		{"zero key release", "selection:\n  key_release_ms: 0\n", "selection.key_release_ms"},
		{"zero tick", "ui:\n  tick_ms: 0\n", "ui.tick_ms"},
		{"empty message", "ui:\n  nothing_selected: \"\"\n", "ui.nothing_selected"},
		{"empty pattern", "search:\n  exclude: [\"\"]\n", "search.exclude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestSearchOptionsCopiesExclude(t *testing.T) {
	cfg := Default()
	opts := cfg.SearchOptions(logger.Discard())
	opts.Exclude[0] = "changed"

	assert.Equal(t, ".git", cfg.Search.Exclude[0])
	assert.Equal(t, cfg.Search.Buffer, opts.Buffer)
	assert.Equal(t, cfg.Search.DrainLimit, opts.DrainLimit)
	assert.NotNil(t, opts.Logger)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(AppDir, FileName), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
