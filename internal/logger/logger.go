// Package logger provides the leveled logger shared by the shell, the CLI and
// the search pipeline.
//
// Lines look like "[15:04:05] [WARN] message". When the destination is a
// terminal the level tag is colored. The interactive shell owns the terminal,
// so it logs to a file instead; CLI commands log to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// Logger writes leveled, timestamped lines to an io.Writer. It is safe for
// concurrent use; search workers log through the same instance.
type Logger struct {
	writer   io.Writer
	level    string
	minLevel int
	color    bool
	mu       sync.Mutex
	now      func() time.Time
}

// New creates a Logger writing to w. A nil writer discards everything.
// Unknown or empty levels fall back to "info".
func New(w io.Writer, level string) *Logger {
	normalized := NormalizeLevel(level)
	return &Logger{
		writer:   w,
		level:    normalized,
		minLevel: levelToInt(normalized),
		color:    isTerminal(w),
		now:      time.Now,
	}
}

// Discard returns a Logger that drops all output.
func Discard() *Logger {
	return New(nil, "error")
}

// OpenFile appends to the log file at path, creating parent directories.
// The returned closer must be closed by the caller.
func OpenFile(path, level string) (*Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return New(f, level), f, nil
}

// DefaultFilePath is where the interactive shell logs when no file is configured.
func DefaultFilePath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "fbrowse", "fbrowse.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "fbrowse", "fbrowse.log")
	}
	return filepath.Join(os.TempDir(), "fbrowse.log")
}

// NormalizeLevel lower-cases level and maps invalid values to "info".
func NormalizeLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// Level returns the configured minimum level.
func (l *Logger) Level() string {
	if l == nil {
		return "info"
	}
	return l.level
}

func (l *Logger) Tracef(format string, args ...any) { l.logf(levelTrace, "TRACE", format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logf(levelDebug, "DEBUG", format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(levelInfo, "INFO", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(levelWarn, "WARN", format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(levelError, "ERROR", format, args...) }

func (l *Logger) logf(level int, tag, format string, args ...any) {
	if l == nil || l.writer == nil || level < l.minLevel {
		return
	}

	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now().Format("15:04:05")
	if l.color {
		tag = colorize(tag)
	}
	_, _ = fmt.Fprintf(l.writer, "[%s] [%s] %s\n", ts, tag, msg)
}

func colorize(tag string) string {
	switch tag {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(tag)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(tag)
	case "INFO":
		return color.New(color.FgBlue).Sprint(tag)
	case "WARN":
		return color.New(color.FgYellow).Sprint(tag)
	case "ERROR":
		return color.New(color.FgRed).Sprint(tag)
	default:
		return tag
	}
}

func levelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// isTerminal reports whether w is a TTY that should get colored output.
// color.NoColor already honors NO_COLOR.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
