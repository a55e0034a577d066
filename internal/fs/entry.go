package fs

import (
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	Path      string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Path, e.Name)
}

// NormalizePath returns the identity form of a path: cleaned and NFC-composed,
// so the same file reached through differently composed names compares equal.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	return norm.NFC.String(filepath.Clean(path))
}

// BaseName returns the normalized final element of path.
func BaseName(path string) string {
	return norm.NFC.String(filepath.Base(path))
}
