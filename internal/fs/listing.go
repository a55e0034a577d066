package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotFound is returned by List when the directory does not exist (anymore).
var ErrNotFound = errors.New("directory not found")

// ListOptions controls which entries List returns.
type ListOptions struct {
	ShowHidden bool
}

// List reads dir and returns its entries with directories first and names in
// lexicographic order within each group. Symlinks to directories sort as
// directories. Entries that vanish while being read are skipped.
func List(dir string, opts ListOptions) ([]Entry, error) {
	dir = NormalizePath(dir)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cannot read directory %s: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}

		fullPath := filepath.Join(dir, de.Name())
		if ShouldHideFromListing(fullPath, de.Name()) {
			continue
		}
		if !opts.ShowHidden && IsHidden(fullPath, de.Name()) {
			continue
		}

		isDir := de.IsDir()
		isSymlink := info.Mode()&os.ModeSymlink != 0
		if isSymlink {
			if target, err := os.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}

		entries = append(entries, Entry{
			Name:      BaseName(fullPath),
			Path:      NormalizePath(fullPath),
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Mode:      info.Mode(),
		})
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries orders entries the way List does.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
}

// Paths projects entries onto their paths, preserving order.
func Paths(entries []Entry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

// Exists reports whether path still resolves to a filesystem object.
// Dangling symlinks count as missing.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
