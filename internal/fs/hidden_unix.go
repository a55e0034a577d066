//go:build !windows

package fs

// IsHidden reports dot-files as hidden on Unix-like systems.
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}
