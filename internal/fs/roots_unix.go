//go:build !windows

package fs

// SearchRoots returns the starting points for a whole-machine search.
func SearchRoots() []string {
	return []string{"/"}
}
