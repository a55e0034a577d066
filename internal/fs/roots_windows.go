//go:build windows

package fs

import "golang.org/x/sys/windows"

// SearchRoots returns one root per mounted drive letter.
func SearchRoots() []string {
	mask, err := windows.GetLogicalDrives()
	if err != nil || mask == 0 {
		return []string{`C:\`}
	}
	roots := make([]string, 0, 4)
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) != 0 {
			roots = append(roots, string(rune('A'+i))+`:\`)
		}
	}
	return roots
}
