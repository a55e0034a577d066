//go:build windows

package fs

import (
	"os"

	"golang.org/x/sys/windows"
)

// fileAttributes reads the Windows attribute bits of fullPath, retrying with
// the bare name when the full path cannot be resolved.
func fileAttributes(fullPath, name string) (uint32, error) {
	var lastErr error = os.ErrInvalid
	for _, target := range []string{fullPath, name} {
		if target == "" {
			continue
		}
		ptr, err := windows.UTF16PtrFromString(target)
		if err != nil {
			return 0, err
		}
		attrs, err := windows.GetFileAttributes(ptr)
		if err == nil {
			return attrs, nil
		}
		if !os.IsNotExist(err) {
			return 0, err
		}
		lastErr = err
	}
	return 0, lastErr
}
