//go:build windows

package fs

import "golang.org/x/sys/windows"

// IsHidden reports whether the hidden attribute is set, falling back to the
// dot-file convention when the attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
