//go:build windows

package fs

import "golang.org/x/sys/windows"

// ShouldHideFromListing drops system reparse points such as the legacy
// "Documents and Settings" junctions; they are never shown, not even with
// hidden entries enabled.
func ShouldHideFromListing(fullPath, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const protected = windows.FILE_ATTRIBUTE_SYSTEM | windows.FILE_ATTRIBUTE_REPARSE_POINT
	return attrs&protected == protected
}
