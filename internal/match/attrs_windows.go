//go:build windows

package match

import "golang.org/x/sys/windows"

// platformAttrs reads the real Windows file-attribute bits for path via
// GetFileAttributes, the same API family clinkgo's console hooks call
// directly elsewhere rather than going through a cgo shim.
func platformAttrs(path string) Attr {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return 0
	}
	var a Attr
	if attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0 {
		a |= AttrHidden
	}
	if attrs&windows.FILE_ATTRIBUTE_SYSTEM != 0 {
		a |= AttrSystem
	}
	if attrs&windows.FILE_ATTRIBUTE_READONLY != 0 {
		a |= AttrReadonly
	}
	if attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
		a |= AttrLink
	}
	return a
}
