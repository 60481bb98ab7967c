//go:build windows

package fs

import (
	"os"
	"strings"
	"syscall"
)

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// entryAttrs reads the Windows attributes once per entry. Protected
// junctions such as "Application Data" are skipped; they only lead to
// access-denied errors.
func entryAttrs(fullPath, name string) (hidden, skip bool) {
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return strings.HasPrefix(name, "."), false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&fileAttributeHidden != 0, attrs&protectedMask == protectedMask
}

func getFileAttributes(fullPath, name string) (uint32, error) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, os.ErrInvalid
	}

	ptr, err := syscall.UTF16PtrFromString(target)
	if err != nil {
		return 0, err
	}
	return syscall.GetFileAttributes(ptr)
}
