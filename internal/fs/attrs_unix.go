//go:build !windows

package fs

import "strings"

// entryAttrs reports whether name is a dot file. Nothing is skipped outside
// Windows.
func entryAttrs(_ string, name string) (hidden, skip bool) {
	return strings.HasPrefix(name, "."), false
}
