//go:build !darwin && !freebsd && !netbsd && !windows

package fs

import (
	"os"
	"time"
)

// createdTime falls back to the modification time where the platform's stat
// result carries no birth time.
func createdTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
