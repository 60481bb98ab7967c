package fs

import (
	"os"
	"path/filepath"
	"time"
)

// UpName is the display name of the synthetic parent-directory entry.
const UpName = ".."

// Entry represents a single file or directory on disk. Entries are snapshots:
// they are built once per listing refresh and never mutated afterwards.
type Entry struct {
	Name          string
	FullPath      string
	IsDir         bool
	IsSymlink     bool
	SymlinkTarget string
	Size          int64
	Modified      time.Time
	Created       time.Time
	Mode          os.FileMode
	Hidden        bool
	// HasMetadata is false for synthetic entries that were never stat'ed.
	HasMetadata bool
}

// UpEntry returns the synthetic ".." entry for the directory at dirPath.
func UpEntry(dirPath string) Entry {
	return Entry{
		Name:     UpName,
		FullPath: ParentDir(dirPath),
		IsDir:    true,
	}
}

// IsUp reports whether the entry is the synthetic parent-directory entry.
func (e Entry) IsUp() bool {
	return !e.HasMetadata && e.Name == UpName
}

// DiskName returns the name as stored on disk. Name is NFC-normalised for
// display and matching; paths must be built from DiskName.
func (e Entry) DiskName() string {
	if e.IsUp() || e.FullPath == "" {
		return e.Name
	}
	return filepath.Base(e.FullPath)
}

// IsHidden reports whether the entry is a dot file or, on Windows, carries
// the hidden attribute.
func (e Entry) IsHidden() bool {
	return e.Hidden && !e.IsUp()
}
