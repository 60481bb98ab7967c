package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SortMode selects how entries within the folder and file groups are ordered.
type SortMode int

const (
	SortByName SortMode = iota
	SortByCreated
	SortByModified
)

func (m SortMode) String() string {
	switch m {
	case SortByCreated:
		return "created"
	case SortByModified:
		return "modified"
	default:
		return "name"
	}
}

// ParseSortMode parses the textual form produced by SortMode.String.
func ParseSortMode(value string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "name":
		return SortByName, nil
	case "created":
		return SortByCreated, nil
	case "modified":
		return SortByModified, nil
	}
	return SortByName, fmt.Errorf("unknown sort mode %q (want name, created or modified)", value)
}

// ListOptions controls how a directory listing is built.
type ListOptions struct {
	FoldersOnly bool
	Sort        SortMode
}

// ReadDir reads the entries of dirPath. Names are NFC-normalised, symlinks are
// followed to decide whether they point at a directory, and entries whose
// metadata cannot be read are skipped.
func ReadDir(dirPath string) ([]Entry, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dirPath, err)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}

		rawName := e.Name()
		fullPath := filepath.Join(dirPath, rawName)
		hidden, skip := entryAttrs(fullPath, rawName)
		if skip {
			continue
		}

		isDir := e.IsDir()
		isSymlink := info.Mode()&os.ModeSymlink != 0
		target := ""
		if isSymlink {
			if targetInfo, err := os.Stat(fullPath); err == nil {
				isDir = targetInfo.IsDir()
			}
			if link, err := os.Readlink(fullPath); err == nil {
				target = link
			}
		}

		out = append(out, Entry{
			Name:          norm.NFC.String(rawName),
			FullPath:      fullPath,
			IsDir:         isDir,
			IsSymlink:     isSymlink,
			SymlinkTarget: target,
			Size:          info.Size(),
			Modified:      info.ModTime(),
			Created:       createdTime(info),
			Mode:          info.Mode(),
			Hidden:        hidden,
			HasMetadata:   true,
		})
	}
	return out, nil
}

// ReadListing builds the full listing for dirPath: entries are filtered per
// opts, sorted with folders first, and the synthetic ".." entry is prepended.
func ReadListing(dirPath string, opts ListOptions) ([]Entry, error) {
	entries, err := ReadDir(dirPath)
	if err != nil {
		return nil, err
	}
	return BuildListing(dirPath, entries, opts), nil
}

// BuildListing applies visibility filtering and sorting to already-read
// entries and prepends the ".." entry.
func BuildListing(dirPath string, entries []Entry, opts ListOptions) []Entry {
	listing := make([]Entry, 0, len(entries)+1)
	listing = append(listing, UpEntry(dirPath))

	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if opts.FoldersOnly && !e.IsDir {
			continue
		}
		kept = append(kept, e)
	}
	SortEntries(kept, opts.Sort)

	return append(listing, kept...)
}

// SortEntries orders folders before files, and within each group by name
// (case-insensitively) or by timestamp, newest first.
func SortEntries(entries []Entry, mode SortMode) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		switch mode {
		case SortByCreated:
			if !a.Created.Equal(b.Created) {
				return a.Created.After(b.Created)
			}
		case SortByModified:
			if !a.Modified.Equal(b.Modified) {
				return a.Modified.After(b.Modified)
			}
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

// ProbeDir checks that dirPath can be listed without reading all of it.
func ProbeDir(dirPath string) error {
	f, err := os.Open(dirPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
