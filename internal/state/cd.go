package state

import (
	"errors"
	"fmt"
	"io/fs"

	fsutil "github.com/kk-code-lab/rcd/internal/fs"
)

// Overridable in tests.
var (
	probeDirFn    = fsutil.ProbeDir
	readListingFn = fsutil.ReadListing
)

// MovedUpwards reports that the requested directory could not be entered and
// one of its ancestors was entered instead.
type MovedUpwards struct {
	TargetAbsPath string
	RootError     error
}

// CdResult describes how a directory change went. A nil MovedUpwards means
// the requested directory was entered.
type CdResult struct {
	MovedUpwards *MovedUpwards
}

func recoverableCdError(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}

// FindValidCdTarget resolves target against the current logical path and
// climbs towards the root until a listable directory is found. Missing and
// unreadable directories are skipped; any other error is returned as is.
func (s *AppState) FindValidCdTarget(target string) (string, CdResult, error) {
	candidate := fsutil.ResolveLogical(s.CurrentPath, target)
	original := candidate

	var firstErr error
	for {
		err := probeDirFn(candidate)
		if err == nil {
			break
		}
		if !recoverableCdError(err) {
			return "", CdResult{}, err
		}
		if firstErr == nil {
			firstErr = err
		}
		if fsutil.IsRoot(candidate) {
			return "", CdResult{}, fmt.Errorf("cannot enter %s: %w", candidate, err)
		}
		candidate = fsutil.ParentDir(candidate)
	}

	if firstErr == nil {
		return candidate, CdResult{}, nil
	}
	return candidate, CdResult{MovedUpwards: &MovedUpwards{TargetAbsPath: original, RootError: firstErr}}, nil
}

// ChangeDir enters path, resolved against the current logical path. An empty
// path means the entry under the cursor; a file under the cursor is ignored.
// On success the search is cleared, the listing reloaded and the cursor put
// on the child that was last visited from the new directory, or on the first
// entry after "..".
func (s *AppState) ChangeDir(path string) (CdResult, error) {
	if path == "" {
		entry, ok := s.ItemUnderCursor()
		if !ok || !entry.IsDir {
			return CdResult{}, nil
		}
		path = entry.DiskName()
	}

	target, res, err := s.FindValidCdTarget(path)
	if err != nil {
		return CdResult{}, err
	}
	entries, err := readListingFn(target, s.Settings.ListOptions())
	if err != nil {
		return CdResult{}, err
	}

	if res.MovedUpwards != nil && errors.Is(res.MovedUpwards.RootError, fs.ErrNotExist) {
		s.History.Remove(res.MovedUpwards.TargetAbsPath)
	}

	s.CurrentPath = target
	s.SearchString = ""
	s.PendingAutoCd = false
	s.Listing = Listing{Entries: entries}
	s.CursorPos, s.ScrollPos = 0, 0
	s.History.ChangeDir(target)

	s.MoveCursor(1, false)
	if label, ok := s.History.LastVisitedChildLabel(); ok {
		s.MoveCursorToFilename(label)
	}

	s.InfoMessage = ""
	if up := res.MovedUpwards; up != nil {
		s.InfoMessage = fmt.Sprintf("Could not enter %s (%s), moved up to %s", up.TargetAbsPath, describeCdError(up.RootError), target)
	}
	return res, nil
}

func describeCdError(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "not found"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	}
	return err.Error()
}

// RefreshListing re-reads the current directory. The cursor stays on the
// same name when it still exists and the active search is re-applied.
func (s *AppState) RefreshListing() (CdResult, error) {
	entries, err := readListingFn(s.CurrentPath, s.Settings.ListOptions())
	if err != nil {
		if recoverableCdError(err) {
			return s.ChangeDir(s.CurrentPath)
		}
		return CdResult{}, err
	}

	name := ""
	if entry, ok := s.ItemUnderCursor(); ok {
		name = entry.DiskName()
	}

	s.Listing = Listing{Entries: entries}
	if err := s.updateMatches(); err != nil {
		return CdResult{}, err
	}
	s.CursorPos, s.ScrollPos = 0, 0
	if name == "" || !s.MoveCursorToFilename(name) {
		s.MoveCursorTo(0)
	}
	return CdResult{}, nil
}
