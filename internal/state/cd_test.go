//go:build !windows

package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/kk-code-lab/rcd/internal/config"
	fsutil "github.com/kk-code-lab/rcd/internal/fs"
	"github.com/kk-code-lab/rcd/internal/history"
)

func mkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
	}
}

func newDirState(t *testing.T, dir string) *AppState {
	t.Helper()
	s, res, err := NewAppState(config.Defaults(), history.New(), dir, 80, 24)
	if err != nil {
		t.Fatalf("NewAppState: %v", err)
	}
	if res.MovedUpwards != nil {
		t.Fatalf("unexpected upward move: %+v", res.MovedUpwards)
	}
	return s
}

func withProbe(t *testing.T, fn func(string) error) {
	t.Helper()
	orig := probeDirFn
	probeDirFn = fn
	t.Cleanup(func() { probeDirFn = orig })
}

func TestFindValidCdTargetMovesUpFromMissingDir(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a")
	s := newDirState(t, root)

	target := filepath.Join(root, "a", "b", "c")
	got, res, err := s.FindValidCdTarget(target)
	if err != nil {
		t.Fatalf("FindValidCdTarget: %v", err)
	}
	if got != filepath.Join(root, "a") {
		t.Fatalf("resolved to %q, want %q", got, filepath.Join(root, "a"))
	}
	up := res.MovedUpwards
	if up == nil {
		t.Fatalf("expected MovedUpwards")
	}
	if up.TargetAbsPath != target {
		t.Fatalf("TargetAbsPath = %q, want the original %q", up.TargetAbsPath, target)
	}
	if !errors.Is(up.RootError, fs.ErrNotExist) {
		t.Fatalf("RootError = %v, want not found", up.RootError)
	}
}

func TestFindValidCdTargetResolvesRelativePaths(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/b")
	s := newDirState(t, filepath.Join(root, "a", "b"))

	got, res, err := s.FindValidCdTarget("../.././a/./b/..")
	if err != nil {
		t.Fatalf("FindValidCdTarget: %v", err)
	}
	if got != filepath.Join(root, "a") || res.MovedUpwards != nil {
		t.Fatalf("got %q %+v", got, res)
	}
}

func TestFindValidCdTargetKeepsFirstError(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "locked/inner")
	s := newDirState(t, root)

	locked := filepath.Join(root, "locked")
	inner := filepath.Join(locked, "inner")
	withProbe(t, func(p string) error {
		switch p {
		case inner:
			return &fs.PathError{Op: "open", Path: p, Err: fs.ErrPermission}
		case locked:
			return &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
		}
		return fsutil.ProbeDir(p)
	})

	got, res, err := s.FindValidCdTarget(inner)
	if err != nil {
		t.Fatalf("FindValidCdTarget: %v", err)
	}
	if got != root {
		t.Fatalf("resolved to %q, want %q", got, root)
	}
	if res.MovedUpwards == nil || !errors.Is(res.MovedUpwards.RootError, fs.ErrPermission) {
		t.Fatalf("expected the first (permission) error, got %+v", res.MovedUpwards)
	}
}

func TestFindValidCdTargetPropagatesOtherErrors(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a")
	s := newDirState(t, root)

	boom := errors.New("input/output error")
	withProbe(t, func(string) error { return boom })

	if _, err := s.ChangeDir("a"); !errors.Is(err, boom) {
		t.Fatalf("ChangeDir error = %v, want %v", err, boom)
	}
	if s.CurrentPath != root {
		t.Fatalf("state changed on a fatal error: %s", s.CurrentPath)
	}
}

func TestFindValidCdTargetStopsAtRoot(t *testing.T) {
	s := newDirState(t, t.TempDir())
	withProbe(t, func(p string) error {
		return &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	})

	_, _, err := s.FindValidCdTarget("/nope/deeper")
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected a not-found error at the root, got %v", err)
	}
}

func TestChangeDirEntersAndRestoresLastChild(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "x", "y", "z", "y/inner")
	s := newDirState(t, root)

	if selectedName(s) != "x" {
		t.Fatalf("cursor should start past .., got %q", selectedName(s))
	}

	mustSearch(t, s, "y")
	if _, err := s.ChangeDir(""); err != nil {
		t.Fatalf("ChangeDir: %v", err)
	}
	if s.CurrentPath != filepath.Join(root, "y") {
		t.Fatalf("CurrentPath = %q", s.CurrentPath)
	}
	if s.IsSearching() {
		t.Fatalf("search should be cleared on cd")
	}
	if selectedName(s) != "inner" {
		t.Fatalf("selected %q, want inner", selectedName(s))
	}

	if _, err := s.ChangeDir(fsutil.UpName); err != nil {
		t.Fatalf("ChangeDir(..): %v", err)
	}
	if s.CurrentPath != root {
		t.Fatalf("CurrentPath = %q, want %q", s.CurrentPath, root)
	}
	if selectedName(s) != "y" {
		t.Fatalf("cursor should return to y, got %q", selectedName(s))
	}
}

func TestChangeDirOnFileIsNoop(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newDirState(t, root)
	if selectedName(s) != "notes.txt" {
		t.Fatalf("selected %q", selectedName(s))
	}

	if _, err := s.ChangeDir(""); err != nil {
		t.Fatalf("ChangeDir: %v", err)
	}
	if s.CurrentPath != root {
		t.Fatalf("entered a file: %s", s.CurrentPath)
	}
}

func TestChangeDirPrunesVanishedHistory(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "gone", "kept")
	s := newDirState(t, root)

	if _, err := s.ChangeDir("gone"); err != nil {
		t.Fatalf("ChangeDir: %v", err)
	}
	if err := os.Remove(filepath.Join(root, "gone")); err != nil {
		t.Fatal(err)
	}

	res, err := s.ChangeDir(filepath.Join(root, "gone"))
	if err != nil {
		t.Fatalf("ChangeDir: %v", err)
	}
	if res.MovedUpwards == nil || s.CurrentPath != root {
		t.Fatalf("expected an upward move to %s, got %s %+v", root, s.CurrentPath, res)
	}
	if s.InfoMessage == "" {
		t.Fatalf("upward move should leave an info message")
	}
	if label, ok := s.History.LastVisitedChildLabel(); ok {
		t.Fatalf("stale history entry %q survived", label)
	}
	if selectedName(s) != "kept" {
		t.Fatalf("selected %q, want kept", selectedName(s))
	}
}

func TestNewAppStateInMissingDirMovesUp(t *testing.T) {
	root := t.TempDir()
	s, res, err := NewAppState(config.Defaults(), nil, filepath.Join(root, "missing"), 80, 24)
	if err != nil {
		t.Fatalf("NewAppState: %v", err)
	}
	if res.MovedUpwards == nil || s.CurrentPath != root {
		t.Fatalf("got %s %+v", s.CurrentPath, res)
	}
}

func TestFoldersOnlyListing(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "dir")
	if err := os.WriteFile(filepath.Join(root, "file"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	settings := config.Defaults()
	settings.FoldersOnly = true
	s, _, err := NewAppState(settings, history.New(), root, 80, 24)
	if err != nil {
		t.Fatalf("NewAppState: %v", err)
	}
	if got := visibleNames(s); len(got) != 2 || got[1] != "dir" {
		t.Fatalf("visible = %v, want [.. dir]", got)
	}
}

func TestRefreshListingKeepsCursorOnName(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "b", "c")
	s := newDirState(t, root)
	s.MoveCursorToFilename("c")

	mkdirs(t, root, "a")
	if _, err := s.RefreshListing(); err != nil {
		t.Fatalf("RefreshListing: %v", err)
	}
	if s.NumTotal() != 4 {
		t.Fatalf("total = %d, want 4", s.NumTotal())
	}
	if selectedName(s) != "c" {
		t.Fatalf("selected %q, want c", selectedName(s))
	}
}

func TestRefreshListingReappliesSearch(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "apple", "banana")
	s := newDirState(t, root)
	mustSearch(t, s, "a")

	mkdirs(t, root, "avocado")
	if _, err := s.RefreshListing(); err != nil {
		t.Fatalf("RefreshListing: %v", err)
	}
	if s.NumMatching() != 2 {
		t.Fatalf("matching = %d, want 2", s.NumMatching())
	}
}

func TestChangeDirEntersDecomposedName(t *testing.T) {
	root := t.TempDir()
	decomposed := "cafe\u0301"
	mkdirs(t, root, decomposed, filepath.Join(decomposed, "inner"), "zoo")
	s := newDirState(t, root)

	if selectedName(s) != "caf\u00e9" {
		t.Fatalf("names should be shown composed, got %q", selectedName(s))
	}
	res, err := s.ChangeDir("")
	if err != nil {
		t.Fatalf("ChangeDir: %v", err)
	}
	if res.MovedUpwards != nil {
		t.Fatalf("unexpected upward move: %+v", res.MovedUpwards)
	}
	if s.CurrentPath != filepath.Join(root, decomposed) {
		t.Fatalf("CurrentPath = %q", s.CurrentPath)
	}

	if _, err := s.ChangeDir(fsutil.UpName); err != nil {
		t.Fatalf("ChangeDir(..): %v", err)
	}
	if selectedName(s) != "caf\u00e9" {
		t.Fatalf("cursor should return to the folder, got %q", selectedName(s))
	}
}

func TestAutoCdTargetUsesNameOnDisk(t *testing.T) {
	root := t.TempDir()
	decomposed := "cafe\u0301"
	mkdirs(t, root, decomposed, "zoo")
	s := newDirState(t, root)

	mustSearch(t, s, "caf")
	target, ok := s.AutoCdTarget()
	if !ok {
		t.Fatalf("expected a single folder match")
	}
	if target != filepath.Join(root, decomposed) {
		t.Fatalf("target = %q, want the on-disk name", target)
	}
}
