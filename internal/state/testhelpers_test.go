package state

import (
	"fmt"
	"testing"

	"github.com/kk-code-lab/rcd/internal/config"
	fsutil "github.com/kk-code-lab/rcd/internal/fs"
	"github.com/kk-code-lab/rcd/internal/history"
)

// newListingState builds a state over synthetic folders in /test, with ".."
// first, without touching the filesystem.
func newListingState(winH int, names ...string) *AppState {
	entries := []FileEntry{fsutil.UpEntry("/test")}
	for _, name := range names {
		entries = append(entries, FileEntry{
			Name:        name,
			FullPath:    "/test/" + name,
			IsDir:       true,
			HasMetadata: true,
		})
	}
	settings := config.Defaults()
	return &AppState{
		Settings:     settings,
		CaseMode:     settings.CaseMode,
		GapMode:      settings.GapMode,
		FilterSearch: settings.FilterSearch,
		CurrentPath:  "/test",
		Listing:      Listing{Entries: entries},
		History:      history.New(),
		MainWinW:     80,
		MainWinH:     winH,
	}
}

// newItemsState builds a state with exactly n items and no ".." entry.
func newItemsState(winH, n int) *AppState {
	s := newListingState(winH)
	s.Listing.Entries = s.Listing.Entries[:0]
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("file %d", i)
		s.Listing.Entries = append(s.Listing.Entries, FileEntry{Name: name, FullPath: "/test/" + name, HasMetadata: true})
	}
	return s
}

func assertCursor(t *testing.T, s *AppState, cursor, scroll int) {
	t.Helper()
	if s.CursorPos != cursor || s.ScrollPos != scroll {
		t.Fatalf("cursor/scroll = %d/%d, want %d/%d", s.CursorPos, s.ScrollPos, cursor, scroll)
	}
}

func selectedName(s *AppState) string {
	entry, ok := s.ItemUnderCursor()
	if !ok {
		return ""
	}
	return entry.Name
}

func mustSearch(t *testing.T, s *AppState, query string) {
	t.Helper()
	for _, r := range query {
		if err := s.AdvanceSearch(string(r)); err != nil {
			t.Fatalf("AdvanceSearch(%q): %v", r, err)
		}
	}
}
