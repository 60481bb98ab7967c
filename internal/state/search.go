package state

import (
	"unicode/utf8"

	"github.com/kk-code-lab/rcd/internal/search"
)

// updateMatches rebuilds the match set from scratch for the current query
// and modes.
func (s *AppState) updateMatches() error {
	if !s.IsSearching() {
		s.Listing.Matches = search.MatchSet{}
		return nil
	}
	pattern, err := search.Compile(s.SearchString, s.CaseMode, s.GapMode)
	if err != nil {
		return err
	}
	s.Listing.Matches = search.FindMatches(s.Listing.Entries, pattern, s.Settings.FoldersOnly)
	return nil
}

// reattachCursor puts the cursor back on the listing entry prev after the
// visible projection changed. A hidden entry sends the cursor to the first
// row. Outside filter mode the cursor moves on to the nearest match when
// prev no longer matches.
func (s *AppState) reattachCursor(prev int) {
	if s.NumVisible() == 0 {
		s.CursorPos, s.ScrollPos = 0, 0
		return
	}
	vis := s.visibleIndex(prev)
	if vis < 0 {
		s.MoveCursorTo(0)
		return
	}
	s.MoveCursorTo(vis)
	if s.IsSearching() && !s.filterActive() && s.NumMatching() > 0 && !s.Listing.Matches.Contains(prev) {
		s.MoveCursorToAdjacentMatch(0)
	}
}

// research reruns the search after a change of query or modes, keeping the
// cursor on the same entry where possible.
func (s *AppState) research(change func()) error {
	prev := s.fullIndexUnderCursor()
	change()
	if err := s.updateMatches(); err != nil {
		return err
	}
	s.reattachCursor(prev)
	return nil
}

// AdvanceSearch appends text to the query.
func (s *AppState) AdvanceSearch(text string) error {
	if text == "" {
		return nil
	}
	err := s.research(func() { s.SearchString += text })
	if err != nil {
		return err
	}
	_, single := s.AutoCdTarget()
	s.PendingAutoCd = s.Settings.AutoCd.Enabled && single
	return nil
}

// EraseSearchChar removes the last rune of the query. Erasing the last rune
// clears the search.
func (s *AppState) EraseSearchChar() error {
	if !s.IsSearching() {
		return nil
	}
	s.PendingAutoCd = false
	return s.research(func() {
		_, size := utf8.DecodeLastRuneInString(s.SearchString)
		s.SearchString = s.SearchString[:len(s.SearchString)-size]
	})
}

// ClearSearch drops the query and all matches.
func (s *AppState) ClearSearch() {
	s.PendingAutoCd = false
	// Clearing cannot fail to compile anything.
	_ = s.research(func() { s.SearchString = "" })
}

// CycleCaseMode switches to the next case mode and re-runs the search.
func (s *AppState) CycleCaseMode() error {
	return s.research(func() { s.CaseMode = s.CaseMode.Next() })
}

// CycleGapMode switches to the next gap mode and re-runs the search.
func (s *AppState) CycleGapMode() error {
	return s.research(func() { s.GapMode = s.GapMode.Next() })
}

// ToggleFilterSearch switches between hiding and highlighting non-matches.
// The match set itself is unchanged.
func (s *AppState) ToggleFilterSearch() {
	prev := s.fullIndexUnderCursor()
	s.FilterSearch = !s.FilterSearch
	s.reattachCursor(prev)
}
