package state

import "sort"

func (s *AppState) winHeight() int {
	if s.MainWinH < 1 {
		return 1
	}
	return s.MainWinH
}

// MoveCursor moves the cursor by amount rows through the visible items and
// scrolls the window as needed. With wrap the position wraps around the ends
// of the list, otherwise it is clamped.
func (s *AppState) MoveCursor(amount int, wrap bool) {
	n := s.NumVisible()
	if n == 0 {
		return
	}
	h := s.winHeight()
	maxRow := h - 1

	pointer := s.CursorPos + s.ScrollPos + amount
	if wrap {
		pointer = ((pointer % n) + n) % n
	} else if pointer < 0 {
		pointer = 0
	} else if pointer > n-1 {
		pointer = n - 1
	}

	switch {
	case n <= h:
		s.ScrollPos = 0
		s.CursorPos = pointer
	case pointer <= s.ScrollPos:
		s.ScrollPos = pointer
		s.CursorPos = 0
	case pointer >= s.ScrollPos+maxRow:
		s.CursorPos = maxRow
		s.ScrollPos = pointer - maxRow
	default:
		s.CursorPos = pointer - s.ScrollPos
	}
}

// MoveCursorTo puts the cursor on the visible item at index idx.
func (s *AppState) MoveCursorTo(idx int) {
	s.MoveCursor(idx-s.CursorIndex(), false)
}

// MoveCursorToFilename puts the cursor on the visible item called name,
// either as displayed or as stored on disk, and reports whether it was found.
func (s *AppState) MoveCursorToFilename(name string) bool {
	n := s.NumVisible()
	for i := 0; i < n; i++ {
		entry := s.Listing.Entries[s.fullIndex(i)]
		if entry.Name == name || entry.DiskName() == name {
			s.MoveCursorTo(i)
			return true
		}
	}
	return false
}

// MoveCursorToAdjacentMatch steps dir matches forward (positive) or back
// (negative) from the cursor, wrapping around. A dir of 0 snaps to the
// nearest match at or after the cursor.
func (s *AppState) MoveCursorToAdjacentMatch(dir int) {
	if !s.IsSearching() {
		return
	}
	indices := s.Listing.Matches.Indices
	if len(indices) == 0 || s.filterActive() {
		s.MoveCursor(sign(dir), true)
		return
	}

	n := len(indices)
	i := sort.SearchInts(indices, s.CursorIndex())
	if i == n {
		i = 0
	}
	i = ((i+dir)%n + n) % n
	s.MoveCursorTo(indices[i])
}

// MoveCursorToFirstMatch jumps to the first match while searching, or to the
// top of the list otherwise.
func (s *AppState) MoveCursorToFirstMatch() {
	if s.IsSearching() && !s.filterActive() && s.NumMatching() > 0 {
		s.MoveCursorTo(s.Listing.Matches.Indices[0])
		return
	}
	s.MoveCursorTo(0)
}

// MoveCursorToLastMatch is the counterpart of MoveCursorToFirstMatch.
func (s *AppState) MoveCursorToLastMatch() {
	if s.IsSearching() && !s.filterActive() && s.NumMatching() > 0 {
		s.MoveCursorTo(s.Listing.Matches.Indices[s.NumMatching()-1])
		return
	}
	s.MoveCursorTo(s.NumVisible() - 1)
}

// UpdateMainWindowSize applies a new main window size. When the window grows
// rows above the current scroll position are revealed first.
func (s *AppState) UpdateMainWindowSize(w, h int) {
	oldH := s.MainWinH
	s.MainWinW = w
	s.MainWinH = h

	if delta := h - oldH; delta > 0 && oldH > 0 {
		pointer := s.CursorIndex()
		s.ScrollPos -= delta
		if s.ScrollPos < 0 {
			s.ScrollPos = 0
		}
		s.CursorPos = pointer - s.ScrollPos
	}
	s.MoveCursor(0, false)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
