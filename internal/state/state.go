package state

import (
	"sort"

	"github.com/kk-code-lab/rcd/internal/config"
	fsutil "github.com/kk-code-lab/rcd/internal/fs"
	"github.com/kk-code-lab/rcd/internal/history"
	"github.com/kk-code-lab/rcd/internal/search"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry
type MatchSpan = search.MatchSpan

// Rows taken by the header (path), the info line and the footer.
const (
	HeaderRows = 1
	FooterRows = 2
	ChromeRows = HeaderRows + FooterRows
)

// Listing is the full, sorted content of the current directory with ".."
// first, plus the entries matching the active search.
type Listing struct {
	Entries []FileEntry
	Matches search.MatchSet
}

// AppState is the single source of truth
type AppState struct {
	// Settings is fixed for the session. The search modes below start from
	// it and may be changed at runtime.
	Settings config.Settings

	CaseMode     search.CaseMode
	GapMode      search.GapMode
	FilterSearch bool

	// Navigation & filesystem
	CurrentPath string
	Listing     Listing
	History     *history.Tree

	SearchString string

	// Viewport. CursorPos is the row within the main window and ScrollPos the
	// index of the first visible item.
	MainWinW  int
	MainWinH  int
	CursorPos int
	ScrollPos int

	// PendingAutoCd is set when the last search narrowed the listing to a
	// single folder and auto-cd is enabled.
	PendingAutoCd bool

	ShowHelp    bool
	InfoMessage string
	LastError   error
}

// NewAppState builds the state for a session starting in dir. The tree
// records the walk to dir.
func NewAppState(settings config.Settings, tree *history.Tree, dir string, width, height int) (*AppState, CdResult, error) {
	if tree == nil {
		tree = history.New()
	}
	s := &AppState{
		Settings:     settings,
		CaseMode:     settings.CaseMode,
		GapMode:      settings.GapMode,
		FilterSearch: settings.FilterSearch,
		CurrentPath:  dir,
		History:      tree,
	}
	s.UpdateMainWindowSize(width, height-ChromeRows)
	res, err := s.ChangeDir(dir)
	if err != nil {
		return nil, CdResult{}, err
	}
	return s, res, nil
}

// IsSearching reports whether a search query is active.
func (s *AppState) IsSearching() bool {
	return s.SearchString != ""
}

func (s *AppState) filterActive() bool {
	return s.IsSearching() && s.FilterSearch
}

// NumTotal is the number of entries in the listing, ".." included.
func (s *AppState) NumTotal() int {
	return len(s.Listing.Entries)
}

// NumMatching is the number of entries matching the active search.
func (s *AppState) NumMatching() int {
	return s.Listing.Matches.Len()
}

// NumVisible is the size of the visible projection.
func (s *AppState) NumVisible() int {
	if s.filterActive() {
		return s.Listing.Matches.Len()
	}
	return len(s.Listing.Entries)
}

// fullIndex maps an index in the visible projection to the listing.
func (s *AppState) fullIndex(visible int) int {
	if visible < 0 || visible >= s.NumVisible() {
		return -1
	}
	if s.filterActive() {
		return s.Listing.Matches.Indices[visible]
	}
	return visible
}

// visibleIndex maps a listing index to the visible projection, or -1 when
// the entry is hidden.
func (s *AppState) visibleIndex(full int) int {
	if full < 0 || full >= len(s.Listing.Entries) {
		return -1
	}
	if !s.filterActive() {
		return full
	}
	indices := s.Listing.Matches.Indices
	i := sort.SearchInts(indices, full)
	if i < len(indices) && indices[i] == full {
		return i
	}
	return -1
}

// VisibleItems returns the visible projection.
func (s *AppState) VisibleItems() []FileEntry {
	if !s.filterActive() {
		return s.Listing.Entries
	}
	items := make([]FileEntry, 0, s.Listing.Matches.Len())
	for _, idx := range s.Listing.Matches.Indices {
		items = append(items, s.Listing.Entries[idx])
	}
	return items
}

// VisibleMatchIndices returns the positions of matches within the visible
// projection.
func (s *AppState) VisibleMatchIndices() []int {
	if s.filterActive() {
		out := make([]int, s.Listing.Matches.Len())
		for i := range out {
			out[i] = i
		}
		return out
	}
	return s.Listing.Matches.Indices
}

// VisibleItem returns the visible item at index i together with its match
// spans.
func (s *AppState) VisibleItem(i int) (FileEntry, []MatchSpan, bool) {
	full := s.fullIndex(i)
	if full < 0 {
		return FileEntry{}, nil, false
	}
	return s.Listing.Entries[full], s.Listing.Matches.Spans[full], true
}

// CursorIndex returns the absolute position of the cursor in the visible
// projection.
func (s *AppState) CursorIndex() int {
	return s.CursorPos + s.ScrollPos
}

// ItemAtCursorPos returns the item shown at the given window row.
func (s *AppState) ItemAtCursorPos(row int) (FileEntry, bool) {
	entry, _, ok := s.VisibleItem(s.ScrollPos + row)
	return entry, ok
}

// ItemUnderCursor returns the selected item, if any.
func (s *AppState) ItemUnderCursor() (FileEntry, bool) {
	entry, _, ok := s.VisibleItem(s.CursorIndex())
	return entry, ok
}

// MatchLocationsAtCursorPos returns the match spans of the item at a window
// row.
func (s *AppState) MatchLocationsAtCursorPos(row int) []MatchSpan {
	_, spans, _ := s.VisibleItem(s.ScrollPos + row)
	return spans
}

func (s *AppState) fullIndexUnderCursor() int {
	return s.fullIndex(s.CursorIndex())
}

// MatchNumberUnderCursor returns the 1-based position of the selected item
// among the matches, or 0 when it is not a match.
func (s *AppState) MatchNumberUnderCursor() int {
	full := s.fullIndexUnderCursor()
	if full < 0 || !s.IsSearching() {
		return 0
	}
	indices := s.Listing.Matches.Indices
	i := sort.SearchInts(indices, full)
	if i < len(indices) && indices[i] == full {
		return i + 1
	}
	return 0
}

// AutoCdTarget returns the folder to enter when a pending auto-cd fires.
func (s *AppState) AutoCdTarget() (string, bool) {
	if s.NumMatching() != 1 {
		return "", false
	}
	entry := s.Listing.Entries[s.Listing.Matches.Indices[0]]
	if !entry.IsDir {
		return "", false
	}
	return fsutil.ResolveLogical(s.CurrentPath, entry.DiskName()), true
}
