package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== CURSOR ACTIONS =====

// CursorUpAction and CursorDownAction move one row, or one match while
// searching.
type CursorUpAction struct{}
type CursorDownAction struct{}
type PageUpAction struct{}
type PageDownAction struct{}
type CursorTopAction struct{}
type CursorBottomAction struct{}

// SelectRowAction puts the cursor on a row of the main window.
type SelectRowAction struct {
	Row int
}

// ===== NAVIGATION ACTIONS =====

// ChangeDirAction enters Path; an empty Path enters the item under the
// cursor.
type ChangeDirAction struct {
	Path string
}
type GoUpAction struct{}
type GoRootAction struct{}
type GoHomeAction struct{}
type RefreshAction struct{}

// AutoCdAction enters the single remaining match.
type AutoCdAction struct{}

// ===== SEARCH ACTIONS =====

type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type ClearSearchAction struct{}
type CycleCaseModeAction struct{}
type CycleGapModeAction struct{}
type ToggleFilterSearchAction struct{}

// ===== VIEW ACTIONS =====

// ResizeAction carries the full screen size.
type ResizeAction struct {
	Width  int
	Height int
}
type ToggleHelpAction struct{}

// ===== APPLICATION ACTIONS =====

type ExitAction struct{}          // exit and cd into the current folder
type ExitWithoutCdAction struct{} // exit and stay where the shell was
type SuspendAction struct{}
