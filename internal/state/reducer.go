package state

import (
	"fmt"
	"os"

	fsutil "github.com/kk-code-lab/rcd/internal/fs"
	"github.com/kk-code-lab/rcd/internal/logging"
	"go.uber.org/zap"
)

var userHomeDirFn = os.UserHomeDir

// StateReducer applies actions to an AppState.
type StateReducer struct {
	logger *zap.Logger
}

// NewStateReducer returns a reducer logging to logger (nil means no logging).
func NewStateReducer(logger *zap.Logger) *StateReducer {
	return &StateReducer{logger: logging.OrNop(logger)}
}

// Reduce applies action to state in place. Errors leave the state as it
// was before the failing step and are also recorded in LastError.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if _, isResize := action.(ResizeAction); !isResize {
		state.LastError = nil
	}

	err := r.reduce(state, action)
	if err != nil {
		state.LastError = err
		r.logger.Error("action failed", zap.String("action", fmt.Sprintf("%T", action)), zap.Error(err))
	}
	return state, err
}

func (r *StateReducer) reduce(state *AppState, action Action) error {
	switch a := action.(type) {

	// ===== CURSOR =====

	case CursorUpAction:
		r.stepCursor(state, -1)
	case CursorDownAction:
		r.stepCursor(state, 1)
	case PageUpAction:
		state.MoveCursor(-pageSize(state), false)
	case PageDownAction:
		state.MoveCursor(pageSize(state), false)
	case CursorTopAction:
		state.MoveCursorToFirstMatch()
	case CursorBottomAction:
		state.MoveCursorToLastMatch()
	case SelectRowAction:
		if a.Row >= 0 && a.Row < state.winHeight() {
			if _, ok := state.ItemAtCursorPos(a.Row); ok {
				state.MoveCursorTo(state.ScrollPos + a.Row)
			}
		}

	// ===== NAVIGATION =====

	case ChangeDirAction:
		return r.changeDir(state, a.Path)
	case GoUpAction:
		return r.changeDir(state, fsutil.UpName)
	case GoRootAction:
		return r.changeDir(state, fsutil.Root(state.CurrentPath))
	case GoHomeAction:
		home, err := userHomeDirFn()
		if err != nil {
			return fmt.Errorf("cannot find home directory: %w", err)
		}
		return r.changeDir(state, home)
	case RefreshAction:
		res, err := state.RefreshListing()
		if err != nil {
			return err
		}
		r.logResult(state, res)
	case AutoCdAction:
		state.PendingAutoCd = false
		target, ok := state.AutoCdTarget()
		if !ok {
			return nil
		}
		r.logger.Debug("auto-cd", zap.String("target", target))
		return r.changeDir(state, target)

	// ===== SEARCH =====

	case SearchCharAction:
		if err := state.AdvanceSearch(string(a.Char)); err != nil {
			return err
		}
		if state.NumMatching() == 0 {
			state.InfoMessage = "No matches"
		} else {
			state.InfoMessage = ""
		}
	case SearchBackspaceAction:
		state.InfoMessage = ""
		return state.EraseSearchChar()
	case ClearSearchAction:
		state.InfoMessage = ""
		state.ClearSearch()
	case CycleCaseModeAction:
		if err := state.CycleCaseMode(); err != nil {
			return err
		}
		state.InfoMessage = "Case mode: " + state.CaseMode.String()
	case CycleGapModeAction:
		if err := state.CycleGapMode(); err != nil {
			return err
		}
		state.InfoMessage = "Search mode: " + state.GapMode.String()
	case ToggleFilterSearchAction:
		state.ToggleFilterSearch()
		if state.FilterSearch {
			state.InfoMessage = "Filter search on"
		} else {
			state.InfoMessage = "Filter search off"
		}

	// ===== VIEW =====

	case ResizeAction:
		state.UpdateMainWindowSize(a.Width, a.Height-ChromeRows)
	case ToggleHelpAction:
		state.ShowHelp = !state.ShowHelp
	}
	return nil
}

// stepCursor moves between matches while searching and between rows
// otherwise. Both wrap around.
func (r *StateReducer) stepCursor(state *AppState, dir int) {
	if state.IsSearching() {
		state.MoveCursorToAdjacentMatch(dir)
		return
	}
	state.MoveCursor(dir, true)
}

func pageSize(state *AppState) int {
	if h := state.winHeight() - 1; h > 0 {
		return h
	}
	return 1
}

func (r *StateReducer) changeDir(state *AppState, path string) error {
	prev := state.CurrentPath
	res, err := state.ChangeDir(path)
	if err != nil {
		return err
	}
	if state.CurrentPath != prev {
		r.logger.Info("changed directory", zap.String("path", state.CurrentPath))
	}
	r.logResult(state, res)
	return nil
}

func (r *StateReducer) logResult(state *AppState, res CdResult) {
	if up := res.MovedUpwards; up != nil {
		r.logger.Warn("moved upwards",
			zap.String("target", up.TargetAbsPath),
			zap.String("entered", state.CurrentPath),
			zap.Error(up.RootError),
		)
	}
}
