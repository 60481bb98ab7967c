package input

import (
	"runtime"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rcd/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the event asked the application to exit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) emit(action statepkg.Action) bool {
	ih.actionChan <- action
	return true
}

func (ih *InputHandler) exit(action statepkg.Action) bool {
	ih.actionChan <- action
	return false
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	searching := ih.state != nil && ih.state.IsSearching()
	helpVisible := ih.state != nil && ih.state.ShowHelp

	mods := ev.Modifiers()
	alt := mods&tcell.ModAlt != 0
	ctrl := mods&tcell.ModCtrl != 0

	if ev.Key() == tcell.KeyCtrlC {
		return ih.exit(statepkg.ExitWithoutCdAction{})
	}

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyEscape:
			return ih.emit(statepkg.ToggleHelpAction{})
		case tcell.KeyRune:
			switch ev.Rune() {
			case '?', 'q', 'Q':
				return ih.emit(statepkg.ToggleHelpAction{})
			}
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if searching {
			return ih.emit(statepkg.ClearSearchAction{})
		}
		return ih.exit(statepkg.ExitAction{})

	case tcell.KeyEnter, tcell.KeyRight:
		return ih.emit(statepkg.ChangeDirAction{})

	case tcell.KeyLeft:
		return ih.emit(statepkg.GoUpAction{})

	case tcell.KeyUp:
		if alt {
			return ih.emit(statepkg.GoUpAction{})
		}
		return ih.emit(statepkg.CursorUpAction{})

	case tcell.KeyDown:
		if alt {
			return ih.emit(statepkg.ChangeDirAction{})
		}
		return ih.emit(statepkg.CursorDownAction{})

	case tcell.KeyPgUp, tcell.KeyCtrlU:
		return ih.emit(statepkg.PageUpAction{})

	case tcell.KeyPgDn, tcell.KeyCtrlD:
		return ih.emit(statepkg.PageDownAction{})

	case tcell.KeyHome:
		if ctrl {
			return ih.emit(statepkg.GoHomeAction{})
		}
		return ih.emit(statepkg.CursorTopAction{})

	case tcell.KeyEnd:
		return ih.emit(statepkg.CursorBottomAction{})

	case tcell.KeyCtrlR:
		return ih.emit(statepkg.GoRootAction{})

	case tcell.KeyCtrlF:
		return ih.emit(statepkg.CycleGapModeAction{})

	case tcell.KeyF5:
		return ih.emit(statepkg.RefreshAction{})

	case tcell.KeyCtrlZ:
		if runtime.GOOS != "windows" {
			return ih.emit(statepkg.SuspendAction{})
		}
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		// Ctrl+Alt+h arrives as Alt+Ctrl-H, which shares its code with Backspace.
		if alt && ev.Key() == tcell.KeyBackspace {
			return ih.emit(statepkg.GoHomeAction{})
		}
		if searching {
			return ih.emit(statepkg.SearchBackspaceAction{})
		}
		return ih.emit(statepkg.GoUpAction{})

	case tcell.KeyRune:
		return ih.processRune(ev.Rune(), alt, ctrl, searching)
	}
	return true
}

func (ih *InputHandler) processRune(r rune, alt, ctrl, searching bool) bool {
	if alt {
		switch r {
		case 'h':
			if ctrl {
				return ih.emit(statepkg.GoHomeAction{})
			}
			return ih.emit(statepkg.GoUpAction{})
		case 'l':
			return ih.emit(statepkg.ChangeDirAction{})
		case 'j':
			return ih.emit(statepkg.CursorDownAction{})
		case 'k':
			return ih.emit(statepkg.CursorUpAction{})
		case 'g':
			return ih.emit(statepkg.CursorTopAction{})
		case 'G':
			return ih.emit(statepkg.CursorBottomAction{})
		case 'c', 'C':
			return ih.emit(statepkg.CycleCaseModeAction{})
		case 'f', 'F':
			return ih.emit(statepkg.ToggleFilterSearchAction{})
		case 'q', 'Q':
			return ih.exit(statepkg.ExitAction{})
		}
		return true
	}

	if !searching {
		switch r {
		case ' ':
			return ih.emit(statepkg.ChangeDirAction{})
		case '-':
			return ih.emit(statepkg.GoUpAction{})
		case '?':
			return ih.emit(statepkg.ToggleHelpAction{})
		}
	}
	return ih.emit(statepkg.SearchCharAction{Char: r})
}
