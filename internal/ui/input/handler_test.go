package input

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rcd/internal/state"
)

func processKey(t *testing.T, state *statepkg.AppState, ev *tcell.EventKey) (statepkg.Action, bool) {
	t.Helper()
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(state)

	keepRunning := handler.ProcessEvent(ev)

	select {
	case action := <-actionChan:
		return action, keepRunning
	default:
		return nil, keepRunning
	}
}

func TestKeyMapping(t *testing.T) {
	tests := []struct {
		name      string
		searching bool
		ev        *tcell.EventKey
		want      statepkg.Action
	}{
		{"enter enters", false, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), statepkg.ChangeDirAction{}},
		{"right enters", false, tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), statepkg.ChangeDirAction{}},
		{"alt+down enters", false, tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModAlt), statepkg.ChangeDirAction{}},
		{"alt+l enters", false, tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModAlt), statepkg.ChangeDirAction{}},
		{"space enters", false, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), statepkg.ChangeDirAction{}},
		{"space searches", true, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), statepkg.SearchCharAction{Char: ' '}},
		{"left goes up", false, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), statepkg.GoUpAction{}},
		{"alt+up goes up", false, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModAlt), statepkg.GoUpAction{}},
		{"alt+h goes up", false, tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModAlt), statepkg.GoUpAction{}},
		{"dash goes up", false, tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), statepkg.GoUpAction{}},
		{"dash searches", true, tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), statepkg.SearchCharAction{Char: '-'}},
		{"backspace goes up", false, tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), statepkg.GoUpAction{}},
		{"backspace erases", true, tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), statepkg.SearchBackspaceAction{}},
		{"up", false, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), statepkg.CursorUpAction{}},
		{"down", false, tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), statepkg.CursorDownAction{}},
		{"alt+k", false, tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModAlt), statepkg.CursorUpAction{}},
		{"alt+j", false, tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModAlt), statepkg.CursorDownAction{}},
		{"page up", false, tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), statepkg.PageUpAction{}},
		{"ctrl+d", false, tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl), statepkg.PageDownAction{}},
		{"home", false, tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), statepkg.CursorTopAction{}},
		{"alt+G", false, tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModAlt), statepkg.CursorBottomAction{}},
		{"ctrl+home", false, tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl), statepkg.GoHomeAction{}},
		{"ctrl+alt+h", false, tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModAlt|tcell.ModCtrl), statepkg.GoHomeAction{}},
		{"ctrl+r", false, tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), statepkg.GoRootAction{}},
		{"alt+c", true, tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModAlt), statepkg.CycleCaseModeAction{}},
		{"ctrl+f", true, tcell.NewEventKey(tcell.KeyCtrlF, 0, tcell.ModCtrl), statepkg.CycleGapModeAction{}},
		{"alt+f", true, tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt), statepkg.ToggleFilterSearchAction{}},
		{"f5", false, tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), statepkg.RefreshAction{}},
		{"question mark", false, tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone), statepkg.ToggleHelpAction{}},
		{"letters search", false, tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), statepkg.SearchCharAction{Char: 'x'}},
		{"escape clears search", true, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), statepkg.ClearSearchAction{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &statepkg.AppState{}
			if tt.searching {
				state.SearchString = "x"
			}
			action, keepRunning := processKey(t, state, tt.ev)
			if !keepRunning {
				t.Fatalf("key should not exit")
			}
			if !reflect.DeepEqual(action, tt.want) {
				t.Fatalf("action = %#v, want %#v", action, tt.want)
			}
		})
	}
}

func TestExitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"escape exits with cd", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), statepkg.ExitAction{}},
		{"alt+q exits with cd", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModAlt), statepkg.ExitAction{}},
		{"ctrl+c exits without cd", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), statepkg.ExitWithoutCdAction{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, keepRunning := processKey(t, &statepkg.AppState{}, tt.ev)
			if keepRunning {
				t.Fatalf("expected the handler to request exit")
			}
			if !reflect.DeepEqual(action, tt.want) {
				t.Fatalf("action = %#v, want %#v", action, tt.want)
			}
		})
	}
}

func TestHelpSwallowsKeys(t *testing.T) {
	state := &statepkg.AppState{ShowHelp: true}

	action, _ := processKey(t, state, tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	if action != nil {
		t.Fatalf("help should swallow search input, got %#v", action)
	}

	action, keepRunning := processKey(t, state, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if !keepRunning {
		t.Fatalf("escape with help open must not exit")
	}
	if _, ok := action.(statepkg.ToggleHelpAction); !ok {
		t.Fatalf("expected ToggleHelpAction, got %T", action)
	}

	_, keepRunning = processKey(t, state, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if keepRunning {
		t.Fatalf("ctrl+c must exit even with help open")
	}
}

func TestResizeEmitsScreenSize(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)

	handler.ProcessEvent(tcell.NewEventResize(120, 40))

	action := <-actionChan
	if got, ok := action.(statepkg.ResizeAction); !ok || got.Width != 120 || got.Height != 40 {
		t.Fatalf("action = %#v", action)
	}
}
