package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rcd/internal/state"
	renderui "github.com/kk-code-lab/rcd/internal/ui/render"
	"go.uber.org/zap"
)

// Run processes input until the user exits. It returns the folder to cd
// into, or ErrExitWithoutCd.
func (app *Application) Run(ctx context.Context) (string, error) {
	app.renderer.Render(app.state)
	renderPending := false

	done := make(chan struct{})
	defer close(done)
	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("interrupted: %w", ctx.Err())
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
		if !app.shouldQuit && app.runAutoCd(ctx) {
			renderPending = true
		}
	}

	if app.exitErr != nil {
		return "", app.exitErr
	}
	return app.resultPath, nil
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	if _, isResize := ev.(*tcell.EventResize); !isResize && ev.When().Before(app.discardBefore) {
		return false
	}

	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		app.width, app.height = ev.Size()
		app.input.ProcessEvent(ev)
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps the primary button to selection and entering, the
// secondary button to going up and the wheel to cursor movement.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	if !app.state.Settings.Mouse {
		return
	}
	buttons := ev.Buttons()
	prev := app.mouseButtons
	app.mouseButtons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	_, y := ev.Position()
	row, onRow := renderui.ComputeLayout(app.width, app.height).RowAt(y)

	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.CursorUpAction{}
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.CursorDownAction{}
	case buttons&tcell.Button1 != 0:
		if onRow {
			app.actionCh <- statepkg.SelectRowAction{Row: row}
		}
	case prev&tcell.Button1 != 0:
		if onRow {
			app.actionCh <- statepkg.SelectRowAction{Row: row}
			app.actionCh <- statepkg.ChangeDirAction{}
		}
	case prev&tcell.Button2 != 0:
		app.actionCh <- statepkg.GoUpAction{}
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.ExitAction:
		app.resultPath = app.state.CurrentPath
		app.shouldQuit = true
		app.logger.Info("exit", zap.String("path", app.resultPath))
		return false
	case statepkg.ExitWithoutCdAction:
		app.exitErr = ErrExitWithoutCd
		app.shouldQuit = true
		app.logger.Info("exit without cd")
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	// The reducer records failures in LastError for the info line.
	_, _ = app.reducer.Reduce(app.state, action)
	return true
}
