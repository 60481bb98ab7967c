//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rcd/internal/state"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	_ = app.screen.Suspend()
	app.logger.Debug("suspended")
	// Stop only this process; signalling the whole group would also stop
	// the wrapper shell function that launched rcd and break `fg`.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	if app.state.Settings.Mouse {
		app.screen.EnableMouse()
	}
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	// The terminal may have been resized while we were stopped.
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.width, app.height = w, h
		app.handleAction(statepkg.ResizeAction{Width: w, Height: h})
	}
	return true
}
