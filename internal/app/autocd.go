package app

import (
	"context"
	"time"

	statepkg "github.com/kk-code-lab/rcd/internal/state"
	"go.uber.org/zap"
)

// waitDelay blocks for d or until ctx is done.
func waitDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runAutoCd enters the single remaining match once the configured delay has
// passed. Keys typed during the delay are thrown away rather than applied to
// the folder that is entered. There is no key to cancel the delay.
func (app *Application) runAutoCd(ctx context.Context) bool {
	if !app.state.PendingAutoCd {
		return false
	}
	target, ok := app.state.AutoCdTarget()
	if !ok {
		app.state.PendingAutoCd = false
		return true
	}

	app.renderer.Render(app.state)
	delay := app.state.Settings.AutoCd.Delay
	app.logger.Debug("auto-cd pending", zap.String("target", target), zap.Duration("delay", delay))

	if err := app.wait(ctx, delay); err != nil {
		return false
	}

	app.discardBefore = app.now()
	if err := flushConsoleInput(); err != nil {
		app.logger.Debug("flush console input", zap.Error(err))
	}
	return app.handleAction(statepkg.AutoCdAction{})
}
