package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rcd/internal/config"
	"github.com/kk-code-lab/rcd/internal/history"
	"github.com/kk-code-lab/rcd/internal/logging"
	statepkg "github.com/kk-code-lab/rcd/internal/state"
	inputui "github.com/kk-code-lab/rcd/internal/ui/input"
	renderui "github.com/kk-code-lab/rcd/internal/ui/render"
	"go.uber.org/zap"
)

// ErrExitWithoutCd is returned by Run when the user left without picking a
// folder.
var ErrExitWithoutCd = errors.New("exited without changing folder")

// Config is what a session starts from.
type Config struct {
	Settings config.Settings
	History  *history.Tree
	Dir      string
	Version  string
	Logger   *zap.Logger
	// Screen replaces the terminal when set. It must not be initialised yet.
	Screen tcell.Screen
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	state    *statepkg.AppState
	reducer  *statepkg.StateReducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action
	logger   *zap.Logger

	width, height int
	mouseButtons  tcell.ButtonMask

	// Input events stamped before discardBefore are dropped. Set when an
	// auto-cd delay completes.
	discardBefore time.Time
	wait          func(ctx context.Context, d time.Duration) error
	now           func() time.Time

	shouldQuit bool
	resultPath string
	exitErr    error
}

// NewApplication opens the terminal, or cfg.Screen, and loads the starting
// folder.
func NewApplication(cfg Config) (*Application, error) {
	screen := cfg.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	app, err := newApplication(screen, cfg)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(screen tcell.Screen, cfg Config) (*Application, error) {
	logger := logging.OrNop(cfg.Logger)
	if cfg.Settings.Mouse {
		screen.EnableMouse()
	}

	w, h := screen.Size()
	state, res, err := statepkg.NewAppState(cfg.Settings, cfg.History, cfg.Dir, w, h)
	if err != nil {
		return nil, err
	}
	if res.MovedUpwards == nil {
		state.InfoMessage = fmt.Sprintf("rcd %s, press ? for help", cfg.Version)
	}

	actionCh := make(chan statepkg.Action, 10)
	input := inputui.NewInputHandler(actionCh)
	input.SetState(state)

	logger.Info("session started", zap.String("path", state.CurrentPath))

	return &Application{
		screen:   screen,
		state:    state,
		reducer:  statepkg.NewStateReducer(logger),
		renderer: renderui.NewRenderer(screen),
		input:    input,
		actionCh: actionCh,
		logger:   logger,
		width:    w,
		height:   h,
		wait:     waitDelay,
		now:      time.Now,
	}, nil
}

// State exposes the session state, mainly for the history tree.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.screen.Fini()
	return nil
}
