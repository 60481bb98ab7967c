package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/rcd/internal/app"
	"github.com/kk-code-lab/rcd/internal/config"
	fsutil "github.com/kk-code-lab/rcd/internal/fs"
	"github.com/kk-code-lab/rcd/internal/history"
	"github.com/kk-code-lab/rcd/internal/logging"
	"github.com/kk-code-lab/rcd/internal/shellsetup"
	"go.uber.org/zap"
)

var version = "dev"

var (
	parentShellDetector = shellsetup.DetectParentShellName
	startSession        = runSession
	// openScreen returns nil to let the app open the terminal itself.
	openScreen = func() tcell.Screen { return nil }
)

func main() {
	// UTF-8 fallback keeps non-ASCII folder names readable on terminals
	// with an unknown encoding.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	inv, err := config.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "rcd: %v\n", err)
		fmt.Fprintln(stderr, "Run 'rcd --help' for usage.")
		return 2
	}

	switch {
	case inv.ShowHelp:
		fmt.Fprint(stdout, config.Usage())
		return 0
	case inv.ShowVersion:
		fmt.Fprintf(stdout, "rcd %s\n", version)
		return 0
	case inv.RunSetup:
		cfg := shellsetup.Config{DetectParent: parentShellDetector}
		if err := shellsetup.WriteSetup(stdout, inv.SetupShell, cfg); err != nil {
			fmt.Fprintf(stderr, "rcd: %v\n", err)
			return 2
		}
		return 0
	}

	settings := inv.Settings
	logger, err := logging.New(logging.Config{
		Level:      settings.LogLevel,
		Format:     settings.LogFormat,
		OutputPath: settings.LogFile,
	})
	if err != nil {
		fmt.Fprintf(stderr, "rcd: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	path, err := startSession(context.Background(), settings, logger)
	if err != nil {
		if errors.Is(err, apppkg.ErrExitWithoutCd) {
			fmt.Fprintln(stderr, "rcd: Exited without changing folder")
		}
		if err != apppkg.ErrExitWithoutCd {
			logger.Error("session failed", zap.Error(err))
			fmt.Fprintf(stderr, "rcd: %v\n", err)
		}
		return 1
	}

	if err := writeResult(resultFile(), path); err != nil {
		logger.Warn("write result file", zap.Error(err))
		fmt.Fprintf(stderr, "rcd: could not write result file: %v\n", err)
		return 1
	}
	logger.Info("result written", zap.String("path", path))
	return 0
}

// runSession runs the UI and returns the folder the user left in. History is
// saved whichever way the session ends; failing to load or save it is fatal.
func runSession(ctx context.Context, settings config.Settings, logger *zap.Logger) (string, error) {
	tree, err := history.Load(settings.HistoryFile)
	if err != nil {
		return "", err
	}
	logger.Debug("history loaded", zap.String("file", settings.HistoryFile))

	dir, err := fsutil.LogicalWorkingDir(os.Getenv, os.Getwd)
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}

	app, err := apppkg.NewApplication(apppkg.Config{
		Settings: settings,
		History:  tree,
		Dir:      dir,
		Version:  version,
		Logger:   logger,
		Screen:   openScreen(),
	})
	if err != nil {
		return "", err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, runErr := app.Run(ctx)
	_ = app.Close()

	if err := history.Save(settings.HistoryFile, app.State().History); err != nil {
		return "", errors.Join(runErr, err)
	}
	logger.Debug("history saved", zap.String("file", settings.HistoryFile))
	return path, runErr
}

// resultFile is where the shell wrapper looks for the chosen folder.
func resultFile() string {
	if name := os.Getenv(shellsetup.ResultFileEnv); name != "" {
		return name
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("rcd_result_%d.txt", os.Getpid()))
}

func writeResult(name, path string) error {
	return os.WriteFile(name, []byte(path), 0o600)
}
