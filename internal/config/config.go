// Package config builds the immutable settings rcd runs with from built-in
// defaults, an optional YAML file and the command line, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	fsutil "github.com/kk-code-lab/rcd/internal/fs"
	"github.com/kk-code-lab/rcd/internal/search"
)

const (
	appDirName          = "rcd"
	historyFileName     = "history.json"
	configFileName      = "config.yaml"
	DefaultAutoCdDelay  = 200 * time.Millisecond
	defaultLogLevel     = "info"
	defaultLogFormat    = "json"
	setupAutoDetectFlag = "auto"
)

var (
	userCacheDir  = os.UserCacheDir
	userConfigDir = os.UserConfigDir
)

// AutoCd controls entering the only remaining match automatically.
type AutoCd struct {
	Enabled bool
	Delay   time.Duration
}

// Settings is the complete runtime configuration. It is built once at start
// and passed by value.
type Settings struct {
	FoldersOnly  bool
	FilterSearch bool
	CaseMode     search.CaseMode
	GapMode      search.GapMode
	SortMode     fsutil.SortMode
	AutoCd       AutoCd
	HistoryFile  string
	Mouse        bool
	LogFile      string
	LogLevel     string
	LogFormat    string
}

// Defaults returns the settings used when neither a config file nor flags
// say otherwise.
func Defaults() Settings {
	return Settings{
		CaseMode:    search.SmartCase,
		GapMode:     search.GapSearchFromStart,
		SortMode:    fsutil.SortByName,
		AutoCd:      AutoCd{Enabled: true, Delay: DefaultAutoCdDelay},
		HistoryFile: defaultHistoryFile(),
		LogLevel:    defaultLogLevel,
		LogFormat:   defaultLogFormat,
	}
}

// ListOptions returns the listing options implied by s.
func (s Settings) ListOptions() fsutil.ListOptions {
	return fsutil.ListOptions{FoldersOnly: s.FoldersOnly, Sort: s.SortMode}
}

func defaultHistoryFile() string {
	dir, err := userCacheDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, appDirName, historyFileName)
}

func defaultConfigFile() string {
	dir, err := userConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, appDirName, configFileName)
}

// parseAutoCd accepts "off", a plain number of milliseconds or a Go duration.
func parseAutoCd(value string) (AutoCd, error) {
	switch value {
	case "off", "false", "never":
		return AutoCd{}, nil
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		if ms < 0 {
			return AutoCd{}, fmt.Errorf("invalid autocd timeout %q", value)
		}
		return AutoCd{Enabled: true, Delay: time.Duration(ms) * time.Millisecond}, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return AutoCd{}, fmt.Errorf("invalid autocd timeout %q (want milliseconds, a duration or off)", value)
	}
	return AutoCd{Enabled: true, Delay: d}, nil
}

func parseOnOff(value string) (bool, error) {
	switch value {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q (want on or off)", value)
}
