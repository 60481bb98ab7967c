package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	fsutil "github.com/kk-code-lab/rcd/internal/fs"
	"github.com/kk-code-lab/rcd/internal/search"
	"github.com/spf13/pflag"
)

// Invocation is the result of parsing the command line.
type Invocation struct {
	Settings    Settings
	ConfigFile  string
	ShowHelp    bool
	ShowVersion bool
	RunSetup    bool
	SetupShell  string
}

// overrides collects command-line values. Flags are applied in the order
// they appear, so for mutually exclusive flags the last one wins.
type overrides struct {
	foldersOnly  *bool
	filterSearch *bool
	caseMode     *search.CaseMode
	gapMode      *search.GapMode

	sort        string
	autoCd      string
	historyFile string
	mouse       string
	logFile     string
	logLevel    string
	logFormat   string
}

// choiceFlag is a boolean-looking flag that stores a fixed value into a
// shared destination when set.
type choiceFlag[T any] struct {
	dst   **T
	value T
}

func (f *choiceFlag[T]) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		v := f.value
		*f.dst = &v
	}
	return nil
}

func (f *choiceFlag[T]) String() string { return "false" }

func (f *choiceFlag[T]) Type() string { return "bool" }

func addChoice[T any](flags *pflag.FlagSet, dst **T, value T, name, short, usage string) {
	flag := flags.VarPF(&choiceFlag[T]{dst: dst, value: value}, name, short, usage)
	flag.NoOptDefVal = "true"
}

func newFlagSet(ov *overrides, inv *Invocation, output io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("rcd", pflag.ContinueOnError)
	flags.SetOutput(output)
	flags.SortFlags = false

	addChoice(flags, &ov.filterSearch, true, "filter-search", "f", "Show only items matching the search")
	addChoice(flags, &ov.filterSearch, false, "no-filter-search", "F", "Highlight matches without hiding other items (default)")
	addChoice(flags, &ov.foldersOnly, true, "folders-only", "d", "List folders only")
	addChoice(flags, &ov.foldersOnly, false, "no-folders-only", "D", "List folders and files (default)")

	addChoice(flags, &ov.caseMode, search.CaseSensitive, "case-sensitive", "s", "Case-sensitive search")
	addChoice(flags, &ov.caseMode, search.IgnoreCase, "ignore-case", "i", "Case-insensitive search")
	addChoice(flags, &ov.caseMode, search.SmartCase, "smart-case", "S", "Case-sensitive only if the search contains uppercase (default)")

	addChoice(flags, &ov.gapMode, search.GapSearchFromStart, "gap-search", "g", "Match characters in order from the start, gaps allowed (default)")
	addChoice(flags, &ov.gapMode, search.GapSearchAnywhere, "gap-search-anywhere", "G", "Match characters in order anywhere, gaps allowed")
	addChoice(flags, &ov.gapMode, search.NoGapSearch, "no-gap-search", "n", "Match the search as a prefix")
	addChoice(flags, &ov.gapMode, search.NoGapSearchAnywhere, "no-gap-search-anywhere", "N", "Match the search as a substring")

	flags.StringVar(&ov.sort, "sort", "", "Sort order: name, created or modified")
	flags.StringVar(&ov.autoCd, "autocd-timeout", "", "Enter the only match after `MS` milliseconds, or off")
	flags.StringVar(&ov.historyFile, "history-file", "", "History file `PATH`, empty to disable")
	flags.StringVar(&ov.mouse, "mouse", "", "Mouse support: on or off")
	flags.StringVar(&ov.logFile, "log-file", "", "Write logs to `PATH`")
	flags.StringVar(&ov.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&ov.logFormat, "log-format", "", "Log format: json or console")

	flags.StringVar(&inv.ConfigFile, "config", "", "Config file `PATH` (default: user config dir)")
	setup := flags.VarPF(newSetupValue(inv), "setup", "", "Print shell integration snippet, optionally for `SHELL`")
	setup.NoOptDefVal = setupAutoDetectFlag
	flags.BoolVarP(&inv.ShowHelp, "help", "h", false, "Show this help message and exit")
	flags.BoolVarP(&inv.ShowVersion, "version", "V", false, "Print version and exit")
	return flags
}

type setupValue struct{ inv *Invocation }

func newSetupValue(inv *Invocation) *setupValue { return &setupValue{inv: inv} }

func (v *setupValue) Set(s string) error {
	v.inv.RunSetup = true
	if s == setupAutoDetectFlag {
		s = ""
	}
	v.inv.SetupShell = s
	return nil
}

func (v *setupValue) String() string { return "" }

func (v *setupValue) Type() string { return "string" }

// Parse parses args (without the program name), loads the config file and
// returns the resulting invocation.
func Parse(args []string) (Invocation, error) {
	var (
		inv Invocation
		ov  overrides
	)
	flags := newFlagSet(&ov, &inv, io.Discard)
	if err := flags.Parse(args); err != nil {
		return inv, err
	}

	rest := flags.Args()
	if inv.RunSetup && inv.SetupShell == "" && len(rest) > 0 {
		inv.SetupShell, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return inv, fmt.Errorf("unexpected argument %q", rest[0])
	}
	if inv.ShowHelp || inv.ShowVersion || inv.RunSetup {
		return inv, nil
	}

	settings := Defaults()
	configFile, required := inv.ConfigFile, true
	if configFile == "" {
		configFile, required = defaultConfigFile(), false
	}
	if err := loadFile(configFile, required, &settings); err != nil {
		return inv, err
	}
	if err := ov.apply(flags, &settings); err != nil {
		return inv, err
	}
	inv.Settings = settings
	return inv, nil
}

func (ov overrides) apply(flags *pflag.FlagSet, s *Settings) error {
	if ov.foldersOnly != nil {
		s.FoldersOnly = *ov.foldersOnly
	}
	if ov.filterSearch != nil {
		s.FilterSearch = *ov.filterSearch
	}
	if ov.caseMode != nil {
		s.CaseMode = *ov.caseMode
	}
	if ov.gapMode != nil {
		s.GapMode = *ov.gapMode
	}
	if flags.Changed("sort") {
		mode, err := fsutil.ParseSortMode(ov.sort)
		if err != nil {
			return err
		}
		s.SortMode = mode
	}
	if flags.Changed("autocd-timeout") {
		autoCd, err := parseAutoCd(ov.autoCd)
		if err != nil {
			return err
		}
		s.AutoCd = autoCd
	}
	if flags.Changed("history-file") {
		s.HistoryFile = ov.historyFile
	}
	if flags.Changed("mouse") {
		on, err := parseOnOff(ov.mouse)
		if err != nil {
			return fmt.Errorf("--mouse: %w", err)
		}
		s.Mouse = on
	}
	if flags.Changed("log-file") {
		s.LogFile = ov.logFile
	}
	if flags.Changed("log-level") {
		s.LogLevel = ov.logLevel
	}
	if flags.Changed("log-format") {
		s.LogFormat = ov.logFormat
	}
	return nil
}

// Usage returns the help text.
func Usage() string {
	var (
		inv Invocation
		ov  overrides
	)
	var b strings.Builder
	b.WriteString(`rcd - cd with a UI

USAGE:
    rcd [OPTIONS]

Type to search, Enter to enter a folder, Esc to exit into the current folder.
Run 'rcd --setup' and add its output to your shell startup file to enable
changing directory on exit.

OPTIONS:
`)
	b.WriteString(newFlagSet(&ov, &inv, io.Discard).FlagUsages())
	return b.String()
}
