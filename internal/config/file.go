package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	fsutil "github.com/kk-code-lab/rcd/internal/fs"
	"github.com/kk-code-lab/rcd/internal/search"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors config.yaml. Pointer fields distinguish "absent" from
// the zero value.
type fileConfig struct {
	FoldersOnly   *bool   `yaml:"folders_only"`
	FilterSearch  *bool   `yaml:"filter_search"`
	CaseMode      string  `yaml:"case_mode"`
	GapMode       string  `yaml:"gap_mode"`
	Sort          string  `yaml:"sort"`
	AutoCdTimeout string  `yaml:"autocd_timeout"`
	HistoryFile   *string `yaml:"history_file"`
	Mouse         *bool   `yaml:"mouse"`
	LogFile       string  `yaml:"log_file"`
	LogLevel      string  `yaml:"log_level"`
	LogFormat     string  `yaml:"log_format"`
}

// loadFile applies the YAML file at path on top of s. A missing file is only
// an error when required is set.
func loadFile(path string, required bool, s *Settings) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := fc.apply(s); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

func (fc fileConfig) apply(s *Settings) error {
	if fc.FoldersOnly != nil {
		s.FoldersOnly = *fc.FoldersOnly
	}
	if fc.FilterSearch != nil {
		s.FilterSearch = *fc.FilterSearch
	}
	if fc.CaseMode != "" {
		mode, err := search.ParseCaseMode(fc.CaseMode)
		if err != nil {
			return err
		}
		s.CaseMode = mode
	}
	if fc.GapMode != "" {
		mode, err := search.ParseGapMode(fc.GapMode)
		if err != nil {
			return err
		}
		s.GapMode = mode
	}
	if fc.Sort != "" {
		mode, err := fsutil.ParseSortMode(fc.Sort)
		if err != nil {
			return err
		}
		s.SortMode = mode
	}
	if fc.AutoCdTimeout != "" {
		autoCd, err := parseAutoCd(fc.AutoCdTimeout)
		if err != nil {
			return err
		}
		s.AutoCd = autoCd
	}
	if fc.HistoryFile != nil {
		s.HistoryFile = *fc.HistoryFile
	}
	if fc.Mouse != nil {
		s.Mouse = *fc.Mouse
	}
	if fc.LogFile != "" {
		s.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		s.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		s.LogFormat = fc.LogFormat
	}
	return nil
}
