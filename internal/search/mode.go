package search

import (
	"fmt"
	"strings"
	"unicode"
)

// CaseMode controls how letter case is compared while searching.
type CaseMode int

const (
	SmartCase CaseMode = iota
	IgnoreCase
	CaseSensitive
)

func (m CaseMode) String() string {
	switch m {
	case IgnoreCase:
		return "ignore case"
	case CaseSensitive:
		return "case sensitive"
	default:
		return "smart case"
	}
}

// Next returns the mode that follows m when cycling at runtime.
func (m CaseMode) Next() CaseMode {
	switch m {
	case IgnoreCase:
		return CaseSensitive
	case CaseSensitive:
		return SmartCase
	default:
		return IgnoreCase
	}
}

// Sensitive resolves the mode against a concrete query.
func (m CaseMode) Sensitive(query string) bool {
	switch m {
	case CaseSensitive:
		return true
	case IgnoreCase:
		return false
	}
	for _, r := range query {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// ParseCaseMode accepts the configuration-file spelling of a case mode.
func ParseCaseMode(value string) (CaseMode, error) {
	switch normalizeModeName(value) {
	case "", "smart", "smartcase":
		return SmartCase, nil
	case "ignore", "ignorecase", "insensitive":
		return IgnoreCase, nil
	case "sensitive", "casesensitive":
		return CaseSensitive, nil
	}
	return SmartCase, fmt.Errorf("unknown case mode %q", value)
}

// GapMode controls where a match may start and whether gaps are allowed
// between consecutive query characters.
type GapMode int

const (
	GapSearchFromStart GapMode = iota
	NoGapSearch
	GapSearchAnywhere
	NoGapSearchAnywhere
)

func (m GapMode) String() string {
	switch m {
	case NoGapSearch:
		return "normal search"
	case GapSearchAnywhere:
		return "gap search anywhere"
	case NoGapSearchAnywhere:
		return "normal search anywhere"
	default:
		return "gap search from start"
	}
}

// Next returns the mode that follows m when cycling at runtime.
func (m GapMode) Next() GapMode {
	switch m {
	case GapSearchFromStart:
		return NoGapSearch
	case NoGapSearch:
		return GapSearchAnywhere
	case GapSearchAnywhere:
		return NoGapSearchAnywhere
	default:
		return GapSearchFromStart
	}
}

func (m GapMode) anchored() bool {
	return m == GapSearchFromStart || m == NoGapSearch
}

func (m GapMode) allowsGaps() bool {
	return m == GapSearchFromStart || m == GapSearchAnywhere
}

// ParseGapMode accepts the configuration-file spelling of a gap mode.
func ParseGapMode(value string) (GapMode, error) {
	switch normalizeModeName(value) {
	case "", "gap", "gapsearch", "gapsearchfromstart":
		return GapSearchFromStart, nil
	case "nogap", "nogapsearch", "normal":
		return NoGapSearch, nil
	case "gapsearchanywhere", "gapanywhere":
		return GapSearchAnywhere, nil
	case "nogapsearchanywhere", "nogapanywhere", "anywhere":
		return NoGapSearchAnywhere, nil
	}
	return GapSearchFromStart, fmt.Errorf("unknown gap search mode %q", value)
}

func normalizeModeName(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(value)
}
