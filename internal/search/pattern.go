package search

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchSpan is a half-open byte range [Start, End) within a name.
type MatchSpan struct {
	Start int
	End   int
}

// Pattern is a compiled search query. Every query rune is its own capture
// group so that the matched byte range of each rune can be recovered for
// highlighting, also when gaps separate them.
type Pattern struct {
	query string
	re    *regexp.Regexp
}

// Compile builds the pattern for query under the given modes. Query text is
// always literal: regexp metacharacters are escaped rune by rune.
func Compile(query string, caseMode CaseMode, gapMode GapMode) (*Pattern, error) {
	var b strings.Builder
	b.Grow(len(query) * 6)

	b.WriteString("(?s)")
	if !caseMode.Sensitive(query) {
		b.WriteString("(?i)")
	}
	if gapMode.anchored() {
		b.WriteByte('^')
	}

	first := true
	for _, r := range query {
		if !first && gapMode.allowsGaps() {
			b.WriteString(".*?")
		}
		first = false
		b.WriteByte('(')
		b.WriteString(regexp.QuoteMeta(string(r)))
		b.WriteByte(')')
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compile search %q: %w", query, err)
	}
	return &Pattern{query: query, re: re}, nil
}

// Query returns the raw query the pattern was built from.
func (p *Pattern) Query() string {
	return p.query
}

// Match reports whether name matches and returns the merged byte spans of the
// captured runes.
func (p *Pattern) Match(name string) ([]MatchSpan, bool) {
	loc := p.re.FindStringSubmatchIndex(name)
	if loc == nil {
		return nil, false
	}

	spans := make([]MatchSpan, 0, len(loc)/2-1)
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			continue
		}
		spans = append(spans, MatchSpan{Start: loc[i], End: loc[i+1]})
	}
	return MergeMatchSpans(spans), true
}
