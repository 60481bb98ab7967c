package search

import (
	fsutil "github.com/kk-code-lab/rcd/internal/fs"
)

// MatchSet holds the listing indices that matched the current query together
// with the highlighted spans of each matching name.
type MatchSet struct {
	Indices []int
	Spans   map[int][]MatchSpan
}

// Len returns the number of matching entries.
func (m MatchSet) Len() int {
	return len(m.Indices)
}

// Contains reports whether the listing index idx is a match.
func (m MatchSet) Contains(idx int) bool {
	_, ok := m.Spans[idx]
	return ok
}

// FindMatches tests every entry name against pattern. Indices are returned in
// ascending order. When restrictToFolders is set, non-directory entries never
// match.
func FindMatches(entries []fsutil.Entry, pattern *Pattern, restrictToFolders bool) MatchSet {
	set := MatchSet{Spans: make(map[int][]MatchSpan)}
	if pattern == nil {
		return set
	}
	for idx, entry := range entries {
		if restrictToFolders && !entry.IsDir {
			continue
		}
		spans, ok := pattern.Match(entry.Name)
		if !ok {
			continue
		}
		set.Indices = append(set.Indices, idx)
		set.Spans[idx] = spans
	}
	return set
}
