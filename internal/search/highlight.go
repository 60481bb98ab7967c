package search

// MergeMatchSpans joins adjacent or overlapping spans. Input must be ordered by
// Start.
func MergeMatchSpans(spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]MatchSpan, 0, len(spans))
	current := spans[0]
	for i := 1; i < len(spans); i++ {
		next := spans[i]
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

// Highlight reports which byte offsets of a name of length n fall inside the
// spans.
func Highlight(n int, spans []MatchSpan) []bool {
	if len(spans) == 0 || n <= 0 {
		return nil
	}
	marks := make([]bool, n)
	for _, s := range spans {
		start, end := s.Start, s.End
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			marks[i] = true
		}
	}
	return marks
}
