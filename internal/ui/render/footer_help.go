package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/rcd/internal/state"
)

// buildFooterHelpText returns the contextual hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	return append(segments, "?: help")
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch {
	case state.IsSearching():
		filter := "Alt+F: filter"
		if state.FilterSearch {
			filter = "Alt+F: highlight"
		}
		return []string{
			"↑↓: next match",
			"↵: enter",
			"Esc: clear",
			filter,
			"Alt+C/Ctrl+F: modes",
		}
	default:
		return []string{
			"type: search",
			"↵/→: enter",
			"←: up",
			"Esc: quit+cd",
			"Ctrl+C: quit",
		}
	}
}
