package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rcd/internal/state"
	textutil "github.com/kk-code-lab/rcd/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	filterDesc := "Show only matches"
	if state != nil && state.FilterSearch {
		filterDesc = "Highlight matches in the full listing"
	}
	autoCd := "Auto-cd is off"
	if state != nil && state.Settings.AutoCd.Enabled {
		autoCd = fmt.Sprintf("A single matching folder is entered after %s", state.Settings.AutoCd.Delay)
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ Alt+k/j", desc: "Move the cursor (match to match while searching)"},
				{keys: "↵ → Space", desc: "Enter the selected folder"},
				{keys: "← - ⌫", desc: "Go to the parent folder"},
				{keys: "PgUp/PgDn", desc: "Page up/down (also Ctrl+U/Ctrl+D)"},
				{keys: "Home/End", desc: "First/last entry or match"},
				{keys: "Ctrl+Home", desc: "Go home"},
				{keys: "Ctrl+R", desc: "Go to the root folder"},
				{keys: "F5", desc: "Re-read the folder"},
			},
		},
		{
			title: "Search",
			entries: []helpOverlayEntry{
				{keys: "type", desc: "Extend the search"},
				{keys: "⌫", desc: "Erase the last character"},
				{keys: "Esc", desc: "Clear the search"},
				{keys: "Alt+F", desc: filterDesc},
				{keys: "Alt+C", desc: "Cycle case mode"},
				{keys: "Ctrl+F", desc: "Cycle gap mode"},
				{keys: "", desc: autoCd},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "Esc Alt+Q", desc: "Quit and cd to the current folder"},
				{keys: "Ctrl+C", desc: "Quit without changing folder"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, baseStyle)
		}
	}

	title := " rcd help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	bodyStyle := baseStyle
	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, bodyStyle)
		row++
	}

	footer := "? toggle · Esc/q close"
	if len(footer) > 0 && h > 0 {
		footerText := r.truncateTextToWidth(footer, w)
		r.drawTextLine(0, h-1, w, footerText, headerStyle)
	}
}
