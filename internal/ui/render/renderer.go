package render

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/rcd/internal/fs"
	statepkg "github.com/kk-code-lab/rcd/internal/state"
	textutil "github.com/kk-code-lab/rcd/internal/textutil"
)

// minQueryWidth is the room the footer keeps for the query before it gives
// up on showing the search modes.
const minQueryWidth = 10

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if state == nil || w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	if state.ShowHelp {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	layout := ComputeLayout(w, h)
	r.drawHeader(state, layout)
	r.drawListing(state, layout)
	r.drawInfoLine(state, layout)
	r.drawFooter(state, layout)

	r.screen.Show()
}

// drawHeader renders the current path, keeping its last component in bold.
func (r *Renderer) drawHeader(state *statepkg.AppState, layout Layout) {
	w := layout.Width
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	nameStyle := headerStyle.Bold(true)

	prefix, name := splitHeaderPath(state.CurrentPath)
	prefix = textutil.SanitizeTerminalText(prefix)
	name = textutil.SanitizeTerminalText(name)

	x := 0
	nameWidth := r.measureTextWidth(name)
	if nameWidth >= w {
		x = r.drawTextLine(x, 0, w, r.trimLeftToWidth(name, w), nameStyle)
	} else {
		prefix = r.trimLeftToWidth(prefix, w-nameWidth)
		x = r.drawTextLine(x, 0, w, prefix, headerStyle)
		x = r.drawTextLine(x, 0, w-x, name, nameStyle)
	}
	r.fillRow(x, 0, w, headerStyle)
}

// splitHeaderPath splits path into the part up to and including the last
// separator and the final component.
func splitHeaderPath(path string) (string, string) {
	if path == "" || fsutil.IsRoot(path) {
		return "", path
	}
	parent := fsutil.ParentDir(path)
	if !strings.HasPrefix(path, parent) {
		return "", path
	}
	rest := strings.TrimPrefix(path[len(parent):], string(filepath.Separator))
	prefix := path[:len(path)-len(rest)]
	return prefix, rest
}

// drawListing renders the main window rows. While an auto-cd is pending only
// the folder about to be entered is drawn.
func (r *Renderer) drawListing(state *statepkg.AppState, layout Layout) {
	w := layout.Width
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)

	autoCdRow := -1
	if state.PendingAutoCd {
		if matches := state.VisibleMatchIndices(); len(matches) == 1 {
			autoCdRow = matches[0] - state.ScrollPos
		}
	}

	for row := 0; row < layout.ListRows; row++ {
		y := layout.ListTop + row
		entry, spans, ok := state.VisibleItem(state.ScrollPos + row)
		if !ok || (autoCdRow >= 0 && row != autoCdRow) {
			r.fillRow(0, y, w, baseStyle)
			continue
		}
		r.drawEntry(entry, spans, row == state.CursorPos, 0, y, w, baseStyle)
	}
}

func (r *Renderer) drawEntry(entry statepkg.FileEntry, spans []statepkg.MatchSpan, selected bool, startX, y, w int, baseStyle tcell.Style) {
	rowStyle := r.entryStyle(entry, selected, baseStyle)
	matchStyle := rowStyle.Underline(true)
	if !selected {
		matchStyle = matchStyle.Foreground(r.theme.MatchFg)
	}

	// Icon: @ for symlinks, / for directories, space for files
	icon := ' '
	if entry.IsSymlink {
		icon = '@'
	} else if entry.IsDir && !entry.IsUp() {
		icon = '/'
	}

	x := startX
	for _, ru := range []rune{' ', icon, ' '} {
		x = r.drawStyledRune(x, y, w, ru, rowStyle)
	}
	x = r.drawName(x, y, w, entry.Name, spans, rowStyle, matchStyle)
	r.fillRow(x, y, w, rowStyle)
}

func (r *Renderer) entryStyle(entry statepkg.FileEntry, selected bool, baseStyle tcell.Style) tcell.Style {
	var style tcell.Style
	switch {
	case selected:
		style = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	case entry.IsSymlink:
		style = baseStyle.Foreground(r.theme.SymlinkFg)
	case entry.IsDir:
		style = baseStyle.Foreground(r.theme.DirectoryFg)
	default:
		style = baseStyle.Foreground(r.theme.FileFg)
	}
	if entry.IsHidden() && !selected {
		style = style.Foreground(r.theme.HiddenFg)
	}
	if entry.IsDir {
		style = style.Bold(true)
	}
	return style
}

// drawInfoLine shows the last error or info message, falling back to the
// contextual key hints.
func (r *Renderer) drawInfoLine(state *statepkg.AppState, layout Layout) {
	if layout.InfoY < 0 {
		return
	}
	w := layout.Width
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)

	var text string
	switch {
	case state.LastError != nil:
		text = " Error: " + state.LastError.Error()
		style = style.Foreground(r.theme.ErrorFg)
	case state.InfoMessage != "":
		text = " " + state.InfoMessage
		style = style.Foreground(r.theme.InfoFg)
	case symlinkUnderCursor(state) != "":
		text = symlinkUnderCursor(state)
		style = style.Foreground(r.theme.SymlinkFg)
	default:
		text = buildFooterHelpText(state)
		style = style.Dim(true)
	}
	text = r.truncateTextToWidth(textutil.SanitizeTerminalText(text), w)
	x := r.drawTextLine(0, layout.InfoY, w, text, style)
	r.fillRow(x, layout.InfoY, w, style)
}

// symlinkUnderCursor describes the selected symlink as " name -> target", or
// returns "" when the selection is not a symlink.
func symlinkUnderCursor(state *statepkg.AppState) string {
	entry, ok := state.ItemUnderCursor()
	if !ok || !entry.IsSymlink || entry.SymlinkTarget == "" {
		return ""
	}
	return " " + entry.Name + " -> " + entry.SymlinkTarget
}

// drawFooter renders the search prompt on the left and the search modes and
// counters on the right.
func (r *Renderer) drawFooter(state *statepkg.AppState, layout Layout) {
	if layout.FooterY < 0 {
		return
	}
	w := layout.Width
	y := layout.FooterY
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	cursorStyle := style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)

	label := searchLabel(state) + " "
	status := " " + formatSearchModes(state) + "  " + formatCounts(state) + " "
	statusX := w - r.measureTextWidth(status)
	promptLimit := statusX
	if statusX < r.measureTextWidth(label)+minQueryWidth {
		// Narrow terminals keep the prompt and drop the status.
		promptLimit = w
	}

	query := textutil.SanitizeTerminalText(state.SearchString)
	x := r.drawStyledStringClipped(0, y, promptLimit, label, style.Bold(true))
	available := promptLimit - x - 1
	if r.measureTextWidth(query) > available {
		query = r.trimLeftToWidth(query, available)
	}
	x = r.drawStyledStringClipped(x, y, promptLimit, query, style)
	if x < promptLimit {
		x = r.drawStyledRune(x, y, promptLimit, '█', cursorStyle)
	}
	r.fillRow(x, y, w, style)

	if promptLimit == statusX {
		r.drawStyledStringClipped(statusX, y, w, status, style)
	}
}

func searchLabel(state *statepkg.AppState) string {
	if state.FilterSearch {
		return "filter:"
	}
	return "search:"
}

func formatSearchModes(state *statepkg.AppState) string {
	return fmt.Sprintf("%s, %s", state.GapMode, state.CaseMode)
}

// formatCounts renders match/matching/total while searching and
// cursor/visible otherwise.
func formatCounts(state *statepkg.AppState) string {
	if state.IsSearching() {
		current := "-"
		if n := state.MatchNumberUnderCursor(); n > 0 {
			current = fmt.Sprint(n)
		}
		return fmt.Sprintf("%s/%d/%d", current, state.NumMatching(), state.NumTotal())
	}
	visible := state.NumVisible()
	if visible == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", state.CursorIndex()+1, visible)
}
