package render

import (
	"github.com/gdamore/tcell/v2"
	searchpkg "github.com/kk-code-lab/rcd/internal/search"
	textutil "github.com/kk-code-lab/rcd/internal/textutil"
	"github.com/mattn/go-runewidth"
)

const ellipsis = '…'

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	ellipsisWidth := r.cachedRuneWidth(ellipsis)
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if maxWidth <= ellipsisWidth {
		return string(ellipsis)
	}

	available := maxWidth - ellipsisWidth
	out := make([]rune, 0, len(text))
	currentWidth := 0
	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if currentWidth+runeWidth > available {
			break
		}
		out = append(out, ru)
		currentWidth += runeWidth
	}
	return string(append(out, ellipsis))
}

// trimLeftToWidth keeps the end of text, which is the useful part of a path.
func (r *Renderer) trimLeftToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}
	ellipsisWidth := r.cachedRuneWidth(ellipsis)
	if maxWidth <= ellipsisWidth {
		return string(ellipsis)
	}

	runes := []rune(text)
	available := maxWidth - ellipsisWidth
	start := len(runes)
	currentWidth := 0
	for start > 0 {
		w := r.cachedRuneWidth(runes[start-1])
		if currentWidth+w > available {
			break
		}
		currentWidth += w
		start--
	}
	return string(ellipsis) + string(runes[start:])
}

func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := runes[i]
		i++

		// Zero-width runes ride along as combining characters.
		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += r.cachedRuneWidth(mainc)
	}

	return x
}

func (r *Renderer) drawStyledRune(x, y, maxX int, ru rune, style tcell.Style) int {
	if x >= maxX {
		return x
	}

	width := r.cachedRuneWidth(ru)
	if width <= 0 {
		width = 1
	}

	r.screen.SetContent(x, y, ru, nil, style)
	for w := 1; w < width && x+w < maxX; w++ {
		r.screen.SetContent(x+w, y, ' ', nil, style)
	}
	return x + width
}

func (r *Renderer) drawStyledStringClipped(startX, y, maxX int, text string, style tcell.Style) int {
	x := startX
	for _, ru := range text {
		if x >= maxX {
			break
		}
		x = r.drawStyledRune(x, y, maxX, ru, style)
	}
	return x
}

func (r *Renderer) fillRow(startX, y, maxX int, style tcell.Style) {
	for x := startX; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawName paints a file name with its match spans. Spans are byte offsets
// into name; control and formatting runes are replaced while drawing so the
// offsets stay valid. Names that do not fit end in an ellipsis.
func (r *Renderer) drawName(startX, y, maxX int, name string, spans []searchpkg.MatchSpan, baseStyle, matchStyle tcell.Style) int {
	if maxX <= startX {
		return startX
	}
	marks := searchpkg.Highlight(len(name), spans)

	limit := maxX
	truncated := textutil.DisplayWidth(textutil.SanitizeTerminalText(name)) > maxX-startX
	if truncated {
		limit = maxX - 1
	}

	x := startX
	for i, ru := range name {
		style := baseStyle
		if marks != nil && marks[i] {
			style = matchStyle
		}
		shown := textutil.SanitizeRune(ru)
		if x+textutil.DisplayWidth(shown) > limit {
			break
		}
		for _, sr := range shown {
			x = r.drawStyledRune(x, y, limit, sr, style)
		}
	}
	if truncated {
		x = r.drawStyledRune(x, y, maxX, ellipsis, baseStyle)
	}
	return x
}
