package textutil

import "github.com/mattn/go-runewidth"

// DisplayWidth reports the printable width of text accounting for wide runes.
// Zero-width runes count as one column since they are drawn as labels or
// placeholders.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			w = 1
		}
		width += w
	}
	return width
}
