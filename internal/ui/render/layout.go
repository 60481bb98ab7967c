package render

import statepkg "github.com/kk-code-lab/rcd/internal/state"

// Layout describes where each part of the screen goes. The header takes the
// first row, the info line and footer the last two; everything between is the
// main window.
type Layout struct {
	Width    int
	Height   int
	ListTop  int
	ListRows int
	InfoY    int
	FooterY  int
}

// ComputeLayout splits a w x h screen. Rows that do not fit are reported as
// -1.
func ComputeLayout(w, h int) Layout {
	l := Layout{
		Width:   w,
		Height:  h,
		ListTop: statepkg.HeaderRows,
		InfoY:   h - statepkg.FooterRows,
		FooterY: h - 1,
	}
	l.ListRows = h - statepkg.ChromeRows
	if l.ListRows < 0 {
		l.ListRows = 0
	}
	if l.InfoY < statepkg.HeaderRows {
		l.InfoY = -1
	}
	if l.FooterY < 0 {
		l.FooterY = -1
	}
	return l
}

// RowAt maps a screen y coordinate to a main window row.
func (l Layout) RowAt(y int) (int, bool) {
	row := y - l.ListTop
	if row < 0 || row >= l.ListRows {
		return 0, false
	}
	return row, true
}
