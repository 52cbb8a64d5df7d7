package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// padCellToWidth truncates or pads text to exactly width terminal columns.
func padCellToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
}

// drawText writes text starting at x, attaching combining marks to the
// preceding rune. It returns the number of columns used.
func (v *Viewport) drawText(x, y int, text string, style tcell.Style) int {
	pos := x
	var (
		main  rune
		comb  []rune
		width int
		have  bool
	)
	flush := func() {
		if have {
			v.SetContent(pos, y, main, comb, style)
			pos += width
		}
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			if have {
				comb = append(comb, r)
			}
			continue
		}
		flush()
		main, comb, width, have = r, nil, w, true
	}
	flush()
	return pos - x
}
