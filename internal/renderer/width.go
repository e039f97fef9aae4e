package renderer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// runeCells returns the number of cells r takes at visual column vcol.
func runeCells(r rune, vcol, tabWidth int) int {
	if r == '\t' {
		return tabWidth - vcol%tabWidth
	}
	w := runewidth.RuneWidth(r)
	if w == 0 && r >= ' ' {
		w = uniseg.StringWidth(string(r))
	}
	return w
}

// visualColumn returns the cell offset of rune column col in line.
func visualColumn(line string, col, tabWidth int) int {
	vcol := 0
	i := 0
	for _, r := range line {
		if i == col {
			break
		}
		vcol += runeCells(r, vcol, tabWidth)
		i++
	}
	return vcol
}

// stringCells returns the display width of s without tabs.
func stringCells(s string) int {
	return uniseg.StringWidth(s)
}

// truncate cuts s to at most width cells.
func truncate(s string, width int) string {
	if stringCells(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "")
}
