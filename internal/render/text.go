package render

import "strings"

// Text draws an n×n board as n lines of runes, one rune per cell.
func Text(cells []uint8, n int, on, off rune) string {
	if n <= 0 || len(cells) < n*n {
		return ""
	}
	var b strings.Builder
	b.Grow(n * (n + 1))
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if cells[row*n+col] != 0 {
				b.WriteRune(on)
			} else {
				b.WriteRune(off)
			}
		}
		if row < n-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// CellAt maps a point in a scaled rendering back to the (row, col) it covers.
// ok is false when the point falls outside the board.
func CellAt(x, y, scale, n int) (row, col int, ok bool) {
	if scale <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/scale, x/scale
	if row >= n || col >= n {
		return 0, 0, false
	}
	return row, col, true
}
