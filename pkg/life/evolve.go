package life

// Step computes the generation that follows cur into next. Both slices hold an
// n×n board in row-major order. Neighbours are counted over the Moore
// neighbourhood clipped at the edges: positions outside the board do not
// exist, so corner cells have three neighbours and edge cells five.
//
// Step only reads cur and only writes next. It reports whether any cell
// changed state.
func Step(cur, next []uint8, n int) bool {
	changed := false
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			idx := row*n + col
			alive := cur[idx] != 0
			neighbors := NeighborCount(cur, n, row, col)
			next[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				next[idx] = 1
			}
			if (next[idx] == 1) != alive {
				changed = true
			}
		}
	}
	return changed
}

// NeighborCount returns the number of live cells around (row, col).
func NeighborCount(cells []uint8, n, row, col int) int {
	count := 0
	for y := max(row-1, 0); y <= min(row+1, n-1); y++ {
		for x := max(col-1, 0); x <= min(col+1, n-1); x++ {
			if y == row && x == col {
				continue
			}
			if cells[y*n+x] != 0 {
				count++
			}
		}
	}
	return count
}

// Neighbors returns how many in-grid neighbour positions (row, col) has on an
// n×n board: 3 in a corner, 5 along an edge, 8 inside. A 1×1 board has none.
func Neighbors(row, col, n int) int {
	rows := min(row+1, n-1) - max(row-1, 0) + 1
	cols := min(col+1, n-1) - max(col-1, 0) + 1
	return rows*cols - 1
}

// IsStable reports whether next is identical to prev. A missing previous
// generation is never stable. Only period-1 repetition is detected; an
// oscillator such as a blinker never reports stable.
func IsStable(prev, next []uint8) bool {
	if prev == nil || len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if (prev[i] != 0) != (next[i] != 0) {
			return false
		}
	}
	return true
}
