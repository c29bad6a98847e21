package life

import "fmt"

// Grid holds a square Game of Life board. The live generation and the scratch
// buffer are swapped after every step so a step never reads cells it has
// already written.
type Grid struct {
	n    int
	cur  []uint8
	nxt  []uint8
	prev []uint8
	gen  int
}

// StepResult describes the outcome of a single evolution step.
type StepResult struct {
	// Changed is true when the new generation differs from the one it was
	// computed from.
	Changed bool
	// Stable is true when the new generation equals the generation produced
	// by the previous step.
	Stable     bool
	Population int
	Generation int
}

// NewGrid allocates an all-dead size×size grid.
func NewGrid(size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	cells := make([]uint8, size*size)
	return &Grid{n: size, cur: cells, nxt: make([]uint8, len(cells))}, nil
}

// Size returns the grid dimension N.
func (g *Grid) Size() int { return g.n }

// Cells exposes the current generation in row-major order. Callers must not
// write to it; use Set or Toggle instead.
func (g *Grid) Cells() []uint8 { return g.cur }

// Previous returns the generation produced by the last step, or nil before the
// first step and after Reset or Randomize.
func (g *Grid) Previous() []uint8 { return g.prev }

// Generation returns the number of steps taken since the last Reset or
// Randomize.
func (g *Grid) Generation() int { return g.gen }

// Reset kills every cell in both buffers and forgets the previous generation.
func (g *Grid) Reset() {
	clear(g.cur)
	clear(g.nxt)
	g.prev = nil
	g.gen = 0
}

func (g *Grid) index(row, col int) (int, error) {
	if row < 0 || row >= g.n || col < 0 || col >= g.n {
		return 0, fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrInvalidCoordinate, row, col, g.n, g.n)
	}
	return row*g.n + col, nil
}

// Toggle flips the cell at (row, col). Out-of-range coordinates leave the grid
// untouched and return ErrInvalidCoordinate.
func (g *Grid) Toggle(row, col int) error {
	idx, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.cur[idx] ^= 1
	return nil
}

// Set forces the cell at (row, col) to the given state.
func (g *Grid) Set(row, col int, alive bool) error {
	idx, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.cur[idx] = 0
	if alive {
		g.cur[idx] = 1
	}
	return nil
}

// Alive reports whether the cell at (row, col) is alive. Off-grid positions
// are dead.
func (g *Grid) Alive(row, col int) bool {
	idx, err := g.index(row, col)
	if err != nil {
		return false
	}
	return g.cur[idx] != 0
}

// HasLiveCell reports whether at least one cell is alive.
func (g *Grid) HasLiveCell() bool {
	for _, c := range g.cur {
		if c != 0 {
			return true
		}
	}
	return false
}

// Population counts the live cells.
func (g *Grid) Population() int {
	total := 0
	for _, c := range g.cur {
		if c != 0 {
			total++
		}
	}
	return total
}

// Evolve advances the grid by one generation and records the result as the
// previous generation for the next stability check.
func (g *Grid) Evolve() StepResult {
	changed := Step(g.cur, g.nxt, g.n)
	stable := IsStable(g.prev, g.nxt)
	if g.prev == nil {
		g.prev = make([]uint8, len(g.nxt))
	}
	copy(g.prev, g.nxt)
	g.cur, g.nxt = g.nxt, g.cur
	g.gen++
	return StepResult{
		Changed:    changed,
		Stable:     stable,
		Population: g.Population(),
		Generation: g.gen,
	}
}

// Clone returns a deep copy of the grid, including its stability history.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		n:   g.n,
		cur: append([]uint8(nil), g.cur...),
		nxt: make([]uint8, len(g.nxt)),
		gen: g.gen,
	}
	if g.prev != nil {
		c.prev = append([]uint8(nil), g.prev...)
	}
	return c
}
