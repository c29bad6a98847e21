// Package playback drives a Game of Life grid one generation at a time or
// continuously on a timer, and stops auto-play once the population settles.
package playback

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/AlxndrStoev/game-of-life/internal/core"
	"github.com/AlxndrStoev/game-of-life/internal/patterns"
	pcore "github.com/AlxndrStoev/game-of-life/pkg/core"
	"github.com/AlxndrStoev/game-of-life/pkg/life"
)

const (
	// DefaultInterval is the auto-play tick period.
	DefaultInterval = 125 * time.Millisecond

	// EndedMessage is sent to observers when auto-play stops on a stable
	// generation.
	EndedMessage = "The evolution came to an end."
)

// ErrPatternTooLarge is returned by Load when a pattern does not fit the grid.
var ErrPatternTooLarge = errors.New("playback: pattern does not fit the grid")

// State is the playback mode of a Controller.
type State int

const (
	Idle State = iota
	Stepping
	AutoPlaying
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stepping:
		return "stepping"
	case AutoPlaying:
		return "auto-playing"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the controller's observable state.
type Snapshot struct {
	Size       int
	Cells      []uint8
	Generation int
	Population int
	State      State
	Stable     bool
}

// Alive reports whether the cell at (row, col) was alive in the snapshot.
func (s Snapshot) Alive(row, col int) bool {
	if row < 0 || row >= s.Size || col < 0 || col >= s.Size {
		return false
	}
	return s.Cells[row*s.Size+col] != 0
}

// Option configures a Controller.
type Option func(*Controller)

// WithTicker replaces the default goroutine-based ticker, e.g. with a
// core.FixedStep pumped from a render loop.
func WithTicker(t core.Ticker) Option {
	return func(c *Controller) { c.ticker = t }
}

// WithInterval sets the auto-play tick period.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithSeed makes Randomize deterministic.
func WithSeed(seed int64) Option {
	return func(c *Controller) { c.rng = pcore.NewRNG(seed) }
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// Controller owns a grid and serializes every mutation of it. Each call to
// Auto opens a new playback epoch; ticks from an older epoch, or ticks that
// arrive after Pause, are ignored.
type Controller struct {
	mu        sync.Mutex
	grid      *life.Grid
	rng       *pcore.RNG
	ticker    core.Ticker
	interval  time.Duration
	state     State
	epoch     uint64
	stable    bool
	observers []Observer
}

// New creates a controller for a size×size grid.
func New(size int, opts ...Option) (*Controller, error) {
	grid, err := life.NewGrid(size)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		grid:     grid,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ticker == nil {
		c.ticker = core.NewRepeater()
	}
	if c.rng == nil {
		c.rng = pcore.NewRNG(time.Now().UnixNano())
	}
	return c, nil
}

// AddObserver registers o for all future signals.
func (c *Controller) AddObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

func (c *Controller) unlockAndDeliver(out signals) {
	observers := c.observers
	c.mu.Unlock()
	out.deliver(observers)
}

// Next performs exactly one evolution step. It never stops playback or sends
// EndedMessage, even when the new generation is stable.
func (c *Controller) Next() life.StepResult {
	c.mu.Lock()
	var out signals
	prior := c.state
	pulse := prior != AutoPlaying
	if pulse {
		c.state = Stepping
		out.evolving(true)
	}
	res := c.grid.Evolve()
	c.stable = res.Stable
	out.liveCells(res.Population > 0)
	if pulse {
		out.evolving(false)
	}
	c.state = prior
	c.unlockAndDeliver(out)
	return res
}

// Auto starts continuous playback. It is a no-op while already auto-playing.
func (c *Controller) Auto() {
	c.mu.Lock()
	if c.state == AutoPlaying {
		c.mu.Unlock()
		return
	}
	var out signals
	c.state = AutoPlaying
	c.startTicker()
	out.evolving(true)
	c.unlockAndDeliver(out)
}

// startTicker must be called with c.mu held.
func (c *Controller) startTicker() {
	c.epoch++
	epoch := c.epoch
	c.ticker.Start(c.interval, func() { c.tick(epoch) })
}

func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	if c.state != AutoPlaying || c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	var out signals
	res := c.grid.Evolve()
	c.stable = res.Stable
	out.liveCells(res.Population > 0)
	if res.Stable {
		c.stopLocked(&out)
		out.notify(EndedMessage)
	}
	c.unlockAndDeliver(out)
}

// stopLocked cancels the ticker and returns to Idle. c.mu must be held.
func (c *Controller) stopLocked(out *signals) {
	c.ticker.Cancel()
	c.epoch++
	if c.state == AutoPlaying {
		out.evolving(false)
	}
	c.state = Idle
}

// Pause stops auto-play. No step is taken.
func (c *Controller) Pause() {
	c.mu.Lock()
	var out signals
	c.stopLocked(&out)
	c.unlockAndDeliver(out)
}

// Reset stops playback and kills every cell.
func (c *Controller) Reset() {
	c.mu.Lock()
	var out signals
	c.stopLocked(&out)
	c.grid.Reset()
	c.stable = false
	out.liveCells(false)
	c.unlockAndDeliver(out)
}

// Resize replaces the grid with an empty size×size one. Playback stops.
func (c *Controller) Resize(size int) error {
	grid, err := life.NewGrid(size)
	if err != nil {
		return err
	}
	c.mu.Lock()
	var out signals
	c.stopLocked(&out)
	c.grid = grid
	c.stable = false
	out.liveCells(false)
	c.unlockAndDeliver(out)
	return nil
}

// Randomize reseeds the grid at the size-dependent density.
func (c *Controller) Randomize() {
	c.mu.Lock()
	var out signals
	life.Randomize(c.grid, c.rng)
	c.stable = false
	out.liveCells(c.grid.HasLiveCell())
	c.unlockAndDeliver(out)
}

// Toggle flips one cell. Out-of-range coordinates return an error wrapping
// life.ErrInvalidCoordinate and emit nothing.
func (c *Controller) Toggle(row, col int) error {
	c.mu.Lock()
	if err := c.grid.Toggle(row, col); err != nil {
		c.mu.Unlock()
		return err
	}
	var out signals
	out.liveCells(c.grid.HasLiveCell())
	c.unlockAndDeliver(out)
	return nil
}

// Load clears the grid and stamps the named pattern at its centre.
func (c *Controller) Load(name string) error {
	p, err := patterns.Lookup(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	n := c.grid.Size()
	rows, cols := p.Bounds()
	if rows > n || cols > n {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s is %dx%d, grid is %dx%d", ErrPatternTooLarge, p.Name, rows, cols, n, n)
	}
	c.grid.Reset()
	c.stable = false
	top, left := (n-rows)/2, (n-cols)/2
	for _, cell := range p.Cells {
		// Bounds were checked above.
		_ = c.grid.Set(top+cell.Row, left+cell.Col, true)
	}
	var out signals
	out.liveCells(c.grid.HasLiveCell())
	c.unlockAndDeliver(out)
	return nil
}

// Seed loads the named pattern, or randomizes the grid when name is empty.
func (c *Controller) Seed(name string) error {
	if name == "" {
		c.Randomize()
		return nil
	}
	return c.Load(name)
}

// SetInterval changes the auto-play period, restarting the ticker if playback
// is running.
func (c *Controller) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = d
	if c.state == AutoPlaying {
		c.startTicker()
	}
}

// Interval returns the auto-play period.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Size returns the grid dimension.
func (c *Controller) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Size()
}

// HasLiveCells reports whether any cell is alive.
func (c *Controller) HasLiveCells() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.HasLiveCell()
}

// Snapshot copies the current grid and playback state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Size:       c.grid.Size(),
		Cells:      append([]uint8(nil), c.grid.Cells()...),
		Generation: c.grid.Generation(),
		Population: c.grid.Population(),
		State:      c.state,
		Stable:     c.stable,
	}
}

// Parameters describes the controller for status panels.
func (c *Controller) Parameters() core.ParameterSnapshot {
	snap := c.Snapshot()
	interval := c.Interval()
	total := snap.Size * snap.Size
	density := 0.0
	if total > 0 {
		density = float64(snap.Population) / float64(total)
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Playback",
			Params: []core.Parameter{
				{Key: "state", Label: "State", Value: snap.State.String()},
				{Key: "generation", Label: "Generation", Value: strconv.Itoa(snap.Generation)},
				{Key: "interval", Label: "Interval", Value: interval.String()},
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				{Key: "size", Label: "Grid", Value: fmt.Sprintf("%dx%d", snap.Size, snap.Size)},
				{Key: "alive", Label: "Alive", Value: strconv.Itoa(snap.Population)},
				{Key: "density", Label: "Density", Value: strconv.FormatFloat(density*100, 'f', 1, 64) + "%"},
				{Key: "stable", Label: "Stable", Value: strconv.FormatBool(snap.Stable)},
			},
		},
	}}
}
