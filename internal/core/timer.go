package core

import (
	"sync"
	"time"
)

// Ticker repeatedly invokes a callback at a fixed interval until cancelled.
// Cancel may be called from inside the callback.
type Ticker interface {
	Start(interval time.Duration, fn func())
	Cancel()
}

// FixedStep runs a callback at a steady rate from a caller-driven loop, such
// as a game's Update method. All ticks happen synchronously inside Poll or
// Advance, so once Cancel returns no further callback is delivered.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	fn          func()
	active      bool
}

// NewFixedStep constructs an idle FixedStep with the given default interval.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{}
	fs.SetInterval(interval)
	return fs
}

// SetInterval changes the tick period. Non-positive values are ignored.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	f.step = interval
}

// Start arms the ticker. The first tick fires one full interval after the
// first Poll or Advance call that follows.
func (f *FixedStep) Start(interval time.Duration, fn func()) {
	f.SetInterval(interval)
	f.fn = fn
	f.active = fn != nil && f.step > 0
	f.accumulator = 0
	f.last = time.Time{}
}

// Cancel disarms the ticker.
func (f *FixedStep) Cancel() {
	f.active = false
	f.fn = nil
}

// Active reports whether the ticker is armed.
func (f *FixedStep) Active() bool { return f.active }

// Poll advances the ticker to the current wall-clock time.
func (f *FixedStep) Poll() int { return f.Advance(time.Now()) }

// Advance accumulates the time elapsed since the previous call and fires the
// callback once per whole interval. It returns the number of ticks delivered.
func (f *FixedStep) Advance(now time.Time) int {
	if !f.active {
		return 0
	}
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	if delta > 0 {
		f.accumulator += delta
	}
	ticks := 0
	for f.active && f.accumulator >= f.step {
		f.accumulator -= f.step
		f.fn()
		ticks++
	}
	return ticks
}

// Repeater runs a callback on its own goroutine driven by a time.Ticker.
// A tick already in flight when Cancel is called may still run, so callers
// that need a hard stop should re-check their own state inside fn.
type Repeater struct {
	mu   sync.Mutex
	stop chan struct{}
}

// NewRepeater returns an idle Repeater.
func NewRepeater() *Repeater { return &Repeater{} }

// Start cancels any running schedule and begins a new one.
func (r *Repeater) Start(interval time.Duration, fn func()) {
	if interval <= 0 || fn == nil {
		return
	}
	r.mu.Lock()
	if r.stop != nil {
		close(r.stop)
	}
	stop := make(chan struct{})
	r.stop = stop
	r.mu.Unlock()

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()
}

// Cancel stops the current schedule, if any.
func (r *Repeater) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
}
