package playback_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AlxndrStoev/game-of-life/internal/core"
	"github.com/AlxndrStoev/game-of-life/internal/patterns"
	"github.com/AlxndrStoev/game-of-life/internal/playback"
	"github.com/AlxndrStoev/game-of-life/pkg/life"
)

type recorder struct {
	mu       sync.Mutex
	evolving []bool
	live     []bool
	notes    []string
}

func (r *recorder) Evolving(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evolving = append(r.evolving, on)
}

func (r *recorder) LiveCells(alive bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live = append(r.live, alive)
}

func (r *recorder) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, message)
}

func (r *recorder) Evolvings() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.evolving...)
}

func (r *recorder) Lives() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.live...)
}

func (r *recorder) Notes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notes...)
}

// manualTicker hands the scheduled callback to the test instead of running it.
type manualTicker struct {
	fn       func()
	starts   int
	cancels  int
	interval time.Duration
}

func (m *manualTicker) Start(interval time.Duration, fn func()) {
	m.fn = fn
	m.interval = interval
	m.starts++
}

func (m *manualTicker) Cancel() { m.cancels++ }

func toggleAll(c *playback.Controller, cells ...[2]int) {
	for _, rc := range cells {
		Expect(c.Toggle(rc[0], rc[1])).To(Succeed())
	}
}

var block = [][2]int{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
var blinker = [][2]int{{1, 2}, {2, 2}, {3, 2}}

var _ = Describe("Controller", func() {
	var (
		rec  *recorder
		fs   *core.FixedStep
		ctrl *playback.Controller
		t0   time.Time
	)

	tickAt := func(n int) int {
		return fs.Advance(t0.Add(time.Duration(n) * playback.DefaultInterval))
	}

	BeforeEach(func() {
		rec = &recorder{}
		fs = core.NewFixedStep(playback.DefaultInterval)
		t0 = time.Unix(1000, 0)
		var err error
		ctrl, err = playback.New(6, playback.WithTicker(fs), playback.WithSeed(7), playback.WithObserver(rec))
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects non-positive sizes", func() {
		_, err := playback.New(0)
		Expect(err).To(MatchError(life.ErrInvalidSize))
		Expect(ctrl.Resize(-3)).To(MatchError(life.ErrInvalidSize))
		Expect(ctrl.Size()).To(Equal(6))
	})

	Describe("Next", func() {
		It("kills an isolated interior cell on a 5x5 grid", func() {
			Expect(ctrl.Resize(5)).To(Succeed())
			Expect(ctrl.Toggle(2, 2)).To(Succeed())

			res := ctrl.Next()

			Expect(res.Changed).To(BeTrue())
			Expect(ctrl.HasLiveCells()).To(BeFalse())
			Expect(rec.Lives()).To(HaveLen(3))
			Expect(rec.Lives()[2]).To(BeFalse())
			Expect(rec.Evolvings()).To(Equal([]bool{true, false}))
			Expect(ctrl.State()).To(Equal(playback.Idle))
		})

		It("reports stability without stopping or notifying", func() {
			toggleAll(ctrl, block...)

			Expect(ctrl.Next().Stable).To(BeFalse())
			Expect(ctrl.Next().Stable).To(BeTrue())
			Expect(ctrl.Snapshot().Stable).To(BeTrue())
			Expect(rec.Notes()).To(BeEmpty())
			Expect(ctrl.State()).To(Equal(playback.Idle))
		})

		It("leaves an all-dead grid unchanged", func() {
			res := ctrl.Next()
			Expect(res.Changed).To(BeFalse())
			Expect(rec.Lives()).To(Equal([]bool{false}))
		})
	})

	Describe("Auto", func() {
		It("leaves the grid untouched when paused before the first tick", func() {
			toggleAll(ctrl, blinker...)
			before := ctrl.Snapshot()

			ctrl.Auto()
			Expect(ctrl.State()).To(Equal(playback.AutoPlaying))
			tickAt(0)
			ctrl.Pause()

			Expect(tickAt(40)).To(Equal(0))
			Expect(ctrl.Snapshot().Cells).To(Equal(before.Cells))
			Expect(ctrl.Snapshot().Generation).To(Equal(0))
			Expect(rec.Notes()).To(BeEmpty())
			Expect(rec.Evolvings()).To(Equal([]bool{true, false}))
			Expect(ctrl.State()).To(Equal(playback.Idle))
		})

		It("stops on a still life and notifies exactly once", func() {
			toggleAll(ctrl, block...)
			ctrl.Auto()
			tickAt(0)

			Expect(tickAt(1)).To(Equal(1))
			Expect(rec.Notes()).To(BeEmpty())

			Expect(tickAt(2)).To(Equal(1))
			Expect(rec.Notes()).To(Equal([]string{playback.EndedMessage}))
			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(rec.Evolvings()).To(Equal([]bool{true, false}))

			Expect(tickAt(50)).To(Equal(0))
			Expect(ctrl.Snapshot().Generation).To(Equal(2))
			Expect(rec.Notes()).To(HaveLen(1))
		})

		It("stops mid-burst when the stable tick arrives", func() {
			ctrl.Auto()
			tickAt(0)
			Expect(tickAt(30)).To(Equal(2))
			Expect(rec.Notes()).To(HaveLen(1))
		})

		It("keeps running on a period-2 oscillator", func() {
			toggleAll(ctrl, blinker...)
			ctrl.Auto()
			tickAt(0)

			Expect(tickAt(20)).To(Equal(20))
			Expect(rec.Notes()).To(BeEmpty())
			Expect(ctrl.State()).To(Equal(playback.AutoPlaying))
			Expect(ctrl.Snapshot().Generation).To(Equal(20))
		})

		It("is a no-op while already playing", func() {
			ctrl.Auto()
			ctrl.Auto()
			Expect(rec.Evolvings()).To(Equal([]bool{true}))
		})

		It("stops playback on Reset", func() {
			toggleAll(ctrl, blinker...)
			ctrl.Auto()
			tickAt(0)
			tickAt(3)

			ctrl.Reset()

			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(ctrl.HasLiveCells()).To(BeFalse())
			Expect(tickAt(10)).To(Equal(0))
			Expect(rec.Lives()[len(rec.Lives())-1]).To(BeFalse())
			Expect(ctrl.Snapshot().Generation).To(Equal(0))
		})

		It("restarts the ticker when the interval changes", func() {
			toggleAll(ctrl, blinker...)
			ctrl.Auto()
			ctrl.SetInterval(time.Second)
			Expect(ctrl.Interval()).To(Equal(time.Second))

			fs.Advance(t0)
			Expect(fs.Advance(t0.Add(500 * time.Millisecond))).To(Equal(0))
			Expect(fs.Advance(t0.Add(time.Second))).To(Equal(1))
		})
	})

	Describe("stale ticks", func() {
		It("ignores a tick delivered after Pause", func() {
			mt := &manualTicker{}
			c, err := playback.New(6, playback.WithTicker(mt))
			Expect(err).NotTo(HaveOccurred())
			toggleAll(c, blinker...)

			c.Auto()
			Expect(mt.interval).To(Equal(playback.DefaultInterval))
			stale := mt.fn
			c.Pause()
			stale()

			Expect(c.Snapshot().Generation).To(Equal(0))
			Expect(mt.cancels).To(Equal(1))
		})

		It("ignores a tick from an earlier run", func() {
			mt := &manualTicker{}
			c, err := playback.New(6, playback.WithTicker(mt))
			Expect(err).NotTo(HaveOccurred())
			toggleAll(c, blinker...)

			c.Auto()
			stale := mt.fn
			c.Pause()
			c.Auto()
			stale()
			Expect(c.Snapshot().Generation).To(Equal(0))

			mt.fn()
			Expect(c.Snapshot().Generation).To(Equal(1))
			Expect(mt.starts).To(Equal(2))
		})
	})

	Describe("mutations", func() {
		It("rejects out-of-range toggles without emitting", func() {
			err := ctrl.Toggle(6, 0)
			Expect(err).To(MatchError(life.ErrInvalidCoordinate))
			Expect(ctrl.Toggle(-1, 2)).To(MatchError(life.ErrInvalidCoordinate))
			Expect(rec.Lives()).To(BeEmpty())
		})

		It("emits hasLiveCells on toggle", func() {
			Expect(ctrl.Toggle(0, 0)).To(Succeed())
			Expect(ctrl.Toggle(0, 0)).To(Succeed())
			Expect(rec.Lives()).To(Equal([]bool{true, false}))
		})

		It("randomizes deterministically for a seed", func() {
			other, err := playback.New(6, playback.WithSeed(7))
			Expect(err).NotTo(HaveOccurred())

			ctrl.Randomize()
			other.Randomize()

			Expect(ctrl.Snapshot().Cells).To(Equal(other.Snapshot().Cells))
			Expect(rec.Lives()).To(HaveLen(1))
			Expect(rec.Lives()[0]).To(Equal(ctrl.HasLiveCells()))
		})

		It("clears stability history on Randomize", func() {
			toggleAll(ctrl, block...)
			ctrl.Next()
			ctrl.Next()
			Expect(ctrl.Snapshot().Stable).To(BeTrue())

			ctrl.Randomize()
			Expect(ctrl.Snapshot().Stable).To(BeFalse())
			Expect(ctrl.Snapshot().Generation).To(Equal(0))
		})

		It("resizes to an empty grid", func() {
			toggleAll(ctrl, block...)
			Expect(ctrl.Resize(9)).To(Succeed())
			snap := ctrl.Snapshot()
			Expect(snap.Size).To(Equal(9))
			Expect(snap.Cells).To(HaveLen(81))
			Expect(snap.Population).To(BeZero())
		})
	})

	Describe("Load", func() {
		It("centres a pattern", func() {
			Expect(ctrl.Resize(10)).To(Succeed())
			Expect(ctrl.Load("block")).To(Succeed())
			snap := ctrl.Snapshot()
			Expect(snap.Population).To(Equal(4))
			Expect(snap.Alive(4, 4)).To(BeTrue())
			Expect(snap.Alive(5, 5)).To(BeTrue())
		})

		It("rejects unknown and oversized patterns", func() {
			Expect(ctrl.Load("nope")).To(MatchError(patterns.ErrUnknownPattern))
			Expect(ctrl.Resize(3)).To(Succeed())
			Expect(ctrl.Load("lwss")).To(MatchError(playback.ErrPatternTooLarge))
		})
	})

	It("exposes its parameters", func() {
		toggleAll(ctrl, block...)
		ctrl.Next()
		params := ctrl.Parameters()

		gen, ok := params.Lookup("generation")
		Expect(ok).To(BeTrue())
		Expect(gen.Value).To(Equal("1"))

		alive, ok := params.Lookup("alive")
		Expect(ok).To(BeTrue())
		Expect(alive.Value).To(Equal("4"))

		state, _ := params.Lookup("state")
		Expect(state.Value).To(Equal("idle"))
	})
})

var _ = Describe("Controller with a goroutine ticker", func() {
	It("stops on a still life and notifies", func() {
		notes := make(chan string, 4)
		ctrl, err := playback.New(8,
			playback.WithInterval(time.Millisecond),
			playback.WithObserver(playback.ObserverFuncs{OnNotify: func(m string) { notes <- m }}),
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(ctrl.Load("beehive")).To(Succeed())

		ctrl.Auto()

		Eventually(notes, 2*time.Second).Should(Receive(Equal(playback.EndedMessage)))
		Eventually(ctrl.State).Should(Equal(playback.Idle))
		Consistently(notes, 50*time.Millisecond).ShouldNot(Receive())
		Expect(ctrl.Snapshot().Generation).To(Equal(2))
	})

	It("delivers no further steps after Pause", func() {
		ctrl, err := playback.New(8, playback.WithInterval(time.Millisecond))
		Expect(err).NotTo(HaveOccurred())
		Expect(ctrl.Load("blinker")).To(Succeed())

		ctrl.Auto()
		Eventually(func() int { return ctrl.Snapshot().Generation }, 2*time.Second).Should(BeNumerically(">=", 3))
		ctrl.Pause()

		gen := ctrl.Snapshot().Generation
		Consistently(func() int { return ctrl.Snapshot().Generation }, 50*time.Millisecond).Should(Equal(gen))
	})
})
