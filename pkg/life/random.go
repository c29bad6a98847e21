package life

import (
	"math"

	"github.com/AlxndrStoev/game-of-life/pkg/core"
)

const (
	densityPeak  = 0.6
	densityFloor = 0.12
	densityDecay = 50.0
)

// Density returns the seeding probability for a board of the given size. It
// decays exponentially with size and never drops below 12%.
func Density(size int) float64 {
	return math.Max(densityFloor, densityPeak*math.Exp(-float64(size)/densityDecay))
}

// Randomize overwrites every cell of g, making each one alive with probability
// Density(g.Size()). The previous generation is discarded.
func Randomize(g *Grid, rng *core.RNG) {
	core.FillDensity(rng, g.cur, Density(g.n))
	clear(g.nxt)
	g.prev = nil
	g.gen = 0
}
