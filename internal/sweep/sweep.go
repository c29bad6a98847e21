// Package sweep measures seeding density and time-to-stabilization across
// grid sizes and seeds.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/AlxndrStoev/game-of-life/internal/playback"
	"github.com/AlxndrStoev/game-of-life/pkg/life"
)

// Options configures a sweep.
type Options struct {
	Sizes          []int
	Seeds          int
	FirstSeed      int64
	MaxGenerations int
	Workers        int
}

// Scenario is the outcome of a single randomized run.
type Scenario struct {
	Size         int
	Seed         int64
	Density      float64
	Stabilized   bool
	Extinct      bool
	Generations  int
	FinalAlive   int
	InitialAlive int
}

// Summary aggregates the scenarios for one grid size.
type Summary struct {
	Size            int
	Runs            int
	ExpectedDensity float64
	MeanDensity     float64
	StableFraction  float64
	ExtinctFraction float64
	MeanGenerations float64
}

// Run executes every size×seed scenario concurrently and returns one summary
// per size, ordered by size.
func Run(ctx context.Context, opts Options) ([]Summary, error) {
	if opts.Seeds <= 0 {
		return nil, fmt.Errorf("sweep: seeds must be positive, got %d", opts.Seeds)
	}
	if opts.MaxGenerations <= 0 {
		return nil, fmt.Errorf("sweep: max generations must be positive, got %d", opts.MaxGenerations)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type job struct {
		size int
		seed int64
	}
	var jobs []job
	for _, size := range opts.Sizes {
		if size <= 0 {
			return nil, fmt.Errorf("sweep: %w: %d", life.ErrInvalidSize, size)
		}
		for i := 0; i < opts.Seeds; i++ {
			jobs = append(jobs, job{size: size, seed: opts.FirstSeed + int64(i)})
		}
	}

	results := make([]Scenario, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := RunScenario(ctx, j.size, j.seed, opts.MaxGenerations)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summarize(results), nil
}

// RunScenario randomizes a size×size grid with seed and steps it until it
// stabilizes or maxGenerations is reached.
func RunScenario(ctx context.Context, size int, seed int64, maxGenerations int) (Scenario, error) {
	ctrl, err := playback.New(size, playback.WithSeed(seed))
	if err != nil {
		return Scenario{}, err
	}
	ctrl.Randomize()
	start := ctrl.Snapshot()
	sc := Scenario{
		Size:         size,
		Seed:         seed,
		InitialAlive: start.Population,
		Density:      float64(start.Population) / float64(size*size),
	}
	for gen := 0; gen < maxGenerations; gen++ {
		if gen%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Scenario{}, err
			}
		}
		res := ctrl.Next()
		sc.Generations = res.Generation
		sc.FinalAlive = res.Population
		if res.Stable {
			sc.Stabilized = true
			break
		}
	}
	sc.Extinct = sc.FinalAlive == 0
	return sc, nil
}

func summarize(results []Scenario) []Summary {
	bySize := map[int]*Summary{}
	stableGens := map[int]int{}
	for _, r := range results {
		s, ok := bySize[r.Size]
		if !ok {
			s = &Summary{Size: r.Size, ExpectedDensity: life.Density(r.Size)}
			bySize[r.Size] = s
		}
		s.Runs++
		s.MeanDensity += r.Density
		if r.Stabilized {
			s.StableFraction++
			s.MeanGenerations += float64(r.Generations)
			stableGens[r.Size]++
		}
		if r.Extinct {
			s.ExtinctFraction++
		}
	}
	out := make([]Summary, 0, len(bySize))
	for size, s := range bySize {
		n := float64(s.Runs)
		s.MeanDensity /= n
		s.StableFraction /= n
		s.ExtinctFraction /= n
		if c := stableGens[size]; c > 0 {
			s.MeanGenerations /= float64(c)
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	return out
}
