package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/AlxndrStoev/game-of-life/pkg/life"
)

func TestRunSummarizesPerSize(t *testing.T) {
	summaries, err := Run(context.Background(), Options{
		Sizes:          []int{40, 8},
		Seeds:          6,
		FirstSeed:      1,
		MaxGenerations: 300,
		Workers:        3,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Size != 8 || summaries[1].Size != 40 {
		t.Fatalf("summaries not ordered by size: %+v", summaries)
	}
	for _, s := range summaries {
		if s.Runs != 6 {
			t.Errorf("size %d: expected 6 runs, got %d", s.Size, s.Runs)
		}
		if s.ExpectedDensity != life.Density(s.Size) {
			t.Errorf("size %d: expected density %f, got %f", s.Size, life.Density(s.Size), s.ExpectedDensity)
		}
		if s.StableFraction < 0 || s.StableFraction > 1 {
			t.Errorf("size %d: stable fraction %f out of range", s.Size, s.StableFraction)
		}
	}
	if math.Abs(summaries[1].MeanDensity-life.Density(40)) > 0.08 {
		t.Errorf("mean density %f far from %f", summaries[1].MeanDensity, life.Density(40))
	}
}

func TestRunIsDeterministic(t *testing.T) {
	opts := Options{Sizes: []int{12}, Seeds: 4, FirstSeed: 10, MaxGenerations: 100, Workers: 2}
	a, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if a[0] != b[0] {
		t.Fatalf("sweeps differ: %+v vs %+v", a[0], b[0])
	}
}

func TestRunInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no seeds", Options{Sizes: []int{10}, Seeds: 0, MaxGenerations: 10}},
		{"no generations", Options{Sizes: []int{10}, Seeds: 1, MaxGenerations: 0}},
		{"bad size", Options{Sizes: []int{0}, Seeds: 1, MaxGenerations: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.opts); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Sizes: []int{10}, Seeds: 2, MaxGenerations: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunScenarioDeadBoardStabilizes(t *testing.T) {
	// A 1x1 board is seeded at about 60% density; either way the single
	// cell is dead after one step and the board is stable on the second.
	sc, err := RunScenario(context.Background(), 1, 3, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !sc.Stabilized || !sc.Extinct {
		t.Fatalf("expected extinct stable board, got %+v", sc)
	}
	if sc.Generations != 2 {
		t.Fatalf("expected 2 generations, got %d", sc.Generations)
	}
}
