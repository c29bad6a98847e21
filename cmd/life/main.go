package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/AlxndrStoev/game-of-life/internal/app"
	"github.com/AlxndrStoev/game-of-life/internal/config"
	"github.com/AlxndrStoev/game-of-life/internal/patterns"
	"github.com/AlxndrStoev/game-of-life/internal/playback"
	"github.com/AlxndrStoev/game-of-life/internal/render"
	"github.com/AlxndrStoev/game-of-life/internal/sweep"
	"github.com/AlxndrStoev/game-of-life/internal/tui"
)

const maxPrintedBoard = 80

var (
	configFile string
	preset     string
	size       int
	interval   time.Duration
	seed       int64
	pattern    string
	maxGens    int
	scale      int
	quiet      bool
	// sweep
	sweepSizes []int
	sweepSeeds int
	workers    int
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("life: ")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "life",
		Short:        "Conway's Game of Life on a bounded square grid",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&size, "size", config.DefaultSize, "grid dimension N")
	rootCmd.PersistentFlags().DurationVar(&interval, "interval", playback.DefaultInterval, "auto-play tick period")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	rootCmd.PersistentFlags().StringVar(&pattern, "pattern", "", "seed pattern instead of random cells")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "auto-play headless until the population stabilizes",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&maxGens, "max-gens", config.DefaultMaxGenerations, "stop after this many generations (0 = no limit)")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "skip printing the final board")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctrl, err := playback.New(cfg.Size, playback.WithInterval(cfg.Interval), playback.WithSeed(cfg.Seed))
			if err != nil {
				return err
			}
			if err := ctrl.Seed(cfg.Pattern); err != nil {
				return err
			}
			return tui.Run(ctrl)
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open an ebiten window (build with -tags ebiten)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return app.Run(cfg)
		},
	}
	guiCmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "pixel scale multiplier")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure seeding density and stabilization across sizes and seeds",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntSliceVar(&sweepSizes, "sizes", []int{10, 25, 50, 100}, "grid sizes to sweep")
	sweepCmd.Flags().IntVar(&sweepSeeds, "seeds", 16, "seeds per size")
	sweepCmd.Flags().IntVar(&maxGens, "max-gens", config.DefaultMaxGenerations, "generation limit per run")
	sweepCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "number of worker goroutines")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list seed patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range patterns.Names() {
				p, err := patterns.Lookup(name)
				if err != nil {
					return err
				}
				rows, cols := p.Bounds()
				fmt.Fprintf(w, "%s\t%dx%d\t%s\n", p.Name, rows, cols, p.Description)
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				source := "random"
				if p.Pattern != "" {
					source = p.Pattern
				}
				fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\n", name, p.Size, p.Size, p.Interval, source)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, tuiCmd, guiCmd, sweepCmd, patternsCmd, presetsCmd)
	return rootCmd
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("interval") {
		cfg.Interval = interval
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flags.Changed("max-gens") {
		cfg.MaxGenerations = maxGens
	}
	if flags.Changed("scale") {
		cfg.Display.Scale = scale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, err := playback.New(cfg.Size, playback.WithInterval(cfg.Interval), playback.WithSeed(cfg.Seed))
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		history []float64
	)
	ended := make(chan string, 1)
	limit := make(chan struct{}, 1)
	ctrl.AddObserver(playback.ObserverFuncs{
		OnLiveCells: func(bool) {
			snap := ctrl.Snapshot()
			mu.Lock()
			history = append(history, float64(snap.Population))
			mu.Unlock()
			if cfg.MaxGenerations > 0 && snap.Generation >= cfg.MaxGenerations {
				select {
				case limit <- struct{}{}:
				default:
				}
			}
		},
		OnNotify: func(msg string) {
			select {
			case ended <- msg:
			default:
			}
		},
	})

	if err := ctrl.Seed(cfg.Pattern); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("running %dx%d grid every %s...", cfg.Size, cfg.Size, cfg.Interval)))
	start := time.Now()
	ctrl.Auto()

	reason := ""
	select {
	case msg := <-ended:
		reason = msg
	case <-limit:
		ctrl.Pause()
		reason = fmt.Sprintf("Stopped after %d generations.", cfg.MaxGenerations)
	case <-ctx.Done():
		ctrl.Pause()
		reason = "Interrupted."
	}

	snap := ctrl.Snapshot()
	fmt.Fprintln(out, noticeStyle.Render(reason))
	fmt.Fprintf(out, "generations: %d\n", snap.Generation)
	fmt.Fprintf(out, "population:  %d\n", snap.Population)
	fmt.Fprintf(out, "elapsed:     %v\n", time.Since(start).Round(time.Millisecond))

	if !quiet && snap.Size <= maxPrintedBoard {
		fmt.Fprintln(out)
		fmt.Fprintln(out, render.Text(snap.Cells, snap.Size, '#', '.'))
	}

	mu.Lock()
	series := append([]float64(nil), history...)
	mu.Unlock()
	if len(series) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("population per generation")))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log.Printf("sweeping sizes %v with %d seeds each (%d workers, %d generations max)", sweepSizes, sweepSeeds, workers, cfg.MaxGenerations)
	start := time.Now()
	summaries, err := sweep.Run(ctx, sweep.Options{
		Sizes:          sweepSizes,
		Seeds:          sweepSeeds,
		FirstSeed:      cfg.Seed,
		MaxGenerations: cfg.MaxGenerations,
		Workers:        workers,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{"SIZE", "RUNS", "EXPECTED", "MEASURED", "STABLE", "EXTINCT", "MEAN GENS"}, "\t"))
	for _, s := range summaries {
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.3f\t%.0f%%\t%.0f%%\t%.1f\n",
			s.Size, s.Runs, s.ExpectedDensity, s.MeanDensity, s.StableFraction*100, s.ExtinctFraction*100, s.MeanGenerations)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Printf("sweep finished in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
