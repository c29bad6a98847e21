package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AlxndrStoev/game-of-life/internal/patterns"
	"github.com/AlxndrStoev/game-of-life/internal/playback"
)

const (
	DefaultSize           = 40
	DefaultSeed           = 42
	DefaultMaxGenerations = 1000
	DefaultScale          = 12
	DefaultTPS            = 60
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Size           int           `yaml:"size"`
	Interval       time.Duration `yaml:"interval"`
	Seed           int64         `yaml:"seed"`
	Pattern        string        `yaml:"pattern,omitempty"`
	MaxGenerations int           `yaml:"max_generations"`
	Display        DisplayConfig `yaml:"display"`
}

type DisplayConfig struct {
	Scale int `yaml:"scale"`
	TPS   int `yaml:"tps"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:           DefaultSize,
		Interval:       playback.DefaultInterval,
		Seed:           DefaultSeed,
		MaxGenerations: DefaultMaxGenerations,
		Display: DisplayConfig{
			Scale: DefaultScale,
			TPS:   DefaultTPS,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the controller or the front-ends cannot use.
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalid, c.Size)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalid, c.Interval)
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf("%w: max_generations must not be negative, got %d", ErrInvalid, c.MaxGenerations)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("%w: display.scale must be positive, got %d", ErrInvalid, c.Display.Scale)
	}
	if c.Display.TPS <= 0 {
		return fmt.Errorf("%w: display.tps must be positive, got %d", ErrInvalid, c.Display.TPS)
	}
	if c.Pattern != "" {
		p, err := patterns.Lookup(c.Pattern)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		rows, cols := p.Bounds()
		if rows > c.Size || cols > c.Size {
			return fmt.Errorf("%w: pattern %s (%dx%d) does not fit a %dx%d grid", ErrInvalid, p.Name, rows, cols, c.Size, c.Size)
		}
	}
	return nil
}
