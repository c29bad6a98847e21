package config

import (
	"sort"
	"time"
)

var Presets = map[string]*Config{
	"small": {
		Size: 20, Interval: 125 * time.Millisecond, Seed: DefaultSeed, MaxGenerations: 500,
		Display: DisplayConfig{Scale: 20, TPS: DefaultTPS},
	},
	"medium": {
		Size: 50, Interval: 125 * time.Millisecond, Seed: DefaultSeed, MaxGenerations: 1000,
		Display: DisplayConfig{Scale: 12, TPS: DefaultTPS},
	},
	"large": {
		Size: 100, Interval: 60 * time.Millisecond, Seed: DefaultSeed, MaxGenerations: 2000,
		Display: DisplayConfig{Scale: 6, TPS: DefaultTPS},
	},
	"glider": {
		Size: 16, Interval: 125 * time.Millisecond, Seed: DefaultSeed, Pattern: "glider", MaxGenerations: 200,
		Display: DisplayConfig{Scale: 24, TPS: DefaultTPS},
	},
	"methuselah": {
		Size: 64, Interval: 40 * time.Millisecond, Seed: DefaultSeed, Pattern: "r-pentomino", MaxGenerations: 1500,
		Display: DisplayConfig{Scale: 8, TPS: DefaultTPS},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
