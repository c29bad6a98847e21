// Package patterns holds a registry of named seed shapes that can be stamped
// onto a grid.
package patterns

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPattern is returned by Lookup for unregistered names.
var ErrUnknownPattern = errors.New("patterns: unknown pattern")

// Cell is a (row, col) offset relative to the pattern's top-left corner.
type Cell struct {
	Row, Col int
}

// Pattern is a named set of live cells.
type Pattern struct {
	Name        string
	Description string
	Cells       []Cell
}

// Bounds returns the height and width of the pattern's bounding box.
func (p Pattern) Bounds() (rows, cols int) {
	for _, c := range p.Cells {
		rows = max(rows, c.Row+1)
		cols = max(cols, c.Col+1)
	}
	return rows, cols
}

var registry = map[string]Pattern{}

// Register adds a pattern under its name, replacing any previous entry.
func Register(p Pattern) {
	if p.Name == "" || len(p.Cells) == 0 {
		return
	}
	registry[p.Name] = p
}

// Lookup returns the pattern registered under name.
func Lookup(name string) (Pattern, error) {
	p, ok := registry[name]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPattern, name, Names())
	}
	return p, nil
}

// Names lists the registered pattern names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cells(rows ...string) []Cell {
	var out []Cell
	for r, line := range rows {
		for c, ch := range line {
			if ch == 'O' {
				out = append(out, Cell{Row: r, Col: c})
			}
		}
	}
	return out
}

func init() {
	Register(Pattern{Name: "block", Description: "still life", Cells: cells(
		"OO",
		"OO",
	)})
	Register(Pattern{Name: "beehive", Description: "still life", Cells: cells(
		".OO.",
		"O..O",
		".OO.",
	)})
	Register(Pattern{Name: "blinker", Description: "period 2 oscillator", Cells: cells(
		"OOO",
	)})
	Register(Pattern{Name: "toad", Description: "period 2 oscillator", Cells: cells(
		".OOO",
		"OOO.",
	)})
	Register(Pattern{Name: "beacon", Description: "period 2 oscillator", Cells: cells(
		"OO..",
		"OO..",
		"..OO",
		"..OO",
	)})
	Register(Pattern{Name: "glider", Description: "diagonal spaceship", Cells: cells(
		".O.",
		"..O",
		"OOO",
	)})
	Register(Pattern{Name: "lwss", Description: "lightweight spaceship", Cells: cells(
		".O..O",
		"O....",
		"O...O",
		"OOOO.",
	)})
	Register(Pattern{Name: "r-pentomino", Description: "long-lived methuselah", Cells: cells(
		".OO",
		"OO.",
		".O.",
	)})
}
