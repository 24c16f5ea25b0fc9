// Package wave holds the fixed enemy wave table and the director that walks it.
package wave

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/vendetta/internal/game/npc"
)

// Spawn places one enemy. X is absolute; YFrac is a fraction of the arena height.
type Spawn struct {
	X     float64 `yaml:"x"`
	YFrac float64 `yaml:"y_frac"`
	Type  string  `yaml:"type"`
}

// Definition is one ordered group of spawns.
type Definition struct {
	Name   string  `yaml:"name"`
	Spawns []Spawn `yaml:"spawns"`
}

// Validate checks that d has at least one spawn and every spawn names a type
// and lies within the arena's vertical span.
func (d *Definition) Validate() error {
	if len(d.Spawns) == 0 {
		return fmt.Errorf("wave %q: must have at least one spawn", d.Name)
	}
	for i, s := range d.Spawns {
		if s.Type == "" {
			return fmt.Errorf("wave %q spawn %d: type must not be empty", d.Name, i)
		}
		if s.YFrac < 0 || s.YFrac > 1 {
			return fmt.Errorf("wave %q spawn %d: y_frac must be in [0, 1]", d.Name, i)
		}
	}
	return nil
}

// Director holds the immutable wave sequence.
//
// Invariant: len(waves) >= 1.
type Director struct {
	waves []*Definition
}

// NewDirector creates a Director over waves.
//
// Postcondition: Returns an error if waves is empty or any wave fails Validate.
func NewDirector(waves []*Definition) (*Director, error) {
	if len(waves) == 0 {
		return nil, fmt.Errorf("wave table must contain at least one wave")
	}
	for _, w := range waves {
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}
	cp := make([]*Definition, len(waves))
	copy(cp, waves)
	return &Director{waves: cp}, nil
}

// Len returns the number of configured waves.
func (d *Director) Len() int { return len(d.waves) }

// Wave returns the definition at index, sticking at the final wave for any
// index past the end. Negative indices return the first wave.
func (d *Director) Wave(index int) *Definition {
	switch {
	case index < 0:
		return d.waves[0]
	case index >= len(d.waves):
		return d.waves[len(d.waves)-1]
	default:
		return d.waves[index]
	}
}

// Advance returns current+1 and the definition for that index. Past the end
// of the table the final wave's definition is returned again; the index keeps counting.
//
// Postcondition: Pure; the same input always yields the same *Definition.
func (d *Director) Advance(current int) (int, *Definition) {
	next := current + 1
	return next, d.Wave(next)
}

type table struct {
	Waves []*Definition `yaml:"waves"`
}

// LoadFromBytes parses a wave table from YAML.
//
// Postcondition: Returns the validated waves in file order, or an error.
func LoadFromBytes(data []byte) ([]*Definition, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing wave table YAML: %w", err)
	}
	if len(t.Waves) == 0 {
		return nil, fmt.Errorf("wave table must contain at least one wave")
	}
	for _, w := range t.Waves {
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}
	return t.Waves, nil
}

// LoadFile reads a wave table from path.
func LoadFile(path string) ([]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading wave table %q: %w", path, err)
	}
	waves, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return waves, nil
}

// DefaultWaves returns the canonical three-wave table.
func DefaultWaves() []*Definition {
	return []*Definition{
		{Name: "opening", Spawns: []Spawn{
			{X: 400, YFrac: 0.62, Type: npc.TypeTracksuitGoon},
			{X: 550, YFrac: 0.65, Type: npc.TypeTracksuitGoon},
			{X: 700, YFrac: 0.60, Type: npc.TypeTracksuitGoon},
		}},
		{Name: "crowd", Spawns: []Spawn{
			{X: 350, YFrac: 0.60, Type: npc.TypeTracksuitGoon},
			{X: 500, YFrac: 0.65, Type: npc.TypeTracksuitGoon},
			{X: 650, YFrac: 0.62, Type: npc.TypeTracksuitGoon},
			{X: 800, YFrac: 0.61, Type: npc.TypeTracksuitGoon},
		}},
		{Name: "boss", Spawns: []Spawn{
			{X: 300, YFrac: 0.62, Type: npc.TypeTracksuitGoon},
			{X: 500, YFrac: 0.60, Type: npc.TypeTracksuitGoon},
			{X: 700, YFrac: 0.65, Type: npc.TypeMiniBoss},
			{X: 900, YFrac: 0.62, Type: npc.TypeTracksuitGoon},
		}},
	}
}
