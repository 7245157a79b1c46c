// types.go
package dataset

import (
	"errors"
	"fmt"

	"github.com/xtding233/matchup-backend/internal/pokemon"
)

var ErrDatasetNotFound = errors.New("no trainer sets loaded for generation")

// Preset is one named set as declared in a generation's set file.
// Every attribute is optional.
type Preset struct {
	Level   *int                  `yaml:"level,omitempty" json:"level,omitempty"`
	Ability string                `yaml:"ability,omitempty" json:"ability,omitempty"`
	Item    string                `yaml:"item,omitempty" json:"item,omitempty"`
	Nature  string                `yaml:"nature,omitempty" json:"nature,omitempty"`
	IVs     *pokemon.PartialStats `yaml:"ivs,omitempty" json:"ivs,omitempty"`
	EVs     *pokemon.PartialStats `yaml:"evs,omitempty" json:"evs,omitempty"`
	Moves   []string              `yaml:"moves,omitempty" json:"moves,omitempty"`
	Trainer string                `yaml:"trainer,omitempty" json:"trainer,omitempty"` // free-text label
}

// NamedPreset pairs a preset with its set name.
type NamedPreset struct {
	Name   string `json:"name"`
	Preset Preset `json:"preset"`
}

// Collection holds every preset of one generation, keyed by species, in
// declaration order. It is built once by the loader and read-only afterwards.
type Collection struct {
	Generation int

	species []string
	sets    map[string][]NamedPreset
}

// NewCollection returns an empty collection for gen.
func NewCollection(gen int) *Collection {
	return &Collection{Generation: gen, sets: make(map[string][]NamedPreset)}
}

// Add appends a preset under species. Set names must be unique per species.
func (c *Collection) Add(species, name string, p Preset) error {
	list, seen := c.sets[species]
	for _, np := range list {
		if np.Name == name {
			return fmt.Errorf("duplicate set %q for %s", name, species)
		}
	}
	if !seen {
		c.species = append(c.species, species)
	}
	c.sets[species] = append(list, NamedPreset{Name: name, Preset: p})
	return nil
}

// Species lists species in declaration order.
func (c *Collection) Species() []string {
	return append([]string(nil), c.species...)
}

// Sets returns the presets of species in declaration order (nil if none).
func (c *Collection) Sets(species string) []NamedPreset {
	list := c.sets[species]
	if len(list) == 0 {
		return nil
	}
	return append([]NamedPreset(nil), list...)
}

// Lookup finds a preset by its exact set name.
func (c *Collection) Lookup(species, name string) (Preset, bool) {
	for _, np := range c.sets[species] {
		if np.Name == name {
			return np.Preset, true
		}
	}
	return Preset{}, false
}

// Len counts presets across all species.
func (c *Collection) Len() int {
	n := 0
	for _, list := range c.sets {
		n += len(list)
	}
	return n
}
