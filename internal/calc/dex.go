package calc

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/matchup-backend/internal/pokemon"
)

//go:embed dex.yaml
var builtinDex []byte

// Category of a move.
type Category string

const (
	Physical Category = "Physical"
	Special  Category = "Special"
	Status   Category = "Status"
)

// SpeciesData is one dex entry.
type SpeciesData struct {
	Name    string
	Types   []string
	Base    pokemon.Stats
	Ability string // default ability
}

// MoveData is one move entry.
type MoveData struct {
	Name      string
	Type      string
	Category  Category
	BasePower int
}

type nature struct {
	Plus  string `yaml:"plus"`
	Minus string `yaml:"minus"`
}

type speciesEntry struct {
	Types   []string `yaml:"types"`
	Base    []int    `yaml:"base"`
	Ability string   `yaml:"ability"`
}

type moveEntry struct {
	Type     string   `yaml:"type"`
	Category Category `yaml:"category"`
	BP       int      `yaml:"bp"`
}

type dexFile struct {
	Species   map[string]speciesEntry       `yaml:"species"`
	Moves     map[string]moveEntry          `yaml:"moves"`
	Natures   map[string]nature             `yaml:"natures"`
	TypeChart map[string]map[string]float64 `yaml:"typechart"`
}

// Dex is the static game data, keyed by ID.
type Dex struct {
	species map[string]SpeciesData
	moves   map[string]MoveData
	natures map[string]nature
	chart   map[string]map[string]float64
}

// LoadDex parses a dex document.
func LoadDex(b []byte) (*Dex, error) {
	var f dexFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse dex: %w", err)
	}
	d := &Dex{
		species: make(map[string]SpeciesData, len(f.Species)),
		moves:   make(map[string]MoveData, len(f.Moves)),
		natures: make(map[string]nature, len(f.Natures)),
		chart:   make(map[string]map[string]float64, len(f.TypeChart)),
	}
	for name, e := range f.Species {
		if len(e.Base) != 6 {
			return nil, fmt.Errorf("dex species %s: base needs 6 stats, got %d", name, len(e.Base))
		}
		d.species[ToID(name)] = SpeciesData{
			Name:    name,
			Types:   e.Types,
			Base:    pokemon.Stats{HP: e.Base[0], Atk: e.Base[1], Def: e.Base[2], SpA: e.Base[3], SpD: e.Base[4], Spe: e.Base[5]},
			Ability: e.Ability,
		}
	}
	for name, e := range f.Moves {
		switch e.Category {
		case Physical, Special, Status:
		default:
			return nil, fmt.Errorf("dex move %s: unknown category %q", name, e.Category)
		}
		d.moves[ToID(name)] = MoveData{Name: name, Type: e.Type, Category: e.Category, BasePower: e.BP}
	}
	for name, n := range f.Natures {
		d.natures[ToID(name)] = n
	}
	for atk, row := range f.TypeChart {
		d.chart[atk] = row
	}
	return d, nil
}

// Species looks up a species by name.
func (d *Dex) Species(name string) (SpeciesData, bool) {
	s, ok := d.species[ToID(name)]
	return s, ok
}

// Move looks up a move by name.
func (d *Dex) Move(name string) (MoveData, bool) {
	m, ok := d.moves[ToID(name)]
	return m, ok
}

// Effectiveness returns the multiplier of moveType against defender types.
func (d *Dex) Effectiveness(moveType string, defTypes []string) float64 {
	eff := 1.0
	row := d.chart[moveType]
	for _, t := range defTypes {
		if m, ok := row[t]; ok {
			eff *= m
		}
	}
	return eff
}

func (d *Dex) natureMods(name string) (nature, error) {
	if name == "" {
		return nature{}, nil
	}
	n, ok := d.natures[ToID(name)]
	if !ok {
		return nature{}, fmt.Errorf("unknown nature %q", name)
	}
	return n, nil
}

// ToID folds a display name into a lookup key: diacritics removed,
// lowercased, only letters and digits kept ("Flabébé" becomes "flabebe",
// "U-turn" becomes "uturn").
func ToID(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
