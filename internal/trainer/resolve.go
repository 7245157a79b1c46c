package trainer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xtding233/matchup-backend/internal/dataset"
)

// SpeciesNotFoundError reports a species with no presets in a generation.
type SpeciesNotFoundError struct {
	Species    string
	Generation int
}

func (e *SpeciesNotFoundError) Error() string {
	return fmt.Sprintf("no trainer sets for %s in generation %d", e.Species, e.Generation)
}

// TrainerSetNotFoundError reports that no preset of a species matches a trainer.
type TrainerSetNotFoundError struct {
	Species    string
	Trainer    string
	Generation int
}

func (e *TrainerSetNotFoundError) Error() string {
	return fmt.Sprintf("no set of %s matches trainer %q in generation %d", e.Species, e.Trainer, e.Generation)
}

// Match is one preset found by ResolveAll.
type Match struct {
	Species string         `json:"species"`
	SetName string         `json:"setName"`
	Preset  dataset.Preset `json:"preset"`
}

// Resolver finds trainer presets inside one dataset snapshot.
type Resolver struct {
	idx *dataset.Index
}

func NewResolver(idx *dataset.Index) *Resolver {
	return &Resolver{idx: idx}
}

// ResolveOne picks the best preset of species for trainerName:
//   - the first set whose name or trainer label contains trainerName as a
//     whole word (case-insensitive) wins outright;
//   - otherwise the first set whose name starts with the same first word as
//     trainerName;
//   - otherwise a set literally named trainerName.
func (r *Resolver) ResolveOne(gen int, species, trainerName string) (dataset.Preset, error) {
	col, err := r.idx.Presets(gen)
	if err != nil {
		return dataset.Preset{}, err
	}
	sets := col.Sets(species)
	if len(sets) == 0 {
		return dataset.Preset{}, &SpeciesNotFoundError{Species: species, Generation: gen}
	}
	notFound := &TrainerSetNotFoundError{Species: species, Trainer: trainerName, Generation: gen}
	if strings.TrimSpace(trainerName) == "" {
		return dataset.Preset{}, notFound
	}

	re := wordMatcher(trainerName)
	lead := firstWord(trainerName)
	var weak *dataset.Preset
	for i := range sets {
		np := sets[i]
		if strongMatch(re, np) {
			return np.Preset, nil
		}
		if weak == nil && lead != "" && firstWord(np.Name) == lead {
			weak = &sets[i].Preset
		}
	}
	if weak != nil {
		return *weak, nil
	}
	if p, ok := col.Lookup(species, trainerName); ok {
		return p, nil
	}
	return dataset.Preset{}, notFound
}

// ResolveAll lists every preset in gen whose name or trainer label contains
// trainerName as a whole word, in declaration order.
func (r *Resolver) ResolveAll(gen int, trainerName string) ([]Match, error) {
	col, err := r.idx.Presets(gen)
	if err != nil {
		return nil, err
	}
	out := []Match{}
	if strings.TrimSpace(trainerName) == "" {
		return out, nil
	}
	re := wordMatcher(trainerName)
	for _, species := range col.Species() {
		for _, np := range col.Sets(species) {
			if strongMatch(re, np) {
				out = append(out, Match{Species: species, SetName: np.Name, Preset: np.Preset})
			}
		}
	}
	return out, nil
}

func wordMatcher(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
}

func strongMatch(re *regexp.Regexp, np dataset.NamedPreset) bool {
	if re.MatchString(np.Name) {
		return true
	}
	return np.Preset.Trainer != "" && re.MatchString(np.Preset.Trainer)
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
