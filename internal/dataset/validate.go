package dataset

import (
	"fmt"
	"strings"

	"github.com/xtding233/matchup-backend/internal/pokemon"
)

const maxMoves = 4

// Validate checks semantic constraints of every preset in c.
func Validate(c *Collection) error {
	var errs []string
	for _, species := range c.species {
		for _, np := range c.sets[species] {
			errs = append(errs, validatePreset(species+" / "+np.Name, np.Preset)...)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("set validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePreset(where string, p Preset) []string {
	var errs []string

	if p.Level != nil && (*p.Level < 1 || *p.Level > 100) {
		errs = append(errs, where+": level must be in [1,100]")
	}
	p.IVs.Each(func(stat string, v int) {
		if v < 0 || v > pokemon.MaxIV {
			errs = append(errs, fmt.Sprintf("%s: ivs.%s must be in [0,%d]", where, stat, pokemon.MaxIV))
		}
	})
	p.EVs.Each(func(stat string, v int) {
		if v < 0 || v > pokemon.MaxEV {
			errs = append(errs, fmt.Sprintf("%s: evs.%s must be in [0,%d]", where, stat, pokemon.MaxEV))
		}
	})
	if len(p.Moves) > maxMoves {
		errs = append(errs, fmt.Sprintf("%s: at most %d moves (got %d)", where, maxMoves, len(p.Moves)))
	}
	for i, m := range p.Moves {
		if strings.TrimSpace(m) == "" {
			errs = append(errs, fmt.Sprintf("%s: moves[%d] is empty", where, i))
		}
	}
	return errs
}
