package calc

import (
	"fmt"

	"github.com/xtding233/matchup-backend/internal/pokemon"
)

// Pokemon is a combatant built for one generation's ruleset.
type Pokemon struct {
	Name        string
	Level       int
	Ability     string
	Item        string
	Nature      string
	Types       []string
	IVs         pokemon.Stats
	EVs         pokemon.Stats
	Boosts      pokemon.Stats
	Stats       pokemon.Stats // computed stats, HP before dynamax
	CurHP       int           // 0 means full HP
	Status      string
	IsDynamaxed bool

	naturePlus, natureMinus string
}

// MaxHP is the HP total, doubled while dynamaxed.
func (p *Pokemon) MaxHP() int {
	if p.IsDynamaxed {
		return p.Stats.HP * 2
	}
	return p.Stats.HP
}

// HP is the current HP used for KO chances.
func (p *Pokemon) HP() int {
	if p.CurHP > 0 && p.CurHP < p.MaxHP() {
		return p.CurHP
	}
	return p.MaxHP()
}

// NewPokemon builds species with the given configuration.
func (d *Dex) NewPokemon(gen Gen, species string, cfg pokemon.Config) (*Pokemon, error) {
	s, ok := d.Species(species)
	if !ok {
		return nil, fmt.Errorf("unknown pokemon %q", species)
	}
	if cfg.Level < 1 || cfg.Level > 100 {
		return nil, fmt.Errorf("%s: level %d out of range", s.Name, cfg.Level)
	}
	nat, err := d.natureMods(cfg.Nature)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	ability := cfg.Ability
	if ability == "" {
		ability = s.Ability
	}
	p := &Pokemon{
		Name:        s.Name,
		Level:       cfg.Level,
		Ability:     ability,
		Item:        cfg.Item,
		Nature:      cfg.Nature,
		Types:       s.Types,
		IVs:         cfg.IVs,
		EVs:         cfg.EVs,
		Boosts:      cfg.Boosts,
		Status:      cfg.Status,
		IsDynamaxed: cfg.IsDynamaxed,
		naturePlus:  nat.Plus,
		natureMinus: nat.Minus,
	}
	p.Stats = computeStats(s, p)
	if cfg.CurHP != nil {
		p.CurHP = *cfg.CurHP
	}
	return p, nil
}

func computeStats(s SpeciesData, p *Pokemon) pokemon.Stats {
	var out pokemon.Stats
	if s.Base.HP == 1 {
		out.HP = 1
	} else {
		out.HP = (2*s.Base.HP+p.IVs.HP+p.EVs.HP/4)*p.Level/100 + p.Level + 10
	}
	other := func(stat string, base, iv, ev int) int {
		v := (2*base+iv+ev/4)*p.Level/100 + 5
		switch stat {
		case p.naturePlus:
			v = v * 110 / 100
		case p.natureMinus:
			v = v * 90 / 100
		}
		return v
	}
	out.Atk = other("atk", s.Base.Atk, p.IVs.Atk, p.EVs.Atk)
	out.Def = other("def", s.Base.Def, p.IVs.Def, p.EVs.Def)
	out.SpA = other("spa", s.Base.SpA, p.IVs.SpA, p.EVs.SpA)
	out.SpD = other("spd", s.Base.SpD, p.IVs.SpD, p.EVs.SpD)
	out.Spe = other("spe", s.Base.Spe, p.IVs.Spe, p.EVs.Spe)
	return out
}

func (p *Pokemon) hasType(t string) bool {
	for _, pt := range p.Types {
		if pt == t {
			return true
		}
	}
	return false
}

// natureMark is "+", "-" or "" for the nature's effect on stat.
func (p *Pokemon) natureMark(stat string) string {
	switch stat {
	case p.naturePlus:
		return "+"
	case p.natureMinus:
		return "-"
	}
	return ""
}
