package matchup

import (
	"github.com/xtding233/matchup-backend/internal/calc"
	"github.com/xtding233/matchup-backend/internal/combatant"
	"github.com/xtding233/matchup-backend/internal/pokemon"
)

// Engine is the damage engine the orchestrator drives.
type Engine interface {
	Pokemon(gen int, species string, cfg pokemon.Config) (*calc.Pokemon, error)
	Move(gen int, name string, crit bool) (*calc.Move, error)
	Calculate(gen int, attacker, defender *calc.Pokemon, move *calc.Move, field pokemon.Field) (*calc.Result, error)
}

// Request is one matchup as the API layer receives it.
type Request struct {
	Generation int                 `json:"generation" yaml:"generation"`
	Pokemon1   combatant.RawConfig `json:"pokemon1" yaml:"pokemon1"`
	Pokemon2   combatant.RawConfig `json:"pokemon2" yaml:"pokemon2"`
	Field      *pokemon.FieldSpec  `json:"field,omitempty" yaml:"field,omitempty"`
}

// HitResult is one normalized damage calculation.
type HitResult struct {
	Damage      [2]int     `json:"damage"`
	Percentage  [2]float64 `json:"percentage"`
	KOChance    string     `json:"koChance"`
	Description string     `json:"description"`
}

// MoveResult holds the normal and critical hit of one move.
type MoveResult struct {
	Move     string    `json:"move"`
	Normal   HitResult `json:"normal"`
	Critical HitResult `json:"critical"`
}

// Summary describes a combatant as the engine built it.
type Summary struct {
	Name    string `json:"name"`
	Level   int    `json:"level"`
	Ability string `json:"ability"`
	Item    string `json:"item"`
	Nature  string `json:"nature"`
	MaxHP   int    `json:"maxHP"`
}

// DirectionResult is every move of one attacker against one defender.
type DirectionResult struct {
	Attacker Summary      `json:"attacker"`
	Defender Summary      `json:"defender"`
	Moves    []MoveResult `json:"moves"`
	Message  string       `json:"message,omitempty"`
}

// Result is the full two-way matchup.
type Result struct {
	Generation                int             `json:"generation"`
	Pokemon1                  Summary         `json:"pokemon1"`
	Pokemon2                  Summary         `json:"pokemon2"`
	Pokemon1AttackingPokemon2 DirectionResult `json:"pokemon1AttackingPokemon2"`
	Pokemon2AttackingPokemon1 DirectionResult `json:"pokemon2AttackingPokemon1"`
}

func summarize(p *calc.Pokemon) Summary {
	return Summary{
		Name:    p.Name,
		Level:   p.Level,
		Ability: p.Ability,
		Item:    p.Item,
		Nature:  p.Nature,
		MaxHP:   p.MaxHP(),
	}
}
