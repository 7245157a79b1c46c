package matchup

import (
	"fmt"

	"github.com/xtding233/matchup-backend/internal/calc"
	"github.com/xtding233/matchup-backend/internal/pokemon"
)

// CombatantError reports a combatant the engine could not build.
type CombatantError struct {
	Name string
	Err  error
}

func (e *CombatantError) Error() string {
	return fmt.Sprintf("cannot build %s: %v", e.Name, e.Err)
}

func (e *CombatantError) Unwrap() error { return e.Err }

// Orchestrator runs both attack directions of a matchup.
type Orchestrator struct {
	engine Engine
}

func NewOrchestrator(engine Engine) *Orchestrator {
	return &Orchestrator{engine: engine}
}

// Compute calculates pokemon 1 attacking pokemon 2 and the reverse. Both
// directions are always filled in; per-move failures are folded into their
// HitResults.
func (o *Orchestrator) Compute(gen int, cfg1, cfg2 pokemon.Config, field pokemon.FieldSpec) (Result, error) {
	p1, err := o.engine.Pokemon(gen, cfg1.Name, cfg1)
	if err != nil {
		return Result{}, &CombatantError{Name: cfg1.Name, Err: err}
	}
	p2, err := o.engine.Pokemon(gen, cfg2.Name, cfg2)
	if err != nil {
		return Result{}, &CombatantError{Name: cfg2.Name, Err: err}
	}

	return Result{
		Generation:                gen,
		Pokemon1:                  summarize(p1),
		Pokemon2:                  summarize(p2),
		Pokemon1AttackingPokemon2: o.direction(gen, p1, p2, cfg1.Moves, field.Orient(1)),
		Pokemon2AttackingPokemon1: o.direction(gen, p2, p1, cfg2.Moves, field.Orient(2)),
	}, nil
}

func (o *Orchestrator) direction(gen int, attacker, defender *calc.Pokemon, moves []string, field pokemon.Field) DirectionResult {
	out := DirectionResult{
		Attacker: summarize(attacker),
		Defender: summarize(defender),
		Moves:    make([]MoveResult, 0, len(moves)),
	}
	if len(moves) == 0 {
		out.Message = fmt.Sprintf("%s has no moves to calculate.", attacker.Name)
		return out
	}
	for _, name := range moves {
		out.Moves = append(out.Moves, MoveResult{
			Move:     name,
			Normal:   Format(o.engine, gen, attacker, defender, name, field, false),
			Critical: Format(o.engine, gen, attacker, defender, name, field, true),
		})
	}
	return out
}
