package matchup

import (
	"fmt"

	"github.com/xtding233/matchup-backend/internal/calc"
	"github.com/xtding233/matchup-backend/internal/constants"
	"github.com/xtding233/matchup-backend/internal/logging"
	"github.com/xtding233/matchup-backend/internal/pokemon"
)

const (
	koNoDamage  = "No damaging effect"
	koCalcError = "Calculation Error / No effect"
	koImmune    = "Immune / No damaging effect"
)

// CalculationError wraps an engine failure for a single move.
type CalculationError struct {
	Move string
	Err  error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calculating %s: %v", e.Move, e.Err)
}

func (e *CalculationError) Unwrap() error { return e.Err }

// Format runs one move through the engine and normalizes the outcome.
// Engine failures come back as a zero-damage HitResult, never as an error.
func Format(engine Engine, gen int, attacker, defender *calc.Pokemon, moveName string, field pokemon.Field, crit bool) HitResult {
	move, err := engine.Move(gen, moveName, crit)
	if err != nil {
		return calcErrorHit(gen, attacker, defender, &CalculationError{Move: moveName, Err: err})
	}

	// status moves never reach the engine
	if move.BasePower == 0 {
		desc := fmt.Sprintf("%s is a status move and deals no direct damage.", move.Name)
		if crit {
			desc = fmt.Sprintf("%s is a status move and cannot land a critical hit.", move.Name)
		}
		return HitResult{KOChance: koNoDamage, Description: desc}
	}

	res, err := safeCalculate(engine, gen, attacker, defender, move, field)
	if err != nil {
		return calcErrorHit(gen, attacker, defender, &CalculationError{Move: move.Name, Err: err})
	}

	lo, hi := res.Range()
	if hi == 0 {
		return HitResult{
			KOChance:    koImmune,
			Description: fmt.Sprintf("%s does not affect %s.", move.Name, defender.Name),
		}
	}
	maxHP := defender.MaxHP()
	return HitResult{
		Damage:      [2]int{lo, hi},
		Percentage:  [2]float64{percent(lo, maxHP), percent(hi, maxHP)},
		KOChance:    res.KOChance(),
		Description: res.Description(),
	}
}

// safeCalculate turns an engine panic into an error so one bad move cannot
// take down the request.
func safeCalculate(engine Engine, gen int, attacker, defender *calc.Pokemon, move *calc.Move, field pokemon.Field) (res *calc.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("engine panic: %v", r)
		}
	}()
	res, err = engine.Calculate(gen, attacker, defender, move, field)
	if err == nil && res == nil {
		err = fmt.Errorf("engine returned no result")
	}
	return res, err
}

func calcErrorHit(gen int, attacker, defender *calc.Pokemon, err *CalculationError) HitResult {
	logging.Warn("move calculation failed", err, logging.Fields{
		constants.LogFieldGeneration: gen,
		constants.LogFieldMove:       err.Move,
		constants.LogFieldAttacker:   attacker.Name,
		constants.LogFieldDefender:   defender.Name,
	})
	return HitResult{
		KOChance:    koCalcError,
		Description: fmt.Sprintf("Error calculating %s: %v", err.Move, err.Err),
	}
}

// percent is damage as a share of maxHP, truncated to one decimal place.
func percent(damage, maxHP int) float64 {
	if maxHP <= 0 {
		return 0
	}
	return float64(damage*1000/maxHP) / 10
}
