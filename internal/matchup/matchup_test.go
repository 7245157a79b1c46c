package matchup

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/xtding233/matchup-backend/internal/calc"
	"github.com/xtding233/matchup-backend/internal/combatant"
	"github.com/xtding233/matchup-backend/internal/dataset"
	"github.com/xtding233/matchup-backend/internal/logging"
	"github.com/xtding233/matchup-backend/internal/pokemon"
	"github.com/xtding233/matchup-backend/internal/trainer"
)

func init() {
	logging.SetOutput(io.Discard)
}

type fakeEngine struct {
	hp        map[string]int
	moves     map[string]int
	rolls     []int
	calcErr   error
	panicWith interface{}
	calls     int
}

func (f *fakeEngine) Pokemon(gen int, species string, cfg pokemon.Config) (*calc.Pokemon, error) {
	hp, ok := f.hp[species]
	if !ok {
		return nil, errors.New("unknown pokemon " + species)
	}
	return &calc.Pokemon{Name: species, Level: cfg.Level, Nature: cfg.Nature, Stats: pokemon.Stats{HP: hp}}, nil
}

func (f *fakeEngine) Move(gen int, name string, crit bool) (*calc.Move, error) {
	bp, ok := f.moves[name]
	if !ok {
		return nil, errors.New("unknown move " + name)
	}
	return &calc.Move{Name: name, BasePower: bp, IsCrit: crit}, nil
}

func (f *fakeEngine) Calculate(gen int, atk, def *calc.Pokemon, move *calc.Move, field pokemon.Field) (*calc.Result, error) {
	f.calls++
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.calcErr != nil {
		return nil, f.calcErr
	}
	return &calc.Result{Rolls: f.rolls, KOText: "possible 5HKO", Desc: "fake desc"}, nil
}

func zeroRolls() []int { return make([]int, 16) }

func TestFormatStatusMoveSkipsEngine(t *testing.T) {
	eng := &fakeEngine{moves: map[string]int{"Swords Dance": 0}}
	atk := &calc.Pokemon{Name: "Garchomp", Stats: pokemon.Stats{HP: 357}}
	def := &calc.Pokemon{Name: "Corviknight", Stats: pokemon.Stats{HP: 337}}

	hit := Format(eng, 9, atk, def, "Swords Dance", pokemon.Field{}, false)
	if eng.calls != 0 {
		t.Fatalf("engine called %d times for a status move", eng.calls)
	}
	if hit.KOChance != "No damaging effect" || hit.Damage != [2]int{} {
		t.Fatalf("unexpected hit: %+v", hit)
	}
	if hit.Description != "Swords Dance is a status move and deals no direct damage." {
		t.Fatalf("description = %q", hit.Description)
	}
	crit := Format(eng, 9, atk, def, "Swords Dance", pokemon.Field{}, true)
	if !strings.Contains(crit.Description, "cannot land a critical hit") {
		t.Fatalf("crit description = %q", crit.Description)
	}
}

func TestFormatImmune(t *testing.T) {
	eng := &fakeEngine{moves: map[string]int{"Earthquake": 100}, rolls: zeroRolls()}
	atk := &calc.Pokemon{Name: "Garchomp", Stats: pokemon.Stats{HP: 357}}
	def := &calc.Pokemon{Name: "Corviknight", Stats: pokemon.Stats{HP: 337}}

	hit := Format(eng, 9, atk, def, "Earthquake", pokemon.Field{}, false)
	if hit.KOChance != "Immune / No damaging effect" {
		t.Fatalf("ko chance = %q", hit.KOChance)
	}
	if hit.Description != "Earthquake does not affect Corviknight." {
		t.Fatalf("description = %q", hit.Description)
	}
}

func TestFormatPercentTruncates(t *testing.T) {
	rolls := make([]int, 16)
	for i := range rolls {
		rolls[i] = 69 + i
	}
	rolls[15] = 81
	eng := &fakeEngine{moves: map[string]int{"Tackle": 40}, rolls: rolls}
	atk := &calc.Pokemon{Name: "A", Stats: pokemon.Stats{HP: 100}}
	def := &calc.Pokemon{Name: "B", Stats: pokemon.Stats{HP: 402}}

	hit := Format(eng, 9, atk, def, "Tackle", pokemon.Field{}, false)
	if hit.Damage != [2]int{69, 81} {
		t.Fatalf("damage = %v", hit.Damage)
	}
	// 81000/402 = 201
	if hit.Percentage[1] != 20.1 {
		t.Fatalf("max percentage = %v", hit.Percentage[1])
	}
	if hit.KOChance != "possible 5HKO" || hit.Description != "fake desc" {
		t.Fatalf("unexpected hit: %+v", hit)
	}
}

func TestFormatEngineFailures(t *testing.T) {
	atk := &calc.Pokemon{Name: "A", Stats: pokemon.Stats{HP: 100}}
	def := &calc.Pokemon{Name: "B", Stats: pokemon.Stats{HP: 100}}

	cases := []struct {
		name string
		eng  Engine
		move string
		want string
	}{
		{"unknown move", &fakeEngine{moves: map[string]int{}}, "Splash Kick", `Error calculating Splash Kick: unknown move Splash Kick`},
		{"engine error", &fakeEngine{moves: map[string]int{"Tackle": 40}, calcErr: errors.New("boom")}, "Tackle", "Error calculating Tackle: boom"},
		{"engine panic", &fakeEngine{moves: map[string]int{"Tackle": 40}, panicWith: "bad state"}, "Tackle", "Error calculating Tackle: engine panic: bad state"},
		{"nil result", nilResultEngine{&fakeEngine{moves: map[string]int{"Tackle": 40}}}, "Tackle", "Error calculating Tackle: engine returned no result"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit := Format(tc.eng, 9, atk, def, tc.move, pokemon.Field{}, false)
			if hit.KOChance != "Calculation Error / No effect" {
				t.Fatalf("ko chance = %q", hit.KOChance)
			}
			if hit.Description != tc.want {
				t.Fatalf("description = %q, want %q", hit.Description, tc.want)
			}
			if hit.Damage != [2]int{} || hit.Percentage != [2]float64{} {
				t.Fatalf("expected zero damage, got %+v", hit)
			}
		})
	}
}

type nilResultEngine struct{ *fakeEngine }

func (nilResultEngine) Calculate(int, *calc.Pokemon, *calc.Pokemon, *calc.Move, pokemon.Field) (*calc.Result, error) {
	return nil, nil
}

func TestComputeEmptyMoves(t *testing.T) {
	eng := &fakeEngine{hp: map[string]int{"Garchomp": 357, "Corviknight": 337}}
	cfg1 := pokemon.DefaultConfig()
	cfg1.Name = "Garchomp"
	cfg2 := pokemon.DefaultConfig()
	cfg2.Name = "Corviknight"

	res, err := NewOrchestrator(eng).Compute(9, cfg1, cfg2, pokemon.FieldSpec{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Pokemon1AttackingPokemon2.Moves == nil || len(res.Pokemon1AttackingPokemon2.Moves) != 0 {
		t.Fatalf("expected empty non-nil moves, got %#v", res.Pokemon1AttackingPokemon2.Moves)
	}
	if res.Pokemon1AttackingPokemon2.Message != "Garchomp has no moves to calculate." {
		t.Fatalf("message = %q", res.Pokemon1AttackingPokemon2.Message)
	}
	if res.Pokemon2AttackingPokemon1.Message != "Corviknight has no moves to calculate." {
		t.Fatalf("message = %q", res.Pokemon2AttackingPokemon1.Message)
	}
	if res.Pokemon1.MaxHP != 357 || res.Pokemon2AttackingPokemon1.Defender.Name != "Garchomp" {
		t.Fatalf("summaries: %+v", res)
	}
}

func TestComputeCombatantError(t *testing.T) {
	eng := &fakeEngine{hp: map[string]int{"Garchomp": 357}}
	cfg1 := pokemon.DefaultConfig()
	cfg1.Name = "Garchomp"
	cfg2 := pokemon.DefaultConfig()
	cfg2.Name = "Missingno"

	_, err := NewOrchestrator(eng).Compute(9, cfg1, cfg2, pokemon.FieldSpec{})
	var ce *CombatantError
	if !errors.As(err, &ce) || ce.Name != "Missingno" {
		t.Fatalf("expected CombatantError for Missingno, got %v", err)
	}
}

func TestComputeKeepsMoveOrder(t *testing.T) {
	eng := &fakeEngine{
		hp:    map[string]int{"A": 100, "B": 100},
		moves: map[string]int{"Tackle": 40, "Growl": 0},
		rolls: []int{10, 12},
	}
	cfg1 := pokemon.DefaultConfig()
	cfg1.Name = "A"
	cfg1.Moves = []string{"Growl", "Nope", "Tackle"}
	cfg2 := pokemon.DefaultConfig()
	cfg2.Name = "B"

	res, err := NewOrchestrator(eng).Compute(9, cfg1, cfg2, pokemon.FieldSpec{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	moves := res.Pokemon1AttackingPokemon2.Moves
	if len(moves) != 3 || moves[0].Move != "Growl" || moves[1].Move != "Nope" || moves[2].Move != "Tackle" {
		t.Fatalf("moves = %+v", moves)
	}
	if moves[1].Normal.KOChance != "Calculation Error / No effect" {
		t.Fatalf("bad move should degrade, got %+v", moves[1].Normal)
	}
	if moves[2].Critical.Damage != [2]int{10, 12} {
		t.Fatalf("tackle crit = %+v", moves[2].Critical)
	}
}

func testIndex(t *testing.T) *dataset.Index {
	t.Helper()
	col := dataset.NewCollection(9)
	lvl := 63
	err := col.Add("Garchomp", "Ace Trainer Garchomp", dataset.Preset{
		Level:   &lvl,
		Nature:  "Jolly",
		EVs:     &pokemon.PartialStats{Atk: intp(252), Spe: intp(252)},
		Moves:   []string{"Dragon Claw", "Swords Dance"},
		Trainer: "Cynthia",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return dataset.NewIndex(col)
}

func intp(v int) *int { return &v }

func TestServiceEndToEnd(t *testing.T) {
	eng, err := calc.New()
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	svc := NewService(testIndex(t), eng)

	res, err := svc.Calculate(Request{
		Generation: 9,
		Pokemon1:   combatant.RawConfig{Name: "Garchomp", Moves: []string{"Dragon Claw", "Swords Dance", "Earthquake"}},
		Pokemon2:   combatant.RawConfig{Name: "Corviknight"},
		Field:      &pokemon.FieldSpec{Pokemon2Side: pokemon.Side{IsSR: true}},
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	moves := res.Pokemon1AttackingPokemon2.Moves
	if len(moves) != 3 {
		t.Fatalf("moves = %+v", moves)
	}
	claw := moves[0].Normal
	if claw.Damage != [2]int{51, 61} || claw.Percentage != [2]float64{15.1, 18.1} {
		t.Fatalf("dragon claw = %+v", claw)
	}
	if claw.KOChance != "possible 5HKO after Stealth Rock" {
		t.Fatalf("ko chance = %q", claw.KOChance)
	}
	if moves[0].Critical.Damage != [2]int{78, 92} {
		t.Fatalf("dragon claw crit = %+v", moves[0].Critical)
	}
	if moves[1].Normal.KOChance != "No damaging effect" {
		t.Fatalf("swords dance = %+v", moves[1].Normal)
	}
	if moves[2].Normal.KOChance != "Immune / No damaging effect" {
		t.Fatalf("earthquake = %+v", moves[2].Normal)
	}
	if res.Pokemon2AttackingPokemon1.Message == "" {
		t.Fatalf("expected empty-moves message for corviknight")
	}
}

func TestServiceTrainerPreset(t *testing.T) {
	eng, err := calc.New()
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	svc := NewService(testIndex(t), eng)

	res, err := svc.Calculate(Request{
		Generation: 9,
		Pokemon1: combatant.RawConfig{
			Moves:      []string{"Earthquake"},
			TrainerSet: &combatant.TrainerRef{Pokemon: "Garchomp", Trainer: "cynthia"},
		},
		Pokemon2: combatant.RawConfig{Name: "Corviknight"},
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.Pokemon1.Level != 63 || res.Pokemon1.Nature != "Jolly" {
		t.Fatalf("preset not applied: %+v", res.Pokemon1)
	}
	moves := res.Pokemon1AttackingPokemon2.Moves
	if len(moves) != 2 || moves[0].Move != "Dragon Claw" {
		t.Fatalf("preset moves should replace request moves: %+v", moves)
	}

	_, err = svc.Calculate(Request{
		Generation: 9,
		Pokemon1:   combatant.RawConfig{Name: "Garchomp"},
		Pokemon2: combatant.RawConfig{
			TrainerSet: &combatant.TrainerRef{Pokemon: "Garchomp", Trainer: "Lance"},
		},
	})
	var nf *trainer.TrainerSetNotFoundError
	if !errors.As(err, &nf) || !strings.HasPrefix(err.Error(), "pokemon2: ") {
		t.Fatalf("expected pokemon2 TrainerSetNotFoundError, got %v", err)
	}

	_, err = svc.Calculate(Request{Generation: 9, Pokemon1: combatant.RawConfig{Name: "Garchomp"}})
	if !errors.Is(err, combatant.ErrMissingPokemonName) {
		t.Fatalf("expected missing name, got %v", err)
	}
}

func TestServiceLookups(t *testing.T) {
	svc := NewService(testIndex(t), &fakeEngine{})
	if gens := svc.Generations(); len(gens) != 1 || gens[0] != 9 {
		t.Fatalf("generations = %v", gens)
	}
	matches, err := svc.TrainerSets(9, "Cynthia")
	if err != nil || len(matches) != 1 || matches[0].SetName != "Ace Trainer Garchomp" {
		t.Fatalf("trainer sets = %+v, %v", matches, err)
	}
	if _, err := svc.TrainerSets(4, "Cynthia"); !errors.Is(err, dataset.ErrDatasetNotFound) {
		t.Fatalf("expected dataset not found, got %v", err)
	}
	p, err := svc.TrainerSet(9, "Garchomp", "Ace")
	if err != nil || p.Nature != "Jolly" {
		t.Fatalf("trainer set = %+v, %v", p, err)
	}
}
