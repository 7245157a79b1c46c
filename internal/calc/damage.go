package calc

import (
	"fmt"
	"math"

	"github.com/xtding233/matchup-backend/internal/pokemon"
)

// Result holds the 16 damage rolls of one calculation, ascending.
type Result struct {
	Rolls  []int
	KOText string
	Desc   string
}

// Range returns the lowest and highest roll.
func (r *Result) Range() (int, int) {
	if len(r.Rolls) == 0 {
		return 0, 0
	}
	return r.Rolls[0], r.Rolls[len(r.Rolls)-1]
}

func (r *Result) KOChance() string { return r.KOText }

func (r *Result) Description() string { return r.Desc }

// Calculator is the built-in damage engine.
type Calculator struct {
	dex *Dex
}

// New returns a calculator over the embedded dex.
func New() (*Calculator, error) {
	d, err := LoadDex(builtinDex)
	if err != nil {
		return nil, err
	}
	return NewCalculator(d), nil
}

func NewCalculator(d *Dex) *Calculator {
	return &Calculator{dex: d}
}

// Pokemon builds a combatant for generation gen.
func (c *Calculator) Pokemon(gen int, species string, cfg pokemon.Config) (*Pokemon, error) {
	g, err := GenByNum(gen)
	if err != nil {
		return nil, err
	}
	return c.dex.NewPokemon(g, species, cfg)
}

// Move builds a move for generation gen, optionally forcing a critical hit.
func (c *Calculator) Move(gen int, name string, crit bool) (*Move, error) {
	g, err := GenByNum(gen)
	if err != nil {
		return nil, err
	}
	return c.dex.NewMove(g, name, crit)
}

// Calculate runs one attack of attacker on defender under field.
func (c *Calculator) Calculate(gen int, attacker, defender *Pokemon, move *Move, field pokemon.Field) (*Result, error) {
	g, err := GenByNum(gen)
	if err != nil {
		return nil, err
	}
	if attacker == nil || defender == nil || move == nil {
		return nil, fmt.Errorf("calculate: attacker, defender and move are required")
	}
	if defender.MaxHP() <= 0 {
		return nil, fmt.Errorf("calculate: %s has no HP", defender.Name)
	}

	s := newSetup(g, c.dex, attacker, defender, move, field)
	res := &Result{Rolls: make([]int, 16)}
	if move.Category == Status || move.BasePower == 0 || s.eff == 0 {
		res.Desc = s.describe(0, 0)
		return res, nil
	}

	base := s.baseDamage()
	for i := range res.Rolls {
		res.Rolls[i] = s.roll(base, 85+i)
	}
	lo, hi := res.Range()
	res.KOText = koChance(res.Rolls, defender.HP(), s.hazards())
	res.Desc = s.describe(lo, hi) + " -- " + res.KOText
	return res, nil
}

// setup collects everything that is fixed for one attacker/defender/move.
type setup struct {
	gen      Gen
	dex      *Dex
	atk, def *Pokemon
	move     *Move
	field    pokemon.Field

	atkAbility, defAbility string
	atkItem, defItem       string
	weather, terrain       string
	physical               bool
	eff                    float64
}

func newSetup(g Gen, d *Dex, atk, def *Pokemon, move *Move, field pokemon.Field) *setup {
	s := &setup{
		gen: g, dex: d, atk: atk, def: def, move: move, field: field,
		weather:  ToID(field.Weather),
		terrain:  ToID(field.Terrain),
		physical: move.Category == Physical,
	}
	if g.HasAbilities() {
		s.atkAbility, s.defAbility = ToID(atk.Ability), ToID(def.Ability)
	}
	if g.HasItems() && !field.IsMagicRoom {
		s.atkItem, s.defItem = ToID(atk.Item), ToID(def.Item)
	}
	s.eff = s.effectiveness()
	return s
}

func (s *setup) grounded(p *Pokemon, ability, item string) bool {
	if s.field.IsGravity {
		return true
	}
	return !p.hasType("Flying") && ability != "levitate" && item != "airballoon"
}

func (s *setup) effectiveness() float64 {
	if s.move.Category == Status {
		return 1
	}
	defTypes := s.def.Types
	if s.move.Type == "Ground" {
		if !s.grounded(s.def, s.defAbility, s.defItem) {
			return 0
		}
		if s.field.IsGravity {
			defTypes = withoutType(defTypes, "Flying")
		}
	}
	eff := s.dex.Effectiveness(s.move.Type, defTypes)
	if s.defAbility == "wonderguard" && eff <= 1 {
		return 0
	}
	return eff
}

func (s *setup) basePower() int {
	bp := s.move.BasePower
	if s.atkAbility == "technician" && bp <= 60 {
		bp = pokeRound(float64(bp) * 1.5)
	}
	if s.grounded(s.atk, s.atkAbility, s.atkItem) {
		switch {
		case s.terrain == "electric" && s.move.Type == "Electric",
			s.terrain == "grassy" && s.move.Type == "Grass",
			s.terrain == "psychic" && s.move.Type == "Psychic":
			bp = pokeRound(float64(bp) * s.gen.TerrainBoost())
		}
	}
	if s.grounded(s.def, s.defAbility, s.defItem) {
		switch {
		case s.terrain == "misty" && s.move.Type == "Dragon",
			s.terrain == "grassy" && ToID(s.move.Name) == "earthquake":
			bp /= 2
		}
	}
	return bp
}

func (s *setup) attackStat() int {
	stat, boost := s.atk.Stats.SpA, s.atk.Boosts.SpA
	if s.physical {
		stat, boost = s.atk.Stats.Atk, s.atk.Boosts.Atk
	}
	if s.defAbility == "unaware" || (s.move.IsCrit && boost < 0) {
		boost = 0
	}
	a := applyBoost(stat, boost)
	switch {
	case s.physical && (s.atkAbility == "hugepower" || s.atkAbility == "purepower"):
		a *= 2
	case s.physical && s.atkAbility == "guts" && s.atk.Status != "":
		a = a * 3 / 2
	}
	if (s.physical && s.atkItem == "choiceband") || (!s.physical && s.atkItem == "choicespecs") {
		a = a * 3 / 2
	}
	if s.defAbility == "thickfat" && (s.move.Type == "Fire" || s.move.Type == "Ice") {
		a /= 2
	}
	if s.physical && s.field.IsTabletsOfRuin && s.atkAbility != "tabletsofruin" {
		a = a * 3 / 4
	}
	if !s.physical && s.field.IsVesselOfRuin && s.atkAbility != "vesselofruin" {
		a = a * 3 / 4
	}
	return max(a, 1)
}

func (s *setup) defenseStat() int {
	// Wonder Room swaps which defense an attack targets.
	useDef := s.physical != s.field.IsWonderRoom
	stat, boost := s.def.Stats.SpD, s.def.Boosts.SpD
	if useDef {
		stat, boost = s.def.Stats.Def, s.def.Boosts.Def
	}
	if s.atkAbility == "unaware" || (s.move.IsCrit && boost > 0) {
		boost = 0
	}
	d := applyBoost(stat, boost)
	if !s.physical && s.defItem == "assaultvest" {
		d = d * 3 / 2
	}
	if s.weather == "sand" && !s.physical && s.def.hasType("Rock") && s.gen.Num >= 4 {
		d = d * 3 / 2
	}
	if (s.weather == "snow" || s.weather == "hail") && s.physical && s.def.hasType("Ice") && s.gen.Num >= 9 {
		d = d * 3 / 2
	}
	if s.physical && s.field.IsSwordOfRuin && s.defAbility != "swordofruin" {
		d = d * 3 / 4
	}
	if !s.physical && s.field.IsBeadsOfRuin && s.defAbility != "beadsofruin" {
		d = d * 3 / 4
	}
	return max(d, 1)
}

func (s *setup) weatherMod() float64 {
	switch s.weather {
	case "sun", "harshsunshine":
		switch s.move.Type {
		case "Fire":
			return 1.5
		case "Water":
			return 0.5
		}
	case "rain", "heavyrain":
		switch s.move.Type {
		case "Water":
			return 1.5
		case "Fire":
			return 0.5
		}
	}
	return 1
}

// baseDamage applies everything that precedes the random roll.
func (s *setup) baseDamage() int {
	level := s.atk.Level
	base := (2*level/5+2)*s.basePower()*s.attackStat()/s.defenseStat()/50 + 2
	if m := s.weatherMod(); m != 1 {
		base = pokeRound(float64(base) * m)
	}
	if s.move.IsCrit {
		base = int(math.Floor(float64(base) * s.gen.CritMultiplier()))
	}
	return base
}

func (s *setup) stab() float64 {
	if !s.atk.hasType(s.move.Type) {
		return 1
	}
	if s.atkAbility == "adaptability" {
		return 2
	}
	return 1.5
}

func (s *setup) finalMod() float64 {
	mod := 1.0
	if !s.move.IsCrit {
		if s.physical && s.field.DefenderSide.IsReflect {
			mod *= 0.5
		}
		if !s.physical && s.field.DefenderSide.IsLightScreen {
			mod *= 0.5
		}
	}
	if s.defAbility == "multiscale" && s.def.HP() == s.def.MaxHP() {
		mod *= 0.5
	}
	switch {
	case s.atkItem == "lifeorb":
		mod *= 1.3
	case s.atkItem == "expertbelt" && s.eff > 1:
		mod *= 1.2
	}
	return mod
}

func (s *setup) burned() bool {
	switch ToID(s.atk.Status) {
	case "brn", "burn", "burned":
		return s.physical && s.atkAbility != "guts"
	}
	return false
}

// roll turns base damage into the damage of one random roll (85..100).
func (s *setup) roll(base, r int) int {
	dmg := base * r / 100
	if stab := s.stab(); stab != 1 {
		dmg = pokeRound(float64(dmg) * stab)
	}
	dmg = int(math.Floor(float64(dmg) * s.eff))
	if s.burned() {
		dmg /= 2
	}
	if m := s.finalMod(); m != 1 {
		dmg = pokeRound(float64(dmg) * m)
	}
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

func applyBoost(stat, stage int) int {
	stage = max(-6, min(6, stage))
	if stage >= 0 {
		return stat * (2 + stage) / 2
	}
	return stat * 2 / (2 - stage)
}

// pokeRound rounds half down, as the games do.
func pokeRound(x float64) int {
	if x-math.Floor(x) > 0.5 {
		return int(math.Ceil(x))
	}
	return int(math.Floor(x))
}

func withoutType(types []string, drop string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if t != drop {
			out = append(out, t)
		}
	}
	return out
}
