package calc

import "fmt"

// Gen describes the ruleset differences the calculator honors.
type Gen struct {
	Num int
}

// GenByNum returns the ruleset for generation n (1..9).
func GenByNum(n int) (Gen, error) {
	if n < 1 || n > 9 {
		return Gen{}, fmt.Errorf("unsupported generation %d", n)
	}
	return Gen{Num: n}, nil
}

// CritMultiplier is 2x through gen 5 and 1.5x afterwards.
func (g Gen) CritMultiplier() float64 {
	if g.Num <= 5 {
		return 2
	}
	return 1.5
}

// HasSplit reports whether category is per move (gen 4+) rather than per type.
func (g Gen) HasSplit() bool { return g.Num >= 4 }

func (g Gen) HasAbilities() bool { return g.Num >= 3 }

func (g Gen) HasItems() bool { return g.Num >= 2 }

// TerrainBoost is the multiplier for moves matching an active terrain.
func (g Gen) TerrainBoost() float64 {
	if g.Num >= 8 {
		return 1.3
	}
	return 1.5
}

// physicalTypes decide move category before the physical/special split.
var physicalTypes = map[string]bool{
	"Normal": true, "Fighting": true, "Flying": true, "Poison": true, "Ground": true,
	"Rock": true, "Bug": true, "Ghost": true, "Steel": true,
}

func (g Gen) category(m MoveData) Category {
	if m.Category == Status || g.HasSplit() {
		return m.Category
	}
	if physicalTypes[m.Type] {
		return Physical
	}
	return Special
}
