package calc

import (
	"fmt"
	"strconv"
	"strings"
)

const maxKOHits = 4

type hazard struct {
	damage int
	names  []string
}

// hazards sums the entry hazards on the defender's side.
func (s *setup) hazards() hazard {
	var h hazard
	if s.defAbility == "magicguard" {
		return h
	}
	maxHP := s.def.MaxHP()
	side := s.field.DefenderSide
	if side.IsSR {
		eff := s.dex.Effectiveness("Rock", s.def.Types)
		h.damage += int(float64(maxHP) * eff / 8)
		h.names = append(h.names, "Stealth Rock")
	}
	if side.Spikes > 0 && s.grounded(s.def, s.defAbility, s.defItem) {
		layers := min(side.Spikes, 3)
		div := map[int]int{1: 8, 2: 6, 3: 4}[layers]
		h.damage += maxHP / div
		if layers == 1 {
			h.names = append(h.names, "1 layer of Spikes")
		} else {
			h.names = append(h.names, fmt.Sprintf("%d layers of Spikes", layers))
		}
	}
	return h
}

// koChance describes how many hits of rolls take hp to zero, after hazards.
// Every roll is equally likely.
func koChance(rolls []int, hp int, h hazard) string {
	if len(rolls) == 0 || rolls[len(rolls)-1] == 0 {
		return ""
	}
	suffix := ""
	if len(h.names) > 0 {
		suffix = " after " + strings.Join(h.names, " and ")
	}
	target := hp - h.damage
	if target <= 0 {
		return "guaranteed OHKO" + suffix
	}

	// dist[x] is the probability that n hits dealt exactly x damage, with
	// every x >= target folded into dist[target].
	dist := make([]float64, target+1)
	dist[0] = 1
	p := 1 / float64(len(rolls))
	for n := 1; n <= maxKOHits; n++ {
		next := make([]float64, target+1)
		next[target] = dist[target]
		for x := 0; x < target; x++ {
			if dist[x] == 0 {
				continue
			}
			for _, r := range rolls {
				next[min(x+r, target)] += dist[x] * p
			}
		}
		dist = next
		if chance := dist[target]; chance > 0 {
			if chance >= 1-1e-9 {
				return "guaranteed " + hko(n) + suffix
			}
			return formatPercent(chance*100) + "% chance to " + hko(n) + suffix
		}
	}

	lo, hi := rolls[0], rolls[len(rolls)-1]
	worst, best := ceilDiv(target, lo), ceilDiv(target, hi)
	if worst == best {
		return "guaranteed " + hko(best) + suffix
	}
	return "possible " + hko(best) + suffix
}

func hko(n int) string {
	if n == 1 {
		return "OHKO"
	}
	return strconv.Itoa(n) + "HKO"
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func formatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
