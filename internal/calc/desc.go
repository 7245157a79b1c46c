package calc

import (
	"strconv"
	"strings"
)

// describe renders the classic one-line summary, e.g.
// "252+ Atk Garchomp Dragon Claw vs. 0 HP / 0 Def Corviknight: 51-61 (15.1 - 18.1%)".
func (s *setup) describe(lo, hi int) string {
	var b strings.Builder

	atkStat, atkKey, atkBoost := "Atk", "atk", s.atk.Boosts.Atk
	defStat, defKey, defBoost := "Def", "def", s.def.Boosts.Def
	if !s.physical {
		atkStat, atkKey, atkBoost = "SpA", "spa", s.atk.Boosts.SpA
	}
	if s.physical == s.field.IsWonderRoom {
		defStat, defKey, defBoost = "SpD", "spd", s.def.Boosts.SpD
	}

	if s.move.Category != Status {
		writeBoost(&b, atkBoost)
		ev, _ := s.atk.EVs.Get(atkKey)
		b.WriteString(strconv.Itoa(ev) + s.atk.natureMark(atkKey) + " " + atkStat + " ")
	}
	if s.atkItem != "" {
		b.WriteString(s.atk.Item + " ")
	}
	if s.atkAbility != "" && abilityMatters(s.atkAbility) {
		b.WriteString(s.atk.Ability + " ")
	}
	b.WriteString(s.atk.Name + " " + s.move.Name + " vs. ")

	if s.def.IsDynamaxed {
		b.WriteString("Dynamax ")
	}
	writeBoost(&b, defBoost)
	ev, _ := s.def.EVs.Get(defKey)
	b.WriteString(strconv.Itoa(s.def.EVs.HP) + " HP / " + strconv.Itoa(ev) + s.def.natureMark(defKey) + " " + defStat + " ")
	if s.defItem != "" {
		b.WriteString(s.def.Item + " ")
	}
	if s.defAbility != "" && abilityMatters(s.defAbility) {
		b.WriteString(s.def.Ability + " ")
	}
	b.WriteString(s.def.Name)

	for _, extra := range s.conditions() {
		b.WriteString(" " + extra)
	}

	maxHP := s.def.MaxHP()
	b.WriteString(": " + strconv.Itoa(lo) + "-" + strconv.Itoa(hi) +
		" (" + percentText(lo, maxHP) + " - " + percentText(hi, maxHP) + "%)")
	return b.String()
}

func (s *setup) conditions() []string {
	var out []string
	switch s.weather {
	case "sun", "harshsunshine", "rain", "heavyrain", "sand", "snow", "hail":
		out = append(out, "in "+s.field.Weather)
	}
	if s.terrain != "" {
		out = append(out, "in "+strings.TrimSuffix(s.field.Terrain, " Terrain")+" Terrain")
	}
	if !s.move.IsCrit {
		if s.physical && s.field.DefenderSide.IsReflect {
			out = append(out, "through Reflect")
		}
		if !s.physical && s.field.DefenderSide.IsLightScreen {
			out = append(out, "through Light Screen")
		}
	}
	for _, r := range []struct {
		on   bool
		name string
	}{
		{s.physical && s.field.IsTabletsOfRuin, "Tablets of Ruin"},
		{!s.physical && s.field.IsVesselOfRuin, "Vessel of Ruin"},
		{s.physical && s.field.IsSwordOfRuin, "Sword of Ruin"},
		{!s.physical && s.field.IsBeadsOfRuin, "Beads of Ruin"},
	} {
		if r.on {
			out = append(out, "with "+r.name)
		}
	}
	if s.move.IsCrit {
		out = append(out, "on a critical hit")
	}
	return out
}

func writeBoost(b *strings.Builder, stage int) {
	if stage > 0 {
		b.WriteString("+")
	}
	if stage != 0 {
		b.WriteString(strconv.Itoa(stage) + " ")
	}
}

// abilityMatters lists abilities the calculator actually models.
func abilityMatters(id string) bool {
	switch id {
	case "hugepower", "purepower", "guts", "technician", "adaptability", "unaware",
		"thickfat", "levitate", "wonderguard", "multiscale":
		return true
	}
	return false
}

// percentText is damage as a share of maxHP, truncated to one decimal.
func percentText(damage, maxHP int) string {
	if maxHP <= 0 {
		return "0"
	}
	v := float64(damage*1000/maxHP) / 10
	return strconv.FormatFloat(v, 'f', -1, 64)
}
