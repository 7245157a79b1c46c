package pokemon

// Stats is a complete stat sextuple.
type Stats struct {
	HP  int `json:"hp" yaml:"hp"`
	Atk int `json:"atk" yaml:"atk"`
	Def int `json:"def" yaml:"def"`
	SpA int `json:"spa" yaml:"spa"`
	SpD int `json:"spd" yaml:"spd"`
	Spe int `json:"spe" yaml:"spe"`
}

// PartialStats is a sextuple where any stat may be left unspecified (nil).
type PartialStats struct {
	HP  *int `json:"hp,omitempty" yaml:"hp,omitempty"`
	Atk *int `json:"atk,omitempty" yaml:"atk,omitempty"`
	Def *int `json:"def,omitempty" yaml:"def,omitempty"`
	SpA *int `json:"spa,omitempty" yaml:"spa,omitempty"`
	SpD *int `json:"spd,omitempty" yaml:"spd,omitempty"`
	Spe *int `json:"spe,omitempty" yaml:"spe,omitempty"`
}

const (
	MaxIV = 31
	MaxEV = 252
)

// DefaultIVs returns the all-31 IV sextuple.
func DefaultIVs() Stats {
	return Uniform(MaxIV)
}

// DefaultEVs returns the all-0 EV sextuple.
func DefaultEVs() Stats {
	return Stats{}
}

// Uniform returns a sextuple with every stat set to v.
func Uniform(v int) Stats {
	return Stats{HP: v, Atk: v, Def: v, SpA: v, SpD: v, Spe: v}
}

// Apply overlays the specified stats of p onto s, key by key.
func (s Stats) Apply(p *PartialStats) Stats {
	if p == nil {
		return s
	}
	out := s
	if p.HP != nil {
		out.HP = *p.HP
	}
	if p.Atk != nil {
		out.Atk = *p.Atk
	}
	if p.Def != nil {
		out.Def = *p.Def
	}
	if p.SpA != nil {
		out.SpA = *p.SpA
	}
	if p.SpD != nil {
		out.SpD = *p.SpD
	}
	if p.Spe != nil {
		out.Spe = *p.Spe
	}
	return out
}

// IsZero reports whether no stat is specified.
func (p *PartialStats) IsZero() bool {
	return p == nil || (p.HP == nil && p.Atk == nil && p.Def == nil && p.SpA == nil && p.SpD == nil && p.Spe == nil)
}

// Each calls fn for every specified stat, in hp..spe order.
func (p *PartialStats) Each(fn func(stat string, v int)) {
	if p == nil {
		return
	}
	for _, kv := range []struct {
		k string
		v *int
	}{{"hp", p.HP}, {"atk", p.Atk}, {"def", p.Def}, {"spa", p.SpA}, {"spd", p.SpD}, {"spe", p.Spe}} {
		if kv.v != nil {
			fn(kv.k, *kv.v)
		}
	}
}

// Get returns the stat by its short key; ok is false for unknown keys.
func (s Stats) Get(stat string) (int, bool) {
	switch stat {
	case "hp":
		return s.HP, true
	case "atk":
		return s.Atk, true
	case "def":
		return s.Def, true
	case "spa":
		return s.SpA, true
	case "spd":
		return s.SpD, true
	case "spe":
		return s.Spe, true
	}
	return 0, false
}
