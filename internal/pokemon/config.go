package pokemon

// Config is the fully merged configuration of one combatant.
type Config struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Ability     string   `json:"ability,omitempty"`
	Item        string   `json:"item,omitempty"`
	Nature      string   `json:"nature"`
	IVs         Stats    `json:"ivs"`
	EVs         Stats    `json:"evs"`
	Boosts      Stats    `json:"boosts"`
	CurHP       *int     `json:"curHP,omitempty"` // nil means full HP
	Status      string   `json:"status,omitempty"`
	IsDynamaxed bool     `json:"isDynamaxed"`
	Moves       []string `json:"moves"`
}

const (
	DefaultLevel  = 100
	DefaultNature = "Serious"
)

// DefaultConfig returns the base layer every combatant starts from.
func DefaultConfig() Config {
	return Config{
		Level:  DefaultLevel,
		Nature: DefaultNature,
		IVs:    DefaultIVs(),
		EVs:    DefaultEVs(),
		Moves:  []string{},
	}
}
