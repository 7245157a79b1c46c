package pokemon

// Side holds the battlefield flags of one side.
type Side struct {
	IsSR          bool `json:"isSR" yaml:"isSR"`
	Spikes        int  `json:"spikes" yaml:"spikes"` // 0..3 layers
	IsReflect     bool `json:"isReflect" yaml:"isReflect"`
	IsLightScreen bool `json:"isLightScreen" yaml:"isLightScreen"`
}

// Conditions are the global flags shared by both attack directions.
type Conditions struct {
	Weather         string `json:"weather,omitempty" yaml:"weather,omitempty"`
	Terrain         string `json:"terrain,omitempty" yaml:"terrain,omitempty"`
	IsGravity       bool   `json:"isGravity" yaml:"isGravity"`
	IsMagicRoom     bool   `json:"isMagicRoom" yaml:"isMagicRoom"`
	IsWonderRoom    bool   `json:"isWonderRoom" yaml:"isWonderRoom"`
	IsBeadsOfRuin   bool   `json:"isBeadsOfRuin" yaml:"isBeadsOfRuin"`
	IsSwordOfRuin   bool   `json:"isSwordOfRuin" yaml:"isSwordOfRuin"`
	IsTabletsOfRuin bool   `json:"isTabletsOfRuin" yaml:"isTabletsOfRuin"`
	IsVesselOfRuin  bool   `json:"isVesselOfRuin" yaml:"isVesselOfRuin"`
}

// FieldSpec is the field as a request describes it: global flags plus the
// side conditions of each combatant.
type FieldSpec struct {
	Conditions   `yaml:",inline"`
	Pokemon1Side Side `json:"pokemon1Side" yaml:"pokemon1Side"`
	Pokemon2Side Side `json:"pokemon2Side" yaml:"pokemon2Side"`
}

// Field is a FieldSpec oriented for one attack direction.
type Field struct {
	Conditions
	AttackerSide Side `json:"attackerSide"`
	DefenderSide Side `json:"defenderSide"`
}

// Orient assigns the attacking combatant's side as the attacker side.
// attacker is 1 or 2.
func (f FieldSpec) Orient(attacker int) Field {
	if attacker == 2 {
		return Field{Conditions: f.Conditions, AttackerSide: f.Pokemon2Side, DefenderSide: f.Pokemon1Side}
	}
	return Field{Conditions: f.Conditions, AttackerSide: f.Pokemon1Side, DefenderSide: f.Pokemon2Side}
}
