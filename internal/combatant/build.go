package combatant

import (
	"errors"
	"strings"

	"github.com/xtding233/matchup-backend/internal/dataset"
	"github.com/xtding233/matchup-backend/internal/pokemon"
)

var ErrMissingPokemonName = errors.New("pokemon name is required")

// TrainerRef points at a trainer preset of a species.
type TrainerRef struct {
	Pokemon string `json:"pokemon" yaml:"pokemon"`
	Trainer string `json:"trainer" yaml:"trainer"`
}

// RawConfig is one combatant as a request supplies it. Nil pointers and
// nil stat sextuples mean "not supplied".
type RawConfig struct {
	Name        string                `json:"name,omitempty" yaml:"name,omitempty"`
	Level       *int                  `json:"level,omitempty" yaml:"level,omitempty"`
	Ability     *string               `json:"ability,omitempty" yaml:"ability,omitempty"`
	Item        *string               `json:"item,omitempty" yaml:"item,omitempty"`
	Nature      *string               `json:"nature,omitempty" yaml:"nature,omitempty"`
	IVs         *pokemon.PartialStats `json:"ivs,omitempty" yaml:"ivs,omitempty"`
	EVs         *pokemon.PartialStats `json:"evs,omitempty" yaml:"evs,omitempty"`
	Boosts      *pokemon.PartialStats `json:"boosts,omitempty" yaml:"boosts,omitempty"`
	CurHP       *int                  `json:"curHP,omitempty" yaml:"curHP,omitempty"`
	Status      *string               `json:"status,omitempty" yaml:"status,omitempty"`
	IsDynamaxed *bool                 `json:"isDynamaxed,omitempty" yaml:"isDynamaxed,omitempty"`
	Moves       []string              `json:"moves,omitempty" yaml:"moves,omitempty"`
	TrainerSet  *TrainerRef           `json:"trainerSet,omitempty" yaml:"trainerSet,omitempty"`
}

// HasTrainer reports whether raw refers to a trainer preset.
func (raw RawConfig) HasTrainer() bool {
	return raw.TrainerSet != nil && strings.TrimSpace(raw.TrainerSet.Trainer) != ""
}

// PresetResolver looks up one trainer preset.
type PresetResolver interface {
	ResolveOne(gen int, species, trainerName string) (dataset.Preset, error)
}

// Builder merges defaults, request fields and trainer presets.
type Builder struct {
	presets PresetResolver
}

func NewBuilder(presets PresetResolver) *Builder {
	return &Builder{presets: presets}
}

// Build merges defaults, then explicit fields, then the trainer preset.
func (b *Builder) Build(gen int, raw RawConfig) (pokemon.Config, error) {
	cfg := applyExplicit(pokemon.DefaultConfig(), raw)

	if raw.HasTrainer() {
		ref := raw.TrainerSet
		p, err := b.presets.ResolveOne(gen, ref.Pokemon, ref.Trainer)
		if err != nil {
			return pokemon.Config{}, err
		}
		cfg = applyPreset(cfg, ref.Pokemon, p, raw)
	}

	if strings.TrimSpace(cfg.Name) == "" {
		return pokemon.Config{}, ErrMissingPokemonName
	}
	return cfg, nil
}

// applyExplicit lays supplied request fields over base. Partial stat maps
// merge key by key.
func applyExplicit(base pokemon.Config, raw RawConfig) pokemon.Config {
	out := base
	out.Name = strings.TrimSpace(raw.Name)
	if raw.Level != nil {
		out.Level = *raw.Level
	}
	if raw.Ability != nil {
		out.Ability = *raw.Ability
	}
	if raw.Item != nil {
		out.Item = *raw.Item
	}
	if raw.Nature != nil {
		out.Nature = *raw.Nature
	}
	out.IVs = base.IVs.Apply(raw.IVs)
	out.EVs = base.EVs.Apply(raw.EVs)
	out.Boosts = base.Boosts.Apply(raw.Boosts)
	if raw.CurHP != nil {
		hp := *raw.CurHP
		out.CurHP = &hp
	}
	if raw.Status != nil {
		out.Status = *raw.Status
	}
	if raw.IsDynamaxed != nil {
		out.IsDynamaxed = *raw.IsDynamaxed
	}
	if raw.Moves != nil {
		out.Moves = append([]string{}, raw.Moves...)
	}
	return out
}

// applyPreset lays a resolved preset over cfg:
//   - name becomes the species;
//   - level/ability/item/nature come from the preset when it sets them;
//   - IVs/EVs are rebuilt from defaults, then the preset, then request values;
//   - moves are replaced by the preset's moves when it has any;
//   - boosts, current HP, status and dynamax keep their request values.
func applyPreset(cfg pokemon.Config, species string, p dataset.Preset, raw RawConfig) pokemon.Config {
	out := cfg
	out.Name = species
	if p.Level != nil {
		out.Level = *p.Level
	}
	if p.Ability != "" {
		out.Ability = p.Ability
	}
	if p.Item != "" {
		out.Item = p.Item
	}
	if p.Nature != "" {
		out.Nature = p.Nature
	}
	out.IVs = pokemon.DefaultIVs().Apply(p.IVs).Apply(raw.IVs)
	out.EVs = pokemon.DefaultEVs().Apply(p.EVs).Apply(raw.EVs)
	if len(p.Moves) > 0 {
		out.Moves = append([]string{}, p.Moves...)
	}
	return out
}
