package matchup

import (
	"fmt"

	"github.com/xtding233/matchup-backend/internal/combatant"
	"github.com/xtding233/matchup-backend/internal/dataset"
	"github.com/xtding233/matchup-backend/internal/pokemon"
	"github.com/xtding233/matchup-backend/internal/trainer"
)

// Service answers matchup and trainer-set queries against the dataset
// snapshot current when each call starts.
type Service struct {
	source dataset.Source
	engine Engine
}

func NewService(source dataset.Source, engine Engine) *Service {
	return &Service{source: source, engine: engine}
}

// Calculate resolves both combatants and computes the matchup.
func (s *Service) Calculate(req Request) (Result, error) {
	idx := s.source.Index()
	builder := combatant.NewBuilder(trainer.NewResolver(idx))

	cfg1, err := builder.Build(req.Generation, req.Pokemon1)
	if err != nil {
		return Result{}, fmt.Errorf("pokemon1: %w", err)
	}
	cfg2, err := builder.Build(req.Generation, req.Pokemon2)
	if err != nil {
		return Result{}, fmt.Errorf("pokemon2: %w", err)
	}

	var field pokemon.FieldSpec
	if req.Field != nil {
		field = *req.Field
	}
	return NewOrchestrator(s.engine).Compute(req.Generation, cfg1, cfg2, field)
}

// TrainerSet returns the preset ResolveOne picks.
func (s *Service) TrainerSet(gen int, species, trainerName string) (dataset.Preset, error) {
	return trainer.NewResolver(s.source.Index()).ResolveOne(gen, species, trainerName)
}

// TrainerSets lists every preset matching trainerName in gen.
func (s *Service) TrainerSets(gen int, trainerName string) ([]trainer.Match, error) {
	return trainer.NewResolver(s.source.Index()).ResolveAll(gen, trainerName)
}

// Generations lists generations with loaded trainer sets.
func (s *Service) Generations() []int {
	return s.source.Index().Generations()
}
