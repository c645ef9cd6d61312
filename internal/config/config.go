package config

import (
	"errors"

	"github.com/caarlos0/env/v11"

	"evotimetable/internal/genetic"
)

// Config is the environment-variable surface of the evolutionary run. Every
// knob mirrors a genetic.Parameters field and carries the same default.
type Config struct {
	Population       int     `env:"POPULATION_SIZE" envDefault:"100"`
	Generations      int     `env:"MAX_GENERATIONS" envDefault:"200"`
	TournamentSize   int     `env:"TOURNAMENT_SIZE" envDefault:"3"`
	CrossoverRate    float64 `env:"CROSSOVER_RATE" envDefault:"0.8"`
	MutationRate     float64 `env:"MUTATION_RATE" envDefault:"0.05"`
	EliteCount       int     `env:"ELITE_COUNT" envDefault:"5"`
	StagnationWindow int     `env:"STAGNATION_WINDOW" envDefault:"25"`
	SoftThreshold    float64 `env:"SOFT_THRESHOLD" envDefault:"0"`
	HardWeight       float64 `env:"HARD_WEIGHT" envDefault:"1000"`
	GapWeight        float64 `env:"GAP_WEIGHT" envDefault:"1"`
	LoadWeight       float64 `env:"LOAD_WEIGHT" envDefault:"1"`
	FitWeight        float64 `env:"FIT_WEIGHT" envDefault:"1"`
	EarlyBand        int     `env:"EARLY_BAND" envDefault:"1"`
	LateBand         int     `env:"LATE_BAND" envDefault:"6"`
	Seed             int64   `env:"SEED" envDefault:"1"`
	Workers          int     `env:"WORKERS" envDefault:"0"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Only return the first error to keep the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) Parameters() genetic.Parameters {
	return genetic.Parameters{
		PopulationSize:   cfg.Population,
		MaxGenerations:   cfg.Generations,
		TournamentSize:   cfg.TournamentSize,
		CrossoverRate:    cfg.CrossoverRate,
		MutationRate:     cfg.MutationRate,
		EliteCount:       cfg.EliteCount,
		StagnationWindow: cfg.StagnationWindow,
		SoftThreshold:    cfg.SoftThreshold,
		HardWeight:       cfg.HardWeight,
		GapWeight:        cfg.GapWeight,
		LoadWeight:       cfg.LoadWeight,
		FitWeight:        cfg.FitWeight,
		EarlyBand:        cfg.EarlyBand,
		LateBand:         cfg.LateBand,
		Seed:             cfg.Seed,
		Workers:          cfg.Workers,
	}
}
