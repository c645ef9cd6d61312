package genetic

import "fmt"

// Parameters configures a whole evolutionary run. Every field has a working
// default; hard violations dominate the fitness as long as HardWeight exceeds
// any reachable soft penalty sum, which the defaults guarantee for realistic
// catalog sizes.
type Parameters struct {
	PopulationSize   int
	MaxGenerations   int
	TournamentSize   int
	CrossoverRate    float64
	MutationRate     float64 // per-gene probability
	EliteCount       int
	StagnationWindow int // generations without best-fitness improvement before stopping

	// SoftThreshold is the soft penalty under which a schedule with zero hard
	// violations is considered converged
	SoftThreshold float64

	HardWeight float64
	GapWeight  float64
	LoadWeight float64
	FitWeight  float64

	// EarlyBand and LateBand delimit the comfortable periods of a day; lessons
	// outside the band pay the distance to it, weighted by LoadWeight
	EarlyBand int
	LateBand  int

	Seed    int64
	Workers int // evaluation goroutines; 0 means one per CPU
}

func DefaultParameters() Parameters {
	return Parameters{
		PopulationSize:   100,
		MaxGenerations:   200,
		TournamentSize:   3,
		CrossoverRate:    0.8,
		MutationRate:     0.05,
		EliteCount:       5,
		StagnationWindow: 25,
		SoftThreshold:    0,
		HardWeight:       1000,
		GapWeight:        1,
		LoadWeight:       1,
		FitWeight:        1,
		EarlyBand:        1,
		LateBand:         6,
		Seed:             1,
		Workers:          0,
	}
}

func (p Parameters) Validate() error {
	if p.PopulationSize <= 0 {
		return fmt.Errorf("population size must be positive: %v", p.PopulationSize)
	} else if p.MaxGenerations <= 0 {
		return fmt.Errorf("max generations must be positive: %v", p.MaxGenerations)
	} else if p.TournamentSize <= 0 || p.TournamentSize > p.PopulationSize {
		return fmt.Errorf("tournament size must be between 1 and the population size: %v", p.TournamentSize)
	} else if p.CrossoverRate < 0 || p.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be between 0 and 1: %v", p.CrossoverRate)
	} else if p.MutationRate < 0 || p.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be between 0 and 1: %v", p.MutationRate)
	} else if p.EliteCount < 0 || p.EliteCount >= p.PopulationSize {
		return fmt.Errorf("elite count must be between 0 and the population size: %v", p.EliteCount)
	} else if p.StagnationWindow <= 0 {
		return fmt.Errorf("stagnation window must be positive: %v", p.StagnationWindow)
	} else if p.HardWeight <= 0 {
		return fmt.Errorf("hard weight must be positive: %v", p.HardWeight)
	} else if p.GapWeight < 0 || p.LoadWeight < 0 || p.FitWeight < 0 || p.SoftThreshold < 0 {
		return fmt.Errorf("soft weights and threshold must not be negative")
	} else if p.EarlyBand > p.LateBand {
		return fmt.Errorf("early band %v must not exceed late band %v", p.EarlyBand, p.LateBand)
	} else if p.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %v", p.Workers)
	}
	return nil
}

// fitness maps a constraint score onto (0, 1], higher is better. HardWeight
// keeps any schedule with fewer hard violations above one with more.
func (p Parameters) fitness(hard int, soft float64) float64 {
	return 1 / (1 + float64(hard)*p.HardWeight + soft)
}
