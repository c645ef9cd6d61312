package genetic

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	"evotimetable/internal/catalog"
)

type Termination int

const (
	Converged Termination = iota
	Stagnated
	GenerationCap
	Cancelled
)

var terminationNames = map[Termination]string{
	Converged:     "converged",
	Stagnated:     "stagnated",
	GenerationCap: "generation-cap",
	Cancelled:     "cancelled",
}

func (t Termination) String() string {
	return terminationNames[t]
}

// InfeasibleScheduleWarning is attached to a result whose best schedule still
// carries hard violations. It is diagnostic, never an error: a degraded
// schedule is still useful output.
type InfeasibleScheduleWarning struct {
	HardViolations int
}

func (w *InfeasibleScheduleWarning) String() string {
	return fmt.Sprintf("best schedule still has %v hard violations", w.HardViolations)
}

// Result is the outcome of one evolutionary run: the best schedule seen
// across all generations together with its diagnostic summary.
type Result struct {
	Best           *Schedule
	HardViolations int
	SoftPenalty    float64
	Fitness        float64
	Generations    int
	Termination    Termination
	Warning        *InfeasibleScheduleWarning
}

// Engine drives the generational loop over a population of schedules
type Engine interface {
	// Run evolves schedules until convergence, stagnation, the generation cap
	// or context cancellation, whichever comes first. The only error it
	// returns is a pre-loop ValidationError; every degraded outcome is
	// reported through the result instead.
	Run(ctx context.Context) (Result, error)
}

func NewEngine(cat *catalog.Catalog, params Parameters) (Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &engine{
		catalog:   cat,
		params:    params,
		factory:   NewFactory(cat),
		evaluator: NewEvaluator(params),
		rng:       rand.New(rand.NewSource(params.Seed)),
	}, nil
}

type individual struct {
	schedule *Schedule
	hard     int
	soft     float64
	fitness  float64
}

type engine struct {
	catalog   *catalog.Catalog
	params    Parameters
	factory   Factory
	evaluator Evaluator
	rng       *rand.Rand
}

func (e *engine) Run(ctx context.Context) (Result, error) {
	if err := e.factory.Validate(); err != nil {
		return Result{}, err
	}

	//** Initialize and evaluate population
	pop := make([]individual, e.params.PopulationSize)
	for i := range pop {
		pop[i].schedule = e.factory.NewSchedule(e.rng)
	}
	e.evaluate(pop)

	best := e.bestOf(pop)
	stale := 0
	generation := 0
	termination := GenerationCap

	for ; generation < e.params.MaxGenerations; generation++ {
		// Suspension points are generation boundaries only
		if ctx.Err() != nil {
			termination = Cancelled
			break
		}
		if best.hard == 0 && best.soft <= e.params.SoftThreshold {
			termination = Converged
			break
		}
		if stale >= e.params.StagnationWindow {
			termination = Stagnated
			break
		}

		pop = e.breed(pop)
		e.evaluate(pop)

		// Elitism keeps the generation best from ever falling below the best
		// seen so far; a strict improvement resets the stagnation counter
		if generationBest := e.bestOf(pop); generationBest.fitness > best.fitness {
			best = generationBest
			stale = 0
		} else {
			stale++
		}
	}

	result := Result{
		Best:           best.schedule,
		HardViolations: best.hard,
		SoftPenalty:    best.soft,
		Fitness:        best.fitness,
		Generations:    generation,
		Termination:    termination,
	}
	if best.hard > 0 {
		result.Warning = &InfeasibleScheduleWarning{HardViolations: best.hard}
	}

	return result, nil
}

// evaluate scores every individual concurrently. Evaluation is a pure
// read-only function of one schedule plus the catalog, so workers share no
// mutable state; the pool wait is the generation's synchronization barrier.
func (e *engine) evaluate(pop []individual) {
	workers := e.params.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	evaluators := pool.New().WithMaxGoroutines(workers)
	for i := range pop {
		evaluators.Go(func() {
			hard, soft := e.evaluator.Evaluate(pop[i].schedule)
			pop[i].hard = hard
			pop[i].soft = soft
			pop[i].fitness = e.params.fitness(hard, soft)
		})
	}
	evaluators.Wait()
}

// breed produces the next population: elites are cloned through unchanged,
// the rest is filled with mutated crossover children of tournament winners.
// Breeding is sequential on the engine's single seeded source, which keeps
// runs reproducible.
func (e *engine) breed(pop []individual) []individual {
	sort.Slice(pop, func(i, j int) bool {
		return pop[i].fitness > pop[j].fitness
	})

	next := make([]individual, 0, e.params.PopulationSize)
	for i := 0; i < e.params.EliteCount; i++ {
		next = append(next, individual{schedule: pop[i].schedule.Clone()})
	}

	for len(next) < e.params.PopulationSize {
		parent1 := pop[e.tournament(pop)]
		parent2 := pop[e.tournament(pop)]

		child1, child2 := e.crossover(parent1.schedule, parent2.schedule)
		e.mutate(child1)
		e.mutate(child2)

		next = append(next, individual{schedule: child1})
		if len(next) < e.params.PopulationSize {
			next = append(next, individual{schedule: child2})
		}
	}

	return next
}

// bestOf returns a deep copy of the fittest individual, detached from the
// population so later breeding cannot touch it
func (e *engine) bestOf(pop []individual) individual {
	best := lo.MaxBy(pop, func(a, b individual) bool {
		return a.fitness > b.fitness
	})

	best.schedule = best.schedule.Clone()
	return best
}
