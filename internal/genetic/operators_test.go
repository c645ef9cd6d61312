package genetic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"evotimetable/internal/catalog"
)

func testEngine(cat *catalog.Catalog, params Parameters, seed int64) *engine {
	return &engine{
		catalog:   cat,
		params:    params,
		factory:   NewFactory(cat),
		evaluator: NewEvaluator(params),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func assertCurriculum(t *testing.T, cat *catalog.Catalog, schedules ...*Schedule) {
	t.Helper()
	for _, schedule := range schedules {
		counts := schedule.RequirementCounts()
		assert.Len(t, counts, len(cat.Requirements))
		for _, requirement := range cat.Requirements {
			assert.Equal(t, requirement.Hours, counts[[2]string{requirement.Subject, requirement.Group}])
		}
	}
}

func TestOperators(t *testing.T) {
	t.Run("crossover preserves the curriculum and leaves parents intact", func(t *testing.T) {
		// Arrange
		cat := singleCatalog(t, 4, 6, 3)
		params := DefaultParameters()
		params.CrossoverRate = 1
		e := testEngine(cat, params, 7)

		parent1 := e.factory.NewSchedule(e.rng)
		parent2 := e.factory.NewSchedule(e.rng)
		backup1, backup2 := parent1.Clone(), parent2.Clone()

		// Act
		child1, child2 := e.crossover(parent1, parent2)

		// Assert
		assertCurriculum(t, cat, child1, child2)
		assert.Equal(t, backup1.Lessons, parent1.Lessons)
		assert.Equal(t, backup2.Lessons, parent2.Lessons)

		// Corresponding lessons keep their identity, and every gene triple
		// comes wholesale from one of the parents
		for i := range child1.Lessons {
			assert.Equal(t, parent1.Lessons[i].Subject, child1.Lessons[i].Subject)
			assert.Equal(t, parent1.Lessons[i].Group, child1.Lessons[i].Group)
			assert.Equal(t, parent1.Lessons[i].Hour, child1.Lessons[i].Hour)

			fromParent1 := child1.Lessons[i] == parent1.Lessons[i] && child2.Lessons[i] == parent2.Lessons[i]
			fromParent2 := child1.Lessons[i] == parent2.Lessons[i] && child2.Lessons[i] == parent1.Lessons[i]
			assert.True(t, fromParent1 || fromParent2)
		}
	})

	t.Run("crossover below the rate copies parents unchanged", func(t *testing.T) {
		// Arrange
		cat := singleCatalog(t, 3, 5, 2)
		params := DefaultParameters()
		params.CrossoverRate = 0
		e := testEngine(cat, params, 7)

		parent1 := e.factory.NewSchedule(e.rng)
		parent2 := e.factory.NewSchedule(e.rng)

		// Act
		child1, child2 := e.crossover(parent1, parent2)

		// Assert: equal content, independent copies
		assert.Equal(t, parent1.Lessons, child1.Lessons)
		assert.Equal(t, parent2.Lessons, child2.Lessons)

		child1.Lessons[0].Slot = &cat.Slots[1]
		assert.NotEqual(t, parent1.Lessons[0].Slot, child1.Lessons[0].Slot)
	})

	t.Run("mutation reassigns genes but never identity", func(t *testing.T) {
		// Arrange
		cat := singleCatalog(t, 5, 8, 4)
		params := DefaultParameters()
		params.MutationRate = 1
		e := testEngine(cat, params, 11)

		schedule := e.factory.NewSchedule(e.rng)
		before := schedule.Clone()

		// Act
		e.mutate(schedule)

		// Assert
		assertCurriculum(t, cat, schedule)
		for i, lesson := range schedule.Lessons {
			assert.Equal(t, before.Lessons[i].Subject, lesson.Subject)
			assert.Equal(t, before.Lessons[i].Group, lesson.Group)
			assert.Equal(t, before.Lessons[i].Hour, lesson.Hour)
			assert.Contains(t, lesson.Teacher.Subjects, lesson.Subject.Id)
		}
	})

	t.Run("full tournament returns the fittest individual", func(t *testing.T) {
		// Arrange
		cat := singleCatalog(t, 2, 4, 2)
		params := DefaultParameters()
		params.PopulationSize = 8
		params.TournamentSize = 8
		e := testEngine(cat, params, 3)

		pop := make([]individual, params.PopulationSize)
		for i := range pop {
			pop[i].schedule = e.factory.NewSchedule(e.rng)
			pop[i].fitness = float64(i)
		}

		// Act + Assert: drawing the whole population always selects the best
		for i := 0; i < 5; i++ {
			assert.Equal(t, len(pop)-1, e.tournament(pop))
		}
	})
}
