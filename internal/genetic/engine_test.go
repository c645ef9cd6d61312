package genetic

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"

	"evotimetable/internal/catalog"
)

// sharedTeacherCatalog is Scenario C's shape: two groups, two subjects taught
// by one shared teacher, four slots and one classroom — feasible only when
// every lesson lands in its own slot
func sharedTeacherCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return buildCatalog(t, catalog.Input{
		Slots:    slotsOn(0, 1, 4),
		Subjects: []catalog.Subject{{Id: "math", Name: "Mathematics"}, {Id: "lit", Name: "Literature"}},
		Groups:   []catalog.Group{{Id: "g1", Students: 20}, {Id: "g2", Students: 22}},
		Teachers: []catalog.Teacher{{Id: "t1", Name: "Turing", Subjects: []string{"math", "lit"}}},
		Classrooms: []catalog.Classroom{
			{Id: "A", Capacity: 30},
		},
		Requirements: []catalog.Requirement{
			{Subject: "math", Group: "g1", Hours: 2},
			{Subject: "lit", Group: "g2", Hours: 2},
		},
	})
}

func TestEngineRun(t *testing.T) {
	t.Run("small feasible instance reaches zero hard violations", func(t *testing.T) {
		// Arrange: Scenario A
		g := NewWithT(t)
		engine, err := NewEngine(singleCatalog(t, 3, 3, 1), DefaultParameters())
		g.Expect(err).NotTo(HaveOccurred())

		// Act
		result, err := engine.Run(context.Background())

		// Assert
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(result.HardViolations).To(BeZero())
		g.Expect(result.Warning).To(BeNil())
		g.Expect(result.Best.Lessons).To(HaveLen(3))
	})

	t.Run("shared teacher instance converges under default parameters", func(t *testing.T) {
		// Arrange: Scenario C
		g := NewWithT(t)
		engine, err := NewEngine(sharedTeacherCatalog(t), DefaultParameters())
		g.Expect(err).NotTo(HaveOccurred())

		// Act
		result, err := engine.Run(context.Background())

		// Assert
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(result.HardViolations).To(BeZero())
		g.Expect(result.Generations).To(BeNumerically("<=", 200))
	})

	t.Run("identical seeds produce identical runs", func(t *testing.T) {
		// Arrange
		g := NewWithT(t)
		params := DefaultParameters()
		params.Seed = 99
		params.MaxGenerations = 30

		run := func() Result {
			engine, err := NewEngine(sharedTeacherCatalog(t), params)
			g.Expect(err).NotTo(HaveOccurred())
			result, err := engine.Run(context.Background())
			g.Expect(err).NotTo(HaveOccurred())
			return result
		}

		// Act
		result1, result2 := run(), run()

		// Assert
		g.Expect(result1.HardViolations).To(Equal(result2.HardViolations))
		g.Expect(result1.SoftPenalty).To(Equal(result2.SoftPenalty))
		g.Expect(result1.Generations).To(Equal(result2.Generations))
		g.Expect(result1.Termination).To(Equal(result2.Termination))
		for i := range result1.Best.Lessons {
			g.Expect(result1.Best.Lessons[i].Teacher.Id).To(Equal(result2.Best.Lessons[i].Teacher.Id))
			g.Expect(result1.Best.Lessons[i].Room.Id).To(Equal(result2.Best.Lessons[i].Room.Id))
			g.Expect(result1.Best.Lessons[i].Slot.Id).To(Equal(result2.Best.Lessons[i].Slot.Id))
		}
	})

	t.Run("cancellation returns the best schedule so far", func(t *testing.T) {
		// Arrange: Scenario D, the context is already cancelled
		g := NewWithT(t)
		engine, err := NewEngine(sharedTeacherCatalog(t), DefaultParameters())
		g.Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Act
		result, err := engine.Run(ctx)

		// Assert: a structurally valid schedule comes back immediately
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(result.Termination).To(Equal(Cancelled))
		g.Expect(result.Generations).To(BeZero())
		g.Expect(result.Best).NotTo(BeNil())
		assertCurriculum(t, sharedTeacherCatalog(t), result.Best)
	})

	t.Run("infeasible instance ends with a warning, not an error", func(t *testing.T) {
		// Arrange: four required hours against two slots force the group into
		// double bookings no search can repair
		g := NewWithT(t)
		params := DefaultParameters()
		params.MaxGenerations = 10
		engine, err := NewEngine(singleCatalog(t, 4, 2, 2), params)
		g.Expect(err).NotTo(HaveOccurred())

		// Act
		result, err := engine.Run(context.Background())

		// Assert
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(result.Warning).NotTo(BeNil())
		g.Expect(result.Warning.HardViolations).To(Equal(result.HardViolations))
		g.Expect(result.HardViolations).To(BeNumerically(">=", 2))
	})

	t.Run("validation failure aborts before the loop", func(t *testing.T) {
		// Arrange: Scenario B
		g := NewWithT(t)
		engine, err := NewEngine(singleCatalog(t, 3, 2, 1), DefaultParameters())
		g.Expect(err).NotTo(HaveOccurred())

		// Act
		result, err := engine.Run(context.Background())

		// Assert
		g.Expect(err).To(HaveOccurred())
		g.Expect(err).To(BeAssignableToTypeOf(&ValidationError{}))
		g.Expect(result.Best).To(BeNil())
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		// Arrange
		g := NewWithT(t)
		params := DefaultParameters()
		params.EliteCount = params.PopulationSize

		// Act
		engine, err := NewEngine(singleCatalog(t, 2, 3, 1), params)

		// Assert
		g.Expect(err).To(HaveOccurred())
		g.Expect(engine).To(BeNil())
	})
}

func TestEngineGenerations(t *testing.T) {
	t.Run("population size is constant and best fitness never decreases", func(t *testing.T) {
		// Arrange: a contended instance so fitness keeps something to improve
		g := NewWithT(t)
		params := DefaultParameters()
		params.PopulationSize = 40
		params.EliteCount = 2
		e := testEngine(singleCatalog(t, 6, 8, 1), params, 5)

		pop := make([]individual, params.PopulationSize)
		for i := range pop {
			pop[i].schedule = e.factory.NewSchedule(e.rng)
		}
		e.evaluate(pop)
		best := e.bestOf(pop).fitness

		// Act + Assert
		for i := 0; i < 15; i++ {
			pop = e.breed(pop)
			e.evaluate(pop)

			g.Expect(pop).To(HaveLen(params.PopulationSize))
			generationBest := e.bestOf(pop).fitness
			g.Expect(generationBest).To(BeNumerically(">=", best))
			best = generationBest

			for i := range pop {
				assertCurriculum(t, e.catalog, pop[i].schedule)
			}
		}
	})
}
