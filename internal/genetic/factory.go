package genetic

import (
	"fmt"
	"math/rand"

	"evotimetable/internal/catalog"
)

// ValidationError reports a catalog that is structurally infeasible regardless
// of search: either a required (subject, group) pair has no qualified teacher,
// or the required hours cannot fit into the available slot-room cells.
type ValidationError struct {
	Subject  string
	Group    string
	Required int
	Capacity int
}

func (err *ValidationError) Error() string {
	if err.Subject != "" {
		return fmt.Sprintf("no qualified teacher for subject %v required by group %v", err.Subject, err.Group)
	}
	return fmt.Sprintf("required hours exceed slot-room capacity: %v > %v", err.Required, err.Capacity)
}

// Factory builds structurally valid random schedules: one lesson per required
// (subject, group, hour), each with uniformly random genes.
type Factory interface {
	// Validate fails with a ValidationError when no schedule the factory could
	// ever produce can reach zero hard violations
	Validate() error

	// NewSchedule returns a fresh random schedule; deterministic given rng
	NewSchedule(rng *rand.Rand) *Schedule
}

func NewFactory(cat *catalog.Catalog) Factory {
	factory := &scheduleFactory{catalog: cat}

	// The fixed identity part of every chromosome is shared through this
	// template; NewSchedule copies it and fills in the genes
	for _, requirement := range cat.Requirements {
		for hour := 0; hour < requirement.Hours; hour++ {
			factory.template = append(factory.template, Lesson{
				Subject: cat.Subject(requirement.Subject),
				Group:   cat.Group(requirement.Group),
				Hour:    hour,
			})
		}
	}

	return factory
}

type scheduleFactory struct {
	catalog  *catalog.Catalog
	template []Lesson
}

func (factory *scheduleFactory) Validate() error {
	for _, requirement := range factory.catalog.Requirements {
		if len(factory.catalog.QualifiedTeachers(requirement.Subject)) == 0 {
			return &ValidationError{Subject: requirement.Subject, Group: requirement.Group}
		}
	}

	required := factory.catalog.RequiredHours()
	capacity := len(factory.catalog.Slots) * len(factory.catalog.Classrooms)
	if required > capacity {
		return &ValidationError{Required: required, Capacity: capacity}
	}

	return nil
}

func (factory *scheduleFactory) NewSchedule(rng *rand.Rand) *Schedule {
	cat := factory.catalog

	lessons := make([]Lesson, len(factory.template))
	copy(lessons, factory.template)

	for i := range lessons {
		qualified := cat.QualifiedTeachers(lessons[i].Subject.Id)

		lessons[i].Teacher = qualified[rng.Intn(len(qualified))]
		lessons[i].Room = &cat.Classrooms[rng.Intn(len(cat.Classrooms))]
		lessons[i].Slot = &cat.Slots[rng.Intn(len(cat.Slots))]
	}

	return &Schedule{Lessons: lessons}
}
