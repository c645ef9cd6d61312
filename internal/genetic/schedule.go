package genetic

import (
	"evotimetable/internal/catalog"
)

// Lesson is one atomic cell of a schedule. Subject, Group and Hour form the
// lesson's fixed identity derived from a curriculum requirement; Teacher, Room
// and Slot are the genes the search reassigns.
type Lesson struct {
	Subject *catalog.Subject
	Group   *catalog.Group
	Hour    int // ordinal of this lesson within its requirement

	Teacher *catalog.Teacher
	Room    *catalog.Classroom
	Slot    *catalog.TimeSlot
}

// Schedule is one chromosome: an ordered sequence of lessons whose
// (subject, group) multiset reproduces the curriculum requirements exactly.
// A schedule owns its lessons; operators always work on clones.
type Schedule struct {
	Lessons []Lesson
}

func (s *Schedule) Clone() *Schedule {
	lessons := make([]Lesson, len(s.Lessons))
	copy(lessons, s.Lessons)
	return &Schedule{Lessons: lessons}
}

// RequirementCounts returns the number of lessons per (subject, group) pair
func (s *Schedule) RequirementCounts() map[[2]string]int {
	counts := make(map[[2]string]int)
	for _, lesson := range s.Lessons {
		counts[[2]string{lesson.Subject.Id, lesson.Group.Id}]++
	}
	return counts
}
