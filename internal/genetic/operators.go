package genetic

// tournament draws TournamentSize individuals without replacement and returns
// the index of the fittest among them
func (e *engine) tournament(pop []individual) int {
	best := -1
	for _, contender := range e.rng.Perm(len(pop))[:e.params.TournamentSize] {
		if best == -1 || pop[contender].fitness > pop[best].fitness {
			best = contender
		}
	}
	return best
}

// crossover produces two children from two parents. With CrossoverRate the
// gene triples of corresponding lessons are swapped uniformly, otherwise the
// parents are copied unchanged. Lessons are aligned by position, which is the
// (subject, group, hour) key since every schedule descends from the same
// factory template; the identity part is never exchanged.
func (e *engine) crossover(parent1, parent2 *Schedule) (*Schedule, *Schedule) {
	child1, child2 := parent1.Clone(), parent2.Clone()

	if e.rng.Float64() >= e.params.CrossoverRate {
		return child1, child2
	}

	for i := range child1.Lessons {
		if e.rng.Float64() < 0.5 {
			lesson1, lesson2 := &child1.Lessons[i], &child2.Lessons[i]
			lesson1.Teacher, lesson2.Teacher = lesson2.Teacher, lesson1.Teacher
			lesson1.Room, lesson2.Room = lesson2.Room, lesson1.Room
			lesson1.Slot, lesson2.Slot = lesson2.Slot, lesson1.Slot
		}
	}

	return child1, child2
}

// mutate reassigns, for each lesson independently with MutationRate, one of
// its three genes uniformly at random. Teacher reassignment only draws from
// the subject's qualified set.
func (e *engine) mutate(s *Schedule) {
	cat := e.catalog

	for i := range s.Lessons {
		if e.rng.Float64() >= e.params.MutationRate {
			continue
		}

		lesson := &s.Lessons[i]
		switch e.rng.Intn(3) {
		case 0:
			lesson.Slot = &cat.Slots[e.rng.Intn(len(cat.Slots))]
		case 1:
			qualified := cat.QualifiedTeachers(lesson.Subject.Id)
			lesson.Teacher = qualified[e.rng.Intn(len(qualified))]
		case 2:
			lesson.Room = &cat.Classrooms[e.rng.Intn(len(cat.Classrooms))]
		}
	}
}
