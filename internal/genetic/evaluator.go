package genetic

// Evaluator computes the constraint scores of one schedule against the
// immutable catalog. Evaluate is a pure function and safe for concurrent use.
type Evaluator interface {
	Evaluate(s *Schedule) (hard int, soft float64)
}

func NewEvaluator(params Parameters) Evaluator {
	return &constraintEvaluator{params: params}
}

type constraintEvaluator struct {
	params Parameters
}

func (evaluator *constraintEvaluator) Evaluate(s *Schedule) (int, float64) {
	hard := evaluator.hardViolations(s)

	soft := evaluator.params.GapWeight*evaluator.gapPenalty(s) +
		evaluator.params.LoadWeight*evaluator.loadPenalty(s) +
		evaluator.params.FitWeight*evaluator.fitPenalty(s)

	return hard, soft
}

// hardViolations counts double bookings: for every teacher, classroom and
// group, each pair of its lessons sharing a time slot counts once.
func (evaluator *constraintEvaluator) hardViolations(s *Schedule) int {
	teacherSlots := make(map[[2]string]int)
	roomSlots := make(map[[2]string]int)
	groupSlots := make(map[[2]string]int)

	for _, lesson := range s.Lessons {
		teacherSlots[[2]string{lesson.Teacher.Id, lesson.Slot.Id}]++
		roomSlots[[2]string{lesson.Room.Id, lesson.Slot.Id}]++
		groupSlots[[2]string{lesson.Group.Id, lesson.Slot.Id}]++
	}

	violations := 0
	for _, occupancy := range []map[[2]string]int{teacherSlots, roomSlots, groupSlots} {
		for _, count := range occupancy {
			violations += count * (count - 1) / 2 // conflicting lesson pairs
		}
	}

	return violations
}

// gapPenalty counts, for each group and each teacher, the idle periods
// strictly between the first and last occupied period of every day.
func (evaluator *constraintEvaluator) gapPenalty(s *Schedule) float64 {
	type ownerDay struct {
		id  string
		day int
	}

	groupDays := make(map[ownerDay]map[int]bool) // (group, day) -> occupied periods
	teacherDays := make(map[ownerDay]map[int]bool)

	occupy := func(days map[ownerDay]map[int]bool, id string, day, period int) {
		key := ownerDay{id, day}
		if days[key] == nil {
			days[key] = make(map[int]bool)
		}
		days[key][period] = true
	}

	for _, lesson := range s.Lessons {
		occupy(groupDays, lesson.Group.Id, lesson.Slot.Day, lesson.Slot.Period)
		occupy(teacherDays, lesson.Teacher.Id, lesson.Slot.Day, lesson.Slot.Period)
	}

	gaps := 0
	for _, days := range []map[ownerDay]map[int]bool{groupDays, teacherDays} {
		for _, periods := range days {
			first, last := -1, -1
			for period := range periods {
				if first == -1 || period < first {
					first = period
				}
				if period > last {
					last = period
				}
			}
			gaps += (last - first + 1) - len(periods)
		}
	}

	return float64(gaps)
}

// loadPenalty charges lessons scheduled outside the [EarlyBand, LateBand]
// period band the distance to the band
func (evaluator *constraintEvaluator) loadPenalty(s *Schedule) float64 {
	early, late := evaluator.params.EarlyBand, evaluator.params.LateBand

	penalty := 0
	for _, lesson := range s.Lessons {
		if period := lesson.Slot.Period; period < early {
			penalty += early - period
		} else if period > late {
			penalty += period - late
		}
	}

	return float64(penalty)
}

// fitPenalty charges lessons placed in a room that is too small for the group
// or whose type does not match the subject's required room type
func (evaluator *constraintEvaluator) fitPenalty(s *Schedule) float64 {
	penalty := 0
	for _, lesson := range s.Lessons {
		if lesson.Room.Capacity < lesson.Group.Students {
			penalty++
		}
		if lesson.Subject.RoomType != "" && lesson.Room.Type != lesson.Subject.RoomType {
			penalty++
		}
	}

	return float64(penalty)
}
