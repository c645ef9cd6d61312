package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// TimeSlot is one teaching period of the week, identified by day and period indices
type TimeSlot struct {
	Id     string `mapstructure:"id" validate:"required"`
	Day    int    `mapstructure:"day" validate:"min=0"`
	Period int    `mapstructure:"period" validate:"min=0"`
}

type Subject struct {
	Id   string `mapstructure:"id" validate:"required"`
	Name string `mapstructure:"name" validate:"required"`
	// RoomType is the classroom type this subject should be taught in; empty means any room
	RoomType string `mapstructure:"roomType"`
}

type Group struct {
	Id       string `mapstructure:"id" validate:"required"`
	Students int    `mapstructure:"students" validate:"gt=0"`
}

type Teacher struct {
	Id   string `mapstructure:"id" validate:"required"`
	Name string `mapstructure:"name" validate:"required"`
	// Subjects holds the ids of the subjects the teacher is qualified to teach
	Subjects []string `mapstructure:"subjects" validate:"min=1"`
}

type Classroom struct {
	Id       string `mapstructure:"id" validate:"required"`
	Capacity int    `mapstructure:"capacity" validate:"gt=0"`
	Type     string `mapstructure:"type"`
}

// Requirement states how many weekly hours of a subject a group must receive
type Requirement struct {
	Subject string `mapstructure:"subject" validate:"required"`
	Group   string `mapstructure:"group" validate:"required"`
	Hours   int    `mapstructure:"hours" validate:"gt=0"`
}

// Input is the raw, not-yet-validated catalog as decoded from the input file
type Input struct {
	Slots        []TimeSlot    `mapstructure:"slots" validate:"min=1,dive"`
	Subjects     []Subject     `mapstructure:"subjects" validate:"min=1,dive"`
	Groups       []Group       `mapstructure:"groups" validate:"min=1,dive"`
	Teachers     []Teacher     `mapstructure:"teachers" validate:"min=1,dive"`
	Classrooms   []Classroom   `mapstructure:"classrooms" validate:"min=1,dive"`
	Requirements []Requirement `mapstructure:"requirements" validate:"min=1,dive"`
}

// Catalog is the immutable, cross-validated view of the scheduling entities.
// It is read-only for the lifetime of a run; every reference held by a lesson
// points into the slices below.
type Catalog struct {
	Slots        []TimeSlot
	Subjects     []Subject
	Groups       []Group
	Teachers     []Teacher
	Classrooms   []Classroom
	Requirements []Requirement

	subjects  map[string]*Subject
	groups    map[string]*Group
	qualified map[string][]*Teacher // subject id -> teachers qualified to teach it
}

func New(input Input) (*Catalog, error) {
	if err := validator.New().Struct(input); err != nil {
		return nil, fmt.Errorf("invalid catalog input: %w", err)
	}

	catalog := &Catalog{
		Slots:        input.Slots,
		Subjects:     input.Subjects,
		Groups:       input.Groups,
		Teachers:     input.Teachers,
		Classrooms:   input.Classrooms,
		Requirements: input.Requirements,
		subjects:     make(map[string]*Subject),
		groups:       make(map[string]*Group),
		qualified:    make(map[string][]*Teacher),
	}

	// Verify ids are unique within each entity kind
	for kind, ids := range map[string][]string{
		"slot":      lo.Map(catalog.Slots, func(s TimeSlot, _ int) string { return s.Id }),
		"subject":   lo.Map(catalog.Subjects, func(s Subject, _ int) string { return s.Id }),
		"group":     lo.Map(catalog.Groups, func(g Group, _ int) string { return g.Id }),
		"teacher":   lo.Map(catalog.Teachers, func(t Teacher, _ int) string { return t.Id }),
		"classroom": lo.Map(catalog.Classrooms, func(c Classroom, _ int) string { return c.Id }),
	} {
		if duplicates := lo.FindDuplicates(ids); len(duplicates) > 0 {
			return nil, fmt.Errorf("duplicated %v ids: %v", kind, duplicates)
		}
	}

	for i := range catalog.Subjects {
		catalog.subjects[catalog.Subjects[i].Id] = &catalog.Subjects[i]
	}
	for i := range catalog.Groups {
		catalog.groups[catalog.Groups[i].Id] = &catalog.Groups[i]
	}

	// Verify teacher qualifications reference existing subjects
	for i := range catalog.Teachers {
		teacher := &catalog.Teachers[i]
		for _, subject := range teacher.Subjects {
			if _, ok := catalog.subjects[subject]; !ok {
				return nil, fmt.Errorf("teacher %v is qualified for unknown subject %v", teacher.Id, subject)
			}
			catalog.qualified[subject] = append(catalog.qualified[subject], teacher)
		}
	}

	// Verify requirements reference existing subjects and groups, once per pair
	pairs := make(map[[2]string]bool)
	for _, requirement := range catalog.Requirements {
		if _, ok := catalog.subjects[requirement.Subject]; !ok {
			return nil, fmt.Errorf("requirement references unknown subject %v", requirement.Subject)
		}
		if _, ok := catalog.groups[requirement.Group]; !ok {
			return nil, fmt.Errorf("requirement references unknown group %v", requirement.Group)
		}

		pair := [2]string{requirement.Subject, requirement.Group}
		if pairs[pair] {
			return nil, fmt.Errorf("duplicated requirement for subject %v and group %v", requirement.Subject, requirement.Group)
		}
		pairs[pair] = true
	}

	return catalog, nil
}

func (c *Catalog) Subject(id string) *Subject {
	return c.subjects[id]
}

func (c *Catalog) Group(id string) *Group {
	return c.groups[id]
}

// QualifiedTeachers returns the teachers qualified to teach the subject
func (c *Catalog) QualifiedTeachers(subject string) []*Teacher {
	return c.qualified[subject]
}

// RequiredHours is the total hour count over all requirements
func (c *Catalog) RequiredHours() int {
	return lo.SumBy(c.Requirements, func(r Requirement) int { return r.Hours })
}
