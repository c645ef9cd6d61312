package export

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"evotimetable/internal/genetic"
)

var days = map[int]string{
	0: "Monday",
	1: "Tuesday",
	2: "Wednesday",
	3: "Thursday",
	4: "Friday",
	5: "Saturday",
	6: "Sunday",
}

const (
	timetableSheet = "Timetable"
	summarySheet   = "Summary"
)

// WriteXLSX writes the best schedule and its diagnostic summary to an .xlsx
// file: one row per lesson ordered by day, period and group, plus a summary
// sheet with the run's outcome.
func WriteXLSX(path string, result genetic.Result) error {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(timetableSheet)
	if err != nil {
		return fmt.Errorf("cannot create timetable sheet: %w", err)
	}
	file.SetActiveSheet(index)

	headers := []string{"Day", "Period", "Group", "Subject", "Teacher", "Classroom"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(timetableSheet, cell, header)
	}

	lessons := make([]genetic.Lesson, len(result.Best.Lessons))
	copy(lessons, result.Best.Lessons)
	slices.SortFunc(lessons, func(a, b genetic.Lesson) int {
		if a.Slot.Day != b.Slot.Day {
			return a.Slot.Day - b.Slot.Day
		}
		if a.Slot.Period != b.Slot.Period {
			return a.Slot.Period - b.Slot.Period
		}
		if a.Group.Id < b.Group.Id {
			return -1
		} else if a.Group.Id > b.Group.Id {
			return 1
		}
		return 0
	})

	for i, lesson := range lessons {
		row := i + 2
		file.SetCellValue(timetableSheet, fmt.Sprintf("A%d", row), dayName(lesson.Slot.Day))
		file.SetCellValue(timetableSheet, fmt.Sprintf("B%d", row), lesson.Slot.Period+1)
		file.SetCellValue(timetableSheet, fmt.Sprintf("C%d", row), lesson.Group.Id)
		file.SetCellValue(timetableSheet, fmt.Sprintf("D%d", row), lesson.Subject.Name)
		file.SetCellValue(timetableSheet, fmt.Sprintf("E%d", row), lesson.Teacher.Name)
		file.SetCellValue(timetableSheet, fmt.Sprintf("F%d", row), lesson.Room.Id)
	}

	if _, err := file.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("cannot create summary sheet: %w", err)
	}

	summary := [][2]any{
		{"Hard violations", result.HardViolations},
		{"Soft penalty", result.SoftPenalty},
		{"Fitness", result.Fitness},
		{"Generations", result.Generations},
		{"Termination", result.Termination.String()},
	}
	if result.Warning != nil {
		summary = append(summary, [2]any{"Warning", result.Warning.String()})
	}
	for i, entry := range summary {
		row := i + 1
		file.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), entry[0])
		file.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), entry[1])
	}

	file.DeleteSheet("Sheet1")

	return file.SaveAs(path)
}

func dayName(day int) string {
	if name, ok := days[day]; ok {
		return name
	}
	return fmt.Sprintf("Day %d", day)
}
