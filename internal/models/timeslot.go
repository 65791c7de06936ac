package models

import "fmt"

const (
	// DaysPerWeek is the number of working days in the timetable, Monday first.
	DaysPerWeek = 5
	// SlotsPerDay is the number of fixed teaching periods per day.
	SlotsPerDay = 7
)

// DayNames maps 0-based day indexes to weekday names.
var DayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Timeslot is one fixed teaching period in the daily timetable.
type Timeslot struct {
	Index     int    `json:"index"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
}

var slotTimes = [SlotsPerDay][2]string{
	{"07:30", "08:30"},
	{"08:30", "10:00"},
	{"10:10", "11:40"},
	{"11:50", "13:20"},
	{"13:40", "15:10"},
	{"15:20", "16:50"},
	{"17:00", "18:30"},
}

// Timeslots returns the static daily timeslot table.
func Timeslots() []Timeslot {
	slots := make([]Timeslot, SlotsPerDay)
	for i, times := range slotTimes {
		slots[i] = Timeslot{
			Index:     i,
			StartTime: times[0],
			EndTime:   times[1],
			Label:     fmt.Sprintf("%s - %s", times[0], times[1]),
		}
	}
	return slots
}

// DayName returns the weekday name for a 0-based day index.
func DayName(day int) string {
	if day < 0 || day >= DaysPerWeek {
		return fmt.Sprintf("Day %d", day+1)
	}
	return DayNames[day]
}
