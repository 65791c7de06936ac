package models

import (
	"strconv"
	"strings"
	"time"
)

// Teacher represents an instructor record.
type Teacher struct {
	ID             string    `db:"id" json:"id"`
	UniverseID     string    `db:"universe_id" json:"universe_id"`
	Name           string    `db:"name" json:"name"`
	MaxHoursPerDay int       `db:"max_hours_per_day" json:"max_hours_per_day"`
	PreferredDays  string    `db:"preferred_days" json:"preferred_days"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// PreferredDayIndexes parses the comma-separated 1-based weekday list
// ("2,4" means Tuesday and Thursday) into 0-based day indexes, preserving
// the stated order. An empty or fully malformed list means no preference,
// so every working day qualifies. Malformed or out-of-range entries are
// skipped rather than reported; the predicate stays total.
func (t Teacher) PreferredDayIndexes() []int {
	var days []int
	for _, token := range strings.Split(t.PreferredDays, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		day, err := strconv.Atoi(token)
		if err != nil || day < 1 || day > DaysPerWeek {
			continue
		}
		days = append(days, day-1)
	}
	if len(days) == 0 {
		days = make([]int, DaysPerWeek)
		for i := range days {
			days[i] = i
		}
	}
	return days
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	UniverseID string
	Search     string
	Page       int
	PageSize   int
}
