package dto

import "github.com/univent/timetable-api/internal/models"

// TimetableCell summarises one placed slot for presentation.
type TimetableCell struct {
	CourseName  string `json:"course_name"`
	CourseType  string `json:"course_type"`
	TeacherName string `json:"teacher_name"`
	GroupName   string `json:"group_name"`
	RoomName    string `json:"room_name"`
}

// TimetableDay is one weekday column of the grid. Slots is indexed by slot
// number; an empty cell is an empty list, never nil.
type TimetableDay struct {
	Name  string            `json:"name"`
	Index int               `json:"index"`
	Slots [][]TimetableCell `json:"slots"`
}

// TimetableGrid is the read-side weekly view of a universe's timetable.
type TimetableGrid struct {
	UniverseID string            `json:"universe_id"`
	TotalSlots int               `json:"total_slots"`
	Days       []TimetableDay    `json:"days"`
	Timeslots  []models.Timeslot `json:"timeslots"`
}
