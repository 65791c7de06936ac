package models

import "time"

// ScheduleSlot is a placed course-hour: one course occupying one room at
// one (day, slot) position. The whole set for a universe is rebuilt on
// every generation run, never updated incrementally.
type ScheduleSlot struct {
	ID         string    `db:"id" json:"id"`
	UniverseID string    `db:"universe_id" json:"universe_id"`
	Day        int       `db:"day" json:"day"`
	Slot       int       `db:"slot" json:"slot"`
	CourseID   string    `db:"course_id" json:"course_id"`
	TeacherID  string    `db:"teacher_id" json:"teacher_id"`
	GroupID    string    `db:"group_id" json:"group_id"`
	RoomID     string    `db:"room_id" json:"room_id"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
