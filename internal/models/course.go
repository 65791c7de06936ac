package models

import "time"

// Course ties a teacher and a group to a weekly hour quota that the
// generator must place into rooms of the required type. Hours is the
// static weekly requirement; generation never mutates it.
type Course struct {
	ID         string    `db:"id" json:"id"`
	UniverseID string    `db:"universe_id" json:"universe_id"`
	Name       string    `db:"name" json:"name"`
	Type       string    `db:"type" json:"type"`
	Hours      int       `db:"hours" json:"hours"`
	TeacherID  string    `db:"teacher_id" json:"teacher_id"`
	GroupID    string    `db:"group_id" json:"group_id"`
	RoomType   string    `db:"room_type" json:"room_type"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter captures filtering options for listing courses.
type CourseFilter struct {
	UniverseID string
	Search     string
	TeacherID  string
	GroupID    string
	Page       int
	PageSize   int
}
