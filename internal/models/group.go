package models

import "time"

// Group represents a student group attending courses together.
type Group struct {
	ID             string    `db:"id" json:"id"`
	UniverseID     string    `db:"universe_id" json:"universe_id"`
	Name           string    `db:"name" json:"name"`
	Size           int       `db:"size" json:"size"`
	MaxHoursPerDay int       `db:"max_hours_per_day" json:"max_hours_per_day"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// GroupFilter captures filtering options for listing groups.
type GroupFilter struct {
	UniverseID string
	Search     string
	Page       int
	PageSize   int
}
