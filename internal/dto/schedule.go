package dto

// GenerateScheduleRequest triggers a full rebuild of a universe's timetable.
type GenerateScheduleRequest struct {
	UniverseID string `json:"universe_id" validate:"required"`
}

// ClearScheduleRequest wipes a universe's generated timetable.
type ClearScheduleRequest struct {
	UniverseID string `json:"universe_id" validate:"required"`
}

// CourseShortfall reports a course whose weekly hour quota could not be
// fully placed within the attempt budget.
type CourseShortfall struct {
	CourseID       string `json:"course_id"`
	CourseName     string `json:"course_name"`
	RequestedHours int    `json:"requested_hours"`
	PlacedHours    int    `json:"placed_hours"`
}

// GenerateScheduleResult summarises a completed generation run.
// Shortfalls is empty when every course reached its quota; under-placement
// is not an error at this layer.
type GenerateScheduleResult struct {
	Message           string            `json:"message"`
	SlotsCreated      int               `json:"slots_created"`
	CoursesConsidered int               `json:"total_courses"`
	Shortfalls        []CourseShortfall `json:"shortfalls,omitempty"`
}

// ClearScheduleResult reports the outcome of a clear operation.
type ClearScheduleResult struct {
	Message      string `json:"message"`
	SlotsRemoved int64  `json:"slots_removed"`
}
