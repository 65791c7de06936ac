package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/univent/timetable-api/internal/dto"
	"github.com/univent/timetable-api/internal/models"
	appErrors "github.com/univent/timetable-api/pkg/errors"
)

// maxPlacementAttempts bounds the search per course: every invocation of the
// slot finder consumes one attempt whether or not it places an hour, so a
// course that can never be fully placed still terminates.
const maxPlacementAttempts = 200

type courseReader interface {
	ListByUniverse(ctx context.Context, universeID string) ([]models.Course, error)
}

type teacherReader interface {
	ListByUniverse(ctx context.Context, universeID string) ([]models.Teacher, error)
}

type roomReader interface {
	ListByUniverse(ctx context.Context, universeID string) ([]models.Room, error)
}

type slotStore interface {
	Replace(ctx context.Context, universeID string, slots []models.ScheduleSlot) error
	DeleteByUniverse(ctx context.Context, universeID string) (int64, error)
}

type gridInvalidator interface {
	InvalidateGrid(ctx context.Context, universeID string) error
}

// ScheduleService owns timetable generation: it rebuilds the full slot set
// for one scheduling universe per run.
type ScheduleService struct {
	courses   courseReader
	teachers  teacherReader
	rooms     roomReader
	slots     slotStore
	grid      gridInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService wires generator dependencies. The grid invalidator and
// metrics service are optional.
func NewScheduleService(
	courses courseReader,
	teachers teacherReader,
	rooms roomReader,
	slots slotStore,
	grid gridInvalidator,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		courses:   courses,
		teachers:  teachers,
		rooms:     rooms,
		slots:     slots,
		grid:      grid,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Generate rebuilds the timetable for a universe. All previously generated
// slots are replaced by the new set in one transaction; a persistence fault
// rolls the whole run back. Courses that could not reach their weekly quota
// within the attempt budget are reported in the shortfall list, not as an
// error.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generate payload")
	}
	start := time.Now()

	courses, err := s.courses.ListByUniverse(ctx, req.UniverseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	if len(courses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no courses to schedule")
	}

	teachers, err := s.teachers.ListByUniverse(ctx, req.UniverseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	rooms, err := s.rooms.ListByUniverse(ctx, req.UniverseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}

	teacherByID := make(map[string]models.Teacher, len(teachers))
	for _, teacher := range teachers {
		teacherByID[teacher.ID] = teacher
	}

	timeslots := models.Timeslots()
	index := newConflictIndex()
	placed := make([]models.ScheduleSlot, 0)
	var shortfalls []dto.CourseShortfall

	for _, course := range courses {
		preferredDays := preferredDaysFor(course, teacherByID)

		// The persisted quota stays untouched; only this counter moves.
		hoursPlaced := 0
		attempts := 0
		for hoursPlaced < course.Hours && attempts < maxPlacementAttempts {
			attempts++
			p, ok := findSlot(course, preferredDays, rooms, index)
			if !ok {
				continue
			}
			index.MarkBusy(p.day, p.slot, course.TeacherID, course.GroupID, p.room.ID)
			placed = append(placed, models.ScheduleSlot{
				UniverseID: req.UniverseID,
				Day:        p.day,
				Slot:       p.slot,
				CourseID:   course.ID,
				TeacherID:  course.TeacherID,
				GroupID:    course.GroupID,
				RoomID:     p.room.ID,
				StartTime:  timeslots[p.slot].StartTime,
				EndTime:    timeslots[p.slot].EndTime,
			})
			hoursPlaced++
		}

		if hoursPlaced < course.Hours {
			shortfalls = append(shortfalls, dto.CourseShortfall{
				CourseID:       course.ID,
				CourseName:     course.Name,
				RequestedHours: course.Hours,
				PlacedHours:    hoursPlaced,
			})
		}
	}

	if err := s.slots.Replace(ctx, req.UniverseID, placed); err != nil {
		s.metrics.ObserveGeneration(0, 0, time.Since(start), false)
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to persist generated schedule")
	}

	if s.grid != nil {
		if err := s.grid.InvalidateGrid(ctx, req.UniverseID); err != nil {
			s.logger.Warn("failed to invalidate timetable cache",
				zap.String("universe_id", req.UniverseID),
				zap.Error(err),
			)
		}
	}

	s.metrics.ObserveGeneration(len(placed), len(shortfalls), time.Since(start), true)
	s.logger.Info("schedule generated",
		zap.String("universe_id", req.UniverseID),
		zap.Int("slots_created", len(placed)),
		zap.Int("courses", len(courses)),
		zap.Int("underplaced_courses", len(shortfalls)),
		zap.Duration("took", time.Since(start)),
	)

	return &dto.GenerateScheduleResult{
		Message:           fmt.Sprintf("Schedule generated: %d lessons placed", len(placed)),
		SlotsCreated:      len(placed),
		CoursesConsidered: len(courses),
		Shortfalls:        shortfalls,
	}, nil
}

// Clear removes every generated slot for a universe. Clearing an already
// empty universe succeeds with zero removals.
func (s *ScheduleService) Clear(ctx context.Context, req dto.ClearScheduleRequest) (*dto.ClearScheduleResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clear payload")
	}

	removed, err := s.slots.DeleteByUniverse(ctx, req.UniverseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to clear schedule")
	}

	if s.grid != nil {
		if err := s.grid.InvalidateGrid(ctx, req.UniverseID); err != nil {
			s.logger.Warn("failed to invalidate timetable cache",
				zap.String("universe_id", req.UniverseID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("schedule cleared",
		zap.String("universe_id", req.UniverseID),
		zap.Int64("slots_removed", removed),
	)

	return &dto.ClearScheduleResult{
		Message:      "Schedule cleared",
		SlotsRemoved: removed,
	}, nil
}

// preferredDaysFor resolves a course teacher's preferred 0-based day order.
// A course without a known teacher falls back to every working day.
func preferredDaysFor(course models.Course, teachers map[string]models.Teacher) []int {
	if teacher, ok := teachers[course.TeacherID]; ok {
		return teacher.PreferredDayIndexes()
	}
	days := make([]int, models.DaysPerWeek)
	for i := range days {
		days[i] = i
	}
	return days
}

// --- Conflict index ---

type occupancyKey struct {
	day  int
	slot int
	id   string
}

// conflictIndex tracks which (day, slot) positions are consumed per teacher,
// group, and room during one generation run. It is owned by a single run and
// thrown away afterwards.
type conflictIndex struct {
	teachers map[occupancyKey]struct{}
	groups   map[occupancyKey]struct{}
	rooms    map[occupancyKey]struct{}
}

func newConflictIndex() *conflictIndex {
	return &conflictIndex{
		teachers: make(map[occupancyKey]struct{}),
		groups:   make(map[occupancyKey]struct{}),
		rooms:    make(map[occupancyKey]struct{}),
	}
}

func (ix *conflictIndex) TeacherBusy(day, slot int, teacherID string) bool {
	_, busy := ix.teachers[occupancyKey{day, slot, teacherID}]
	return busy
}

func (ix *conflictIndex) GroupBusy(day, slot int, groupID string) bool {
	_, busy := ix.groups[occupancyKey{day, slot, groupID}]
	return busy
}

func (ix *conflictIndex) RoomBusy(day, slot int, roomID string) bool {
	_, busy := ix.rooms[occupancyKey{day, slot, roomID}]
	return busy
}

// MarkBusy records a placement across all three dimensions at once.
func (ix *conflictIndex) MarkBusy(day, slot int, teacherID, groupID, roomID string) {
	ix.teachers[occupancyKey{day, slot, teacherID}] = struct{}{}
	ix.groups[occupancyKey{day, slot, groupID}] = struct{}{}
	ix.rooms[occupancyKey{day, slot, roomID}] = struct{}{}
}

// --- Slot finder ---

type placement struct {
	day  int
	slot int
	room models.Room
}

// findSlot searches for the first feasible (day, slot, room) triple for one
// course-hour: preferred days in their stated order, slots ascending, rooms
// in enumeration order. Greedy first fit, no scoring, no backtracking.
func findSlot(course models.Course, preferredDays []int, rooms []models.Room, ix *conflictIndex) (placement, bool) {
	for _, day := range preferredDays {
		for slot := 0; slot < models.SlotsPerDay; slot++ {
			if ix.TeacherBusy(day, slot, course.TeacherID) {
				continue
			}
			if ix.GroupBusy(day, slot, course.GroupID) {
				continue
			}
			for _, room := range rooms {
				if room.Type != course.RoomType {
					continue
				}
				if !room.OpenAt(day, slot) {
					continue
				}
				if ix.RoomBusy(day, slot, room.ID) {
					continue
				}
				return placement{day: day, slot: slot, room: room}, true
			}
		}
	}
	return placement{}, false
}
