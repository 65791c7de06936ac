package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/univent/timetable-api/internal/dto"
	"github.com/univent/timetable-api/internal/models"
	appErrors "github.com/univent/timetable-api/pkg/errors"
	"github.com/univent/timetable-api/pkg/export"
)

type slotReader interface {
	ListByUniverse(ctx context.Context, universeID string) ([]models.ScheduleSlot, error)
}

type groupReader interface {
	ListByUniverse(ctx context.Context, universeID string) ([]models.Group, error)
}

type gridCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// TimetableService assembles the read-side weekly grid and its CSV/PDF
// exports. Grids are cached per universe and invalidated whenever the
// generator rewrites the slot set.
type TimetableService struct {
	slots    slotReader
	courses  courseReader
	teachers teacherReader
	groups   groupReader
	rooms    roomReader
	cache    gridCache
	metrics  *MetricsService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTimetableService wires the grid assembler. Cache and metrics are
// optional.
func NewTimetableService(
	slots slotReader,
	courses courseReader,
	teachers teacherReader,
	groups groupReader,
	rooms roomReader,
	cache gridCache,
	metrics *MetricsService,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		slots:    slots,
		courses:  courses,
		teachers: teachers,
		groups:   groups,
		rooms:    rooms,
		cache:    cache,
		metrics:  metrics,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func gridCacheKey(universeID string) string {
	return fmt.Sprintf("timetable:grid:%s", universeID)
}

// Grid returns the full weekly view for a universe, served from cache when
// possible.
func (s *TimetableService) Grid(ctx context.Context, universeID string) (*dto.TimetableGrid, error) {
	if s.cache != nil {
		var cached dto.TimetableGrid
		if err := s.cache.Get(ctx, gridCacheKey(universeID), &cached); err == nil {
			s.metrics.RecordCacheLookup(true)
			return &cached, nil
		}
		s.metrics.RecordCacheLookup(false)
	}

	grid, err := s.buildGrid(ctx, universeID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, gridCacheKey(universeID), grid, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache timetable grid",
				zap.String("universe_id", universeID),
				zap.Error(err),
			)
		}
	}

	return grid, nil
}

// InvalidateGrid drops the cached grid for a universe.
func (s *TimetableService) InvalidateGrid(ctx context.Context, universeID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, gridCacheKey(universeID))
}

func (s *TimetableService) buildGrid(ctx context.Context, universeID string) (*dto.TimetableGrid, error) {
	slots, err := s.slots.ListByUniverse(ctx, universeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule slots")
	}
	courses, err := s.courses.ListByUniverse(ctx, universeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	teachers, err := s.teachers.ListByUniverse(ctx, universeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	groups, err := s.groups.ListByUniverse(ctx, universeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load groups")
	}
	rooms, err := s.rooms.ListByUniverse(ctx, universeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}

	courseByID := lo.KeyBy(courses, func(c models.Course) string { return c.ID })
	teacherByID := lo.KeyBy(teachers, func(t models.Teacher) string { return t.ID })
	groupByID := lo.KeyBy(groups, func(g models.Group) string { return g.ID })
	roomByID := lo.KeyBy(rooms, func(r models.Room) string { return r.ID })

	days := make([]dto.TimetableDay, models.DaysPerWeek)
	for day := range days {
		cells := make([][]dto.TimetableCell, models.SlotsPerDay)
		for slot := range cells {
			cells[slot] = []dto.TimetableCell{}
		}
		days[day] = dto.TimetableDay{
			Name:  models.DayName(day),
			Index: day,
			Slots: cells,
		}
	}

	for _, slot := range slots {
		if slot.Day < 0 || slot.Day >= models.DaysPerWeek || slot.Slot < 0 || slot.Slot >= models.SlotsPerDay {
			s.logger.Warn("skipping slot outside the weekly grid",
				zap.String("slot_id", slot.ID),
				zap.Int("day", slot.Day),
				zap.Int("slot", slot.Slot),
			)
			continue
		}
		cell := dto.TimetableCell{}
		if course, ok := courseByID[slot.CourseID]; ok {
			cell.CourseName = course.Name
			cell.CourseType = course.Type
		}
		if teacher, ok := teacherByID[slot.TeacherID]; ok {
			cell.TeacherName = teacher.Name
		}
		if group, ok := groupByID[slot.GroupID]; ok {
			cell.GroupName = group.Name
		}
		if room, ok := roomByID[slot.RoomID]; ok {
			cell.RoomName = room.Name
		}
		days[slot.Day].Slots[slot.Slot] = append(days[slot.Day].Slots[slot.Slot], cell)
	}

	return &dto.TimetableGrid{
		UniverseID: universeID,
		TotalSlots: len(slots),
		Days:       days,
		Timeslots:  models.Timeslots(),
	}, nil
}

// Export renders the weekly grid as CSV or PDF bytes plus a content type.
func (s *TimetableService) Export(ctx context.Context, universeID, format string) ([]byte, string, error) {
	grid, err := s.Grid(ctx, universeID)
	if err != nil {
		return nil, "", err
	}

	data := gridDataset(grid)
	switch format {
	case "csv":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := s.pdf.Render(data, "Weekly Timetable")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// gridDataset flattens the grid into a time-by-day table: one row per
// timeslot, one column per weekday.
func gridDataset(grid *dto.TimetableGrid) export.Dataset {
	headers := make([]string, 0, models.DaysPerWeek+1)
	headers = append(headers, "Time")
	for _, day := range grid.Days {
		headers = append(headers, day.Name)
	}

	rows := make([]map[string]string, 0, len(grid.Timeslots))
	for slot, ts := range grid.Timeslots {
		row := map[string]string{
			"Time": fmt.Sprintf("%s-%s", ts.StartTime, ts.EndTime),
		}
		for _, day := range grid.Days {
			row[day.Name] = cellText(day.Slots[slot])
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}
}

func cellText(cells []dto.TimetableCell) string {
	if len(cells) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(cells))
	for _, cell := range cells {
		parts = append(parts, fmt.Sprintf("%s (%s)\n%s / %s / %s",
			cell.CourseName, cell.CourseType, cell.TeacherName, cell.GroupName, cell.RoomName))
	}
	return strings.Join(parts, "\n")
}
