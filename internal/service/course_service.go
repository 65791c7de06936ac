package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/univent/timetable-api/internal/models"
	appErrors "github.com/univent/timetable-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type teacherFinder interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type groupFinder interface {
	FindByID(ctx context.Context, id string) (*models.Group, error)
}

// CreateCourseRequest represents payload for creating courses.
type CreateCourseRequest struct {
	UniverseID string `json:"universe_id" validate:"required"`
	Name       string `json:"name" validate:"required,max=200"`
	Type       string `json:"type" validate:"required,max=100"`
	Hours      int    `json:"hours" validate:"required,min=1,max=35"`
	TeacherID  string `json:"teacher_id" validate:"required"`
	GroupID    string `json:"group_id" validate:"required"`
	RoomType   string `json:"room_type" validate:"required,max=100"`
}

// UpdateCourseRequest represents payload for updating courses.
type UpdateCourseRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Type      string `json:"type" validate:"required,max=100"`
	Hours     int    `json:"hours" validate:"required,min=1,max=35"`
	TeacherID string `json:"teacher_id" validate:"required"`
	GroupID   string `json:"group_id" validate:"required"`
	RoomType  string `json:"room_type" validate:"required,max=100"`
}

// CourseService orchestrates course operations.
type CourseService struct {
	repo      courseRepository
	teachers  teacherFinder
	groups    groupFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, teachers teacherFinder, groups groupFinder, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, teachers: teachers, groups: groups, validator: validate, logger: logger}
}

// List returns courses plus pagination data.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create registers a new course after checking its teacher and group exist.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if err := s.ensureReferences(ctx, req.TeacherID, req.GroupID); err != nil {
		return nil, err
	}

	course := &models.Course{
		UniverseID: strings.TrimSpace(req.UniverseID),
		Name:       strings.TrimSpace(req.Name),
		Type:       strings.TrimSpace(req.Type),
		Hours:      req.Hours,
		TeacherID:  req.TeacherID,
		GroupID:    req.GroupID,
		RoomType:   strings.TrimSpace(req.RoomType),
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update modifies an existing course.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if err := s.ensureReferences(ctx, req.TeacherID, req.GroupID); err != nil {
		return nil, err
	}

	course.Name = strings.TrimSpace(req.Name)
	course.Type = strings.TrimSpace(req.Type)
	course.Hours = req.Hours
	course.TeacherID = req.TeacherID
	course.GroupID = req.GroupID
	course.RoomType = strings.TrimSpace(req.RoomType)

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course record.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

func (s *CourseService) ensureReferences(ctx context.Context, teacherID, groupID string) error {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrValidation, "teacher does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher reference")
	}
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrValidation, "group does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check group reference")
	}
	return nil
}
