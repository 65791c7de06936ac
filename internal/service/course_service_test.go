package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univent/timetable-api/internal/models"
	appErrors "github.com/univent/timetable-api/pkg/errors"
)

type mockCourseRepo struct {
	items   map[string]*models.Course
	deleted []string
}

func (m *mockCourseRepo) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	out := make([]models.Course, 0, len(m.items))
	for _, course := range m.items {
		out = append(out, *course)
	}
	return out, len(out), nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if course, ok := m.items[id]; ok {
		cp := *course
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if m.items == nil {
		m.items = make(map[string]*models.Course)
	}
	if course.ID == "" {
		course.ID = "generated"
	}
	cp := *course
	m.items[course.ID] = &cp
	return nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	cp := *course
	m.items[course.ID] = &cp
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.items, id)
	return nil
}

type mockTeacherFinder struct{ known map[string]bool }

func (m *mockTeacherFinder) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if m.known[id] {
		return &models.Teacher{ID: id}, nil
	}
	return nil, sql.ErrNoRows
}

type mockGroupFinder struct{ known map[string]bool }

func (m *mockGroupFinder) FindByID(ctx context.Context, id string) (*models.Group, error) {
	if m.known[id] {
		return &models.Group{ID: id}, nil
	}
	return nil, sql.ErrNoRows
}

func newCourseService(repo *mockCourseRepo) *CourseService {
	return NewCourseService(
		repo,
		&mockTeacherFinder{known: map[string]bool{"t1": true}},
		&mockGroupFinder{known: map[string]bool{"g1": true}},
		nil,
		nil,
	)
}

func TestCourseCreate(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := newCourseService(repo)

	course, err := svc.Create(context.Background(), CreateCourseRequest{
		UniverseID: "u1",
		Name:       "  Algebra ",
		Type:       "lecture",
		Hours:      3,
		TeacherID:  "t1",
		GroupID:    "g1",
		RoomType:   "lecture",
	})
	require.NoError(t, err)
	assert.Equal(t, "Algebra", course.Name)
	assert.Equal(t, 3, course.Hours)
	assert.Len(t, repo.items, 1)
}

func TestCourseCreateRejectsUnknownTeacher(t *testing.T) {
	svc := newCourseService(&mockCourseRepo{})

	_, err := svc.Create(context.Background(), CreateCourseRequest{
		UniverseID: "u1",
		Name:       "Algebra",
		Type:       "lecture",
		Hours:      3,
		TeacherID:  "missing",
		GroupID:    "g1",
		RoomType:   "lecture",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCourseCreateValidatesHours(t *testing.T) {
	svc := newCourseService(&mockCourseRepo{})

	_, err := svc.Create(context.Background(), CreateCourseRequest{
		UniverseID: "u1",
		Name:       "Algebra",
		Type:       "lecture",
		Hours:      0,
		TeacherID:  "t1",
		GroupID:    "g1",
		RoomType:   "lecture",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCourseUpdateNotFound(t *testing.T) {
	svc := newCourseService(&mockCourseRepo{})

	_, err := svc.Update(context.Background(), "missing", UpdateCourseRequest{
		Name:      "Algebra",
		Type:      "lecture",
		Hours:     3,
		TeacherID: "t1",
		GroupID:   "g1",
		RoomType:  "lecture",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCourseDelete(t *testing.T) {
	repo := &mockCourseRepo{items: map[string]*models.Course{
		"c1": {ID: "c1", Name: "Algebra"},
	}}
	svc := newCourseService(repo)

	require.NoError(t, svc.Delete(context.Background(), "c1"))
	assert.Equal(t, []string{"c1"}, repo.deleted)

	err := svc.Delete(context.Background(), "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNormalizePreferredDays(t *testing.T) {
	cleaned, err := normalizePreferredDays(" 2, 4 ")
	require.NoError(t, err)
	assert.Equal(t, "2,4", cleaned)

	cleaned, err = normalizePreferredDays("")
	require.NoError(t, err)
	assert.Equal(t, "", cleaned)

	_, err = normalizePreferredDays("0,3")
	require.Error(t, err)

	_, err = normalizePreferredDays("monday")
	require.Error(t, err)
}

func TestValidateAvailability(t *testing.T) {
	require.NoError(t, validateAvailability(""))
	require.NoError(t, validateAvailability("1111111,0000000"))
	require.Error(t, validateAvailability("11121"))
	require.Error(t, validateAvailability("1111111,1111111,1111111,1111111,1111111,1111111"))
	require.Error(t, validateAvailability("11111111"))
}
