package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univent/timetable-api/internal/models"
)

type fakeGroupSource struct {
	groups []models.Group
}

func (f *fakeGroupSource) ListByUniverse(ctx context.Context, universeID string) ([]models.Group, error) {
	return f.groups, nil
}

type fakeSlotSource struct {
	slots []models.ScheduleSlot
	calls int
}

func (f *fakeSlotSource) ListByUniverse(ctx context.Context, universeID string) ([]models.ScheduleSlot, error) {
	f.calls++
	return f.slots, nil
}

type memoryCache struct {
	entries map[string][]byte
	sets    int
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return assert.AnError
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	m.deletes++
	return nil
}

func newTimetable(slots *fakeSlotSource, courses []models.Course, teachers []models.Teacher, groups []models.Group, rooms []models.Room, cache gridCache) *TimetableService {
	return NewTimetableService(
		slots,
		&fakeCourseSource{courses: courses},
		&fakeTeacherSource{teachers: teachers},
		&fakeGroupSource{groups: groups},
		&fakeRoomSource{rooms: rooms},
		cache,
		nil,
		time.Minute,
		nil,
	)
}

func sampleTimetableFixture() (*fakeSlotSource, []models.Course, []models.Teacher, []models.Group, []models.Room) {
	slots := &fakeSlotSource{slots: []models.ScheduleSlot{
		{ID: "s1", Day: 0, Slot: 0, CourseID: "c1", TeacherID: "t1", GroupID: "g1", RoomID: "r1"},
		{ID: "s2", Day: 3, Slot: 2, CourseID: "c1", TeacherID: "t1", GroupID: "g1", RoomID: "r1"},
	}}
	courses := []models.Course{{ID: "c1", Name: "Algebra", Type: "lecture"}}
	teachers := []models.Teacher{{ID: "t1", Name: "Ada"}}
	groups := []models.Group{{ID: "g1", Name: "1-A"}}
	rooms := []models.Room{{ID: "r1", Name: "A-101"}}
	return slots, courses, teachers, groups, rooms
}

func TestGridAssemblesWeek(t *testing.T) {
	slots, courses, teachers, groups, rooms := sampleTimetableFixture()
	svc := newTimetable(slots, courses, teachers, groups, rooms, nil)

	grid, err := svc.Grid(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", grid.UniverseID)
	assert.Equal(t, 2, grid.TotalSlots)
	require.Len(t, grid.Days, models.DaysPerWeek)
	require.Len(t, grid.Timeslots, models.SlotsPerDay)

	monday := grid.Days[0]
	assert.Equal(t, "Monday", monday.Name)
	require.Len(t, monday.Slots[0], 1)
	cell := monday.Slots[0][0]
	assert.Equal(t, "Algebra", cell.CourseName)
	assert.Equal(t, "Ada", cell.TeacherName)
	assert.Equal(t, "1-A", cell.GroupName)
	assert.Equal(t, "A-101", cell.RoomName)

	// Empty cells are empty lists, never nil.
	assert.NotNil(t, monday.Slots[1])
	assert.Empty(t, monday.Slots[1])
	require.Len(t, grid.Days[3].Slots[2], 1)
}

func TestGridServedFromCacheOnSecondRead(t *testing.T) {
	slots, courses, teachers, groups, rooms := sampleTimetableFixture()
	cache := newMemoryCache()
	svc := newTimetable(slots, courses, teachers, groups, rooms, cache)

	_, err := svc.Grid(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, slots.calls)
	assert.Equal(t, 1, cache.sets)

	grid, err := svc.Grid(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, slots.calls, "second read should not hit the store")
	assert.Equal(t, 2, grid.TotalSlots)
}

func TestInvalidateGridDropsCache(t *testing.T) {
	slots, courses, teachers, groups, rooms := sampleTimetableFixture()
	cache := newMemoryCache()
	svc := newTimetable(slots, courses, teachers, groups, rooms, cache)

	_, err := svc.Grid(context.Background(), "u1")
	require.NoError(t, err)
	require.NoError(t, svc.InvalidateGrid(context.Background(), "u1"))

	_, err = svc.Grid(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, slots.calls)
}

func TestExportCSVContainsGrid(t *testing.T) {
	slots, courses, teachers, groups, rooms := sampleTimetableFixture()
	svc := newTimetable(slots, courses, teachers, groups, rooms, nil)

	payload, contentType, err := svc.Export(context.Background(), "u1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(payload)
	assert.True(t, strings.HasPrefix(body, "Time,Monday,Tuesday,Wednesday,Thursday,Friday"))
	assert.Contains(t, body, "Algebra")
	assert.Contains(t, body, "07:30-08:30")
}

func TestExportPDFProducesDocument(t *testing.T) {
	slots, courses, teachers, groups, rooms := sampleTimetableFixture()
	svc := newTimetable(slots, courses, teachers, groups, rooms, nil)

	payload, contentType, err := svc.Export(context.Background(), "u1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	slots, courses, teachers, groups, rooms := sampleTimetableFixture()
	svc := newTimetable(slots, courses, teachers, groups, rooms, nil)

	_, _, err := svc.Export(context.Background(), "u1", "xlsx")
	require.Error(t, err)
}
