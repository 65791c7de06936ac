package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/univent/timetable-api/internal/models"
)

func newSlotRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestScheduleSlotRepositoryReplace(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewScheduleSlotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_slots WHERE universe_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_slots")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_slots")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	slots := []models.ScheduleSlot{
		{UniverseID: "u1", Day: 0, Slot: 0, CourseID: "c1", TeacherID: "t1", GroupID: "g1", RoomID: "r1", StartTime: "07:30", EndTime: "08:30"},
		{UniverseID: "u1", Day: 0, Slot: 1, CourseID: "c1", TeacherID: "t1", GroupID: "g1", RoomID: "r1", StartTime: "08:30", EndTime: "10:00"},
	}
	require.NoError(t, repo.Replace(context.Background(), "u1", slots))

	// Missing ids and timestamps are filled during insert.
	require.NotEmpty(t, slots[0].ID)
	require.False(t, slots[0].CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleSlotRepositoryReplaceEmptySet(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewScheduleSlotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_slots WHERE universe_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.Replace(context.Background(), "u1", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleSlotRepositoryReplaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewScheduleSlotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_slots WHERE universe_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_slots")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	slots := []models.ScheduleSlot{
		{UniverseID: "u1", Day: 0, Slot: 0, CourseID: "c1", TeacherID: "t1", GroupID: "g1", RoomID: "r1"},
	}
	err := repo.Replace(context.Background(), "u1", slots)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleSlotRepositoryDeleteByUniverse(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewScheduleSlotRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_slots WHERE universe_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 7))

	removed, err := repo.DeleteByUniverse(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, int64(7), removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleSlotRepositoryListByUniverse(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewScheduleSlotRepository(db)
	rows := sqlmock.NewRows([]string{"id", "universe_id", "day", "slot", "course_id", "teacher_id", "group_id", "room_id", "start_time", "end_time", "created_at"}).
		AddRow("s1", "u1", 0, 0, "c1", "t1", "g1", "r1", "07:30", "08:30", time.Now()).
		AddRow("s2", "u1", 0, 1, "c1", "t1", "g1", "r1", "08:30", "10:00", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, universe_id, day, slot")).
		WithArgs("u1").
		WillReturnRows(rows)

	slots, err := repo.ListByUniverse(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	require.Equal(t, "s1", slots[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
