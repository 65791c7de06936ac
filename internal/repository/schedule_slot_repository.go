package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/univent/timetable-api/internal/models"
)

const scheduleSlotColumns = "id, universe_id, day, slot, course_id, teacher_id, group_id, room_id, start_time, end_time, created_at"

// ScheduleSlotRepository manages persistence for generated schedule slots.
type ScheduleSlotRepository struct {
	db *sqlx.DB
}

// NewScheduleSlotRepository constructs a ScheduleSlotRepository.
func NewScheduleSlotRepository(db *sqlx.DB) *ScheduleSlotRepository {
	return &ScheduleSlotRepository{db: db}
}

// ListByUniverse returns every slot in a universe ordered by day and slot.
func (r *ScheduleSlotRepository) ListByUniverse(ctx context.Context, universeID string) ([]models.ScheduleSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_slots WHERE universe_id = $1 ORDER BY day ASC, slot ASC, id ASC", scheduleSlotColumns)
	var slots []models.ScheduleSlot
	if err := r.db.SelectContext(ctx, &slots, query, universeID); err != nil {
		return nil, fmt.Errorf("list schedule slots: %w", err)
	}
	return slots, nil
}

// Replace atomically swaps a universe's slot set for the given one: the old
// set is deleted and the new set inserted inside a single transaction, so a
// failed run leaves the previously published timetable untouched. A
// per-universe advisory lock serialises concurrent generation runs against
// the same universe.
func (r *ScheduleSlotRepository) Replace(ctx context.Context, universeID string, slots []models.ScheduleSlot) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace schedule slots: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, universeID); err != nil {
		return fmt.Errorf("lock universe %s: %w", universeID, err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM schedule_slots WHERE universe_id = $1`, universeID); err != nil {
		return fmt.Errorf("clear schedule slots: %w", err)
	}

	const query = `INSERT INTO schedule_slots (id, universe_id, day, slot, course_id, teacher_id, group_id, room_id, start_time, end_time, created_at)
		VALUES (:id, :universe_id, :day, :slot, :course_id, :teacher_id, :group_id, :room_id, :start_time, :end_time, :created_at)`

	now := time.Now().UTC()
	for i := range slots {
		slot := &slots[i]
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = now
		}
		if _, err = tx.NamedExecContext(ctx, query, slot); err != nil {
			return fmt.Errorf("insert schedule slot: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule slots: %w", err)
	}
	return nil
}

// DeleteByUniverse removes every slot in a universe and reports how many
// rows went away. Deleting an already empty universe is not an error.
func (r *ScheduleSlotRepository) DeleteByUniverse(ctx context.Context, universeID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedule_slots WHERE universe_id = $1`, universeID)
	if err != nil {
		return 0, fmt.Errorf("delete schedule slots: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return removed, nil
}
