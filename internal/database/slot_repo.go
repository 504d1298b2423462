package database

import (
	"database/sql"
	"fmt"
	"time"

	"hanoibak/internal/domain/contract"
	"hanoibak/internal/domain/entity"
)

type slotRepo struct {
	db dbConn
}

func newSlotRepo(db dbConn) contract.SlotRepo {
	return &slotRepo{db: db}
}

func (r *slotRepo) GetByLabel(label string) (*entity.Slot, error) {
	slot := &entity.Slot{}
	query := `
		SELECT id, label, run_count, last_day, last_run_at, last_bytes, updated_at
		FROM slots
		WHERE label = ?
	`

	var lastRunAt sql.NullTime
	err := r.db.QueryRow(query, label).Scan(
		&slot.ID,
		&slot.Label,
		&slot.RunCount,
		&slot.LastDay,
		&lastRunAt,
		&slot.LastBytes,
		&slot.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	if lastRunAt.Valid {
		slot.LastRunAt = lastRunAt.Time
	}

	return slot, nil
}

func (r *slotRepo) List() ([]*entity.Slot, error) {
	query := `
		SELECT id, label, run_count, last_day, last_run_at, last_bytes, updated_at
		FROM slots
		ORDER BY label ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		slot := &entity.Slot{}
		var lastRunAt sql.NullTime
		err := rows.Scan(
			&slot.ID,
			&slot.Label,
			&slot.RunCount,
			&slot.LastDay,
			&lastRunAt,
			&slot.LastBytes,
			&slot.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}

		if lastRunAt.Valid {
			slot.LastRunAt = lastRunAt.Time
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepo) RecordRun(label string, day int, at time.Time, bytes int64) error {
	query := `
		UPDATE slots SET
			run_count = run_count + 1,
			last_day = ?,
			last_run_at = ?,
			last_bytes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE label = ?
	`

	result, err := r.db.Exec(query, day, at, bytes, label)
	if err != nil {
		return fmt.Errorf("failed to record slot run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("unknown slot %q", label)
	}

	return nil
}
