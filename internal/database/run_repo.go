package database

import (
	"database/sql"
	"fmt"

	"hanoibak/internal/domain/contract"
	"hanoibak/internal/domain/entity"
)

type runRepo struct {
	db dbConn
}

func newRunRepo(db dbConn) contract.RunRepo {
	return &runRepo{db: db}
}

func (r *runRepo) Create(run *entity.Run) error {
	query := `
		INSERT INTO runs (day, slot, checksum, status, message, bytes_sent, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		run.Day,
		run.Slot,
		run.Checksum,
		run.Status,
		run.Message,
		run.BytesSent,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	run.ID = id
	return nil
}

func (r *runRepo) Finish(run *entity.Run) error {
	query := `
		UPDATE runs SET
			status = ?,
			message = ?,
			bytes_sent = ?,
			finished_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		run.Status,
		run.Message,
		run.BytesSent,
		run.FinishedAt,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	return nil
}

func (r *runRepo) GetByID(id int64) (*entity.Run, error) {
	run := &entity.Run{}
	query := `
		SELECT id, day, slot, checksum, status, message, bytes_sent, started_at, finished_at
		FROM runs
		WHERE id = ?
	`

	var finishedAt sql.NullTime
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.Day,
		&run.Slot,
		&run.Checksum,
		&run.Status,
		&run.Message,
		&run.BytesSent,
		&run.StartedAt,
		&finishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	return run, nil
}

func (r *runRepo) ListRecent(limit int) ([]*entity.Run, error) {
	query := `
		SELECT id, day, slot, checksum, status, message, bytes_sent, started_at, finished_at
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.Run
	for rows.Next() {
		run := &entity.Run{}
		var finishedAt sql.NullTime
		err := rows.Scan(
			&run.ID,
			&run.Day,
			&run.Slot,
			&run.Checksum,
			&run.Status,
			&run.Message,
			&run.BytesSent,
			&run.StartedAt,
			&finishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, run)
	}

	return runs, nil
}
