package database

import (
	"testing"
	"time"

	"hanoibak/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepo_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	runRepo := newRunRepo(db.conn)

	t.Run("should create run successfully", func(t *testing.T) {
		run := &entity.Run{
			Day:       42,
			Slot:      "b",
			Checksum:  false,
			Status:    entity.RunStatusRunning,
			StartedAt: time.Now().UTC(),
		}

		err := runRepo.Create(run)

		require.NoError(t, err)
		assert.NotZero(t, run.ID)
	})

	t.Run("should round-trip all fields", func(t *testing.T) {
		started := time.Date(2025, 2, 1, 1, 30, 0, 0, time.UTC)
		run := &entity.Run{
			Day:       32,
			Slot:      "f",
			Checksum:  true,
			Status:    entity.RunStatusRunning,
			Message:   "",
			StartedAt: started,
		}

		err := runRepo.Create(run)
		require.NoError(t, err)

		got, err := runRepo.GetByID(run.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, run.ID, got.ID)
		assert.Equal(t, 32, got.Day)
		assert.Equal(t, "f", got.Slot)
		assert.True(t, got.Checksum)
		assert.Equal(t, entity.RunStatusRunning, got.Status)
		assert.WithinDuration(t, started, got.StartedAt, time.Second)
		assert.True(t, got.FinishedAt.IsZero(), "running run must have no finish time")
	})
}

func TestRunRepo_Finish(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	runRepo := newRunRepo(db.conn)

	run := &entity.Run{
		Day:       5,
		Slot:      "a",
		Status:    entity.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	require.NoError(t, runRepo.Create(run))

	t.Run("should mark run as successful", func(t *testing.T) {
		run.Status = entity.RunStatusSuccess
		run.BytesSent = 123456
		run.FinishedAt = time.Now().UTC()

		err := runRepo.Finish(run)
		require.NoError(t, err)

		got, err := runRepo.GetByID(run.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, entity.RunStatusSuccess, got.Status)
		assert.Equal(t, int64(123456), got.BytesSent)
		assert.WithinDuration(t, run.FinishedAt, got.FinishedAt, time.Second)
	})

	t.Run("should record failure message", func(t *testing.T) {
		failed := &entity.Run{
			Day:       6,
			Slot:      "b",
			Status:    entity.RunStatusRunning,
			StartedAt: time.Now().UTC(),
		}
		require.NoError(t, runRepo.Create(failed))

		failed.Status = entity.RunStatusFailed
		failed.Message = "mount /dev/sdb1: exit status 32"
		failed.FinishedAt = time.Now().UTC()

		err := runRepo.Finish(failed)
		require.NoError(t, err)

		got, err := runRepo.GetByID(failed.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, entity.RunStatusFailed, got.Status)
		assert.Equal(t, "mount /dev/sdb1: exit status 32", got.Message)
	})
}

func TestRunRepo_GetByID(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	runRepo := newRunRepo(db.conn)

	t.Run("should return nil for unknown run", func(t *testing.T) {
		got, err := runRepo.GetByID(9999)

		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRunRepo_ListRecent(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	runRepo := newRunRepo(db.conn)

	for day := 1; day <= 3; day++ {
		run := &entity.Run{
			Day:       day,
			Slot:      "a",
			Status:    entity.RunStatusSuccess,
			StartedAt: time.Now().UTC(),
		}
		require.NoError(t, runRepo.Create(run))
	}

	t.Run("should return newest runs first", func(t *testing.T) {
		runs, err := runRepo.ListRecent(2)

		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, 3, runs[0].Day)
		assert.Equal(t, 2, runs[1].Day)
	})

	t.Run("should return all runs when limit exceeds count", func(t *testing.T) {
		runs, err := runRepo.ListRecent(50)

		require.NoError(t, err)
		assert.Len(t, runs, 3)
	})
}
