package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"hanoibak/internal/domain/contract"
	"hanoibak/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRepo_List(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	slotRepo := newSlotRepo(db.conn)

	t.Run("should return the six seeded slots in label order", func(t *testing.T) {
		slots, err := slotRepo.List()

		require.NoError(t, err)
		require.Len(t, slots, 6)

		labels := make([]string, 0, len(slots))
		for _, slot := range slots {
			labels = append(labels, slot.Label)
			assert.Zero(t, slot.RunCount, "slot %q starts unused", slot.Label)
			assert.True(t, slot.LastRunAt.IsZero(), "slot %q starts unused", slot.Label)
		}
		assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, labels)
	})
}

func TestSlotRepo_GetByLabel(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	slotRepo := newSlotRepo(db.conn)

	t.Run("should find a seeded slot", func(t *testing.T) {
		slot, err := slotRepo.GetByLabel("d")

		require.NoError(t, err)
		require.NotNil(t, slot)
		assert.Equal(t, "d", slot.Label)
	})

	t.Run("should return nil for unknown label", func(t *testing.T) {
		slot, err := slotRepo.GetByLabel("z")

		require.NoError(t, err)
		assert.Nil(t, slot)
	})
}

func TestSlotRepo_RecordRun(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	slotRepo := newSlotRepo(db.conn)

	t.Run("should bump freshness columns", func(t *testing.T) {
		at := time.Date(2025, 2, 1, 1, 35, 0, 0, time.UTC)

		err := slotRepo.RecordRun("c", 36, at, 2048)
		require.NoError(t, err)

		slot, err := slotRepo.GetByLabel("c")
		require.NoError(t, err)
		require.NotNil(t, slot)

		assert.Equal(t, int64(1), slot.RunCount)
		assert.Equal(t, 36, slot.LastDay)
		assert.Equal(t, int64(2048), slot.LastBytes)
		assert.WithinDuration(t, at, slot.LastRunAt, time.Second)

		err = slotRepo.RecordRun("c", 40, at.AddDate(0, 0, 4), 4096)
		require.NoError(t, err)

		slot, err = slotRepo.GetByLabel("c")
		require.NoError(t, err)
		assert.Equal(t, int64(2), slot.RunCount)
		assert.Equal(t, 40, slot.LastDay)
	})

	t.Run("should reject unknown label", func(t *testing.T) {
		err := slotRepo.RecordRun("x", 1, time.Now().UTC(), 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown slot")
	})
}

func TestInstance_WithTransaction(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)
	ctx := context.Background()

	t.Run("should commit on success", func(t *testing.T) {
		var runID int64

		err := dm.WithTransaction(ctx, func(tx contract.DataManager) error {
			run := &entity.Run{
				Day:       10,
				Slot:      "b",
				Status:    entity.RunStatusSuccess,
				StartedAt: time.Now().UTC(),
			}
			if err := tx.Runs().Create(run); err != nil {
				return err
			}
			runID = run.ID

			return tx.Slots().RecordRun("b", 10, time.Now().UTC(), 512)
		})
		require.NoError(t, err)

		run, err := dm.Runs().GetByID(runID)
		require.NoError(t, err)
		assert.NotNil(t, run)

		slot, err := dm.Slots().GetByLabel("b")
		require.NoError(t, err)
		require.NotNil(t, slot)
		assert.Equal(t, int64(1), slot.RunCount)
	})

	t.Run("should roll back on error", func(t *testing.T) {
		wantErr := errors.New("boom")
		var runID int64

		err := dm.WithTransaction(ctx, func(tx contract.DataManager) error {
			run := &entity.Run{
				Day:       11,
				Slot:      "a",
				Status:    entity.RunStatusSuccess,
				StartedAt: time.Now().UTC(),
			}
			if err := tx.Runs().Create(run); err != nil {
				return err
			}
			runID = run.ID

			return wantErr
		})
		require.ErrorIs(t, err, wantErr)

		run, err := dm.Runs().GetByID(runID)
		require.NoError(t, err)
		assert.Nil(t, run, "rolled back run must not be visible")
	})
}
