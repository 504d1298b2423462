package contract

import (
	"context"

	"hanoibak/internal/domain/entity"
)

// BackupService defines the contract for running backups and inspecting
// their outcome.
type BackupService interface {
	// Run executes a backup for the given day of year. Day 0 means the
	// current day. With dryRun set, the planned actions are logged and
	// nothing is mounted, copied, or recorded.
	Run(ctx context.Context, day int, dryRun bool) (*entity.Run, error)

	// History returns the most recent runs, newest first.
	History(limit int) ([]*entity.Run, error)

	// SlotStatus returns all six rotation slots with their usage counters.
	SlotStatus() ([]*entity.Slot, error)
}
