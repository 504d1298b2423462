package contract

import (
	"context"
	"time"

	"hanoibak/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Runs() RunRepo
	Slots() SlotRepo
}

// RunRepo defines the contract for the backup run history repository
type RunRepo interface {
	Create(run *entity.Run) error
	Finish(run *entity.Run) error
	GetByID(id int64) (*entity.Run, error)
	ListRecent(limit int) ([]*entity.Run, error)
}

// SlotRepo defines the contract for the rotation slot catalog repository
type SlotRepo interface {
	GetByLabel(label string) (*entity.Slot, error)
	List() ([]*entity.Slot, error)
	RecordRun(label string, day int, at time.Time, bytes int64) error
}
