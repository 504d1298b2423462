package database

import (
	"context"
	"fmt"

	"hanoibak/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db       *DB
	runRepo  contract.RunRepo
	slotRepo contract.SlotRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := &instance{
		db: db,
	}
	instance.repoInstances()
	return instance
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.runRepo = newRunRepo(i.db.conn)
	i.slotRepo = newSlotRepo(i.db.conn)
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		runRepo:  newRunRepo(db),
		slotRepo: newSlotRepo(db),
	}
}

// Runs returns the backup run repository
func (i *instance) Runs() contract.RunRepo {
	return i.runRepo
}

// Slots returns the slot catalog repository
func (i *instance) Slots() contract.SlotRepo {
	return i.slotRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
