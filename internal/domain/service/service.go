package service

import (
	"hanoibak/internal/config"
	"hanoibak/internal/domain/contract"
)

type Instance struct {
	Backup    *backupService
	Scheduler *scheduler
}

func NewInstance(dm contract.DataManager, mounter contract.Mounter, syncer contract.Syncer, disk contract.Disk, notifier contract.Notifier, cfg *config.Config) *Instance {
	backup := newBackup(dm, mounter, syncer, disk, notifier, cfg)

	return &Instance{
		Backup:    backup,
		Scheduler: newScheduler(backup, cfg),
	}
}
