package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"hanoibak/internal/config"
	"hanoibak/internal/domain/contract"
	"hanoibak/internal/domain/entity"
	"hanoibak/internal/logging"
	"hanoibak/internal/rotation"

	"github.com/rs/zerolog"
)

// ErrRunInProgress is returned when a backup is requested while another one
// is still running.
var ErrRunInProgress = errors.New("a backup run is already in progress")

const (
	// slotsDirName is the directory on the mounted device that holds one
	// subdirectory per rotation slot.
	slotsDirName = "slots"

	defaultHistoryLimit = 20
)

type backupService struct {
	dm       contract.DataManager
	mounter  contract.Mounter
	syncer   contract.Syncer
	disk     contract.Disk
	notifier contract.Notifier
	cfg      *config.Config
	logger   zerolog.Logger

	// runMu serializes runs; a scheduler tick and a manual trigger must not
	// write into the same slot directory concurrently.
	runMu sync.Mutex
}

func newBackup(dm contract.DataManager, mounter contract.Mounter, syncer contract.Syncer, disk contract.Disk, notifier contract.Notifier, cfg *config.Config) *backupService {
	return &backupService{
		dm:       dm,
		mounter:  mounter,
		syncer:   syncer,
		disk:     disk,
		notifier: notifier,
		cfg:      cfg,
		logger:   logging.GetLogger("backup"),
	}
}

func (s *backupService) Run(ctx context.Context, day int, dryRun bool) (*entity.Run, error) {
	if day == 0 {
		day = time.Now().YearDay()
	}

	slot, err := rotation.SelectSlot(day)
	if err != nil {
		return nil, err
	}

	if !s.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.runMu.Unlock()

	dest := filepath.Join(s.cfg.MountPoint, slotsDirName, string(slot))
	checksum := slot.VerifyMode() == rotation.VerifyChecksum

	s.logger.Info().
		Int("day", day).
		Str("slot", string(slot)).
		Bool("checksum", checksum).
		Bool("dry_run", dryRun).
		Msg("starting backup run")

	if dryRun {
		return s.planOnly(day, slot, dest), nil
	}

	run := &entity.Run{
		Day:       day,
		Slot:      string(slot),
		Checksum:  checksum,
		Status:    entity.RunStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.dm.Runs().Create(run); err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	sent, runErr := s.execute(ctx, run, dest, slot.VerifyMode())
	run.BytesSent = sent
	run.FinishedAt = time.Now()

	if runErr != nil {
		run.Status = entity.RunStatusFailed
		appendMessage(run, runErr.Error())
	} else {
		run.Status = entity.RunStatusSuccess
	}

	if err := s.finalize(ctx, run); err != nil {
		return nil, err
	}

	if err := s.notifier.RunFinished(run); err != nil {
		s.logger.Error().Err(err).Int64("run_id", run.ID).Msg("failed to send run notification")
	}

	if runErr != nil {
		return run, runErr
	}

	s.logger.Info().
		Int64("run_id", run.ID).
		Str("slot", run.Slot).
		Int64("bytes", run.BytesSent).
		Dur("duration", run.Duration()).
		Msg("backup run finished")

	return run, nil
}

// execute mounts, checks space, and copies. The deferred unmount records a
// warning on the run instead of failing it: the copy on disk is already
// complete by then.
func (s *backupService) execute(ctx context.Context, run *entity.Run, dest string, mode rotation.VerifyMode) (int64, error) {
	// An empty device means the target is permanently mounted.
	if s.cfg.BackupDevice != "" {
		if err := s.mounter.Mount(ctx, s.cfg.BackupDevice, s.cfg.MountPoint); err != nil {
			return 0, err
		}
		defer func() {
			if err := s.mounter.Unmount(ctx, s.cfg.MountPoint); err != nil {
				s.logger.Error().Err(err).Msg("failed to unmount after backup")
				appendMessage(run, fmt.Sprintf("warning: %v", err))
			}
		}()
	}

	if s.cfg.MinFreeMB > 0 {
		free, err := s.disk.FreeBytes(s.cfg.MountPoint)
		if err != nil {
			return 0, fmt.Errorf("failed to check free space: %w", err)
		}
		required := uint64(s.cfg.MinFreeMB) * 1024 * 1024
		if free < required {
			return 0, fmt.Errorf("not enough free space on %s: %d MB available, %d MB required",
				s.cfg.MountPoint, free/(1024*1024), s.cfg.MinFreeMB)
		}
	}

	return s.syncer.Sync(ctx, s.cfg.Sources, dest, mode)
}

// planOnly logs what a real run would do and returns an unpersisted run.
func (s *backupService) planOnly(day int, slot rotation.Slot, dest string) *entity.Run {
	if s.cfg.BackupDevice != "" {
		s.logger.Info().Msgf("Would mount %s on %s", s.cfg.BackupDevice, s.cfg.MountPoint)
	}
	s.logger.Info().Msgf("Would sync %s into %s", strings.Join(s.cfg.Sources, ", "), dest)
	if slot.VerifyMode() == rotation.VerifyChecksum {
		s.logger.Info().Msg("Would verify the copy with checksums")
	}
	if s.cfg.BackupDevice != "" {
		s.logger.Info().Msgf("Would unmount %s", s.cfg.MountPoint)
	}

	now := time.Now()
	return &entity.Run{
		Day:        day,
		Slot:       string(slot),
		Checksum:   slot.VerifyMode() == rotation.VerifyChecksum,
		Status:     entity.RunStatusSuccess,
		Message:    "dry run: nothing was copied",
		StartedAt:  now,
		FinishedAt: now,
	}
}

func (s *backupService) finalize(ctx context.Context, run *entity.Run) error {
	if run.Status != entity.RunStatusSuccess {
		if err := s.dm.Runs().Finish(run); err != nil {
			return fmt.Errorf("failed to record run result: %w", err)
		}
		return nil
	}

	// A successful run closes the run row and advances the slot catalog in
	// the same transaction, so the catalog never counts a run the history
	// does not show as finished.
	return s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		if err := tx.Runs().Finish(run); err != nil {
			return fmt.Errorf("failed to record run result: %w", err)
		}
		if err := tx.Slots().RecordRun(run.Slot, run.Day, run.FinishedAt, run.BytesSent); err != nil {
			return fmt.Errorf("failed to update slot catalog: %w", err)
		}
		return nil
	})
}

func (s *backupService) History(limit int) ([]*entity.Run, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	runs, err := s.dm.Runs().ListRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func (s *backupService) SlotStatus() ([]*entity.Slot, error) {
	slots, err := s.dm.Slots().List()
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func appendMessage(run *entity.Run, msg string) {
	if run.Message == "" {
		run.Message = msg
		return
	}
	run.Message += "; " + msg
}
