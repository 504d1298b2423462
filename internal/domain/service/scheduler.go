package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"hanoibak/internal/config"
	"hanoibak/internal/domain"
	"hanoibak/internal/logging"

	"github.com/rs/zerolog"
)

type scheduler struct {
	backup   *backupService
	cfg      *config.Config
	stopChan chan struct{}
	running  bool
	logger   zerolog.Logger
}

func newScheduler(backup *backupService, cfg *config.Config) *scheduler {
	return &scheduler{
		backup:   backup,
		cfg:      cfg,
		stopChan: make(chan struct{}),
		running:  false,
		logger:   logging.GetLogger("scheduler"),
	}
}

func (s *scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.logger.Info().Str("time", s.cfg.ScheduleTime).Ints("days", s.cfg.ActiveDays).Msg("scheduler starting")
	go s.mainLoop()
}

func (s *scheduler) Stop() {
	if !s.running {
		return
	}
	s.logger.Info().Msg("scheduler stopping")
	close(s.stopChan)
	s.running = false
}

func (s *scheduler) mainLoop() {
	for {
		next := calculateNext(time.Now(), s.cfg.ScheduleTime, s.cfg.ActiveDays)

		if next.IsZero() {
			// Misconfigured schedule - wait 1 hour and check again
			s.logger.Warn().Str("time", s.cfg.ScheduleTime).Msg("no runnable schedule, waiting 1 hour")
			timer := time.NewTimer(1 * time.Hour)
			select {
			case <-timer.C:
				continue
			case <-s.stopChan:
				timer.Stop()
				return
			}
		}

		s.logger.Info().
			Time("next", next).
			Str("weekday", domain.WeekdayNames[isoWeekday(next)]).
			Msg("next backup scheduled")

		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			s.fire()
			// Wait 1 minute to prevent re-processing the same time
			time.Sleep(1 * time.Minute)

		case <-s.stopChan:
			timer.Stop()
			return
		}
	}
}

func (s *scheduler) fire() {
	run, err := s.backup.Run(context.Background(), 0, false)
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			s.logger.Warn().Msg("skipping scheduled backup, previous run still in progress")
			return
		}
		s.logger.Error().Err(err).Msg("scheduled backup failed")
		return
	}

	s.logger.Info().
		Int64("run_id", run.ID).
		Str("slot", run.Slot).
		Int64("bytes", run.BytesSent).
		Msg("scheduled backup finished")
}

// calculateNext returns the next moment the schedule fires after now, in
// now's location. It returns the zero time when the schedule can never fire.
func calculateNext(now time.Time, scheduleTime string, activeDays []int) time.Time {
	parts := strings.Split(scheduleTime, ":")
	if len(parts) != 2 {
		return time.Time{}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}
	}

	if len(activeDays) == 0 {
		return time.Time{}
	}

	activeDaysMap := make(map[int]bool)
	for _, day := range activeDays {
		activeDaysMap[day] = true
	}

	// Try today first
	today := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if activeDaysMap[isoWeekday(today)] && today.After(now) {
		return today
	}

	// Find next active day
	for i := 1; i <= 7; i++ {
		nextDay := today.AddDate(0, 0, i)
		if activeDaysMap[isoWeekday(nextDay)] {
			return nextDay
		}
	}

	return time.Time{}
}

// isoWeekday returns the ISO 8601 weekday number. Sunday = 0 in Go, but we
// want 7 for ISO 8601.
func isoWeekday(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return domain.Sunday
}
