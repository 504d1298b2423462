package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"BACKUP_DEVICE", "BACKUP_MOUNT_POINT", "BACKUP_SOURCES", "MIN_FREE_MB",
		"SCHEDULE_TIME", "ACTIVE_DAYS", "DATABASE_PATH", "PORT", "API_TOKEN",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "/mnt/backup", cfg.MountPoint)
	assert.Equal(t, []string{"/home"}, cfg.Sources)
	assert.Equal(t, int64(0), cfg.MinFreeMB)
	assert.Equal(t, "01:30", cfg.ScheduleTime)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, cfg.ActiveDays)
	assert.Equal(t, "./hanoibak.db", cfg.DatabasePath)
	assert.Equal(t, "3000", cfg.Port)
	assert.Empty(t, cfg.BackupDevice)
	assert.Empty(t, cfg.APIToken)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BACKUP_DEVICE", "/dev/sdb1")
	t.Setenv("BACKUP_MOUNT_POINT", "/media/usb")
	t.Setenv("BACKUP_SOURCES", "/home, /etc ,/var/lib")
	t.Setenv("MIN_FREE_MB", "2048")
	t.Setenv("SCHEDULE_TIME", "23:15")
	t.Setenv("ACTIVE_DAYS", "1,3,5")

	cfg := Load()

	assert.Equal(t, "/dev/sdb1", cfg.BackupDevice)
	assert.Equal(t, "/media/usb", cfg.MountPoint)
	assert.Equal(t, []string{"/home", "/etc", "/var/lib"}, cfg.Sources)
	assert.Equal(t, int64(2048), cfg.MinFreeMB)
	assert.Equal(t, "23:15", cfg.ScheduleTime)
	assert.Equal(t, []int{1, 3, 5}, cfg.ActiveDays)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MIN_FREE_MB", "lots")
	t.Setenv("ACTIVE_DAYS", "1,huh,5")

	cfg := Load()

	assert.Equal(t, int64(0), cfg.MinFreeMB)
	assert.Equal(t, []int{1, 5}, cfg.ActiveDays)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			MountPoint:   "/mnt/backup",
			Sources:      []string{"/home"},
			ScheduleTime: "01:30",
			ActiveDays:   []int{1, 2, 3, 4, 5, 6, 7},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("malformed schedule time", func(t *testing.T) {
		cfg := valid()
		cfg.ScheduleTime = "1:75"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCHEDULE_TIME")
	})

	t.Run("empty mount point", func(t *testing.T) {
		cfg := valid()
		cfg.MountPoint = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BACKUP_MOUNT_POINT")
	})

	t.Run("no sources", func(t *testing.T) {
		cfg := valid()
		cfg.Sources = nil
		require.Error(t, cfg.Validate())
	})

	t.Run("weekday out of range", func(t *testing.T) {
		cfg := valid()
		cfg.ActiveDays = []int{0, 3}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ACTIVE_DAYS")
	})

	t.Run("negative free space floor", func(t *testing.T) {
		cfg := valid()
		cfg.MinFreeMB = -1
		require.Error(t, cfg.Validate())
	})

	t.Run("slack token without channel", func(t *testing.T) {
		cfg := valid()
		cfg.SlackBotToken = "xoxb-test"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SLACK_CHANNEL")
	})
}
