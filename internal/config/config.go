package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"hanoibak/internal/domain"
)

type Config struct {
	BackupDevice  string
	MountPoint    string
	Sources       []string
	MinFreeMB     int64
	ScheduleTime  string
	ActiveDays    []int
	DatabasePath  string
	Port          string
	SlackBotToken string
	SlackChannel  string
	APIToken      string
}

func Load() *Config {
	return &Config{
		BackupDevice:  getEnv("BACKUP_DEVICE", ""),
		MountPoint:    getEnv("BACKUP_MOUNT_POINT", "/mnt/backup"),
		Sources:       getEnvList("BACKUP_SOURCES", []string{"/home"}),
		MinFreeMB:     getEnvInt64("MIN_FREE_MB", 0),
		ScheduleTime:  getEnv("SCHEDULE_TIME", domain.DefaultScheduleTime),
		ActiveDays:    getEnvIntList("ACTIVE_DAYS", domain.DefaultActiveDays),
		DatabasePath:  getEnv("DATABASE_PATH", "./hanoibak.db"),
		Port:          getEnv("PORT", "3000"),
		SlackBotToken: getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannel:  getEnv("SLACK_CHANNEL", ""),
		APIToken:      getEnv("API_TOKEN", ""),
	}
}

// Validate checks the fields that would otherwise only fail at backup time.
func (c *Config) Validate() error {
	if _, err := time.Parse("15:04", c.ScheduleTime); err != nil {
		return fmt.Errorf("invalid SCHEDULE_TIME %q: expected HH:MM", c.ScheduleTime)
	}
	if c.MountPoint == "" {
		return fmt.Errorf("BACKUP_MOUNT_POINT must not be empty")
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("BACKUP_SOURCES must name at least one directory")
	}
	if len(c.ActiveDays) == 0 {
		return fmt.Errorf("ACTIVE_DAYS must name at least one weekday")
	}
	for _, day := range c.ActiveDays {
		if day < domain.Monday || day > domain.Sunday {
			return fmt.Errorf("invalid ACTIVE_DAYS entry %d: must be 1 (Monday) to 7 (Sunday)", day)
		}
	}
	if c.MinFreeMB < 0 {
		return fmt.Errorf("MIN_FREE_MB must not be negative")
	}
	if c.SlackBotToken != "" && c.SlackChannel == "" {
		return fmt.Errorf("SLACK_CHANNEL is required when SLACK_BOT_TOKEN is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func getEnvIntList(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []int
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parsed, err := strconv.Atoi(item)
		if err != nil {
			continue
		}
		items = append(items, parsed)
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
