// Package config handles configuration loading and defaults.
//
// Values are resolved in priority order: defaults, then the user
// config file, then a project-local config file, then environment
// variables. Flags (handled in main) override everything.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultDataDir         = "data"
	DefaultTasksFile       = "tasks.json"
	DefaultArchiveFile     = "archive.db"
	DefaultLogLevel        = "info"
	DefaultReminderMinutes = 60
)

// Config holds the full configuration for flurry.
type Config struct {
	// Paths
	DataDir     string `toml:"data_dir"`
	TasksFile   string `toml:"tasks_file"`
	ArchiveFile string `toml:"archive_file"`

	// Logging
	LogLevel string `toml:"log_level"`

	// Deadline reminder window, in minutes.
	ReminderMinutes int `toml:"reminder_minutes"`
}

// TasksPath returns the resolved path of the tasks data file.
func (c *Config) TasksPath() string {
	return filepath.Join(c.DataDir, c.TasksFile)
}

// ArchivePath returns the resolved path of the archive database.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.DataDir, c.ArchiveFile)
}

// Reminder returns the reminder window as a duration.
func (c *Config) Reminder() time.Duration {
	return time.Duration(c.ReminderMinutes) * time.Minute
}

// Load resolves configuration. If path is non-empty only that file is
// read (on top of the defaults); otherwise the user config file and
// then a project-local flurry.toml / .flurry.toml are tried.
// Environment variables override file values either way.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DataDir:         DefaultDataDir,
		TasksFile:       DefaultTasksFile,
		ArchiveFile:     DefaultArchiveFile,
		LogLevel:        DefaultLogLevel,
		ReminderMinutes: DefaultReminderMinutes,
	}

	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else {
		if userFile := findUserConfigFile(); userFile != "" {
			if err := loadFile(cfg, userFile); err != nil {
				return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
			}
		}
		if projFile := findProjectConfigFile(); projFile != "" {
			if err := loadFile(cfg, projFile); err != nil {
				return nil, fmt.Errorf("loading project config file %s: %w", projFile, err)
			}
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func findUserConfigFile() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(configDir, "flurry", "flurry.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func findProjectConfigFile() string {
	for _, name := range []string{"flurry.toml", ".flurry.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("FLURRY_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FLURRY_TASKS_FILE"); v != "" {
		cfg.TasksFile = v
	}
	if v := os.Getenv("FLURRY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FLURRY_REMINDER_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ReminderMinutes = n
		}
	}
}
