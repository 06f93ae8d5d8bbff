package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("DataDir: got %s, want %s", cfg.DataDir, DefaultDataDir)
	}
	if cfg.TasksFile != DefaultTasksFile {
		t.Errorf("TasksFile: got %s, want %s", cfg.TasksFile, DefaultTasksFile)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %s, want %s", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.ReminderMinutes != DefaultReminderMinutes {
		t.Errorf("ReminderMinutes: got %d, want %d", cfg.ReminderMinutes, DefaultReminderMinutes)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flurry.toml")
	content := `
data_dir = "/tmp/flurry-test"
tasks_file = "mine.json"
log_level = "debug"
reminder_minutes = 15
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/tmp/flurry-test" {
		t.Errorf("DataDir: got %s", cfg.DataDir)
	}
	if cfg.TasksFile != "mine.json" {
		t.Errorf("TasksFile: got %s", cfg.TasksFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %s", cfg.LogLevel)
	}
	if cfg.Reminder() != 15*time.Minute {
		t.Errorf("Reminder: got %v, want 15m", cfg.Reminder())
	}
	// Unset keys keep their defaults.
	if cfg.ArchiveFile != DefaultArchiveFile {
		t.Errorf("ArchiveFile: got %s, want default", cfg.ArchiveFile)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flurry.toml")
	if err := os.WriteFile(path, []byte(`data_dir = "from-file"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FLURRY_DATA_DIR", "from-env")
	t.Setenv("FLURRY_REMINDER_MINUTES", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "from-env" {
		t.Errorf("DataDir: got %s, want env value", cfg.DataDir)
	}
	if cfg.ReminderMinutes != 5 {
		t.Errorf("ReminderMinutes: got %d, want 5", cfg.ReminderMinutes)
	}
}

func TestBadEnvReminderIgnored(t *testing.T) {
	t.Setenv("FLURRY_REMINDER_MINUTES", "soon")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ReminderMinutes != DefaultReminderMinutes {
		t.Errorf("ReminderMinutes: got %d, want default", cfg.ReminderMinutes)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load of a missing explicit config file succeeded, want error")
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{DataDir: "d", TasksFile: "t.json", ArchiveFile: "a.db"}
	if cfg.TasksPath() != filepath.Join("d", "t.json") {
		t.Errorf("TasksPath: got %s", cfg.TasksPath())
	}
	if cfg.ArchivePath() != filepath.Join("d", "a.db") {
		t.Errorf("ArchivePath: got %s", cfg.ArchivePath())
	}
}
