package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mkarpov/flurry/internal/model"
)

func mustTask(t *testing.T, title string) model.Task {
	t.Helper()
	now := time.Now()
	task, err := model.New(title, "", now, now.Add(time.Hour), "", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return task
}

func TestLoadMissingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s := NewFileStore(dir, "tasks.json")

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks from a missing file, want 0", len(tasks))
	}
	// First load prepares the directory for the first save.
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir(), "tasks.json")

	want := []model.Task{mustTask(t, "one"), mustTask(t, "two")}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tasks, want 2", len(got))
	}
	if got[0].ID != want[0].ID || got[1].ID != want[1].ID {
		t.Errorf("round trip changed task IDs")
	}
}

func TestSaveEmptyWritesArrayToken(t *testing.T) {
	s := NewFileStore(t.TempDir(), "tasks.json")
	if err := s.Save(nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("empty set persisted as %q, want %q", data, "[]")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, "tasks.json")
	if err := s.Save([]model.Task{mustTask(t, "x")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries in data dir, want 1", len(entries))
	}
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewFileStore(dir, "tasks.json")
	if err := s.Save([]model.Task{mustTask(t, "x")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("data file missing after save: %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, "tasks.json")
	if err := os.WriteFile(s.Path(), []byte("not json at all"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := s.Load(); err == nil {
		t.Error("Load of a corrupt file succeeded, want error")
	}
}

func TestDefaults(t *testing.T) {
	s := NewFileStore("", "")
	if s.Path() != filepath.Join("data", "tasks.json") {
		t.Errorf("default path: got %s", s.Path())
	}
}
