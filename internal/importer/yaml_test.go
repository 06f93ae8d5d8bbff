package importer

import (
	"testing"
	"time"

	"github.com/mkarpov/flurry/internal/model"
	"github.com/mkarpov/flurry/internal/registry"
	"github.com/mkarpov/flurry/internal/store"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.New(store.NewFileStore(t.TempDir(), "tasks.json"), nil)
}

func TestImport(t *testing.T) {
	reg := newTestRegistry(t)
	yamlStr := `
tasks:
  - title: "Сдать отчёт"
    description: "годовой"
    deadline: "2026-12-01 18:00"
    priority: "Срочно"
    category: "Работа"
  - title: "Groceries"
    deadline: "2026-06-15"
  - title: "Read paper"
    start: "2026-06-01T09:00:00"
    deadline: "2026-06-20T17:00:00"
    priority: "NORMAL"
    category: "STUDY"
`
	n, err := Import(reg, yamlStr)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 3 {
		t.Errorf("created %d tasks, want 3", n)
	}
	if reg.Len() != 3 {
		t.Errorf("registry holds %d tasks, want 3", reg.Len())
	}

	first := reg.All()[0]
	if first.Priority != model.PriorityUrgent {
		t.Errorf("priority by display name: got %s, want URGENT", first.Priority)
	}
	if first.Category != model.CategoryWork {
		t.Errorf("category by display name: got %s, want WORK", first.Category)
	}
	wantEnd := time.Date(2026, 12, 1, 18, 0, 0, 0, time.Local)
	if !first.EndTime.Equal(wantEnd) {
		t.Errorf("deadline: got %v, want %v", first.EndTime, wantEnd)
	}

	second := reg.All()[1]
	if second.Priority != model.DefaultPriority || second.Category != model.DefaultCategory {
		t.Errorf("missing enums did not default: %s/%s", second.Priority, second.Category)
	}
}

func TestImportBadYAML(t *testing.T) {
	reg := newTestRegistry(t)
	if _, err := Import(reg, "tasks: ["); err == nil {
		t.Error("Import of invalid YAML succeeded, want error")
	}
}

func TestImportEmptyDocument(t *testing.T) {
	reg := newTestRegistry(t)
	if _, err := Import(reg, "tasks: []"); err == nil {
		t.Error("Import with no tasks succeeded, want error")
	}
}

func TestImportMissingDeadline(t *testing.T) {
	reg := newTestRegistry(t)
	yamlStr := `
tasks:
  - title: "no deadline"
`
	if _, err := Import(reg, yamlStr); err == nil {
		t.Error("Import without a deadline succeeded, want error")
	}
}

func TestImportStopsAtFirstFailure(t *testing.T) {
	reg := newTestRegistry(t)
	yamlStr := `
tasks:
  - title: "fine"
    deadline: "2026-06-15"
  - title: ""
    deadline: "2026-06-16"
  - title: "never reached"
    deadline: "2026-06-17"
`
	n, err := Import(reg, yamlStr)
	if err == nil {
		t.Fatal("Import with a blank title succeeded, want error")
	}
	if n != 1 {
		t.Errorf("created %d tasks before failing, want 1", n)
	}
	if reg.Len() != 1 {
		t.Errorf("registry holds %d tasks, want 1", reg.Len())
	}
}

func TestImportBadTimestamp(t *testing.T) {
	reg := newTestRegistry(t)
	yamlStr := `
tasks:
  - title: "vague"
    deadline: "next tuesday"
`
	if _, err := Import(reg, yamlStr); err == nil {
		t.Error("Import with an unparseable deadline succeeded, want error")
	}
}
