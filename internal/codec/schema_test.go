package codec

import (
	"testing"
	"time"

	"github.com/mkarpov/flurry/internal/model"
)

func TestValidateAcceptsEncodedOutput(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.Local)
	task, err := model.New("valid", "desc", now, now.Add(time.Hour), model.PriorityUrgent, model.CategoryStudy)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	data, err := Encode([]model.Task{task})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err := Validate(data); err != nil {
		t.Errorf("Validate rejected Encode output: %v", err)
	}
}

func TestValidateEmptyInput(t *testing.T) {
	for _, in := range []string{"", "  \n", "[]"} {
		if err := Validate([]byte(in)); err != nil {
			t.Errorf("Validate(%q) failed: %v", in, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an array", `{"id":"x"}`},
		{"missing required", `[{"id":"t1","title":"x"}]`},
		{"bad timestamp", `[{"id":"t1","title":"x","startTime":"yesterday","endTime":"2026-01-01T00:00:00"}]`},
		{"bad priority", `[{"id":"t1","title":"x","startTime":"2026-01-01T00:00:00","endTime":"2026-01-02T00:00:00","priority":"MAXIMUM"}]`},
		{"empty title", `[{"id":"t1","title":"","startTime":"2026-01-01T00:00:00","endTime":"2026-01-02T00:00:00"}]`},
		{"not json", `[{]`},
	}
	for _, tt := range tests {
		if err := Validate([]byte(tt.in)); err == nil {
			t.Errorf("%s: Validate succeeded, want error", tt.name)
		}
	}
}
