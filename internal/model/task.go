package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidationError reports a rejected task field at construction time.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid task: %s %s", e.Field, e.Reason)
}

// ErrEmptyTitle is returned by New when the title is empty or blank.
var ErrEmptyTitle = &ValidationError{Field: "title", Reason: "must not be empty"}

// Task is a single unit of work with a deadline.
//
// ID and CreatedAt are assigned once and never change afterwards.
// Overdue status is not stored; it is derived from Completed and
// EndTime on demand, so it can never go stale.
type Task struct {
	ID          string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time // deadline
	Priority    Priority
	Category    Category
	Completed   bool
	CreatedAt   time.Time
}

// New creates a fresh task with a generated ID and CreatedAt set to
// now. A zero-value priority or category is substituted with the
// documented default. Blank titles are rejected.
func New(title, description string, start, end time.Time, p Priority, c Category) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, ErrEmptyTitle
	}
	if p == "" {
		p = DefaultPriority
	}
	if c == "" {
		c = DefaultCategory
	}
	return Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		StartTime:   start,
		EndTime:     end,
		Priority:    p,
		Category:    c,
		CreatedAt:   time.Now(),
	}, nil
}

// MarkCompleted sets the completion flag. A completed task is never
// overdue, whatever its deadline.
func (t *Task) MarkCompleted(done bool) {
	t.Completed = done
}

// SetEndTime moves the deadline. Overdue status follows automatically
// in both directions since it is derived from the deadline.
func (t *Task) SetEndTime(end time.Time) {
	t.EndTime = end
}

// IsOverdue reports whether the task is incomplete and past its
// deadline at the given instant.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && now.After(t.EndTime)
}

// DueOn reports whether the deadline falls on the given calendar day.
func (t Task) DueOn(day time.Time) bool {
	y1, m1, d1 := t.EndTime.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Matches reports whether the query occurs in the title or the
// description, case-insensitively.
func (t Task) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

func (t Task) String() string {
	return fmt.Sprintf("%s [%s]", t.Title, t.Priority.DisplayName())
}
