// Package registry holds the authoritative in-memory task set and
// writes every mutation through to the backing store.
//
// All operations are synchronous and run on the caller's goroutine;
// there is no internal locking. If two processes point at the same
// data file the last writer wins; that is a documented limitation of
// a single-user tool, not something the registry defends against.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mkarpov/flurry/internal/model"
	"github.com/mkarpov/flurry/internal/store"
)

// Registry is the single owner of the live task set. Construct one
// at startup and pass it to whatever needs tasks; there is no global
// instance.
type Registry struct {
	store   *store.FileStore
	archive *store.ArchiveStore // nil when archiving is disabled
	tasks   []model.Task
}

// New creates a registry backed by fs. archive may be nil.
func New(fs *store.FileStore, archive *store.ArchiveStore) *Registry {
	return &Registry{store: fs, archive: archive}
}

// Load replaces the in-memory set with the contents of the backing
// store. An absent data file loads as an empty set.
func (r *Registry) Load() error {
	tasks, err := r.store.Load()
	if err != nil {
		return err
	}
	r.tasks = tasks
	return nil
}

// Save writes the current set to the backing store.
func (r *Registry) Save() error {
	return r.store.Save(r.tasks)
}

// Add appends a task and persists. A task whose ID already exists is
// rejected; IDs are unique within the registry at all times.
func (r *Registry) Add(t model.Task) error {
	if _, ok := r.find(t.ID); ok {
		return fmt.Errorf("task %s already exists", t.ID)
	}
	r.tasks = append(r.tasks, t)
	return r.Save()
}

// Remove deletes the task with the given id and persists. Removing
// an unknown id reports false and touches neither memory nor disk.
func (r *Registry) Remove(id string) (bool, error) {
	i, ok := r.find(id)
	if !ok {
		return false, nil
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return true, r.Save()
}

// Update replaces the stored task with the same ID wholesale and
// persists. An unknown ID reports false and is not persisted.
func (r *Registry) Update(t model.Task) (bool, error) {
	i, ok := r.find(t.ID)
	if !ok {
		return false, nil
	}
	r.tasks[i] = t
	return true, r.Save()
}

// MarkCompleted sets the completion flag of the task with the given
// id and persists. An unknown id reports false.
func (r *Registry) MarkCompleted(id string, done bool) (bool, error) {
	i, ok := r.find(id)
	if !ok {
		return false, nil
	}
	r.tasks[i].MarkCompleted(done)
	return true, r.Save()
}

// Clear empties the set and persists the empty state.
func (r *Registry) Clear() error {
	r.tasks = nil
	return r.Save()
}

// Get returns the task with the given id.
func (r *Registry) Get(id string) (model.Task, bool) {
	i, ok := r.find(id)
	if !ok {
		return model.Task{}, false
	}
	return r.tasks[i], true
}

// All returns a copy of the current task set in insertion order.
func (r *Registry) All() []model.Task {
	out := make([]model.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Len returns the number of tasks in the registry.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Search returns tasks whose title or description contains the query,
// case-insensitively. An empty or blank query returns all tasks; an
// empty search box means "show everything", not "show nothing".
func (r *Registry) Search(query string) []model.Task {
	q := strings.TrimSpace(query)
	if q == "" {
		return r.All()
	}
	var out []model.Task
	for _, t := range r.tasks {
		if t.Matches(q) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByCompletion returns tasks with the given completion state.
func (r *Registry) FilterByCompletion(done bool) []model.Task {
	var out []model.Task
	for _, t := range r.tasks {
		if t.Completed == done {
			out = append(out, t)
		}
	}
	return out
}

// CountByCompletion counts tasks with the given completion state.
func (r *Registry) CountByCompletion(done bool) int {
	n := 0
	for _, t := range r.tasks {
		if t.Completed == done {
			n++
		}
	}
	return n
}

// CountOverdue counts incomplete tasks past their deadline, evaluated
// against the current time.
func (r *Registry) CountOverdue() int {
	now := time.Now()
	n := 0
	for _, t := range r.tasks {
		if t.IsOverdue(now) {
			n++
		}
	}
	return n
}

// TasksForDate returns tasks whose deadline falls on the given
// calendar day, most urgent first, earlier deadline breaking ties.
func (r *Registry) TasksForDate(day time.Time) []model.Task {
	var out []model.Task
	for _, t := range r.tasks {
		if t.DueOn(day) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority.Rank() != out[j].Priority.Rank() {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		}
		return out[i].EndTime.Before(out[j].EndTime)
	})
	return out
}

// DueWithin returns incomplete tasks whose deadline lies in
// (now, now+d], for deadline reminders.
func (r *Registry) DueWithin(d time.Duration) []model.Task {
	now := time.Now()
	limit := now.Add(d)
	var out []model.Task
	for _, t := range r.tasks {
		if !t.Completed && t.EndTime.After(now) && !t.EndTime.After(limit) {
			out = append(out, t)
		}
	}
	return out
}

// Archive moves a completed task out of the active set into the
// archive store and persists the shrunken set. Archiving an
// incomplete task or running without an archive store is an error.
func (r *Registry) Archive(id string) error {
	if r.archive == nil {
		return fmt.Errorf("archive is not configured")
	}
	i, ok := r.find(id)
	if !ok {
		return fmt.Errorf("task %s not found", id)
	}
	t := r.tasks[i]
	if !t.Completed {
		return fmt.Errorf("task %q is not completed", t.Title)
	}
	if err := r.archive.Archive(t); err != nil {
		return err
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return r.Save()
}

func (r *Registry) find(id string) (int, bool) {
	for i, t := range r.tasks {
		if t.ID == id {
			return i, true
		}
	}
	return 0, false
}
