package model

import "strings"

// Priority classifies how urgent a task is.
type Priority string

const (
	PriorityUrgent    Priority = "URGENT"
	PriorityImportant Priority = "IMPORTANT"
	PriorityNormal    Priority = "NORMAL"
)

// DefaultPriority is substituted wherever a priority is absent or
// unrecognized.
const DefaultPriority = PriorityImportant

// Priorities lists all priorities from most to least urgent.
var Priorities = []Priority{PriorityUrgent, PriorityImportant, PriorityNormal}

type priorityMeta struct {
	displayName string
	color       string
	iconName    string
}

var priorityInfo = map[Priority]priorityMeta{
	PriorityUrgent:    {"Срочно", "#FF4444", "urgent"},
	PriorityImportant: {"Важно", "#FFBB33", "important"},
	PriorityNormal:    {"Желательно", "#00C851", "normal"},
}

// DisplayName returns the human-readable name shown in the UI.
func (p Priority) DisplayName() string { return priorityInfo[p].displayName }

// Color returns the hex color associated with the priority.
func (p Priority) Color() string { return priorityInfo[p].color }

// IconName returns the icon identifier associated with the priority.
func (p Priority) IconName() string { return priorityInfo[p].iconName }

// Rank orders priorities for sorting; lower is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityImportant:
		return 1
	default:
		return 2
	}
}

// Next cycles to the following priority, wrapping around.
func (p Priority) Next() Priority {
	return Priorities[(p.Rank()+1)%len(Priorities)]
}

// ParsePriority resolves a priority from either its constant name
// ("URGENT") or its display name ("Срочно"), case-insensitively.
// Anything unrecognized, including the empty string, resolves to
// DefaultPriority rather than an error.
func ParsePriority(s string) Priority {
	lower := strings.ToLower(strings.TrimSpace(s))
	for p, meta := range priorityInfo {
		if lower == strings.ToLower(string(p)) || lower == strings.ToLower(meta.displayName) {
			return p
		}
	}
	return DefaultPriority
}

// PriorityFromDisplayName resolves a priority by display name only,
// case-insensitively, falling back to DefaultPriority.
func PriorityFromDisplayName(name string) Priority {
	lower := strings.ToLower(strings.TrimSpace(name))
	for p, meta := range priorityInfo {
		if lower == strings.ToLower(meta.displayName) {
			return p
		}
	}
	return DefaultPriority
}
