// Package importer creates tasks in bulk from a YAML document.
package importer

import (
	"fmt"
	"time"

	"github.com/mkarpov/flurry/internal/model"
	"github.com/mkarpov/flurry/internal/registry"
	"gopkg.in/yaml.v3"
)

// YAMLTask represents a single task in the YAML input. Priority and
// category accept either the constant name ("URGENT") or the display
// name ("Срочно"); unknown values fall back to the defaults.
type YAMLTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Start       string `yaml:"start,omitempty"`
	Deadline    string `yaml:"deadline"`
	Priority    string `yaml:"priority,omitempty"`
	Category    string `yaml:"category,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Accepted timestamp formats, tried in order. Date-only deadlines
// land at midnight.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Import parses a YAML document and adds its tasks to the registry.
// Returns the number of tasks created. The first failing task aborts
// the import; tasks created before it stay.
func Import(reg *registry.Registry, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	count := 0
	for _, yt := range input.Tasks {
		if err := importTask(reg, yt); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importTask(reg *registry.Registry, yt YAMLTask) error {
	if yt.Deadline == "" {
		return fmt.Errorf("task %q: deadline is required", yt.Title)
	}
	end, err := parseTime(yt.Deadline)
	if err != nil {
		return fmt.Errorf("task %q: deadline: %w", yt.Title, err)
	}

	start := time.Now()
	if yt.Start != "" {
		start, err = parseTime(yt.Start)
		if err != nil {
			return fmt.Errorf("task %q: start: %w", yt.Title, err)
		}
	}

	t, err := model.New(yt.Title, yt.Description, start, end,
		model.ParsePriority(yt.Priority), model.ParseCategory(yt.Category))
	if err != nil {
		return fmt.Errorf("task %q: %w", yt.Title, err)
	}

	if err := reg.Add(t); err != nil {
		return fmt.Errorf("add task %q: %w", yt.Title, err)
	}
	return nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
