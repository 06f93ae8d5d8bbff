package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkarpov/flurry/internal/model"
)

// TaskItem wraps model.Task to satisfy the list.DefaultItem interface.
type TaskItem struct {
	Task model.Task
	// Soon is set when the deadline falls inside the reminder window.
	Soon bool
}

func (i TaskItem) Title() string {
	check := "[ ]"
	if i.Task.Completed {
		check = "[x]"
	}
	mark := ""
	if i.Task.IsOverdue(time.Now()) {
		mark = "⚠ "
	} else if i.Soon {
		mark = "⏰ "
	}
	return fmt.Sprintf("%s %s%s", check, mark, i.Task.Title)
}

func (i TaskItem) Description() string {
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(i.Task.Priority.Color())).
		Render(i.Task.Priority.DisplayName())
	cat := lipgloss.NewStyle().
		Foreground(lipgloss.Color(i.Task.Category.Color())).
		Render(i.Task.Category.DisplayName())
	return fmt.Sprintf("%s · %s · до %s", badge, cat, i.Task.EndTime.Format("02.01.2006 15:04"))
}

func (i TaskItem) FilterValue() string {
	return i.Task.Title + " " + i.Task.Description
}
