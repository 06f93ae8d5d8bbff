package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkarpov/flurry/internal/model"
	"github.com/mkarpov/flurry/internal/registry"
)

type appState int

const (
	stateList appState = iota
	stateAddTitle
	stateAddDeadline
	stateEditDeadline
	stateConfirm
)

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	detailStyle  = lipgloss.NewStyle().
			Padding(1, 2).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))
	descBoxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))
)

type extraKeyMap struct {
	Add      key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Deadline key.Binding
	Priority key.Binding
	Category key.Binding
	Copy     key.Binding
	Archive  key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Deadline: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "deadline"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy title"),
		),
		Archive: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "archive"),
		),
	}
}

// Model is the top-level BubbleTea model for the flurry TUI.
type Model struct {
	state          appState
	list           list.Model
	input          textinput.Model
	deadlineInput  dateTimeInput
	reg            *registry.Registry
	keys           extraKeyMap
	reminder       time.Duration
	pendingTitle   string
	deadlineTaskID string
	err            error
	width          int
	height         int
}

type tasksLoadedMsg []model.Task
type errMsg struct{ error }

// NewModel creates a new TUI model. reminder is the due-soon window
// shown in the list.
func NewModel(reg *registry.Registry, reminder time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 256

	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "flurry"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.Deadline, keys.Priority, keys.Category, keys.Copy, keys.Archive}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.Deadline, keys.Priority, keys.Category, keys.Copy, keys.Archive}
	}

	return Model{
		state:         stateList,
		list:          l,
		input:         ti,
		deadlineInput: newDateTimeInput(),
		reg:           reg,
		keys:          keys,
		reminder:      reminder,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadTasks
}

func (m Model) loadTasks() tea.Msg {
	return tasksLoadedMsg(m.reg.All())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		contentWidth := msg.Width - h
		leftWidth := contentWidth * 60 / 100
		m.list.SetSize(leftWidth, msg.Height-v)
		return m, nil

	case tasksLoadedMsg:
		soon := make(map[string]bool)
		for _, t := range m.reg.DueWithin(m.reminder) {
			soon[t.ID] = true
		}
		items := make([]list.Item, len(msg))
		for i, t := range msg {
			items[i] = TaskItem{Task: t, Soon: soon[t.ID]}
		}
		m.list.SetItems(items)
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.error
		return m, nil
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateAddTitle:
		return m.updateAddTitle(msg)
	case stateAddDeadline, stateEditDeadline:
		return m.updateDeadline(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "a", "n":
			m.state = stateAddTitle
			m.input.Reset()
			cmd := m.input.Focus()
			return m, cmd
		case "enter", "x":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				if _, err := m.reg.MarkCompleted(item.Task.ID, !item.Task.Completed); err != nil {
					m.err = err
					return m, nil
				}
				return m, m.loadTasks
			}
		case "p":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				t := item.Task
				t.Priority = t.Priority.Next()
				if _, err := m.reg.Update(t); err != nil {
					m.err = err
					return m, nil
				}
				return m, m.loadTasks
			}
		case "c":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				t := item.Task
				t.Category = t.Category.Next()
				if _, err := m.reg.Update(t); err != nil {
					m.err = err
					return m, nil
				}
				return m, m.loadTasks
			}
		case "D":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				m.state = stateEditDeadline
				m.deadlineTaskID = item.Task.ID
				m.deadlineInput = newDateTimeInput()
				m.deadlineInput.SetValue(item.Task.EndTime)
				m.deadlineInput.Focus()
				return m, nil
			}
		case "y":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				if err := clipboard.WriteAll(item.Task.Title); err != nil {
					m.err = err
				}
				return m, nil
			}
		case "A":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				if err := m.reg.Archive(item.Task.ID); err != nil {
					m.err = err
					return m, nil
				}
				return m, m.loadTasks
			}
		case "d":
			if m.list.SelectedItem() != nil {
				m.state = stateConfirm
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAddTitle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			title := strings.TrimSpace(m.input.Value())
			if title == "" {
				m.err = model.ErrEmptyTitle
				return m, nil
			}
			m.pendingTitle = title
			m.state = stateAddDeadline
			m.deadlineTaskID = ""
			m.deadlineInput = newDateTimeInput()
			m.deadlineInput.Focus()
			return m, nil
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDeadline(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			end, err := m.deadlineInput.Value()
			if err != nil {
				m.err = err
				return m, nil
			}
			if m.state == stateAddDeadline {
				t, err := model.New(m.pendingTitle, "", time.Now(), end, "", "")
				if err == nil {
					err = m.reg.Add(t)
				}
				if err != nil {
					m.err = err
				}
			} else {
				if t, ok := m.reg.Get(m.deadlineTaskID); ok {
					t.SetEndTime(end)
					if _, err := m.reg.Update(t); err != nil {
						m.err = err
					}
				}
			}
			m.state = stateList
			return m, m.loadTasks
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.deadlineInput, cmd = m.deadlineInput.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				if _, err := m.reg.Remove(item.Task.ID); err != nil {
					m.err = err
				}
			}
			m.state = stateList
			return m, m.loadTasks
		case "n", "esc":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return ""
	}
	t := item.Task

	descContent := statusStyle.Render("(no description)")
	if t.Description != "" {
		descContent = t.Description
	}
	desc := descBoxStyle.Render(descContent)

	priBadge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Priority.Color())).
		Bold(true).
		Render("[" + t.Priority.DisplayName() + "]")
	catBadge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Category.Color())).
		Bold(true).
		Render("[" + t.Category.DisplayName() + "]")

	deadline := "deadline: " + t.EndTime.Format("02.01.2006 15:04")
	if t.IsOverdue(time.Now()) {
		deadline = errorStyle.Render("⚠ " + deadline)
	} else if item.Soon {
		deadline = "⏰ " + deadline
	}

	return fmt.Sprintf("%s\n%s %s\n\n%s\n\nstart:    %s\n%s\ncreated:  %s\n\n%s",
		t.Title,
		priBadge, catBadge,
		desc,
		t.StartTime.Format("02.01.2006 15:04"),
		deadline,
		t.CreatedAt.Format("02.01.2006 15:04"),
		statusStyle.Render("p: priority  c: category  D: deadline"),
	)
}

func (m Model) statusLine() string {
	open := m.reg.CountByCompletion(false)
	overdue := m.reg.CountOverdue()
	line := fmt.Sprintf("%d open · %d overdue", open, overdue)
	if overdue > 0 {
		return errorStyle.Render(line)
	}
	return statusStyle.Render(line)
}

func (m Model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.state {
	case stateAddTitle:
		return appStyle.Render(
			titleStyle.Render("New Task") + "\n\n" +
				m.input.View() + "\n\n" +
				statusStyle.Render("enter: next · esc: cancel") +
				errView,
		)
	case stateAddDeadline, stateEditDeadline:
		header := "Set Deadline"
		if m.state == stateAddDeadline {
			header = "New Task: Deadline"
		}
		return appStyle.Render(
			titleStyle.Render(header) + "\n\n" +
				m.deadlineInput.View() + "\n\n" +
				statusStyle.Render("tab/→: next field · enter: save · esc: cancel") +
				errView,
		)
	case stateConfirm:
		item, _ := m.list.SelectedItem().(TaskItem)
		return appStyle.Render(
			confirmStyle.Render("Delete Task?") + "\n\n" +
				"  " + item.Task.Title + "\n\n" +
				statusStyle.Render("y: delete · n/esc: cancel") +
				errView,
		)
	default:
		h, v := appStyle.GetFrameSize()
		contentWidth := m.width - h
		contentHeight := m.height - v
		leftWidth := contentWidth * 60 / 100
		rightWidth := contentWidth - leftWidth

		leftPane := m.list.View()
		rightPane := detailStyle.
			Width(rightWidth).
			Height(contentHeight - 1).
			Render(m.renderDetail())
		_ = leftWidth // leftWidth is controlled via SetSize
		content := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
		return appStyle.Render(content + "\n" + m.statusLine() + errView)
	}
}
