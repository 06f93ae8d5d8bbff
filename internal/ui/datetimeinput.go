package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// dateTimeInput is a segmented input for a local timestamp:
// YYYY-MM-DD HH:MM, one field per segment.
type dateTimeInput struct {
	fields [5]textinput.Model // 0:YYYY, 1:MM, 2:DD, 3:HH, 4:MM
	focus  int
}

func newDateTimeInput() dateTimeInput {
	placeholders := [5]string{"YYYY", "MM", "DD", "HH", "MM"}
	charLimits := [5]int{4, 2, 2, 2, 2}

	var fields [5]textinput.Model
	for i := 0; i < 5; i++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = charLimits[i]
		ti.Width = charLimits[i] + 2
		ti.Validate = func(s string) error {
			for _, r := range s {
				if !unicode.IsDigit(r) {
					return fmt.Errorf("digits only")
				}
			}
			return nil
		}
		fields[i] = ti
	}

	return dateTimeInput{fields: fields}
}

func (d *dateTimeInput) Focus() {
	d.focus = 0
	for i := range d.fields {
		if i == 0 {
			d.fields[i].Focus()
		} else {
			d.fields[i].Blur()
		}
	}
}

func (d *dateTimeInput) SetValue(t time.Time) {
	d.fields[0].SetValue(fmt.Sprintf("%04d", t.Year()))
	d.fields[1].SetValue(fmt.Sprintf("%02d", int(t.Month())))
	d.fields[2].SetValue(fmt.Sprintf("%02d", t.Day()))
	d.fields[3].SetValue(fmt.Sprintf("%02d", t.Hour()))
	d.fields[4].SetValue(fmt.Sprintf("%02d", t.Minute()))
}

// Value assembles the timestamp. Empty date segments default to
// today; an empty day is an error. Empty time segments default to
// the end of the day so a date-only deadline means "by end of day".
func (d *dateTimeInput) Value() (time.Time, error) {
	now := time.Now()

	yyyy := strings.TrimSpace(d.fields[0].Value())
	mm := strings.TrimSpace(d.fields[1].Value())
	dd := strings.TrimSpace(d.fields[2].Value())
	hh := strings.TrimSpace(d.fields[3].Value())
	mi := strings.TrimSpace(d.fields[4].Value())

	if yyyy == "" {
		yyyy = fmt.Sprintf("%04d", now.Year())
	}
	if mm == "" {
		mm = fmt.Sprintf("%02d", int(now.Month()))
	}
	if dd == "" {
		return time.Time{}, fmt.Errorf("day is required")
	}
	if hh == "" {
		hh = "23"
	}
	if mi == "" {
		mi = "59"
	}

	stamp := fmt.Sprintf("%s-%s-%s %s:%s", yyyy, padLeft(mm, 2), padLeft(dd, 2), padLeft(hh, 2), padLeft(mi, 2))
	t, err := time.ParseInLocation("2006-01-02 15:04", stamp, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %s", stamp)
	}
	return t, nil
}

func padLeft(s string, length int) string {
	for len(s) < length {
		s = "0" + s
	}
	return s
}

func (d *dateTimeInput) IsEmpty() bool {
	for i := range d.fields {
		if d.fields[i].Value() != "" {
			return false
		}
	}
	return true
}

func (d *dateTimeInput) focusField(idx int) tea.Cmd {
	d.focus = idx
	var cmds []tea.Cmd
	for i := range d.fields {
		if i == idx {
			cmds = append(cmds, d.fields[i].Focus())
		} else {
			d.fields[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (d dateTimeInput) Update(msg tea.Msg) (dateTimeInput, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "right":
			if d.focus < len(d.fields)-1 {
				cmd := d.focusField(d.focus + 1)
				return d, cmd
			}
			return d, nil
		case "shift+tab", "left":
			if d.focus > 0 {
				cmd := d.focusField(d.focus - 1)
				return d, cmd
			}
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.fields[d.focus], cmd = d.fields[d.focus].Update(msg)
	return d, cmd
}

func (d dateTimeInput) View() string {
	return d.fields[0].View() + " - " + d.fields[1].View() + " - " + d.fields[2].View() +
		"  " + d.fields[3].View() + " : " + d.fields[4].View()
}
