// Package codec converts between in-memory tasks and the persisted
// JSON array format.
//
// The format is the compatibility contract with earlier versions of
// the data file: an array of flat task objects with local timestamps
// ("2006-01-02T15:04:05", no offset). Decoding is deliberately
// lenient: unknown fields are ignored, missing optional fields take
// defaults, unrecognized enum names fall back to their defaults, and
// a task with an unparseable required field is skipped with a warning
// instead of failing the whole file.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkarpov/flurry/internal/model"
)

// TimeLayout is the timestamp format of the persisted file.
const TimeLayout = "2006-01-02T15:04:05"

// timeLayoutFrac accepts the optional fractional seconds some earlier
// writers emitted.
const timeLayoutFrac = "2006-01-02T15:04:05.999999999"

// ParseError reports a data file whose top-level structure is not a
// JSON array of task objects.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse tasks: %s: %v", e.Msg, e.Err)
	}
	return "parse tasks: " + e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// taskJSON mirrors one persisted task object.
type taskJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Completed   bool   `json:"completed"`
	Overdue     bool   `json:"overdue"`
	CreatedAt   string `json:"createdAt"`
}

// Encode renders tasks as the persisted JSON array, in input order.
// An empty list encodes to the literal `[]`.
func Encode(tasks []model.Task) ([]byte, error) {
	now := time.Now()
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskJSON{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			StartTime:   t.StartTime.Format(TimeLayout),
			EndTime:     t.EndTime.Format(TimeLayout),
			Priority:    string(t.Priority),
			Category:    string(t.Category),
			Completed:   t.Completed,
			Overdue:     t.IsOverdue(now),
			CreatedAt:   t.CreatedAt.Format(TimeLayout),
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

// Decode parses the persisted JSON array back into tasks.
//
// Empty or whitespace-only input decodes to no tasks and no error:
// the load path treats an absent data set the same way. A bare single
// object is tolerated and wrapped into a one-element list, matching
// files written by earlier versions. Any other top-level shape is a
// *ParseError.
//
// The persisted overdue flag is ignored; overdue status is recomputed
// from the deadline on demand.
func Decode(data []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var elements []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, &ParseError{Msg: "not a valid task array", Err: err}
		}
	case '{':
		elements = []json.RawMessage{json.RawMessage(trimmed)}
	default:
		return nil, &ParseError{Msg: "top level is neither an array nor an object"}
	}

	tasks := make([]model.Task, 0, len(elements))
	for i, raw := range elements {
		t, err := decodeTask(raw)
		if err != nil {
			log.Warn("skipping unreadable task", "index", i, "err", err)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// decodeTask parses a single task object. id, title, startTime and
// endTime are required; everything else defaults.
func decodeTask(raw json.RawMessage) (model.Task, error) {
	var tj taskJSON
	if err := json.Unmarshal(raw, &tj); err != nil {
		return model.Task{}, fmt.Errorf("not a task object: %w", err)
	}
	if tj.ID == "" {
		return model.Task{}, fmt.Errorf("missing id")
	}
	if tj.Title == "" {
		return model.Task{}, fmt.Errorf("missing title")
	}
	start, err := parseTime(tj.StartTime)
	if err != nil {
		return model.Task{}, fmt.Errorf("startTime: %w", err)
	}
	end, err := parseTime(tj.EndTime)
	if err != nil {
		return model.Task{}, fmt.Errorf("endTime: %w", err)
	}

	// createdAt is optional but must parse when present.
	var created time.Time
	if tj.CreatedAt != "" {
		created, err = parseTime(tj.CreatedAt)
		if err != nil {
			return model.Task{}, fmt.Errorf("createdAt: %w", err)
		}
	}

	return model.Task{
		ID:          tj.ID,
		Title:       tj.Title,
		Description: tj.Description,
		StartTime:   start,
		EndTime:     end,
		Priority:    model.ParsePriority(tj.Priority),
		Category:    model.ParseCategory(tj.Category),
		Completed:   tj.Completed,
		CreatedAt:   created,
	}, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("missing timestamp")
	}
	if t, err := time.ParseInLocation(TimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(timeLayoutFrac, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q", s)
	}
	return t, nil
}
