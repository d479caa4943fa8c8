package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/fastygo/timeblock/pkg/calendar"
)

// Task is a note placed on the calendar. A task without a start time is
// unscheduled and lives in the day's tray.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	NoteID      *string   `json:"noteId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Priority    Priority  `json:"priority"`
	Date        string    `json:"date"`
	StartTime   *string   `json:"startTime"`
	Duration    *int      `json:"duration"`
	Completed   int       `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Completed == 1
}

// Scheduled reports whether the task has a start time.
func (t *Task) Scheduled() bool {
	return t != nil && t.StartTime != nil
}

// Slot returns the hour and quarter index the task starts in.
func (t *Task) Slot() (hour, quarter int, ok bool) {
	if !t.Scheduled() {
		return 0, 0, false
	}
	h, q, err := calendar.QuarterOf(*t.StartTime)
	if err != nil {
		return 0, 0, false
	}
	return h, q, true
}

// TaskInput is the payload accepted when creating a task.
type TaskInput struct {
	NoteID      *string  `json:"noteId,omitempty"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Date        string   `json:"date"`
	StartTime   *string  `json:"startTime,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Completed   *int     `json:"completed,omitempty"`
}

// Validate checks required fields and formats.
func (in TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return Invalid("title is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		return Invalid("date is required")
	}
	if !calendar.ValidDateKey(in.Date) {
		return Invalid("invalid date %q", in.Date)
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return Invalid("invalid priority %q", in.Priority)
	}
	if in.StartTime != nil {
		if _, _, err := calendar.ParseClock(*in.StartTime); err != nil {
			return WrapError(ErrCodeInvalid, "invalid startTime", err)
		}
	}
	if in.Duration != nil && *in.Duration <= 0 {
		return Invalid("duration must be positive")
	}
	if in.Completed != nil {
		if err := validateCompleted(*in.Completed); err != nil {
			return err
		}
	}
	return nil
}

// NewTask builds a task from a validated input, applying defaults.
func NewTask(id, userID string, in TaskInput, createdAt time.Time) *Task {
	task := &Task{
		ID:          id,
		UserID:      userID,
		NoteID:      cloneString(in.NoteID),
		Title:       strings.TrimSpace(in.Title),
		Description: cloneString(in.Description),
		Priority:    in.Priority.OrDefault(),
		Date:        in.Date,
		StartTime:   normalizeStart(in.StartTime),
		Duration:    cloneInt(in.Duration),
		CreatedAt:   createdAt,
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}
	return task
}

// TaskPatch describes a partial task update.
type TaskPatch struct {
	NoteID      Optional[string]   `json:"noteId,omitzero"`
	Title       Optional[string]   `json:"title,omitzero"`
	Description Optional[string]   `json:"description,omitzero"`
	Priority    Optional[Priority] `json:"priority,omitzero"`
	Date        Optional[string]   `json:"date,omitzero"`
	StartTime   Optional[string]   `json:"startTime,omitzero"`
	Duration    Optional[int]      `json:"duration,omitzero"`
	Completed   Optional[int]      `json:"completed,omitzero"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return !p.NoteID.Set && !p.Title.Set && !p.Description.Set && !p.Priority.Set &&
		!p.Date.Set && !p.StartTime.Set && !p.Duration.Set && !p.Completed.Set
}

func (p TaskPatch) Validate() error {
	if p.Title.Set && (p.Title.Value == nil || strings.TrimSpace(*p.Title.Value) == "") {
		return Invalid("title cannot be empty")
	}
	if p.Date.Set && (p.Date.Value == nil || !calendar.ValidDateKey(*p.Date.Value)) {
		return Invalid("invalid date")
	}
	if p.Priority.Set && (p.Priority.Value == nil || !p.Priority.Value.Valid()) {
		return Invalid("invalid priority")
	}
	if p.StartTime.Value != nil {
		if _, _, err := calendar.ParseClock(*p.StartTime.Value); err != nil {
			return WrapError(ErrCodeInvalid, "invalid startTime", err)
		}
	}
	if p.Duration.Value != nil && *p.Duration.Value <= 0 {
		return Invalid("duration must be positive")
	}
	if p.Completed.Set {
		if p.Completed.Value == nil {
			return Invalid("completed cannot be null")
		}
		if err := validateCompleted(*p.Completed.Value); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the provided fields into t. Call Validate first.
func (p TaskPatch) Apply(t *Task) {
	t.NoteID = p.NoteID.Apply(t.NoteID)
	if p.Title.Value != nil {
		t.Title = strings.TrimSpace(*p.Title.Value)
	}
	t.Description = p.Description.Apply(t.Description)
	if p.Priority.Value != nil {
		t.Priority = *p.Priority.Value
	}
	if p.Date.Value != nil {
		t.Date = *p.Date.Value
	}
	if p.StartTime.Set {
		t.StartTime = normalizeStart(p.StartTime.Value)
	}
	t.Duration = p.Duration.Apply(t.Duration)
	if p.Completed.Value != nil {
		t.Completed = *p.Completed.Value
	}
}

// SortTasks orders tasks by date, then scheduled tasks by start time, then
// unscheduled tasks of the same date.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := &tasks[i], &tasks[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Scheduled() != b.Scheduled() {
			return a.Scheduled()
		}
		if a.Scheduled() && *a.StartTime != *b.StartTime {
			return *a.StartTime < *b.StartTime
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func normalizeStart(s *string) *string {
	if s == nil {
		return nil
	}
	v, err := calendar.NormalizeClock(*s)
	if err != nil {
		v = *s
	}
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	t.NoteID = cloneString(t.NoteID)
	t.Description = cloneString(t.Description)
	t.StartTime = cloneString(t.StartTime)
	t.Duration = cloneInt(t.Duration)
	return t
}
