package domain

import (
	"sort"
	"strings"
	"time"
)

// Priority ranks notes and tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// OrDefault returns p, or medium when p is empty.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

// Note is an unscheduled item waiting in the drawer.
type Note struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   int       `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsCompleted reports whether the note is checked off. Completed notes are
// locked and cannot be dragged onto the calendar.
func (n *Note) IsCompleted() bool {
	return n != nil && n.Completed == 1
}

// NoteInput is the payload accepted when creating a note.
type NoteInput struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Completed   *int     `json:"completed,omitempty"`
}

// Validate checks required fields and enums.
func (in NoteInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return Invalid("title is required")
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return Invalid("invalid priority %q", in.Priority)
	}
	if in.Completed != nil {
		if err := validateCompleted(*in.Completed); err != nil {
			return err
		}
	}
	return nil
}

// NewNote builds a note from a validated input, applying defaults.
func NewNote(id, userID string, in NoteInput, createdAt time.Time) *Note {
	note := &Note{
		ID:          id,
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: cloneString(in.Description),
		Priority:    in.Priority.OrDefault(),
		CreatedAt:   createdAt,
	}
	if in.Completed != nil {
		note.Completed = *in.Completed
	}
	return note
}

// NotePatch describes a partial note update.
type NotePatch struct {
	Title       Optional[string]   `json:"title,omitzero"`
	Description Optional[string]   `json:"description,omitzero"`
	Priority    Optional[Priority] `json:"priority,omitzero"`
	Completed   Optional[int]      `json:"completed,omitzero"`
}

// Validate rejects explicit nulls on required fields and malformed values.
func (p NotePatch) Validate() error {
	if p.Title.Set && (p.Title.Value == nil || strings.TrimSpace(*p.Title.Value) == "") {
		return Invalid("title cannot be empty")
	}
	if p.Priority.Set && (p.Priority.Value == nil || !p.Priority.Value.Valid()) {
		return Invalid("invalid priority")
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

// Apply merges the provided fields into n. Call Validate first.
func (p NotePatch) Apply(n *Note) {
	if p.Title.Value != nil {
		n.Title = strings.TrimSpace(*p.Title.Value)
	}
	n.Description = p.Description.Apply(n.Description)
	if p.Priority.Value != nil {
		n.Priority = *p.Priority.Value
	}
	if p.Completed.Value != nil {
		n.Completed = *p.Completed.Value
	}
}

// SortNotes orders notes most recent first.
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		}
		return notes[i].ID < notes[j].ID
	})
}

func validateCompleted(v int) error {
	if v != 0 && v != 1 {
		return Invalid("completed must be 0 or 1")
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Clone returns a copy that shares no pointers with n.
func (n Note) Clone() Note {
	n.Description = cloneString(n.Description)
	return n
}
