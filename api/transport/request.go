package transport

import (
	"bytes"
	"encoding/json"

	"github.com/fastygo/timeblock/domain"
)

// NoteRequest is the POST /notes body.
type NoteRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	Completed   *int    `json:"completed"`
}

func (r NoteRequest) ToInput() domain.NoteInput {
	return domain.NoteInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.Priority(r.Priority),
		Completed:   r.Completed,
	}
}

// TaskRequest is the POST /tasks body.
type TaskRequest struct {
	NoteID      *string `json:"noteId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	Date        string  `json:"date"`
	StartTime   *string `json:"startTime"`
	Duration    *int    `json:"duration"`
	Completed   *int    `json:"completed"`
}

func (r TaskRequest) ToInput() domain.TaskInput {
	return domain.TaskInput{
		NoteID:      r.NoteID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.Priority(r.Priority),
		Date:        r.Date,
		StartTime:   r.StartTime,
		Duration:    r.Duration,
		Completed:   r.Completed,
	}
}

// DecodeNoteInput parses a create body. Malformed JSON is a ValidationError.
func DecodeNoteInput(body []byte) (domain.NoteInput, error) {
	var req NoteRequest
	if err := decode(body, &req); err != nil {
		return domain.NoteInput{}, err
	}
	return req.ToInput(), nil
}

// DecodeTaskInput parses a create body. Malformed JSON is a ValidationError.
func DecodeTaskInput(body []byte) (domain.TaskInput, error) {
	var req TaskRequest
	if err := decode(body, &req); err != nil {
		return domain.TaskInput{}, err
	}
	return req.ToInput(), nil
}

// DecodeNotePatch keeps the difference between an absent field and an explicit null.
// An empty body is an empty patch.
func DecodeNotePatch(body []byte) (domain.NotePatch, error) {
	var patch domain.NotePatch
	if emptyBody(body) {
		return patch, nil
	}
	err := decode(body, &patch)
	return patch, err
}

// DecodeTaskPatch keeps the difference between an absent field and an explicit null.
// An empty body is an empty patch.
func DecodeTaskPatch(body []byte) (domain.TaskPatch, error) {
	var patch domain.TaskPatch
	if emptyBody(body) {
		return patch, nil
	}
	err := decode(body, &patch)
	return patch, err
}

func emptyBody(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0
}

func decode(body []byte, dst interface{}) error {
	if len(body) == 0 {
		return domain.ErrInvalidPayload
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err)
	}
	return nil
}
