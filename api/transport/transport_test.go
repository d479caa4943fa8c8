package transport

import (
	"encoding/json"
	"testing"

	"github.com/fastygo/timeblock/domain"
)

func TestDecodeTaskPatchKeepsNulls(t *testing.T) {
	patch, err := DecodeTaskPatch([]byte(`{"startTime":null,"date":"2026-10-15"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !patch.StartTime.IsNull() {
		t.Fatalf("expected explicit null start time")
	}
	if patch.Duration.Set {
		t.Fatalf("duration was absent and must stay unset")
	}
	if patch.Date.Value == nil || *patch.Date.Value != "2026-10-15" {
		t.Fatalf("unexpected date %+v", patch.Date)
	}
}

func TestDecodeEmptyPatch(t *testing.T) {
	for _, body := range []string{"", "  \n", "{}"} {
		note, err := DecodeNotePatch([]byte(body))
		if err != nil {
			t.Fatalf("note patch %q: %v", body, err)
		}
		if note.Title.Set || note.Completed.Set {
			t.Fatalf("note patch %q: expected no fields, got %+v", body, note)
		}
		task, err := DecodeTaskPatch([]byte(body))
		if err != nil {
			t.Fatalf("task patch %q: %v", body, err)
		}
		if task.Date.Set || task.StartTime.Set || task.Duration.Set {
			t.Fatalf("task patch %q: expected no fields, got %+v", body, task)
		}
	}
}

func TestDecodeRejectsMalformedBodies(t *testing.T) {
	for name, body := range map[string]string{
		"empty":      ``,
		"not json":   `title=x`,
		"wrong type": `{"title": 12}`,
	} {
		if _, err := DecodeNoteInput([]byte(body)); !domain.IsInvalid(err) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestTypedEnvelope(t *testing.T) {
	raw, _ := json.Marshal(NewError(string(domain.ErrCodeNotFound), "note not found", nil))
	var env Typed[*domain.Note]
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Status != "error" || env.Code != "NOT_FOUND" || env.Message() != "note not found" {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if env.Data != nil {
		t.Fatalf("expected nil data")
	}
}
