package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/internal/planner"
	"github.com/fastygo/timeblock/internal/planner/dragdrop"
)

func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PLANNER_CONFIG_PATH", dir)
	t.Setenv("PLANNER_API_URL", "")
	t.Setenv("PLANNER_DATA_PATH", filepath.Join(dir, "planner.db"))
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := execute(context.Background(), args, &out); err != nil {
		t.Fatalf("planner %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func decodeJSON[T any](t *testing.T, data string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return v
}

func TestScheduleNoteFromTheCommandLine(t *testing.T) {
	setupEnv(t)

	note := decodeJSON[domain.Note](t, run(t, "note", "add", "Write", "report", "--priority", "high", "--json"))
	if note.Title != "Write report" || note.Priority != domain.PriorityHigh {
		t.Fatalf("unexpected note: %+v", note)
	}

	tasks := decodeJSON[[]domain.Task](t, run(t, "schedule", note.ID, "--date", "2026-10-14", "--at", "14:00", "--json"))
	if len(tasks) != 1 || *tasks[0].StartTime != "14:00" || *tasks[0].Duration != 60 {
		t.Fatalf("unexpected task: %+v", tasks)
	}

	notes := decodeJSON[[]domain.Note](t, run(t, "notes", "--json"))
	if len(notes) != 0 {
		t.Fatalf("note must be gone after scheduling, got %+v", notes)
	}

	day := decodeJSON[planner.DayAgenda](t, run(t, "day", "2026-10-14", "--json"))
	if len(day.Hours[14]) != 1 {
		t.Fatalf("expected the task at 14:00, got %+v", day)
	}

	moved := decodeJSON[[]domain.Task](t, run(t, "move", tasks[0].ID, "--date", "2026-10-15", "--json"))
	if moved[0].Date != "2026-10-15" || moved[0].StartTime != nil {
		t.Fatalf("expected an unscheduled task on the 15th, got %+v", moved)
	}

	run(t, "task", "rm", tasks[0].ID)
	remaining := decodeJSON[[]domain.Task](t, run(t, "tasks", "--json"))
	if len(remaining) != 0 {
		t.Fatalf("expected no tasks, got %+v", remaining)
	}
}

func TestTourRunsOnlyOnFirstUse(t *testing.T) {
	setupEnv(t)

	if out := run(t); !strings.Contains(out, "1/5 Welcome") {
		t.Fatalf("expected the tour on first run, got:\n%s", out)
	}
	if out := run(t); strings.Contains(out, "Welcome") {
		t.Fatalf("tour must not launch again, got:\n%s", out)
	}
	if out := run(t, "tour"); !strings.Contains(out, "5/5") {
		t.Fatalf("manual tour must show every step, got:\n%s", out)
	}
}

func TestNoteEditFlags(t *testing.T) {
	setupEnv(t)
	note := decodeJSON[domain.Note](t, run(t, "note", "add", "read", "--description", "chapter 3", "--json"))

	edited := decodeJSON[[]domain.Note](t, run(t, "note", "edit", note.ID, "--clear-description", "--priority", "low", "--json"))
	if edited[0].Description != nil || edited[0].Priority != domain.PriorityLow || edited[0].Title != "read" {
		t.Fatalf("unexpected edit result: %+v", edited[0])
	}

	var out bytes.Buffer
	err := execute(context.Background(), []string{"note", "add", "  "}, &out)
	if !domain.IsInvalid(err) {
		t.Fatalf("expected validation error for a blank title, got %v", err)
	}
}

func TestPlacementZone(t *testing.T) {
	cases := []struct {
		name string
		in   placement
		want dragdrop.Zone
		err  bool
	}{
		{name: "day", in: placement{Date: "2026-10-14"}, want: dragdrop.DayZone("2026-10-14")},
		{name: "today", in: placement{}, want: dragdrop.DayZone("2026-01-01")},
		{name: "hour", in: placement{Date: "2026-10-14", At: "14"}, want: dragdrop.HourZone("2026-10-14", 14)},
		{name: "full hour as quarter", in: placement{Date: "2026-10-14", At: "14:00", Quarter: true}, want: dragdrop.QuarterZone("2026-10-14", 14, 0)},
		{name: "quarter", in: placement{Date: "2026-10-14", At: "9:45"}, want: dragdrop.QuarterZone("2026-10-14", 9, 3)},
		{name: "off grid", in: placement{Date: "2026-10-14", At: "9:10"}, err: true},
		{name: "bad date", in: placement{Date: "2026-13-01"}, err: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.zone("2026-01-01")
			if tc.err {
				if !domain.IsInvalid(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("zone: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	setupEnv(t)
	t.Setenv("PLANNER_USER_ID", "alice")
	t.Setenv("PLANNER_TIMEOUT", "2s")

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UserID != "alice" || cfg.Timeout.Seconds() != 2 || cfg.APIURL != "" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !strings.HasSuffix(cfg.DataPath, "planner.db") {
		t.Fatalf("unexpected data path %q", cfg.DataPath)
	}
}
