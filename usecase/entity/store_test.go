package entity

import (
	"context"
	"testing"
	"time"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/repository/memory"
	noteUC "github.com/fastygo/timeblock/usecase/note"
	taskUC "github.com/fastygo/timeblock/usecase/task"
)

const user = "demo-user"

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

// tickingClock returns strictly increasing timestamps.
func tickingClock() func() time.Time {
	t := time.Date(2026, time.October, 14, 8, 0, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newStore() *Store {
	clock := tickingClock()
	return New(
		noteUC.New(memory.NewNoteRepository(), nil).WithClock(clock),
		taskUC.New(memory.NewTaskRepository(), nil).WithClock(clock),
	)
}

func TestCreateNoteDefaultsAndOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	first, err := s.CreateNote(ctx, user, domain.NoteInput{Title: "first"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == "" || first.Priority != domain.PriorityMedium || first.Completed != 0 {
		t.Fatalf("unexpected defaults: %+v", first)
	}
	if _, err := s.CreateNote(ctx, user, domain.NoteInput{Title: "second", Priority: domain.PriorityHigh}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateNote(ctx, "someone-else", domain.NoteInput{Title: "foreign"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	notes, err := s.ListNotes(ctx, user)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes for user, got %d", len(notes))
	}
	if notes[0].Title != "second" || notes[1].Title != "first" {
		t.Fatalf("expected newest first, got %q then %q", notes[0].Title, notes[1].Title)
	}
}

func TestCreateNoteRejectsBlankTitleWithoutMutation(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := s.CreateNote(ctx, user, domain.NoteInput{Title: title}); !domain.IsInvalid(err) {
			t.Fatalf("title %q: expected validation error, got %v", title, err)
		}
	}
	notes, err := s.ListNotes(ctx, user)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes to be stored, got %d", len(notes))
	}
}

func TestUpdateNoteMergesFields(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	note, err := s.CreateNote(ctx, user, domain.NoteInput{Title: "draft", Description: strPtr("details")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.UpdateNote(ctx, note.ID, domain.NotePatch{Completed: domain.Some(1)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Completed != 1 || updated.Title != "draft" || updated.Description == nil || *updated.Description != "details" {
		t.Fatalf("unexpected merge result: %+v", updated)
	}

	updated, err = s.UpdateNote(ctx, note.ID, domain.NotePatch{Description: domain.Null[string]()})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != nil {
		t.Fatalf("expected description cleared")
	}

	if _, err := s.UpdateNote(ctx, "missing", domain.NotePatch{Completed: domain.Some(1)}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteReportsExistence(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	note, _ := s.CreateNote(ctx, user, domain.NoteInput{Title: "x"})
	ok, err := s.DeleteNote(ctx, note.ID)
	if err != nil || !ok {
		t.Fatalf("expected first delete to succeed, got %v %v", ok, err)
	}
	ok, err = s.DeleteNote(ctx, note.ID)
	if err != nil || ok {
		t.Fatalf("expected second delete to report false, got %v %v", ok, err)
	}

	task, _ := s.CreateTask(ctx, user, domain.TaskInput{Title: "x", Date: "2026-10-14"})
	if ok, _ := s.DeleteTask(ctx, task.ID); !ok {
		t.Fatalf("expected task delete to succeed")
	}
	if ok, _ := s.DeleteTask(ctx, task.ID); ok {
		t.Fatalf("expected repeated task delete to report false")
	}
}

func TestListTasksFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	inputs := []domain.TaskInput{
		{Title: "tray", Date: "2026-10-14"},
		{Title: "afternoon", Date: "2026-10-14", StartTime: strPtr("14:00"), Duration: intPtr(60)},
		{Title: "other day", Date: "2026-10-15", StartTime: strPtr("08:00")},
		{Title: "morning", Date: "2026-10-14", StartTime: strPtr("9:30"), Duration: intPtr(15)},
	}
	for _, in := range inputs {
		if _, err := s.CreateTask(ctx, user, in); err != nil {
			t.Fatalf("create %q: %v", in.Title, err)
		}
	}

	tasks, err := s.ListTasks(ctx, user, "2026-10-14")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"morning", "afternoon", "tray"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, tasks[i].Title)
		}
		if tasks[i].Date != "2026-10-14" {
			t.Fatalf("task on wrong date returned: %s", tasks[i].Date)
		}
	}

	all, err := s.ListTasks(ctx, user, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 || all[3].Title != "other day" {
		t.Fatalf("expected other day last across dates, got %d tasks", len(all))
	}

	if _, err := s.ListTasks(ctx, user, "not-a-date"); !domain.IsInvalid(err) {
		t.Fatalf("expected invalid date error, got %v", err)
	}
}

func TestCreateTaskRequiresTitleAndDate(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	if _, err := s.CreateTask(ctx, user, domain.TaskInput{Date: "2026-10-14"}); !domain.IsInvalid(err) {
		t.Fatalf("expected missing title to be rejected, got %v", err)
	}
	if _, err := s.CreateTask(ctx, user, domain.TaskInput{Title: "x"}); !domain.IsInvalid(err) {
		t.Fatalf("expected missing date to be rejected, got %v", err)
	}
}

func TestUpdateTaskEmptyPatchIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	task, err := s.CreateTask(ctx, user, domain.TaskInput{
		Title: "focus", Date: "2026-10-14", StartTime: strPtr("10:00"), Duration: intPtr(60), NoteID: strPtr("n1"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	same, err := s.UpdateTask(ctx, task.ID, domain.TaskPatch{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if same.Title != task.Title || *same.StartTime != *task.StartTime || *same.Duration != *task.Duration ||
		*same.NoteID != *task.NoteID || !same.CreatedAt.Equal(task.CreatedAt) {
		t.Fatalf("empty patch changed the task: %+v vs %+v", same, task)
	}

	moved, err := s.UpdateTask(ctx, task.ID, domain.TaskPatch{StartTime: domain.Null[string](), Duration: domain.Null[int]()})
	if err != nil {
		t.Fatalf("unschedule: %v", err)
	}
	if moved.Scheduled() || moved.Duration != nil {
		t.Fatalf("expected task to be unscheduled, got %+v", moved)
	}

	if _, err := s.UpdateTask(ctx, "missing", domain.TaskPatch{}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
