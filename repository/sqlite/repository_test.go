package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/repository"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "data", "timeblock.db"), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestNoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(openDB(t))

	created, err := repo.Create(ctx, &domain.Note{
		UserID:    "u1",
		Title:     "Write report",
		Priority:  domain.PriorityHigh,
		CreatedAt: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected id to be assigned")
	}

	created.Description = strPtr("quarterly")
	created.Completed = 1
	if err := repo.Update(ctx, created); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description == nil || *got.Description != "quarterly" || got.Completed != 1 {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestTaskNullableColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(openDB(t))

	task, err := repo.Create(ctx, &domain.Task{
		UserID:    "u1",
		Title:     "Standup",
		Priority:  domain.PriorityMedium,
		Date:      "2026-10-14",
		StartTime: strPtr("09:00"),
		Duration:  intPtr(15),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	task.StartTime = nil
	task.Duration = nil
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.StartTime != nil || got.Duration != nil {
		t.Fatalf("expected unscheduled task, got start=%v duration=%v", got.StartTime, got.Duration)
	}
}

func TestTaskListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(openDB(t))

	for _, task := range []domain.Task{
		{UserID: "u1", Title: "tray", Priority: domain.PriorityLow, Date: "2026-10-14"},
		{UserID: "u1", Title: "early", Priority: domain.PriorityLow, Date: "2026-10-14", StartTime: strPtr("08:00"), Duration: intPtr(60)},
		{UserID: "u1", Title: "tomorrow", Priority: domain.PriorityLow, Date: "2026-10-15"},
		{UserID: "u2", Title: "other", Priority: domain.PriorityLow, Date: "2026-10-14"},
	} {
		task := task
		if _, err := repo.Create(ctx, &task); err != nil {
			t.Fatalf("create %s: %v", task.Title, err)
		}
	}

	got, err := repo.List(ctx, repository.TaskFilter{UserID: "u1", Date: "2026-10-14"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Title != "early" || got[1].Title != "tray" {
		t.Fatalf("unexpected tasks: %+v", got)
	}

	if err := repo.Update(ctx, &domain.Task{ID: "missing", Title: "x", Date: "2026-10-14"}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
