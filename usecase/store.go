package usecase

import (
	"context"

	"github.com/fastygo/timeblock/domain"
)

// Store is the storage port the planner core depends on. The entity store,
// the remote HTTP client and the fallback wrapper all implement it with the
// same input and output shapes.
type Store interface {
	ListNotes(ctx context.Context, userID string) ([]domain.Note, error)
	CreateNote(ctx context.Context, userID string, in domain.NoteInput) (*domain.Note, error)
	UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error)
	DeleteNote(ctx context.Context, id string) (bool, error)

	ListTasks(ctx context.Context, userID, date string) ([]domain.Task, error)
	CreateTask(ctx context.Context, userID string, in domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) (bool, error)
}
