// Package entity joins the note and task use cases into the single Entity
// Store the planner talks to.
package entity

import (
	"context"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/repository"
	"github.com/fastygo/timeblock/usecase"
	noteUC "github.com/fastygo/timeblock/usecase/note"
	taskUC "github.com/fastygo/timeblock/usecase/task"
)

type Store struct {
	notes *noteUC.UseCase
	tasks *taskUC.UseCase
}

func New(notes *noteUC.UseCase, tasks *taskUC.UseCase) *Store {
	return &Store{notes: notes, tasks: tasks}
}

// FromRepositories builds an entity store directly over a pair of repositories.
func FromRepositories(notes repository.NoteRepository, tasks repository.TaskRepository) *Store {
	return New(noteUC.New(notes, nil), taskUC.New(tasks, nil))
}

func (s *Store) ListNotes(ctx context.Context, userID string) ([]domain.Note, error) {
	return s.notes.ListNotes(ctx, userID)
}

func (s *Store) CreateNote(ctx context.Context, userID string, in domain.NoteInput) (*domain.Note, error) {
	return s.notes.CreateNote(ctx, userID, in)
}

func (s *Store) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	return s.notes.UpdateNote(ctx, id, patch)
}

func (s *Store) DeleteNote(ctx context.Context, id string) (bool, error) {
	return s.notes.DeleteNote(ctx, id)
}

func (s *Store) ListTasks(ctx context.Context, userID, date string) ([]domain.Task, error) {
	return s.tasks.ListTasks(ctx, userID, date)
}

func (s *Store) CreateTask(ctx context.Context, userID string, in domain.TaskInput) (*domain.Task, error) {
	return s.tasks.CreateTask(ctx, userID, in)
}

func (s *Store) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	return s.tasks.UpdateTask(ctx, id, patch)
}

func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	return s.tasks.DeleteTask(ctx, id)
}

var _ usecase.Store = (*Store)(nil)
