// Package memory keeps notes, tasks and flags in process memory. The maps are
// owned by the repository and every read returns copies.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/repository"
)

type noteRepository struct {
	mu    sync.RWMutex
	notes map[string]domain.Note
}

// NewNoteRepository returns an in-memory NoteRepository.
func NewNoteRepository() repository.NoteRepository {
	return &noteRepository{notes: make(map[string]domain.Note)}
}

func (r *noteRepository) GetByID(_ context.Context, id string) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	note, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	out := note.Clone()
	return &out, nil
}

func (r *noteRepository) List(_ context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notes := make([]domain.Note, 0, len(r.notes))
	for _, note := range r.notes {
		if filter.UserID != "" && note.UserID != filter.UserID {
			continue
		}
		notes = append(notes, note.Clone())
	}
	return notes, nil
}

func (r *noteRepository) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	if note == nil {
		return nil, domain.ErrInvalidPayload
	}
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[note.ID] = note.Clone()
	return note, nil
}

func (r *noteRepository) Update(_ context.Context, note *domain.Note) error {
	if note == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[note.ID]; !ok {
		return domain.ErrNoteNotFound
	}
	r.notes[note.ID] = note.Clone()
	return nil
}

func (r *noteRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

// NewTaskRepository returns an in-memory TaskRepository.
func NewTaskRepository() repository.TaskRepository {
	return &taskRepository{tasks: make(map[string]domain.Task)}
}

func (r *taskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	out := task.Clone()
	return &out, nil
}

func (r *taskRepository) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tasks := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if filter.UserID != "" && task.UserID != filter.UserID {
			continue
		}
		if filter.Date != "" && task.Date != filter.Date {
			continue
		}
		tasks = append(tasks, task.Clone())
	}
	return tasks, nil
}

func (r *taskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task.Clone()
	return task, nil
}

func (r *taskRepository) Update(_ context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = task.Clone()
	return nil
}

func (r *taskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}
