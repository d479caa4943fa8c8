// Package bolt persists notes, tasks and flags in the local BoltDB file. It
// is the durable client-side backing behind the remote API and can also serve
// as a single-file server driver.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/internal/infrastructure/local"
	"github.com/fastygo/timeblock/repository"
)

type noteRepository struct {
	store *local.Store
}

// NewNoteRepository returns a BoltDB-backed NoteRepository.
func NewNoteRepository(store *local.Store) repository.NoteRepository {
	return &noteRepository{store: store}
}

func (r *noteRepository) GetByID(_ context.Context, id string) (*domain.Note, error) {
	var note domain.Note
	if err := r.store.Get(local.BucketNotes, id, &note); err != nil {
		return nil, translate(err, domain.ErrNoteNotFound)
	}
	return &note, nil
}

func (r *noteRepository) List(_ context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	notes := make([]domain.Note, 0)
	err := r.store.ForEach(local.BucketNotes, func(_ string, value []byte) error {
		var note domain.Note
		if err := json.Unmarshal(value, &note); err != nil {
			return nil
		}
		if filter.UserID == "" || note.UserID == filter.UserID {
			notes = append(notes, note)
		}
		return nil
	})
	return notes, translate(err, nil)
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
	if err := r.store.Put(local.BucketNotes, note.ID, note); err != nil {
		return nil, translate(err, nil)
	}
	return note, nil
}

func (r *noteRepository) Update(_ context.Context, note *domain.Note) error {
	if note == nil {
		return domain.ErrInvalidPayload
	}
	return translate(r.store.Replace(local.BucketNotes, note.ID, note), domain.ErrNoteNotFound)
}

func (r *noteRepository) Delete(_ context.Context, id string) error {
	return translate(r.store.Delete(local.BucketNotes, id), domain.ErrNoteNotFound)
}

type taskRepository struct {
	store *local.Store
}

// NewTaskRepository returns a BoltDB-backed TaskRepository.
func NewTaskRepository(store *local.Store) repository.TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.store.Get(local.BucketTasks, id, &task); err != nil {
		return nil, translate(err, domain.ErrTaskNotFound)
	}
	return &task, nil
}

func (r *taskRepository) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0)
	err := r.store.ForEach(local.BucketTasks, func(_ string, value []byte) error {
		var task domain.Task
		if err := json.Unmarshal(value, &task); err != nil {
			return nil
		}
		if filter.UserID != "" && task.UserID != filter.UserID {
			return nil
		}
		if filter.Date != "" && task.Date != filter.Date {
			return nil
		}
		tasks = append(tasks, task)
		return nil
	})
	return tasks, translate(err, nil)
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
	if err := r.store.Put(local.BucketTasks, task.ID, task); err != nil {
		return nil, translate(err, nil)
	}
	return task, nil
}

func (r *taskRepository) Update(_ context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	return translate(r.store.Replace(local.BucketTasks, task.ID, task), domain.ErrTaskNotFound)
}

func (r *taskRepository) Delete(_ context.Context, id string) error {
	return translate(r.store.Delete(local.BucketTasks, id), domain.ErrTaskNotFound)
}

type flagRepository struct {
	store *local.Store
}

// NewFlagRepository stores boolean flags in the flags bucket.
func NewFlagRepository(store *local.Store) repository.FlagRepository {
	return &flagRepository{store: store}
}

func (r *flagRepository) Flag(_ context.Context, key string) (bool, error) {
	var value bool
	if err := r.store.Get(local.BucketFlags, key, &value); err != nil {
		if errors.Is(err, local.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return value, nil
}

func (r *flagRepository) SetFlag(_ context.Context, key string, value bool) error {
	return r.store.Put(local.BucketFlags, key, value)
}

func translate(err error, notFound *domain.Error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, local.ErrKeyNotFound) {
		return notFound
	}
	return domain.WrapError(domain.ErrCodeInternal, "local store", err)
}
