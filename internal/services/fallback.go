package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/usecase"
)

// ConnectionHealth reports whether the primary store is believed reachable.
type ConnectionHealth interface {
	IsOnline() bool
	ReportFailure(name string, err error)
}

// FallbackStore routes every operation to the primary store and, when the
// primary cannot be reached, performs that same operation once against the
// local store. Nothing is queued or replayed.
type FallbackStore struct {
	primary usecase.Store
	local   usecase.Store
	health  ConnectionHealth
	name    string
	logger  *zap.Logger
}

func NewFallbackStore(primary, local usecase.Store, health ConnectionHealth, logger *zap.Logger) *FallbackStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackStore{
		primary: primary,
		local:   local,
		health:  health,
		name:    "remote",
		logger:  logger,
	}
}

func (s *FallbackStore) ListNotes(ctx context.Context, userID string) ([]domain.Note, error) {
	return run(s, "list_notes", func(st usecase.Store) ([]domain.Note, error) {
		return st.ListNotes(ctx, userID)
	})
}

func (s *FallbackStore) CreateNote(ctx context.Context, userID string, in domain.NoteInput) (*domain.Note, error) {
	return run(s, "create_note", func(st usecase.Store) (*domain.Note, error) {
		return st.CreateNote(ctx, userID, in)
	})
}

func (s *FallbackStore) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	return run(s, "update_note", func(st usecase.Store) (*domain.Note, error) {
		return st.UpdateNote(ctx, id, patch)
	})
}

func (s *FallbackStore) DeleteNote(ctx context.Context, id string) (bool, error) {
	return run(s, "delete_note", func(st usecase.Store) (bool, error) {
		return st.DeleteNote(ctx, id)
	})
}

func (s *FallbackStore) ListTasks(ctx context.Context, userID, date string) ([]domain.Task, error) {
	return run(s, "list_tasks", func(st usecase.Store) ([]domain.Task, error) {
		return st.ListTasks(ctx, userID, date)
	})
}

func (s *FallbackStore) CreateTask(ctx context.Context, userID string, in domain.TaskInput) (*domain.Task, error) {
	return run(s, "create_task", func(st usecase.Store) (*domain.Task, error) {
		return st.CreateTask(ctx, userID, in)
	})
}

func (s *FallbackStore) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	return run(s, "update_task", func(st usecase.Store) (*domain.Task, error) {
		return st.UpdateTask(ctx, id, patch)
	})
}

func (s *FallbackStore) DeleteTask(ctx context.Context, id string) (bool, error) {
	return run(s, "delete_task", func(st usecase.Store) (bool, error) {
		return st.DeleteTask(ctx, id)
	})
}

func run[T any](s *FallbackStore, op string, call func(usecase.Store) (T, error)) (T, error) {
	if s.primary == nil || (s.health != nil && !s.health.IsOnline()) {
		s.logger.Debug("primary offline, using local store", zap.String("operation", op))
		return call(s.local)
	}

	out, err := call(s.primary)
	if err == nil || !domain.IsUnavailable(err) {
		return out, err
	}

	if s.health != nil {
		s.health.ReportFailure(s.name, err)
	}
	s.logger.Warn("primary store unreachable, falling back to local store",
		zap.String("operation", op),
		zap.Error(err),
	)
	return call(s.local)
}

var _ usecase.Store = (*FallbackStore)(nil)
