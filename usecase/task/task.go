package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/pkg/calendar"
	"github.com/fastygo/timeblock/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for createdAt.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// ListTasks returns the user's tasks, optionally limited to one date.
func (uc *UseCase) ListTasks(ctx context.Context, userID, date string) ([]domain.Task, error) {
	if userID == "" {
		return nil, domain.Invalid("user id is required")
	}
	if date != "" && !calendar.ValidDateKey(date) {
		return nil, domain.Invalid("invalid date %q", date)
	}
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{UserID: userID, Date: date})
	if err != nil {
		return nil, err
	}
	domain.SortTasks(tasks)
	return tasks, nil
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, userID string, in domain.TaskInput) (*domain.Task, error) {
	if userID == "" {
		return nil, domain.Invalid("user id is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	task := domain.NewTask(uuid.NewString(), userID, in, uc.now())
	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("task created",
		zap.String("task_id", created.ID),
		zap.String("date", created.Date),
		zap.Bool("scheduled", created.Scheduled()))
	return created, nil
}

// UpdateTask merges the provided fields. An empty patch returns the task unchanged.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return task, nil
	}
	patch.Apply(task)
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes the task and reports whether it existed.
func (uc *UseCase) DeleteTask(ctx context.Context, id string) (bool, error) {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
