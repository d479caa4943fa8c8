package repository

import (
	"context"

	"github.com/fastygo/timeblock/domain"
)

// TaskFilter scopes task listings. An empty Date matches every date.
type TaskFilter struct {
	UserID string
	Date   string
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
