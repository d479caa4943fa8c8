package repository

import (
	"context"

	"github.com/fastygo/timeblock/domain"
)

type NoteFilter struct {
	UserID string
}

type NoteRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	List(ctx context.Context, filter NoteFilter) ([]domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
}
