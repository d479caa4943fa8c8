package note

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/repository"
)

type UseCase struct {
	notes  repository.NoteRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(notes repository.NoteRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		notes:  notes,
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

// ListNotes returns the user's notes, most recent first.
func (uc *UseCase) ListNotes(ctx context.Context, userID string) ([]domain.Note, error) {
	if userID == "" {
		return nil, domain.Invalid("user id is required")
	}
	notes, err := uc.notes.List(ctx, repository.NoteFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	domain.SortNotes(notes)
	return notes, nil
}

func (uc *UseCase) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	return uc.notes.GetByID(ctx, id)
}

func (uc *UseCase) CreateNote(ctx context.Context, userID string, in domain.NoteInput) (*domain.Note, error) {
	if userID == "" {
		return nil, domain.Invalid("user id is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	note := domain.NewNote(uuid.NewString(), userID, in, uc.now())
	created, err := uc.notes.Create(ctx, note)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("note created", zap.String("note_id", created.ID), zap.String("user_id", userID))
	return created, nil
}

// UpdateNote merges the provided fields into the stored note.
func (uc *UseCase) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	note, err := uc.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(note)
	if err := uc.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes the note and reports whether it existed.
func (uc *UseCase) DeleteNote(ctx context.Context, id string) (bool, error) {
	if err := uc.notes.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	uc.logger.Debug("note deleted", zap.String("note_id", id))
	return true, nil
}
