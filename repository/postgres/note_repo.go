package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/repository"
)

type noteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository returns a Postgres-backed implementation of NoteRepository.
func NewNoteRepository(pool *pgxpool.Pool) repository.NoteRepository {
	return &noteRepository{pool: pool}
}

func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	const query = `
	SELECT id, user_id, title, description, priority, completed, created_at
	FROM notes
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanNote(row)
}

func (r *noteRepository) List(ctx context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	const query = `
	SELECT id, user_id, title, description, priority, completed, created_at
	FROM notes
	WHERE ($1 = '' OR user_id = $1)
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if note == nil {
		return nil, domain.ErrInvalidPayload
	}
	if note.ID == "" {
		note.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO notes (id, user_id, title, description, priority, completed, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
	RETURNING created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Description,
		string(note.Priority),
		note.Completed,
		nullTime(note.CreatedAt),
	).Scan(&note.CreatedAt); err != nil {
		return nil, err
	}

	return note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	if note == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE notes
	SET title = $2,
		description = $3,
		priority = $4,
		completed = $5
	WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		note.ID,
		note.Title,
		note.Description,
		string(note.Priority),
		note.Completed,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM notes WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func scanNote(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Note, error) {
	var note domain.Note
	var priority string

	if err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Description,
		&priority,
		&note.Completed,
		&note.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}

	note.Priority = domain.Priority(priority)
	return &note, nil
}
