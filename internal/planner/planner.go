// Package planner drives the calendar core: it owns the view, drawer, drag
// and walkthrough state machines and turns user actions into store calls.
package planner

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/internal/planner/dragdrop"
	"github.com/fastygo/timeblock/internal/planner/drawer"
	"github.com/fastygo/timeblock/internal/planner/view"
	"github.com/fastygo/timeblock/internal/planner/walkthrough"
	"github.com/fastygo/timeblock/pkg/httpcontext"
	"github.com/fastygo/timeblock/usecase"
)

// ErrTaskDragOutsideDay is returned when a task drag starts in Month view.
var ErrTaskDragOutsideDay = errors.New("planner: tasks can only be dragged from the day or hour view")

type Options struct {
	UserID  string
	// Today seeds the navigator. Defaults to time.Now.
	Today   time.Time
	Flags   walkthrough.FlagStore
	Drawer  drawer.Options
	Logger  *zap.Logger
	Notices int
}

type Planner struct {
	store  usecase.Store
	userID string
	logger *zap.Logger

	View    *view.Navigator
	Drawer  *drawer.Drawer
	Drag    *dragdrop.Session
	Tour    *walkthrough.Walkthrough
	Notices *Notices

	cache *Cache
}

func New(store usecase.Store, opts Options) *Planner {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Today.IsZero() {
		opts.Today = time.Now()
	}
	return &Planner{
		store:   store,
		userID:  opts.UserID,
		logger:  opts.Logger,
		View:    view.New(opts.Today),
		Drawer:  drawer.New(opts.Drawer),
		Drag:    dragdrop.NewSession(),
		Tour:    walkthrough.New(opts.Flags, nil),
		Notices: NewNotices(opts.Notices, nil),
		cache:   NewCache(store, opts.UserID),
	}
}

// Cache exposes the read cache, mostly for refresh commands.
func (p *Planner) Cache() *Cache { return p.cache }

// fail records err as a user-visible notice and returns it unchanged.
func (p *Planner) fail(op string, err error) error {
	p.Notices.Error(err)
	if domain.IsUnavailable(err) {
		p.logger.Warn("planner operation failed", zap.String("op", op), zap.Error(err))
	} else {
		p.logger.Debug("planner operation rejected", zap.String("op", op), zap.Error(err))
	}
	return err
}

// Notes returns the drawer contents, most recent first.
func (p *Planner) Notes(ctx context.Context) ([]domain.Note, error) {
	notes, err := p.cache.Notes(ctx)
	if err != nil {
		return nil, p.fail("list notes", err)
	}
	return notes, nil
}

// Tasks returns the tasks of date, or all tasks when date is empty.
func (p *Planner) Tasks(ctx context.Context, date string) ([]domain.Task, error) {
	tasks, err := p.cache.Tasks(ctx, date)
	if err != nil {
		return nil, p.fail("list tasks", err)
	}
	return tasks, nil
}

// SubmitNote creates a note from the composer draft. An invalid draft never
// reaches the store.
func (p *Planner) SubmitNote(ctx context.Context) (*domain.Note, error) {
	in, err := p.Drawer.Draft()
	if err != nil {
		return nil, p.fail("submit note", err)
	}
	ctx = httpcontext.WithIdempotencyKey(ctx, p.Drawer.SubmissionKey())
	note, err := p.store.CreateNote(ctx, p.userID, in)
	if err != nil {
		return nil, p.fail("submit note", err)
	}
	p.cache.InvalidateNotes()
	p.Drawer.CloseComposer()
	p.Drawer.NoteCreated()
	p.Notices.Info("Note added")
	return note, nil
}

// AddNote fills the composer with in and submits it.
func (p *Planner) AddNote(ctx context.Context, in domain.NoteInput) (*domain.Note, error) {
	p.Drawer.OpenComposer()
	p.Drawer.SetDraft(in)
	return p.SubmitNote(ctx)
}

func (p *Planner) EditNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	note, err := p.store.UpdateNote(ctx, id, patch)
	if err != nil {
		return nil, p.fail("edit note", err)
	}
	p.cache.InvalidateNotes()
	return note, nil
}

// ToggleNote flips the completed flag of a note.
func (p *Planner) ToggleNote(ctx context.Context, id string) (*domain.Note, error) {
	notes, err := p.Notes(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		if n.ID != id {
			continue
		}
		note, err := p.store.UpdateNote(ctx, id, domain.NotePatch{Completed: domain.Some(1 - n.Completed)})
		if err != nil {
			return nil, p.fail("toggle note", err)
		}
		p.cache.InvalidateNotes()
		return note, nil
	}
	return nil, p.fail("toggle note", domain.ErrNoteNotFound)
}

func (p *Planner) DeleteNote(ctx context.Context, id string) error {
	ok, err := p.store.DeleteNote(ctx, id)
	if err != nil {
		return p.fail("delete note", err)
	}
	p.cache.InvalidateNotes()
	if !ok {
		return p.fail("delete note", domain.ErrNoteNotFound)
	}
	return nil
}

// ToggleTask flips the completed flag of a task.
func (p *Planner) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	current, err := p.findTask(ctx, id)
	if err != nil {
		return nil, p.fail("toggle task", err)
	}
	task, err := p.store.UpdateTask(ctx, id, domain.TaskPatch{Completed: domain.Some(1 - current.Completed)})
	if err != nil {
		return nil, p.fail("toggle task", err)
	}
	p.cache.InvalidateTasks(current.Date)
	return task, nil
}

func (p *Planner) DeleteTask(ctx context.Context, id string) error {
	ok, err := p.store.DeleteTask(ctx, id)
	if err != nil {
		return p.fail("delete task", err)
	}
	p.cache.InvalidateTasks()
	if !ok {
		return p.fail("delete task", domain.ErrTaskNotFound)
	}
	return nil
}

func (p *Planner) findTask(ctx context.Context, id string) (domain.Task, error) {
	tasks, err := p.cache.Tasks(ctx, allDates)
	if err != nil {
		return domain.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (p *Planner) findNote(ctx context.Context, id string) (domain.Note, error) {
	notes, err := p.cache.Notes(ctx)
	if err != nil {
		return domain.Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return domain.Note{}, domain.ErrNoteNotFound
}
