package planner

import (
	"context"
	"sync"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/usecase"
)

// allDates keys the unfiltered task list.
const allDates = ""

// Cache holds the last query result per collection. Mutations never edit the
// cached slices; they invalidate them and the next read re-queries the store.
type Cache struct {
	store  usecase.Store
	userID string

	mu      sync.Mutex
	notes   []domain.Note
	notesOK bool
	tasks   map[string][]domain.Task
	queries int
}

func NewCache(store usecase.Store, userID string) *Cache {
	return &Cache{store: store, userID: userID, tasks: make(map[string][]domain.Task)}
}

// Notes returns the note list, querying the store when it is stale.
func (c *Cache) Notes(ctx context.Context) ([]domain.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.notesOK {
		notes, err := c.store.ListNotes(ctx, c.userID)
		c.queries++
		if err != nil {
			return nil, err
		}
		c.notes = notes
		c.notesOK = true
	}
	return cloneNotes(c.notes), nil
}

// Tasks returns the tasks of one date, or every task when date is empty.
func (c *Cache) Tasks(ctx context.Context, date string) ([]domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tasks, ok := c.tasks[date]
	if !ok {
		var err error
		tasks, err = c.store.ListTasks(ctx, c.userID, date)
		c.queries++
		if err != nil {
			return nil, err
		}
		c.tasks[date] = tasks
	}
	return cloneTasks(tasks), nil
}

func (c *Cache) InvalidateNotes() {
	c.mu.Lock()
	c.notesOK = false
	c.notes = nil
	c.mu.Unlock()
}

// InvalidateTasks drops the given dates and the unfiltered list. With no
// dates every cached task list is dropped.
func (c *Cache) InvalidateTasks(dates ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(dates) == 0 {
		c.tasks = make(map[string][]domain.Task)
		return
	}
	delete(c.tasks, allDates)
	for _, d := range dates {
		delete(c.tasks, d)
	}
}

func (c *Cache) Invalidate() {
	c.InvalidateNotes()
	c.InvalidateTasks()
}

// Queries counts store reads issued so far.
func (c *Cache) Queries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queries
}

func cloneNotes(in []domain.Note) []domain.Note {
	out := make([]domain.Note, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func cloneTasks(in []domain.Task) []domain.Task {
	out := make([]domain.Task, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
