// Package walkthrough runs the first-use tour and remembers that it was seen.
package walkthrough

import (
	"context"
	"sync"
)

// CompletedFlag is the key the completion flag is stored under.
const CompletedFlag = "walkthrough.completed"

// FlagStore persists the completion flag.
type FlagStore interface {
	Flag(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string, value bool) error
}

type Step struct {
	ID    string
	Title string
	Body  string
}

// DefaultSteps is the five-step tour.
func DefaultSteps() []Step {
	return []Step{
		{ID: "welcome", Title: "Welcome", Body: "Plan your days by dropping notes onto the calendar."},
		{ID: "drawer", Title: "Capture notes", Body: "Open the drawer and add a note for anything on your mind."},
		{ID: "month", Title: "Pick a day", Body: "Click a date in the month grid to open that day."},
		{ID: "schedule", Title: "Block time", Body: "Drag a note onto a day, an hour or a quarter hour to turn it into a task."},
		{ID: "reschedule", Title: "Move things around", Body: "Drag scheduled tasks between slots. Complete them when done."},
	}
}

// Walkthrough is the tour state machine. Only one tour can be active at a time.
type Walkthrough struct {
	steps []Step
	flags FlagStore

	mu       sync.Mutex
	active   bool
	index    int
	launched bool
}

func New(flags FlagStore, steps []Step) *Walkthrough {
	if len(steps) == 0 {
		steps = DefaultSteps()
	}
	return &Walkthrough{steps: steps, flags: flags}
}

// AutoLaunch starts the tour if it has never been completed on this client.
// It runs at most once per Walkthrough, so navigating away and back does not
// restart it.
func (w *Walkthrough) AutoLaunch(ctx context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.launched {
		return false, nil
	}

	// A failed read leaves launched unset so the next call tries again.
	var done bool
	if w.flags != nil {
		var err error
		if done, err = w.flags.Flag(ctx, CompletedFlag); err != nil {
			return false, err
		}
	}
	w.launched = true
	if done {
		return false, nil
	}
	w.active = true
	w.index = 0
	return true, nil
}

// Start opens the tour at the first step regardless of the flag.
func (w *Walkthrough) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = true
	w.index = 0
}

func (w *Walkthrough) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Current returns the visible step and its index.
func (w *Walkthrough) Current() (Step, int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.active {
		return Step{}, 0, false
	}
	return w.steps[w.index], w.index, true
}

func (w *Walkthrough) Len() int { return len(w.steps) }

// IsLast reports whether the active step is the final one.
func (w *Walkthrough) IsLast() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active && w.index == len(w.steps)-1
}

// Next advances one step. On the last step it does nothing; use Finish.
func (w *Walkthrough) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.active || w.index >= len(w.steps)-1 {
		return false
	}
	w.index++
	return true
}

// Back goes one step back. On the first step it does nothing.
func (w *Walkthrough) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.active || w.index == 0 {
		return false
	}
	w.index--
	return true
}

// Skip ends the tour from any step and records it as completed.
func (w *Walkthrough) Skip(ctx context.Context) error {
	return w.complete(ctx)
}

// Finish ends the tour from the last step and records it as completed.
func (w *Walkthrough) Finish(ctx context.Context) error {
	if !w.IsLast() {
		return nil
	}
	return w.complete(ctx)
}

func (w *Walkthrough) complete(ctx context.Context) error {
	w.mu.Lock()
	w.active = false
	w.index = 0
	w.mu.Unlock()

	if w.flags == nil {
		return nil
	}
	return w.flags.SetFlag(ctx, CompletedFlag, true)
}
