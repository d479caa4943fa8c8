package planner

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/internal/planner/dragdrop"
	"github.com/fastygo/timeblock/internal/planner/view"
)

// BeginNoteDrag starts dragging a note out of the drawer. Completed notes
// are locked.
func (p *Planner) BeginNoteDrag(note domain.Note) (dragdrop.Transfer, error) {
	t, err := p.Drag.Start(dragdrop.NotePayload(note))
	if err != nil {
		return dragdrop.Transfer{}, p.fail("drag note", err)
	}
	return t, nil
}

// BeginTaskDrag starts rescheduling a task. Only the day and hour views
// show tasks as draggable.
func (p *Planner) BeginTaskDrag(task domain.Task) (dragdrop.Transfer, error) {
	if m := p.View.Mode(); m != view.ModeDay && m != view.ModeHour {
		return dragdrop.Transfer{}, p.fail("drag task", ErrTaskDragOutsideDay)
	}
	t, err := p.Drag.Start(dragdrop.TaskPayload(task))
	if err != nil {
		return dragdrop.Transfer{}, p.fail("drag task", err)
	}
	return t, nil
}

// BeginNoteDragByID looks the note up and starts dragging it.
func (p *Planner) BeginNoteDragByID(ctx context.Context, id string) (dragdrop.Transfer, error) {
	note, err := p.findNote(ctx, id)
	if err != nil {
		return dragdrop.Transfer{}, p.fail("drag note", err)
	}
	return p.BeginNoteDrag(note)
}

// BeginTaskDragByID looks the task up and starts dragging it.
func (p *Planner) BeginTaskDragByID(ctx context.Context, id string) (dragdrop.Transfer, error) {
	task, err := p.findTask(ctx, id)
	if err != nil {
		return dragdrop.Transfer{}, p.fail("drag task", err)
	}
	return p.BeginTaskDrag(task)
}

func (p *Planner) DragEnter(zone dragdrop.Zone) { p.Drag.Enter(zone) }

func (p *Planner) DragLeave(zone dragdrop.Zone) { p.Drag.Leave(zone) }

func (p *Planner) CancelDrag() { p.Drag.Cancel() }

// Drop finishes the drag on zone. A note becomes a task placed in the zone
// and is removed from the drawer; a task is moved into the zone. The
// resulting task is returned.
func (p *Planner) Drop(ctx context.Context, zone dragdrop.Zone, t dragdrop.Transfer) (*domain.Task, error) {
	var result *domain.Task
	err := p.Drag.Drop(ctx, zone, t, func(ctx context.Context, payload dragdrop.Payload, zone dragdrop.Zone) error {
		var err error
		switch payload.Kind {
		case dragdrop.KindNote:
			result, err = p.scheduleNote(ctx, *payload.Note, zone)
		case dragdrop.KindTask:
			result, err = p.moveTask(ctx, *payload.Task, zone)
		}
		return err
	})
	if err != nil {
		return nil, p.fail("drop", err)
	}
	return result, nil
}

func (p *Planner) scheduleNote(ctx context.Context, note domain.Note, zone dragdrop.Zone) (*domain.Task, error) {
	if note.IsCompleted() {
		return nil, dragdrop.ErrLocked
	}
	noteID := note.ID
	in := domain.TaskInput{
		NoteID:      &noteID,
		Title:       note.Title,
		Description: note.Description,
		Priority:    note.Priority,
		Date:        zone.Date,
		StartTime:   zone.StartTime(),
	}
	if minutes := zone.SlotMinutes(); minutes > 0 {
		in.Duration = &minutes
	}

	task, err := p.store.CreateTask(ctx, p.userID, in)
	if err != nil {
		return nil, err
	}
	p.cache.InvalidateTasks(zone.Date)

	if _, err := p.store.DeleteNote(ctx, note.ID); err != nil {
		// Roll back the task so the note stays the only copy.
		if _, undoErr := p.store.DeleteTask(ctx, task.ID); undoErr != nil {
			p.logger.Warn("scheduled task left behind",
				zap.String("note_id", note.ID),
				zap.String("task_id", task.ID),
				zap.Error(undoErr),
			)
		}
		p.cache.InvalidateTasks(zone.Date)
		p.cache.InvalidateNotes()
		return nil, err
	}
	p.cache.InvalidateNotes()
	p.Notices.Info("Scheduled " + task.Title)
	return task, nil
}

func (p *Planner) moveTask(ctx context.Context, task domain.Task, zone dragdrop.Zone) (*domain.Task, error) {
	patch := domain.TaskPatch{Date: domain.Some(zone.Date)}
	if start := zone.StartTime(); start != nil {
		patch.StartTime = domain.Some(*start)
		if task.Duration == nil {
			patch.Duration = domain.Some(zone.SlotMinutes())
		}
	} else {
		patch.StartTime = domain.Null[string]()
		patch.Duration = domain.Null[int]()
	}

	updated, err := p.store.UpdateTask(ctx, task.ID, patch)
	if err != nil {
		return nil, err
	}
	p.cache.InvalidateTasks(task.Date, zone.Date)
	return updated, nil
}
