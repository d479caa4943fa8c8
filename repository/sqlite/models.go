package sqlite

import (
	"time"

	"github.com/fastygo/timeblock/domain"
)

type noteRecord struct {
	ID          string  `gorm:"primaryKey;size:64"`
	UserID      string  `gorm:"index;not null"`
	Title       string  `gorm:"not null"`
	Description *string
	Priority    string `gorm:"size:16;not null;default:medium"`
	Completed   int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

func (noteRecord) TableName() string { return "notes" }

func noteToRecord(n *domain.Note) noteRecord {
	return noteRecord{
		ID:          n.ID,
		UserID:      n.UserID,
		Title:       n.Title,
		Description: n.Description,
		Priority:    string(n.Priority),
		Completed:   n.Completed,
		CreatedAt:   n.CreatedAt,
	}
}

func (r noteRecord) toDomain() domain.Note {
	return domain.Note{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.Priority(r.Priority),
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt,
	}
}

type taskRecord struct {
	ID          string  `gorm:"primaryKey;size:64"`
	UserID      string  `gorm:"index:idx_tasks_user_date,priority:1;not null"`
	NoteID      *string `gorm:"size:64"`
	Title       string  `gorm:"not null"`
	Description *string
	Priority    string  `gorm:"size:16;not null;default:medium"`
	Date        string  `gorm:"column:task_date;size:10;index:idx_tasks_user_date,priority:2;not null"`
	StartTime   *string `gorm:"size:5"`
	Duration    *int
	Completed   int `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

func (taskRecord) TableName() string { return "tasks" }

func taskToRecord(t *domain.Task) taskRecord {
	return taskRecord{
		ID:          t.ID,
		UserID:      t.UserID,
		NoteID:      t.NoteID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Date:        t.Date,
		StartTime:   t.StartTime,
		Duration:    t.Duration,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}

func (r taskRecord) toDomain() domain.Task {
	return domain.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		NoteID:      r.NoteID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.Priority(r.Priority),
		Date:        r.Date,
		StartTime:   r.StartTime,
		Duration:    r.Duration,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt,
	}
}
