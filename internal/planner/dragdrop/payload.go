package dragdrop

import (
	"fmt"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/pkg/calendar"
)

// Kind tells a dropped note (convert to a task) from a dropped task (reschedule).
type Kind string

const (
	KindNote Kind = "note"
	KindTask Kind = "task"
)

// Payload is the dragged item. Exactly one of Note or Task is set, matching Kind.
type Payload struct {
	Kind Kind         `json:"kind"`
	Note *domain.Note `json:"note,omitempty"`
	Task *domain.Task `json:"task,omitempty"`
}

func NotePayload(n domain.Note) Payload {
	return Payload{Kind: KindNote, Note: &n}
}

func TaskPayload(t domain.Task) Payload {
	return Payload{Kind: KindTask, Task: &t}
}

// Validate checks that the discriminant matches the carried item.
func (p Payload) Validate() error {
	switch p.Kind {
	case KindNote:
		if p.Note == nil || p.Task != nil || p.Note.ID == "" {
			return domain.Invalid("drag payload: note kind without a note")
		}
	case KindTask:
		if p.Task == nil || p.Note != nil || p.Task.ID == "" {
			return domain.Invalid("drag payload: task kind without a task")
		}
	default:
		return domain.Invalid("drag payload: unknown kind %q", p.Kind)
	}
	return nil
}

// ID returns the id of the dragged item.
func (p Payload) ID() string {
	switch {
	case p.Note != nil:
		return p.Note.ID
	case p.Task != nil:
		return p.Task.ID
	}
	return ""
}

// ZoneKind is the granularity of a drop target.
type ZoneKind string

const (
	ZoneDay     ZoneKind = "day"
	ZoneHour    ZoneKind = "hour"
	ZoneQuarter ZoneKind = "quarter"
)

// Zone is a drop target: a whole day, an hour row, or a quarter of an hour.
type Zone struct {
	Kind    ZoneKind
	Date    string
	Hour    int
	Quarter int
}

func DayZone(date string) Zone { return Zone{Kind: ZoneDay, Date: date} }

func HourZone(date string, hour int) Zone { return Zone{Kind: ZoneHour, Date: date, Hour: hour} }

func QuarterZone(date string, hour, quarter int) Zone {
	return Zone{Kind: ZoneQuarter, Date: date, Hour: hour, Quarter: quarter}
}

func (z Zone) Validate() error {
	if !calendar.ValidDateKey(z.Date) {
		return domain.Invalid("drop zone: invalid date %q", z.Date)
	}
	switch z.Kind {
	case ZoneDay:
	case ZoneHour, ZoneQuarter:
		if z.Hour < 0 || z.Hour > 23 {
			return domain.Invalid("drop zone: hour %d out of range", z.Hour)
		}
		if z.Kind == ZoneQuarter && (z.Quarter < 0 || z.Quarter >= calendar.QuartersPerHour) {
			return domain.Invalid("drop zone: quarter %d out of range", z.Quarter)
		}
	default:
		return domain.Invalid("drop zone: unknown kind %q", z.Kind)
	}
	return nil
}

// Key identifies the zone for highlighting.
func (z Zone) Key() string {
	switch z.Kind {
	case ZoneHour:
		return fmt.Sprintf("%s@%02d", z.Date, z.Hour)
	case ZoneQuarter:
		return fmt.Sprintf("%s@%02d.%d", z.Date, z.Hour, z.Quarter)
	default:
		return z.Date
	}
}

// StartTime is the slot start for hour and quarter zones, nil for a day.
func (z Zone) StartTime() *string {
	var s string
	switch z.Kind {
	case ZoneHour:
		s = calendar.ClockKey(z.Hour, 0)
	case ZoneQuarter:
		s = calendar.ClockKey(z.Hour, z.Quarter*calendar.QuarterMinutes)
	default:
		return nil
	}
	return &s
}

// SlotMinutes is the length of the zone's slot, 0 for a day.
func (z Zone) SlotMinutes() int {
	switch z.Kind {
	case ZoneHour:
		return 60
	case ZoneQuarter:
		return calendar.QuarterMinutes
	}
	return 0
}
