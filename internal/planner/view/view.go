// Package view tracks which calendar view is open: the month grid, a single
// day, or a single hour of a day.
package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/fastygo/timeblock/pkg/calendar"
)

// Mode is the active view.
type Mode string

const (
	ModeMonth Mode = "month"
	ModeDay   Mode = "day"
	ModeHour  Mode = "hour"
)

// ErrInvalidTransition is returned when an action does not apply to the
// current mode. The navigator is left unchanged.
var ErrInvalidTransition = errors.New("view: invalid transition")

// Selection is a snapshot of the navigator.
type Selection struct {
	Mode Mode
	// VisibleMonth is always the first of a month and survives Day/Hour visits.
	VisibleMonth time.Time
	// Date is set in Day and Hour mode.
	Date time.Time
	// Hour is valid only in Hour mode.
	Hour int
}

// DateKey returns the canonical key of the selected date, or "" in Month mode.
func (s Selection) DateKey() string {
	if s.Mode == ModeMonth {
		return ""
	}
	return calendar.DateKey(s.Date)
}

// Navigator is the Month/Day/Hour state machine.
type Navigator struct {
	mode         Mode
	visibleMonth time.Time
	date         time.Time
	hour         int
}

// New starts in Month mode showing the month that contains today.
func New(today time.Time) *Navigator {
	return &Navigator{
		mode:         ModeMonth,
		visibleMonth: calendar.StartOfMonth(today),
	}
}

func (n *Navigator) Mode() Mode { return n.mode }

func (n *Navigator) Selection() Selection {
	return Selection{
		Mode:         n.mode,
		VisibleMonth: n.visibleMonth,
		Date:         n.date,
		Hour:         n.hour,
	}
}

// Grid returns the 42 cells of the visible month.
func (n *Navigator) Grid() [calendar.GridDays]time.Time {
	return calendar.MonthGrid(n.visibleMonth)
}

// OpenDay moves Month -> Day. Any cell of the grid may be opened, including
// the leading and trailing days of neighbouring months.
func (n *Navigator) OpenDay(date time.Time) error {
	if n.mode != ModeMonth {
		return fmt.Errorf("%w: open day from %s", ErrInvalidTransition, n.mode)
	}
	n.mode = ModeDay
	n.date = calendar.StartOfDay(date)
	return nil
}

// OpenHour moves Day -> Hour.
func (n *Navigator) OpenHour(hour int) error {
	if n.mode != ModeDay {
		return fmt.Errorf("%w: open hour from %s", ErrInvalidTransition, n.mode)
	}
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidTransition, hour)
	}
	n.mode = ModeHour
	n.hour = hour
	return nil
}

// CloseHour moves Hour -> Day, keeping the date.
func (n *Navigator) CloseHour() error {
	if n.mode != ModeHour {
		return fmt.Errorf("%w: close hour from %s", ErrInvalidTransition, n.mode)
	}
	n.mode = ModeDay
	n.hour = 0
	return nil
}

// CloseDay moves Day -> Month, keeping the month that was visible before.
func (n *Navigator) CloseDay() error {
	if n.mode != ModeDay {
		return fmt.Errorf("%w: close day from %s", ErrInvalidTransition, n.mode)
	}
	n.mode = ModeMonth
	n.date = time.Time{}
	return nil
}

// Back closes whatever is open. In Month mode it does nothing and reports false.
func (n *Navigator) Back() bool {
	switch n.mode {
	case ModeHour:
		_ = n.CloseHour()
	case ModeDay:
		_ = n.CloseDay()
	default:
		return false
	}
	return true
}

// NextMonth and PrevMonth page the month grid without changing the mode.
func (n *Navigator) NextMonth() { n.visibleMonth = calendar.AddMonths(n.visibleMonth, 1) }

func (n *Navigator) PrevMonth() { n.visibleMonth = calendar.AddMonths(n.visibleMonth, -1) }

// ShowMonth jumps the grid to the month containing t.
func (n *Navigator) ShowMonth(t time.Time) { n.visibleMonth = calendar.StartOfMonth(t) }
