package view

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNavigatorRoundTrip(t *testing.T) {
	n := New(time.Date(2026, 10, 14, 15, 30, 0, 0, time.Local))
	if n.Mode() != ModeMonth {
		t.Fatalf("expected month mode at start")
	}
	n.NextMonth()
	n.NextMonth()
	wantMonth := day(2026, 12, 1)
	if !n.Selection().VisibleMonth.Equal(wantMonth) {
		t.Fatalf("expected %v, got %v", wantMonth, n.Selection().VisibleMonth)
	}

	if err := n.OpenDay(time.Date(2026, 12, 24, 18, 0, 0, 0, time.Local)); err != nil {
		t.Fatalf("open day: %v", err)
	}
	if err := n.OpenHour(14); err != nil {
		t.Fatalf("open hour: %v", err)
	}
	sel := n.Selection()
	if sel.Mode != ModeHour || sel.Hour != 14 || sel.DateKey() != "2026-12-24" {
		t.Fatalf("unexpected selection %+v", sel)
	}

	if err := n.CloseHour(); err != nil {
		t.Fatalf("close hour: %v", err)
	}
	if n.Selection().DateKey() != "2026-12-24" {
		t.Fatalf("closing the hour must preserve the date, got %q", n.Selection().DateKey())
	}

	if err := n.CloseDay(); err != nil {
		t.Fatalf("close day: %v", err)
	}
	sel = n.Selection()
	if sel.Mode != ModeMonth || !sel.VisibleMonth.Equal(wantMonth) || sel.DateKey() != "" {
		t.Fatalf("closing the day must restore the prior month, got %+v", sel)
	}
}

func TestInvalidTransitionsLeaveStateUntouched(t *testing.T) {
	n := New(day(2026, 10, 14))
	before := n.Selection()

	for name, fn := range map[string]func() error{
		"open hour from month":  func() error { return n.OpenHour(9) },
		"close hour from month": n.CloseHour,
		"close day from month":  n.CloseDay,
	} {
		if err := fn(); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s: expected ErrInvalidTransition, got %v", name, err)
		}
	}
	if n.Selection() != before {
		t.Fatalf("state changed after invalid transitions")
	}

	_ = n.OpenDay(day(2026, 10, 20))
	if err := n.OpenDay(day(2026, 10, 21)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected error opening a day from day mode, got %v", err)
	}
	if err := n.OpenHour(24); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected out of range hour to be rejected, got %v", err)
	}
	if n.Selection().DateKey() != "2026-10-20" || n.Mode() != ModeDay {
		t.Fatalf("unexpected selection %+v", n.Selection())
	}
}

func TestBackAndPaging(t *testing.T) {
	n := New(day(2026, 1, 31))
	n.PrevMonth()
	if got := n.Selection().VisibleMonth; !got.Equal(day(2025, 12, 1)) {
		t.Fatalf("expected Dec 2025, got %v", got)
	}

	if n.Back() {
		t.Fatalf("back in month mode should report false")
	}
	_ = n.OpenDay(day(2025, 12, 3))
	_ = n.OpenHour(8)
	n.NextMonth()
	if n.Mode() != ModeHour {
		t.Fatalf("paging must not change the mode")
	}
	if !n.Back() || n.Mode() != ModeDay {
		t.Fatalf("expected back to day")
	}
	if !n.Back() || n.Mode() != ModeMonth {
		t.Fatalf("expected back to month")
	}
	if got := n.Selection().VisibleMonth; !got.Equal(day(2026, 1, 1)) {
		t.Fatalf("expected the paged month to be kept, got %v", got)
	}

	n.ShowMonth(day(2027, 3, 17))
	if grid := n.Grid(); grid[0].Weekday() != time.Monday {
		t.Fatalf("grid must start on a Monday, got %v", grid[0].Weekday())
	}
}
