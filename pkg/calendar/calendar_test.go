package calendar

import (
	"testing"
	"time"
)

func TestMonthGridShape(t *testing.T) {
	for year := 2000; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			ref := time.Date(year, month, 17, 15, 30, 0, 0, time.Local)
			grid := MonthGrid(ref)

			if grid[0].Weekday() != time.Monday {
				t.Fatalf("%s: grid starts on %s", ref.Format("2006-01"), grid[0].Weekday())
			}
			if grid[0].After(StartOfMonth(ref)) {
				t.Fatalf("%s: grid starts after the first of the month", ref.Format("2006-01"))
			}
			for i := 1; i < len(grid); i++ {
				want := grid[i-1].AddDate(0, 0, 1)
				if !SameDay(grid[i], want) {
					t.Fatalf("%s: cell %d is %s, want %s", ref.Format("2006-01"), i, DateKey(grid[i]), DateKey(want))
				}
			}
			last := StartOfMonth(ref).AddDate(0, 1, -1)
			if grid[len(grid)-1].Before(last) {
				t.Fatalf("%s: grid ends before the last day of the month", ref.Format("2006-01"))
			}
		}
	}
}

func TestMonthGridMondayFirstMonth(t *testing.T) {
	// September 2025 starts on a Monday, so the grid starts on the 1st.
	grid := MonthGrid(time.Date(2025, time.September, 20, 0, 0, 0, 0, time.Local))
	if got := DateKey(grid[0]); got != "2025-09-01" {
		t.Fatalf("expected grid to start on 2025-09-01, got %s", got)
	}
	if got := DateKey(grid[41]); got != "2025-10-12" {
		t.Fatalf("expected grid to end on 2025-10-12, got %s", got)
	}
}

func TestSameMonthAndDay(t *testing.T) {
	a := time.Date(2026, time.March, 3, 0, 5, 0, 0, time.Local)
	b := time.Date(2026, time.March, 3, 23, 55, 0, 0, time.Local)
	c := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.Local)

	if !SameDay(a, b) {
		t.Fatalf("expected %v and %v to be the same day", a, b)
	}
	if SameMonth(a, c) {
		t.Fatalf("different years must not be the same month")
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Fatalf("adjacent days reported as the same day")
	}
}

func TestDateKeyUsesLocalFields(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	late := time.Date(2026, time.January, 1, 0, 30, 0, 0, loc)
	if got := DateKey(late); got != "2026-01-01" {
		t.Fatalf("expected local calendar day 2026-01-01, got %s", got)
	}
}

func TestDateKeyRoundTrip(t *testing.T) {
	now := time.Now()
	for offset := -366; offset <= 366; offset++ {
		d := now.AddDate(0, 0, offset)
		parsed, err := ParseDateKey(DateKey(d))
		if err != nil {
			t.Fatalf("parse %s: %v", DateKey(d), err)
		}
		if !SameDay(parsed, d) {
			t.Fatalf("round trip of %s produced %s", DateKey(d), DateKey(parsed))
		}
	}
}

func TestValidDateKey(t *testing.T) {
	cases := map[string]bool{
		"2026-10-14": true,
		"2026-02-30": false,
		"2026-1-4":   false,
		"":           false,
		"tomorrow":   false,
	}
	for in, want := range cases {
		if got := ValidDateKey(in); got != want {
			t.Errorf("ValidDateKey(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAddMonthsDoesNotOverflow(t *testing.T) {
	jan31 := time.Date(2026, time.January, 31, 9, 0, 0, 0, time.Local)
	next := AddMonths(jan31, 1)
	if next.Month() != time.February || next.Day() != 1 {
		t.Fatalf("expected 1 February, got %s", DateKey(next))
	}
	prev := AddMonths(jan31, -1)
	if prev.Year() != 2025 || prev.Month() != time.December {
		t.Fatalf("expected December 2025, got %s", DateKey(prev))
	}
}

func TestHoursAndSlots(t *testing.T) {
	hours := Hours()
	if len(hours) != 24 || hours[0] != 0 || hours[23] != 23 {
		t.Fatalf("unexpected hours: %v", hours)
	}

	slots := QuarterSlots(9)
	want := [4]string{"09:00", "09:15", "09:30", "09:45"}
	if slots != want {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		0:  "12 AM",
		1:  "1 AM",
		11: "11 AM",
		12: "12 PM",
		13: "1 PM",
		23: "11 PM",
	}
	for hour, want := range cases {
		if got := FormatClock(hour); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", hour, got, want)
		}
	}
}

func TestParseAndNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("9:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "09:05" {
		t.Fatalf("expected 09:05, got %s", got)
	}

	for _, bad := range []string{"", "24:00", "12:60", "12", "1:5", "ab:cd", "123:00", "+9:05", "-0:30", "9:+5", "12:-1"} {
		if _, _, err := ParseClock(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestQuarterOf(t *testing.T) {
	cases := []struct {
		in      string
		hour    int
		quarter int
	}{
		{"14:00", 14, 0},
		{"14:14", 14, 0},
		{"14:15", 14, 1},
		{"14:44", 14, 2},
		{"14:59", 14, 3},
	}
	for _, tc := range cases {
		h, q, err := QuarterOf(tc.in)
		if err != nil {
			t.Fatalf("QuarterOf(%q): %v", tc.in, err)
		}
		if h != tc.hour || q != tc.quarter {
			t.Errorf("QuarterOf(%q) = (%d,%d), want (%d,%d)", tc.in, h, q, tc.hour, tc.quarter)
		}
	}
}
