// Package calendar holds the pure date and time-of-day helpers used by the
// planner: month grids, canonical date keys and quarter-hour slots.
//
// Every helper works on local calendar fields. Date keys are never derived
// from a UTC conversion, so a task created at 23:30 stays on the day it was
// created on.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// GridDays is the number of cells in a month grid (6 weeks of 7 days).
	GridDays = 42

	// QuartersPerHour is the number of 15-minute segments in an hour.
	QuartersPerHour = 4

	// QuarterMinutes is the length of a quarter segment.
	QuarterMinutes = 15

	dateLayout = "2006-01-02"
)

// MonthGrid returns the Monday-first 6x7 grid covering the month that
// contains t. The first cell is always a Monday and the grid always has
// GridDays contiguous days, padded with days from the adjacent months.
func MonthGrid(t time.Time) [GridDays]time.Time {
	first := StartOfMonth(t)
	// time.Weekday is Sunday=0; shift so Monday=0.
	offset := (int(first.Weekday()) + 6) % 7
	start := first.AddDate(0, 0, -offset)

	var grid [GridDays]time.Time
	for i := range grid {
		grid[i] = start.AddDate(0, 0, i)
	}
	return grid
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return SameMonth(a, b) && a.Day() == b.Day()
}

// DateKey formats t as the canonical YYYY-MM-DD identity used for filtering.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey parses a YYYY-MM-DD key into local midnight of that day.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(key), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", key)
	}
	return t, nil
}

// ValidDateKey reports whether key is a well-formed canonical date.
func ValidDateKey(key string) bool {
	t, err := ParseDateKey(key)
	return err == nil && DateKey(t) == key
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths pages a month by n. The result is always the first of a month,
// so paging from the 31st never skips a short month.
func AddMonths(t time.Time, n int) time.Time {
	return StartOfMonth(t).AddDate(0, n, 0)
}

// Hours returns the hours of a day, 0 through 23.
func Hours() []int {
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return hours
}

// QuarterSlots returns the four quarter start times of hour as HH:MM.
func QuarterSlots(hour int) [QuartersPerHour]string {
	var slots [QuartersPerHour]string
	for q := range slots {
		slots[q] = ClockKey(hour, q*QuarterMinutes)
	}
	return slots
}

// FormatClock renders hour on a 12-hour clock, e.g. "12 AM", "1 PM".
func FormatClock(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d %s", h, suffix)
}

// ClockKey formats a time of day as zero-padded HH:MM.
func ClockKey(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseClock parses H:MM or HH:MM into hour and minute.
func ParseClock(value string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || len(m) != 2 || h == "" || len(h) > 2 || !digits(h) || !digits(m) {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeClock rewrites a parseable time of day into canonical HH:MM.
func NormalizeClock(value string) (string, error) {
	h, m, err := ParseClock(value)
	if err != nil {
		return "", err
	}
	return ClockKey(h, m), nil
}

// QuarterOf returns the hour and quarter index (0-3) a start time falls in.
func QuarterOf(startTime string) (hour, quarter int, err error) {
	h, m, err := ParseClock(startTime)
	if err != nil {
		return 0, 0, err
	}
	return h, m / QuarterMinutes, nil
}
