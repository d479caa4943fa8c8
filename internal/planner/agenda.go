package planner

import (
	"context"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/pkg/calendar"
)

// DayAgenda splits a day into the unscheduled tray and one bucket per hour.
type DayAgenda struct {
	Date  string
	Tray  []domain.Task
	Hours [24][]domain.Task
}

// HourAgenda splits one hour into its quarter segments.
type HourAgenda struct {
	Date     string
	Hour     int
	Quarters [calendar.QuartersPerHour][]domain.Task
}

// MonthAgenda groups the tasks that fall on the visible grid by date key.
func (p *Planner) MonthAgenda(ctx context.Context) (map[string][]domain.Task, error) {
	tasks, err := p.Tasks(ctx, allDates)
	if err != nil {
		return nil, err
	}
	grid := p.View.Grid()
	agenda := make(map[string][]domain.Task, len(grid))
	for _, day := range grid {
		agenda[calendar.DateKey(day)] = nil
	}
	for _, t := range tasks {
		if _, ok := agenda[t.Date]; ok {
			agenda[t.Date] = append(agenda[t.Date], t)
		}
	}
	return agenda, nil
}

func (p *Planner) DayAgenda(ctx context.Context, date string) (DayAgenda, error) {
	if !calendar.ValidDateKey(date) {
		return DayAgenda{}, p.fail("day agenda", domain.Invalid("invalid date %q", date))
	}
	tasks, err := p.Tasks(ctx, date)
	if err != nil {
		return DayAgenda{}, err
	}
	agenda := DayAgenda{Date: date}
	for _, t := range tasks {
		hour, _, ok := t.Slot()
		if !ok {
			agenda.Tray = append(agenda.Tray, t)
			continue
		}
		agenda.Hours[hour] = append(agenda.Hours[hour], t)
	}
	return agenda, nil
}

func (p *Planner) HourAgenda(ctx context.Context, date string, hour int) (HourAgenda, error) {
	if hour < 0 || hour > 23 {
		return HourAgenda{}, p.fail("hour agenda", domain.Invalid("hour %d out of range", hour))
	}
	day, err := p.DayAgenda(ctx, date)
	if err != nil {
		return HourAgenda{}, err
	}
	agenda := HourAgenda{Date: date, Hour: hour}
	for _, t := range day.Hours[hour] {
		_, quarter, _ := t.Slot()
		agenda.Quarters[quarter] = append(agenda.Quarters[quarter], t)
	}
	return agenda, nil
}
