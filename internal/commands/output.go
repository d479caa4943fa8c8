package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/internal/planner"
	"github.com/fastygo/timeblock/pkg/calendar"
)

var (
	bold  = color.New(color.Bold)
	title = color.New(color.Bold, color.Underline)
	faint = color.New(color.Faint)
	warn  = color.New(color.FgYellow)
)

func (rt *runtime) printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(rt.out, string(b))
	return err
}

func (rt *runtime) info(msg string) {
	_, _ = faint.Fprintln(rt.out, msg)
}

func (rt *runtime) warn(msg string) {
	_, _ = warn.Fprintln(rt.out, msg)
}

func (rt *runtime) title(s string) {
	_, _ = title.Fprintln(rt.out, s)
}

func priorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return color.New(color.FgRed).Sprint(p)
	case domain.PriorityLow:
		return faint.Sprint(p)
	default:
		return color.New(color.FgYellow).Sprint(p)
	}
}

func check(completed int) string {
	if completed == 1 {
		return "[x]"
	}
	return "[ ]"
}

func (rt *runtime) printNotes(notes []domain.Note) error {
	if rt.json {
		return rt.printJSON(notes)
	}
	rt.title(fmt.Sprintf("Notes - %d", len(notes)))
	if len(notes) == 0 {
		_, _ = faint.Fprintln(rt.out, " none")
		return nil
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("ID"), "", bold.Sprint("PRIORITY"), bold.Sprint("TITLE"))
	for _, n := range notes {
		tbl.AddRow(faint.Sprint(n.ID), check(n.Completed), priorityLabel(n.Priority), n.Title)
	}
	_, err := fmt.Fprintln(rt.out, tbl)
	return err
}

func slotLabel(t domain.Task) string {
	if t.StartTime == nil {
		return "--:--"
	}
	label := *t.StartTime
	if t.Duration != nil {
		label += fmt.Sprintf(" %dm", *t.Duration)
	}
	return label
}

func (rt *runtime) printTasks(heading string, tasks []domain.Task) error {
	if rt.json {
		return rt.printJSON(tasks)
	}
	rt.title(fmt.Sprintf("%s - %d", heading, len(tasks)))
	if len(tasks) == 0 {
		_, _ = faint.Fprintln(rt.out, " none")
		return nil
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("DATE"), bold.Sprint("SLOT"), "", bold.Sprint("PRIORITY"), bold.Sprint("TITLE"))
	for _, t := range tasks {
		tbl.AddRow(faint.Sprint(t.ID), t.Date, slotLabel(t), check(t.Completed), priorityLabel(t.Priority), t.Title)
	}
	_, err := fmt.Fprintln(rt.out, tbl)
	return err
}

func titles(tasks []domain.Task) string {
	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		parts = append(parts, fmt.Sprintf("%s %s %s", check(t.Completed), slotLabel(t), t.Title))
	}
	return strings.Join(parts, "; ")
}

func (rt *runtime) printDay(day planner.DayAgenda, all bool) error {
	if rt.json {
		return rt.printJSON(day)
	}
	rt.title(day.Date)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 70
	tbl.AddRow(bold.Sprint("unscheduled"), titles(day.Tray))
	for hour, tasks := range day.Hours {
		if len(tasks) == 0 && !all {
			continue
		}
		tbl.AddRow(calendar.FormatClock(hour), titles(tasks))
	}
	tbl.RightAlign(0)
	_, err := fmt.Fprintln(rt.out, tbl)
	return err
}

func (rt *runtime) printHour(hour planner.HourAgenda) error {
	if rt.json {
		return rt.printJSON(hour)
	}
	rt.title(fmt.Sprintf("%s %s", hour.Date, calendar.FormatClock(hour.Hour)))
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 70
	for q, slot := range calendar.QuarterSlots(hour.Hour) {
		tbl.AddRow(slot, titles(hour.Quarters[q]))
	}
	_, err := fmt.Fprintln(rt.out, tbl)
	return err
}

func (rt *runtime) printMonth(p *planner.Planner, agenda map[string][]domain.Task) error {
	if rt.json {
		return rt.printJSON(agenda)
	}
	sel := p.View.Selection()
	rt.title(sel.VisibleMonth.Format("January 2006"))

	today := rt.now()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Mon"), bold.Sprint("Tue"), bold.Sprint("Wed"), bold.Sprint("Thu"),
		bold.Sprint("Fri"), bold.Sprint("Sat"), bold.Sprint("Sun"))

	grid := p.View.Grid()
	for week := 0; week < calendar.GridDays/7; week++ {
		row := make([]interface{}, 7)
		for i := 0; i < 7; i++ {
			day := grid[week*7+i]
			cell := fmt.Sprintf("%2d", day.Day())
			if n := len(agenda[calendar.DateKey(day)]); n > 0 {
				cell += fmt.Sprintf(" (%d)", n)
			}
			switch {
			case calendar.SameDay(day, today):
				cell = bold.Sprint(cell)
			case !calendar.SameMonth(day, sel.VisibleMonth):
				cell = faint.Sprint(cell)
			}
			row[i] = cell
		}
		tbl.AddRow(row...)
	}
	_, err := fmt.Fprintln(rt.out, tbl)
	return err
}
