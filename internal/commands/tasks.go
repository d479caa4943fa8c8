package commands

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/internal/planner/dragdrop"
	"github.com/fastygo/timeblock/pkg/calendar"
)

func addTasks(topLevel *cobra.Command, rt *runtime) {
	var date string
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List scheduled tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := rt.planner().Tasks(cmd.Context(), date)
			if err != nil {
				return err
			}
			heading := "Tasks"
			if date != "" {
				heading = date
			}
			return rt.printTasks(heading, tasks)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", `Only show one day, example: --date="2026-10-14".`)
	topLevel.AddCommand(cmd)
}

// placement is where a schedule or move lands.
type placement struct {
	Date    string
	At      string
	Quarter bool
}

func addPlacementArgs(cmd *cobra.Command, o *placement) {
	cmd.Flags().StringVar(&o.Date, "date", "", "Target date, YYYY-MM-DD. Defaults to today.")
	cmd.Flags().StringVar(&o.At, "at", "", "Start time, HH:MM or HH. Empty leaves the task unscheduled.")
	cmd.Flags().BoolVar(&o.Quarter, "quarter", false, "Place into a 15 minute slot even on the full hour.")
}

// zone maps the flags onto a drop zone: no time is the day, a full hour is
// the hour row, anything else is the quarter the time falls in.
func (o *placement) zone(today string) (dragdrop.Zone, error) {
	date := o.Date
	if date == "" {
		date = today
	}
	if !calendar.ValidDateKey(date) {
		return dragdrop.Zone{}, domain.Invalid("invalid date %q", date)
	}
	if o.At == "" {
		return dragdrop.DayZone(date), nil
	}

	at := o.At
	if _, err := strconv.Atoi(at); err == nil {
		at += ":00"
	}
	hour, quarter, err := calendar.QuarterOf(at)
	if err != nil {
		return dragdrop.Zone{}, domain.WrapError(domain.ErrCodeInvalid, "invalid --at", err)
	}
	_, minute, _ := calendar.ParseClock(at)
	if minute%calendar.QuarterMinutes != 0 {
		return dragdrop.Zone{}, domain.Invalid("--at must be on a quarter hour, got %q", o.At)
	}
	if minute == 0 && !o.Quarter {
		return dragdrop.HourZone(date, hour), nil
	}
	return dragdrop.QuarterZone(date, hour, quarter), nil
}

func addSchedule(topLevel *cobra.Command, rt *runtime) {
	o := &placement{}
	cmd := &cobra.Command{
		Use:   "schedule <note-id>",
		Short: "Turn a note into a task on the calendar",
		Example: `
planner schedule <note id> --date 2026-10-14 --at 14:00
planner schedule <note id> --at 9:30
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			zone, err := o.zone(calendar.DateKey(rt.now()))
			if err != nil {
				return err
			}
			p := rt.planner()
			transfer, err := p.BeginNoteDragByID(ctx, args[0])
			if err != nil {
				return err
			}
			p.DragEnter(zone)
			task, err := p.Drop(ctx, zone, transfer)
			if err != nil {
				return err
			}
			return rt.printTasks("Scheduled", []domain.Task{*task})
		},
	}
	addPlacementArgs(cmd, o)
	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command, rt *runtime) {
	o := &placement{}
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Reschedule a task",
		Example: `
planner move <task id> --date 2026-10-15 --at 10:15
planner move <task id> --date 2026-10-15
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			zone, err := o.zone(calendar.DateKey(rt.now()))
			if err != nil {
				return err
			}
			p := rt.planner()
			day, err := calendar.ParseDateKey(zone.Date)
			if err != nil {
				return err
			}
			if err := p.View.OpenDay(day); err != nil {
				return err
			}
			transfer, err := p.BeginTaskDragByID(ctx, args[0])
			if err != nil {
				return err
			}
			p.DragEnter(zone)
			task, err := p.Drop(ctx, zone, transfer)
			if err != nil {
				return err
			}
			return rt.printTasks("Moved", []domain.Task{*task})
		},
	}
	addPlacementArgs(cmd, o)
	topLevel.AddCommand(cmd)
}

func addTask(topLevel *cobra.Command, rt *runtime) {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Complete or remove a task",
	}

	done := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete", "toggle"},
		Short:   "Toggle a task between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := rt.planner().ToggleTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return rt.printTasks("Updated", []domain.Task{*task})
		},
	}

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a task",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.planner().DeleteTask(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(done, rm)
	topLevel.AddCommand(cmd)
}
