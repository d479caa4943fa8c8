package commands

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/pkg/calendar"
)

const monthLayout = "2006-01"

func addMonth(topLevel *cobra.Command, rt *runtime) {
	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show the month grid with task counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := rt.planner()
			if len(args) == 1 {
				month, err := time.ParseInLocation(monthLayout, args[0], time.Local)
				if err != nil {
					return domain.WrapError(domain.ErrCodeInvalid, "invalid month", err)
				}
				p.View.ShowMonth(month)
			} else {
				p.View.ShowMonth(rt.now())
			}
			agenda, err := p.MonthAgenda(cmd.Context())
			if err != nil {
				return err
			}
			return rt.printMonth(p, agenda)
		},
	}
	topLevel.AddCommand(cmd)
}

func addDay(topLevel *cobra.Command, rt *runtime) {
	var all bool
	cmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show one day hour by hour",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := calendar.DateKey(rt.now())
			if len(args) == 1 {
				date = args[0]
			}
			return rt.showDayAll(cmd.Context(), date, all)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Show empty hours too.")
	topLevel.AddCommand(cmd)
}

func addHour(topLevel *cobra.Command, rt *runtime) {
	cmd := &cobra.Command{
		Use:   "hour <YYYY-MM-DD> <HH>",
		Short: "Show the quarter hours of one hour",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hour, err := strconv.Atoi(args[1])
			if err != nil {
				return domain.WrapError(domain.ErrCodeInvalid, "invalid hour", err)
			}
			p := rt.planner()
			if err := rt.openDay(args[0]); err != nil {
				return err
			}
			if err := p.View.OpenHour(hour); err != nil {
				return domain.WrapError(domain.ErrCodeInvalid, "invalid hour", err)
			}
			agenda, err := p.HourAgenda(cmd.Context(), args[0], hour)
			if err != nil {
				return err
			}
			return rt.printHour(agenda)
		},
	}
	topLevel.AddCommand(cmd)
}

// openDay moves the navigator to date from whatever view it is in.
func (rt *runtime) openDay(date string) error {
	day, err := calendar.ParseDateKey(date)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid date", err)
	}
	nav := rt.planner().View
	for nav.Back() {
	}
	nav.ShowMonth(day)
	return nav.OpenDay(day)
}

func (rt *runtime) showDay(ctx context.Context, date string) error {
	return rt.showDayAll(ctx, date, false)
}

func (rt *runtime) showDayAll(ctx context.Context, date string, all bool) error {
	if err := rt.openDay(date); err != nil {
		return err
	}
	agenda, err := rt.planner().DayAgenda(ctx, date)
	if err != nil {
		return err
	}
	return rt.printDay(agenda, all)
}
