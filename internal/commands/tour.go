package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func addTour(topLevel *cobra.Command, rt *runtime) {
	var skip bool
	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Walk through how the planner works",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.runTour(cmd.Context(), skip)
		},
	}
	cmd.Flags().BoolVar(&skip, "skip", false, "Mark the tour as seen without showing it.")
	topLevel.AddCommand(cmd)
}

// runTour prints every step and records the tour as completed.
func (rt *runtime) runTour(ctx context.Context, skip bool) error {
	tour := rt.planner().Tour
	if !tour.Active() {
		tour.Start()
	}
	if skip {
		return tour.Skip(ctx)
	}
	for {
		step, idx, ok := tour.Current()
		if !ok {
			break
		}
		_, _ = bold.Fprintf(rt.out, "%d/%d %s\n", idx+1, tour.Len(), step.Title)
		_, _ = fmt.Fprintf(rt.out, "    %s\n", step.Body)
		if !tour.Next() {
			break
		}
	}
	return tour.Finish(ctx)
}
