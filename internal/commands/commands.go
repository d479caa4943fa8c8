// Package commands is the planner command line: cobra commands over the
// planner core, configured through viper.
package commands

import (
	"context"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fastygo/timeblock/internal/planner"
	"github.com/fastygo/timeblock/pkg/calendar"
)

// runtime is shared by every command of one invocation.
type runtime struct {
	viper *viper.Viper
	out   io.Writer
	json  bool
	now   func() time.Time
	env   *Env
}

func New() *cobra.Command {
	_, cmd := newRoot(color.Output)
	return cmd
}

// Execute runs the command line with args and always releases the local
// store, even when a command fails.
func Execute(ctx context.Context, args []string) error {
	return execute(ctx, args, color.Output)
}

func execute(ctx context.Context, args []string, out io.Writer) error {
	rt, cmd := newRoot(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if cerr := rt.close(ctx); err == nil {
		err = cerr
	}
	return err
}

func newRoot(out io.Writer) (*runtime, *cobra.Command) {
	rt := &runtime{viper: viper.New(), out: out, now: time.Now}

	cmd := &cobra.Command{
		Use:           "planner",
		Short:         "Time-block your days from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.close(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.home(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("api-url", "", "Base URL of the planner API. Empty keeps everything local.")
	flags.String("data", "", "Path of the local database file.")
	flags.String("user", "", "User id to act as.")
	flags.BoolVar(&rt.json, "json", false, "Output as JSON.")
	_ = rt.viper.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = rt.viper.BindPFlag("data_path", flags.Lookup("data"))
	_ = rt.viper.BindPFlag("user_id", flags.Lookup("user"))

	addCommands(cmd, rt)
	return rt, cmd
}

func addCommands(topLevel *cobra.Command, rt *runtime) {
	addNotes(topLevel, rt)
	addNote(topLevel, rt)
	addTasks(topLevel, rt)
	addSchedule(topLevel, rt)
	addMove(topLevel, rt)
	addTask(topLevel, rt)
	addMonth(topLevel, rt)
	addDay(topLevel, rt)
	addHour(topLevel, rt)
	addTour(topLevel, rt)
}

func (rt *runtime) open(ctx context.Context) error {
	if rt.env != nil {
		return nil
	}
	cfg, err := LoadConfig(rt.viper)
	if err != nil {
		return err
	}
	env, err := Open(contextOrBackground(ctx), cfg)
	if err != nil {
		return err
	}
	rt.env = env
	if env.Remote && !env.Online() {
		rt.warn("API unreachable, working from the local store")
	}
	return nil
}

func (rt *runtime) close(ctx context.Context) error {
	if rt.env == nil {
		return nil
	}
	if !rt.json {
		for _, n := range rt.env.Planner.Notices.Drain() {
			if n.Level == planner.LevelInfo {
				rt.info(n.Message)
			}
		}
	}
	err := rt.env.Close(contextOrBackground(ctx))
	rt.env = nil
	return err
}

func (rt *runtime) planner() *planner.Planner { return rt.env.Planner }

// home shows the tour on first use, then today.
func (rt *runtime) home(ctx context.Context) error {
	p := rt.planner()
	launched, err := p.Tour.AutoLaunch(ctx)
	if err != nil {
		return err
	}
	if launched && !rt.json {
		if err := rt.runTour(ctx, false); err != nil {
			return err
		}
	}
	return rt.showDay(ctx, calendar.DateKey(rt.now()))
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
