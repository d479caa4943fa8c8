package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fastygo/timeblock/domain"
)

func addNotes(topLevel *cobra.Command, rt *runtime) {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List the notes waiting in the drawer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notes, err := rt.planner().Notes(cmd.Context())
			if err != nil {
				return err
			}
			return rt.printNotes(notes)
		},
	}
	topLevel.AddCommand(cmd)
}

type noteOptions struct {
	Description      string
	Priority         string
	Title            string
	ClearDescription bool
}

func addNote(topLevel *cobra.Command, rt *runtime) {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Add, complete, edit or remove a note",
	}

	o := &noteOptions{}
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a note to the drawer",
		Example: `
planner note add "Write report" --priority high
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.NoteInput{
				Title:    strings.Join(args, " "),
				Priority: domain.Priority(o.Priority),
			}
			if o.Description != "" {
				in.Description = &o.Description
			}
			note, err := rt.planner().AddNote(cmd.Context(), in)
			if err != nil {
				return err
			}
			if rt.json {
				return rt.printJSON(note)
			}
			return nil
		},
	}
	add.Flags().StringVar(&o.Description, "description", "", "Optional description.")
	add.Flags().StringVar(&o.Priority, "priority", "", "low, medium or high (default medium).")

	done := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete", "toggle"},
		Short:   "Toggle a note between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := rt.planner().ToggleNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return rt.printNotes([]domain.Note{*note})
		},
	}

	eo := &noteOptions{}
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, description or priority of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := eo.patch(cmd)
			if err != nil {
				return err
			}
			note, err := rt.planner().EditNote(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return rt.printNotes([]domain.Note{*note})
		},
	}
	edit.Flags().StringVar(&eo.Title, "title", "", "New title.")
	edit.Flags().StringVar(&eo.Description, "description", "", "New description.")
	edit.Flags().BoolVar(&eo.ClearDescription, "clear-description", false, "Remove the description.")
	edit.Flags().StringVar(&eo.Priority, "priority", "", "New priority.")

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.planner().DeleteNote(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(add, done, edit, rm)
	topLevel.AddCommand(cmd)
}

// patch only carries the flags that were given on the command line.
func (o *noteOptions) patch(cmd *cobra.Command) (domain.NotePatch, error) {
	var patch domain.NotePatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		patch.Title = domain.Some(o.Title)
	}
	if flags.Changed("priority") {
		patch.Priority = domain.Some(domain.Priority(o.Priority))
	}
	switch {
	case o.ClearDescription && flags.Changed("description"):
		return patch, errors.New("--description and --clear-description are exclusive")
	case o.ClearDescription:
		patch.Description = domain.Null[string]()
	case flags.Changed("description"):
		patch.Description = domain.Some(o.Description)
	}
	return patch, nil
}
