package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pablasso/taskdeck/internal/store"
	"github.com/pablasso/taskdeck/internal/task"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		filter string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "Fetches every task from the backend and prints those matching --filter.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Refresh(cmd.Context()); err != nil {
				return err
			}
			a.store.SetFilter(task.ParseFilter(filter))
			visible := a.store.Visible()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), visible)
			}
			return printTasks(cmd.OutOrStdout(), visible)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(task.FilterAll), "All, Active, Completed, High, Medium or Low")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Refresh(cmd.Context()); err != nil {
				return err
			}
			stats := a.store.Stats()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), stats)
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}

// draftFlags binds the editable task fields to flags on cmd.
type draftFlags struct {
	title       string
	description string
	priority    string
	due         string
}

func (f *draftFlags) register(cmd *cobra.Command, defaultPriority string) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Task title")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", defaultPriority, "Low, Medium or High")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD); empty clears it")
}

// apply copies the flags that were set on cmd into d. Priorities are
// matched case-insensitively; anything unrecognised is passed through for
// validation to reject.
func (f *draftFlags) apply(cmd *cobra.Command, d *task.Draft) {
	if cmd.Flags().Changed("title") {
		d.Title = f.title
	}
	if cmd.Flags().Changed("description") {
		d.Description = f.description
	}
	if cmd.Flags().Changed("priority") {
		if p, err := task.ParsePriority(f.priority); err == nil {
			d.Priority = p
		} else {
			d.Priority = task.Priority(f.priority)
		}
	}
	if cmd.Flags().Changed("due") {
		d.DueDate = f.due
	}
}

func newAddCmd(a *app) *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Example: `  taskdeck add --title "Buy milk"
  taskdeck add -t "File taxes" -p high --due 2026-04-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.BeginCreate(); err != nil {
				return err
			}
			return a.submit(cmd, &flags)
		},
	}
	flags.register(cmd, string(task.PriorityMedium))
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long:  "Starts from the task's current fields and replaces those given as flags.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Refresh(cmd.Context()); err != nil {
				return err
			}
			id := task.ID(args[0])
			if err := a.store.BeginEdit(id); err != nil {
				if errors.Is(err, store.ErrUnknownTask) {
					return fmt.Errorf("task %s not found", id)
				}
				return err
			}
			return a.submit(cmd, &flags)
		},
	}
	flags.register(cmd, "")
	return cmd
}

// submit applies flags to the open draft and sends it.
func (a *app) submit(cmd *cobra.Command, flags *draftFlags) error {
	if err := a.store.EditDraft(func(d *task.Draft) { flags.apply(cmd, d) }); err != nil {
		return err
	}
	err := a.store.Submit(cmd.Context())
	// A failed refresh after a successful save still saved the task.
	if err != nil && store.KindOf(err) != store.KindLoad {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.store.Notice().Text)
	return nil
}

func newStatusCmd(a *app, use, short string, status bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := task.ID(args[0])
			if err := a.store.SetStatus(cmd.Context(), id, status); err != nil && store.KindOf(err) != store.KindLoad {
				return err
			}
			state := "not completed"
			if status {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s marked %s\n", id, state)
			return nil
		},
	}
}

// DeletePrompt is asked before a delete unless --yes is given.
const DeletePrompt = "Are you sure you want to delete this task? [y/N] "

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed := yes
			if !confirmed {
				fmt.Fprint(cmd.OutOrStdout(), DeletePrompt)
				confirmed = confirm(cmd.InOrStdin())
			}

			err := a.store.Delete(cmd.Context(), task.ID(args[0]), confirmed)
			switch {
			case errors.Is(err, store.ErrNotConfirmed):
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			case err != nil && store.KindOf(err) != store.KindLoad:
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.MsgDeleted)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

// confirm reads one line from r and reports whether it is a yes.
func confirm(r io.Reader) bool {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
