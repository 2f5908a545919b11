package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pablasso/taskdeck/internal/task"
	"github.com/pablasso/taskdeck/internal/tui/components"
)

func printTasks(out io.Writer, tasks []task.Task) error {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tDUE\tTITLE")
	for _, t := range tasks {
		done := " "
		if t.Status {
			done = "x"
		}
		due := t.DueDate
		if !t.HasDueDate() {
			due = "-"
		}
		fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\t%s\n", t.ID, done, t.Priority, due, t.Title)
	}
	return w.Flush()
}

func printStats(out io.Writer, s task.Stats) {
	fmt.Fprintf(out, "Total:      %d\n", s.Total)
	fmt.Fprintf(out, "Completed:  %d\n", s.Completed)
	fmt.Fprintf(out, "Pending:    %d\n", s.Pending)
	fmt.Fprintf(out, "Progress:   %s\n", components.NewProgress(s.CompletionRate, 20).View())
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
