package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/taskdeck/internal/store"
	"github.com/pablasso/taskdeck/internal/tui/msgs"
	"github.com/pablasso/taskdeck/internal/tui/styles"
)

// storeCmd runs fn off the UI goroutine and reports back with a
// StoreUpdatedMsg once it returns.
func storeCmd(ctx context.Context, op msgs.Op, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return msgs.StoreUpdatedMsg{Op: op, Err: fn(ctx)}
	}
}

// renderNotice styles the store's current notice, or returns "" when there
// is nothing to show.
func renderNotice(n store.Notice) string {
	if n.Empty() {
		return ""
	}
	if n.Error {
		return styles.ErrorStyle.Render(n.Text)
	}
	return styles.SuccessStyle.Render(n.Text)
}
