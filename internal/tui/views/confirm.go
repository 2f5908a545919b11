package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/taskdeck/internal/store"
	"github.com/pablasso/taskdeck/internal/task"
	"github.com/pablasso/taskdeck/internal/tui/components"
	"github.com/pablasso/taskdeck/internal/tui/msgs"
	"github.com/pablasso/taskdeck/internal/tui/styles"
)

// ConfirmPrompt is the question shown before a task is deleted.
const ConfirmPrompt = "Are you sure you want to delete this task?"

// ConfirmModel asks for confirmation before deleting a task. Declining
// never reaches the backend.
type ConfirmModel struct {
	ctx   context.Context
	store *store.Store
	task  task.Task
	busy  bool

	width  int
	height int
}

// NewConfirmModel creates a confirmation prompt for t.
func NewConfirmModel(ctx context.Context, st *store.Store, t task.Task) ConfirmModel {
	return ConfirmModel{ctx: ctx, store: st, task: t}
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case msgs.StoreUpdatedMsg:
		if msg.Op != msgs.OpDelete {
			return m, nil
		}
		m.busy = false
		return m, func() tea.Msg { return msgs.GoToListMsg{} }

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "y", "Y":
			m.busy = true
			id := m.task.ID
			return m, storeCmd(m.ctx, msgs.OpDelete, func(ctx context.Context) error {
				return m.store.Delete(ctx, id, true)
			})
		case "n", "N", "esc", "q":
			return m, func() tea.Msg { return msgs.GoToListMsg{} }
		}
	}
	return m, nil
}

// Task returns the task awaiting confirmation.
func (m ConfirmModel) Task() task.Task {
	return m.task
}

// Busy reports whether the delete is in flight.
func (m ConfirmModel) Busy() bool {
	return m.busy
}

// SetSize updates the model dimensions.
func (m *ConfirmModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body strings.Builder
	body.WriteString(styles.WarningStyle.Render(ConfirmPrompt))
	body.WriteString("\n\n")
	body.WriteString(m.task.Title)
	body.WriteString("\n")
	body.WriteString(styles.PriorityStyle(m.task.Priority).Render(string(m.task.Priority)))
	body.WriteString("\n\n")
	if m.busy {
		body.WriteString(styles.SubtleStyle.Render("Deleting..."))
	} else {
		body.WriteString(styles.SubtleStyle.Render("[y] Delete   [n] Keep"))
	}

	box := styles.BoxStyle.Render(body.String())
	placed := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)

	return placed + "\n" + components.NewStatusBar().Render(m.width, []string{"y Confirm", "n/esc Cancel"})
}
