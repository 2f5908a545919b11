// Package tui implements the interactive terminal interface over a task
// store.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/taskdeck/internal/task"
	"github.com/pablasso/taskdeck/internal/tui/msgs"
	"github.com/pablasso/taskdeck/internal/tui/styles"
	"github.com/pablasso/taskdeck/internal/tui/views"
)

// Minimum terminal size the layout needs.
const (
	MinTerminalWidth  = 50
	MinTerminalHeight = 16
)

// View represents the different screens in the TUI.
type View int

const (
	ViewList View = iota
	ViewForm
	ViewConfirmDelete
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	ctx         context.Context
	opts        Options
	currentView View
	width       int
	height      int

	list    views.ListModel
	form    views.FormModel
	confirm views.ConfirmModel
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return errors.New("tui: store is required")
	}

	p := tea.NewProgram(
		NewModel(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// NewModel builds the root model with the list view active.
func NewModel(ctx context.Context, opts Options) Model {
	if opts.Filter != "" {
		opts.Store.SetFilter(task.ParseFilter(opts.Filter))
	}
	return Model{
		ctx:         ctx,
		opts:        opts,
		currentView: ViewList,
		list:        views.NewListModel(ctx, opts.Store),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.list.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		m.form.SetSize(msg.Width, msg.Height)
		m.confirm.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.GoToListMsg:
		m.currentView = ViewList
		m.list.Sync()
		return m, nil

	case msgs.GoToFormMsg:
		m.currentView = ViewForm
		m.form = views.NewFormModel(m.ctx, m.opts.Store)
		m.form.SetSize(m.width, m.height)
		return m, m.form.Init()

	case msgs.GoToConfirmDeleteMsg:
		m.currentView = ViewConfirmDelete
		m.confirm = views.NewConfirmModel(m.ctx, m.opts.Store, msg.Task)
		m.confirm.SetSize(m.width, m.height)
		return m, m.confirm.Init()

	case tea.KeyMsg:
		if m.tooSmall() {
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewList:
		m.list, cmd = m.list.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewConfirmDelete:
		m.confirm, cmd = m.confirm.Update(msg)
	}
	return m, cmd
}

func (m Model) tooSmall() bool {
	return m.width < MinTerminalWidth || m.height < MinTerminalHeight
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.tooSmall() {
		return m.renderTerminalTooSmall()
	}

	switch m.currentView {
	case ViewForm:
		return m.form.View()
	case ViewConfirmDelete:
		return m.confirm.View()
	default:
		return m.list.View()
	}
}

func (m Model) renderTerminalTooSmall() string {
	msg := styles.ErrorStyle.Render("Terminal too small") + "\n\n" +
		styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)) + "\n" +
		styles.SubtleStyle.Render(fmt.Sprintf("Current: %dx%d", m.width, m.height))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

// CurrentView returns the active screen.
func (m Model) CurrentView() View {
	return m.currentView
}
