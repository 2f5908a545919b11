package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/taskdeck/internal/store"
	"github.com/pablasso/taskdeck/internal/task"
	"github.com/pablasso/taskdeck/internal/tui/components"
	"github.com/pablasso/taskdeck/internal/tui/msgs"
	"github.com/pablasso/taskdeck/internal/tui/styles"
)

// ListModel shows the filtered task list with the summary cards above it.
type ListModel struct {
	ctx   context.Context
	store *store.Store

	cursor int
	offset int
	busy   bool

	spinner spinner.Model

	width  int
	height int
}

// NewListModel creates the list view over st.
func NewListModel(ctx context.Context, st *store.Store) ListModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return ListModel{
		ctx:     ctx,
		store:   st,
		spinner: s,
		busy:    true,
	}
}

// Init implements tea.Model. It starts the initial load.
func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, storeCmd(m.ctx, msgs.OpRefresh, m.store.Refresh))
}

// Update implements tea.Model.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clamp()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case msgs.StoreUpdatedMsg:
		m.busy = false
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ListModel) handleKey(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.clamp()
		return m, nil
	case "down", "j":
		m.cursor++
		m.clamp()
		return m, nil
	case "home", "g":
		m.cursor = 0
		m.clamp()
		return m, nil
	case "end", "G":
		m.cursor = len(m.store.Visible()) - 1
		m.clamp()
		return m, nil
	case "tab", "right", "l":
		return m.setFilter(components.NextFilter(m.store.Filter(), 1))
	case "shift+tab", "left", "h":
		return m.setFilter(components.NextFilter(m.store.Filter(), -1))
	case "esc":
		m.store.ClearNotice()
		return m, nil
	}

	if f, ok := components.FilterForKey(key); ok {
		return m.setFilter(f)
	}

	// Everything below talks to the backend; wait for the previous call.
	if m.busy {
		return m, nil
	}

	switch key {
	case "r":
		return m.run(msgs.OpRefresh, m.store.Refresh)
	case "n":
		if err := m.store.BeginCreate(); err != nil {
			return m, nil
		}
		return m, func() tea.Msg { return msgs.GoToFormMsg{} }
	case " ", "space", "x":
		t, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m.run(msgs.OpToggle, func(ctx context.Context) error {
			return m.store.Toggle(ctx, t.ID)
		})
	case "e", "enter":
		t, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if err := m.store.BeginEdit(t.ID); err != nil {
			return m, nil
		}
		return m, func() tea.Msg { return msgs.GoToFormMsg{} }
	case "d", "delete":
		t, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return msgs.GoToConfirmDeleteMsg{Task: t} }
	}
	return m, nil
}

func (m ListModel) run(op msgs.Op, fn func(context.Context) error) (ListModel, tea.Cmd) {
	m.busy = true
	return m, tea.Batch(m.spinner.Tick, storeCmd(m.ctx, op, fn))
}

func (m ListModel) setFilter(f task.Filter) (ListModel, tea.Cmd) {
	m.store.SetFilter(f)
	m.cursor = 0
	m.offset = 0
	return m, nil
}

// clamp keeps the cursor on a visible row and scrolls the window to it.
func (m *ListModel) clamp() {
	n := len(m.store.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.listHeight()
	if rows <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset > max(n-rows, 0) {
		m.offset = max(n-rows, 0)
	}
}

// Selected returns the task under the cursor.
func (m ListModel) Selected() (task.Task, bool) {
	visible := m.store.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return task.Task{}, false
	}
	return visible[m.cursor], true
}

// Cursor returns the current cursor position.
func (m ListModel) Cursor() int {
	return m.cursor
}

// Busy reports whether a backend call is in flight.
func (m ListModel) Busy() bool {
	return m.busy
}

// SetSize updates the model dimensions.
func (m *ListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clamp()
}

// Sync re-clamps the cursor after the collection changed elsewhere.
func (m *ListModel) Sync() {
	m.busy = false
	m.clamp()
}

func (m ListModel) header() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("TaskDeck"))
	b.WriteString("\n")
	b.WriteString(components.RenderStats(m.store.Stats(), m.width))
	b.WriteString("\n\n")
	b.WriteString(components.NewFilterBar(m.store.Filter()).Render())
	b.WriteString("\n")
	if notice := renderNotice(m.store.Notice()); notice != "" {
		b.WriteString(notice)
	} else if m.busy {
		b.WriteString(m.spinner.View() + styles.SubtleStyle.Render(" Working..."))
	}
	b.WriteString("\n")
	return b.String()
}

// listHeight is the number of task rows that fit between the header and
// the status bar.
func (m ListModel) listHeight() int {
	if m.height == 0 {
		return 0
	}
	return m.height - lipgloss.Height(m.header()) - 1
}

// View implements tea.Model.
func (m ListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	header := m.header()
	b.WriteString(header)

	rows := m.listHeight()
	body := m.renderRows(rows)
	b.WriteString(body)

	used := lipgloss.Height(header) + lipgloss.Height(body)
	if pad := m.height - used - 1; pad > 0 {
		b.WriteString(strings.Repeat("\n", pad))
	}
	b.WriteString("\n")

	items := []string{"↑↓ Navigate", "space Toggle", "n New", "e Edit", "d Delete", "1-6 Filter", "r Refresh", "q Quit"}
	b.WriteString(components.NewStatusBar().Render(m.width, items))

	return b.String()
}

func (m ListModel) renderRows(rows int) string {
	if rows <= 0 {
		return ""
	}

	if !m.store.Loaded() {
		return m.spinner.View() + styles.SubtleStyle.Render(" Loading tasks...")
	}

	visible := m.store.Visible()
	if len(visible) == 0 {
		if len(m.store.Tasks()) == 0 {
			return styles.SubtleStyle.Render("No tasks yet. Press n to create one.")
		}
		return styles.SubtleStyle.Render("No tasks match this filter.")
	}

	end := min(m.offset+rows, len(visible))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(visible[i], i == m.cursor))
	}
	list := strings.Join(lines, "\n")

	bar := components.RenderScrollbar(len(lines), len(visible), m.offset)
	if len(visible) <= rows {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(m.width-2).Render(list), " ", bar)
}

func (m ListModel) renderRow(t task.Task, selected bool) string {
	check := "[ ]"
	title := t.Title
	if t.Status {
		check = "[x]"
		title = styles.DoneStyle.Render(title)
	}

	prefix := "  "
	if selected {
		prefix = styles.SelectedStyle.Render("> ")
		if !t.Status {
			title = styles.SelectedStyle.Render(title)
		}
	}

	line := prefix + check + " " + title + "  " + styles.PriorityStyle(t.Priority).Render(string(t.Priority))
	if t.HasDueDate() {
		line += styles.SubtleStyle.Render("  due " + t.DueDate)
	}
	if desc := strings.TrimSpace(t.Description); desc != "" {
		room := m.width - lipgloss.Width(line) - 4
		if room > 8 {
			line += styles.SubtleStyle.Render("  " + truncate(desc, room))
		}
	}
	return line
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
