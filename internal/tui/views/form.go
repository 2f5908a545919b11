package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/taskdeck/internal/store"
	"github.com/pablasso/taskdeck/internal/task"
	"github.com/pablasso/taskdeck/internal/tui/components"
	"github.com/pablasso/taskdeck/internal/tui/msgs"
	"github.com/pablasso/taskdeck/internal/tui/styles"
)

// FormField identifies an input on the task form.
type FormField int

// Form fields in tab order
const (
	FieldTitle FormField = iota
	FieldDescription
	FieldPriority
	FieldDueDate
	fieldCount
)

// FormModel edits the store's open draft. The draft itself lives in the
// store; the text inputs mirror it and push every change back.
type FormModel struct {
	ctx   context.Context
	store *store.Store

	title       textinput.Model
	description textinput.Model
	dueDate     textinput.Model
	priority    task.Priority
	focus       FormField
	isNew       bool
	submitting  bool

	spinner spinner.Model

	width  int
	height int
}

// NewFormModel creates a form view seeded from the store's open draft.
func NewFormModel(ctx context.Context, st *store.Store) FormModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	m := FormModel{
		ctx:         ctx,
		store:       st,
		title:       newInput("What needs to be done?", 200),
		description: newInput("Optional details", 1000),
		dueDate:     newInput(task.DateLayout, len(task.DateLayout)),
		priority:    task.PriorityMedium,
		isNew:       true,
		spinner:     s,
	}

	if ed, ok := st.Form().(store.Editing); ok {
		m.isNew = ed.IsNew()
		m.title.SetValue(ed.Draft.Title)
		m.description.SetValue(ed.Draft.Description)
		m.dueDate.SetValue(ed.Draft.DueDate)
		if ed.Draft.Priority.Valid() {
			m.priority = ed.Draft.Priority
		}
	}
	m.title.Focus()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "> "
	ti.Width = 50
	return ti
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case msgs.StoreUpdatedMsg:
		if msg.Op != msgs.OpSubmit {
			return m, nil
		}
		m.submitting = false
		if _, open := m.store.Form().(store.Editing); open {
			return m, nil
		}
		return m, func() tea.Msg { return msgs.GoToListMsg{} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m FormModel) handleKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	if m.submitting {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.store.Cancel()
		return m, func() tea.Msg { return msgs.GoToListMsg{} }
	case "tab", "down":
		return m.setFocus((m.focus + 1) % fieldCount), nil
	case "shift+tab", "up":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
	case "enter", "ctrl+s":
		return m.submit()
	}

	if m.focus == FieldPriority {
		switch msg.String() {
		case "left", "h":
			m.priority = m.priority.Prev()
		case "right", "l", " ", "space":
			m.priority = m.priority.Next()
		}
		m.sync()
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m FormModel) updateFocused(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FieldTitle:
		m.title, cmd = m.title.Update(msg)
	case FieldDescription:
		m.description, cmd = m.description.Update(msg)
	case FieldDueDate:
		m.dueDate, cmd = m.dueDate.Update(msg)
	}
	m.sync()
	return m, cmd
}

func (m FormModel) setFocus(f FormField) FormModel {
	m.focus = f
	m.title.Blur()
	m.description.Blur()
	m.dueDate.Blur()
	switch f {
	case FieldTitle:
		m.title.Focus()
	case FieldDescription:
		m.description.Focus()
	case FieldDueDate:
		m.dueDate.Focus()
	}
	return m
}

// sync pushes the inputs into the store's draft.
func (m FormModel) sync() {
	_ = m.store.EditDraft(func(d *task.Draft) {
		d.Title = m.title.Value()
		d.Description = m.description.Value()
		d.Priority = m.priority
		d.DueDate = m.dueDate.Value()
	})
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	m.sync()
	m.submitting = true
	return m, tea.Batch(m.spinner.Tick, storeCmd(m.ctx, msgs.OpSubmit, m.store.Submit))
}

// Focus returns the focused field.
func (m FormModel) Focus() FormField {
	return m.focus
}

// Priority returns the selected priority.
func (m FormModel) Priority() task.Priority {
	return m.priority
}

// Submitting reports whether a save is in flight.
func (m FormModel) Submitting() bool {
	return m.submitting
}

// SetSize updates the model dimensions.
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	inputWidth := min(max(width-8, 10), 60)
	m.title.Width = inputWidth
	m.description.Width = inputWidth
}

// View implements tea.Model.
func (m FormModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	heading := "Edit Task"
	if m.isNew {
		heading = "New Task"
	}
	b.WriteString(styles.TitleStyle.Render(heading))
	b.WriteString("\n")

	b.WriteString(m.label("Title", FieldTitle))
	b.WriteString(m.title.View() + "\n\n")
	b.WriteString(m.label("Description", FieldDescription))
	b.WriteString(m.description.View() + "\n\n")
	b.WriteString(m.label("Priority", FieldPriority))
	b.WriteString(m.renderPriority() + "\n\n")
	b.WriteString(m.label("Due date", FieldDueDate))
	b.WriteString(m.dueDate.View() + "\n\n")

	if m.submitting {
		b.WriteString(m.spinner.View() + styles.SubtleStyle.Render(" Saving..."))
	} else {
		b.WriteString(renderNotice(m.store.Notice()))
	}
	b.WriteString("\n")

	content := b.String()
	lines := strings.Count(content, "\n")
	if pad := m.height - lines - 1; pad > 0 {
		content += strings.Repeat("\n", pad)
	}

	items := []string{"tab Next field", "←→ Priority", "enter Save", "esc Cancel"}
	return content + components.NewStatusBar().Render(m.width, items)
}

func (m FormModel) label(text string, f FormField) string {
	if m.focus == f {
		return styles.SelectedStyle.Render(text) + "\n"
	}
	return styles.SectionStyle.Render(text) + "\n"
}

func (m FormModel) renderPriority() string {
	opts := make([]string, len(task.Priorities))
	for i, p := range task.Priorities {
		if p == m.priority {
			opts[i] = styles.PriorityStyle(p).Render("(•) " + string(p))
		} else {
			opts[i] = styles.SubtleStyle.Render("( ) " + string(p))
		}
	}
	return "  " + strings.Join(opts, "  ")
}
