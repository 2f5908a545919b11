// Package styles defines shared lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/taskdeck/internal/task"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors
	warningColor   = lipgloss.Color("#D7AF5F") // Amber

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// SectionStyle for field labels and group headings
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for selected items in lists
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// DoneStyle for completed task titles
	DoneStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(secondaryColor)

	// StatusBarStyle for bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// BoxStyle for panel borders
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(secondaryColor).
			Padding(1, 2)

	// CardStyle for the stat cards above the task list
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1).
			Align(lipgloss.Center)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// WarningStyle for prompts that need attention
	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)
)

// PriorityStyle returns the badge style for p.
func PriorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	case task.PriorityMedium:
		return lipgloss.NewStyle().Foreground(warningColor)
	case task.PriorityLow:
		return lipgloss.NewStyle().Foreground(successColor)
	}
	return SubtleStyle
}
