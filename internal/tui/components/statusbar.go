package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/taskdeck/internal/tui/styles"
)

// StatusBar renders a bottom help bar showing contextual key hints.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar for the given width and items. Items are
// joined with " • " and trailing items are dropped when they do not fit.
func (s StatusBar) Render(width int, items []string) string {
	style := styles.StatusBarStyle.Width(width)
	if len(items) == 0 {
		return style.Render("")
	}

	content := items[0]
	for _, item := range items[1:] {
		next := content + " • " + item
		if width > 0 && lipgloss.Width(next) > width {
			break
		}
		content = next
	}

	return style.Render(strings.TrimSpace(content))
}
