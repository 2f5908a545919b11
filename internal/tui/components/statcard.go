package components

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/taskdeck/internal/task"
	"github.com/pablasso/taskdeck/internal/tui/styles"
)

// StatCard is a small bordered box showing one aggregate value.
type StatCard struct {
	Label string
	Value string
	Width int
}

// Render returns the card as a multi-line string.
func (c StatCard) Render() string {
	value := styles.SelectedStyle.Render(c.Value)
	label := styles.SubtleStyle.Render(c.Label)
	style := styles.CardStyle
	if c.Width > 0 {
		style = style.Width(c.Width)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Center, value, label))
}

// StatCards builds the four summary cards for s.
func StatCards(s task.Stats, cardWidth int) []StatCard {
	return []StatCard{
		{Label: "Total", Value: strconv.Itoa(s.Total), Width: cardWidth},
		{Label: "Completed", Value: strconv.Itoa(s.Completed), Width: cardWidth},
		{Label: "Pending", Value: strconv.Itoa(s.Pending), Width: cardWidth},
		{Label: "Progress", Value: strconv.Itoa(s.CompletionRate) + "%", Width: cardWidth},
	}
}

// RenderStats lays the summary cards out in a row. When the row would be
// wider than width, a single compact line is returned instead.
func RenderStats(s task.Stats, width int) string {
	const cardWidth = 13

	cards := StatCards(s, cardWidth)
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = c.Render()
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if width > 0 && lipgloss.Width(row) > width {
		return styles.SubtleStyle.Render(CompactStats(s))
	}
	return row
}

// CompactStats formats s on one line.
func CompactStats(s task.Stats) string {
	return strconv.Itoa(s.Total) + " total • " +
		strconv.Itoa(s.Completed) + " completed • " +
		strconv.Itoa(s.Pending) + " pending • " +
		strconv.Itoa(s.CompletionRate) + "% done"
}
