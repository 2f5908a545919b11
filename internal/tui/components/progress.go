package components

import (
	"fmt"
	"strings"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// Progress renders a completion bar like: ■■■■□□□□ 50%
type Progress struct {
	Percent int
	Width   int // character width of the bar portion
}

// NewProgress creates a Progress for an already rounded percentage.
func NewProgress(percent, width int) Progress {
	return Progress{Percent: percent, Width: width}
}

// View returns the rendered bar. The label always shows Percent as given;
// only the bar itself is clamped to [0, Width].
func (p Progress) View() string {
	if p.Width <= 0 {
		return fmt.Sprintf("%d%%", p.Percent)
	}

	filled := p.Percent * p.Width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}

	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, p.Width-filled)
	return fmt.Sprintf("%s %d%%", bar, p.Percent)
}
