package components

import "strings"

// RenderScrollbar renders a 1-column vertical scrollbar for a window of
// viewHeight rows over contentHeight rows starting at yOffset. When all
// content fits, a blank gutter of the same height is returned so the
// layout width stays stable.
func RenderScrollbar(viewHeight, contentHeight, yOffset int) string {
	if viewHeight <= 0 {
		return ""
	}

	const (
		track = "│"
		thumb = "█"
	)

	if contentHeight <= viewHeight {
		return strings.Repeat(" \n", viewHeight-1) + " "
	}

	thumbSize := max(viewHeight*viewHeight/contentHeight, 1)
	maxOffset := contentHeight - viewHeight
	thumbTop := min(max(yOffset, 0), maxOffset) * (viewHeight - thumbSize) / maxOffset

	rows := make([]string, viewHeight)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbSize {
			rows[i] = thumb
		} else {
			rows[i] = track
		}
	}
	return strings.Join(rows, "\n")
}
