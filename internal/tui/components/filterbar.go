package components

import (
	"strconv"
	"strings"

	"github.com/pablasso/taskdeck/internal/task"
	"github.com/pablasso/taskdeck/internal/tui/styles"
)

// FilterBar renders the filter choices as a row of tabs with the active one
// highlighted. Each tab is prefixed with its number key.
type FilterBar struct {
	Active task.Filter
}

// NewFilterBar creates a FilterBar with active highlighted.
func NewFilterBar(active task.Filter) FilterBar {
	return FilterBar{Active: active}
}

// Render returns the tab row.
func (f FilterBar) Render() string {
	active := f.Active
	if !active.Known() {
		active = task.FilterAll
	}

	tabs := make([]string, len(task.Filters))
	for i, filter := range task.Filters {
		label := strconv.Itoa(i+1) + " " + string(filter)
		if filter == active {
			tabs[i] = styles.SelectedStyle.Render("[" + label + "]")
		} else {
			tabs[i] = styles.SubtleStyle.Render(" " + label + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// FilterForKey maps the number keys "1".."6" onto task.Filters.
func FilterForKey(key string) (task.Filter, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(task.Filters) {
		return "", false
	}
	return task.Filters[n-1], true
}

// NextFilter returns the filter after f, wrapping around. A step of -1
// moves backwards.
func NextFilter(f task.Filter, step int) task.Filter {
	idx := 0
	for i, filter := range task.Filters {
		if filter == f {
			idx = i
			break
		}
	}
	n := len(task.Filters)
	return task.Filters[((idx+step)%n+n)%n]
}
