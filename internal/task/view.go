package task

import "strings"

// Filter is a client-side view predicate over the task collection.
type Filter string

// Filter values
const (
	FilterAll       Filter = "All"
	FilterActive    Filter = "Active"
	FilterCompleted Filter = "Completed"
	FilterHigh      Filter = "High"
	FilterMedium    Filter = "Medium"
	FilterLow       Filter = "Low"
)

// Filters lists the filters in the order the UI presents them.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted, FilterHigh, FilterMedium, FilterLow}

// ParseFilter maps s onto a predefined filter, ignoring case. Unrecognized
// values are returned unchanged and behave like FilterAll.
func ParseFilter(s string) Filter {
	for _, known := range Filters {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known
		}
	}
	return Filter(s)
}

// Known reports whether f is one of the predefined filters.
func (f Filter) Known() bool {
	for _, known := range Filters {
		if f == known {
			return true
		}
	}
	return false
}

// Match reports whether t passes the filter. Unknown filters match everything.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Status
	case FilterCompleted:
		return t.Status
	case FilterLow, FilterMedium, FilterHigh:
		return t.Priority == Priority(f)
	default:
		return true
	}
}

// ApplyFilter returns the tasks that pass f, in their original order.
// The input slice is never modified.
func ApplyFilter(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Stats are the aggregate counters shown above the task list.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completionRate"`
}

// DeriveStats counts tasks and computes the completion percentage,
// rounded half up to the nearest integer.
func DeriveStats(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = (200*s.Completed + s.Total) / (2 * s.Total)
	}
	return s
}
