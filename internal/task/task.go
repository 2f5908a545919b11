// Package task defines the task record, the editable draft, and the pure
// view derivations (filtering and statistics) used by the store and the UI.
package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is the backend-assigned task identifier. The backend may send it as a
// JSON number or a string; it is kept verbatim and never interpreted.
type ID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id %s: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Priority is one of Low, Medium or High.
type Priority string

// Priority values
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority returns the canonical priority for s, ignoring case.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid priority %q (valid: Low, Medium, High)", s)
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Next returns the following priority, wrapping from High to Low.
func (p Priority) Next() Priority {
	for i, known := range Priorities {
		if p == known {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

// Prev returns the preceding priority, wrapping from Low to High.
func (p Priority) Prev() Priority {
	for i, known := range Priorities {
		if p == known {
			return Priorities[(i+len(Priorities)-1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

// Task is a single to-do item as returned by the backend.
type Task struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"due_date"`
	Status      bool     `json:"status"`
	CreatedDate string   `json:"created_date"`
}

// HasDueDate reports whether the task carries a due date.
func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}
