package task

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for due dates.
const DateLayout = "2006-01-02"

// Draft holds the editable fields of a task before it is submitted.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"due_date"`
}

// NewDraft returns an empty draft with the default Medium priority.
func NewDraft() Draft {
	return Draft{Priority: PriorityMedium}
}

// DraftFromTask seeds a draft with the editable fields of t.
func DraftFromTask(t Task) Draft {
	d := Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
	}
	if !d.Priority.Valid() {
		d.Priority = PriorityMedium
	}
	return d
}

// ValidationError reports a draft field that failed local validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the draft before it is sent anywhere.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Message: "Title is required"}
	}
	if !d.Priority.Valid() {
		return &ValidationError{
			Field:   "priority",
			Message: fmt.Sprintf("Priority must be Low, Medium or High, got %q", d.Priority),
		}
	}
	if d.DueDate != "" {
		if _, err := time.Parse(DateLayout, d.DueDate); err != nil {
			return &ValidationError{
				Field:   "due_date",
				Message: fmt.Sprintf("Due date must be YYYY-MM-DD, got %q", d.DueDate),
			}
		}
	}
	return nil
}

// Normalized returns a copy with surrounding whitespace trimmed.
func (d Draft) Normalized() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.DueDate = strings.TrimSpace(d.DueDate)
	return d
}
