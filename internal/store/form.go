package store

import "github.com/pablasso/taskdeck/internal/task"

// FormState is the state of the create/edit form: Idle, Editing or
// Submitting. The draft exists only in Editing and Submitting.
type FormState interface {
	formState()
}

// Idle means no form is open.
type Idle struct{}

// Editing means a draft is open for input. TaskID is empty for a new task.
type Editing struct {
	TaskID task.ID
	Draft  task.Draft
}

// Submitting means the draft has been sent and a response is pending.
type Submitting struct {
	TaskID task.ID
	Draft  task.Draft
}

func (Idle) formState()       {}
func (Editing) formState()    {}
func (Submitting) formState() {}

// IsNew reports whether the form creates a task rather than editing one.
func (e Editing) IsNew() bool {
	return e.TaskID == ""
}

// IsNew reports whether the form creates a task rather than editing one.
func (s Submitting) IsNew() bool {
	return s.TaskID == ""
}
