// Package msgs defines shared message types for TUI view transitions.
package msgs

import "github.com/pablasso/taskdeck/internal/task"

// View transition messages

// GoToListMsg signals transition to the task list view.
type GoToListMsg struct{}

// GoToFormMsg signals that the store's form has been opened and the form
// view should be shown.
type GoToFormMsg struct{}

// GoToConfirmDeleteMsg asks the user to confirm deleting Task.
type GoToConfirmDeleteMsg struct {
	Task task.Task
}

// Op names a store operation run in the background.
type Op int

// Store operations
const (
	OpRefresh Op = iota
	OpToggle
	OpSubmit
	OpDelete
)

// StoreUpdatedMsg is sent when a background store operation finishes. The
// store already holds the outcome; Err is kept for views that branch on it.
type StoreUpdatedMsg struct {
	Op  Op
	Err error
}
