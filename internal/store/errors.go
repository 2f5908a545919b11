package store

import (
	"errors"
	"fmt"
)

// Kind classifies the failures the store reports to the UI.
type Kind int

const (
	// KindLoad is a fetch or parse failure during Refresh.
	KindLoad Kind = iota + 1
	// KindValidation is a draft rejected locally before any request.
	KindValidation
	// KindBackendRejection is a failed create or update; the message is the backend's.
	KindBackendRejection
	// KindMutation is a failed delete or status change with a generic message.
	KindMutation
)

func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "LoadError"
	case KindValidation:
		return "ValidationError"
	case KindBackendRejection:
		return "BackendRejection"
	case KindMutation:
		return "MutationError"
	default:
		return "Unknown"
	}
}

// User-facing messages
const (
	MsgLoadFailed         = "Unable to load tasks. Make sure the backend is running."
	MsgOperationFailed    = "Operation failed"
	MsgStatusUpdateFailed = "Failed to update task status"
	MsgDeleteFailed       = "Failed to delete task"
	MsgCreated            = "Task created successfully"
	MsgUpdated            = "Task updated successfully"
	MsgDeleted            = "Task deleted successfully"
)

var (
	// ErrNotConfirmed is returned by Delete when the user did not confirm.
	ErrNotConfirmed = errors.New("delete not confirmed")
	// ErrNoForm is returned by form operations outside the Editing state.
	ErrNoForm = errors.New("no form is being edited")
	// ErrUnknownTask is returned when an id is not in the collection.
	ErrUnknownTask = errors.New("task not found")
)

// Error is a failure surfaced to the presentation layer. Message is what
// the user sees; Err is the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or 0 when err is not a store Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
