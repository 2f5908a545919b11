// Package store holds the task collection, mediates every call to the
// backend, and derives the filtered and aggregate views the UI renders.
//
// The collection is only ever replaced wholesale by a refresh; mutations
// never patch it locally, so what is shown is always what the backend last
// reported.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/pablasso/taskdeck/internal/api"
	"github.com/pablasso/taskdeck/internal/logging"
	"github.com/pablasso/taskdeck/internal/task"
)

// Store owns the task collection for one UI session.
type Store struct {
	backend api.Backend

	// opMu serializes operations so that no two run at once.
	opMu sync.Mutex

	mu     sync.RWMutex
	tasks  []task.Task
	filter task.Filter
	notice Notice
	loaded bool
	form   FormState
}

// New creates an empty store talking to backend.
func New(backend api.Backend) *Store {
	return &Store{
		backend: backend,
		filter:  task.FilterAll,
		form:    Idle{},
	}
}

// Refresh replaces the collection with the backend's current list. On
// failure the collection is emptied and a LoadError is reported.
func (s *Store) Refresh(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.ClearNotice()
	return s.refresh(ctx)
}

func (s *Store) refresh(ctx context.Context) error {
	tasks, err := s.backend.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true

	if err != nil {
		s.tasks = nil
		e := &Error{Kind: KindLoad, Message: MsgLoadFailed, Err: err}
		s.notice = errorNotice(e)
		logging.Errorf("refresh failed: %v", err)
		return e
	}

	s.tasks = tasks
	logging.Debugf("refreshed %d tasks", len(tasks))
	return nil
}

// Create validates d and submits it as a new task.
func (s *Store) Create(ctx context.Context, d task.Draft) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.ClearNotice()
	return s.save(ctx, "", d)
}

// Update validates d and submits it as the full set of editable fields of id.
func (s *Store) Update(ctx context.Context, id task.ID, d task.Draft) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.ClearNotice()
	return s.save(ctx, id, d)
}

// save runs a create (empty id) or an update. Validation happens before any
// request; a backend rejection carries the backend's own message.
func (s *Store) save(ctx context.Context, id task.ID, d task.Draft) error {
	if err := d.Validate(); err != nil {
		e := &Error{Kind: KindValidation, Message: err.Error(), Err: err}
		s.setError(e)
		return e
	}

	d = d.Normalized()
	var err error
	if id == "" {
		_, err = s.backend.Create(ctx, d)
	} else {
		_, err = s.backend.Update(ctx, id, d)
	}
	if err != nil {
		msg := api.BackendMessage(err)
		if msg == "" {
			msg = MsgOperationFailed
		}
		e := &Error{Kind: KindBackendRejection, Message: msg, Err: err}
		s.setError(e)
		logging.Errorf("save task %q failed: %v", id, err)
		return e
	}

	s.mu.Lock()
	if id == "" {
		s.notice = successNotice(MsgCreated)
	} else {
		s.notice = successNotice(MsgUpdated)
	}
	s.mu.Unlock()

	return s.refresh(ctx)
}

// SetStatus marks task id complete or incomplete with a partial update.
// On failure the collection is left as it was.
func (s *Store) SetStatus(ctx context.Context, id task.ID, status bool) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.ClearNotice()
	return s.setStatus(ctx, id, status)
}

// Toggle flips the completion status of task id.
func (s *Store) Toggle(ctx context.Context, id task.ID) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.ClearNotice()
	t, ok := s.Lookup(id)
	if !ok {
		e := &Error{Kind: KindMutation, Message: MsgStatusUpdateFailed, Err: ErrUnknownTask}
		s.setError(e)
		return e
	}
	return s.setStatus(ctx, id, !t.Status)
}

func (s *Store) setStatus(ctx context.Context, id task.ID, status bool) error {
	if _, err := s.backend.UpdateStatus(ctx, id, status); err != nil {
		e := &Error{Kind: KindMutation, Message: MsgStatusUpdateFailed, Err: err}
		s.setError(e)
		logging.Errorf("set status of task %q failed: %v", id, err)
		return e
	}
	return s.refresh(ctx)
}

// Delete removes task id. confirmed must reflect an explicit user
// confirmation; without it nothing is sent and ErrNotConfirmed is returned.
func (s *Store) Delete(ctx context.Context, id task.ID, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.ClearNotice()
	if err := s.backend.Delete(ctx, id); err != nil {
		e := &Error{Kind: KindMutation, Message: MsgDeleteFailed, Err: err}
		s.setError(e)
		logging.Errorf("delete task %q failed: %v", id, err)
		return e
	}

	s.mu.Lock()
	s.notice = successNotice(MsgDeleted)
	s.mu.Unlock()

	return s.refresh(ctx)
}

// Tasks returns a copy of the collection in backend order.
func (s *Store) Tasks() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]task.Task(nil), s.tasks...)
}

// Visible returns the tasks that pass the active filter.
func (s *Store) Visible() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return task.ApplyFilter(s.tasks, s.filter)
}

// Stats derives the aggregate counters from the full collection.
func (s *Store) Stats() task.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return task.DeriveStats(s.tasks)
}

// Filter returns the active filter.
func (s *Store) Filter() task.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter changes the active filter.
func (s *Store) SetFilter(f task.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Lookup finds task id in the collection.
func (s *Store) Lookup(id task.ID) (task.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// Loaded reports whether at least one refresh has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Notice returns the active message.
func (s *Store) Notice() Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notice
}

// ClearNotice dismisses the active message.
func (s *Store) ClearNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = Notice{}
}

func (s *Store) setError(e *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = errorNotice(e)
}

// IsUserError reports whether err is one of the store's classified failures
// rather than a programming error such as ErrNoForm.
func IsUserError(err error) bool {
	var se *Error
	return errors.As(err, &se)
}
