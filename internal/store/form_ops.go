package store

import (
	"context"

	"github.com/pablasso/taskdeck/internal/task"
)

// Form returns the current form state.
func (s *Store) Form() FormState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.form
}

// BeginCreate opens the form with an empty draft.
func (s *Store) BeginCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.form.(Submitting); busy {
		return ErrNoForm
	}
	s.form = Editing{Draft: task.NewDraft()}
	return nil
}

// BeginEdit opens the form seeded with the fields of task id.
func (s *Store) BeginEdit(id task.ID) error {
	t, ok := s.Lookup(id)
	if !ok {
		return ErrUnknownTask
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.form.(Submitting); busy {
		return ErrNoForm
	}
	s.form = Editing{TaskID: id, Draft: task.DraftFromTask(t)}
	return nil
}

// EditDraft applies fn to the open draft.
func (s *Store) EditDraft(fn func(*task.Draft)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ed, ok := s.form.(Editing)
	if !ok {
		return ErrNoForm
	}
	fn(&ed.Draft)
	s.form = ed
	return nil
}

// Submit sends the open draft. On success the form returns to Idle and the
// draft is discarded; on a validation error or backend rejection the form
// goes back to Editing with the draft intact so it can be corrected.
func (s *Store) Submit(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	ed, ok := s.form.(Editing)
	if !ok {
		s.mu.Unlock()
		return ErrNoForm
	}
	s.form = Submitting{TaskID: ed.TaskID, Draft: ed.Draft}
	s.notice = Notice{}
	s.mu.Unlock()

	err := s.save(ctx, ed.TaskID, ed.Draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	// A failed refresh after a successful save still closes the form.
	if err == nil || KindOf(err) == KindLoad {
		s.form = Idle{}
	} else {
		s.form = ed
	}
	return err
}

// Cancel closes the form and discards the draft.
func (s *Store) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.form.(Editing); ok {
		s.form = Idle{}
	}
}
