package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is the phase of an admin Screen.
type State int

const (
	Loading State = iota
	Listing
	Editing
	Saving
	Deleting
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Listing:
		return "listing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case Deleting:
		return "deleting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrInvalidTransition is returned when an action is not allowed in the
// screen's current state. The state is left unchanged.
var ErrInvalidTransition = errors.New("invalid screen transition")

// Source is the collection a Screen edits. *Resource satisfies it.
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, row T) (T, error)
	Update(ctx context.Context, id string, row T) (T, error)
	Delete(ctx context.Context, id string) error
}

type cloner[T any] interface {
	Clone() T
}

// Screen keeps a local copy of one collection in step with the server.
// Every change goes through an explicit round trip followed by a full
// refetch; there is no optimistic update and no polling.
type Screen[T Entity] struct {
	source Source[T]

	mu        sync.Mutex
	state     State
	rows      []T
	draft     T
	editingID string
	err       error
}

// NewScreen creates a screen in the Loading state. Call Load to fill it.
func NewScreen[T Entity](source Source[T]) *Screen[T] {
	return &Screen[T]{source: source, state: Loading, rows: []T{}}
}

func (s *Screen[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rows returns a copy of the listed rows.
func (s *Screen[T]) Rows() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T{}, s.rows...)
}

// Err returns the error of the last failed action, if any.
func (s *Screen[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Draft returns the form contents while editing.
func (s *Screen[T]) Draft() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// EditingID is the id of the row being edited, or "" in create mode.
func (s *Screen[T]) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// SetDraft replaces the form contents. Only allowed while Editing.
func (s *Screen[T]) SetDraft(draft T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing {
		return s.invalid("edit draft")
	}
	s.draft = draft
	return nil
}

// Load fetches the collection. A failed fetch leaves an empty list and
// records the error.
func (s *Screen[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Loading && s.state != Listing {
		defer s.mu.Unlock()
		return s.invalid("load")
	}
	s.state = Loading
	s.mu.Unlock()

	return s.refetch(ctx)
}

// OpenCreate opens a blank form.
func (s *Screen[T]) OpenCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Listing {
		return s.invalid("open create form")
	}

	var blank T
	s.draft = normalize(blank)
	s.editingID = ""
	s.err = nil
	s.state = Editing
	return nil
}

// OpenEdit opens the form pre-filled from the listed row with the given id.
func (s *Screen[T]) OpenEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Listing {
		return s.invalid("open edit form")
	}

	for _, row := range s.rows {
		if row.Key() == id {
			s.draft = normalize(row)
			s.editingID = id
			s.err = nil
			s.state = Editing
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Cancel closes the form without saving.
func (s *Screen[T]) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing {
		return s.invalid("cancel")
	}
	s.state = Listing
	s.editingID = ""
	return nil
}

// Submit saves the draft. On success the list is refetched; on failure the
// form stays open with the draft untouched and the error recorded.
func (s *Screen[T]) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Editing {
		defer s.mu.Unlock()
		return s.invalid("submit")
	}
	s.state = Saving
	draft, id := s.draft, s.editingID
	s.mu.Unlock()

	var err error
	if id == "" {
		_, err = s.source.Create(ctx, draft)
	} else {
		_, err = s.source.Update(ctx, id, draft)
	}

	s.mu.Lock()
	if err != nil {
		s.state = Editing
		s.err = err
		s.mu.Unlock()
		return err
	}
	s.state = Loading
	s.editingID = ""
	s.err = nil
	s.mu.Unlock()

	return s.refetch(ctx)
}

// Delete removes the row with the given id once confirm approves it.
// A declined confirmation makes no call.
func (s *Screen[T]) Delete(ctx context.Context, id string, confirm func(T) bool) error {
	s.mu.Lock()
	if s.state != Listing {
		defer s.mu.Unlock()
		return s.invalid("delete")
	}

	var (
		target T
		found  bool
	)
	for _, row := range s.rows {
		if row.Key() == id {
			target, found = row, true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.state = Deleting
	s.mu.Unlock()

	if confirm != nil && !confirm(target) {
		s.setState(Listing)
		return nil
	}

	if err := s.source.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.state = Listing
		s.err = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.state = Loading
	s.err = nil
	s.mu.Unlock()
	return s.refetch(ctx)
}

func (s *Screen[T]) refetch(ctx context.Context) error {
	rows, err := s.source.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Listing
	if err != nil {
		s.rows = []T{}
		s.err = err
		return err
	}
	if rows == nil {
		rows = []T{}
	}
	s.rows = rows
	return nil
}

func (s *Screen[T]) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *Screen[T]) invalid(action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, s.state)
}

func normalize[T any](row T) T {
	if c, ok := any(row).(cloner[T]); ok {
		return c.Clone()
	}
	return row
}
