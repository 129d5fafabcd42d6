package schema

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"supaboard/internal/apperrors"
)

// State is a step of the table authoring flow.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

var (
	ErrSubmitting    = errors.New("a submission is in progress")
	ErrInvalidDraft  = errors.New("draft has validation errors")
	ErrColumnMissing = errors.New("column does not exist")
)

// PersistFunc stores a validated draft.
type PersistFunc func(ctx context.Context, draft TableDraft) error

// Editor models the table authoring flow:
//
//	Idle -> Editing -> Submitting -> Idle     (success)
//	                              -> Editing  (failure, draft kept)
//
// Every edit re-runs Validate. Edits are rejected while a submission is
// in flight.
type Editor struct {
	mu        sync.Mutex
	state     State
	draft     TableDraft
	errs      []apperrors.FieldError
	submitErr error
}

func NewEditor() *Editor {
	e := &Editor{draft: TableDraft{Columns: []ColumnDraft{NewColumn()}}}
	e.errs = Validate(e.draft)
	return e
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() TableDraft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyDraft(e.draft)
}

// Errors returns the validation errors of the current draft.
func (e *Editor) Errors() []apperrors.FieldError {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]apperrors.FieldError(nil), e.errs...)
}

// SubmitError returns the error of the last failed submission, cleared on
// the next edit.
func (e *Editor) SubmitError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitErr
}

func (e *Editor) SetName(name string) error {
	return e.edit(func(d *TableDraft) error {
		d.Name = name
		return nil
	})
}

func (e *Editor) AddColumn() error {
	return e.edit(func(d *TableDraft) error {
		d.Columns = append(d.Columns, NewColumn())
		return nil
	})
}

func (e *Editor) UpdateColumn(i int, update func(*ColumnDraft)) error {
	return e.edit(func(d *TableDraft) error {
		if i < 0 || i >= len(d.Columns) {
			return fmt.Errorf("%w: %d", ErrColumnMissing, i)
		}
		update(&d.Columns[i])
		return nil
	})
}

func (e *Editor) RemoveColumn(i int) error {
	return e.edit(func(d *TableDraft) error {
		if i < 0 || i >= len(d.Columns) {
			return fmt.Errorf("%w: %d", ErrColumnMissing, i)
		}
		d.Columns = append(d.Columns[:i], d.Columns[i+1:]...)
		return nil
	})
}

func (e *Editor) edit(apply func(*TableDraft) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateSubmitting {
		return ErrSubmitting
	}
	if err := apply(&e.draft); err != nil {
		return err
	}
	e.state = StateEditing
	e.submitErr = nil
	e.errs = Validate(e.draft)
	return nil
}

// Submit validates the draft and hands it to persist. On success the
// editor resets to a fresh draft; on failure the draft is kept and the
// editor returns to Editing.
func (e *Editor) Submit(ctx context.Context, persist PersistFunc) error {
	e.mu.Lock()
	if e.state == StateSubmitting {
		e.mu.Unlock()
		return ErrSubmitting
	}
	e.errs = Validate(e.draft)
	if len(e.errs) > 0 {
		e.state = StateEditing
		e.mu.Unlock()
		return ErrInvalidDraft
	}
	e.state = StateSubmitting
	draft := copyDraft(e.draft)
	e.mu.Unlock()

	err := persist(ctx, draft)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = StateEditing
		e.submitErr = err
		return err
	}
	e.state = StateIdle
	e.submitErr = nil
	e.draft = TableDraft{Columns: []ColumnDraft{NewColumn()}}
	e.errs = Validate(e.draft)
	return nil
}

func copyDraft(d TableDraft) TableDraft {
	return TableDraft{
		Name:    d.Name,
		Columns: append([]ColumnDraft(nil), d.Columns...),
	}
}
