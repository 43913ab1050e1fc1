// Package confirm models the delete confirmation dialog: entity specific
// copy, an in-flight flag that blocks duplicate submissions, and an inline
// error that keeps the dialog open until the user retries or cancels.
package confirm

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrPending is returned when Confirm is called while a delete is in flight.
	ErrPending = errors.New("delete already in progress")
	// ErrClosed is returned when Confirm is called on a finished dialog.
	ErrClosed = errors.New("confirmation closed")
)

// State is the dialog lifecycle.
type State int

const (
	Idle State = iota
	Pending
	Failed
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Failed:
		return "failed"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Copy is the entity specific text shown in the dialog.
type Copy struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
}

// DeleteFunc performs the delete mutation.
type DeleteFunc func(ctx context.Context) error

// DeleteFlow is the lifecycle of one confirmation dialog.
type DeleteFlow struct {
	del       DeleteFunc
	onSuccess func()

	mu    sync.Mutex
	state State
	err   error
}

// NewDeleteFlow opens a dialog. onSuccess may be nil.
func NewDeleteFlow(del DeleteFunc, onSuccess func()) *DeleteFlow {
	return &DeleteFlow{del: del, onSuccess: onSuccess}
}

// Confirm runs the delete unless one is already in flight. On success the
// success callback runs and the dialog closes. On failure the error is kept
// for display, returned, and the dialog stays open for another attempt.
func (f *DeleteFlow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case Pending:
		f.mu.Unlock()
		return ErrPending
	case Closed:
		f.mu.Unlock()
		return ErrClosed
	}
	f.state = Pending
	f.err = nil
	f.mu.Unlock()

	err := f.del(ctx)

	f.mu.Lock()
	if err != nil {
		f.state = Failed
		f.err = err
		f.mu.Unlock()
		return err
	}
	f.state = Closed
	f.mu.Unlock()

	if f.onSuccess != nil {
		f.onSuccess()
	}
	return nil
}

// Cancel closes the dialog unless a delete is in flight. It reports whether
// the dialog closed.
func (f *DeleteFlow) Cancel() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Pending {
		return false
	}
	f.state = Closed
	return true
}

// State returns the current lifecycle state.
func (f *DeleteFlow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Busy reports whether the action controls must be disabled.
func (f *DeleteFlow) Busy() bool { return f.State() == Pending }

// Err returns the error of the last failed attempt.
func (f *DeleteFlow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
