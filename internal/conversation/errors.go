package conversation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an event isn't accepted in the current state.
	ErrInvalidTransition = errors.New("conversation: invalid state transition")

	// ErrBusy is returned when an event arrives while replies are still being emitted.
	ErrBusy = errors.New("conversation: reply sequence in progress")

	// ErrSessionNotFound is returned for unknown or evicted sessions.
	ErrSessionNotFound = errors.New("conversation: session not found")
)

// TransitionError describes a rejected event.
type TransitionError struct {
	State State
	Event EventKind
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("conversation: event %s not allowed in state %s", e.Event, e.State)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
