package automaton

import (
	"errors"
	"fmt"
)

// Domain errors for automaton construction and mutation.
var (
	// ErrInvalidTransition indicates a transition whose source, symbol or
	// destination is not declared by the automaton.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNonDeterministicTransition indicates a second destination for an
	// already populated (state, symbol) pair of a deterministic automaton.
	ErrNonDeterministicTransition = errors.New("non-deterministic transition")

	// ErrInvalidDefinition indicates the alphabet, states, initial state or
	// accepting states do not form a valid automaton.
	ErrInvalidDefinition = errors.New("invalid automaton definition")

	// ErrUnknownKind indicates an unrecognized automaton kind.
	ErrUnknownKind = errors.New("unknown automaton kind")
)

// TransitionError describes a rejected transition insertion.
type TransitionError struct {
	Edge   Edge
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Edge, e.Reason)
}

// Unwrap returns the sentinel error.
func (e *TransitionError) Unwrap() error {
	return e.Err
}

func invalidTransition(edge Edge, format string, args ...any) error {
	return &TransitionError{Edge: edge, Reason: fmt.Sprintf(format, args...), Err: ErrInvalidTransition}
}
