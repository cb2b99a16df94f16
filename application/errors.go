package application

import "errors"

// Application errors.
var (
	// ErrSessionClosed indicates a builder session was already committed
	// or cancelled.
	ErrSessionClosed = errors.New("builder session closed")

	// ErrNilAutomaton indicates a nil automaton was supplied.
	ErrNilAutomaton = errors.New("automaton is required")
)
