// Package statemachine provides the statekit statechart that governs an
// interactive automaton construction session.
package statemachine

import (
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/automata/domain/automaton"
)

// SessionState is the lifecycle state of a construction session.
type SessionState string

// Session states.
const (
	StateStaging   SessionState = "staging"
	StateCommitted SessionState = "committed"
	StateCancelled SessionState = "cancelled"
)

// IsTerminal reports whether no further staging is possible.
func (s SessionState) IsTerminal() bool {
	return s == StateCommitted || s == StateCancelled
}

// Context carries session data through the state machine.
type Context struct {
	// ID identifies the session in logs.
	ID string
	// Kind is the variant being built.
	Kind automaton.Kind
	// Staged is the number of staged transitions.
	Staged int
	// Result is the automaton built for a commit.
	Result *automaton.Automaton
	// Outcome is the terminal state reached.
	Outcome SessionState
	// ClosedAt is when the session reached a terminal state.
	ClosedAt time.Time
}

// NewContext creates a new machine context.
func NewContext(id string, kind automaton.Kind) *Context {
	return &Context{ID: id, Kind: kind}
}

// State IDs as StateID type for statekit.
const (
	stateStaging   statekit.StateID = statekit.StateID(StateStaging)
	stateCommitted statekit.StateID = statekit.StateID(StateCommitted)
	stateCancelled statekit.StateID = statekit.StateID(StateCancelled)
)

// Event types.
const (
	EventCommit = "COMMIT"
	EventCancel = "CANCEL"
)

// NewSessionMachine creates the construction session statechart.
func NewSessionMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("session").
		WithInitial(stateStaging).
		WithContext(&Context{}).
		WithAction("close", closeSession).
		WithAction("discardAndClose", discardAndClose).
		WithGuard("resultBuilt", guardResultBuilt).
		State(stateStaging).
			On(EventCommit).Target(stateCommitted).Guard("resultBuilt").Do("close").
			On(EventCancel).Target(stateCancelled).Do("discardAndClose").
			Done().
		State(stateCommitted).
			Final().
			Done().
		State(stateCancelled).
			Final().
			Done().
		Build()
}

// StateFromMachine converts the machine state ID to a SessionState.
func StateFromMachine(stateID statekit.StateID) SessionState {
	return SessionState(stateID)
}
