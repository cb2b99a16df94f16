package statemachine

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/automata/domain/automaton"
)

// ErrTerminal is returned when an event is sent to a finished session.
var ErrTerminal = errors.New("session already finished")

// Interpreter wraps the statekit interpreter with session-specific
// functionality. It is not safe for concurrent use.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates a new interpreter for the session machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{
		interp: interp,
		ctx:    ctx,
	}
}

// Start enters the staging state.
func (i *Interpreter) Start() {
	i.interp.Start()
	i.ctx.Outcome = i.State()
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// State returns the current state.
func (i *Interpreter) State() SessionState {
	return StateFromMachine(i.interp.State().Value)
}

// IsTerminal returns true if the session is committed or cancelled.
func (i *Interpreter) IsTerminal() bool {
	return i.interp.Done()
}

// Matches checks if the current state matches the given state.
func (i *Interpreter) Matches(state SessionState) bool {
	return i.interp.Matches(statekit.StateID(state))
}

// Context returns the interpreter context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}

// Stage records one more staged transition.
func (i *Interpreter) Stage() error {
	if i.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrTerminal, i.State())
	}
	i.ctx.Staged++
	return nil
}

// Commit moves the session to committed with the built automaton.
func (i *Interpreter) Commit(a *automaton.Automaton) error {
	if i.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrTerminal, i.State())
	}

	i.ctx.Result = a
	i.interp.Send(statekit.Event{Type: EventCommit})

	if !i.Matches(StateCommitted) {
		i.ctx.Result = nil
		return fmt.Errorf("commit refused in state %s", i.State())
	}
	return nil
}

// Cancel moves the session to cancelled and discards any result.
func (i *Interpreter) Cancel() error {
	if i.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrTerminal, i.State())
	}
	i.interp.Send(statekit.Event{Type: EventCancel})
	return nil
}
