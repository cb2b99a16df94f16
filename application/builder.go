package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/automata/domain/automaton"
	"github.com/felixgeelhaar/automata/infrastructure/logging"
	"github.com/felixgeelhaar/automata/infrastructure/statemachine"
	"github.com/felixgeelhaar/automata/infrastructure/telemetry"
)

// CommitFunc is called with the finished automaton before a commit takes
// effect. An error keeps the session open.
type CommitFunc func(a *automaton.Automaton) error

// Builder stages transitions for one automaton and publishes it only on
// Commit. Each staged transition is checked immediately, so a failed
// Stage leaves the session exactly as it was.
type Builder struct {
	mu       sync.Mutex
	id       string
	kind     automaton.Kind
	draft    *automaton.Automaton
	staged   []automaton.Edge
	interp   *statemachine.Interpreter
	metrics  telemetry.Metrics
	onCommit CommitFunc
}

// NewBuilder opens a session for an automaton of the given kind.
func NewBuilder(kind automaton.Kind, def automaton.Definition, opts ...Option) (*Builder, error) {
	return newBuilder(kind, def, newConfig(opts...), nil)
}

func newBuilder(kind automaton.Kind, def automaton.Definition, cfg Config, onCommit CommitFunc) (*Builder, error) {
	draft, err := automaton.New(kind, def)
	if err != nil {
		return nil, err
	}

	machine, err := statemachine.NewSessionMachine()
	if err != nil {
		return nil, fmt.Errorf("failed to create session machine: %w", err)
	}

	id := uuid.NewString()
	interp := statemachine.NewInterpreter(machine, statemachine.NewContext(id, kind))
	interp.Start()

	logging.Debug().
		Add(logging.SessionID(id)).
		Add(logging.Kind(kind)).
		Msg("builder session opened")

	return &Builder{
		id:       id,
		kind:     kind,
		draft:    draft,
		interp:   interp,
		metrics:  cfg.Metrics,
		onCommit: onCommit,
	}, nil
}

// ID returns the session ID.
func (b *Builder) ID() string {
	return b.id
}

// Kind returns the kind being built.
func (b *Builder) Kind() automaton.Kind {
	return b.kind
}

// State returns the session lifecycle state.
func (b *Builder) State() statemachine.SessionState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.interp.State()
}

// Staged returns the staged transitions in entry order.
func (b *Builder) Staged() []automaton.Edge {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]automaton.Edge, len(b.staged))
	copy(out, b.staged)
	return out
}

// Stage checks and records one transition.
func (b *Builder) Stage(ctx context.Context, src automaton.State, sym automaton.Symbol, dst automaton.State) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.interp.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrSessionClosed, b.interp.State())
	}

	edge := automaton.Edge{From: src, Symbol: sym, To: dst}
	if err := b.draft.AddTransition(src, sym, dst); err != nil {
		b.metrics.RecordTransition(ctx, string(b.kind), false)
		logging.Debug().
			Add(logging.SessionID(b.id)).
			Add(logging.Edge(edge)).
			Add(logging.ErrorField(err)).
			Msg("transition refused")
		return err
	}
	if err := b.interp.Stage(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionClosed, err)
	}

	b.staged = append(b.staged, edge)
	b.metrics.RecordTransition(ctx, string(b.kind), true)
	return nil
}

// Commit finishes the session and returns the automaton.
func (b *Builder) Commit(ctx context.Context) (*automaton.Automaton, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.interp.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", ErrSessionClosed, b.interp.State())
	}

	if b.onCommit != nil {
		if err := b.onCommit(b.draft); err != nil {
			return nil, err
		}
	}
	if err := b.interp.Commit(b.draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionClosed, err)
	}

	b.metrics.RecordSession(ctx, string(b.kind), string(statemachine.StateCommitted))
	logging.Debug().
		Add(logging.SessionID(b.id)).
		Add(logging.Staged(len(b.staged))).
		Msg("builder session committed")

	return b.draft, nil
}

// Cancel discards every staged transition and closes the session.
func (b *Builder) Cancel(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.interp.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrSessionClosed, b.interp.State())
	}
	if err := b.interp.Cancel(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionClosed, err)
	}

	b.metrics.RecordSession(ctx, string(b.kind), string(statemachine.StateCancelled))
	logging.Debug().
		Add(logging.SessionID(b.id)).
		Add(logging.Staged(len(b.staged))).
		Msg("builder session cancelled")

	b.staged = nil
	b.draft = nil
	return nil
}
