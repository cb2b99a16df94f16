package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/felixgeelhaar/automata/domain/automaton"
	"github.com/felixgeelhaar/automata/infrastructure/statemachine"
)

// recordingMetrics captures metric calls for assertions.
type recordingMetrics struct {
	mu           sync.Mutex
	recognitions int
	accepted     int
	traces       int
	added        int
	rejected     int
	sessions     map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{sessions: make(map[string]int)}
}

func (m *recordingMetrics) RecordRecognition(_ context.Context, _ string, _ int, accepted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recognitions++
	if accepted {
		m.accepted++
	}
}

func (m *recordingMetrics) RecordTrace(context.Context, string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.traces++
}

func (m *recordingMetrics) RecordTransition(_ context.Context, _ string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.added++
	} else {
		m.rejected++
	}
}

func (m *recordingMetrics) RecordSession(_ context.Context, _ string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[outcome]++
}

func twoStates() automaton.Definition {
	return automaton.Definition{
		Alphabet:  []automaton.Symbol{"a", "b"},
		States:    []automaton.State{"q0", "q1"},
		Initial:   "q0",
		Accepting: []automaton.State{"q1"},
	}
}

func TestBuilder_StageAndCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	metrics := newRecordingMetrics()
	b, err := NewBuilder(automaton.KindNondeterministic, twoStates(), WithMetrics(metrics))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	if b.ID() == "" {
		t.Error("session ID should be set")
	}
	if b.State() != statemachine.StateStaging {
		t.Errorf("State() = %s, want staging", b.State())
	}

	if err := b.Stage(ctx, "q0", "a", "q1"); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if err := b.Stage(ctx, "q0", "a", "q0"); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if got := b.Staged(); len(got) != 2 || got[0] != (automaton.Edge{From: "q0", Symbol: "a", To: "q1"}) {
		t.Errorf("Staged() = %v", got)
	}

	a, err := b.Commit(ctx)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if a.Len() != 2 || !a.Recognize(automaton.ParseWord("aa")) {
		t.Errorf("committed automaton has %d edges", a.Len())
	}
	if b.State() != statemachine.StateCommitted {
		t.Errorf("State() = %s, want committed", b.State())
	}
	if metrics.added != 2 || metrics.sessions["committed"] != 1 {
		t.Errorf("metrics = %+v", metrics)
	}
}

func TestBuilder_StageRefusal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    automaton.Kind
		edge    automaton.Edge
		wantErr error
	}{
		{"unknown symbol", automaton.KindNondeterministic, automaton.Edge{From: "q0", Symbol: "z", To: "q1"}, automaton.ErrInvalidTransition},
		{"unknown source", automaton.KindNondeterministic, automaton.Edge{From: "q9", Symbol: "a", To: "q1"}, automaton.ErrInvalidTransition},
		{"unknown destination", automaton.KindNondeterministic, automaton.Edge{From: "q0", Symbol: "a", To: "q9"}, automaton.ErrInvalidTransition},
		{"second deterministic destination", automaton.KindDeterministic, automaton.Edge{From: "q0", Symbol: "a", To: "q0"}, automaton.ErrNonDeterministicTransition},
		{"repeated deterministic edge", automaton.KindDeterministic, automaton.Edge{From: "q0", Symbol: "a", To: "q1"}, automaton.ErrNonDeterministicTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			metrics := newRecordingMetrics()
			b, err := NewBuilder(tt.kind, twoStates(), WithMetrics(metrics))
			if err != nil {
				t.Fatalf("NewBuilder() error = %v", err)
			}
			if err := b.Stage(ctx, "q0", "a", "q1"); err != nil {
				t.Fatalf("Stage() error = %v", err)
			}

			err = b.Stage(ctx, tt.edge.From, tt.edge.Symbol, tt.edge.To)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Stage(%s) error = %v, want %v", tt.edge, err, tt.wantErr)
			}
			if len(b.Staged()) != 1 {
				t.Errorf("refused transition was staged: %v", b.Staged())
			}
			if metrics.rejected != 1 {
				t.Errorf("rejected = %d, want 1", metrics.rejected)
			}
			if b.State() != statemachine.StateStaging {
				t.Errorf("State() = %s, want staging", b.State())
			}
		})
	}
}

func TestBuilder_Cancel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	metrics := newRecordingMetrics()
	b, err := NewBuilder(automaton.KindEpsilon, twoStates(), WithMetrics(metrics))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	if err := b.Stage(ctx, "q0", automaton.Epsilon, "q1"); err != nil {
		t.Fatalf("Stage(ε) error = %v", err)
	}

	if err := b.Cancel(ctx); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if b.State() != statemachine.StateCancelled {
		t.Errorf("State() = %s, want cancelled", b.State())
	}
	if len(b.Staged()) != 0 {
		t.Errorf("Staged() = %v, want empty", b.Staged())
	}
	if b.Kind() != automaton.KindEpsilon {
		t.Errorf("Kind() = %s, want enfa", b.Kind())
	}
	if metrics.sessions["cancelled"] != 1 {
		t.Errorf("sessions = %v", metrics.sessions)
	}
}

func TestBuilder_ClosedSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	committed, _ := NewBuilder(automaton.KindNondeterministic, twoStates())
	if _, err := committed.Commit(ctx); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	cancelled, _ := NewBuilder(automaton.KindNondeterministic, twoStates())
	if err := cancelled.Cancel(ctx); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	for _, b := range []*Builder{committed, cancelled} {
		if err := b.Stage(ctx, "q0", "a", "q1"); !errors.Is(err, ErrSessionClosed) {
			t.Errorf("Stage() after %s error = %v, want ErrSessionClosed", b.State(), err)
		}
		if _, err := b.Commit(ctx); !errors.Is(err, ErrSessionClosed) {
			t.Errorf("Commit() after %s error = %v, want ErrSessionClosed", b.State(), err)
		}
		if err := b.Cancel(ctx); !errors.Is(err, ErrSessionClosed) {
			t.Errorf("Cancel() after %s error = %v, want ErrSessionClosed", b.State(), err)
		}
	}
}

func TestBuilder_CommitHookFailureKeepsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hookErr := errors.New("no room")
	calls := 0
	b, err := newBuilder(automaton.KindNondeterministic, twoStates(), newConfig(), func(*automaton.Automaton) error {
		calls++
		if calls == 1 {
			return hookErr
		}
		return nil
	})
	if err != nil {
		t.Fatalf("newBuilder() error = %v", err)
	}

	if _, err := b.Commit(ctx); !errors.Is(err, hookErr) {
		t.Fatalf("Commit() error = %v, want hook error", err)
	}
	if b.State() != statemachine.StateStaging {
		t.Errorf("State() = %s, want staging", b.State())
	}
	if _, err := b.Commit(ctx); err != nil {
		t.Fatalf("second Commit() error = %v", err)
	}
}

func TestNewBuilder_InvalidDefinition(t *testing.T) {
	t.Parallel()

	def := twoStates()
	def.Initial = "nowhere"
	if _, err := NewBuilder(automaton.KindDeterministic, def); !errors.Is(err, automaton.ErrInvalidDefinition) {
		t.Errorf("NewBuilder() error = %v, want ErrInvalidDefinition", err)
	}
}
