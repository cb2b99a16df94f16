// Package automaton provides finite-state automata over a finite alphabet
// and the algorithms that decide whether a word is accepted.
//
// An Automaton is built once from a Definition and a Kind. Its transition
// table grows monotonically through AddTransition; recognition never
// mutates it. All methods are safe for concurrent use: insertion excludes
// every reader, while recognitions run in parallel.
package automaton

import (
	"fmt"
	"sync"
)

// variant carries the behaviour that differs between kinds. Methods are
// invoked with the automaton lock already held.
type variant interface {
	addTransition(a *Automaton, e Edge) error
	recognize(a *Automaton, w Word) bool
	trace(a *Automaton, w Word) (bool, []Edge)
	closure(a *Automaton, set StateSet, visit func(Edge)) StateSet
}

// Automaton is a finite-state automaton of one of the supported kinds.
type Automaton struct {
	mu sync.RWMutex

	kind      Kind
	alphabet  SymbolSet
	states    StateSet
	initial   State
	accepting StateSet
	table     *table
	v         variant
}

// New creates an automaton of the given kind. The definition's slices are
// copied; the caller keeps ownership of them.
func New(kind Kind, def Definition) (*Automaton, error) {
	var v variant
	switch kind {
	case KindDeterministic:
		v = deterministic{}
	case KindNondeterministic:
		v = nondeterministic{}
	case KindEpsilon:
		v = epsilon{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	a := &Automaton{
		kind:      kind,
		alphabet:  NewSymbolSet(def.Alphabet...),
		states:    NewStateSet(def.States...),
		initial:   def.Initial,
		accepting: NewStateSet(def.Accepting...),
		table:     newTable(),
		v:         v,
	}
	if kind == KindEpsilon {
		a.alphabet[Epsilon] = struct{}{}
	}
	return a, nil
}

// NewDeterministic creates a deterministic complete automaton.
func NewDeterministic(def Definition) (*Automaton, error) {
	return New(KindDeterministic, def)
}

// NewNondeterministic creates a nondeterministic automaton.
func NewNondeterministic(def Definition) (*Automaton, error) {
	return New(KindNondeterministic, def)
}

// NewEpsilon creates a nondeterministic automaton with empty transitions.
func NewEpsilon(def Definition) (*Automaton, error) {
	return New(KindEpsilon, def)
}

// Kind returns the automaton kind.
func (a *Automaton) Kind() Kind {
	return a.kind
}

// Initial returns the initial state.
func (a *Automaton) Initial() State {
	return a.initial
}

// Alphabet returns the alphabet in ascending order. For KindEpsilon it
// includes Epsilon.
func (a *Automaton) Alphabet() []Symbol {
	return a.alphabet.Sorted()
}

// States returns the declared states in ascending order.
func (a *Automaton) States() []State {
	return a.states.Sorted()
}

// Accepting returns the accepting states in ascending order.
func (a *Automaton) Accepting() []State {
	return a.accepting.Sorted()
}

// HasSymbol reports whether sym belongs to the alphabet.
func (a *Automaton) HasSymbol(sym Symbol) bool {
	return a.alphabet.Has(sym)
}

// HasState reports whether st is a declared state.
func (a *Automaton) HasState(st State) bool {
	return a.states.Has(st)
}

// IsAccepting reports whether st is an accepting state.
func (a *Automaton) IsAccepting(st State) bool {
	return a.accepting.Has(st)
}

// Definition returns a copy of the definition the automaton was built from.
func (a *Automaton) Definition() Definition {
	alphabet := make([]Symbol, 0, len(a.alphabet))
	for _, sym := range a.alphabet.Sorted() {
		if a.kind == KindEpsilon && sym == Epsilon {
			continue
		}
		alphabet = append(alphabet, sym)
	}
	return Definition{
		Alphabet:  alphabet,
		States:    a.states.Sorted(),
		Initial:   a.initial,
		Accepting: a.accepting.Sorted(),
	}
}

// AddTransition records that dst is reachable from src by sym.
// Adding an existing transition is a no-op except for KindDeterministic,
// which rejects any second insertion for the same (src, sym) pair.
func (a *Automaton) AddTransition(src State, sym Symbol, dst State) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.v.addTransition(a, Edge{From: src, Symbol: sym, To: dst})
}

// TransitionsFrom returns the destinations of (st, sym). The result is a
// copy and is empty when no transition is recorded.
func (a *Automaton) TransitionsFrom(st State, sym Symbol) StateSet {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.table.lookup(st, sym).Clone()
}

// Edges returns every recorded transition ordered by source, symbol and
// destination.
func (a *Automaton) Edges() []Edge {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.table.edges()
}

// Len returns the number of recorded transitions.
func (a *Automaton) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.table.size
}

// IsComplete reports whether every state has at least one transition for
// every ordinary symbol. It is informational: an incomplete deterministic
// automaton rejects words that fall off its table.
func (a *Automaton) IsComplete() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for st := range a.states {
		for sym := range a.alphabet {
			if sym == Epsilon && a.kind == KindEpsilon {
				continue
			}
			if a.table.count(st, sym) == 0 {
				return false
			}
		}
	}
	return true
}

// Recognize reports whether the automaton accepts w. A symbol outside the
// alphabet is a rejection, not an error.
func (a *Automaton) Recognize(w Word) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.v.recognize(a, w)
}

// RecognizeWithTrace recognizes w and additionally returns every edge
// traversed by the live branches, step by step. Within a step, branches
// are visited in ascending state order.
func (a *Automaton) RecognizeWithTrace(w Word) (bool, []Edge) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.v.trace(a, w)
}

// EpsilonClosure returns the smallest superset of set closed under empty
// transitions. Kinds without empty transitions return a copy of set.
func (a *Automaton) EpsilonClosure(set StateSet) StateSet {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.v.closure(a, set, nil)
}

// checkEdge enforces the membership preconditions shared by every kind.
func (a *Automaton) checkEdge(e Edge) error {
	if !a.alphabet.Has(e.Symbol) {
		return invalidTransition(e, "symbol %q is not in the alphabet", e.Symbol)
	}
	if !a.states.Has(e.From) {
		return invalidTransition(e, "source state %q is not declared", e.From)
	}
	if !a.states.Has(e.To) {
		return invalidTransition(e, "destination state %q is not declared", e.To)
	}
	return nil
}

func (a *Automaton) insert(e Edge) error {
	if err := a.checkEdge(e); err != nil {
		return err
	}
	a.table.add(e.From, e.Symbol, e.To)
	return nil
}

// accepts reports whether the live set contains an accepting state.
func (a *Automaton) accepts(live StateSet) bool {
	return live.Intersects(a.accepting)
}

// move returns the union of the destinations of every live state under sym.
func (a *Automaton) move(live StateSet, sym Symbol) StateSet {
	next := make(StateSet)
	for st := range live {
		next.AddAll(a.table.lookup(st, sym))
	}
	return next
}

// moveTraced is move with edge reporting in ascending state order.
func (a *Automaton) moveTraced(live StateSet, sym Symbol, visit func(Edge)) StateSet {
	next := make(StateSet)
	for _, st := range live.Sorted() {
		for _, dst := range a.table.lookup(st, sym).Sorted() {
			next.Add(dst)
			visit(Edge{From: st, Symbol: sym, To: dst})
		}
	}
	return next
}
