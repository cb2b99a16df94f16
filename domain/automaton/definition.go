package automaton

import "fmt"

// Definition is the fixed part of an automaton: everything but its
// transitions. It is supplied once, at construction.
type Definition struct {
	Alphabet  []Symbol
	States    []State
	Initial   State
	Accepting []State
}

// Validate checks that the definition describes a usable automaton.
func (d Definition) Validate() error {
	for _, sym := range d.Alphabet {
		if sym == "" {
			return fmt.Errorf("%w: alphabet contains an empty symbol", ErrInvalidDefinition)
		}
		if sym == Epsilon {
			return fmt.Errorf("%w: symbol %q is reserved for empty transitions", ErrInvalidDefinition, Epsilon)
		}
	}
	if len(d.States) == 0 {
		return fmt.Errorf("%w: no states declared", ErrInvalidDefinition)
	}
	states := make(StateSet, len(d.States))
	for _, st := range d.States {
		if st == "" {
			return fmt.Errorf("%w: empty state identifier", ErrInvalidDefinition)
		}
		states.Add(st)
	}
	if !states.Has(d.Initial) {
		return fmt.Errorf("%w: initial state %q is not declared", ErrInvalidDefinition, d.Initial)
	}
	for _, st := range d.Accepting {
		if !states.Has(st) {
			return fmt.Errorf("%w: accepting state %q is not declared", ErrInvalidDefinition, st)
		}
	}
	return nil
}
