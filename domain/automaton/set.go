package automaton

import "sort"

// StateSet is an unordered set of states.
type StateSet map[State]struct{}

// NewStateSet creates a set holding the given states.
func NewStateSet(states ...State) StateSet {
	s := make(StateSet, len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

// Add inserts a state and reports whether it was absent.
func (s StateSet) Add(st State) bool {
	if _, ok := s[st]; ok {
		return false
	}
	s[st] = struct{}{}
	return true
}

// Has reports whether the state is a member.
func (s StateSet) Has(st State) bool {
	_, ok := s[st]
	return ok
}

// Len returns the number of members.
func (s StateSet) Len() int {
	return len(s)
}

// AddAll inserts every member of o.
func (s StateSet) AddAll(o StateSet) {
	for st := range o {
		s[st] = struct{}{}
	}
}

// Clone returns an independent copy.
func (s StateSet) Clone() StateSet {
	c := make(StateSet, len(s))
	for st := range s {
		c[st] = struct{}{}
	}
	return c
}

// Intersects reports whether s and o share a member.
func (s StateSet) Intersects(o StateSet) bool {
	small, large := s, o
	if len(small) > len(large) {
		small, large = large, small
	}
	for st := range small {
		if large.Has(st) {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every member of s belongs to o.
func (s StateSet) SubsetOf(o StateSet) bool {
	for st := range s {
		if !o.Has(st) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold the same members.
func (s StateSet) Equal(o StateSet) bool {
	return len(s) == len(o) && s.SubsetOf(o)
}

// Sorted returns the members in ascending order.
func (s StateSet) Sorted() []State {
	out := make([]State, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SymbolSet is an unordered set of symbols.
type SymbolSet map[Symbol]struct{}

// NewSymbolSet creates a set holding the given symbols.
func NewSymbolSet(symbols ...Symbol) SymbolSet {
	s := make(SymbolSet, len(symbols))
	for _, sym := range symbols {
		s[sym] = struct{}{}
	}
	return s
}

// Has reports whether the symbol is a member.
func (s SymbolSet) Has(sym Symbol) bool {
	_, ok := s[sym]
	return ok
}

// Len returns the number of members.
func (s SymbolSet) Len() int {
	return len(s)
}

// Clone returns an independent copy.
func (s SymbolSet) Clone() SymbolSet {
	c := make(SymbolSet, len(s))
	for sym := range s {
		c[sym] = struct{}{}
	}
	return c
}

// Sorted returns the members in ascending order.
func (s SymbolSet) Sorted() []Symbol {
	out := make([]Symbol, 0, len(s))
	for sym := range s {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
