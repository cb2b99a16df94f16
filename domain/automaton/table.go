package automaton

import "sort"

type tableKey struct {
	state  State
	symbol Symbol
}

// table maps (state, symbol) pairs to destination sets. Missing keys stand
// for the empty set.
type table struct {
	entries map[tableKey]StateSet
	size    int
}

func newTable() *table {
	return &table{entries: make(map[tableKey]StateSet)}
}

// add unions dst into the entry and reports whether it was new.
func (t *table) add(src State, sym Symbol, dst State) bool {
	k := tableKey{src, sym}
	set, ok := t.entries[k]
	if !ok {
		set = make(StateSet, 1)
		t.entries[k] = set
	}
	if set.Add(dst) {
		t.size++
		return true
	}
	return false
}

// lookup returns the internal destination set; callers must not mutate it.
func (t *table) lookup(src State, sym Symbol) StateSet {
	return t.entries[tableKey{src, sym}]
}

func (t *table) count(src State, sym Symbol) int {
	return len(t.entries[tableKey{src, sym}])
}

// edges lists every transition ordered by source, symbol, destination.
func (t *table) edges() []Edge {
	out := make([]Edge, 0, t.size)
	for k, set := range t.entries {
		for dst := range set {
			out = append(out, Edge{From: k.state, Symbol: k.symbol, To: dst})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		return a.To < b.To
	})
	return out
}
