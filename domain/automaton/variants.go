package automaton

// nondeterministic runs the power-set simulation: the live set starts as
// {initial} and each symbol replaces it with the union of its moves.
type nondeterministic struct{}

func (nondeterministic) addTransition(a *Automaton, e Edge) error {
	return a.insert(e)
}

func (nondeterministic) recognize(a *Automaton, w Word) bool {
	live := NewStateSet(a.initial)
	for _, sym := range w {
		if !a.alphabet.Has(sym) {
			return false
		}
		live = a.move(live, sym)
		if len(live) == 0 {
			return false
		}
	}
	return a.accepts(live)
}

func (nondeterministic) trace(a *Automaton, w Word) (bool, []Edge) {
	var path []Edge
	visit := func(e Edge) { path = append(path, e) }

	live := NewStateSet(a.initial)
	for _, sym := range w {
		if !a.alphabet.Has(sym) {
			return false, path
		}
		live = a.moveTraced(live, sym, visit)
		if len(live) == 0 {
			return false, path
		}
	}
	return a.accepts(live), path
}

func (nondeterministic) closure(_ *Automaton, set StateSet, _ func(Edge)) StateSet {
	return set.Clone()
}

// deterministic admits at most one destination per (state, symbol) and
// follows a single current state.
type deterministic struct{}

func (deterministic) addTransition(a *Automaton, e Edge) error {
	if a.table.count(e.From, e.Symbol) > 0 {
		return &TransitionError{
			Edge:   e,
			Reason: "a destination is already recorded for this state and symbol",
			Err:    ErrNonDeterministicTransition,
		}
	}
	return a.insert(e)
}

func (d deterministic) recognize(a *Automaton, w Word) bool {
	return d.run(a, w, nil)
}

func (d deterministic) trace(a *Automaton, w Word) (bool, []Edge) {
	var path []Edge
	ok := d.run(a, w, func(e Edge) { path = append(path, e) })
	return ok, path
}

// run walks the single path for w. A missing destination rejects.
func (deterministic) run(a *Automaton, w Word, visit func(Edge)) bool {
	current := a.initial
	for _, sym := range w {
		if !a.alphabet.Has(sym) {
			return false
		}
		next := a.table.lookup(current, sym)
		if len(next) != 1 {
			return false
		}
		var dst State
		for st := range next {
			dst = st
		}
		if visit != nil {
			visit(Edge{From: current, Symbol: sym, To: dst})
		}
		current = dst
	}
	return a.accepting.Has(current)
}

func (deterministic) closure(_ *Automaton, set StateSet, _ func(Edge)) StateSet {
	return set.Clone()
}

// epsilon extends the power-set simulation with empty transitions: the
// live set is closed under Epsilon before the first symbol and after each
// move.
type epsilon struct{}

func (epsilon) addTransition(a *Automaton, e Edge) error {
	return a.insert(e)
}

func (x epsilon) recognize(a *Automaton, w Word) bool {
	live := x.closure(a, NewStateSet(a.initial), nil)
	for _, sym := range w {
		if sym == Epsilon || !a.alphabet.Has(sym) {
			return false
		}
		live = x.closure(a, a.move(live, sym), nil)
		if len(live) == 0 {
			return false
		}
	}
	return a.accepts(live)
}

func (x epsilon) trace(a *Automaton, w Word) (bool, []Edge) {
	var path []Edge
	visit := func(e Edge) { path = append(path, e) }

	live := x.closure(a, NewStateSet(a.initial), visit)
	for _, sym := range w {
		if sym == Epsilon || !a.alphabet.Has(sym) {
			return false, path
		}
		live = x.closure(a, a.moveTraced(live, sym, visit), visit)
		if len(live) == 0 {
			return false, path
		}
	}
	return a.accepts(live), path
}

// closure computes the Epsilon closure of set with a work list. A state is
// pushed only when it first enters the result, so each state is processed
// at most once and the loop terminates on any finite automaton.
func (epsilon) closure(a *Automaton, set StateSet, visit func(Edge)) StateSet {
	result := set.Clone()
	work := set.Sorted()
	for len(work) > 0 {
		st := work[len(work)-1]
		work = work[:len(work)-1]
		for _, dst := range a.table.lookup(st, Epsilon).Sorted() {
			if result.Has(dst) {
				continue
			}
			result.Add(dst)
			work = append(work, dst)
			if visit != nil {
				visit(Edge{From: st, Symbol: Epsilon, To: dst})
			}
		}
	}
	return result
}
