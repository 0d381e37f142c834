package automaton

// Determinize returns a DFA for the language of a by subset construction.
// Each DFA state is named by the set of states of a it stands for; the empty
// set is kept as an ordinary non-accepting state. a is not modified.
func (a *Automaton) Determinize() *Automaton {
	d := newAutomaton()
	d.re = a.re
	d.payload = map[State]StateSet{}
	for c := range a.sigma {
		d.sigma[c] = struct{}{}
	}
	alphabet := a.Alphabet()

	discover := func(set StateSet) (State, bool) {
		q := NamedSet(set)
		if d.states.Has(q) {
			return q, false
		}
		d.states.Add(q)
		d.payload[q] = set
		if set.Intersects(a.accept) {
			d.accept.Add(q)
		}
		return q, true
	}

	d.start, _ = discover(a.EpsilonClosure(NewStateSet(a.start)))

	// Each pass expands the states discovered by the previous one.
	frontier := []State{d.start}
	for len(frontier) > 0 {
		var next []State
		for _, q := range frontier {
			for _, c := range alphabet {
				target, isNew := discover(a.EpsilonClosure(a.Move(d.payload[q], c)))
				if isNew {
					next = append(next, target)
				}
				d.addTransition(q, c, target)
			}
		}
		frontier = next
	}
	return d
}

// IsDFA reports whether no state has an epsilon transition or two
// transitions on the same symbol.
func (a *Automaton) IsDFA() bool {
	seen := make(map[State]map[rune]struct{}, len(a.states))
	for t := range a.delta {
		if t.Symbol == Epsilon {
			return false
		}
		syms := seen[t.From]
		if syms == nil {
			syms = map[rune]struct{}{}
			seen[t.From] = syms
		}
		if _, dup := syms[t.Symbol]; dup {
			return false
		}
		syms[t.Symbol] = struct{}{}
	}
	return true
}
