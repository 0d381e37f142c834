package automaton

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrNotDFA is returned when a DFA-only operation receives an NFA.
var ErrNotDFA = errors.New("automaton is not deterministic")

// Minimize returns the minimal DFA equivalent to a by partition refinement.
// Each state of the result is named by the partition of a's states it
// replaces. Missing transitions stay missing; no sink state is added.
func (a *Automaton) Minimize() (*Automaton, error) {
	if !a.IsDFA() {
		return nil, fmt.Errorf("minimize: %w", ErrNotDFA)
	}

	r := &refiner{a: a, alphabet: a.Alphabet(), work: map[string]StateSet{}}
	if len(a.accept) > 0 {
		f := a.accept.Clone()
		r.parts = append(r.parts, f)
		r.work[f.Key()] = f
	}
	if rest := a.states.Minus(a.accept); len(rest) > 0 {
		r.parts = append(r.parts, rest)
	}
	r.refine()
	// Re-test every partition until a whole round leaves them all intact.
	for {
		for _, p := range r.parts {
			r.work[p.Key()] = p
		}
		if !r.refine() {
			break
		}
	}

	m := newAutomaton()
	m.re = a.re
	m.payload = make(map[State]StateSet, len(r.parts))
	for c := range a.sigma {
		m.sigma[c] = struct{}{}
	}
	owner := make(map[State]State, len(a.states))
	for _, part := range r.parts {
		q := NamedSet(part)
		m.states.Add(q)
		m.payload[q] = part
		if part.Intersects(a.accept) {
			m.accept.Add(q)
		}
		for s := range part {
			owner[s] = q
		}
	}
	m.start = owner[a.start]
	for t := range a.delta {
		m.addTransition(owner[t.From], t.Symbol, owner[t.To])
	}
	return m, nil
}

type refiner struct {
	a        *Automaton
	alphabet []rune
	parts    []StateSet
	work     map[string]StateSet
}

// pop removes and returns the queued partition with the smallest key.
func (r *refiner) pop() StateSet {
	keys := maps.Keys(r.work)
	slices.Sort(keys)
	p := r.work[keys[0]]
	delete(r.work, keys[0])
	return p
}

// refine drains the worklist and reports whether any partition was split.
func (r *refiner) refine() bool {
	split := false
	for len(r.work) > 0 {
		p := r.pop()
		for _, c := range r.alphabet {
			if r.splitBy(r.a.predecessors(p, c)) {
				split = true
			}
		}
	}
	return split
}

// splitBy splits the first partition that preds cuts in two. If the
// partition was queued both halves are queued, otherwise only the smaller.
func (r *refiner) splitBy(preds StateSet) bool {
	if len(preds) == 0 {
		return false
	}
	for i, part := range r.parts {
		in, out := part.Split(preds)
		if len(in) == 0 || len(out) == 0 {
			continue
		}
		r.parts[i] = in
		r.parts = append(r.parts, out)

		key := part.Key()
		if _, queued := r.work[key]; queued {
			delete(r.work, key)
			r.work[in.Key()] = in
			r.work[out.Key()] = out
		} else if len(in) <= len(out) {
			r.work[in.Key()] = in
		} else {
			r.work[out.Key()] = out
		}
		return true
	}
	return false
}
