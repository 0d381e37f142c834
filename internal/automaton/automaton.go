package automaton

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"regexfa/internal/regex"
)

// Epsilon labels transitions taken without reading input. It is never a
// member of an automaton's alphabet.
const Epsilon rune = -1

// ErrInvalidAutomaton is returned by New when its arguments break the
// automaton invariants.
var ErrInvalidAutomaton = errors.New("invalid automaton")

// Transition is one (from, symbol, to) triple of the transition relation.
type Transition struct {
	From   State
	Symbol rune
	To     State
}

func (t Transition) String() string {
	sym := "ε"
	if t.Symbol != Epsilon {
		sym = string(t.Symbol)
	}
	return fmt.Sprintf("%v -%s-> %v", t.From, sym, t.To)
}

// Automaton is a finite automaton (Q, Sigma, s, F, delta). The transition
// relation may hold several targets per (state, symbol) and epsilon moves, so
// the same type serves NFAs and DFAs. An Automaton is never modified after
// construction.
type Automaton struct {
	re      regex.Node
	states  StateSet
	sigma   map[rune]struct{}
	start   State
	accept  StateSet
	delta   map[Transition]struct{}
	payload map[State]StateSet

	once sync.Once
	out  map[State]map[rune][]State
	in   map[rune]map[State][]State
}

func newAutomaton() *Automaton {
	return &Automaton{
		states: StateSet{},
		sigma:  map[rune]struct{}{},
		accept: StateSet{},
		delta:  map[Transition]struct{}{},
	}
}

// Empty returns an automaton for the empty language: a single
// non-accepting start state and no transitions.
func Empty() *Automaton {
	a := newAutomaton()
	a.start = Anonymous()
	a.states.Add(a.start)
	return a
}

// New builds an automaton from its components and checks that start and
// accept are in states, every transition connects members of states, and
// every non-epsilon symbol is in sigma.
func New(states []State, sigma []rune, start State, accept []State, delta []Transition) (*Automaton, error) {
	a := newAutomaton()
	for _, q := range states {
		a.states.Add(q)
	}
	for _, c := range sigma {
		if c == Epsilon {
			return nil, fmt.Errorf("%w: epsilon in alphabet", ErrInvalidAutomaton)
		}
		a.sigma[c] = struct{}{}
	}
	if !a.states.Has(start) {
		return nil, fmt.Errorf("%w: start state %v not in Q", ErrInvalidAutomaton, start)
	}
	a.start = start
	for _, q := range accept {
		if !a.states.Has(q) {
			return nil, fmt.Errorf("%w: accept state %v not in Q", ErrInvalidAutomaton, q)
		}
		a.accept.Add(q)
	}
	for _, t := range delta {
		if !a.states.Has(t.From) || !a.states.Has(t.To) {
			return nil, fmt.Errorf("%w: transition %v leaves Q", ErrInvalidAutomaton, t)
		}
		if _, ok := a.sigma[t.Symbol]; !ok && t.Symbol != Epsilon {
			return nil, fmt.Errorf("%w: transition %v uses symbol outside Sigma", ErrInvalidAutomaton, t)
		}
		a.delta[t] = struct{}{}
	}
	return a, nil
}

func (a *Automaton) addTransition(from State, sym rune, to State) {
	a.delta[Transition{From: from, Symbol: sym, To: to}] = struct{}{}
}

// Regex returns the expression a was built from, or nil.
func (a *Automaton) Regex() regex.Node { return a.re }

// Start returns the start state.
func (a *Automaton) Start() State { return a.start }

// StateCount returns |Q|.
func (a *Automaton) StateCount() int { return len(a.states) }

// States returns Q in a stable order.
func (a *Automaton) States() []State { return a.states.Sorted() }

// Accepting returns F in a stable order.
func (a *Automaton) Accepting() []State { return a.accept.Sorted() }

// IsAccepting reports whether q is in F.
func (a *Automaton) IsAccepting(q State) bool { return a.accept.Has(q) }

// Alphabet returns Sigma in ascending order.
func (a *Automaton) Alphabet() []rune {
	syms := maps.Keys(a.sigma)
	slices.Sort(syms)
	return syms
}

// Transitions returns delta ordered by source, symbol and target.
func (a *Automaton) Transitions() []Transition {
	order := make(map[State]int, len(a.states))
	for i, q := range a.states.Sorted() {
		order[q] = i
	}
	byKey := make(map[string]Transition, len(a.delta))
	for t := range a.delta {
		k := fmt.Sprintf("%010d %010d %010d", order[t.From], int64(t.Symbol)+1, order[t.To])
		byKey[k] = t
	}
	keys := maps.Keys(byKey)
	slices.Sort(keys)
	ts := make([]Transition, len(keys))
	for i, k := range keys {
		ts[i] = byKey[k]
	}
	return ts
}

// Payload returns the set of states a named state of a was built from by
// Determinize or Minimize.
func (a *Automaton) Payload(q State) (StateSet, bool) {
	set, ok := a.payload[q]
	if !ok {
		return nil, false
	}
	return set.Clone(), true
}

// index builds the outgoing and incoming adjacency of delta on first use.
func (a *Automaton) index() {
	a.once.Do(func() {
		a.out = make(map[State]map[rune][]State, len(a.states))
		a.in = make(map[rune]map[State][]State, len(a.sigma)+1)
		for t := range a.delta {
			bySym := a.out[t.From]
			if bySym == nil {
				bySym = map[rune][]State{}
				a.out[t.From] = bySym
			}
			bySym[t.Symbol] = append(bySym[t.Symbol], t.To)

			byTo := a.in[t.Symbol]
			if byTo == nil {
				byTo = map[State][]State{}
				a.in[t.Symbol] = byTo
			}
			byTo[t.To] = append(byTo[t.To], t.From)
		}
	})
}

// successors returns the targets of q's transitions on sym.
func (a *Automaton) successors(q State, sym rune) []State {
	a.index()
	return a.out[q][sym]
}

// predecessors returns every state with a sym transition into a member of to.
func (a *Automaton) predecessors(to StateSet, sym rune) StateSet {
	a.index()
	preds := StateSet{}
	byTo := a.in[sym]
	for q := range to {
		for _, p := range byTo[q] {
			preds.Add(p)
		}
	}
	return preds
}
