package automaton

import (
	"fmt"

	"regexfa/internal/regex"
)

// fragment is a sub-automaton with exactly one accept state.
type fragment struct {
	start, end State
}

// FromRegex builds an NFA for n by Thompson construction. The result has
// exactly one accept state and every state in it is freshly allocated.
func FromRegex(n regex.Node) *Automaton {
	a := newAutomaton()
	a.re = n
	f := a.build(n)
	a.start = f.start
	a.accept.Add(f.end)
	return a
}

func (a *Automaton) fresh() State {
	q := Anonymous()
	a.states.Add(q)
	return q
}

// build adds the states and transitions for n to a and returns their
// entry and exit. Sub-automata of siblings never share states.
func (a *Automaton) build(n regex.Node) fragment {
	switch n := n.(type) {
	case *regex.Epsilon:
		start, end := a.fresh(), a.fresh()
		a.addTransition(start, Epsilon, end)
		return fragment{start, end}

	case *regex.Char:
		start, end := a.fresh(), a.fresh()
		a.sigma[n.X] = struct{}{}
		a.addTransition(start, n.X, end)
		return fragment{start, end}

	case *regex.Star:
		n0 := a.build(n.R0)
		start, end := a.fresh(), a.fresh()
		a.addTransition(start, Epsilon, end)
		a.addTransition(start, Epsilon, n0.start)
		a.addTransition(n0.end, Epsilon, end)
		a.addTransition(n0.end, Epsilon, n0.start)
		return fragment{start, end}

	case *regex.Seq:
		n0 := a.build(n.R0)
		n1 := a.build(n.R1)
		a.addTransition(n0.end, Epsilon, n1.start)
		return fragment{n0.start, n1.end}

	case *regex.Disj:
		n0 := a.build(n.R0)
		n1 := a.build(n.R1)
		start, end := a.fresh(), a.fresh()
		a.addTransition(start, Epsilon, n0.start)
		a.addTransition(start, Epsilon, n1.start)
		a.addTransition(n0.end, Epsilon, end)
		a.addTransition(n1.end, Epsilon, end)
		return fragment{start, end}

	default:
		panic(fmt.Sprintf("automaton: unknown regex node %T", n))
	}
}
