// Package regexfa turns regular expressions over digits and lowercase
// letters into finite automata: a Thompson NFA, its subset-construction DFA
// and the minimal DFA. Supported syntax is literals, juxtaposition, '|', '*'
// and parentheses; spaces are ignored.
package regexfa

import (
	"regexfa/internal/automaton"
	"regexfa/internal/regex"
)

type (
	Automaton  = automaton.Automaton
	State      = automaton.State
	StateSet   = automaton.StateSet
	Transition = automaton.Transition
	Node       = regex.Node
	Options    = regex.Options
)

// Epsilon is the symbol of epsilon transitions.
const Epsilon = automaton.Epsilon

var (
	ErrNotDFA           = automaton.ErrNotDFA
	ErrInvalidAutomaton = automaton.ErrInvalidAutomaton
)

// Parse parses pattern leniently; see regex.Parse.
func Parse(pattern string) Node { return regex.Parse(pattern) }

// Compile parses pattern and returns its Thompson NFA. Without options it
// parses leniently and never fails.
func Compile(pattern string, opts ...Options) (*Automaton, error) {
	o := regex.DefaultOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	n, err := regex.ParseWithOptions(pattern, o)
	if err != nil {
		return nil, err
	}
	return automaton.FromRegex(n), nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, opts ...Options) *Automaton {
	a, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Minimal returns the minimal DFA for pattern.
func Minimal(pattern string, opts ...Options) (*Automaton, error) {
	a, err := Compile(pattern, opts...)
	if err != nil {
		return nil, err
	}
	return a.Determinize().Minimize()
}
