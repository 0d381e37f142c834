package automaton

// EpsilonClosure returns every state reachable from qs through epsilon
// transitions alone, including qs itself.
func (a *Automaton) EpsilonClosure(qs StateSet) StateSet {
	res := StateSet{}
	for q := range qs {
		a.reach(q, Epsilon, res)
	}
	return res
}

// Move returns the states entered by exactly one x transition out of qs.
func (a *Automaton) Move(qs StateSet, x rune) StateSet {
	res := StateSet{}
	for q := range qs {
		for _, p := range a.successors(q, x) {
			res.Add(p)
		}
	}
	return res
}

// reach adds q and every state reachable from it on sym to res, using an
// explicit stack so chain length does not bound goroutine stack depth.
func (a *Automaton) reach(q State, sym rune, res StateSet) {
	stack := []State{q}
	res.Add(q)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range a.successors(top, sym) {
			if !res.Has(p) {
				res.Add(p)
				stack = append(stack, p)
			}
		}
	}
}

// Matches reports whether a accepts the symbol sequence s. Symbols outside
// the alphabet, Epsilon included, reject the input; they are not an error.
func (a *Automaton) Matches(s []rune) bool {
	current := a.EpsilonClosure(NewStateSet(a.start))
	for _, x := range s {
		if _, ok := a.sigma[x]; !ok || len(current) == 0 {
			return false
		}
		current = a.EpsilonClosure(a.Move(current, x))
	}
	return current.Intersects(a.accept)
}

// MatchString reports whether a accepts s.
func (a *Automaton) MatchString(s string) bool {
	return a.Matches([]rune(s))
}
