package automaton

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var lastID atomic.Uint64

// State identifies an automaton state. An anonymous state is distinct from
// every other state; a named state equals any other state built from the
// same name. States are comparable and usable as map keys.
type State struct {
	id   uint64 // non-zero for anonymous states
	name string
}

// Anonymous returns a fresh state that equals no other state.
func Anonymous() State {
	return State{id: lastID.Add(1)}
}

// Named returns the state identified by name.
func Named(name string) State {
	return State{name: strconv.Quote(name)}
}

// NamedSet returns the state identified by the members of set. Two calls
// with equal sets return equal states, regardless of insertion order.
func NamedSet(set StateSet) State {
	return State{name: set.Key()}
}

// IsNamed reports whether q derives its identity from a name.
func (q State) IsNamed() bool { return q.id == 0 }

// IsZero reports whether q is the zero State, which no constructor returns.
func (q State) IsZero() bool { return q.id == 0 && q.name == "" }

// Key returns the canonical encoding of q used to name sets containing it.
func (q State) Key() string {
	if q.IsNamed() {
		return q.name
	}
	return "#" + strconv.FormatUint(q.id, 10)
}

func (q State) String() string {
	if q.IsNamed() {
		if s, err := strconv.Unquote(q.name); err == nil {
			return s
		}
		return q.name
	}
	return fmt.Sprintf("q%d", q.id)
}

// sortKey orders anonymous states by allocation, then named states by name.
func (q State) sortKey() string {
	if q.IsNamed() {
		return "1" + q.name
	}
	return fmt.Sprintf("0%020d", q.id)
}

// StateSet is a set of states.
type StateSet map[State]struct{}

// NewStateSet returns a set holding qs.
func NewStateSet(qs ...State) StateSet {
	s := make(StateSet, len(qs))
	for _, q := range qs {
		s[q] = struct{}{}
	}
	return s
}

func (s StateSet) Add(q State) { s[q] = struct{}{} }

func (s StateSet) Has(q State) bool {
	_, ok := s[q]
	return ok
}

func (s StateSet) Len() int { return len(s) }

func (s StateSet) Clone() StateSet { return maps.Clone(s) }

func (s StateSet) Equal(other StateSet) bool { return maps.Equal(s, other) }

// AddAll inserts every member of other into s.
func (s StateSet) AddAll(other StateSet) {
	maps.Copy(s, other)
}

// Intersects reports whether s and other share a member.
func (s StateSet) Intersects(other StateSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for q := range small {
		if large.Has(q) {
			return true
		}
	}
	return false
}

// Split partitions s into the members that are in other and those that are not.
func (s StateSet) Split(other StateSet) (in, out StateSet) {
	in, out = StateSet{}, StateSet{}
	for q := range s {
		if other.Has(q) {
			in.Add(q)
		} else {
			out.Add(q)
		}
	}
	return in, out
}

// Minus returns the members of s not in other.
func (s StateSet) Minus(other StateSet) StateSet {
	_, out := s.Split(other)
	return out
}

// Sorted returns the members of s in a stable order.
func (s StateSet) Sorted() []State {
	byKey := make(map[string]State, len(s))
	for q := range s {
		byKey[q.sortKey()] = q
	}
	keys := maps.Keys(byKey)
	slices.Sort(keys)
	out := make([]State, len(keys))
	for i, k := range keys {
		out[i] = byKey[k]
	}
	return out
}

// Key returns a canonical, order-independent encoding of the set.
func (s StateSet) Key() string {
	keys := make([]string, 0, len(s))
	for q := range s {
		keys = append(keys, q.Key())
	}
	slices.Sort(keys)
	return "{" + strings.Join(keys, ",") + "}"
}

func (s StateSet) String() string {
	names := make([]string, 0, len(s))
	for _, q := range s.Sorted() {
		names = append(names, q.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
