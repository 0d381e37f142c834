package regex

// NodeType identifies the variant of an AST node.
type NodeType int

const (
	NodeEpsilon NodeType = iota // ε
	NodeChar
	NodeStar
	NodeSeq
	NodeDisj
)

// Node is a regex syntax tree. Trees are immutable once built.
type Node interface {
	Type() NodeType
	String() string
}

// Epsilon matches only the empty string.
type Epsilon struct{}

// Char matches the single symbol X.
type Char struct {
	X rune
}

// Star is the Kleene closure of R0.
type Star struct {
	R0 Node
}

// Seq matches R0 followed by R1.
type Seq struct {
	R0, R1 Node
}

// Disj matches either R0 or R1.
type Disj struct {
	R0, R1 Node
}

func (*Epsilon) Type() NodeType { return NodeEpsilon }
func (*Char) Type() NodeType    { return NodeChar }
func (*Star) Type() NodeType    { return NodeStar }
func (*Seq) Type() NodeType     { return NodeSeq }
func (*Disj) Type() NodeType    { return NodeDisj }

func (*Epsilon) String() string { return "ε" }

func (n *Char) String() string { return string(n.X) }

func (n *Star) String() string {
	r0 := n.R0.String()
	if len([]rune(r0)) == 1 || wrapped(r0) {
		return r0 + "*"
	}
	return "(" + r0 + ")*"
}

func (n *Seq) String() string {
	return group(n.R0) + group(n.R1)
}

func (n *Disj) String() string {
	return n.R0.String() + "|" + n.R1.String()
}

// group wraps disjunctions so they keep their meaning inside a sequence.
func group(n Node) string {
	if _, ok := n.(*Disj); ok {
		return "(" + n.String() + ")"
	}
	return n.String()
}

// wrapped reports whether s is a single parenthesized group.
func wrapped(s string) bool {
	if s == "" || s[0] != '(' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}
