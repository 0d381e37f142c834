// Package graphviz exports automata for inspection. Nothing here feeds back
// into the automaton algorithms; a failed export leaves the automaton as it
// was.
package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"os/exec"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"regexfa/internal/automaton"
)

// EpsilonLabel is printed for epsilon transitions.
const EpsilonLabel = "ε"

// Node is one automaton state. The start state is always node 0.
type Node struct {
	ID     int    `yaml:"id"`
	State  string `yaml:"state"`
	Start  bool   `yaml:"start,omitempty"`
	Accept bool   `yaml:"accept,omitempty"`
}

// Edge groups every transition between one ordered pair of states.
type Edge struct {
	From   int      `yaml:"from"`
	To     int      `yaml:"to"`
	Labels []string `yaml:"labels,flow"`
}

// Graph is the node/edge description of an automaton.
type Graph struct {
	Title string `yaml:"title,omitempty"`
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges"`
}

// Export describes a as a graph. Nodes are numbered start first, then
// non-accepting states, then accepting states.
func Export(a *automaton.Automaton) Graph {
	var g Graph
	if re := a.Regex(); re != nil {
		g.Title = re.String()
	}

	ids := map[automaton.State]int{}
	add := func(q automaton.State) {
		if _, ok := ids[q]; ok {
			return
		}
		ids[q] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{
			ID:     len(g.Nodes),
			State:  q.String(),
			Start:  q == a.Start(),
			Accept: a.IsAccepting(q),
		})
	}
	add(a.Start())
	for _, q := range a.States() {
		if !a.IsAccepting(q) {
			add(q)
		}
	}
	for _, q := range a.Accepting() {
		add(q)
	}

	// Ordered pairs are keyed from*n+to so that sorting keys sorts pairs.
	n := len(g.Nodes)
	syms := map[int][]rune{}
	for _, t := range a.Transitions() {
		k := ids[t.From]*n + ids[t.To]
		syms[k] = append(syms[k], t.Symbol)
	}
	pairs := maps.Keys(syms)
	slices.Sort(pairs)
	for _, k := range pairs {
		rs := syms[k]
		slices.Sort(rs)
		labels := make([]string, len(rs))
		for i, r := range rs {
			if r == automaton.Epsilon {
				labels[i] = EpsilonLabel
			} else {
				labels[i] = string(r)
			}
		}
		g.Edges = append(g.Edges, Edge{From: k / n, To: k % n, Labels: labels})
	}
	return g
}

// WriteDOT writes g in the Graphviz dot language.
func WriteDOT(w io.Writer, g Graph) error {
	var b strings.Builder
	b.WriteString("digraph nfa {\n\trankdir=LR;\n")
	if g.Title != "" {
		fmt.Fprintf(&b, "\tregex [label=<<FONT POINT-SIZE=\"24\">%s</FONT>>, shape=square, style=rounded, height=0, width=0, margin=0.05];\n",
			html.EscapeString(g.Title))
	}
	b.WriteString("\t\"*\" [style=invis, height=0, width=0, margin=0];\n")
	for _, n := range g.Nodes {
		shape := "circle"
		if n.Accept {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "\t%d [label=<q<sub><font point-size=\"11\">%d</font></sub>>, shape=%s];\n", n.ID, n.ID, shape)
	}
	for _, e := range g.Edges {
		// dot clips short edge labels without the padding.
		fmt.Fprintf(&b, "\t%d -> %d [label=\"  %s  \"];\n", e.From, e.To, strings.Join(e.Labels, ","))
	}
	if len(g.Nodes) > 0 {
		fmt.Fprintf(&b, "\t\"*\" -> %d [label=\"\"];\n", g.Nodes[0].ID)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteYAML writes g as a YAML document.
func WriteYAML(w io.Writer, g Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("graphviz: encode yaml: %w", err)
	}
	return enc.Close()
}

// Render runs the external dot tool on g and returns its output in the given
// format, e.g. "svg" or "png".
func Render(ctx context.Context, g Graph, format string) ([]byte, error) {
	var in bytes.Buffer
	if err := WriteDOT(&in, g); err != nil {
		return nil, err
	}
	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "dot", "-T"+format)
	cmd.Stdin = &in
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("graphviz: dot -T%s: %w: %s", format, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
