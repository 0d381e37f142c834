package regex

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/google/go-cmp/cmp"
)

func ch(x rune) Node      { return &Char{X: x} }
func seq(a, b Node) Node  { return &Seq{R0: a, R1: b} }
func disj(a, b Node) Node { return &Disj{R0: a, R1: b} }
func star(a Node) Node    { return &Star{R0: a} }
func eps() Node           { return &Epsilon{} }

func quietOptions(buf *bytes.Buffer) Options {
	return Options{Logger: slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
}

func TestParseTree(t *testing.T) {
	tests := []struct {
		pattern string
		want    Node
	}{
		{"", eps()},
		{"a", ch('a')},
		{"7", ch('7')},
		{"ab", seq(ch('a'), ch('b'))},
		{"abc", seq(ch('a'), seq(ch('b'), ch('c')))},
		{"a|b", disj(ch('a'), ch('b'))},
		{"a|b|c", disj(ch('a'), disj(ch('b'), ch('c')))},
		{"a*", star(ch('a'))},
		{"a***", star(ch('a'))},
		{"ab*", seq(ch('a'), star(ch('b')))},
		{"(a|b)*c", seq(star(disj(ch('a'), ch('b'))), ch('c'))},
		{"a|bc*", disj(ch('a'), seq(ch('b'), star(ch('c'))))},
		{"((a))", ch('a')},
		{"()", eps()},
		{"a|", disj(ch('a'), eps())},
		{"|a", disj(eps(), ch('a'))},
		{"*", star(eps())},
		{" a  b | c ", disj(seq(ch('a'), ch('b')), ch('c'))},
	}
	for _, tt := range tests {
		got := Parse(tt.pattern)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
		}
	}
}

func TestParseUnsupportedSymbolFallsBack(t *testing.T) {
	for _, pattern := range []string{"a+b", "A", "a?", "[ab]", "a\tb", "é"} {
		if diff := cmp.Diff(eps(), Parse(pattern)); diff != "" {
			t.Errorf("Parse(%q) should be epsilon:\n%s", pattern, diff)
		}
	}
}

func TestParseTrailingContentIgnored(t *testing.T) {
	if diff := cmp.Diff(ch('a'), Parse("a)b")); diff != "" {
		t.Fatalf("trailing content not ignored:\n%s", diff)
	}
}

func TestParseUnmatchedParenRecovers(t *testing.T) {
	var buf bytes.Buffer
	got, err := ParseWithOptions("a(b", quietOptions(&buf))
	if err != nil {
		t.Fatalf("lenient parse returned error: %v", err)
	}
	if diff := cmp.Diff(seq(ch('a'), eps()), got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "badly matched parens") {
		t.Fatalf("expected diagnostic, log was %q", buf.String())
	}
}

func TestParseStrict(t *testing.T) {
	tests := []struct {
		pattern string
		offset  int
	}{
		{"a(b", 1},
		{"a+b", 1},
		{"a)b", 1},
		{"((a)", 0},
	}
	for _, tt := range tests {
		_, err := ParseWithOptions(tt.pattern, Options{Strict: true})
		if err == nil {
			t.Errorf("strict Parse(%q) should fail", tt.pattern)
			continue
		}
		var perr participle.Error
		if !errors.As(err, &perr) {
			t.Errorf("strict Parse(%q) error %T is not a participle.Error", tt.pattern, err)
			continue
		}
		if perr.Position().Offset != tt.offset {
			t.Errorf("strict Parse(%q) offset = %d, want %d", tt.pattern, perr.Position().Offset, tt.offset)
		}
	}

	got, err := ParseWithOptions("(a|b)*c", Options{Strict: true})
	if err != nil {
		t.Fatalf("strict parse of valid pattern: %v", err)
	}
	if diff := cmp.Diff(Parse("(a|b)*c"), got); diff != "" {
		t.Fatalf("strict and lenient disagree:\n%s", diff)
	}
}

func TestNodeString(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"", "ε"},
		{"a", "a"},
		{"a*", "a*"},
		{"(ab)*", "(ab)*"},
		{"(a|b)*c", "(a|b)*c"},
		{"(a|b)(c|d)", "(a|b)(c|d)"},
		{"a|bc", "a|bc"},
		{"(a*)*", "(a*)*"},
		{"((a|b)(c|d))*", "((a|b)(c|d))*"},
	}
	for _, tt := range tests {
		if got := Parse(tt.pattern).String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, pattern := range []string{"a|b", "(a|b)*c", "ab*c", "(ab|c)*d", "0|1*"} {
		first := Parse(pattern)
		second := Parse(first.String())
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("round trip of %q changed the tree:\n%s", pattern, diff)
		}
	}
}
