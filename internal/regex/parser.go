package regex

import (
	"log/slog"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Options configures parsing.
type Options struct {
	// Strict reports malformed input as an error instead of recovering.
	Strict bool

	// Logger receives parse diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns the lenient parser configuration.
func DefaultOptions() Options {
	return Options{}
}

// Parse parses pattern leniently. Unsupported characters turn the whole
// pattern into Epsilon and an unmatched '(' recovers its group as Epsilon.
// Content after a complete expression is ignored.
func Parse(pattern string) Node {
	n, _ := ParseWithOptions(pattern, DefaultOptions())
	return n
}

// ParseWithOptions parses pattern. The error is always nil unless
// opts.Strict is set, in which case it is a participle.Error with the
// offending position.
func ParseWithOptions(pattern string, opts Options) (Node, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	toks, err := tokenize(pattern)
	if err != nil {
		if opts.Strict {
			return nil, err
		}
		log.Debug("unsupported symbol, pattern treated as epsilon", "pattern", pattern, "err", err)
		return &Epsilon{}, nil
	}

	p := &parser{toks: toks, strict: opts.Strict, log: log}
	n := p.disj()
	if p.err != nil {
		return nil, p.err
	}
	if opts.Strict && !p.eof() {
		return nil, participle.Errorf(p.look().Pos, "unexpected %q", p.look().Value)
	}
	return n, nil
}

type parser struct {
	toks   []lexer.Token
	pos    int
	strict bool
	log    *slog.Logger
	err    error
}

func (p *parser) look() lexer.Token { return p.toks[p.pos] }

func (p *parser) eof() bool { return p.look().EOF() }

// peek returns the next structural character or symbol, 0 at end of input.
func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return rune(p.look().Value[0])
}

func (p *parser) next() {
	if !p.eof() {
		p.pos++
	}
}

// disj := juxt ('|' disj)?
func (p *parser) disj() Node {
	a := p.juxt()
	if p.peek() == '|' {
		p.next()
		b := p.disj()
		return &Disj{R0: a, R1: b}
	}
	return a
}

// juxt := star (juxt)?
func (p *parser) juxt() Node {
	a := p.star()
	if c := p.peek(); c != 0 && c != ')' && c != '|' && p.err == nil {
		b := p.juxt()
		return &Seq{R0: a, R1: b}
	}
	return a
}

// star := paren ('*')*
func (p *parser) star() Node {
	a := p.paren()
	if p.peek() != '*' {
		return a
	}
	for p.peek() == '*' {
		p.next()
	}
	return &Star{R0: a}
}

// paren := '(' disj ')' | symbol | <empty>
func (p *parser) paren() Node {
	switch {
	case p.peek() == '(':
		open := p.look().Pos
		p.next()
		a := p.disj()
		if p.peek() != ')' {
			if p.strict {
				if p.err == nil {
					p.err = participle.Errorf(open, "unmatched '('")
				}
				return &Epsilon{}
			}
			p.log.Warn("badly matched parens", "offset", open.Offset)
			return &Epsilon{}
		}
		p.next()
		return a
	case !p.eof() && p.look().Type == tokSymbol:
		x := p.peek()
		p.next()
		return &Char{X: x}
	default:
		return &Epsilon{}
	}
}
