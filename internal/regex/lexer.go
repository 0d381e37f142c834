package regex

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Symbols accepted as regex literals.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var lexDef = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Symbol", Pattern: `[0-9a-z]`},
	{Name: "Punct", Pattern: `[()|*]`},
	{Name: "Whitespace", Pattern: ` +`},
})

var (
	tokSymbol     = lexDef.Symbols()["Symbol"]
	tokWhitespace = lexDef.Symbols()["Whitespace"]
)

// tokenize splits pattern into tokens, dropping whitespace. The returned slice
// always ends with an EOF token. Any character outside the alphabet and the
// structural set fails the whole input.
func tokenize(pattern string) ([]lexer.Token, error) {
	lex, err := lexDef.LexString("", pattern)
	if err != nil {
		return nil, err
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, t := range all {
		if t.Type != tokWhitespace {
			out = append(out, t)
		}
	}
	return out, nil
}
