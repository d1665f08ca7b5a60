// Package lexer splits calculator commands into tokens.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/bfcalc/pkg/rational"
	"github.com/leapstack-labs/bfcalc/pkg/register"
	"github.com/leapstack-labs/bfcalc/pkg/token"
)

// Separator is the only word separator. Runs of separators produce empty
// words, which are rejected as invalid literals.
const Separator = " "

// Lexer tokenizes a single command.
type Lexer struct {
	words   []string
	readPos int // index of the next word
}

// NewLexer creates a new Lexer for the given input.
// The input is split eagerly; tokens are classified on demand.
func NewLexer(input string) *Lexer {
	return &Lexer{words: strings.Split(input, Separator)}
}

// More reports whether words remain.
func (l *Lexer) More() bool {
	return l.readPos < len(l.words)
}

// NextToken classifies the next word. It must only be called while More
// reports true.
func (l *Lexer) NextToken() (token.Token, error) {
	word := l.words[l.readPos]
	l.readPos++
	return Classify(word)
}

// Classify turns one word into a token: an exact operator symbol, a single
// register letter, or otherwise a rational literal.
func Classify(word string) (token.Token, error) {
	if op, ok := token.LookupOp(word); ok {
		return token.Op{Kind: op}, nil
	}

	if utf8.RuneCountInString(word) == 1 {
		if r, _ := utf8.DecodeRuneInString(word); register.Valid(r) {
			return token.Register{Letter: r}, nil
		}
	}

	v, err := rational.Parse(word)
	if err != nil {
		return nil, err
	}
	return token.Number{Value: v}, nil
}

// Tokenize splits input on single spaces and classifies every word in
// order. Empty input yields a single empty word, which fails to parse.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	tokens := make([]token.Token, 0, len(l.words))
	for l.More() {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
