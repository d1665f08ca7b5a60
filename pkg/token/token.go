// Package token defines the tokens of a calculator command.
//
// A Token is a closed sum type: Number, Register or Op. Only this package
// can add variants, so a type switch over the three is exhaustive.
package token

import (
	"fmt"

	"github.com/leapstack-labs/bfcalc/pkg/rational"
)

// Token is one classified word of a command.
type Token interface {
	fmt.Stringer
	isToken()
}

// Number is a numeric literal.
type Number struct {
	Value rational.Rational
}

// Register is a reference to one of the registers 'a'..'z'.
type Register struct {
	Letter rune
}

// Op is an arithmetic operator.
type Op struct {
	Kind OpKind
}

func (Number) isToken()   {}
func (Register) isToken() {}
func (Op) isToken()       {}

func (n Number) String() string   { return n.Value.String() }
func (r Register) String() string { return string(r.Letter) }
func (o Op) String() string       { return o.Kind.String() }

// OpKind identifies an arithmetic operator.
type OpKind int

// Operators.
const (
	Add OpKind = iota + 1
	Subtract
	Multiply
	Divide
)

// String returns the operator's symbol.
func (k OpKind) String() string {
	if s, ok := opSymbols[k]; ok {
		return s
	}
	return fmt.Sprintf("OP(%d)", int(k))
}

// opSymbols maps operators to their textual form.
var opSymbols = map[OpKind]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "*",
	Divide:   "/",
}

// operators is the reverse of opSymbols.
var operators = map[string]OpKind{
	"+": Add,
	"-": Subtract,
	"*": Multiply,
	"/": Divide,
}

// LookupOp returns the operator spelled exactly as word.
func LookupOp(word string) (OpKind, bool) {
	k, ok := operators[word]
	return k, ok
}

// IsNumeric reports whether t can stand where a value is expected.
func IsNumeric(t Token) bool {
	switch t.(type) {
	case Number, Register:
		return true
	default:
		return false
	}
}
