package core

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Kind
// =============================================================================

// Kind classifies an evaluation failure.
type Kind int

// Error kinds. Every kind except KindInternal is recoverable at command
// granularity.
const (
	// KindInternal marks failures that are not one of the domain kinds.
	KindInternal Kind = iota
	// KindParse indicates a malformed numeric literal.
	KindParse
	// KindGrammar indicates a token sequence with the wrong shape.
	KindGrammar
	// KindDivisionByZero indicates a zero divisor, reciprocal of zero,
	// or a zero denominator at construction.
	KindDivisionByZero
	// KindInvalidRegister indicates a register outside 'a'-'z' or a
	// malformed STORE argument.
	KindInvalidRegister
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindGrammar:
		return "grammar"
	case KindDivisionByZero:
		return "division_by_zero"
	case KindInvalidRegister:
		return "invalid_register"
	default:
		return "internal"
	}
}

// ParseKind converts a string to a Kind value.
// Returns the kind and true if valid, or KindInternal and false if invalid.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "parse":
		return KindParse, true
	case "grammar":
		return KindGrammar, true
	case "division_by_zero":
		return KindDivisionByZero, true
	case "invalid_register":
		return KindInvalidRegister, true
	case "internal":
		return KindInternal, true
	default:
		return KindInternal, false
	}
}

// =============================================================================
// Error
// =============================================================================

// Error is the structured error produced by the rational, register, lexer
// and eval packages.
type Error struct {
	Kind    Kind
	Message string
	// Input is the offending literal, letter or command, if any.
	Input string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Label())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Input != "" {
		fmt.Fprintf(&b, " (%q)", e.Input)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel of the same kind.
// A sentinel is an *Error with an empty Message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message != "" {
		return t == e
	}
	return t.Kind == e.Kind
}

// Kinds returns every kind, domain kinds first.
func Kinds() []Kind {
	return []Kind{KindParse, KindGrammar, KindDivisionByZero, KindInvalidRegister, KindInternal}
}

// Label returns the human-readable prefix used in error messages.
func (k Kind) Label() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindGrammar:
		return "grammar error"
	case KindDivisionByZero:
		return "division by zero"
	case KindInvalidRegister:
		return "invalid register"
	default:
		return "internal error"
	}
}

// Description explains when errors of kind k occur.
func (k Kind) Description() string {
	switch k {
	case KindParse:
		return "A word is not an operator, a register or a valid N or N/D literal"
	case KindGrammar:
		return "The tokens do not form value (operator value)*, or STORE has no value to save"
	case KindDivisionByZero:
		return "Dividing by zero, or a literal with a zero denominator"
	case KindInvalidRegister:
		return "A register outside a-z, or STORE not followed by exactly one letter"
	default:
		return "An unexpected failure; the session continues"
	}
}

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrParse           = &Error{Kind: KindParse}
	ErrGrammar         = &Error{Kind: KindGrammar}
	ErrDivisionByZero  = &Error{Kind: KindDivisionByZero}
	ErrInvalidRegister = &Error{Kind: KindInvalidRegister}
	ErrInternal        = &Error{Kind: KindInternal}
)

// Common error messages.
const (
	MsgEmptyCommand     = "empty command"
	MsgFirstNotNumeric  = "first token not numeric"
	MsgExpectedOperator = "non-operator where operator expected"
	MsgMidInstruction   = "command ended mid-instruction"
	MsgExpectedNumeric  = "non-numeric where numeric expected"
	MsgNothingToStore   = "no value to store"
	MsgMalformedStore   = "STORE command not in format STORE <register>"
	MsgRegisterRange    = "register must be a lowercase letter a-z"
	MsgInvalidLiteral   = "expected number but found non-number"
	MsgZeroDenominator  = "zero denominator"
	MsgZeroDivisor      = "divisor is zero"
	MsgZeroReciprocal   = "reciprocal of zero"
)

// NewError creates an error of the given kind.
func NewError(kind Kind, msg, input string) *Error {
	return &Error{Kind: kind, Message: msg, Input: input}
}

// Grammar creates a grammar error with the given message.
func Grammar(msg string) *Error {
	return &Error{Kind: KindGrammar, Message: msg}
}

// KindOf returns the kind of err. Errors that carry no *Error in their
// chain are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Internal wraps an unexpected failure so it is never mistaken for a
// domain error.
func Internal(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
}
