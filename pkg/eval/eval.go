// Package eval executes calculator commands against a Session.
//
// A command is one of QUIT, STORE <r>, or an expression of the form
// value (op value)*, evaluated strictly left to right with no precedence.
package eval

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/bfcalc/pkg/core"
	"github.com/leapstack-labs/bfcalc/pkg/lexer"
	"github.com/leapstack-labs/bfcalc/pkg/rational"
	"github.com/leapstack-labs/bfcalc/pkg/register"
	"github.com/leapstack-labs/bfcalc/pkg/token"
)

// Command keywords.
const (
	QuitCommand = "QUIT"
	StorePrefix = "STORE "
)

// Action says what a successful command did.
type Action int

// Actions.
const (
	// ActionValue means an expression was evaluated to Result.Value.
	ActionValue Action = iota
	// ActionStore means the last value was stored into Result.Register.
	ActionStore
	// ActionQuit means the session should end.
	ActionQuit
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionValue:
		return "value"
	case ActionStore:
		return "store"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Result is the outcome of a successful command.
type Result struct {
	Action Action
	// Command is the trimmed command text.
	Command string
	// Value is the computed value (ActionValue) or the stored value
	// (ActionStore).
	Value rational.Rational
	// Register is the target of a STORE.
	Register rune
}

// Text renders the result for display. Only ActionValue produces output;
// with echo set the command is prefixed as "<command> = <value>".
func (r Result) Text(echo bool) string {
	if r.Action != ActionValue {
		return ""
	}
	if echo {
		return r.Command + " = " + r.Value.String()
	}
	return r.Value.String()
}

// Evaluator executes commands. It holds no per-session state.
type Evaluator struct {
	logger *slog.Logger
}

// Config holds evaluator configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an evaluator.
func New(cfg Config) *Evaluator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{logger: logger}
}

// Execute runs one command against the session using a silent evaluator.
func Execute(s *Session, command string) (Result, error) {
	return New(Config{}).Execute(s, command)
}

// Execute runs one command against the session.
//
// On success an expression's value becomes the session's last value and a
// STORE writes that value into a register. A failed command leaves the
// session unchanged. Failures that are not domain errors are reported with
// core.KindInternal.
func (e *Evaluator) Execute(s *Session, command string) (res Result, err error) {
	trimmed := strings.TrimSpace(command)
	log := e.logger.With("session", s.ID, "command", trimmed)

	defer func() {
		if p := recover(); p != nil {
			err = core.Internal(fmt.Errorf("unexpected failure: %v", p))
		}
		if err != nil {
			log.Debug("command failed", "kind", core.KindOf(err).String(), "error", err)
		}
	}()

	switch {
	case trimmed == QuitCommand:
		log.Debug("quit requested")
		return Result{Action: ActionQuit, Command: trimmed}, nil

	case strings.HasPrefix(trimmed, StorePrefix):
		return e.store(s, trimmed, log)
	}

	if trimmed == "" {
		return Result{}, core.Grammar(core.MsgEmptyCommand)
	}

	tokens, err := lexer.Tokenize(trimmed)
	if err != nil {
		return Result{}, err
	}

	value, err := e.evaluate(s, tokens)
	if err != nil {
		return Result{}, err
	}

	s.SetLast(value)
	log.Debug("evaluated", "value", value.String())
	return Result{Action: ActionValue, Command: trimmed, Value: value}, nil
}

func (e *Evaluator) store(s *Session, trimmed string, log *slog.Logger) (Result, error) {
	arg := strings.TrimPrefix(trimmed, StorePrefix)
	if utf8.RuneCountInString(arg) != 1 {
		return Result{}, core.NewError(core.KindInvalidRegister, core.MsgMalformedStore, trimmed)
	}

	letter, _ := utf8.DecodeRuneInString(arg)
	if !register.Valid(letter) {
		return Result{}, core.NewError(core.KindInvalidRegister, core.MsgRegisterRange, arg)
	}

	value, ok := s.Last()
	if !ok {
		return Result{}, core.Grammar(core.MsgNothingToStore)
	}

	if err := s.registers().Store(letter, value); err != nil {
		return Result{}, err
	}

	log.Debug("stored", "register", string(letter), "value", value.String())
	return Result{Action: ActionStore, Command: trimmed, Value: value, Register: letter}, nil
}

// evaluate walks the tokens: one value, then (operator, value) pairs.
func (e *Evaluator) evaluate(s *Session, tokens []token.Token) (rational.Rational, error) {
	if len(tokens) == 0 {
		return rational.Rational{}, core.Grammar(core.MsgEmptyCommand)
	}

	first, ok, err := resolve(s, tokens[0])
	if err != nil {
		return rational.Rational{}, err
	}
	if !ok {
		return rational.Rational{}, core.Grammar(core.MsgFirstNotNumeric)
	}
	acc := NewAccumulator(first)

	for i := 1; i < len(tokens); i += 2 {
		op, isOp := tokens[i].(token.Op)
		if !isOp {
			return rational.Rational{}, core.Grammar(core.MsgExpectedOperator)
		}
		if i+1 >= len(tokens) {
			return rational.Rational{}, core.Grammar(core.MsgMidInstruction)
		}

		operand, ok, err := resolve(s, tokens[i+1])
		if err != nil {
			return rational.Rational{}, err
		}
		if !ok {
			return rational.Rational{}, core.Grammar(core.MsgExpectedNumeric)
		}

		if err := acc.Apply(op.Kind, operand); err != nil {
			return rational.Rational{}, err
		}
	}

	return acc.Value(), nil
}

// resolve returns the value of a numeric token. ok is false for operators.
func resolve(s *Session, t token.Token) (v rational.Rational, ok bool, err error) {
	switch t := t.(type) {
	case token.Number:
		return t.Value, true, nil
	case token.Register:
		v, err := s.registers().Get(t.Letter)
		if err != nil {
			return rational.Rational{}, false, err
		}
		return v, true, nil
	case token.Op:
		return rational.Rational{}, false, nil
	default:
		return rational.Rational{}, false, core.Internal(fmt.Errorf("unknown token %T", t))
	}
}
