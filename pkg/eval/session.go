package eval

import (
	"github.com/google/uuid"
	"github.com/leapstack-labs/bfcalc/pkg/rational"
	"github.com/leapstack-labs/bfcalc/pkg/register"
)

// Session is the state that survives between commands: the registers and
// the most recently computed value. It is passed explicitly to every
// Execute call and is not safe for concurrent use.
type Session struct {
	// ID identifies the session in logs.
	ID string
	// Registers is read by register references and written by STORE.
	Registers *register.File

	last    rational.Rational
	hasLast bool
}

// NewSession returns a session with zeroed registers and no last value.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Registers: register.New(),
	}
}

// Last returns the most recently computed value and whether one exists.
func (s *Session) Last() (rational.Rational, bool) {
	return s.last, s.hasLast
}

// SetLast records v as the most recently computed value.
func (s *Session) SetLast(v rational.Rational) {
	s.last = v
	s.hasLast = true
}

// ForgetLast drops the last value. Registers are kept.
func (s *Session) ForgetLast() {
	s.last = rational.Rational{}
	s.hasLast = false
}

func (s *Session) registers() *register.File {
	if s.Registers == nil {
		s.Registers = register.New()
	}
	return s.Registers
}
