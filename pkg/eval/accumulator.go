package eval

import (
	"fmt"

	"github.com/leapstack-labs/bfcalc/pkg/core"
	"github.com/leapstack-labs/bfcalc/pkg/rational"
	"github.com/leapstack-labs/bfcalc/pkg/token"
)

// Accumulator holds the running value of one command.
type Accumulator struct {
	value rational.Rational
}

// NewAccumulator starts an accumulator at v.
func NewAccumulator(v rational.Rational) *Accumulator {
	return &Accumulator{value: v}
}

// Value returns the current value.
func (a *Accumulator) Value() rational.Rational { return a.value }

// Add adds v to the accumulator.
func (a *Accumulator) Add(v rational.Rational) { a.value = a.value.Add(v) }

// Subtract subtracts v from the accumulator.
func (a *Accumulator) Subtract(v rational.Rational) { a.value = a.value.Subtract(v) }

// Multiply multiplies the accumulator by v.
func (a *Accumulator) Multiply(v rational.Rational) { a.value = a.value.Multiply(v) }

// Divide divides the accumulator by v. On error the value is unchanged.
func (a *Accumulator) Divide(v rational.Rational) error {
	q, err := a.value.Divide(v)
	if err != nil {
		return err
	}
	a.value = q
	return nil
}

// Clear resets the accumulator to zero.
func (a *Accumulator) Clear() { a.value = rational.Zero }

// Apply applies op with v as the right-hand operand.
func (a *Accumulator) Apply(op token.OpKind, v rational.Rational) error {
	switch op {
	case token.Add:
		a.Add(v)
	case token.Subtract:
		a.Subtract(v)
	case token.Multiply:
		a.Multiply(v)
	case token.Divide:
		return a.Divide(v)
	default:
		return core.Internal(fmt.Errorf("unknown operator %s", op))
	}
	return nil
}
