// Package rational implements exact, arbitrary-precision fractions.
//
// A Rational is immutable and always kept in canonical form: lowest terms,
// sign carried by the numerator, denominator positive. Zero is stored as 0/1.
package rational

import (
	"math/big"
	"strings"

	"github.com/leapstack-labs/bfcalc/pkg/core"
)

// Rational is an exact fraction numerator/denominator.
//
// The zero value is a valid Rational equal to 0.
type Rational struct {
	num *big.Int
	den *big.Int
}

var (
	bigOne    = big.NewInt(1)
	bigNegOne = big.NewInt(-1)
)

// Zero is the Rational 0.
var Zero = Rational{}

// One is the Rational 1.
var One = FromInt64(1)

// New builds a normalized Rational from a numerator and denominator.
// The arguments are not retained. A zero denominator is rejected with a
// division-by-zero error.
func New(num, den *big.Int) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, core.NewError(core.KindDivisionByZero, core.MsgZeroDenominator, num.String()+"/0")
	}
	return normalize(new(big.Int).Set(num), new(big.Int).Set(den)), nil
}

// FromInts builds a normalized Rational from machine integers.
func FromInts(num, den int64) (Rational, error) {
	return New(big.NewInt(num), big.NewInt(den))
}

// FromInt64 builds an integer-valued Rational.
func FromInt64(n int64) Rational {
	return Rational{num: big.NewInt(n), den: big.NewInt(1)}
}

// FromInt builds an integer-valued Rational from a big integer.
func FromInt(n *big.Int) Rational {
	return Rational{num: new(big.Int).Set(n), den: big.NewInt(1)}
}

// MustNew is like FromInts but panics on a zero denominator.
// It is intended for constants and tests.
func MustNew(num, den int64) Rational {
	r, err := FromInts(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// Parse reads a literal of the form N or N/D, where N and D are signed
// decimal integers. The first '/' separates numerator from denominator.
func Parse(s string) (Rational, error) {
	numText, denText, hasSlash := strings.Cut(s, "/")

	num, ok := parseInt(numText)
	if !ok {
		return Rational{}, core.NewError(core.KindParse, core.MsgInvalidLiteral, s)
	}
	if !hasSlash {
		return Rational{num: num, den: big.NewInt(1)}, nil
	}

	den, ok := parseInt(denText)
	if !ok {
		return Rational{}, core.NewError(core.KindParse, core.MsgInvalidLiteral, s)
	}
	if den.Sign() == 0 {
		return Rational{}, core.NewError(core.KindDivisionByZero, core.MsgZeroDenominator, s)
	}
	return normalize(num, den), nil
}

// parseInt accepts an optional sign followed by one or more ASCII digits.
func parseInt(s string) (*big.Int, bool) {
	digits := s
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if digits == "" {
		return nil, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, false
		}
	}
	return new(big.Int).SetString(s, 10)
}

// normalize reduces num/den to canonical form. It takes ownership of both
// arguments. den may be negative but must not be zero.
func normalize(num, den *big.Int) Rational {
	numSign := num.Sign()
	if numSign == 0 {
		numSign = 1
	}
	denSign := den.Sign()
	if denSign == 0 {
		denSign = 1
	}

	num.Abs(num)
	den.Abs(den)

	gcd := new(big.Int).GCD(nil, nil, num, den)
	if gcd.Sign() == 0 {
		gcd.SetInt64(1)
	}

	num.Quo(num, gcd)
	den.Quo(den, gcd)
	if numSign*denSign < 0 {
		num.Neg(num)
	}
	return Rational{num: num, den: den}
}

// Normalize returns r re-reduced to canonical form.
// For any Rational built by this package the result equals r.
func (r Rational) Normalize() Rational {
	return normalize(r.Num(), r.Den())
}

// Num returns a copy of the numerator.
func (r Rational) Num() *big.Int {
	if r.num == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(r.num)
}

// Den returns a copy of the denominator. It is always positive.
func (r Rational) Den() *big.Int {
	if r.den == nil {
		return big.NewInt(1)
	}
	return new(big.Int).Set(r.den)
}

func (r Rational) n() *big.Int {
	if r.num == nil {
		return new(big.Int)
	}
	return r.num
}

func (r Rational) d() *big.Int {
	if r.den == nil {
		return bigOne
	}
	return r.den
}

// Sign returns -1, 0 or +1.
func (r Rational) Sign() int { return r.n().Sign() }

// IsZero reports whether r == 0.
func (r Rational) IsZero() bool { return r.n().Sign() == 0 }

// IsInt reports whether r has denominator 1.
func (r Rational) IsInt() bool { return r.d().Cmp(bigOne) == 0 }

// Cmp compares r and o and returns -1, 0 or +1.
func (r Rational) Cmp(o Rational) int {
	lhs := new(big.Int).Mul(r.n(), o.d())
	rhs := new(big.Int).Mul(o.n(), r.d())
	return lhs.Cmp(rhs)
}

// Equal reports whether r and o denote the same value.
func (r Rational) Equal(o Rational) bool {
	return r.n().Cmp(o.n()) == 0 && r.d().Cmp(o.d()) == 0
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	num := new(big.Int).Mul(r.n(), o.d())
	num.Add(num, new(big.Int).Mul(o.n(), r.d()))
	den := new(big.Int).Mul(r.d(), o.d())
	return normalize(num, den)
}

// Subtract returns r - o.
func (r Rational) Subtract(o Rational) Rational {
	return r.Add(o.Negate())
}

// Multiply returns r * o.
func (r Rational) Multiply(o Rational) Rational {
	num := new(big.Int).Mul(r.n(), o.n())
	den := new(big.Int).Mul(r.d(), o.d())
	return normalize(num, den)
}

// Divide returns r / o, or a division-by-zero error when o is zero.
func (r Rational) Divide(o Rational) (Rational, error) {
	if o.IsZero() {
		return Rational{}, core.NewError(core.KindDivisionByZero, core.MsgZeroDivisor, r.String()+" / "+o.String())
	}
	inv, err := o.Reciprocal()
	if err != nil {
		return Rational{}, err
	}
	return r.Multiply(inv), nil
}

// Negate returns -r.
func (r Rational) Negate() Rational {
	return r.Multiply(Rational{num: bigNegOne, den: bigOne})
}

// Reciprocal returns 1/r, or a division-by-zero error when r is zero.
func (r Rational) Reciprocal() (Rational, error) {
	if r.IsZero() {
		return Rational{}, core.NewError(core.KindDivisionByZero, core.MsgZeroReciprocal, "")
	}
	return normalize(r.Den(), r.Num()), nil
}

// Fractional returns the fractional part of r, truncated toward zero.
// For -7/2 it returns -1/2.
func (r Rational) Fractional() Rational {
	rem := new(big.Int).Rem(r.n(), r.d())
	return normalize(rem, r.Den())
}

// String formats r as "0", an integer, or "n/d".
func (r Rational) String() string {
	if r.IsZero() {
		return "0"
	}
	if r.IsInt() {
		return r.n().String()
	}
	return r.n().String() + "/" + r.d().String()
}
