package rational

import (
	"math/big"
	"testing"

	"github.com/leapstack-labs/bfcalc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		want     string
	}{
		{"reduces to integer", 4, 2, "2"},
		{"negative numerator", -2, 4, "-1/2"},
		{"negative denominator folds sign", 2, -4, "-1/2"},
		{"both negative", -3, -9, "1/3"},
		{"zero", 0, 5, "0"},
		{"zero with negative denominator", 0, -5, "0"},
		{"already reduced", 3, 7, "3/7"},
		{"integer", 42, 1, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MustNew(tt.num, tt.den)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestCanonicalForm(t *testing.T) {
	r := MustNew(6, -8)
	assert.Equal(t, int64(-3), r.Num().Int64())
	assert.Equal(t, int64(4), r.Den().Int64())

	zero := MustNew(0, -17)
	assert.Equal(t, int64(0), zero.Num().Int64())
	assert.Equal(t, int64(1), zero.Den().Int64(), "zero is stored as 0/1")
	assert.True(t, zero.Equal(Zero))
}

func TestZeroValueIsZero(t *testing.T) {
	var r Rational
	assert.True(t, r.IsZero())
	assert.Equal(t, "0", r.String())
	assert.True(t, r.Add(One).Equal(One))
}

func TestNewZeroDenominator(t *testing.T) {
	_, err := FromInts(1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDivisionByZero)

	_, err = FromInts(0, 0)
	assert.ErrorIs(t, err, core.ErrDivisionByZero)
}

func TestNewDoesNotRetainArguments(t *testing.T) {
	num, den := big.NewInt(2), big.NewInt(4)
	r, err := New(num, den)
	require.NoError(t, err)

	num.SetInt64(100)
	assert.Equal(t, "1/2", r.String())
	assert.Equal(t, int64(4), den.Int64())
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr *core.Error
	}{
		{input: "5", want: "5"},
		{input: "-5", want: "-5"},
		{input: "+5", want: "5"},
		{input: "1/2", want: "1/2"},
		{input: "2/4", want: "1/2"},
		{input: "-2/4", want: "-1/2"},
		{input: "2/-4", want: "-1/2"},
		{input: "0/7", want: "0"},
		{input: "123456789012345678901234567890/10", want: "12345678901234567890123456789"},
		{input: "", wantErr: core.ErrParse},
		{input: "-", wantErr: core.ErrParse},
		{input: "+", wantErr: core.ErrParse},
		{input: "abc", wantErr: core.ErrParse},
		{input: "1.5", wantErr: core.ErrParse},
		{input: "1/", wantErr: core.ErrParse},
		{input: "/2", wantErr: core.ErrParse},
		{input: "1/2/3", wantErr: core.ErrParse},
		{input: "1_000", wantErr: core.ErrParse},
		{input: "0x10", wantErr: core.ErrParse},
		{input: " 1", wantErr: core.ErrParse},
		{input: "1/0", wantErr: core.ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := Parse(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestArithmetic(t *testing.T) {
	half := MustNew(1, 2)
	third := MustNew(1, 3)

	assert.Equal(t, "5/6", half.Add(third).String())
	assert.Equal(t, "1/6", half.Subtract(third).String())
	assert.Equal(t, "1/6", half.Multiply(third).String())
	assert.Equal(t, "-1/2", half.Negate().String())

	q, err := half.Divide(third)
	require.NoError(t, err)
	assert.Equal(t, "3/2", q.String())

	inv, err := MustNew(-2, 3).Reciprocal()
	require.NoError(t, err)
	assert.Equal(t, "-3/2", inv.String())
}

func TestArithmeticDoesNotMutateOperands(t *testing.T) {
	a := MustNew(3, 4)
	b := MustNew(5, 6)

	_ = a.Add(b)
	_ = a.Multiply(b)
	_, _ = a.Divide(b)
	_ = a.Negate()

	assert.Equal(t, "3/4", a.String())
	assert.Equal(t, "5/6", b.String())
}

func TestDivisionByZero(t *testing.T) {
	_, err := One.Divide(Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDivisionByZero)

	_, err = Zero.Reciprocal()
	assert.ErrorIs(t, err, core.ErrDivisionByZero)

	q, err := Zero.Divide(One)
	require.NoError(t, err)
	assert.True(t, q.IsZero())
}

func TestFractional(t *testing.T) {
	assert.Equal(t, "1/2", MustNew(7, 2).Fractional().String())
	assert.Equal(t, "-1/2", MustNew(-7, 2).Fractional().String())
	assert.Equal(t, "0", MustNew(6, 3).Fractional().String())
	assert.Equal(t, "2/5", MustNew(2, 5).Fractional().String())
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, MustNew(1, 3).Cmp(MustNew(1, 2)))
	assert.Equal(t, 1, MustNew(-1, 3).Cmp(MustNew(-1, 2)))
	assert.Equal(t, 0, MustNew(2, 4).Cmp(MustNew(1, 2)))
	assert.Equal(t, -1, MustNew(-1, 2).Sign())
	assert.True(t, FromInt64(3).IsInt())
	assert.False(t, MustNew(3, 2).IsInt())
}

func TestNormalizeIdempotent(t *testing.T) {
	for n := int64(-12); n <= 12; n++ {
		for d := int64(-12); d <= 12; d++ {
			if d == 0 {
				continue
			}
			r := MustNew(n, d)
			again := r.Normalize()
			assert.Equal(t, 0, r.Num().Cmp(again.Num()), "numerator of %d/%d", n, d)
			assert.Equal(t, 0, r.Den().Cmp(again.Den()), "denominator of %d/%d", n, d)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for n := int64(-20); n <= 20; n++ {
		for d := int64(1); d <= 20; d++ {
			r := MustNew(n, d)
			parsed, err := Parse(r.String())
			require.NoError(t, err, "parsing %q", r.String())
			assert.True(t, r.Equal(parsed), "%s did not round trip", r)
		}
	}
}

func TestReciprocalProductIsOne(t *testing.T) {
	values := []int64{1, -1, 2, -3, 7, 12, -97, 1 << 40}
	for _, a := range values {
		for _, b := range values {
			x := MustNew(a, b)
			y := MustNew(b, a)
			assert.True(t, x.Multiply(y).Equal(One), "(%d/%d) * (%d/%d)", a, b, b, a)
		}
	}
}

func TestLargeValuesStayExact(t *testing.T) {
	big1, ok := new(big.Int).SetString("340282366920938463463374607431768211457", 10)
	require.True(t, ok)
	r, err := New(big1, big.NewInt(3))
	require.NoError(t, err)

	back := r.Multiply(FromInt64(3))
	assert.Equal(t, big1.String(), back.String())
}
