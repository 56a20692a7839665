package rational

import (
	"context"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  *Rat
		want *Rat
	}{
		{"add", Add(Half, Third), New(5, 6)},
		{"sub", Sub(Half, Third), New(1, 6)},
		{"mul", Mul(New(2, 3), New(9, 4)), New(3, 2)},
		{"quo", Quo(One, New(-3, 7)), New(-7, 3)},
		{"neg", Neg(Quarter), New(-1, 4)},
		{"inv", Inv(New(5, 2)), New(2, 5)},
		{"lowest terms", New(6, -4), New(-3, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.got)
			assert.True(t, tt.want.Equal(tt.got), "got %s, want %s", tt.got, tt.want)
		})
	}
}

func TestNilPropagates(t *testing.T) {
	assert.Nil(t, Add(nil, One))
	assert.Nil(t, Mul(One, nil))
	assert.Nil(t, Neg(nil))
	assert.Nil(t, Sqrt(nil))
	assert.Nil(t, Pow(nil, Two))
	assert.Nil(t, Inv(Zero))
	assert.Nil(t, Quo(One, Zero))
	assert.Nil(t, BigInt(nil))
	assert.Equal(t, math.MaxInt32, DigitsRequired(nil))
}

func TestBoundedSize(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), MaxBits-10)
	x := FromBigInt(huge)
	require.NotNil(t, x)
	assert.Nil(t, Mul(x, FromBigInt(huge)), "product exceeds the size bound")
	assert.Nil(t, FromBigInt(new(big.Int).Lsh(huge, 20)))
}

func TestSqrt(t *testing.T) {
	assert.True(t, New(3, 7).Equal(Sqrt(New(9, 49))))
	assert.True(t, Zero.Equal(Sqrt(Zero)))
	assert.Nil(t, Sqrt(Two))
	assert.Nil(t, Sqrt(New(4, 3)))
	assert.Nil(t, Sqrt(New(-4, 1)))

	root := new(big.Int).Exp(big.NewInt(10), big.NewInt(80), nil)
	sq := FromBigInt(new(big.Int).Mul(root, root))
	assert.True(t, FromBigInt(root).Equal(Sqrt(sq)))
}

func TestPow(t *testing.T) {
	tests := []struct {
		name string
		base *Rat
		exp  int64
		want *Rat
	}{
		{"square", New(2, 3), 2, New(4, 9)},
		{"negative exponent", New(2, 3), -3, New(27, 8)},
		{"zero exponent", New(5, 1), 0, One},
		{"zero base", Zero, 7, Zero},
		{"minus one odd", MinusOne, 1000001, MinusOne},
		{"minus one even", MinusOne, 1000000, One},
		{"two to the hundred", Two, 100, FromBigInt(new(big.Int).Lsh(big.NewInt(1), 100))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PowInt(tt.base, big.NewInt(tt.exp))
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	assert.Nil(t, PowInt(Two, big.NewInt(MaxBits+1)))
	assert.Nil(t, PowInt(Zero, big.NewInt(-1)))
	assert.Nil(t, Pow(Two, Half))
	assert.True(t, New(1, 8).Equal(Pow(Half, New(3, 1))))
}

func TestDigitsRequired(t *testing.T) {
	tests := []struct {
		r    *Rat
		want int
	}{
		{FromInt64(100), 0},
		{Half, 1},
		{New(1, 8), 3},
		{New(3, 40), 3},
		{New(1, 625), 4},
		{Third, math.MaxInt32},
		{New(1, 14), math.MaxInt32},
	}
	for _, tt := range tests {
		t.Run(tt.r.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, DigitsRequired(tt.r))
		})
	}
}

func TestToStringTruncated(t *testing.T) {
	tests := []struct {
		r    *Rat
		n    int
		want string
	}{
		{Third, 5, "0.33333"},
		{New(-2, 3), 4, "-0.6666"},
		{New(22, 7), 0, "3"},
		{New(1, 8), 2, "0.12"},
		{New(-1, 1000), 2, "0.00"},
		{FromInt64(-42), 1, "-42.0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.ToStringTruncated(tt.n))
		})
	}
}

func TestToNiceString(t *testing.T) {
	assert.Equal(t, "5", FromInt64(5).ToNiceString())
	assert.Equal(t, "-3/4", New(3, -4).ToNiceString())
}

func TestWholeNumberBits(t *testing.T) {
	assert.Equal(t, math.MinInt32, Zero.WholeNumberBits())
	assert.Equal(t, 3, FromInt64(8).WholeNumberBits())
	assert.Equal(t, -3, New(1, 8).WholeNumberBits())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want *Rat
	}{
		{" -0.125 ", New(-1, 8)},
		{"3/4", New(3, 4)},
		{"-6/8", New(-3, 4)},
		{"+2", Two},
		{"010/3", New(10, 3)},
		{"3/010", New(3, 10)},
		{"010", Ten},
		{"0.05", New(1, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, ok := Parse(tt.in)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(r), "got %s", r.ToNiceString())
		})
	}

	for _, bad := range []string{"", "x", "1e5", "0x10", "0b101", "0o17", "0x1/3", "1/0x3", "1_000", "1/0", "1/-2", "1.5/2", "."} {
		_, ok := Parse(bad)
		assert.False(t, ok, bad)
	}
}

func TestParse_TooLarge(t *testing.T) {
	r, ok := Parse("1" + strings.Repeat("0", 4000))
	assert.True(t, ok)
	assert.Nil(t, r)
}

func TestFromFloat64(t *testing.T) {
	assert.True(t, New(3, 8).Equal(FromFloat64(0.375)))
	assert.Nil(t, FromFloat64(math.NaN()))
	assert.Nil(t, FromFloat64(math.Inf(-1)))
}

func TestRat_CR(t *testing.T) {
	ctx := context.Background()
	s, err := New(-22, 7).CR().ToDecimalString(ctx, 6, 10)
	require.NoError(t, err)
	assert.Equal(t, "-3.142857", s)

	s, err = FromInt64(12).CR().ToDecimalString(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "12.00", s)
}

func TestInt64(t *testing.T) {
	n, ok := FromInt64(-9).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(-9), n)

	_, ok = Half.Int64()
	assert.False(t, ok)
}
