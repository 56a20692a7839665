package cr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReal_Compare(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		x, y *Real
		want int
	}{
		{"pi vs 3", Pi, FromInt64(3), 1},
		{"3 vs pi", FromInt64(3), Pi, -1},
		{"e vs pi", One.Exp(), Pi, -1},
		{"sqrt2 vs 1.4142", FromInt64(2).Sqrt(), fraction(14142, 10000), 1},
		{"tiny difference", One.Add(One.ShiftRight(1000)), One, 1},
		{"negative", FromInt64(-2).Multiply(Pi), FromInt64(-6), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.x.Compare(ctx, tt.y)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReal_CompareAbs_SqrtSquared(t *testing.T) {
	ctx := context.Background()
	two := FromInt64(2)
	root := two.Sqrt()
	product := root.Multiply(root)

	for _, a := range []int{-10, -100, -1000, -5000} {
		c, err := product.CompareAbs(ctx, two, a)
		require.NoError(t, err)
		assert.Equal(t, 0, c, "tolerance 2^%d", a)
	}
}

func TestReal_CompareAbs_Indistinguishable(t *testing.T) {
	ctx := context.Background()
	x := One.Add(One.ShiftRight(100))

	c, err := x.CompareAbs(ctx, One, -50)
	require.NoError(t, err)
	assert.Equal(t, 0, c, "difference is below the tolerance")

	c, err = x.CompareAbs(ctx, One, -200)
	require.NoError(t, err)
	assert.Equal(t, 1, c)
}

func TestReal_CompareRel(t *testing.T) {
	ctx := context.Background()
	big := FromInt64(1).ShiftLeft(100)
	bigger := big.Add(One)

	// Relative to 2^100, a difference of one is invisible at 2^-20.
	c, err := bigger.CompareRel(ctx, big, -20, -1000)
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = bigger.CompareRel(ctx, big, -110, -1000)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	// Both below the absolute tolerance.
	c, err = One.ShiftRight(500).CompareRel(ctx, Zero, -10, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestReal_Compare_EqualValuesStopOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Pi.Compare(ctx, Pi.Add(Zero))
	require.Error(t, err)
	assert.True(t, IsAborted(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReal_Compare_EqualIntegersOverflow(t *testing.T) {
	_, err := Zero.Compare(context.Background(), Zero.Negate())
	require.Error(t, err)
	assert.True(t, IsPrecisionOverflow(err))
}

func TestReal_Signum(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		x    *Real
		want int
	}{
		{"positive", Pi, 1},
		{"negative", Pi.Negate(), -1},
		{"tiny negative", One.ShiftRight(3000).Negate(), -1},
		{"ln half", fraction(1, 2).Ln(), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.x.Signum(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReal_Signum_ZeroOverflows(t *testing.T) {
	_, err := Zero.Signum(context.Background())
	require.Error(t, err)
	assert.True(t, IsPrecisionOverflow(err))
}

func TestReal_SignumAt(t *testing.T) {
	ctx := context.Background()
	x := One.ShiftRight(200)

	s, err := x.SignumAt(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, s)

	s, err = x.SignumAt(ctx, -300)
	require.NoError(t, err)
	assert.Equal(t, 1, s)
}

func TestReal_Msd(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		x    *Real
		want []int // acceptable answers
	}{
		{"one", One, []int{-1, 0, 1}},
		{"pi", Pi, []int{1}},
		{"2^-40", One.ShiftRight(40), []int{-41, -40, -39}},
		{"-1024", FromInt64(-1024), []int{9, 10, 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.x.Msd(ctx)
			require.NoError(t, err)
			assert.Contains(t, tt.want, got)
		})
	}
}

func TestReal_MsdAt_SmallValue(t *testing.T) {
	got, err := One.ShiftRight(300).MsdAt(context.Background(), -100)
	require.NoError(t, err)
	assert.Equal(t, msdUnknown, got)
}

func TestReal_MaxMinAbs(t *testing.T) {
	ctx := context.Background()
	three := FromInt64(3)

	c, err := Pi.Max(three).CompareAbs(ctx, Pi, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = Pi.Min(three).CompareAbs(ctx, three, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = Pi.Negate().Abs().CompareAbs(ctx, Pi, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	// Equal branches at a zero selector.
	c, err = Zero.Abs().CompareAbs(ctx, Zero, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}
