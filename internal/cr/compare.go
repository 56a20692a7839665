package cr

import (
	"context"
	"math/big"
)

// CompareRel compares x and y, returning 0 if they are indistinguishable
// at relative tolerance 2^r (relative to the larger magnitude) or absolute
// tolerance 2^a, whichever is coarser. Otherwise it returns -1 or +1 as x
// is less than or greater than y.
func (x *Real) CompareRel(ctx context.Context, y *Real, r, a int) (int, error) {
	xMsd, err := x.iterMsd(ctx, a)
	if err != nil {
		return 0, err
	}
	yMsd, err := y.iterMsd(ctx, max(xMsd, a))
	if err != nil {
		return 0, err
	}
	maxMsd := max(xMsd, yMsd)
	if maxMsd == msdUnknown {
		return 0, nil
	}
	if err := checkPrec(r); err != nil {
		return 0, err
	}
	return x.CompareAbs(ctx, y, max(maxMsd+r, a))
}

// CompareAbs compares x and y at absolute tolerance 2^a. A result of 0
// means the values are within the tolerance of each other, not that they
// are equal.
func (x *Real) CompareAbs(ctx context.Context, y *Real, a int) (int, error) {
	neededPrec := a - 1
	xAppr, err := x.approxGet(ctx, neededPrec)
	if err != nil {
		return 0, err
	}
	yAppr, err := y.approxGet(ctx, neededPrec)
	if err != nil {
		return 0, err
	}
	if xAppr.Cmp(new(big.Int).Add(yAppr, big1)) > 0 {
		return 1, nil
	}
	if xAppr.Cmp(new(big.Int).Sub(yAppr, big1)) < 0 {
		return -1, nil
	}
	return 0, nil
}

// Compare returns -1 or +1 as x is less than or greater than y.
// It does not terminate if x == y: it fails once the context is done or
// the precision overflows.
func (x *Real) Compare(ctx context.Context, y *Real) (int, error) {
	for a := -20; ; a *= 2 {
		if err := checkPrec(a); err != nil {
			return 0, err
		}
		if err := checkCtx(ctx, "compare"); err != nil {
			return 0, err
		}
		c, err := x.CompareAbs(ctx, y, a)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
}

// SignumAt returns the sign of x, or 0 if |x| < 2^a.
func (x *Real) SignumAt(ctx context.Context, a int) (int, error) {
	if _, appr, ok := x.cached(); ok && appr.Sign() != 0 {
		return appr.Sign(), nil
	}
	appr, err := x.approxGet(ctx, a-1)
	if err != nil {
		return 0, err
	}
	return appr.Sign(), nil
}

// Signum returns the sign of x. It does not terminate for zero.
func (x *Real) Signum(ctx context.Context) (int, error) {
	for a := -20; ; a *= 2 {
		if err := checkPrec(a); err != nil {
			return 0, err
		}
		if err := checkCtx(ctx, "signum"); err != nil {
			return 0, err
		}
		s, err := x.SignumAt(ctx, a)
		if err != nil {
			return 0, err
		}
		if s != 0 {
			return s, nil
		}
	}
}
