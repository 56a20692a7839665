package cr

import (
	"context"
	"math"
)

// msdUnknown is returned by MSD searches that could not rule out zero.
const msdUnknown = math.MinInt32

// knownMsd returns the position d of the most significant bit of the
// cached approximation, so that 2^(d-1) < |x| < 2^(d+1). The cache must
// be valid and its magnitude greater than one.
func (x *Real) knownMsd() int {
	prec, appr, _ := x.cached()
	return prec + appr.BitLen() - 1
}

// msd returns the most significant bit position of x, or msdUnknown if
// |x| may be below 2^n.
func (x *Real) msd(ctx context.Context, n int) (int, error) {
	_, appr, ok := x.cached()
	if !ok || appr.CmpAbs(big1) <= 0 {
		if _, err := x.approxGet(ctx, n-1); err != nil {
			return 0, err
		}
		_, appr, _ = x.cached()
		if appr.CmpAbs(big1) <= 0 {
			return msdUnknown, nil
		}
	}
	return x.knownMsd(), nil
}

// iterMsd is msd(n) reached through a sequence of coarser requests, so a
// value far from zero is located without evaluating it at precision n.
func (x *Real) iterMsd(ctx context.Context, n int) (int, error) {
	for prec := 0; prec > n+30; prec = prec*3/2 - 16 {
		m, err := x.msd(ctx, prec)
		if err != nil {
			return 0, err
		}
		if m != msdUnknown {
			return m, nil
		}
		if err := checkPrec(prec); err != nil {
			return 0, err
		}
		if err := checkCtx(ctx, "msd"); err != nil {
			return 0, err
		}
	}
	return x.msd(ctx, n)
}

// MsdAt returns the position d of the most significant bit of x, with
// 2^(d-1) < |x| < 2^(d+1), or math.MinInt32 when |x| may be smaller
// than 2^n.
func (x *Real) MsdAt(ctx context.Context, n int) (int, error) {
	return x.iterMsd(ctx, n)
}

// Msd returns the position of the most significant bit of x.
// It does not terminate for zero: it fails once the context is done or
// the precision overflows.
func (x *Real) Msd(ctx context.Context) (int, error) {
	return x.iterMsd(ctx, msdUnknown)
}
