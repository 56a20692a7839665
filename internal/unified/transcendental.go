package unified

import (
	"context"
	"math"
	"math/big"

	"github.com/roach88/creal/internal/cr"
	"github.com/roach88/creal/internal/rational"
)

// piTwelfths returns x/(π/12) mod 24 when x is a known integral multiple
// of π/12.
func (x *Real) piTwelfths() (int, bool) {
	if x.DefinitelyZero() {
		return 0, true
	}
	if x.kind != ConstPi {
		return 0, false
	}
	q := rational.BigInt(rational.Mul(x.rat, rational.Twelve))
	if q == nil {
		return 0, false
	}
	return int(new(big.Int).Mod(q, big24).Int64()), true
}

// sinPiTwelfths returns sin(n·π/12) for 0 <= n < 24 where it has a
// simple closed form, or nil.
func sinPiTwelfths(n int) *Real {
	if n >= 12 {
		if r := sinPiTwelfths(n - 12); r != nil {
			return r.Negate()
		}
		return nil
	}
	switch n {
	case 0:
		return Zero
	case 2, 10:
		return Half
	case 3, 9:
		return halfSqrt2
	case 4, 8:
		return halfSqrt3
	case 6:
		return One
	}
	return nil
}

func cosPiTwelfths(n int) *Real {
	return sinPiTwelfths((n + 6) % 24)
}

// Sin returns sin(x).
func (x *Real) Sin() *Real {
	if n, ok := x.piTwelfths(); ok {
		if r := sinPiTwelfths(n); r != nil {
			return r
		}
	}
	return FromCR(x.CRValue().Sin())
}

// Cos returns cos(x).
func (x *Real) Cos() *Real {
	if n, ok := x.piTwelfths(); ok {
		if r := cosPiTwelfths(n); r != nil {
			return r
		}
	}
	return FromCR(x.CRValue().Cos())
}

// Tan returns tan(x). It fails for known odd multiples of π/2.
func (x *Real) Tan() (*Real, error) {
	if n, ok := x.piTwelfths(); ok {
		if n == 6 || n == 18 {
			return nil, cr.NewDomainError("tan", "tangent undefined")
		}
		top, bottom := sinPiTwelfths(n), cosPiTwelfths(n)
		if top != nil && bottom != nil {
			return top.Divide(bottom)
		}
	}
	return x.Sin().Divide(x.Cos())
}

// checkAsinDomain fails if x is known to lie outside [-1, 1].
func (x *Real) checkAsinDomain(ctx context.Context, op string) error {
	ok, err := x.IsComparable(ctx, One)
	if err != nil || !ok {
		return err
	}
	above, err := x.CompareTo(ctx, One)
	if err != nil {
		return err
	}
	below, err := x.CompareTo(ctx, MinusOne)
	if err != nil {
		return err
	}
	if above > 0 || below < 0 {
		return cr.NewDomainError(op, "argument out of range [-1, 1]")
	}
	return nil
}

// asinHalves returns asin(n/2) for -2 <= n <= 2.
func asinHalves(n int) *Real {
	switch n {
	case 0:
		return Zero
	case 1:
		return piOver6
	case 2:
		return piOver2
	case -1, -2:
		return asinHalves(-n).Negate()
	}
	panic("unified: asinHalves argument out of range")
}

// asinNonHalves returns asin(x) for x that is not a multiple of 1/2,
// recognizing √2/2 and √3/2.
func (x *Real) asinNonHalves(ctx context.Context) (*Real, error) {
	sign, err := x.CompareToTol(ctx, Zero, -10)
	if err != nil {
		return nil, err
	}
	if sign < 0 {
		r, err := x.Negate().asinNonHalves(ctx)
		if err != nil {
			return nil, err
		}
		return r.Negate(), nil
	}
	for _, c := range []struct{ arg, result *Real }{
		{halfSqrt2, piOver4},
		{halfSqrt3, piOver3},
	} {
		eq, err := x.DefinitelyEquals(ctx, c.arg)
		if err != nil {
			return nil, err
		}
		if eq {
			return c.result, nil
		}
	}
	return FromCR(x.CRValue().Asin()), nil
}

// Asin returns asin(x). It fails if x is known to lie outside [-1, 1].
func (x *Real) Asin(ctx context.Context) (*Real, error) {
	return x.asin(ctx, "asin")
}

func (x *Real) asin(ctx context.Context, op string) (*Real, error) {
	if err := x.checkAsinDomain(ctx, op); err != nil {
		return nil, err
	}
	if halves := x.Multiply(Two).BigIntValue(); halves != nil {
		if !halves.IsInt64() || halves.Int64() < -2 || halves.Int64() > 2 {
			return nil, cr.NewDomainError(op, "argument out of range [-1, 1]")
		}
		return asinHalves(int(halves.Int64())), nil
	}
	switch x.kind {
	case ConstOne, ConstSqrt2, ConstSqrt3:
		return x.asinNonHalves(ctx)
	}
	return FromCR(x.CRValue().Asin()), nil
}

// Acos returns acos(x) = π/2 - asin(x).
func (x *Real) Acos(ctx context.Context) (*Real, error) {
	a, err := x.asin(ctx, "acos")
	if err != nil {
		return nil, err
	}
	return piOver2.Subtract(a), nil
}

// Atan returns atan(x).
func (x *Real) Atan(ctx context.Context) (*Real, error) {
	sign, err := x.CompareToTol(ctx, Zero, -10)
	if err != nil {
		return nil, err
	}
	if sign < 0 {
		r, err := x.Negate().Atan(ctx)
		if err != nil {
			return nil, err
		}
		return r.Negate(), nil
	}
	if n := x.BigIntValue(); n != nil && n.Cmp(big.NewInt(1)) <= 0 {
		// x is not noticeably negative, so it is 0 or 1.
		if n.Sign() == 0 {
			return Zero, nil
		}
		return piOver4, nil
	}
	for _, c := range []struct{ arg, result *Real }{
		{thirdSqrt3, piOver6},
		{sqrt3, piOver3},
	} {
		eq, err := x.DefinitelyEquals(ctx, c.arg)
		if err != nil {
			return nil, err
		}
		if eq {
			return c.result, nil
		}
	}
	return FromCR(x.CRValue().Atan()), nil
}

// pow16 returns n^16 for n <= 10.
func pow16(n int64) int64 {
	r := n * n
	r *= r
	r *= r
	return r * r
}

// intLog returns k if n = base^k for k > 0, and 0 otherwise. n > 0.
func intLog(ctx context.Context, n *big.Int, base int64) (int64, error) {
	f, _ := new(big.Float).SetInt(n).Float64()
	approx := math.Log(f) / math.Log(float64(base))
	if !math.IsInf(f, 0) && math.Abs(approx-math.Round(approx)) > 1e-6 {
		return 0, nil
	}
	var k int64
	bigBase := big.NewInt(base)
	base16 := big.NewInt(pow16(base))
	n = new(big.Int).Set(n)
	q, m := new(big.Int), new(big.Int)
	for {
		if q.QuoRem(n, bigBase, m); m.Sign() != 0 {
			break
		}
		if err := cr.CheckContext(ctx, "ln"); err != nil {
			return 0, err
		}
		n.Set(q)
		k++
		for {
			if q.QuoRem(n, base16, m); m.Sign() != 0 {
				break
			}
			n.Set(q)
			k += 16
		}
	}
	if n.Cmp(big.NewInt(1)) == 0 {
		return k, nil
	}
	return 0, nil
}

// Ln returns the natural logarithm of x. Logarithms of powers of small
// integers come out as rational multiples of a named ln n. It fails if x
// is known to be non-positive.
func (x *Real) Ln(ctx context.Context) (*Real, error) {
	if x.kind == ConstE {
		// ln(r·e) = ln(r) + 1
		l, err := FromRational(x.rat).Ln(ctx)
		if err != nil {
			return nil, err
		}
		return l.Add(One), nil
	}
	ok, err := x.IsComparable(ctx, Zero)
	if err != nil {
		return nil, err
	}
	if ok {
		sign, err := x.Signum(ctx)
		if err != nil {
			return nil, err
		}
		if sign <= 0 {
			return nil, cr.NewDomainError("ln", "ln(non-positive)")
		}
		c, err := x.CompareToTol(ctx, One, defaultCompareTolerance)
		if err != nil {
			return nil, err
		}
		switch {
		case c == 0:
			if eq, err := x.DefinitelyEquals(ctx, One); err != nil {
				return nil, err
			} else if eq {
				return Zero, nil
			}
		case c < 0:
			inv, err := x.Inverse()
			if err != nil {
				return nil, err
			}
			l, err := inv.Ln(ctx)
			if err != nil {
				return nil, err
			}
			return l.Negate(), nil
		}
		if r, err := x.namedLn(ctx); r != nil || err != nil {
			return r, err
		}
	}
	return FromCR(x.CRValue().Ln()), nil
}

// namedLn recognizes ln(b^k) = k·ln b and ln(b^k·√b) = (k+1/2)·ln b for
// the named logarithms. It returns nil if neither applies.
func (x *Real) namedLn(ctx context.Context) (*Real, error) {
	n := rational.BigInt(x.rat)
	if n == nil {
		return nil, nil
	}
	if x.kind == ConstOne {
		for b, c := range lnOf {
			if c == Unnamed {
				continue
			}
			k, err := intLog(ctx, n, int64(b))
			if err != nil {
				return nil, err
			}
			if k != 0 {
				return newReal(rational.FromInt64(k), c), nil
			}
		}
		return nil, nil
	}
	sq := x.kind.square()
	if sq == nil {
		return nil, nil
	}
	b, _ := sq.Int64()
	if int(b) >= len(lnOf) || lnOf[b] == Unnamed {
		return nil, nil
	}
	k, err := intLog(ctx, n, b)
	if err != nil || k == 0 {
		return nil, err
	}
	if r := rational.Add(rational.FromInt64(k), rational.Half); r != nil {
		return newReal(r, lnOf[b]), nil
	}
	return nil, nil
}

// Log returns the base-10 logarithm of x.
func (x *Real) Log(ctx context.Context) (*Real, error) {
	l, err := x.Ln(ctx)
	if err != nil {
		return nil, err
	}
	ln10, err := Ten.Ln(ctx)
	if err != nil {
		return nil, err
	}
	return l.Divide(ln10)
}

// Exp returns e^x. exp(1) is E, and exp(r·ln n) is rational when r is an
// integer (or the square root of one when r is a half-integer).
func (x *Real) Exp(ctx context.Context) (*Real, error) {
	if x.DefinitelyZero() {
		return One, nil
	}
	if eq, err := x.DefinitelyEquals(ctx, One); err != nil {
		return nil, err
	} else if eq {
		return E, nil
	}
	if base := x.kind.exp(); base != nil {
		exponent := x.rat
		needSqrt := false
		if !exponent.IsInt() {
			needSqrt = true
			exponent = rational.Mul(exponent, rational.Two)
		}
		if p := rational.Pow(base, exponent); p != nil {
			r := FromRational(p)
			if needSqrt {
				return r.Sqrt()
			}
			return r, nil
		}
	}
	return FromCR(x.CRValue().Exp()), nil
}

// genFactorial returns n·(n-step)·(n-2·step)···.
func genFactorial(ctx context.Context, n, step int64) (*big.Int, error) {
	if n > 4*step {
		a, err := genFactorial(ctx, n, 2*step)
		if err != nil {
			return nil, err
		}
		if err := cr.CheckContext(ctx, "fact"); err != nil {
			return nil, err
		}
		b, err := genFactorial(ctx, n-step, 2*step)
		if err != nil {
			return nil, err
		}
		return a.Mul(a, b), nil
	}
	if n == 0 {
		return big.NewInt(1), nil
	}
	res := big.NewInt(n)
	for i := n - step; i > 1; i -= step {
		res.Mul(res, big.NewInt(i))
	}
	return res, nil
}

// maxFactorialBits bounds the argument of Fact.
const maxFactorialBits = 20

// Fact returns x!. Values within 2^-1000 of an integer are taken to be
// that integer; anything else is a domain error, as are negative and
// very large arguments.
func (x *Real) Fact(ctx context.Context) (*Real, error) {
	n := x.BigIntValue()
	if n == nil {
		appr, err := x.CRValue().ApproxGet(ctx, 0)
		if err != nil {
			return nil, err
		}
		ok, err := x.ApproxEquals(ctx, FromBigInt(appr), defaultCompareTolerance)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cr.NewDomainError("fact", "non-integral factorial argument")
		}
		n = appr
	}
	if n.Sign() < 0 {
		return nil, cr.NewDomainError("fact", "negative factorial argument")
	}
	if n.BitLen() > maxFactorialBits {
		return nil, cr.NewDomainError("fact", "factorial argument too big")
	}
	f, err := genFactorial(ctx, n.Int64(), 1)
	if err != nil {
		return nil, err
	}
	return FromBigInt(f), nil
}
