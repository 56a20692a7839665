package unified

import (
	"context"
	"math/big"

	"github.com/roach88/creal/internal/cr"
	"github.com/roach88/creal/internal/rational"
)

// Integral exponents up to recursivePowLimit in magnitude are computed by
// repeated squaring, which works for bases of any sign and can produce
// exact results. Exact rational powers are attempted up to
// hardRecursivePowLimit, where the size bound makes them fail fast.
var (
	recursivePowLimit     = big.NewInt(1000)
	hardRecursivePowLimit = new(big.Int).Lsh(big.NewInt(1), 1000)
)

func errDivisionByZero(op string) error {
	return cr.NewDomainError(op, "division by zero")
}

// Add returns x + y.
func (x *Real) Add(y *Real) *Real {
	if x.sameFactor(y) {
		if sum := rational.Add(x.rat, y.rat); sum != nil {
			return x.withRat(sum)
		}
	}
	if x.DefinitelyZero() {
		return y
	}
	if y.DefinitelyZero() {
		return x
	}
	return FromCR(x.CRValue().Add(y.CRValue()))
}

// withRat returns r times the factor of x.
func (x *Real) withRat(r *rational.Rat) *Real {
	return &Real{rat: r, kind: x.kind, factor: x.factor}
}

// Negate returns -x.
func (x *Real) Negate() *Real {
	return x.withRat(rational.Neg(x.rat))
}

// Subtract returns x - y.
func (x *Real) Subtract(y *Real) *Real {
	return x.Add(y.Negate())
}

// Multiply returns x * y.
func (x *Real) Multiply(y *Real) *Real {
	// Keep an existing factor where possible.
	if x.kind == ConstOne {
		if prod := rational.Mul(x.rat, y.rat); prod != nil {
			return y.withRat(prod)
		}
	}
	if y.kind == ConstOne {
		if prod := rational.Mul(x.rat, y.rat); prod != nil {
			return x.withRat(prod)
		}
	}
	if x.DefinitelyZero() || y.DefinitelyZero() {
		return Zero
	}
	if x.sameFactor(y) {
		if sq := x.kind.square(); sq != nil {
			if prod := rational.Mul(rational.Mul(sq, x.rat), y.rat); prod != nil {
				return FromRational(prod)
			}
		}
	}
	if prod := rational.Mul(x.rat, y.rat); prod != nil {
		return &Real{rat: prod, kind: Unnamed, factor: x.factor.Multiply(y.factor)}
	}
	return FromCR(x.CRValue().Multiply(y.CRValue()))
}

// Inverse returns 1/x. It fails only when x is known to be zero; an
// unrecognized zero fails when evaluated.
func (x *Real) Inverse() (*Real, error) {
	if x.DefinitelyZero() {
		return nil, errDivisionByZero("inverse")
	}
	if sq := x.kind.square(); sq != nil {
		// 1/(r·√n) = (1/(r·n))·√n
		if inv := rational.Inv(rational.Mul(x.rat, sq)); inv != nil {
			return x.withRat(inv), nil
		}
	}
	return &Real{rat: rational.Inv(x.rat), kind: Unnamed, factor: x.factor.Inverse()}, nil
}

// Divide returns x / y.
func (x *Real) Divide(y *Real) (*Real, error) {
	if y.DefinitelyZero() {
		return nil, errDivisionByZero("divide")
	}
	if x.sameFactor(y) {
		if q := rational.Quo(x.rat, y.rat); q != nil {
			return FromRational(q), nil
		}
	}
	inv, err := y.Inverse()
	if err != nil {
		return nil, err
	}
	return x.Multiply(inv), nil
}

// Sqrt returns the square root of x, as r·√n when x is rational and n is
// one of the named square roots. It fails when x is known to be negative.
func (x *Real) Sqrt() (*Real, error) {
	if x.DefinitelyZero() {
		return Zero, nil
	}
	// Every named constant is positive.
	if x.named() && x.rat.Sign() < 0 {
		return nil, cr.NewDomainError("sqrt", "sqrt(negative)")
	}
	if x.kind == ConstOne {
		for n, c := range sqrtOf {
			if c == Unnamed {
				continue
			}
			root := rational.Sqrt(rational.Quo(x.rat, rational.FromInt64(int64(n))))
			if root != nil {
				return newReal(root, c), nil
			}
		}
	}
	return FromCR(x.CRValue().Sqrt()), nil
}

// powInt returns x^exp.
func (x *Real) powInt(ctx context.Context, exp *big.Int) (*Real, error) {
	switch {
	case exp.Cmp(big.NewInt(1)) == 0:
		return x, nil
	case exp.Sign() == 0:
		// 0^0 is 1, as for math.Pow.
		return One, nil
	case exp.Sign() < 0 && x.DefinitelyZero():
		return nil, errDivisionByZero("pow")
	}
	absExp := new(big.Int).Abs(exp)
	if x.kind == ConstOne && absExp.Cmp(hardRecursivePowLimit) <= 0 {
		if p := rational.PowInt(x.rat, exp); p != nil {
			return FromRational(p), nil
		}
	}
	if absExp.Cmp(recursivePowLimit) > 0 {
		return x.expLnPow(ctx, exp)
	}
	if sq := x.kind.square(); sq != nil {
		// (r·√n)^k = r^k · n^⌊k/2⌋ · √n^(k mod 2)
		half := new(big.Int).Rsh(exp, 1)
		if p := rational.Mul(rational.PowInt(x.rat, exp), rational.PowInt(sq, half)); p != nil {
			if exp.Bit(0) == 1 {
				return x.withRat(p), nil
			}
			return FromRational(p), nil
		}
	}
	return x.expLnPow(ctx, exp)
}

// expLnPow computes x^exp through exp(ln|x|·exp) when the sign of x is
// known, and by repeated squaring otherwise.
func (x *Real) expLnPow(ctx context.Context, exp *big.Int) (*Real, error) {
	sign, err := x.SignumTol(ctx, defaultCompareTolerance)
	if err != nil {
		return nil, err
	}
	k := cr.FromBigInt(exp)
	switch {
	case sign > 0:
		return FromCR(x.CRValue().Ln().Multiply(k).Exp()), nil
	case sign < 0:
		result := x.CRValue().Negate().Ln().Multiply(k).Exp()
		if exp.Bit(0) == 1 {
			result = result.Negate()
		}
		return FromCR(result), nil
	}
	if exp.Sign() < 0 {
		p, err := recursivePow(ctx, x.CRValue(), new(big.Int).Neg(exp))
		if err != nil {
			return nil, err
		}
		return FromCR(p.Inverse()), nil
	}
	p, err := recursivePow(ctx, x.CRValue(), exp)
	if err != nil {
		return nil, err
	}
	return FromCR(p), nil
}

// recursivePow returns base^exp for exp > 0 by repeated squaring.
func recursivePow(ctx context.Context, base *cr.Real, exp *big.Int) (*cr.Real, error) {
	if exp.Cmp(big.NewInt(1)) == 0 {
		return base, nil
	}
	if err := cr.CheckContext(ctx, "pow"); err != nil {
		return nil, err
	}
	if exp.Bit(0) == 1 {
		rest, err := recursivePow(ctx, base, new(big.Int).Sub(exp, big.NewInt(1)))
		if err != nil {
			return nil, err
		}
		return base.Multiply(rest), nil
	}
	half, err := recursivePow(ctx, base, new(big.Int).Rsh(exp, 1))
	if err != nil {
		return nil, err
	}
	return half.Multiply(half), nil
}

// Pow returns x^y. Integral and half-integral exponents are handled
// exactly where possible. A negative base with any other exponent is a
// domain error.
func (x *Real) Pow(ctx context.Context, y *Real) (*Real, error) {
	if x.kind == ConstE {
		ey, err := y.Exp(ctx)
		if err != nil {
			return nil, err
		}
		if x.rat.Equal(rational.One) {
			return ey, nil
		}
		// (r·e)^y = r^y · e^y
		ratPart, err := FromRational(x.rat).Pow(ctx, y)
		if err != nil {
			return nil, err
		}
		return ey.Multiply(ratPart), nil
	}
	if r := y.Rational(); r != nil {
		if n := rational.BigInt(r); n != nil {
			return x.powInt(ctx, n)
		}
		if twice := rational.BigInt(rational.Mul(rational.Two, r)); twice != nil {
			p, err := x.powInt(ctx, twice)
			if err != nil {
				return nil, err
			}
			return p.Sqrt()
		}
	}
	// A zero exponent was handled above.
	if x.DefinitelyZero() {
		ysign, err := y.SignumTol(ctx, defaultCompareTolerance)
		if err != nil {
			return nil, err
		}
		if ysign < 0 {
			return nil, errDivisionByZero("pow")
		}
		return Zero, nil
	}
	sign, err := x.SignumTol(ctx, defaultCompareTolerance)
	if err != nil {
		return nil, err
	}
	if sign < 0 {
		return nil, cr.NewDomainError("pow", "negative base with non-integer exponent")
	}
	return FromCR(x.CRValue().Ln().Multiply(y.CRValue()).Exp()), nil
}
