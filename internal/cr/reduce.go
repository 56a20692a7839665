package cr

import (
	"context"
	"math/big"
)

// reduction selects the range reduction a reduced node performs.
type reduction int

const (
	reduceExp reduction = iota
	reduceCos
	reduceAsin
	reduceLn
)

func (r reduction) String() string {
	switch r {
	case reduceExp:
		return "exp"
	case reduceCos:
		return "cos"
	case reduceAsin:
		return "asin"
	case reduceLn:
		return "ln"
	}
	return "unknown"
}

var (
	bigAsinLimit  = big.NewInt(750)  // 1/sqrt(2) plus a bit, in 1024ths
	bigAsinDomain = big.NewInt(1025) // 1 plus the approximation error, in 1024ths
	bigLnHigh     = big.NewInt(24)   // 1.5 in sixteenths
	bigLnScaled4  = big.NewInt(64)   // 4 in sixteenths
)

// resolve returns the reduced expression, choosing it on first use.
func (o *reduced) resolve(ctx context.Context) (*Real, error) {
	o.mu.Lock()
	d := o.delegate
	o.mu.Unlock()
	if d != nil {
		return d, nil
	}

	var err error
	switch o.kind {
	case reduceExp:
		d, err = reduceExpArg(ctx, o.x)
	case reduceCos:
		d, err = reduceCosArg(ctx, o.x)
	case reduceAsin:
		d, err = reduceAsinArg(ctx, o.x)
	case reduceLn:
		d, err = reduceLnArg(ctx, o.x)
	}
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.delegate == nil {
		o.delegate = d
	}
	return o.delegate, nil
}

// reduceExpArg halves the argument until it is small enough for the
// Taylor series: exp(x) = exp(x/2)^2.
func reduceExpArg(ctx context.Context, x *Real) (*Real, error) {
	rough, err := x.approxGet(ctx, -10)
	if err != nil {
		return nil, err
	}
	if rough.CmpAbs(big2) > 0 {
		half := x.ShiftRight(1).Exp()
		return half.Multiply(half), nil
	}
	return newReal(&prescaledExp{x: x}), nil
}

// reduceCosArg removes multiples of pi, or halves the argument with the
// double angle formula when it is still too large.
func reduceCosArg(ctx context.Context, x *Real) (*Real, error) {
	halfPiMultiples, err := x.Divide(Pi).approxGet(ctx, -1)
	if err != nil {
		return nil, err
	}
	if halfPiMultiples.CmpAbs(big2) >= 0 {
		piMultiples := scale(halfPiMultiples, -1)
		adjustment := Pi.Multiply(FromBigInt(piMultiples))
		c := x.Subtract(adjustment).Cos()
		if piMultiples.Bit(0) != 0 {
			return c.Negate(), nil
		}
		return c, nil
	}

	rough, err := x.approxGet(ctx, -1)
	if err != nil {
		return nil, err
	}
	if rough.CmpAbs(big2) >= 0 {
		cosHalf := x.ShiftRight(1).Cos()
		return cosHalf.Multiply(cosHalf).ShiftLeft(1).Subtract(One), nil
	}
	return newReal(&prescaledCos{x: x}), nil
}

// reduceAsinArg reflects negative arguments and maps large ones through
// asin(x) = acos(sqrt(1 - x^2)).
func reduceAsinArg(ctx context.Context, x *Real) (*Real, error) {
	rough, err := x.approxGet(ctx, -10)
	if err != nil {
		return nil, err
	}
	if rough.CmpAbs(bigAsinDomain) > 0 {
		return nil, NewDomainError("asin", "argument outside [-1, 1]")
	}
	switch {
	case rough.Cmp(bigAsinLimit) > 0:
		return One.Subtract(x.Multiply(x)).Sqrt().Acos(), nil
	case rough.CmpAbs(bigAsinLimit) > 0:
		return x.Negate().Asin().Negate(), nil
	}
	return newReal(&prescaledAsin{x: x}), nil
}

// reduceLnArg brings the argument close to 1: small values are inverted,
// values up to 4 take a fourth root and larger ones are shifted by a
// power of two.
func reduceLnArg(ctx context.Context, x *Real) (*Real, error) {
	rough, err := x.approxGet(ctx, -4)
	if err != nil {
		return nil, err
	}
	if rough.Sign() < 0 {
		return nil, NewDomainError("ln", "ln(negative)")
	}
	if rough.Cmp(big8) <= 0 {
		return x.Inverse().Ln().Negate(), nil
	}
	if rough.Cmp(bigLnHigh) >= 0 {
		if rough.Cmp(bigLnScaled4) <= 0 {
			return x.Sqrt().Sqrt().Ln().ShiftLeft(2), nil
		}
		extraBits := rough.BitLen() - 3
		scaled := x.ShiftRight(extraBits).Ln()
		return scaled.Add(FromInt64(int64(extraBits)).Multiply(Ln2)), nil
	}
	return simpleLn(x), nil
}
