package cr

import (
	"context"
	"math/big"
	"math/bits"
)

// The series below share one error budget. With calc the working
// precision, each term carries at most 2 units of error at calc, so n
// terms contribute 2n*2^calc; calc is chosen so that this, the truncation
// error, the error inherited from the argument and the final rounding
// together stay under one unit at p.

// boundLog2 returns ceil(log2(|n|+1)).
func boundLog2(n int) int {
	if n < 0 {
		n = -n
	}
	return bits.Len(uint(n))
}

func (o *prescaledExp) approximate(ctx context.Context, p int) (*big.Int, error) {
	if p >= 1 {
		return new(big.Int), nil
	}
	iterationsNeeded := -p/2 + 2
	calcPrec := p - boundLog2(2*iterationsNeeded) - 4
	opPrec := p - 3
	opAppr, err := o.x.approxGet(ctx, opPrec)
	if err != nil {
		return nil, err
	}

	scaled1 := new(big.Int).Lsh(big1, uint(-calcPrec))
	term := scaled1
	sum := new(big.Int).Set(scaled1)
	maxTruncError := new(big.Int).Lsh(big1, uint(p-4-calcPrec))
	n := int64(0)
	for term.CmpAbs(maxTruncError) >= 0 {
		if err := checkCtx(ctx, "exp"); err != nil {
			return nil, err
		}
		n++
		term = scale(new(big.Int).Mul(term, opAppr), opPrec)
		term.Quo(term, big.NewInt(n))
		sum.Add(sum, term)
	}
	return scale(sum, calcPrec-p), nil
}

func (o *prescaledCos) approximate(ctx context.Context, p int) (*big.Int, error) {
	if p >= 1 {
		return new(big.Int), nil
	}
	iterationsNeeded := -p/2 + 4
	calcPrec := p - boundLog2(2*iterationsNeeded) - 4
	opPrec := p - 2
	opAppr, err := o.x.approxGet(ctx, opPrec)
	if err != nil {
		return nil, err
	}

	maxTruncError := new(big.Int).Lsh(big1, uint(p-4-calcPrec))
	term := new(big.Int).Lsh(big1, uint(-calcPrec))
	sum := new(big.Int).Set(term)
	n := int64(0)
	for term.CmpAbs(maxTruncError) >= 0 {
		if err := checkCtx(ctx, "cos"); err != nil {
			return nil, err
		}
		n += 2
		// term = -term * x * x / (n * (n-1))
		term = scale(new(big.Int).Mul(term, opAppr), opPrec)
		term = scale(term.Mul(term, opAppr), opPrec)
		divisor := big.NewInt(-n)
		divisor.Mul(divisor, big.NewInt(n-1))
		term.Quo(term, divisor)
		sum.Add(sum, term)
	}
	return scale(sum, calcPrec-p), nil
}

func (o *integralAtan) approximate(ctx context.Context, p int) (*big.Int, error) {
	if p >= 1 {
		return new(big.Int), nil
	}
	iterationsNeeded := -p/2 + 2
	calcPrec := p - boundLog2(2*iterationsNeeded) - 2

	scaled1 := new(big.Int).Lsh(big1, uint(-calcPrec))
	bigOp := big.NewInt(o.n)
	bigOpSquared := big.NewInt(o.n * o.n)
	opInverse := new(big.Int).Quo(scaled1, bigOp)
	power := opInverse
	term := opInverse
	sum := new(big.Int).Set(opInverse)
	sign := int64(1)
	n := int64(1)
	maxTruncError := new(big.Int).Lsh(big1, uint(p-2-calcPrec))
	for term.CmpAbs(maxTruncError) >= 0 {
		if err := checkCtx(ctx, "atan"); err != nil {
			return nil, err
		}
		n += 2
		power = new(big.Int).Quo(power, bigOpSquared)
		sign = -sign
		term = new(big.Int).Quo(power, big.NewInt(sign*n))
		sum.Add(sum, term)
	}
	return scale(sum, calcPrec-p), nil
}

func (o *prescaledLn) approximate(ctx context.Context, p int) (*big.Int, error) {
	if p >= 0 {
		return new(big.Int), nil
	}
	iterationsNeeded := -p
	calcPrec := p - boundLog2(2*iterationsNeeded) - 4
	opPrec := p - 3
	opAppr, err := o.x.approxGet(ctx, opPrec)
	if err != nil {
		return nil, err
	}

	xNth := scale(opAppr, opPrec-calcPrec)
	term := xNth
	sum := new(big.Int).Set(term)
	n := int64(1)
	sign := int64(1)
	maxTruncError := new(big.Int).Lsh(big1, uint(p-4-calcPrec))
	for term.CmpAbs(maxTruncError) >= 0 {
		if err := checkCtx(ctx, "ln"); err != nil {
			return nil, err
		}
		n++
		sign = -sign
		xNth = scale(new(big.Int).Mul(xNth, opAppr), opPrec)
		term = new(big.Int).Quo(xNth, big.NewInt(n*sign))
		sum.Add(sum, term)
	}
	return scale(sum, calcPrec-p), nil
}

// approximate sums x^(2n+1) * (2n)! / (4^n * n!^2 * (2n+1)). The running
// factor carries two extra bits between the multiplications by x.
func (o *prescaledAsin) approximate(ctx context.Context, p int) (*big.Int, error) {
	if p >= 2 {
		return new(big.Int), nil
	}
	iterationsNeeded := -3*p/2 + 4
	calcPrec := p - boundLog2(2*iterationsNeeded) - 4
	opPrec := p - 3
	opAppr, err := o.x.approxGet(ctx, opPrec)
	if err != nil {
		return nil, err
	}

	maxLastTerm := new(big.Int).Lsh(big1, uint(p-4-calcPrec))
	exp := int64(1)
	term := new(big.Int).Lsh(opAppr, uint(opPrec-calcPrec))
	sum := new(big.Int).Set(term)
	factor := term
	for term.CmpAbs(maxLastTerm) >= 0 {
		if err := checkCtx(ctx, "asin"); err != nil {
			return nil, err
		}
		exp += 2
		// factor = factor * x * x * (exp-2) / (exp-1)
		factor = new(big.Int).Mul(factor, big.NewInt(exp-2))
		factor = scale(factor.Mul(factor, opAppr), opPrec+2)
		factor.Mul(factor, opAppr)
		factor.Quo(factor, big.NewInt(exp-1))
		factor = scale(factor, opPrec-2)
		term = new(big.Int).Quo(factor, big.NewInt(exp))
		sum.Add(sum, term)
	}
	return scale(sum, calcPrec-p), nil
}
