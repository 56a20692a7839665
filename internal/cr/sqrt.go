package cr

import (
	"context"
	"math"
	"math/big"
)

const (
	// sqrtFloatPrec is a conservative count of the significant bits a
	// float64 square root delivers.
	sqrtFloatPrec = 50
	// sqrtFloatOpPrec is the number of argument bits fed to math.Sqrt.
	sqrtFloatOpPrec = 60
)

// newSeededSqrt returns sqrt(x) with its cache preset to a previously
// computed approximation, so the first Newton step starts close.
func newSeededSqrt(x *Real, prec int, appr *big.Int) *Real {
	r := newReal(&sqrtOp{x: x})
	r.preset(prec, appr)
	return r
}

// approximate uses one Newton step from a half-precision approximation of
// itself when many digits are wanted, and a float64 square root otherwise.
func (o *sqrtOp) approximate(ctx context.Context, self *Real, p int) (*big.Int, error) {
	maxOpPrecNeeded := 2*p - 1
	if err := checkPrec(maxOpPrecNeeded); err != nil {
		return nil, err
	}
	msd, err := o.x.iterMsd(ctx, maxOpPrecNeeded)
	if err != nil {
		return nil, err
	}
	if msd <= maxOpPrecNeeded {
		return new(big.Int), nil
	}

	resultMsd := msd / 2
	resultDigits := resultMsd - p
	if resultDigits > sqrtFloatPrec {
		apprDigits := resultDigits/2 + 6
		apprPrec := resultMsd - apprDigits
		prodPrec := 2 * apprPrec

		// Evaluate the argument at full precision first so it is not
		// refined again piecemeal by the recursive call below.
		opAppr, err := o.x.approxGet(ctx, prodPrec)
		if err != nil {
			return nil, err
		}
		last, err := self.approxGet(ctx, apprPrec)
		if err != nil {
			return nil, err
		}
		if last.Sign() == 0 {
			return nil, NewDomainError("sqrt", "sqrt(negative)")
		}
		// (last^2 + op) / last / 2, rescaled from prodPrec to p.
		num := new(big.Int).Mul(last, last)
		num.Add(num, opAppr)
		num = scale(num, apprPrec-p)
		num.Quo(num, last)
		num.Add(num, big1)
		return num.Rsh(num, 1), nil
	}

	// Keep the argument precision even so the result scales exactly.
	opPrec := (msd - sqrtFloatOpPrec) &^ 1
	workingPrec := opPrec - sqrtFloatOpPrec
	opAppr, err := o.x.approxGet(ctx, opPrec)
	if err != nil {
		return nil, err
	}
	scaledAppr, _ := new(big.Float).SetInt(new(big.Int).Lsh(opAppr, sqrtFloatOpPrec)).Float64()
	if scaledAppr < 0 {
		return nil, NewDomainError("sqrt", "sqrt(negative)")
	}
	scaledSqrt := big.NewInt(int64(math.Sqrt(scaledAppr)))
	return shift(scaledSqrt, workingPrec/2-p), nil
}
