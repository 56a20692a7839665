package cr

import (
	"context"
	"math/big"
	"math/bits"
)

// piTerm is the b term of one AGM step as last computed, rescaled to the
// precision p of the evaluation that produced it.
type piTerm struct {
	prec int
	val  *big.Int
}

// piTolerance bounds a-b at the working precision when the AGM stops.
var piTolerance = big.NewInt(4)

// sqrtHalf is sqrt(1/2), the starting b of the AGM iteration.
var sqrtHalf = One.ShiftRight(1).Sqrt()

// seed returns the saved b term for step n, if any.
func (o *gaussLegendrePi) seed(n int) (piTerm, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if n < len(o.terms) {
		return o.terms[n], true
	}
	return piTerm{}, false
}

// publish records the b term for step n once it is complete. Terms are
// only ever appended in order, so a cancelled evaluation leaves the list
// consistent.
func (o *gaussLegendrePi) publish(n int, t piTerm) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case n < len(o.terms):
		if t.prec <= o.terms[n].prec {
			o.terms[n] = t
		}
	case n == len(o.terms):
		o.terms = append(o.terms, t)
	}
}

func (o *gaussLegendrePi) approximate(ctx context.Context, p int) (*big.Int, error) {
	if p >= 0 {
		return scale(big3, -p), nil
	}
	// About log2(-p) iterations, each costing at most 2 units per term.
	extraPrec := bits.Len(uint(-p-1)) + 10
	evalPrec := p - extraPrec
	if err := checkPrec(evalPrec); err != nil {
		return nil, err
	}

	a := new(big.Int).Lsh(big1, uint(-evalPrec))
	b, err := sqrtHalf.approxGet(ctx, evalPrec)
	if err != nil {
		return nil, err
	}
	t := new(big.Int).Lsh(big1, uint(-evalPrec-2))

	diff := new(big.Int)
	for n := 0; diff.Sub(a, b).Sub(diff, piTolerance).Sign() > 0; n++ {
		if err := checkCtx(ctx, "pi"); err != nil {
			return nil, err
		}
		nextA := new(big.Int).Add(a, b)
		nextA.Rsh(nextA, 1)
		aDiff := new(big.Int).Sub(a, nextA)
		bProd := new(big.Int).Mul(a, b)
		bProd.Rsh(bProd, uint(-evalPrec))
		bProdReal := FromBigInt(bProd).ShiftRight(-evalPrec)

		var nextBReal *Real
		if s, ok := o.seed(n); ok {
			nextBReal = newSeededSqrt(bProdReal, s.prec, s.val)
		} else {
			nextBReal = bProdReal.Sqrt()
		}
		nextB, err := nextBReal.approxGet(ctx, evalPrec)
		if err != nil {
			return nil, err
		}
		o.publish(n, piTerm{prec: p, val: scale(nextB, -extraPrec)})

		// t -= aDiff^2 * 2^n, at the working scale.
		sq := new(big.Int).Mul(aDiff, aDiff)
		t = new(big.Int).Sub(t, shift(sq, n+evalPrec))
		a, b = nextA, nextB
	}

	sum := new(big.Int).Add(a, b)
	result := new(big.Int).Mul(sum, sum)
	result.Quo(result, t)
	result.Rsh(result, 2)
	return scale(result, -extraPrec), nil
}
