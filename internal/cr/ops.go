package cr

import (
	"context"
	"fmt"
	"math/big"
	"sync"
)

// op is a sealed interface over the operator node variants.
// Only the types in this file implement it.
type op interface {
	crOp() // Sealed
}

// intConst is an exact integer.
type intConst struct {
	v *big.Int
}

// assumedInt is a value the caller promises is an integer, so coarse
// requests can be answered from the precision-0 approximation.
type assumedInt struct {
	x *Real
}

type addOp struct {
	a, b *Real
}

// shifted is x * 2^n.
type shifted struct {
	x *Real
	n int
}

type negateOp struct {
	x *Real
}

// selectOp is ifNeg when sel < 0 and ifNonNeg otherwise. Where sel is zero
// the two branches must agree, so either may be returned.
type selectOp struct {
	sel, ifNeg, ifNonNeg *Real

	mu      sync.Mutex
	signSet bool
	selSign int
}

type multiplyOp struct {
	a, b *Real
}

type inverseOp struct {
	x *Real
}

// prescaledExp is exp(x) for |x| < 1/2.
type prescaledExp struct {
	x *Real
}

// prescaledCos is cos(x) for |x| < 1.
type prescaledCos struct {
	x *Real
}

// integralAtan is atan(1/n) for an integer n > 1.
type integralAtan struct {
	n int64
}

// prescaledLn is ln(1+x) for |x| < 1/2.
type prescaledLn struct {
	x *Real
}

// prescaledAsin is asin(x) for |x| < (1/2)^(1/3).
type prescaledAsin struct {
	x *Real
}

type sqrtOp struct {
	x *Real
}

// gaussLegendrePi is pi computed by the AGM iteration. It remembers the
// b terms of earlier evaluations and uses them to seed the square roots
// of later, tighter ones.
type gaussLegendrePi struct {
	mu    sync.Mutex
	terms []piTerm
}

// reduced is a transcendental function whose argument range reduction
// depends on a rough approximation of the argument. The reduction is
// chosen on first evaluation and the resulting expression is kept.
type reduced struct {
	kind reduction
	x    *Real

	mu       sync.Mutex
	delegate *Real
}

func (*intConst) crOp()        {}
func (*assumedInt) crOp()      {}
func (*addOp) crOp()           {}
func (*shifted) crOp()         {}
func (*negateOp) crOp()        {}
func (*selectOp) crOp()        {}
func (*multiplyOp) crOp()      {}
func (*inverseOp) crOp()       {}
func (*prescaledExp) crOp()    {}
func (*prescaledCos) crOp()    {}
func (*integralAtan) crOp()    {}
func (*prescaledLn) crOp()     {}
func (*prescaledAsin) crOp()   {}
func (*sqrtOp) crOp()          {}
func (*gaussLegendrePi) crOp() {}
func (*reduced) crOp()         {}

// isSlow reports whether evaluations of o are expensive enough to
// overshoot the requested precision.
func isSlow(o op) bool {
	switch o.(type) {
	case *prescaledExp, *prescaledCos, *integralAtan, *prescaledLn,
		*prescaledAsin, *sqrtOp, *gaussLegendrePi:
		return true
	}
	return false
}

func opName(o op) string {
	switch o := o.(type) {
	case *intConst:
		return "int"
	case *assumedInt:
		return "assume_int"
	case *addOp:
		return "add"
	case *shifted:
		return "shift"
	case *negateOp:
		return "negate"
	case *selectOp:
		return "select"
	case *multiplyOp:
		return "multiply"
	case *inverseOp:
		return "inverse"
	case *prescaledExp:
		return "exp"
	case *prescaledCos:
		return "cos"
	case *integralAtan:
		return "atan"
	case *prescaledLn:
		return "ln"
	case *prescaledAsin:
		return "asin"
	case *sqrtOp:
		return "sqrt"
	case *gaussLegendrePi:
		return "pi"
	case *reduced:
		return o.kind.String()
	}
	return fmt.Sprintf("%T", o)
}

// approximate computes a fresh approximation at precision p. It is only
// called through approxGet, which has already checked p.
func (x *Real) approximate(ctx context.Context, p int) (*big.Int, error) {
	switch o := x.op.(type) {
	case *intConst:
		return scale(o.v, -p), nil
	case *assumedInt:
		if p >= 0 {
			return o.x.approxGet(ctx, p)
		}
		r, err := o.x.approxGet(ctx, 0)
		if err != nil {
			return nil, err
		}
		return scale(r, -p), nil
	case *addOp:
		return o.approximate(ctx, p)
	case *shifted:
		return o.x.approxGet(ctx, p-o.n)
	case *negateOp:
		r, err := o.x.approxGet(ctx, p)
		if err != nil {
			return nil, err
		}
		return new(big.Int).Neg(r), nil
	case *selectOp:
		return o.approximate(ctx, p)
	case *multiplyOp:
		return o.approximate(ctx, p)
	case *inverseOp:
		return o.approximate(ctx, p)
	case *prescaledExp:
		return o.approximate(ctx, p)
	case *prescaledCos:
		return o.approximate(ctx, p)
	case *integralAtan:
		return o.approximate(ctx, p)
	case *prescaledLn:
		return o.approximate(ctx, p)
	case *prescaledAsin:
		return o.approximate(ctx, p)
	case *sqrtOp:
		return o.approximate(ctx, x, p)
	case *gaussLegendrePi:
		return o.approximate(ctx, p)
	case *reduced:
		d, err := o.resolve(ctx)
		if err != nil {
			return nil, err
		}
		return d.approxGet(ctx, p)
	}
	panic(fmt.Sprintf("cr: unknown op %T", x.op))
}

// approximate evaluates both operands at p-2 so that their errors and the
// final rounding together stay under one unit.
func (o *addOp) approximate(ctx context.Context, p int) (*big.Int, error) {
	a, err := o.a.approxGet(ctx, p-2)
	if err != nil {
		return nil, err
	}
	b, err := o.b.approxGet(ctx, p-2)
	if err != nil {
		return nil, err
	}
	return scale(new(big.Int).Add(a, b), -2), nil
}

func (o *selectOp) approximate(ctx context.Context, p int) (*big.Int, error) {
	o.mu.Lock()
	signSet, sign := o.signSet, o.selSign
	o.mu.Unlock()

	if !signSet {
		r, err := o.sel.approxGet(ctx, -20)
		if err != nil {
			return nil, err
		}
		sign = r.Sign()
		o.setSign(sign)
	}
	if sign < 0 {
		return o.ifNeg.approxGet(ctx, p)
	}
	if sign > 0 {
		return o.ifNonNeg.approxGet(ctx, p)
	}

	neg, err := o.ifNeg.approxGet(ctx, p-1)
	if err != nil {
		return nil, err
	}
	nonNeg, err := o.ifNonNeg.approxGet(ctx, p-1)
	if err != nil {
		return nil, err
	}
	diff := new(big.Int).Sub(neg, nonNeg)
	if diff.CmpAbs(big1) <= 0 {
		return scale(neg, -1), nil
	}

	// The branches differ, so the selector is not zero.
	s, err := o.sel.Signum(ctx)
	if err != nil {
		return nil, err
	}
	o.setSign(s)
	if s < 0 {
		return scale(neg, -1), nil
	}
	return scale(nonNeg, -1), nil
}

func (o *selectOp) setSign(s int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.signSet || o.selSign == 0 {
		o.selSign = s
		o.signSet = true
	}
}

// approximate finds a magnitude bound for one operand at half the target
// precision and derives from it how precisely the other is needed. The
// operand with a known magnitude is used as the first factor; the node
// itself is never modified.
func (o *multiplyOp) approximate(ctx context.Context, p int) (*big.Int, error) {
	a, b := o.a, o.b
	halfPrec := (p >> 1) - 1

	msdA, err := a.msd(ctx, halfPrec)
	if err != nil {
		return nil, err
	}
	if msdA == msdUnknown {
		msdB, err := b.msd(ctx, halfPrec)
		if err != nil {
			return nil, err
		}
		if msdB == msdUnknown {
			// Both factors are below 2^halfPrec; zero is close enough.
			return new(big.Int), nil
		}
		a, b = b, a
		msdA = msdB
	}

	prec2 := p - msdA - 3
	apprB, err := b.approxGet(ctx, prec2)
	if err != nil {
		return nil, err
	}
	if apprB.Sign() == 0 {
		return new(big.Int), nil
	}
	msdB := b.knownMsd()
	prec1 := p - msdB - 3
	apprA, err := a.approxGet(ctx, prec1)
	if err != nil {
		return nil, err
	}
	return scale(new(big.Int).Mul(apprA, apprB), prec1+prec2-p), nil
}

// approximate divides a power of two by an approximation of the operand
// carrying just enough significant bits, rounding by adding half the
// divisor. The division is done on magnitudes and the sign restored after.
func (o *inverseOp) approximate(ctx context.Context, p int) (*big.Int, error) {
	msd, err := o.x.Msd(ctx)
	if err != nil {
		return nil, err
	}
	invMsd := 1 - msd
	digitsNeeded := invMsd - p + 3
	precNeeded := msd - digitsNeeded
	logScale := -p - precNeeded
	if logScale < 0 {
		return new(big.Int), nil
	}
	if err := checkPrec(logScale); err != nil {
		return nil, err
	}

	divisor, err := o.x.approxGet(ctx, precNeeded)
	if err != nil {
		return nil, err
	}
	absDivisor := new(big.Int).Abs(divisor)
	dividend := new(big.Int).Lsh(big1, uint(logScale))
	dividend.Add(dividend, new(big.Int).Rsh(absDivisor, 1))
	result := dividend.Quo(dividend, absDivisor)
	if divisor.Sign() < 0 {
		result.Neg(result)
	}
	return result, nil
}
