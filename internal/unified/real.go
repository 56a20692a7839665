package unified

import (
	"context"
	"math"
	"math/big"
	"sync"

	"github.com/roach88/creal/internal/cr"
	"github.com/roach88/creal/internal/rational"
)

// defaultCompareTolerance is the absolute tolerance, as a power of two,
// used when deciding comparability and for signs that only guide a
// choice of algorithm.
const defaultCompareTolerance = -1000

// Real is the immutable value rat·factor. rat is never nil. When kind is
// named, factor is that constant's value; otherwise the factor is only
// known through its constructive real.
type Real struct {
	rat    *rational.Rat
	kind   Constant
	factor *cr.Real

	once  sync.Once
	value *cr.Real
}

func newReal(rat *rational.Rat, kind Constant) *Real {
	return &Real{rat: rat, kind: kind, factor: constants[kind].value}
}

// Common values.
var (
	Zero      = FromRational(rational.Zero)
	One       = FromRational(rational.One)
	MinusOne  = FromRational(rational.MinusOne)
	Two       = FromRational(rational.Two)
	MinusTwo  = FromRational(rational.MinusTwo)
	Half      = FromRational(rational.Half)
	MinusHalf = FromRational(rational.MinusHalf)
	Ten       = FromRational(rational.Ten)
	Pi        = newReal(rational.One, ConstPi)
	E         = newReal(rational.One, ConstE)

	RadiansPerDegree = newReal(rational.New(1, 180), ConstPi)
)

var (
	halfSqrt2  = newReal(rational.Half, ConstSqrt2)
	sqrt3      = newReal(rational.One, ConstSqrt3)
	halfSqrt3  = newReal(rational.Half, ConstSqrt3)
	thirdSqrt3 = newReal(rational.Third, ConstSqrt3)
	piOver2    = newReal(rational.Half, ConstPi)
	piOver3    = newReal(rational.Third, ConstPi)
	piOver4    = newReal(rational.Quarter, ConstPi)
	piOver6    = newReal(rational.Sixth, ConstPi)
)

// FromRational returns the exact value r. r must not be nil.
func FromRational(r *rational.Rat) *Real {
	if r == nil {
		panic("unified: nil rational")
	}
	return newReal(r, ConstOne)
}

// FromInt64 returns the exact value n.
func FromInt64(n int64) *Real {
	switch n {
	case 0:
		return Zero
	case 1:
		return One
	}
	return FromRational(rational.FromInt64(n))
}

// FromBigInt returns n. Integers too large for an exact rational are kept
// as an unnamed constructive factor.
func FromBigInt(n *big.Int) *Real {
	if r := rational.FromBigInt(n); r != nil {
		return FromRational(r)
	}
	return FromCR(cr.FromBigInt(n))
}

// FromFloat64 returns the exact binary value of f.
func FromFloat64(f float64) (*Real, error) {
	if f == 0 || f == 1 {
		return FromInt64(int64(f)), nil
	}
	r := rational.FromFloat64(f)
	if r == nil {
		return nil, cr.NewDomainError("from_float64", "%v is not a finite number", f)
	}
	return FromRational(r), nil
}

// FromCR returns x with no known structure.
func FromCR(x *cr.Real) *Real {
	return &Real{rat: rational.One, kind: Unnamed, factor: x}
}

// Parse returns the exact value of a decimal string such as "-12.375" or
// a fraction such as "22/7".
func Parse(s string) (*Real, error) {
	r, ok := rational.Parse(s)
	if !ok {
		return nil, cr.NewFormatError("parse", "malformed number %q", s)
	}
	if r == nil {
		return nil, cr.NewFormatError("parse", "number %q is too large", s)
	}
	return FromRational(r), nil
}

func (x *Real) named() bool {
	return x.kind.named()
}

// sameFactor reports whether x and y share the constructive factor.
func (x *Real) sameFactor(y *Real) bool {
	if x.named() || y.named() {
		return x.kind == y.kind
	}
	return x.factor == y.factor
}

// CRValue returns x as a single constructive real.
func (x *Real) CRValue() *cr.Real {
	x.once.Do(func() {
		switch {
		case x.kind == ConstOne:
			x.value = x.rat.CR()
		case x.rat.Equal(rational.One):
			x.value = x.factor
		default:
			x.value = x.rat.CR().Multiply(x.factor)
		}
	})
	return x.value
}

// Factor returns the constant tag of the constructive factor.
func (x *Real) Factor() Constant {
	return x.kind
}

// Rational returns x as an exact rational if it is known to be one, and
// nil otherwise.
func (x *Real) Rational() *rational.Rat {
	if x.kind == ConstOne || x.rat.Sign() == 0 {
		return x.rat
	}
	return nil
}

// BigIntValue returns x as an integer if it is known to be one, and nil
// otherwise.
func (x *Real) BigIntValue() *big.Int {
	return rational.BigInt(x.Rational())
}

// Float64 returns the nearest float64, or a signed infinity.
func (x *Real) Float64(ctx context.Context) (float64, error) {
	if r := x.Rational(); r != nil {
		return r.Float64(), nil
	}
	return x.CRValue().Float64(ctx)
}

// DefinitelyZero reports whether x is known to be zero without evaluation.
func (x *Real) DefinitelyZero() bool {
	return x.rat.Sign() == 0
}

// DefinitelyNonZero reports whether x is known to be nonzero without
// evaluation.
func (x *Real) DefinitelyNonZero() bool {
	return x.named() && x.rat.Sign() != 0
}

// DefinitelyOne reports whether x is exactly the rational 1.
func (x *Real) DefinitelyOne() bool {
	return x.kind == ConstOne && x.rat.Equal(rational.One)
}

// DefinitelyRational reports whether x is known to be rational.
func (x *Real) DefinitelyRational() bool {
	return x.kind == ConstOne || x.rat.Sign() == 0
}

// DefinitelyIrrational reports whether x is known to be irrational.
func (x *Real) DefinitelyIrrational() bool {
	return !x.DefinitelyRational() && x.named()
}

// DefinitelyAlgebraic reports whether x is known to be algebraic.
func (x *Real) DefinitelyAlgebraic() bool {
	return x.kind.algebraic() || x.rat.Sign() == 0
}

// DefinitelyTranscendental reports whether x is known to be
// transcendental.
func (x *Real) DefinitelyTranscendental() bool {
	return !x.DefinitelyAlgebraic() && x.named()
}

// IsComparable reports whether CompareTo(ctx, y) is guaranteed to
// terminate. A false result may be spurious.
func (x *Real) IsComparable(ctx context.Context, y *Real) (bool, error) {
	if x.sameFactor(y) {
		if x.named() {
			return true, nil
		}
		s, err := x.factor.SignumAt(ctx, defaultCompareTolerance)
		if err != nil {
			return false, err
		}
		if s != 0 {
			return true, nil
		}
	}
	if x.rat.Sign() == 0 && y.rat.Sign() == 0 {
		return true, nil
	}
	if independent(x.kind, y.kind) {
		return true, nil
	}
	c, err := x.CRValue().CompareAbs(ctx, y.CRValue(), defaultCompareTolerance)
	if err != nil {
		return false, err
	}
	return c != 0, nil
}

// CompareTo returns -1, 0 or +1 as x is less than, equal to or greater
// than y. If the values are equal and not comparable it runs until ctx is
// done or the precision overflows.
func (x *Real) CompareTo(ctx context.Context, y *Real) (int, error) {
	if x.DefinitelyZero() && y.DefinitelyZero() {
		return 0, nil
	}
	if x.sameFactor(y) {
		sign := 1
		if !x.named() {
			var err error
			if sign, err = x.factor.Signum(ctx); err != nil {
				return 0, err
			}
		}
		return sign * x.rat.Cmp(y.rat), nil
	}
	return x.CRValue().Compare(ctx, y.CRValue())
}

// CompareToTol is CompareTo when the values are comparable; otherwise it
// may return 0 for values within 2^a of each other.
func (x *Real) CompareToTol(ctx context.Context, y *Real, a int) (int, error) {
	ok, err := x.IsComparable(ctx, y)
	if err != nil {
		return 0, err
	}
	if ok {
		return x.CompareTo(ctx, y)
	}
	return x.CRValue().CompareAbs(ctx, y.CRValue(), a)
}

// Signum returns the sign of x. It may not terminate for zero values
// that are not recognizably zero.
func (x *Real) Signum(ctx context.Context) (int, error) {
	return x.CompareTo(ctx, Zero)
}

// SignumTol returns the sign of x, or possibly 0 if |x| < 2^a.
func (x *Real) SignumTol(ctx context.Context, a int) (int, error) {
	return x.CompareToTol(ctx, Zero, a)
}

// ApproxEquals reports whether x equals y. If the two are not comparable
// it may report true for values within 2^a of each other.
func (x *Real) ApproxEquals(ctx context.Context, y *Real, a int) (bool, error) {
	ok, err := x.IsComparable(ctx, y)
	if err != nil {
		return false, err
	}
	if !ok {
		c, err := x.CRValue().CompareAbs(ctx, y.CRValue(), a)
		return c == 0, err
	}
	if independent(x.kind, y.kind) && (x.rat.Sign() != 0 || y.rat.Sign() != 0) {
		return false, nil
	}
	c, err := x.CompareTo(ctx, y)
	return c == 0, err
}

// DefinitelyEquals reports whether x and y are known to be equal. A false
// result does not mean they differ.
func (x *Real) DefinitelyEquals(ctx context.Context, y *Real) (bool, error) {
	ok, err := x.IsComparable(ctx, y)
	if err != nil || !ok {
		return false, err
	}
	c, err := x.CompareTo(ctx, y)
	return c == 0, err
}

// DefinitelyNotEquals reports whether x and y are known to differ, without
// any evaluation. A false result does not mean they are equal.
func (x *Real) DefinitelyNotEquals(y *Real) bool {
	xNamed, yNamed := x.named(), y.named()
	if xNamed && yNamed {
		if independent(x.kind, y.kind) {
			return x.rat.Sign() != 0 || y.rat.Sign() != 0
		}
		if x.kind == y.kind {
			return !x.rat.Equal(y.rat)
		}
		return false
	}
	if x.rat.Sign() == 0 {
		return yNamed && y.rat.Sign() != 0
	}
	if y.rat.Sign() == 0 {
		return xNamed && x.rat.Sign() != 0
	}
	return false
}

// DigitsRequired returns the number of decimal digits after the point
// needed to write x exactly, or math.MaxInt32 if that is not possible.
func (x *Real) DigitsRequired() int {
	if r := x.Rational(); r != nil {
		return rational.DigitsRequired(r)
	}
	return math.MaxInt32
}

// LeadingBinaryZeroes returns an upper bound on the number of zero bits
// between the binary point and the first nonzero bit, or math.MaxInt32
// if no bound is known.
func (x *Real) LeadingBinaryZeroes() int {
	if !x.named() {
		return math.MaxInt32
	}
	// ln(2) is the only named constant below one; 3 covers it loosely.
	whole := x.rat.WholeNumberBits()
	if whole == math.MinInt32 {
		return math.MaxInt32
	}
	if whole >= 3 {
		return 0
	}
	return 3 - whole
}

// ApproxWholeNumberBitsGreaterThan reports, roughly, whether x needs more
// than bound bits to the left of the binary point.
func (x *Real) ApproxWholeNumberBitsGreaterThan(ctx context.Context, bound int) (bool, error) {
	if x.named() {
		return x.rat.WholeNumberBits() > bound, nil
	}
	m, err := x.CRValue().ApproxGet(ctx, bound-2)
	if err != nil {
		return false, err
	}
	return m.BitLen() > 2, nil
}
