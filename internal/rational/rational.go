package rational

import (
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/roach88/creal/internal/cr"
)

// MaxBits bounds the combined bit length of numerator and denominator.
const MaxBits = 10000

// Rat is an exact, immutable fraction in lowest terms.
type Rat struct {
	r big.Rat
}

// Common values.
var (
	Zero      = New(0, 1)
	One       = New(1, 1)
	MinusOne  = New(-1, 1)
	Two       = New(2, 1)
	MinusTwo  = New(-2, 1)
	Half      = New(1, 2)
	MinusHalf = New(-1, 2)
	Third     = New(1, 3)
	Quarter   = New(1, 4)
	Sixth     = New(1, 6)
	Ten       = New(10, 1)
	Twelve    = New(12, 1)
)

// New returns num/den. It panics if den is zero.
func New(num, den int64) *Rat {
	x := &Rat{}
	x.r.SetFrac64(num, den)
	return x
}

// FromInt64 returns n.
func FromInt64(n int64) *Rat {
	return New(n, 1)
}

// FromBigInt returns n, or nil if n is too large.
func FromBigInt(n *big.Int) *Rat {
	x := &Rat{}
	x.r.SetInt(n)
	return bounded(x)
}

// FromBigRat returns a copy of r, or nil if r is too large.
func FromBigRat(r *big.Rat) *Rat {
	x := &Rat{}
	x.r.Set(r)
	return bounded(x)
}

// FromFloat64 returns the exact value of f, or nil for NaN and infinities.
func FromFloat64(f float64) *Rat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	x := &Rat{}
	x.r.SetFloat64(f)
	return bounded(x)
}

var (
	decimalPattern  = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)$`)
	fractionPattern = regexp.MustCompile(`^([-+]?\d+)/(\d+)$`)
)

// Parse returns the value of a decimal string such as "12", "-0.125" or
// "3/4". It reports false if s is not a number. Only base 10 is accepted:
// "0x10" is not a number and "010/3" is ten thirds. The result is nil,
// with true, when the value exceeds MaxBits.
func Parse(s string) (*Rat, bool) {
	s = strings.TrimSpace(s)
	x := &Rat{}
	switch {
	case decimalPattern.MatchString(s):
		if _, ok := x.r.SetString(s); !ok {
			return nil, false
		}
	case fractionPattern.MatchString(s):
		m := fractionPattern.FindStringSubmatch(s)
		num, ok1 := new(big.Int).SetString(m[1], 10)
		den, ok2 := new(big.Int).SetString(m[2], 10)
		if !ok1 || !ok2 || den.Sign() == 0 {
			return nil, false
		}
		x.r.SetFrac(num, den)
	default:
		return nil, false
	}
	return bounded(x), true
}

func bounded(x *Rat) *Rat {
	if x.r.Num().BitLen()+x.r.Denom().BitLen() > MaxBits {
		return nil
	}
	return x
}

// Add returns a + b.
func Add(a, b *Rat) *Rat {
	if a == nil || b == nil {
		return nil
	}
	x := &Rat{}
	x.r.Add(&a.r, &b.r)
	return bounded(x)
}

// Sub returns a - b.
func Sub(a, b *Rat) *Rat {
	return Add(a, Neg(b))
}

// Neg returns -a.
func Neg(a *Rat) *Rat {
	if a == nil {
		return nil
	}
	x := &Rat{}
	x.r.Neg(&a.r)
	return x
}

// Mul returns a * b.
func Mul(a, b *Rat) *Rat {
	if a == nil || b == nil {
		return nil
	}
	x := &Rat{}
	x.r.Mul(&a.r, &b.r)
	return bounded(x)
}

// Inv returns 1/a, or nil if a is zero.
func Inv(a *Rat) *Rat {
	if a == nil || a.Sign() == 0 {
		return nil
	}
	x := &Rat{}
	x.r.Inv(&a.r)
	return x
}

// Quo returns a / b, or nil if b is zero.
func Quo(a, b *Rat) *Rat {
	return Mul(a, Inv(b))
}

// Sqrt returns the square root of a if numerator and denominator are both
// perfect squares, and nil otherwise (including for negative a).
func Sqrt(a *Rat) *Rat {
	if a == nil || a.Sign() < 0 {
		return nil
	}
	num := exactSqrt(a.r.Num())
	if num == nil {
		return nil
	}
	den := exactSqrt(a.r.Denom())
	if den == nil {
		return nil
	}
	x := &Rat{}
	x.r.SetFrac(num, den)
	return x
}

func exactSqrt(n *big.Int) *big.Int {
	s := new(big.Int).Sqrt(n)
	if new(big.Int).Mul(s, s).Cmp(n) != 0 {
		return nil
	}
	return s
}

// PowInt returns a^exp, or nil if the result is too large or a is zero
// and exp negative.
func PowInt(a *Rat, exp *big.Int) *Rat {
	if a == nil {
		return nil
	}
	if exp.Sign() < 0 {
		return Inv(PowInt(a, new(big.Int).Neg(exp)))
	}
	switch {
	case exp.Sign() == 0:
		return One
	case a.Sign() == 0:
		return Zero
	case a.r.IsInt() && a.r.Num().CmpAbs(big.NewInt(1)) == 0:
		if a.Sign() > 0 || exp.Bit(0) == 0 {
			return One
		}
		return MinusOne
	}
	// Each factor contributes at least one bit to the numerator or the
	// denominator.
	if !exp.IsInt64() || exp.Int64() > MaxBits {
		return nil
	}
	e := exp.Int64()
	size := int64(a.r.Num().BitLen()-1+a.r.Denom().BitLen()-1) * e
	if size > MaxBits {
		return nil
	}
	num := new(big.Int).Exp(a.r.Num(), exp, nil)
	den := new(big.Int).Exp(a.r.Denom(), exp, nil)
	x := &Rat{}
	x.r.SetFrac(num, den)
	return bounded(x)
}

// Pow returns a^exp for an integral exp, and nil otherwise.
func Pow(a, exp *Rat) *Rat {
	if a == nil || exp == nil || !exp.IsInt() {
		return nil
	}
	return PowInt(a, exp.r.Num())
}

// Sign returns -1, 0 or +1.
func (a *Rat) Sign() int {
	return a.r.Sign()
}

// Cmp compares a and b.
func (a *Rat) Cmp(b *Rat) int {
	return a.r.Cmp(&b.r)
}

// Equal reports whether a == b. Nil is only equal to nil.
func (a *Rat) Equal(b *Rat) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

// IsInt reports whether a is an integer.
func (a *Rat) IsInt() bool {
	return a.r.IsInt()
}

// BigInt returns a as an integer, or nil if a is nil or not an integer.
func BigInt(a *Rat) *big.Int {
	if a == nil || !a.r.IsInt() {
		return nil
	}
	return new(big.Int).Set(a.r.Num())
}

// Int64 returns a as an int64 if it is an integer that fits.
func (a *Rat) Int64() (int64, bool) {
	n := BigInt(a)
	if n == nil || !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// Num returns a copy of the numerator.
func (a *Rat) Num() *big.Int {
	return new(big.Int).Set(a.r.Num())
}

// Denom returns a copy of the (positive) denominator.
func (a *Rat) Denom() *big.Int {
	return new(big.Int).Set(a.r.Denom())
}

// BigRat returns a copy of a as a *big.Rat.
func (a *Rat) BigRat() *big.Rat {
	return new(big.Rat).Set(&a.r)
}

// Float64 returns the nearest float64.
func (a *Rat) Float64() float64 {
	f, _ := a.r.Float64()
	return f
}

// CR returns a as a constructive real.
func (a *Rat) CR() *cr.Real {
	if a.r.IsInt() {
		return cr.FromBigInt(a.r.Num())
	}
	return cr.FromBigInt(a.r.Num()).Divide(cr.FromBigInt(a.r.Denom()))
}

// WholeNumberBits returns the approximate number of bits to the left of
// the binary point, or math.MinInt32 for zero.
func (a *Rat) WholeNumberBits() int {
	if a.Sign() == 0 {
		return math.MinInt32
	}
	return a.r.Num().BitLen() - a.r.Denom().BitLen()
}

// DigitsRequired returns the number of decimal digits after the point
// needed to represent a exactly, or math.MaxInt32 if the expansion does
// not terminate.
func DigitsRequired(a *Rat) int {
	if a == nil {
		return math.MaxInt32
	}
	den := a.r.Denom()
	if den.Cmp(big.NewInt(1)) == 0 {
		return 0
	}
	twos := int(den.TrailingZeroBits())
	rest := new(big.Int).Rsh(den, uint(twos))
	fives := 0
	five := big.NewInt(5)
	q, m := new(big.Int), new(big.Int)
	for {
		q.QuoRem(rest, five, m)
		if m.Sign() != 0 {
			break
		}
		rest.Set(q)
		fives++
	}
	if rest.Cmp(big.NewInt(1)) != 0 {
		return math.MaxInt32
	}
	return max(twos, fives)
}

// ToStringTruncated returns a with n digits after the decimal point,
// truncated toward zero. No point is written when n is zero.
func (a *Rat) ToStringTruncated(n int) string {
	scaled := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	scaled.Mul(scaled, new(big.Int).Abs(a.r.Num()))
	scaled.Quo(scaled, a.r.Denom())

	digits := scaled.String()
	if n == 0 {
		if a.Sign() < 0 && scaled.Sign() != 0 {
			return "-" + digits
		}
		return digits
	}
	if len(digits) < n+1 {
		digits = strings.Repeat("0", n+1-len(digits)) + digits
	}
	split := len(digits) - n
	result := digits[:split] + "." + digits[split:]
	if a.Sign() < 0 && scaled.Sign() != 0 {
		result = "-" + result
	}
	return result
}

// ToNiceString returns a as "n" or "n/d".
func (a *Rat) ToNiceString() string {
	return a.r.RatString()
}

// String returns a as "n/d".
func (a *Rat) String() string {
	if a == nil {
		return "<nil>"
	}
	return a.r.String()
}
