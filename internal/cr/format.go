package cr

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// guardBits is the number of bits beyond the last printed digit that
// text conversions evaluate. Digits are truncated toward zero, except that
// a value within two guard units below a digit boundary is taken to lie
// on it, so exact values print exactly.
const guardBits = 10

var guardSnap = big.NewInt(1<<guardBits - 2)

// FloatRep is a value in scientific notation: Sign * 0.Mantissa * Radix^Exponent.
type FloatRep struct {
	Sign     int
	Mantissa string
	Radix    int
	Exponent int
}

// String renders r as [-]0.<mantissa>E<exponent>, with the radix appended
// when it is not 10.
func (r FloatRep) String() string {
	if r.Sign == 0 {
		return "0"
	}
	var b strings.Builder
	if r.Sign < 0 {
		b.WriteByte('-')
	}
	fmt.Fprintf(&b, "0.%sE%d", r.Mantissa, r.Exponent)
	if r.Radix != 10 {
		fmt.Fprintf(&b, "(radix %d)", r.Radix)
	}
	return b.String()
}

func checkRadix(op string, radix int) error {
	if radix < 2 || radix > 16 {
		return NewFormatError(op, "unsupported radix %d", radix)
	}
	return nil
}

// truncated returns the magnitude of x truncated to an integer and the
// sign of the result (0 when the magnitude is zero).
func (x *Real) truncated(ctx context.Context) (*big.Int, int, error) {
	m, err := x.approxGet(ctx, -guardBits)
	if err != nil {
		return nil, 0, err
	}
	abs := new(big.Int).Abs(m)
	q := new(big.Int).Rsh(abs, guardBits)
	rem := new(big.Int).Sub(abs, new(big.Int).Lsh(q, guardBits))
	if rem.Cmp(guardSnap) >= 0 {
		q.Add(q, big1)
	}
	if q.Sign() == 0 {
		return q, 0, nil
	}
	return q, m.Sign(), nil
}

// ToDecimalString returns x with exactly n digits after the radix point,
// truncated toward zero. The value is evaluated to 10 bits past the last
// digit, and a value within 2/1024 of a unit below the next digit is
// rounded up to it, so exact values print exactly: 0.999 prints as "1"
// with n = 0, while 0.99 prints as "0".
func (x *Real) ToDecimalString(ctx context.Context, n, radix int) (string, error) {
	if err := checkRadix("to_string", radix); err != nil {
		return "", err
	}
	if n < 0 {
		return "", NewFormatError("to_string", "negative digit count %d", n)
	}
	var scaled *Real
	if radix == 16 {
		scaled = x.ShiftLeft(4 * n)
	} else {
		factor := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(n)), nil)
		scaled = x.Multiply(FromBigInt(factor))
	}
	q, sign, err := scaled.truncated(ctx)
	if err != nil {
		return "", err
	}

	digits := q.Text(radix)
	result := digits
	if n > 0 {
		if len(digits) <= n {
			digits = strings.Repeat("0", n+1-len(digits)) + digits
		}
		split := len(digits) - n
		result = digits[:split] + "." + digits[split:]
	}
	if sign < 0 {
		result = "-" + result
	}
	return result, nil
}

// ToScientificString returns x with n mantissa digits. Values smaller in
// magnitude than about radix^m may be reported as zero.
func (x *Real) ToScientificString(ctx context.Context, n, radix, m int) (FloatRep, error) {
	if err := checkRadix("to_scientific", radix); err != nil {
		return FloatRep{}, err
	}
	if n <= 0 {
		return FloatRep{}, NewFormatError("to_scientific", "mantissa digit count %d must be positive", n)
	}
	log2Radix := math.Log2(float64(radix))
	msdPrec64 := int64(log2Radix * float64(m))
	if msdPrec64 > math.MaxInt32 || msdPrec64 < math.MinInt32 {
		return FloatRep{}, precisionOverflow(int(msdPrec64))
	}
	msdPrec := int(msdPrec64)
	if err := checkPrec(msdPrec); err != nil {
		return FloatRep{}, err
	}
	msd, err := x.iterMsd(ctx, msdPrec-2)
	if err != nil {
		return FloatRep{}, err
	}
	if msd == msdUnknown {
		return FloatRep{Sign: 0, Mantissa: "0", Radix: radix, Exponent: 0}, nil
	}

	// A guess, corrected below when it is off by one.
	exponent := int(math.Ceil(float64(msd) / log2Radix))
	bigRadix := big.NewInt(int64(radix))
	scaleExp := exponent - n
	var factor *Real
	if scaleExp > 0 {
		factor = FromBigInt(new(big.Int).Exp(bigRadix, big.NewInt(int64(scaleExp)), nil)).Inverse()
	} else {
		factor = FromBigInt(new(big.Int).Exp(bigRadix, big.NewInt(int64(-scaleExp)), nil))
	}
	scaled := x.Multiply(factor)
	q, sign, err := scaled.truncated(ctx)
	if err != nil {
		return FloatRep{}, err
	}
	digits := q.Text(radix)
	for len(digits) < n {
		if err := checkCtx(ctx, "to_scientific"); err != nil {
			return FloatRep{}, err
		}
		scaled = scaled.Multiply(FromBigInt(bigRadix))
		exponent--
		if q, sign, err = scaled.truncated(ctx); err != nil {
			return FloatRep{}, err
		}
		digits = q.Text(radix)
	}
	if len(digits) > n {
		exponent += len(digits) - n
		digits = digits[:n]
	}
	return FloatRep{Sign: sign, Mantissa: digits, Radix: radix, Exponent: exponent}, nil
}

// String returns x with 10 decimal digits after the point. Evaluation
// errors are rendered in place of the digits.
func (x *Real) String() string {
	s, err := x.ToDecimalString(context.Background(), 10, 10)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return s
}
