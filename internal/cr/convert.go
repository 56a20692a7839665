package cr

import (
	"context"
	"math"
	"math/big"
	"strings"
)

// FromFloat64 returns the exact value of f. NaN and infinities are
// rejected with a DOMAIN error.
func FromFloat64(f float64) (*Real, error) {
	if math.IsNaN(f) {
		return nil, NewDomainError("from_float", "NaN argument")
	}
	if math.IsInf(f, 0) {
		return nil, NewDomainError("from_float", "infinite argument")
	}
	negative := f < 0
	b := math.Float64bits(math.Abs(f))
	mantissa := int64(b & (1<<52 - 1))
	biasedExp := int(b >> 52)
	exp := biasedExp - 1075
	if biasedExp != 0 {
		mantissa += 1 << 52
	} else {
		mantissa <<= 1
	}
	r := FromInt64(mantissa).ShiftLeft(exp)
	if negative {
		r = r.Negate()
	}
	return r, nil
}

// Parse returns the value of s, written as [-]digits[.digits] in the given
// radix (2 to 16). Leading and trailing spaces are ignored.
func Parse(s string, radix int) (*Real, error) {
	if radix < 2 || radix > 16 {
		return nil, NewFormatError("parse", "unsupported radix %d", radix)
	}
	s = strings.Trim(s, " ")
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")

	whole, frac, hasPoint := strings.Cut(body, ".")
	if whole == "" && frac == "" {
		return nil, NewFormatError("parse", "no digits in %q", s)
	}
	if !hasPoint {
		frac = "0"
	}
	digits := whole + frac
	for _, c := range digits {
		if digitValue(c) >= radix {
			return nil, NewFormatError("parse", "invalid digit %q for radix %d in %q", c, radix, s)
		}
	}

	scaled, ok := new(big.Int).SetString(digits, radix)
	if !ok {
		return nil, NewFormatError("parse", "malformed number %q", s)
	}
	if neg {
		scaled.Neg(scaled)
	}
	divisor := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(len(frac))), nil)
	return FromBigInt(scaled).Divide(FromBigInt(divisor)), nil
}

// digitValue returns the value of c as a base-16 digit, or 16 if c is not
// a digit.
func digitValue(c rune) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return 16
}

// BigInt returns x rounded to an integer. The result is within one of x.
func (x *Real) BigInt(ctx context.Context) (*big.Int, error) {
	return x.ApproxGet(ctx, 0)
}

// Int64 returns x rounded to an int64. The result is undefined if x does
// not fit.
func (x *Real) Int64(ctx context.Context) (int64, error) {
	n, err := x.approxGet(ctx, 0)
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// Int32 returns the low 32 bits of x rounded to an integer.
func (x *Real) Int32(ctx context.Context) (int32, error) {
	n, err := x.Int64(ctx)
	return int32(n), err
}

// Byte returns the low 8 bits of x rounded to an integer.
func (x *Real) Byte(ctx context.Context) (byte, error) {
	n, err := x.Int64(ctx)
	return byte(n), err
}

// Float64 returns an approximation of x. Values too large for a float64
// become signed infinities and values too small become zero.
func (x *Real) Float64(ctx context.Context) (float64, error) {
	// Slightly beyond the float64 exponent range.
	msd, err := x.iterMsd(ctx, -1080)
	if err != nil {
		return 0, err
	}
	if msd == msdUnknown {
		return 0, nil
	}
	neededPrec := msd - 60
	appr, err := x.approxGet(ctx, neededPrec)
	if err != nil {
		return 0, err
	}
	f, _ := new(big.Float).SetInt(appr).Float64()
	return math.Ldexp(f, neededPrec), nil
}

// Float32 returns an approximation of x as a float32.
func (x *Real) Float32(ctx context.Context) (float32, error) {
	f, err := x.Float64(ctx)
	return float32(f), err
}
