package cr

import "math/big"

// Well-known values.
var (
	Zero = FromInt64(0)
	One  = FromInt64(1)

	// Pi is computed with the Gauss-Legendre iteration.
	Pi = newReal(&gaussLegendrePi{})

	// AtanPi is pi from Machin's formula, 4*(4*atan(1/5) - atan(1/239)).
	// It is slower than Pi and mainly useful as an independent check.
	AtanPi = four.Multiply(four.Multiply(IntegralAtan(5)).Subtract(IntegralAtan(239)))

	// E is exp(1).
	E = One.Exp()

	four   = FromInt64(4)
	halfPi = Pi.ShiftRight(1)
)

// Ln2 is ln(2) = 7 ln(10/9) - 2 ln(25/24) + 3 ln(81/80).
var Ln2 = FromInt64(7).Multiply(simpleLn(fraction(10, 9))).
	Subtract(FromInt64(2).Multiply(simpleLn(fraction(25, 24)))).
	Add(FromInt64(3).Multiply(simpleLn(fraction(81, 80))))

func fraction(num, den int64) *Real {
	return FromInt64(num).Divide(FromInt64(den))
}

// FromInt64 returns the exact value n.
func FromInt64(n int64) *Real {
	return newReal(&intConst{v: big.NewInt(n)})
}

// FromBigInt returns the exact value n. n is copied.
func FromBigInt(n *big.Int) *Real {
	return newReal(&intConst{v: new(big.Int).Set(n)})
}

// IntegralAtan returns atan(1/n) for n > 1.
func IntegralAtan(n int64) *Real {
	return newReal(&integralAtan{n: n})
}

// AssumeInt returns x, promising that x is an integer. Approximations at
// negative precision are then derived from the precision-0 one.
func (x *Real) AssumeInt() *Real {
	return newReal(&assumedInt{x: x})
}

// Add returns x + y.
func (x *Real) Add(y *Real) *Real {
	return newReal(&addOp{a: x, b: y})
}

// Subtract returns x - y.
func (x *Real) Subtract(y *Real) *Real {
	return x.Add(y.Negate())
}

// Negate returns -x.
func (x *Real) Negate() *Real {
	return newReal(&negateOp{x: x})
}

// Multiply returns x * y.
func (x *Real) Multiply(y *Real) *Real {
	return newReal(&multiplyOp{a: x, b: y})
}

// Inverse returns 1/x. Evaluating the inverse of zero does not terminate.
func (x *Real) Inverse() *Real {
	return newReal(&inverseOp{x: x})
}

// Divide returns x / y.
func (x *Real) Divide(y *Real) *Real {
	return x.Multiply(y.Inverse())
}

// ShiftLeft returns x * 2^n.
func (x *Real) ShiftLeft(n int) *Real {
	return newReal(&shifted{x: x, n: n})
}

// ShiftRight returns x / 2^n.
func (x *Real) ShiftRight(n int) *Real {
	return newReal(&shifted{x: x, n: -n})
}

// Select returns ifNeg where x < 0 and ifNonNeg otherwise. Where x is
// zero both must have the same value.
func (x *Real) Select(ifNeg, ifNonNeg *Real) *Real {
	return newReal(&selectOp{sel: x, ifNeg: ifNeg, ifNonNeg: ifNonNeg})
}

// Max returns the larger of x and y.
func (x *Real) Max(y *Real) *Real {
	return x.Subtract(y).Select(y, x)
}

// Min returns the smaller of x and y.
func (x *Real) Min(y *Real) *Real {
	return x.Subtract(y).Select(x, y)
}

// Abs returns |x|.
func (x *Real) Abs() *Real {
	return x.Select(x.Negate(), x)
}

// Sqrt returns the square root of x. Evaluation fails with a DOMAIN error
// if x is negative.
func (x *Real) Sqrt() *Real {
	return newReal(&sqrtOp{x: x})
}

// Exp returns e^x.
func (x *Real) Exp() *Real {
	return newReal(&reduced{kind: reduceExp, x: x})
}

// Cos returns the cosine of x.
func (x *Real) Cos() *Real {
	return newReal(&reduced{kind: reduceCos, x: x})
}

// Sin returns the sine of x, computed as cos(pi/2 - x).
func (x *Real) Sin() *Real {
	return halfPi.Subtract(x).Cos()
}

// Tan returns sin(x)/cos(x).
func (x *Real) Tan() *Real {
	return x.Sin().Divide(x.Cos())
}

// Asin returns the arcsine of x. Evaluation fails with a DOMAIN error if
// x is outside [-1, 1] by a detectable margin.
func (x *Real) Asin() *Real {
	return newReal(&reduced{kind: reduceAsin, x: x})
}

// Acos returns pi/2 - asin(x).
func (x *Real) Acos() *Real {
	return halfPi.Subtract(x.Asin())
}

// Atan returns the arctangent of x as asin(x / sqrt(1 + x^2)).
func (x *Real) Atan() *Real {
	x2 := x.Multiply(x)
	absSinAtan := x2.Divide(One.Add(x2)).Sqrt()
	sinAtan := x.Select(absSinAtan.Negate(), absSinAtan)
	return sinAtan.Asin()
}

// Ln returns the natural logarithm of x. Evaluation fails with a DOMAIN
// error if x is negative.
func (x *Real) Ln() *Real {
	return newReal(&reduced{kind: reduceLn, x: x})
}

// simpleLn is ln(x) for x close to 1.
func simpleLn(x *Real) *Real {
	return newReal(&prescaledLn{x: x.Subtract(One)})
}
