// Package rational provides exact fractions with a bounded size.
//
// A *Rat is immutable. Operations whose result would need more than
// MaxBits bits of numerator plus denominator, or whose result is not
// rational (the square root of a non-square), return nil. Every function
// accepts nil arguments and propagates them, so a chain of operations can
// be checked once at the end:
//
//	r := rational.Add(rational.Mul(a, b), c)
//	if r == nil {
//		// fall back to approximate arithmetic
//	}
package rational
