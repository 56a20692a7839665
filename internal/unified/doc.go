// Package unified represents real numbers as a product of an exact
// rational factor and a constructive-real factor.
//
// Keeping the rational part separate lets most calculator arithmetic stay
// exact: 1/3 + 1/6 is 1/2, sqrt(8) is 2·√2, and √2·√2 is exactly 2. The
// constructive factor is usually one of a small set of named constants
// (π, e, √n and ln n for small n). Values built from the same named
// constant can be compared without approximate evaluation, and values
// built from provably independent constants are known to differ unless
// both are zero.
//
// Operations that may need to evaluate the constructive factor take a
// context.Context; the rest are pure. Errors are *cr.Error values, so
// cr.IsDomain and friends apply to this package as well.
package unified
