// Package cr implements constructive real numbers.
//
// A *Real is an immutable description of a real number that can be
// approximated to any requested precision. ApproxGet(ctx, p) returns a
// scaled integer m such that |x - m*2^p| < 2^p. Values are built as a DAG
// of operator nodes (sums, products, inverses, transcendental series) and
// nothing is evaluated until a caller asks for digits.
//
// CACHING:
//
// Every node keeps the tightest approximation it has produced so far.
// Requests at a coarser precision are answered from the cache by rounding,
// so repeated evaluation at increasing precision only pays for the new bits.
// The cache is guarded by a per-node mutex which is never held while an
// operand is being evaluated, so a single *Real may be shared freely between
// goroutines.
//
// CANCELLATION:
//
// Evaluation entry points take a context.Context. Series loops and the
// precision search loops check it on every iteration and fail with an
// ABORTED error once it is done.
//
// DIVERGENCE:
//
// Some operations cannot terminate on a value that is exactly zero:
// Msd, Signum and Compare keep doubling the precision until the context is
// cancelled or the precision leaves the supported range
// (PRECISION_OVERFLOW). Callers that may see zero should use the tolerance
// variants SignumAt and CompareAbs.
package cr
