package cr

import (
	"context"
	"log/slog"
	"math/big"
	"sync"
)

// Precision bounds. Every precision handed to ApproxGet, and every
// precision derived from one, must lie in [minPrecision, maxPrecision).
// The remaining headroom keeps sums of a few checked precisions from
// overflowing a 32-bit exponent.
const (
	minPrecision = -(1 << 28)
	maxPrecision = 1 << 28
)

// Slow nodes evaluate at no coarser than slowMaxPrec and round requests
// down to a multiple of slowPrecIncr, so a sequence of slightly tighter
// requests reuses one expensive evaluation.
const (
	slowMaxPrec  = -64
	slowPrecIncr = 32
)

var (
	big0  = big.NewInt(0)
	big1  = big.NewInt(1)
	bigM1 = big.NewInt(-1)
	big2  = big.NewInt(2)
	big3  = big.NewInt(3)
	big4  = big.NewInt(4)
	big8  = big.NewInt(8)
)

// Real is a constructive real number.
//
// A Real is logically immutable. Physically it carries a cache of its
// tightest approximation so far, guarded by its own mutex.
type Real struct {
	op    op
	cache approxCache
}

// approxCache is the mutable part of a Real.
type approxCache struct {
	mu      sync.Mutex
	valid   bool
	minPrec int
	maxAppr *big.Int
}

func newReal(o op) *Real {
	return &Real{op: o}
}

// checkPrec fails with PRECISION_OVERFLOW unless n is inside the
// supported precision range.
func checkPrec(n int) error {
	if n < minPrecision || n >= maxPrecision {
		return precisionOverflow(n)
	}
	return nil
}

// scale multiplies k by 2^n, rounding to nearest (ties toward +inf) when
// n is negative.
func scale(k *big.Int, n int) *big.Int {
	if n >= 0 {
		return new(big.Int).Lsh(k, uint(n))
	}
	r := new(big.Int).Rsh(k, uint(-n-1))
	r.Add(r, big1)
	return r.Rsh(r, 1)
}

// shift multiplies k by 2^n, truncating toward -inf when n is negative.
func shift(k *big.Int, n int) *big.Int {
	switch {
	case n == 0:
		return k
	case n < 0:
		return new(big.Int).Rsh(k, uint(-n))
	default:
		return new(big.Int).Lsh(k, uint(n))
	}
}

// ApproxGet returns m such that |x - m*2^p| < 2^p.
// The returned integer belongs to the caller.
func (x *Real) ApproxGet(ctx context.Context, p int) (*big.Int, error) {
	r, err := x.approxGet(ctx, p)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(r), nil
}

// approxGet is ApproxGet without the defensive copy. The result may be
// shared with a node cache and must not be modified.
func (x *Real) approxGet(ctx context.Context, p int) (*big.Int, error) {
	if err := checkPrec(p); err != nil {
		return nil, err
	}
	if r, ok := x.fromCache(p); ok {
		return r, nil
	}

	evalPrec := p
	if isSlow(x.op) {
		if p >= slowMaxPrec {
			evalPrec = slowMaxPrec
		} else {
			evalPrec = (p - slowPrecIncr + 1) &^ (slowPrecIncr - 1)
		}
		slog.Debug("evaluating slow node",
			"op", opName(x.op),
			"prec", p,
			"eval_prec", evalPrec,
		)
	}

	r, err := x.approximate(ctx, evalPrec)
	if err != nil {
		return nil, err
	}
	x.store(evalPrec, r)
	return scale(r, evalPrec-p), nil
}

// fromCache answers a request at precision p from the cache when the cache
// is at least as tight as p.
func (x *Real) fromCache(p int) (*big.Int, bool) {
	x.cache.mu.Lock()
	defer x.cache.mu.Unlock()
	if !x.cache.valid || p < x.cache.minPrec {
		return nil, false
	}
	if p == x.cache.minPrec {
		return x.cache.maxAppr, true
	}
	return scale(x.cache.maxAppr, x.cache.minPrec-p), true
}

// store records an approximation if it is tighter than the cached one.
func (x *Real) store(p int, appr *big.Int) {
	x.cache.mu.Lock()
	defer x.cache.mu.Unlock()
	if !x.cache.valid || p < x.cache.minPrec {
		x.cache.minPrec = p
		x.cache.maxAppr = appr
		x.cache.valid = true
	}
}

// preset seeds the cache with a known approximation.
func (x *Real) preset(p int, appr *big.Int) {
	x.store(p, appr)
}

// cached returns a snapshot of the cache.
func (x *Real) cached() (int, *big.Int, bool) {
	x.cache.mu.Lock()
	defer x.cache.mu.Unlock()
	return x.cache.minPrec, x.cache.maxAppr, x.cache.valid
}
