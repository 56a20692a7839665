package unified

import (
	"math/big"

	"github.com/roach88/creal/internal/cr"
	"github.com/roach88/creal/internal/rational"
)

// Constant identifies a well-known constructive real used as a factor.
// Factors are compared by tag, never by pointer, so a named constant is
// recognized no matter how the value holding it was built.
type Constant int

const (
	Unnamed Constant = iota
	ConstOne
	ConstPi
	ConstE
	ConstSqrt2
	ConstSqrt3
	ConstSqrt5
	ConstSqrt6
	ConstSqrt7
	ConstSqrt10
	ConstLn2
	ConstLn3
	ConstLn5
	ConstLn6
	ConstLn7
	ConstLn10
)

type constantInfo struct {
	name  string
	value *cr.Real
	// square is n for √n (and 1 for ConstOne), zero otherwise.
	square int64
	// expOf is n for ln n, zero otherwise.
	expOf int64
}

var constants = [...]constantInfo{
	ConstOne:    {name: "", value: cr.One, square: 1},
	ConstPi:     {name: "π", value: cr.Pi},
	ConstE:      {name: "e", value: cr.E},
	ConstSqrt2:  {name: "√2", value: cr.FromInt64(2).Sqrt(), square: 2},
	ConstSqrt3:  {name: "√3", value: cr.FromInt64(3).Sqrt(), square: 3},
	ConstSqrt5:  {name: "√5", value: cr.FromInt64(5).Sqrt(), square: 5},
	ConstSqrt6:  {name: "√6", value: cr.FromInt64(6).Sqrt(), square: 6},
	ConstSqrt7:  {name: "√7", value: cr.FromInt64(7).Sqrt(), square: 7},
	ConstSqrt10: {name: "√10", value: cr.FromInt64(10).Sqrt(), square: 10},
	ConstLn2:    {name: "ln(2)", value: cr.Ln2, expOf: 2},
	ConstLn3:    {name: "ln(3)", value: cr.FromInt64(3).Ln(), expOf: 3},
	ConstLn5:    {name: "ln(5)", value: cr.FromInt64(5).Ln(), expOf: 5},
	ConstLn6:    {name: "ln(6)", value: cr.FromInt64(6).Ln(), expOf: 6},
	ConstLn7:    {name: "ln(7)", value: cr.FromInt64(7).Ln(), expOf: 7},
	ConstLn10:   {name: "ln(10)", value: cr.FromInt64(10).Ln(), expOf: 10},
}

// sqrtOf[n] and lnOf[n] are the constants √n and ln n, where named.
var (
	sqrtOf = [...]Constant{1: ConstOne, 2: ConstSqrt2, 3: ConstSqrt3, 5: ConstSqrt5,
		6: ConstSqrt6, 7: ConstSqrt7, 10: ConstSqrt10}
	lnOf = [...]Constant{2: ConstLn2, 3: ConstLn3, 5: ConstLn5, 6: ConstLn6,
		7: ConstLn7, 10: ConstLn10}
)

// String returns the display name: "π", "√2", "ln(3)". ConstOne has the
// empty name and Unnamed is "?".
func (c Constant) String() string {
	if c <= Unnamed || int(c) >= len(constants) {
		return "?"
	}
	return constants[c].name
}

func (c Constant) named() bool {
	return c != Unnamed
}

// square returns n if c is √n, or nil.
func (c Constant) square() *rational.Rat {
	if !c.named() || constants[c].square == 0 {
		return nil
	}
	return rational.FromInt64(constants[c].square)
}

// exp returns n if c is ln n, or nil.
func (c Constant) exp() *rational.Rat {
	if !c.named() || constants[c].expOf == 0 {
		return nil
	}
	return rational.FromInt64(constants[c].expOf)
}

func (c Constant) algebraic() bool {
	return c.square() != nil
}

func (c Constant) logarithm() bool {
	return c.exp() != nil
}

// independent reports whether no nonzero rational q makes a = q·b, so
// values over the two factors are equal only when both are zero.
//
// One against any other named constant: all others are irrational.
// Two distinct square roots of square-free integers: squaring gives a
// rational equation with an unmatched prime. Square roots against π, e
// or a logarithm: algebraic against transcendental (Lindemann). Two
// distinct logarithms: m^b = n^a has no solution for distinct entries in
// the table. π against a logarithm: e^π is transcendental (Gelfond). π
// against e, and e against a logarithm, are open problems.
func independent(a, b Constant) bool {
	if a == b || !a.named() || !b.named() {
		return false
	}
	if a == ConstOne || b == ConstOne {
		return true
	}
	if a.algebraic() || b.algebraic() {
		// ConstOne is handled above, so the other is transcendental or a
		// different square root.
		return true
	}
	if a.logarithm() && b.logarithm() {
		return true
	}
	if (a == ConstPi && b.logarithm()) || (b == ConstPi && a.logarithm()) {
		return true
	}
	return false
}

var big24 = big.NewInt(24)
