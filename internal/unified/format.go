package unified

import (
	"context"
	"math/big"

	"github.com/roach88/creal/internal/rational"
)

// ExactlyTruncatable reports whether ToStringTruncated is exact for x.
func (x *Real) ExactlyTruncatable() bool {
	return x.DefinitelyRational()
}

// ToStringTruncated returns x with n digits after the decimal point,
// truncated toward zero. Rational values are exact; other values are
// evaluated with guard bits, and a value just below a digit boundary may
// print as the boundary.
func (x *Real) ToStringTruncated(ctx context.Context, n int) (string, error) {
	if r := x.Rational(); r != nil {
		return r.ToStringTruncated(n), nil
	}
	return x.CRValue().ToDecimalString(ctx, n, 10)
}

// ToNiceString returns an exact form of x where one is known, such as
// "3/4", "2π" or "(1/2)√3". Other values are shown with 10 digits.
func (x *Real) ToNiceString() string {
	if r := x.Rational(); r != nil {
		return r.ToNiceString()
	}
	if x.named() {
		name := x.kind.String()
		if n := rational.BigInt(x.rat); n != nil {
			switch {
			case n.Cmp(big.NewInt(1)) == 0:
				return name
			case n.Cmp(big.NewInt(-1)) == 0:
				return "-" + name
			}
			return n.String() + name
		}
		return "(" + x.rat.ToNiceString() + ")" + name
	}
	return x.CRValue().String()
}

// String returns the raw representation "rat*factor", for logs and
// debugging.
func (x *Real) String() string {
	switch {
	case x.kind == ConstOne:
		return x.rat.String()
	case x.named():
		return x.rat.String() + "*" + x.kind.String()
	}
	return x.rat.String() + "*" + x.factor.String()
}
