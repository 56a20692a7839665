package rpn

import (
	"context"

	"github.com/roach88/creal/internal/rational"
	"github.com/roach88/creal/internal/unified"
)

// Rendering is an evaluated value formatted for output.
type Rendering struct {
	// Text is the value in the requested radix. It is exact when Exact is
	// set and truncated to the requested digits otherwise.
	Text string `json:"result"`

	// Nice is the exact symbolic form where one is known, such as "2π".
	Nice string `json:"nice"`

	Exact bool `json:"exact"`
}

// Render formats x with digits digits after the radix point.
//
// Rationals whose expansion terminates within digits are printed in
// full and marked exact. In radices other than 10 only integers are
// exact.
func Render(ctx context.Context, x *unified.Real, digits, radix int) (Rendering, error) {
	out := Rendering{Nice: x.ToNiceString()}

	r := x.Rational()
	if radix != 10 {
		if r != nil && r.IsInt() {
			out.Text = rational.BigInt(r).Text(radix)
			out.Exact = true
			return out, nil
		}
		text, err := x.CRValue().ToDecimalString(ctx, digits, radix)
		if err != nil {
			return Rendering{}, err
		}
		out.Text = text
		return out, nil
	}

	if r != nil {
		if n := rational.DigitsRequired(r); n <= digits {
			out.Text = r.ToStringTruncated(n)
			out.Exact = true
			return out, nil
		}
	}

	text, err := x.ToStringTruncated(ctx, digits)
	if err != nil {
		return Rendering{}, err
	}
	out.Text = text
	return out, nil
}

// Orders reported by Compare.
const (
	Less              = "<"
	Equal             = "="
	Greater           = ">"
	Indistinguishable = "indistinguishable"
)

// Compare orders x against y. Values that cannot be told apart exactly
// are compared to within 4·digits bits and reported as Indistinguishable
// when they agree that far.
func Compare(ctx context.Context, x, y *unified.Real, digits int) (string, error) {
	ok, err := x.IsComparable(ctx, y)
	if err != nil {
		return "", err
	}

	var c int
	if ok {
		c, err = x.CompareTo(ctx, y)
	} else {
		c, err = x.CompareToTol(ctx, y, -4*max(digits, 1))
	}
	if err != nil {
		return "", err
	}

	switch {
	case c < 0:
		return Less, nil
	case c > 0:
		return Greater, nil
	case ok:
		return Equal, nil
	}
	return Indistinguishable, nil
}
