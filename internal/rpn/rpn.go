package rpn

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/creal/internal/cr"
	"github.com/roach88/creal/internal/unified"
)

// DomainExpression prefixes expression hashes. The version suffix allows
// the canonical form to change.
const DomainExpression = "creal/expression/v1"

var operatorReplacer = strings.NewReplacer(
	"−", "-",
	"×", "*",
	"÷", "/",
	"·", "*",
)

// Tokenize normalizes expr and splits it into tokens.
func Tokenize(expr string) []string {
	s := operatorReplacer.Replace(norm.NFKC.String(expr))
	return strings.Fields(s)
}

// Canonical returns the normalized expression with tokens separated by
// single spaces.
func Canonical(expr string) string {
	return strings.Join(Tokenize(expr), " ")
}

// Hash returns the content hash of the canonical form of expr:
// SHA256(DomainExpression + 0x00 + canonical), hex encoded. Expressions
// that differ only in spacing or operator spelling hash the same.
func Hash(expr string) string {
	h := sha256.New()
	h.Write([]byte(DomainExpression))
	h.Write([]byte{0x00})
	h.Write([]byte(Canonical(expr)))
	return hex.EncodeToString(h.Sum(nil))
}

type unaryFunc func(ctx context.Context, x *unified.Real) (*unified.Real, error)

type binaryFunc func(ctx context.Context, x, y *unified.Real) (*unified.Real, error)

func pure(f func(*unified.Real) *unified.Real) unaryFunc {
	return func(_ context.Context, x *unified.Real) (*unified.Real, error) {
		return f(x), nil
	}
}

func noCtx(f func(*unified.Real) (*unified.Real, error)) unaryFunc {
	return func(_ context.Context, x *unified.Real) (*unified.Real, error) {
		return f(x)
	}
}

func withCtx(f func(*unified.Real, context.Context) (*unified.Real, error)) unaryFunc {
	return func(ctx context.Context, x *unified.Real) (*unified.Real, error) {
		return f(x, ctx)
	}
}

var unaryOps = map[string]unaryFunc{
	"neg":  pure((*unified.Real).Negate),
	"inv":  noCtx((*unified.Real).Inverse),
	"sqrt": noCtx((*unified.Real).Sqrt),
	"√":    noCtx((*unified.Real).Sqrt),
	"sin":  pure((*unified.Real).Sin),
	"cos":  pure((*unified.Real).Cos),
	"tan":  noCtx((*unified.Real).Tan),
	"ln":   withCtx((*unified.Real).Ln),
	"log":  withCtx((*unified.Real).Log),
	"exp":  withCtx((*unified.Real).Exp),
	"asin": withCtx((*unified.Real).Asin),
	"acos": withCtx((*unified.Real).Acos),
	"atan": withCtx((*unified.Real).Atan),
	"!":    withCtx((*unified.Real).Fact),
}

var binaryOps = map[string]binaryFunc{
	"+": func(_ context.Context, x, y *unified.Real) (*unified.Real, error) {
		return x.Add(y), nil
	},
	"-": func(_ context.Context, x, y *unified.Real) (*unified.Real, error) {
		return x.Subtract(y), nil
	},
	"*": func(_ context.Context, x, y *unified.Real) (*unified.Real, error) {
		return x.Multiply(y), nil
	},
	"/": func(_ context.Context, x, y *unified.Real) (*unified.Real, error) {
		return x.Divide(y)
	},
	"^": func(ctx context.Context, x, y *unified.Real) (*unified.Real, error) {
		return x.Pow(ctx, y)
	},
}

var constants = map[string]*unified.Real{
	"pi": unified.Pi,
	"π":  unified.Pi,
	"e":  unified.E,
}

// Eval evaluates expr and returns the single value left on the stack.
// Unknown tokens, stack underflow and a final stack that does not hold
// exactly one value are FORMAT errors; arithmetic failures are returned
// as produced by the unified package.
func Eval(ctx context.Context, expr string) (*unified.Real, error) {
	tokens := Tokenize(expr)
	if len(tokens) == 0 {
		return nil, cr.NewFormatError("eval", "empty expression")
	}
	var stack []*unified.Real
	pop := func(tok string, n int) ([]*unified.Real, error) {
		if len(stack) < n {
			return nil, cr.NewFormatError("eval", "stack underflow at %q", tok)
		}
		args := append([]*unified.Real(nil), stack[len(stack)-n:]...)
		stack = stack[:len(stack)-n]
		return args, nil
	}

	for _, tok := range tokens {
		if err := cr.CheckContext(ctx, "eval"); err != nil {
			return nil, err
		}
		if c, ok := constants[tok]; ok {
			stack = append(stack, c)
			continue
		}
		if f, ok := unaryOps[tok]; ok {
			args, err := pop(tok, 1)
			if err != nil {
				return nil, err
			}
			r, err := f(ctx, args[0])
			if err != nil {
				return nil, err
			}
			stack = append(stack, r)
			continue
		}
		if f, ok := binaryOps[tok]; ok {
			args, err := pop(tok, 2)
			if err != nil {
				return nil, err
			}
			r, err := f(ctx, args[0], args[1])
			if err != nil {
				return nil, err
			}
			stack = append(stack, r)
			continue
		}
		switch tok {
		case "dup":
			args, err := pop(tok, 1)
			if err != nil {
				return nil, err
			}
			stack = append(stack, args[0], args[0])
			continue
		case "swap":
			args, err := pop(tok, 2)
			if err != nil {
				return nil, err
			}
			stack = append(stack, args[1], args[0])
			continue
		}
		x, err := unified.Parse(tok)
		if err != nil {
			if looksNumeric(tok) {
				return nil, err
			}
			return nil, cr.NewFormatError("eval", "unknown token %q", tok)
		}
		stack = append(stack, x)
	}

	if len(stack) != 1 {
		return nil, cr.NewFormatError("eval", "expression leaves %d values on the stack", len(stack))
	}
	return stack[0], nil
}

// looksNumeric reports whether tok starts like a number, so a parse
// failure is about the number rather than an unknown word.
func looksNumeric(tok string) bool {
	t := strings.TrimLeft(tok, "+-")
	return t != "" && (t[0] == '.' || (t[0] >= '0' && t[0] <= '9'))
}
