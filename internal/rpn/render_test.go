package rpn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		digits int
		radix  int
		want   Rendering
	}{
		{"integer", "6 7 *", 5, 10, Rendering{Text: "42", Nice: "42", Exact: true}},
		{"terminating", "1 8 /", 5, 10, Rendering{Text: "0.125", Nice: "1/8", Exact: true}},
		{"too long to be exact", "1 8 /", 2, 10, Rendering{Text: "0.12", Nice: "1/8"}},
		{"repeating", "1 3 /", 4, 10, Rendering{Text: "0.3333", Nice: "1/3"}},
		{"irrational", "pi", 5, 10, Rendering{Text: "3.14159", Nice: "π"}},
		{"negative irrational", "2 sqrt neg", 3, 10, Rendering{Text: "-1.414", Nice: "-√2"}},
		{"hex integer", "255", 4, 16, Rendering{Text: "ff", Nice: "255", Exact: true}},
		{"binary fraction", "1 4 /", 3, 2, Rendering{Text: "0.010", Nice: "1/4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := Eval(context.Background(), tt.expr)
			require.NoError(t, err)

			got, err := Render(context.Background(), x, tt.digits, tt.radix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_BadRadix(t *testing.T) {
	x, err := Eval(context.Background(), "pi")
	require.NoError(t, err)

	_, err = Render(context.Background(), x, 5, 40)
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want string
	}{
		{"rationals", "1 3 /", "1 2 /", Less},
		{"pi against 22/7", "pi", "22 7 /", Less},
		{"e against 2.7", "e", "2.7", Greater},
		{"exact equality", "2 sqrt dup *", "2", Equal},
		{"same factor", "pi 2 *", "pi pi +", Equal},
		{"unnamed but equal", "2 ln 3 ln +", "6 ln", Indistinguishable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			x, err := Eval(ctx, tt.x)
			require.NoError(t, err)
			y, err := Eval(ctx, tt.y)
			require.NoError(t, err)

			got, err := Compare(ctx, x, y, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
