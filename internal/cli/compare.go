package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/creal/internal/engine"
	"github.com/roach88/creal/internal/rpn"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <expr-a> <expr-b>",
		Short: "Order two expressions",
		Long: `Compare two RPN expressions and print <, = or >.

Values that cannot be told apart exactly are compared to about --digits
decimal digits and reported as "indistinguishable" when they agree that
far.

Example:
  creal compare pi "355 113 /"
  creal compare "2 ln 3 ln +" "6 ln" --digits 50`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, rootOpts, args[0], args[1])
		},
	}
	return cmd
}

func runCompare(cmd *cobra.Command, opts *RootOptions, a, b string) error {
	formatter := newFormatter(cmd, opts)

	eng := engine.New(engineOptions(opts.Config)...)
	out, err := eng.Compare(cmd.Context(), a, b)
	if err != nil {
		return formatter.Fail(err, map[string]string{"left": out.Left, "right": out.Right})
	}

	if opts.Format == "json" {
		return formatter.Success(out)
	}
	if out.Order == rpn.Indistinguishable {
		return formatter.Success(fmt.Sprintf("%s and %s are indistinguishable to %d digits", out.Left, out.Right, eng.Digits()))
	}
	return formatter.Success(fmt.Sprintf("%s %s %s", out.Left, out.Order, out.Right))
}
