package cli

import (
	"context"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/creal/internal/engine"
)

// namedConstant is a row of the consts table.
type namedConstant struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Value      string `json:"value"`
}

// knownConstants are the constants the evaluator keeps symbolic.
var knownConstants = []namedConstant{
	{Name: "π", Expression: "pi"},
	{Name: "e", Expression: "e"},
	{Name: "√2", Expression: "2 sqrt"},
	{Name: "√3", Expression: "3 sqrt"},
	{Name: "√5", Expression: "5 sqrt"},
	{Name: "√10", Expression: "10 sqrt"},
	{Name: "ln(2)", Expression: "2 ln"},
	{Name: "ln(3)", Expression: "3 ln"},
	{Name: "ln(5)", Expression: "5 ln"},
	{Name: "ln(10)", Expression: "10 ln"},
}

// NewConstsCommand creates the consts command.
func NewConstsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consts",
		Short: "Print the named constants",
		Long: `Evaluate the constants creal keeps in symbolic form and print them
to --digits digits. The constants are evaluated in parallel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsts(cmd, rootOpts)
		},
	}
	return cmd
}

func runConsts(cmd *cobra.Command, opts *RootOptions) error {
	formatter := newFormatter(cmd, opts)

	rows, err := evaluateConstants(cmd.Context(), engine.New(engineOptions(opts.Config)...))
	if err != nil {
		return formatter.Fail(err, nil)
	}

	if opts.Format == "json" {
		return formatter.Success(rows)
	}

	tableRows := make([]table.Row, len(rows))
	for i, c := range rows {
		tableRows[i] = table.Row{c.Name, c.Expression, c.Value}
	}
	renderTable(formatter.Writer, table.Row{"Name", "Expression", "Value"}, tableRows)
	return nil
}

// evaluateConstants evaluates knownConstants concurrently. The result is
// in table order; the first error cancels the rest.
func evaluateConstants(ctx context.Context, eng *engine.Engine) ([]namedConstant, error) {
	rows := make([]namedConstant, len(knownConstants))
	copy(rows, knownConstants)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range rows {
		i := i
		g.Go(func() error {
			out, err := eng.Eval(gctx, rows[i].Expression)
			if err != nil {
				return err
			}
			rows[i].Value = out.Text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
