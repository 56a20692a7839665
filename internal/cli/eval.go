package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/creal/internal/engine"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expr>...",
		Short: "Evaluate an RPN expression",
		Long: `Evaluate a reverse Polish expression and print the result.

The arguments are joined with spaces into one expression. Exact results
are printed in full; other values are truncated to --digits digits.

Operators: + - * / ^ neg inv sqrt √ ln log exp sin cos tan asin acos
atan ! dup swap. Constants: pi π e.

Examples:
  creal eval 2 sqrt
  creal eval "1 3 /" --digits 50
  creal eval pi --radix 16 --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, rootOpts, strings.Join(args, " "))
		},
	}
	return cmd
}

func runEval(cmd *cobra.Command, opts *RootOptions, expr string) error {
	formatter := newFormatter(cmd, opts)

	eng, closeEngine, err := openEngine(cmd.Context(), opts.Config)
	if err != nil {
		return formatter.Fail(err, nil)
	}
	defer closeEngine()

	out, err := eng.Eval(cmd.Context(), expr)
	var histErr *engine.HistoryError
	if err != nil {
		if !errors.As(err, &histErr) {
			return formatter.Fail(err, map[string]string{"expression": out.Expression})
		}
		// The value is still valid; print it and fail afterwards.
		fmt.Fprintf(formatter.GetErrWriter(), "Warning [%s]: %v\n", ErrCodeStore, err)
	}

	formatter.VerboseLog("expression: %s", out.Expression)
	formatter.VerboseLog("hash: %s", out.Hash)
	if out.ID != "" {
		formatter.VerboseLog("recorded: %s (seq %d)", out.ID, out.Seq)
	}

	if opts.Format == "json" {
		err = formatter.Success(out)
	} else {
		err = formatter.Success(formatOutcome(out))
	}
	if err != nil {
		return err
	}

	if histErr != nil {
		exitErr := WrapExitError(ExitCommandError, ErrCodeStore, histErr)
		exitErr.Reported = true
		return exitErr
	}
	return nil
}

// formatOutcome renders an outcome for text output: the digits, plus the
// symbolic form when it adds information.
func formatOutcome(out engine.Outcome) string {
	if out.Exact || out.Nice == "" || out.Nice == out.Text || !isSymbolic(out.Nice) {
		return out.Text
	}
	return fmt.Sprintf("%s  (%s)", out.Text, out.Nice)
}

// isSymbolic reports whether a nice form is an exact expression rather
// than a decimal approximation.
func isSymbolic(nice string) bool {
	return strings.ContainsAny(nice, "/πe√(")
}
