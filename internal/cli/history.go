package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/creal/internal/engine"
	"github.com/roach88/creal/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent evaluations",
		Long: `Show the most recent evaluations from the history database,
newest first. Evaluations are recorded when history is enabled with
--history or history.enabled in creal.yaml.

Example:
  creal history --limit 5
  creal history --db ./history.db --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "number of evaluations to show")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	formatter := newFormatter(cmd, opts.RootOptions)
	path := opts.Config.History.Path

	// Reading never creates the database.
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		formatter.VerboseLog("no history database at %s", path)
		return outputHistory(formatter, []store.Evaluation{})
	}

	st, err := openHistory(path)
	if err != nil {
		return formatter.Fail(err, map[string]string{"path": path})
	}
	defer st.Close()

	evals, err := st.ReadRecent(cmd.Context(), opts.Limit)
	if err != nil {
		return formatter.Fail(&engine.HistoryError{Err: fmt.Errorf("read history: %w", err)}, map[string]string{"path": path})
	}
	return outputHistory(formatter, evals)
}

func outputHistory(formatter *OutputFormatter, evals []store.Evaluation) error {
	if formatter.Format == "json" {
		return formatter.Success(evals)
	}

	if len(evals) == 0 {
		return formatter.Success("No history.")
	}

	rows := make([]table.Row, len(evals))
	for i, ev := range evals {
		result := ev.Result
		if ev.Failed() {
			result = ev.ErrorCode
		}
		exact := ""
		if ev.Exact {
			exact = "yes"
		}
		rows[i] = table.Row{ev.Seq, ev.Expression, result, exact}
	}
	renderTable(formatter.Writer, table.Row{"Seq", "Expression", "Result", "Exact"}, rows)
	return nil
}
