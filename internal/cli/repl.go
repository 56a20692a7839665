package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/roach88/creal/internal/engine"
)

const replPrompt = "creal> "

// lineReader is the part of *readline.Instance the REPL loop uses.
type lineReader interface {
	Readline() (string, error)
}

// NewREPLCommand creates the repl command.
func NewREPLCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Long: `Start an interactive session. Each line is evaluated as an RPN
expression with the current settings.

Type .help for commands, .quit to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, rootOpts)
		},
	}
	return cmd
}

func runREPL(cmd *cobra.Command, opts *RootOptions) error {
	formatter := newFormatter(cmd, opts)

	eng, closeEngine, err := openEngine(cmd.Context(), opts.Config)
	if err != nil {
		return formatter.Fail(err, nil)
	}
	defer closeEngine()

	cfg := &readline.Config{
		Prompt:          replPrompt,
		AutoComplete:    newOperatorCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	}
	// Line history lives next to the evaluation history.
	if opts.Config.History.Enabled {
		cfg.HistoryFile = filepath.Join(filepath.Dir(opts.Config.History.Path), "repl_history")
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize REPL", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "creal REPL. Type .help for commands, .quit to exit")
	return replLoop(cmd.Context(), rl, &repl{
		engine:    eng,
		formatter: formatter,
	})
}

// repl holds the state of an interactive session.
type repl struct {
	engine    *engine.Engine
	formatter *OutputFormatter
}

// replLoop reads lines until EOF, .quit or cancellation. Evaluation
// errors are reported and the loop continues.
func replLoop(ctx context.Context, lr lineReader, r *repl) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := lr.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := r.dotCommand(line); quit {
				return nil
			}
			continue
		}

		r.eval(ctx, line)
	}
}

func (r *repl) eval(ctx context.Context, line string) {
	out, err := r.engine.Eval(ctx, line)
	var histErr *engine.HistoryError
	if err != nil && !errors.As(err, &histErr) {
		_ = r.formatter.Error(ErrorCode(err), err.Error(), nil)
		return
	}
	if histErr != nil {
		fmt.Fprintf(r.formatter.GetErrWriter(), "Warning [%s]: %v\n", ErrCodeStore, histErr)
	}

	if r.formatter.Format == "json" {
		_ = r.formatter.Success(out)
		return
	}
	_ = r.formatter.Success(formatOutcome(out))
}

// dotCommand runs a dot-command and reports whether the session should end.
func (r *repl) dotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	errw := r.formatter.GetErrWriter()

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.formatter.Writer)

	case ".digits":
		if len(parts) != 2 {
			fmt.Fprintf(r.formatter.Writer, "digits: %d\n", r.engine.Digits())
			return false
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 0 {
			fmt.Fprintf(errw, "Invalid digit count: %s\n", parts[1])
			return false
		}
		r.engine = r.engine.With(engine.WithDigits(n))

	case ".radix":
		if len(parts) != 2 {
			fmt.Fprintf(r.formatter.Writer, "radix: %d\n", r.engine.Radix())
			return false
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 2 || n > 16 {
			fmt.Fprintf(errw, "Invalid radix: %s (must be 2-16)\n", parts[1])
			return false
		}
		r.engine = r.engine.With(engine.WithRadix(n))

	default:
		fmt.Fprintf(errw, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .digits [n]     Show or set the number of digits
  .radix [n]      Show or set the output radix (2-16)
  .quit / .exit   Exit the REPL

Tips:
  - Enter expressions in reverse Polish notation: 2 sqrt 3 *
  - Use arrow keys to navigate history
  - Tab completion works for operators and constants
`
	_, _ = fmt.Fprintln(w, help)
}

// newOperatorCompleter completes operator names, constants and
// dot-commands.
func newOperatorCompleter() *readline.PrefixCompleter {
	names := []string{
		"neg", "inv", "sqrt", "ln", "log", "exp",
		"sin", "cos", "tan", "asin", "acos", "atan",
		"dup", "swap", "pi", "e",
		".help", ".digits", ".radix", ".quit", ".exit",
	}
	items := make([]readline.PrefixCompleterInterface, len(names))
	for i, name := range names {
		items[i] = readline.PcItem(name)
	}
	return readline.NewPrefixCompleter(items...)
}
