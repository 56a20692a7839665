// Package engine evaluates expressions with the configured output
// settings and records each evaluation in the history store.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/roach88/creal/internal/rpn"
	"github.com/roach88/creal/internal/store"
	"github.com/roach88/creal/internal/unified"
)

// DefaultMaxTokens is the default limit on expression length.
const DefaultMaxTokens = 10000

// Engine evaluates expressions.
//
// Thread-safety: Eval and Compare are safe for concurrent use. Records
// are written through the store's single connection.
type Engine struct {
	digits    int
	radix     int
	timeout   time.Duration
	maxTokens int
	recorder  *store.Recorder // nil disables history
}

// Option configures an Engine.
type Option func(*Engine)

// WithDigits sets the number of digits rendered after the radix point.
func WithDigits(n int) Option {
	return func(e *Engine) { e.digits = n }
}

// WithRadix sets the output radix.
func WithRadix(radix int) Option {
	return func(e *Engine) { e.radix = radix }
}

// WithTimeout bounds each evaluation. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithMaxTokens sets the largest number of tokens an expression may have.
//
// Default: 10000 (DefaultMaxTokens)
func WithMaxTokens(n int) Option {
	return func(e *Engine) { e.maxTokens = n }
}

// WithRecorder enables history. Every evaluation, failed or not, is
// written through r.
func WithRecorder(r *store.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// New creates an Engine rendering 20 decimal digits by default.
func New(opts ...Option) *Engine {
	e := &Engine{
		digits:    20,
		radix:     10,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// With returns a copy of e with opts applied. The copy shares e's
// recorder.
func (e *Engine) With(opts ...Option) *Engine {
	c := *e
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Digits returns the configured digit count.
func (e *Engine) Digits() int { return e.digits }

// Radix returns the configured radix.
func (e *Engine) Radix() int { return e.radix }

// Outcome is the result of one evaluation.
type Outcome struct {
	// ID and Seq identify the history record. Empty when history is off.
	ID  string `json:"id,omitempty"`
	Seq int64  `json:"seq,omitempty"`

	Expression string `json:"expression"`
	Hash       string `json:"hash"`

	rpn.Rendering

	// Value is the evaluated number, nil on error.
	Value *unified.Real `json:"-"`
}

// Eval evaluates expr and renders the result.
//
// Errors from evaluation are *cr.Error values. A failure to write the
// history record is reported as a *HistoryError after a successful
// evaluation; the Outcome is still valid then.
func (e *Engine) Eval(ctx context.Context, expr string) (Outcome, error) {
	out := Outcome{
		Expression: rpn.Canonical(expr),
		Hash:       rpn.Hash(expr),
	}

	start := time.Now()
	x, r, err := e.evaluate(ctx, expr)
	if err == nil {
		out.Rendering = r
		out.Value = x
	}

	slog.Debug("evaluated",
		"expr", out.Expression,
		"exact", out.Exact,
		"error", err,
		"elapsed", time.Since(start),
	)

	if e.recorder == nil {
		return out, err
	}

	rec, recErr := e.recorder.Record(ctx, e.evaluation(out, err))
	if recErr != nil {
		slog.Warn("history write failed", "expr", out.Expression, "error", recErr)
		if err != nil {
			return out, err
		}
		return out, &HistoryError{Err: recErr}
	}
	out.ID = rec.ID
	out.Seq = rec.Seq
	return out, err
}

// evaluate runs expr under the engine's token limit and timeout.
func (e *Engine) evaluate(ctx context.Context, expr string) (*unified.Real, rpn.Rendering, error) {
	if n := len(rpn.Tokenize(expr)); e.maxTokens > 0 && n > e.maxTokens {
		return nil, rpn.Rendering{}, &QuotaError{Tokens: n, Limit: e.maxTokens}
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	x, err := rpn.Eval(ctx, expr)
	if err != nil {
		return nil, rpn.Rendering{}, err
	}
	r, err := rpn.Render(ctx, x, e.digits, e.radix)
	if err != nil {
		return nil, rpn.Rendering{}, err
	}
	return x, r, nil
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

func (e *Engine) evaluation(out Outcome, err error) store.Evaluation {
	ev := store.Evaluation{
		Expression: out.Expression,
		ExprHash:   out.Hash,
		Result:     out.Text,
		Exact:      out.Exact,
		Digits:     e.digits,
		Radix:      e.radix,
	}
	if err != nil {
		ev.ErrorCode = ErrorCode(err)
		ev.ErrorMessage = err.Error()
	}
	return ev
}

// CompareOutcome is the result of Compare.
type CompareOutcome struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	Order string `json:"order"`
}

// Compare evaluates a and b and orders them to within the engine's digit
// count. Comparisons are not recorded.
func (e *Engine) Compare(ctx context.Context, a, b string) (CompareOutcome, error) {
	out := CompareOutcome{Left: rpn.Canonical(a), Right: rpn.Canonical(b)}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	x, err := rpn.Eval(ctx, a)
	if err != nil {
		return out, err
	}
	y, err := rpn.Eval(ctx, b)
	if err != nil {
		return out, err
	}

	out.Order, err = rpn.Compare(ctx, x, y, e.digits)
	if err != nil {
		return out, err
	}
	return out, nil
}
