package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/creal/internal/engine"
	"github.com/roach88/creal/internal/rpn"
	"github.com/roach88/creal/internal/store"
	"github.com/roach88/creal/internal/testutil"
)

// Harness executes one scenario.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	seq    int64
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Record IDs are "<scenario name>-0001", "-0002", ..., so two runs of the
// same scenario produce identical traces and history.
//
// The returned error is for failures of the harness itself; failed
// expectations are reported in the Result.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	rec, err := store.NewRecorder(ctx, st, testutil.NewSequentialIDs(scenario.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to create recorder: %w", err)
	}

	h := &Harness{
		store: st,
		engine: engine.New(
			engine.WithDigits(scenario.digits()),
			engine.WithRadix(scenario.radix()),
			engine.WithRecorder(rec),
		),
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	actx := &AssertionContext{Store: st, Ctx: ctx}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// executeStep runs a step, traces it and checks its expectations.
// Evaluation errors are expected outcomes; only a failing history write
// aborts the run.
func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) error {
	h.seq++
	ev := TraceEvent{Seq: h.seq}

	var err error
	if step.Eval != "" {
		var out engine.Outcome
		out, err = h.engine.Eval(ctx, step.Eval)
		ev.Op = OpEval
		ev.Expression = out.Expression
		ev.Result = out.Text
		ev.Nice = out.Nice
		ev.Exact = out.Exact
	} else {
		var out engine.CompareOutcome
		out, err = h.engine.Compare(ctx, step.Compare[0], step.Compare[1])
		ev.Op = OpCompare
		ev.Expression = out.Left
		ev.Other = out.Right
		ev.Order = out.Order
	}

	if err != nil {
		var herr *engine.HistoryError
		if errors.As(err, &herr) {
			return herr
		}
		ev.Error = engine.ErrorCode(err)
	}

	result.AddTrace(ev)

	for _, msg := range checkExpect(index, ev, step.Expect) {
		result.AddError(msg)
	}
	if err != nil && (step.Expect == nil || step.Expect.Error == "") {
		result.AddError(fmt.Sprintf("steps[%d] %s: unexpected error: %v", index, ev.Expression, err))
	}
	return nil
}

// checkExpect compares a traced step against its expectations.
func checkExpect(index int, ev TraceEvent, want *Expect) []string {
	if want == nil {
		return nil
	}

	var errs []string
	mismatch := func(field, expected, actual string) {
		errs = append(errs, fmt.Sprintf("steps[%d] %s: expected %s %q, got %q", index, ev.Expression, field, expected, actual))
	}

	if want.Error != "" {
		if ev.Error != want.Error {
			mismatch("error", want.Error, ev.Error)
		}
		return errs
	}
	if ev.Error != "" {
		// Reported by the caller together with the error text.
		return nil
	}

	if want.Result != "" && ev.Result != want.Result {
		mismatch("result", want.Result, ev.Result)
	}
	if want.Nice != "" && ev.Nice != want.Nice {
		mismatch("nice", want.Nice, ev.Nice)
	}
	if want.Exact != nil && ev.Exact != *want.Exact {
		mismatch("exact", fmt.Sprint(*want.Exact), fmt.Sprint(ev.Exact))
	}
	if want.Order != "" && ev.Order != want.Order {
		mismatch("order", want.Order, ev.Order)
	}
	return errs
}

// canonical matches the form expressions take in the trace and history.
func canonical(expr string) string {
	return rpn.Canonical(expr)
}
