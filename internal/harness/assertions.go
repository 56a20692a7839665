package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/creal/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s", event.Seq, event.Op, event.Expression)
		if event.Other != "" {
			fmt.Fprintf(&buf, " | %s", event.Other)
		}
		fmt.Fprintln(&buf)
	}

	return buf.String()
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertHistoryCount, AssertHistoryContains:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: %s requires database context", i, assertion.Type)
				break
			}
			var history []store.Evaluation
			history, err = readHistory(actx)
			if err != nil {
				break
			}
			if assertion.Type == AssertHistoryCount {
				err = assertHistoryCount(history, assertion, result.Trace)
			} else {
				err = assertHistoryContains(history, assertion, result.Trace)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

func readHistory(actx *AssertionContext) ([]store.Evaluation, error) {
	var history []store.Evaluation
	err := actx.Store.Replay(actx.Ctx, func(ev store.Evaluation) error {
		history = append(history, ev)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return history, nil
}

// assertHistoryCount checks the number of stored evaluations, optionally
// restricted to one expression.
func assertHistoryCount(history []store.Evaluation, assertion Assertion, trace []TraceEvent) error {
	want := canonical(assertion.Expression)
	count := 0
	for _, ev := range history {
		if want == "" || ev.Expression == want {
			count++
		}
	}

	if count != assertion.Count {
		subject := "evaluations"
		if want != "" {
			subject = fmt.Sprintf("evaluations of %q", want)
		}
		return &AssertionError{
			Type:     AssertHistoryCount,
			Expected: fmt.Sprintf("%d %s", assertion.Count, subject),
			Actual:   fmt.Sprintf("%d", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertHistoryContains checks that an expression was stored, with the
// given result if one is set.
func assertHistoryContains(history []store.Evaluation, assertion Assertion, trace []TraceEvent) error {
	want := canonical(assertion.Expression)
	var results []string
	for _, ev := range history {
		if ev.Expression != want {
			continue
		}
		if assertion.Result == "" || ev.Result == assertion.Result {
			return nil
		}
		results = append(results, ev.Result)
	}

	actual := "not found in history"
	if len(results) > 0 {
		actual = fmt.Sprintf("stored with results %q", results)
	}
	expected := fmt.Sprintf("expression %q", want)
	if assertion.Result != "" {
		expected += fmt.Sprintf(" with result %q", assertion.Result)
	}
	return &AssertionError{
		Type:     AssertHistoryContains,
		Expected: expected,
		Actual:   actual,
		Trace:    trace,
	}
}

// assertTraceOrder checks that expressions appear in the specified
// order. They don't need to be consecutive.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	next := 0
	for _, event := range trace {
		if next < len(assertion.Expressions) && event.Expression == canonical(assertion.Expressions[next]) {
			next++
		}
	}

	if next < len(assertion.Expressions) {
		return &AssertionError{
			Type:     AssertTraceOrder,
			Expected: fmt.Sprintf("expressions in order %q", assertion.Expressions),
			Actual:   fmt.Sprintf("only the first %d found in order", next),
			Trace:    trace,
		}
	}
	return nil
}
