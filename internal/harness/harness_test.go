package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScenario(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()
	return Run(context.Background(), scenario)
}

func mustParse(t *testing.T, src string) *Scenario {
	t.Helper()
	s, err := ParseScenario([]byte(src))
	require.NoError(t, err)
	return s
}

func TestRun_Passing(t *testing.T) {
	s := mustParse(t, `
name: passing
description: simple sums
digits: 5
steps:
  - eval: "1 2 +"
    expect:
      result: "3"
      exact: true
  - compare: ["1", "2"]
    expect:
      order: "<"
`)

	result, err := runScenario(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 2)

	assert.Equal(t, TraceEvent{Seq: 1, Op: OpEval, Expression: "1 2 +", Result: "3", Nice: "3", Exact: true}, result.Trace[0])
	assert.Equal(t, TraceEvent{Seq: 2, Op: OpCompare, Expression: "1", Other: "2", Order: "<"}, result.Trace[1])
}

func TestRun_ResultMismatch(t *testing.T) {
	s := mustParse(t, `
name: mismatch
description: wrong expectation
steps:
  - eval: "1 2 +"
    expect:
      result: "4"
`)

	result, err := runScenario(t, s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `expected result "4", got "3"`)
}

func TestRun_UnexpectedError(t *testing.T) {
	s := mustParse(t, `
name: unexpected
description: division by zero without expectation
steps:
  - eval: "1 0 /"
`)

	result, err := runScenario(t, s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unexpected error")
	assert.Equal(t, "DOMAIN", result.Trace[0].Error)
}

func TestRun_ExpectedErrorMissing(t *testing.T) {
	s := mustParse(t, `
name: missing-error
description: expects an error that does not happen
steps:
  - eval: "1 1 /"
    expect:
      error: DOMAIN
`)

	result, err := runScenario(t, s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], `expected error "DOMAIN", got ""`)
}

func TestRun_FormatError(t *testing.T) {
	s := mustParse(t, `
name: format
description: unknown token
steps:
  - eval: "1 frob"
    expect:
      error: FORMAT
`)

	result, err := runScenario(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_HistoryAssertions(t *testing.T) {
	s := mustParse(t, `
name: history
description: history assertions
digits: 3
steps:
  - eval: "2 sqrt"
  - eval: "2  sqrt"
  - eval: "3"
assertions:
  - type: history_count
    count: 3
  - type: history_count
    expression: "2 sqrt"
    count: 2
  - type: history_contains
    expression: "2 sqrt"
    result: "1.414"
  - type: history_contains
    expression: "3"
    result: "4"
  - type: history_contains
    expression: "5"
`)

	result, err := runScenario(t, s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], `stored with results ["3"]`)
	assert.Contains(t, result.Errors[1], "not found in history")
}

func TestRun_TraceOrder(t *testing.T) {
	s := mustParse(t, `
name: order
description: trace order
steps:
  - eval: "1"
  - eval: "2"
  - eval: "3"
assertions:
  - type: trace_order
    expressions: ["1", "3"]
  - type: trace_order
    expressions: ["3", "1"]
`)

	result, err := runScenario(t, s)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: trace_order")
	assert.Contains(t, result.Errors[0], "only the first 1 found in order")
}

func TestRun_Cancelled(t *testing.T) {
	s := mustParse(t, `
name: cancelled
description: cancelled context
steps:
  - eval: "pi"
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, s)
	require.Error(t, err)
}

func TestEvaluateAssertions_NoStore(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{{Type: AssertHistoryCount}}, nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires database context")
}
