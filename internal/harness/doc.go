// Package harness runs YAML scenarios against the evaluator.
//
// A scenario is a list of steps. Each step evaluates an RPN expression
// or compares two, and may state what it expects: the rendered digits,
// the exact form, an error code or an order. Every evaluation is
// recorded in a fresh in-memory history store with deterministic IDs,
// so assertions can also inspect what was stored.
//
// The trace of a run is stable across runs and machines and can be
// compared against a golden file:
//
//	go test ./internal/harness -update
//
// regenerates the files under testdata/golden.
package harness
