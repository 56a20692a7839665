package harness

// Trace event operations.
const (
	OpEval    = "eval"
	OpCompare = "compare"
)

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq        int64  `json:"seq"`
	Op         string `json:"op"`
	Expression string `json:"expression"`

	// Other is the second operand of a compare step.
	Other string `json:"other,omitempty"`

	Result string `json:"result,omitempty"`
	Nice   string `json:"nice,omitempty"`
	Exact  bool   `json:"exact,omitempty"`
	Order  string `json:"order,omitempty"`

	// Error is the error code when the step failed.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace holds one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors describes each failed expectation or assertion.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
