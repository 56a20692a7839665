package store

// Evaluation is one recorded evaluation.
type Evaluation struct {
	// ID is a UUIDv7, unique per record.
	ID string `json:"id"`

	// Seq orders records. Assigned by the Recorder's logical clock.
	Seq int64 `json:"seq"`

	// Expression is the canonical expression text.
	Expression string `json:"expression"`

	// ExprHash is the content hash of Expression.
	ExprHash string `json:"expr_hash"`

	// Result is the rendered value; empty when evaluation failed.
	Result string `json:"result"`

	// Exact is true when Result is the exact value rather than a
	// truncation.
	Exact bool `json:"exact"`

	// Digits and Radix are the output settings Result was rendered with.
	Digits int `json:"digits"`
	Radix  int `json:"radix"`

	// ErrorCode and ErrorMessage describe a failed evaluation.
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Failed reports whether the evaluation ended in an error.
func (e Evaluation) Failed() bool {
	return e.ErrorCode != ""
}
