package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/creal/internal/cr"
)

// ErrorCode returns the code stored for err: the *cr.Error code, QUOTA
// for a *QuotaError, or INTERNAL.
func ErrorCode(err error) string {
	if code := cr.ErrorCodeOf(err); code != "" {
		return string(code)
	}
	var q *QuotaError
	if errors.As(err, &q) {
		return ErrCodeQuota
	}
	return ErrCodeInternal
}

// Error codes for failures that do not come from evaluation itself.
const (
	ErrCodeQuota    = "QUOTA"
	ErrCodeInternal = "INTERNAL"
)

// QuotaError is returned for expressions longer than the token limit.
type QuotaError struct {
	Tokens int
	Limit  int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("expression has %d tokens, limit is %d", e.Tokens, e.Limit)
}

// HistoryError wraps a failure to record an evaluation.
type HistoryError struct {
	Err error
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("record history: %v", e.Err)
}

func (e *HistoryError) Unwrap() error {
	return e.Err
}
