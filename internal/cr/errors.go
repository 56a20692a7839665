package cr

import (
	"context"
	"errors"
	"fmt"
)

// Error is the error type returned by every evaluation in this package.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the operation that failed ("ln", "sqrt", "parse", ...).
	Op string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any (ctx.Err() for aborted work).
	Err error
}

// ErrorCode categorizes evaluation errors.
type ErrorCode string

const (
	// ErrCodePrecisionOverflow indicates a requested or derived precision left
	// the supported range. It usually means a runaway computation such as an
	// inverse of zero or a comparison of equal values.
	ErrCodePrecisionOverflow ErrorCode = "PRECISION_OVERFLOW"

	// ErrCodeAborted indicates the evaluation context was cancelled.
	ErrCodeAborted ErrorCode = "ABORTED"

	// ErrCodeDomain indicates an argument outside the function's domain.
	ErrCodeDomain ErrorCode = "DOMAIN"

	// ErrCodeFormat indicates malformed textual input.
	ErrCodeFormat ErrorCode = "FORMAT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewDomainError creates a DOMAIN error for op.
func NewDomainError(op, format string, args ...any) *Error {
	return &Error{Code: ErrCodeDomain, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewFormatError creates a FORMAT error for op.
func NewFormatError(op, format string, args ...any) *Error {
	return &Error{Code: ErrCodeFormat, Op: op, Message: fmt.Sprintf(format, args...)}
}

func precisionOverflow(n int) *Error {
	return &Error{
		Code:    ErrCodePrecisionOverflow,
		Message: fmt.Sprintf("precision %d out of range", n),
	}
}

// checkCtx returns an ABORTED error if ctx is done.
func checkCtx(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Code: ErrCodeAborted, Op: op, Message: "computation aborted", Err: err}
	}
	return nil
}

// CheckContext returns an ABORTED error for op if ctx is done. Callers
// building their own loops over this package use it to report
// cancellation the same way.
func CheckContext(ctx context.Context, op string) error {
	return checkCtx(ctx, op)
}

// ErrorCodeOf returns the code of the first *Error in err's chain, or ""
// if there is none.
func ErrorCodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsPrecisionOverflow returns true if err is a PRECISION_OVERFLOW error.
// Uses errors.As to handle wrapped errors.
func IsPrecisionOverflow(err error) bool {
	return ErrorCodeOf(err) == ErrCodePrecisionOverflow
}

// IsAborted returns true if err is an ABORTED error.
func IsAborted(err error) bool {
	return ErrorCodeOf(err) == ErrCodeAborted
}

// IsDomain returns true if err is a DOMAIN error.
func IsDomain(err error) bool {
	return ErrorCodeOf(err) == ErrCodeDomain
}

// IsFormat returns true if err is a FORMAT error.
func IsFormat(err error) bool {
	return ErrorCodeOf(err) == ErrCodeFormat
}
