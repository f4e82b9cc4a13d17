package keysetpager

import (
	"errors"
	"fmt"
)

// ErrorCode classifies pagination failures for API mapping.
type ErrorCode string

const (
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeInvalidSort  ErrorCode = "INVALID_SORT"
	ErrCodeInvalidLimit ErrorCode = "INVALID_LIMIT"
	ErrCodeUnexpected   ErrorCode = "UNEXPECTED_ERROR"
)

// PaginationError is the only error type the paginator surfaces.
// INVALID_LIMIT, INVALID_SORT and INVALID_TOKEN are client errors;
// UNEXPECTED_ERROR carries the original failure in Cause.
type PaginationError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func newPaginationError(code ErrorCode, message string) *PaginationError {
	return &PaginationError{
		Code:    code,
		Message: message,
	}
}

func newPaginationErrorCause(code ErrorCode, message string, cause error) *PaginationError {
	return &PaginationError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error - implements error.
func (e *PaginationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap exposes the original failure for errors.Is / errors.As chains.
func (e *PaginationError) Unwrap() error {
	return e.Cause
}

// AsPaginationError extracts a *PaginationError from an error chain.
func AsPaginationError(err error) (*PaginationError, bool) {
	var pErr *PaginationError
	ok := errors.As(err, &pErr)

	return pErr, ok
}

// wrapUnexpected passes *PaginationError through unchanged and wraps
// everything else into UNEXPECTED_ERROR with the given message.
func wrapUnexpected(err error, message string) error {
	if err == nil {
		return nil
	}

	if _, ok := AsPaginationError(err); ok {
		return err
	}

	return newPaginationErrorCause(ErrCodeUnexpected, message, err)
}

var _ error = (*PaginationError)(nil)
