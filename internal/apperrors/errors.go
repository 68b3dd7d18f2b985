package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of a
// resource, e.g. a numbering collision or deleting an account with postings.
var ErrConflict = errors.New("resource conflict")

// ErrImmutable indicates an attempt to mutate a resource whose status no
// longer allows it, e.g. editing the lines of a sent invoice.
var ErrImmutable = errors.New("resource is immutable in its current state")

// ErrForbidden indicates the caller lacks the required role for the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
