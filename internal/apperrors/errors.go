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

// ErrConflict indicates the operation would break a referential rule,
// e.g. deleting a category that commitments still point at.
var ErrConflict = errors.New("resource conflict")

// ErrStorage indicates a failure reported by the storage layer.
var ErrStorage = errors.New("storage failure")

// AppError carries a status-like code and message around a storage failure.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. A nil err is allowed for internal invariant failures.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes both ErrStorage and the underlying cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStorage}
	}
	return []error{ErrStorage, e.Err}
}
