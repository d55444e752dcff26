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

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the principal lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyDecided indicates a leave request is no longer PENDING and cannot
// be decided again.
var ErrAlreadyDecided = errors.New("leave request already decided")

// ErrInsufficientBalance indicates the approval would drive a leave balance
// below zero.
var ErrInsufficientBalance = errors.New("insufficient leave balance")

// ErrLockTimeout indicates the decision transaction could not acquire its row
// lock; the caller may retry.
var ErrLockTimeout = errors.New("could not acquire lock, try again")

// AppError wraps a lower-level failure with an HTTP-ish status code and a
// message safe to log.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound under errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
