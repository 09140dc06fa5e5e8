package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Image gate errors. Terminal for the current request, never retried.
var (
	ErrSizeExceeded      = errors.New("image size exceeded")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrCorruptImage      = errors.New("corrupt image")
)

// Vision capability errors.
var (
	ErrServiceUnavailable = errors.New("vision service unavailable")
	ErrServiceError       = errors.New("vision service error")
	ErrNoContent          = errors.New("no content extracted")
)

// Boundary errors.
var (
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrInsufficientData is raised by the caller's gating step, not by the
	// extraction engine itself.
	ErrInsufficientData = errors.New("insufficient data extracted")
	ErrInvalidInput     = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
