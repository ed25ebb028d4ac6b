// ABOUTME: Error types and handling for the cardkit library
// ABOUTME: Classifies core errors so callers need not import core packages

package cardkit

import (
	"context"
	"errors"
	"fmt"

	coreerrors "newscard-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates a malformed URL or option
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeSelection indicates a dual image index beyond the editorial images
	ErrorTypeSelection ErrorType = "selection"

	// ErrorTypeNetwork indicates the article page could not be fetched
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeTimeout indicates the render ran past its deadline
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ErrClientClosed is returned when renders are attempted on a closed client
var ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

// wrapError classifies an error from the core services
func wrapError(err error, url string) error {
	if err == nil {
		return nil
	}

	var kind ErrorType
	var message string
	switch {
	case coreerrors.IsValidation(err):
		kind, message = ErrorTypeValidation, "invalid request"
	case coreerrors.IsInvalidSelection(err):
		kind, message = ErrorTypeSelection, "image selection out of range"
	case coreerrors.IsFetch(err):
		kind, message = ErrorTypeNetwork, "could not fetch article page"
	case errors.Is(err, context.DeadlineExceeded):
		kind, message = ErrorTypeTimeout, "render timed out"
	default:
		kind, message = ErrorTypeInternal, "render failed"
	}
	return NewError(kind, message).WithCause(err).WithContext("url", url)
}

func isType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsSelectionError checks if an error is an out-of-range image selection
func IsSelectionError(err error) bool {
	return isType(err, ErrorTypeSelection)
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	return isType(err, ErrorTypeNetwork)
}

// IsTimeoutError checks if an error is a timeout
func IsTimeoutError(err error) bool {
	return isType(err, ErrorTypeTimeout)
}
