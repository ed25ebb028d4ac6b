package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{
		Resource: "cache entry",
		ID:       "page:https://example.com",
	}

	expected := "cache entry not found: page:https://example.com"
	if err.Error() != expected {
		t.Errorf("NotFoundError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "url",
		Message: "url is required",
	}

	expected := "validation error on field 'url': url is required"
	if err.Error() != expected {
		t.Errorf("ValidationError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestFetchError_StatusMessage(t *testing.T) {
	err := &FetchError{URL: "https://example.com/a", StatusCode: 404}

	expected := "fetch https://example.com/a: unexpected status 404"
	if err.Error() != expected {
		t.Errorf("FetchError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestFetchError_UnwrapsTransportError(t *testing.T) {
	err := &FetchError{URL: "https://example.com/a", Err: context.DeadlineExceeded}

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("FetchError should unwrap to the transport error")
	}
	if !strings.Contains(err.Error(), "deadline") {
		t.Errorf("FetchError.Error() = %v, want transport error text", err.Error())
	}
}

func TestInvalidSelectionError_NamesIndexAndCount(t *testing.T) {
	err := &InvalidSelectionError{Requested: 5, Available: 3}

	msg := err.Error()
	if !strings.Contains(msg, "5") || !strings.Contains(msg, "3") {
		t.Errorf("InvalidSelectionError.Error() = %v, want requested and available counts", msg)
	}
}

func TestIsNotFound_WrappedError(t *testing.T) {
	notFound := &NotFoundError{Resource: "cache entry", ID: "k"}
	wrapped := fmt.Errorf("failed to load page: %w", notFound)

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should return true for wrapped NotFoundError")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("IsNotFound should return false for non-NotFoundError")
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(&ValidationError{Field: "url", Message: "invalid URL"}) {
		t.Error("IsValidation should return true for ValidationError")
	}
	if IsValidation(errors.New("some other error")) {
		t.Error("IsValidation should return false for non-ValidationError")
	}
}

func TestIsFetch(t *testing.T) {
	wrapped := WrapError(&FetchError{URL: "u", StatusCode: 500}, "extract")
	if !IsFetch(wrapped) {
		t.Error("IsFetch should return true for wrapped FetchError")
	}
	if IsFetch(errors.New("some other error")) {
		t.Error("IsFetch should return false for non-FetchError")
	}
}

func TestIsInvalidSelection(t *testing.T) {
	if !IsInvalidSelection(&InvalidSelectionError{Requested: 2, Available: 1}) {
		t.Error("IsInvalidSelection should return true for InvalidSelectionError")
	}
	if IsInvalidSelection(&ValidationError{}) {
		t.Error("IsInvalidSelection should return false for ValidationError")
	}
}

func TestWrapError_PreservesOriginalError(t *testing.T) {
	originalErr := &NotFoundError{Resource: "cache entry", ID: "abc"}
	wrappedErr := WrapError(originalErr, "failed to read cache")

	if wrappedErr == nil {
		t.Fatal("WrapError should not return nil for non-nil error")
	}

	expectedMsg := "failed to read cache: cache entry not found: abc"
	if wrappedErr.Error() != expectedMsg {
		t.Errorf("WrapError message = %v, want %v", wrappedErr.Error(), expectedMsg)
	}
}

func TestWrapError_HandlesNilError(t *testing.T) {
	if WrapError(nil, "this should not happen") != nil {
		t.Error("WrapError should return nil when wrapping nil error")
	}
}
