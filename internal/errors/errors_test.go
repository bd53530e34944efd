package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestIsTypeFollowsWrapping(t *testing.T) {
	cause := NotFound("holder", "H-1")
	err := UpstreamLookup("H-1", cause)
	wrapped := fmt.Errorf("quote: %w", err)

	if !IsType(wrapped, TypeUpstreamLookup) {
		t.Error("Expected upstream lookup type through fmt wrapping")
	}
	if !IsType(wrapped, TypeNotFound) {
		t.Error("Expected not found type on the cause")
	}
	if IsType(wrapped, TypeInvalidInput) {
		t.Error("Unexpected invalid input type")
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("Expected errors.Is to reach the original cause")
	}
}

func TestErrorMessage(t *testing.T) {
	err := InvalidInput("coverage must not be negative")
	if got := err.Error(); got != "[INVALID_INPUT] coverage must not be negative" {
		t.Errorf("Unexpected message: %s", got)
	}

	err = UpstreamLookup("H-9", stderrors.New("connection refused"))
	if got := err.Error(); got != "[UPSTREAM_LOOKUP_ERROR] claims lookup failed for holder H-9: connection refused" {
		t.Errorf("Unexpected message: %s", got)
	}
	if err.Context["holder_id"] != "H-9" {
		t.Errorf("Expected holder_id context, got %v", err.Context)
	}
}

func TestIsTypeOnPlainError(t *testing.T) {
	if IsType(stderrors.New("boom"), TypeInternal) {
		t.Error("Plain errors carry no type")
	}
	if IsType(nil, TypeInternal) {
		t.Error("nil carries no type")
	}
}
