package framelai

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Reason: "no frames selected"}

	if err.Error() != "validation error: no frames selected" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestDetectionFailure(t *testing.T) {
	cause := errors.New("timeout")
	err := &DetectionFailure{Cause: cause}

	if err.Error() != "language detection failed: timeout" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("DetectionFailure should unwrap to its cause")
	}

	if (&DetectionFailure{}).Error() != "language detection failed" {
		t.Error("unexpected message without cause")
	}
}

func TestTranslationFailure(t *testing.T) {
	cause := &ProviderError{Message: "rate limited", Retryable: true}
	err := &TranslationFailure{ElementID: "t1-2", Total: 3, Cause: cause}

	expected := `translation failed for element "t1-2" (batch of 3): provider error: rate limited`
	if err.Error() != expected {
		t.Errorf("unexpected error message: %s, want %s", err.Error(), expected)
	}

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Error("TranslationFailure should unwrap to ProviderError")
	}
	if !IsRetryable(err) {
		t.Error("retryable cause should be reported through the wrapper")
	}
}

func TestProviderError(t *testing.T) {
	err := &ProviderError{Message: "rate limited", Retryable: true}

	if err.Error() != "provider error: rate limited" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	cause := errors.New("boom")
	wrapped := &ProviderError{Message: "call failed", Cause: cause}
	if wrapped.Error() != "provider error: call failed: boom" {
		t.Errorf("unexpected error message: %s", wrapped.Error())
	}
	if wrapped.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestCacheError(t *testing.T) {
	err := &CacheError{Message: "connection failed"}

	if err.Error() != "cache error: connection failed" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestProcessorError(t *testing.T) {
	err := &ProcessorError{Message: "parse failed", ContentType: "html"}

	if err.Error() != "processor error (html): parse failed" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"retryable provider error", &ProviderError{Retryable: true}, true},
		{"permanent provider error", &ProviderError{Retryable: false}, false},
		{"wrapped", fmt.Errorf("batch: %w", &ProviderError{Retryable: true}), true},
		{"plain error", errors.New("x"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrFrameNotFound_Wrapped(t *testing.T) {
	err := fmt.Errorf("%w: %q", ErrFrameNotFound, "frame9")
	if !errors.Is(err, ErrFrameNotFound) {
		t.Error("wrapped error should match ErrFrameNotFound")
	}
}
