package framelai

import (
	"errors"
	"fmt"
)

var (
	// ErrFrameNotFound is returned when a frame ID does not exist in the collection.
	ErrFrameNotFound = errors.New("frame not found")

	// ErrStaleResult is returned when a translate call was superseded by a newer
	// one before its results could be merged.
	ErrStaleResult = errors.New("result superseded by a newer request")

	// ErrSessionClosed is returned when a session is used after Close.
	ErrSessionClosed = errors.New("session closed")
)

// ValidationError indicates that a translate call was rejected before any
// provider call was issued.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// DetectionFailure indicates that the source language could not be detected.
type DetectionFailure struct {
	Cause error
}

func (e *DetectionFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("language detection failed: %v", e.Cause)
	}
	return "language detection failed"
}

func (e *DetectionFailure) Unwrap() error {
	return e.Cause
}

// TranslationFailure indicates that at least one element of a batch failed to
// translate. No translation of the batch was applied.
type TranslationFailure struct {
	ElementID string // First element whose call failed
	Total     int    // Number of calls in the batch
	Cause     error
}

func (e *TranslationFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translation failed for element %q (batch of %d): %v", e.ElementID, e.Total, e.Cause)
	}
	return fmt.Sprintf("translation failed for element %q (batch of %d)", e.ElementID, e.Total)
}

func (e *TranslationFailure) Unwrap() error {
	return e.Cause
}

// ProviderError indicates an AI provider failure (API error, rate limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a frame file could not be parsed or rendered.
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether an error is marked retryable by a provider.
// No retry loop runs inside this package; callers decide what to do.
func IsRetryable(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}
