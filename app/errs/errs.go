// Package errs defines the error taxonomy shared by the resolver,
// aggregator, and HTTP layer.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey indicates no upstream credential is configured.
	// It is returned before any network call is made.
	ErrMissingAPIKey = errors.New("YouTube API key not configured. Please set YOUTUBE_API_KEY")

	// ErrNotFound indicates a specific lookup yielded no record.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports missing or blank required input. It is
// raised before any I/O happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a required field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UpstreamError wraps a non-success response from the platform API.
// Message carries the upstream-provided text when available.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
}

// NewUpstreamError builds an UpstreamError with a fallback message
// used when the upstream did not supply one.
func NewUpstreamError(statusCode int, message, fallback string) *UpstreamError {
	if message == "" {
		message = fallback
	}
	return &UpstreamError{StatusCode: statusCode, Message: message}
}
