package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the interconnection search.
var (
	// ErrInvalidRequest indicates that the search request failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderTimeout indicates that an upstream provider did not respond in time.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderUnavailable indicates that an upstream provider could not be reached.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrNoData indicates that the upstream has nothing for the requested key.
	// It never leaves the adapter and cache layers; callers see an absent value instead.
	ErrNoData = errors.New("no data")
)

// ProviderError wraps a failure from a specific upstream provider.
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a non-retryable provider error.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a provider error that may succeed on retry.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// NewProviderTimeoutError creates a retryable timeout error for the provider.
func NewProviderTimeoutError(provider string) *ProviderError {
	return NewRetryableProviderError(provider, ErrProviderTimeout)
}

// NewProviderUnavailableError creates a retryable error for a provider that
// could not be reached or answered that it is unavailable.
func NewProviderUnavailableError(provider string, cause error) *ProviderError {
	return NewRetryableProviderError(provider, fmt.Errorf("%w: %v", ErrProviderUnavailable, cause))
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidRequest.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WrapInvalidRequest formats a message and wraps it with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err is an invalid request error.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsProviderTimeout reports whether err is a provider timeout.
func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// IsNoData reports whether err means the upstream has no data.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}

// IsRetryable reports whether err is a provider error marked retryable.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
