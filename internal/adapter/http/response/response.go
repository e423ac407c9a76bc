// Package response builds the JSON bodies written by the HTTP handlers.
package response

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details maps request fields to what is wrong with them
	Details map[string]string `json:"details,omitempty"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeValidationError = "validation_error"
	CodeTimeout         = "timeout"
	CodeInternalError   = "internal_error"
)

// Error messages used in API responses.
const (
	MsgInvalidQuery     = "Failed to parse query parameters"
	MsgValidationFailed = "Request validation failed"
	MsgTimeout          = "Search timed out"
	MsgRequestCancelled = "Request was cancelled"
	MsgInternalError    = "An unexpected error occurred"
)
