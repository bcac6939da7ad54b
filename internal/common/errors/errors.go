// Package errors provides standardized error handling for the intent gateway.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Client-input errors: the query could not be mapped to a supported
	// action or a required parameter is missing. Never retried.
	ErrCodeUnresolvedIntent ErrorCode = "UNRESOLVED_INTENT"
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"

	// Upstream errors: the eWeb backend failed or answered garbage.
	ErrCodeUpstreamRequestFailed ErrorCode = "UPSTREAM_REQUEST_FAILED"
	ErrCodeUpstreamFormatInvalid ErrorCode = "UPSTREAM_FORMAT_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUnresolvedIntentError creates a non-retryable client-input error for a
// query that matched no trigger vocabulary.
func NewUnresolvedIntentError(query string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnresolvedIntent,
		Message:   "Query did not match any supported intent",
		Details:   fmt.Sprintf("query: %s", query),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingParameterError creates a non-retryable client-input error for a
// required parameter that could not be extracted or defaulted.
func NewMissingParameterError(parameter, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingParameter,
		Message:   fmt.Sprintf("Required parameter '%s' could not be resolved", parameter),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"parameter": parameter},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable error for a malformed
// request body rejected before resolution runs.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request body",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamRequestError creates an error for an upstream non-2xx response.
// The original status and body are preserved for diagnostics. Only 5xx
// statuses are retryable; 4xx means the request itself was wrong.
func NewUpstreamRequestError(status int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamRequestFailed,
		Message:   "Upstream request failed",
		Details:   fmt.Sprintf("status: %d", status),
		Retryable: status >= 500,
		Metadata: map[string]interface{}{
			"status": status,
			"body":   body,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnreachableError creates a retryable error for a transport-level
// failure (connect error, reset, timeout) where no HTTP status was received.
func NewUpstreamUnreachableError(err error, timedOut bool) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamRequestFailed,
		Message:   "Upstream unreachable",
		Details:   err.Error(),
		Retryable: true,
		Metadata: map[string]interface{}{
			"status":  0,
			"timeout": timedOut,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamFormatError creates a non-retryable error for an upstream
// response body that does not parse as the expected structure.
func NewUpstreamFormatError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamFormatInvalid,
		Message:   "Upstream response format invalid",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification Helpers
// ==========================

// AsStandardError unwraps err to a *StandardError if one is in its chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr.Code == code
	}
	return false
}

// IsClientInput reports whether err is caused by the caller's input rather
// than an upstream or internal failure.
func IsClientInput(err error) bool {
	if stdErr, ok := AsStandardError(err); ok {
		switch stdErr.Code {
		case ErrCodeUnresolvedIntent, ErrCodeMissingParameter, ErrCodeInvalidRequest:
			return true
		}
	}
	return false
}

// IsRetryable reports whether err represents a transient condition.
func IsRetryable(err error) bool {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr.Retryable
	}
	return false
}

// UpstreamStatus returns the upstream HTTP status preserved in err, if any.
// A status of 0 means the upstream was never reached.
func UpstreamStatus(err error) (int, bool) {
	stdErr, ok := AsStandardError(err)
	if !ok || stdErr.Metadata == nil {
		return 0, false
	}
	status, ok := stdErr.Metadata["status"].(int)
	return status, ok
}

// UpstreamBody returns the upstream response body preserved in err, if any.
func UpstreamBody(err error) (string, bool) {
	stdErr, ok := AsStandardError(err)
	if !ok || stdErr.Metadata == nil {
		return "", false
	}
	body, ok := stdErr.Metadata["body"].(string)
	return body, ok
}

// upstreamTimedOut reports whether err records a timed-out upstream call.
func upstreamTimedOut(err error) bool {
	stdErr, ok := AsStandardError(err)
	if !ok || stdErr.Metadata == nil {
		return false
	}
	timedOut, _ := stdErr.Metadata["timeout"].(bool)
	return timedOut
}
