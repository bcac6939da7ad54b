// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorHandler translates typed errors into HTTP responses at the boundary.
// Core packages return *StandardError values untouched; only this layer
// decides transport-level status codes.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ErrorResponse is the JSON error body returned to callers.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// WriteHTTPError normalizes err, logs it, and writes the mapped HTTP response.
func (h *ErrorHandler) WriteHTTPError(w http.ResponseWriter, requestID string, err error) {
	stdErr := h.normalizeError(err)
	status := HTTPStatus(stdErr)

	h.logError(requestID, status, stdErr)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorBody{
			Code:    stdErr.Code,
			Message: stdErr.Message,
			Details: stdErr.Details,
		},
	})
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error to the transport status the boundary returns.
// Client-input errors map to 4xx, upstream failures to 502/504.
func HTTPStatus(err error) int {
	stdErr, ok := AsStandardError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch stdErr.Code {
	case ErrCodeUnresolvedIntent:
		return http.StatusUnprocessableEntity
	case ErrCodeMissingParameter, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeUpstreamRequestFailed:
		if upstreamTimedOut(stdErr) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case ErrCodeUpstreamFormatInvalid:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *ErrorHandler) logError(requestID string, status int, stdErr *StandardError) {
	fields := map[string]interface{}{
		"requestId": requestID,
		"status":    status,
		"errorCode": string(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	}
	if upstreamStatus, ok := UpstreamStatus(stdErr); ok && upstreamStatus > 0 {
		fields["upstreamStatus"] = upstreamStatus
	}
	h.logger.Error("request failed", fields)
}
