package k2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Error is implemented by every error returned by the SDK. Retryable reports
// whether the operation that produced the error can be safely retried.
type Error interface {
	error
	Retryable() bool
}

// StatusError is implemented by errors carrying an HTTP status code. It is
// the catch-all capability for API-level errors, so callers can branch on
// status without committing to a specific variant.
type StatusError interface {
	Error
	Status() int
}

// APIError is the common portion of all status-bearing errors returned by
// the Knowledge2 API. Unmapped statuses (e.g. 400) are returned as a bare
// *APIError.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Details    interface{}
	RequestID  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Message, e.StatusCode)
	}

	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Retryable implements Error. Status-bearing errors are non-retryable unless
// a variant overrides this.
func (e *APIError) Retryable() bool { return false }

// Status implements StatusError.
func (e *APIError) Status() int { return e.StatusCode }

// AuthenticationError is returned for HTTP 401: invalid or missing
// credentials.
type AuthenticationError struct{ APIError }

// PermissionDeniedError is returned for HTTP 403, when the credentials lack
// the required scopes.
type PermissionDeniedError struct{ APIError }

// NotFoundError is returned for HTTP 404, when the requested resource does
// not exist.
type NotFoundError struct{ APIError }

// ConflictError is returned for HTTP 409: a resource conflict, such as a
// duplicate idempotency key or a corpus with active deployments.
type ConflictError struct{ APIError }

// ValidationError is returned for HTTP 422, when request validation failed.
type ValidationError struct{ APIError }

// RateLimitError is returned for HTTP 429. RetryAfter carries the
// server-suggested wait from the Retry-After header, or nil if absent.
type RateLimitError struct {
	APIError

	RetryAfter *time.Duration
}

// Retryable implements Error.
func (e *RateLimitError) Retryable() bool { return true }

// ServerError is returned for HTTP 500, 502, 503, and 504, and any other 5xx.
type ServerError struct{ APIError }

// Retryable implements Error.
func (e *ServerError) Retryable() bool { return true }

// APIConnectionError reports a transport-level connection failure (DNS,
// connection refused, TLS, etc.). It carries no HTTP status.
type APIConnectionError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *APIConnectionError) Error() string { return e.Message }

// Retryable implements Error.
func (e *APIConnectionError) Retryable() bool { return true }

// Unwrap returns the underlying transport error.
func (e *APIConnectionError) Unwrap() error { return e.Err }

// APITimeoutError reports that a request attempt exceeded its deadline. It
// carries no HTTP status.
type APITimeoutError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *APITimeoutError) Error() string { return e.Message }

// Retryable implements Error.
func (e *APITimeoutError) Retryable() bool { return true }

// Unwrap returns the underlying transport error.
func (e *APITimeoutError) Unwrap() error { return e.Err }

// errorEnvelope mirrors the JSON error bodies the API produces. The primary
// form is {"message": ..., "details": ...}; the API also emits
// {"error": {code, message, details, request_id}} and FastAPI-style
// {"detail": ...} bodies.
type errorEnvelope struct {
	Message string          `json:"message"`
	Details interface{}     `json:"details"`
	Error   *errorDetail    `json:"error"`
	Detail  json.RawMessage `json:"detail"`
}

type errorDetail struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details"`
	RequestID string      `json:"request_id"`
}

// ClassifyResponse maps an HTTP error response to a typed error. It is a pure
// function of its inputs: no I/O, no retry decision. The status code is
// authoritative; the body contributes message and details only.
func ClassifyResponse(status int, header http.Header, body []byte) Error {
	message := string(body)
	if message == "" {
		message = http.StatusText(status)
	}

	if message == "" {
		message = "unknown error"
	}

	var (
		code      string
		details   interface{}
		requestID string
	)

	if header != nil {
		requestID = header.Get("X-Request-Id")
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Error != nil:
			code = envelope.Error.Code
			details = envelope.Error.Details

			if envelope.Error.RequestID != "" {
				requestID = envelope.Error.RequestID
			}

			if envelope.Error.Message != "" {
				message = envelope.Error.Message
			}
		case envelope.Message != "":
			message = envelope.Message
			details = envelope.Details
		case len(envelope.Detail) > 0:
			var detailText string
			if err := json.Unmarshal(envelope.Detail, &detailText); err == nil {
				message = detailText
			} else {
				var structured interface{}

				_ = json.Unmarshal(envelope.Detail, &structured)
				details = structured
			}
		}
	}

	if requestID != "" {
		message = fmt.Sprintf("%s (request_id=%s)", message, requestID)
	}

	base := APIError{
		StatusCode: status,
		Message:    message,
		Code:       code,
		Details:    details,
		RequestID:  requestID,
	}

	switch status {
	case http.StatusUnauthorized:
		return &AuthenticationError{base}
	case http.StatusForbidden:
		return &PermissionDeniedError{base}
	case http.StatusNotFound:
		return &NotFoundError{base}
	case http.StatusConflict:
		return &ConflictError{base}
	case http.StatusUnprocessableEntity:
		return &ValidationError{base}
	case http.StatusTooManyRequests:
		return &RateLimitError{APIError: base, RetryAfter: parseRetryAfter(header)}
	}

	// Any 5xx, mapped or not, is a server error.
	if status >= 500 && status < 600 {
		return &ServerError{base}
	}

	return &base
}

// parseRetryAfter reads a Retry-After header expressed in seconds.
func parseRetryAfter(header http.Header) *time.Duration {
	if header == nil {
		return nil
	}

	raw := header.Get("Retry-After")
	if raw == "" {
		return nil
	}

	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds < 0 {
		return nil
	}

	wait := time.Duration(seconds * float64(time.Second))

	return &wait
}

// ClassifyTransport maps a transport-level failure to a typed error: deadline
// exceeded becomes APITimeoutError, everything else APIConnectionError.
func ClassifyTransport(err error) Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &APITimeoutError{Message: fmt.Sprintf("request timed out: %v", err), Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APITimeoutError{Message: fmt.Sprintf("request timed out: %v", err), Err: err}
	}

	return &APIConnectionError{Message: fmt.Sprintf("connection error: %v", err), Err: err}
}

// IsRetryable reports whether err is an SDK error that can be retried.
func IsRetryable(err error) bool {
	var sdkErr Error
	if errors.As(err, &sdkErr) {
		return sdkErr.Retryable()
	}

	return false
}

// IsAuthentication checks if the error is an authentication error (401).
func IsAuthentication(err error) bool {
	target := &AuthenticationError{}

	return errors.As(err, &target)
}

// IsPermissionDenied checks if the error is a permission error (403).
func IsPermissionDenied(err error) bool {
	target := &PermissionDeniedError{}

	return errors.As(err, &target)
}

// IsNotFound checks if the error is a not found error (404).
func IsNotFound(err error) bool {
	target := &NotFoundError{}

	return errors.As(err, &target)
}

// IsConflict checks if the error is a conflict error (409).
func IsConflict(err error) bool {
	target := &ConflictError{}

	return errors.As(err, &target)
}

// IsValidation checks if the error is a validation error (422).
func IsValidation(err error) bool {
	target := &ValidationError{}

	return errors.As(err, &target)
}

// IsRateLimit checks if the error is a rate limit error (429).
func IsRateLimit(err error) bool {
	target := &RateLimitError{}

	return errors.As(err, &target)
}

// IsServerError checks if the error is a server-side error (5xx).
func IsServerError(err error) bool {
	target := &ServerError{}

	return errors.As(err, &target)
}

// IsConnection checks if the error is a transport-level connection failure.
func IsConnection(err error) bool {
	target := &APIConnectionError{}

	return errors.As(err, &target)
}

// IsTimeout checks if the error is a transport-level timeout.
func IsTimeout(err error) bool {
	target := &APITimeoutError{}

	return errors.As(err, &target)
}
