// Package errors defines the structured error type shared by every layer of the
// academic administration service. Each error carries a stable code and the HTTP
// status it maps to, so handlers never have to guess.
package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
)

// Error codes returned to API clients.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeRateLimitExceeded  = "rate_limit_exceeded"
	CodeInternal           = "internal_error"
	CodeServiceUnavailable = "service_unavailable"
)

// ================================================================================
// AppError
// ================================================================================

// AppError represents a structured application error.
type AppError struct {
	Code       string
	HTTPStatus int
	Message    string
	Metadata   map[string]interface{}
	cause      error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause returns a copy of the error with cause attached.
func (e *AppError) WithCause(cause error) *AppError {
	cp := e.clone()
	cp.cause = cause
	return cp
}

// WithMetadata returns a copy of the error with an extra metadata entry.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	cp := e.clone()
	cp.Metadata[key] = value
	return cp
}

func (e *AppError) clone() *AppError {
	md := make(map[string]interface{}, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		md[k] = v
	}
	return &AppError{
		Code:       e.Code,
		HTTPStatus: e.HTTPStatus,
		Message:    e.Message,
		Metadata:   md,
		cause:      e.cause,
	}
}

// New creates a new AppError.
func New(code string, httpStatus int, message string) *AppError {
	return &AppError{
		Code:       code,
		HTTPStatus: httpStatus,
		Message:    message,
		Metadata:   make(map[string]interface{}),
	}
}

// ================================================================================
// Constructors
// ================================================================================

// ErrInvalidRequest creates an invalid_request error.
func ErrInvalidRequest(message string) *AppError {
	return New(CodeInvalidRequest, http.StatusBadRequest, message)
}

// ErrValidation creates an invalid_request error carrying per-field details.
func ErrValidation(details map[string]string) *AppError {
	err := ErrInvalidRequest("validation failed")
	for field, msg := range details {
		err.Metadata[field] = msg
	}
	return err
}

// ErrNotFound creates a not_found error for the given resource and identifier.
func ErrNotFound(resource string, id interface{}) *AppError {
	return New(CodeNotFound, http.StatusNotFound, fmt.Sprintf("%s not found: %v", resource, id)).
		WithMetadata("resource", resource).
		WithMetadata("id", id)
}

// ErrConflict creates a conflict error.
func ErrConflict(message string) *AppError {
	return New(CodeConflict, http.StatusConflict, message)
}

// ErrUnauthorized creates an unauthorized error.
func ErrUnauthorized(message string) *AppError {
	return New(CodeUnauthorized, http.StatusUnauthorized, message)
}

// ErrForbidden creates a forbidden error.
func ErrForbidden(message string) *AppError {
	return New(CodeForbidden, http.StatusForbidden, message)
}

// ErrRateLimitExceeded creates a rate_limit_exceeded error.
func ErrRateLimitExceeded(scope string) *AppError {
	return New(CodeRateLimitExceeded, http.StatusTooManyRequests, "too many attempts, try again later").
		WithMetadata("scope", scope)
}

// ErrInternal creates an internal_error.
func ErrInternal(message string) *AppError {
	return New(CodeInternal, http.StatusInternalServerError, message)
}

// ErrServiceUnavailable creates a service_unavailable error.
func ErrServiceUnavailable(message string) *AppError {
	return New(CodeServiceUnavailable, http.StatusServiceUnavailable, message)
}

// Wrap turns any error into an AppError. Errors that already are AppErrors are
// returned untouched so their code survives the trip up the stack.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	return ErrInternal(message).WithCause(err)
}

// ================================================================================
// Predicates
// ================================================================================

// As extracts an AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if goerrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return HasCode(err, CodeConflict)
}

// HTTPStatusOf returns the HTTP status an error maps to.
func HTTPStatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// ShouldLog determines if an error is severe enough to be logged at error level.
func ShouldLog(err error) bool {
	status := HTTPStatusOf(err)
	return status >= 500
}
