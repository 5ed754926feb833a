// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type every Church Wallet service returns to
the HTTP layer.

An [AppError] carries the status, a stable machine code and a client-safe
message. [respond.Error] renders it as-is. Any other error is logged and
reported as INTERNAL_ERROR, so storage details never reach a client.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnprocessable   = "UNPROCESSABLE"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
)

// statusByCode is the single code to status table.
var statusByCode = map[string]int{
	CodeUnauthenticated: http.StatusUnauthorized,
	CodeForbidden:       http.StatusForbidden,
	CodeNotFound:        http.StatusNotFound,
	CodeConflict:        http.StatusConflict,
	CodeValidation:      http.StatusBadRequest,
	CodeUnprocessable:   http.StatusUnprocessableEntity,
	CodeRateLimited:     http.StatusTooManyRequests,
	CodeInternal:        http.StatusInternalServerError,
}

/*
AppError is the canonical error type for the Church Wallet API.

Cause is for server-side logging only and is never serialized.
*/
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed field of a VALIDATION_ERROR response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e that records cause for logging. The
// client-facing fields are unchanged.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func newError(code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: statusByCode[code]}
}

// # Constructors

// NotFound reports a missing resource, e.g. NotFound("Church") reads
// "Church not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, resource+" not found")
}

// Unauthenticated is returned whenever no valid identity is attached.
func Unauthenticated(message string) *AppError {
	return newError(CodeUnauthenticated, message)
}

// Forbidden is returned when the identity lacks the role or scope.
func Forbidden(message string) *AppError {
	return newError(CodeForbidden, message)
}

// Conflict covers duplicates and state clashes such as paying settled dues.
func Conflict(message string) *AppError {
	return newError(CodeConflict, message)
}

// ValidationError is a 400 with optional per-field details.
func ValidationError(message string, details ...FieldError) *AppError {
	err := newError(CodeValidation, message)
	err.Details = details
	return err
}

// Unprocessable is a 422 for well-formed input that cannot be applied, such
// as scope identifiers that do not belong together.
func Unprocessable(message string) *AppError {
	return newError(CodeUnprocessable, message)
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(CodeRateLimited, fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(cause error) *AppError {
	err := newError(CodeInternal, "An unexpected error occurred")
	err.Cause = cause
	return err
}

// # Inspection

// As extracts the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError reports whether err's chain holds an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// HasCode reports whether err's chain holds an [*AppError] with code.
func HasCode(err error, code string) bool {
	appErr := As(err)
	return appErr != nil && appErr.Code == code
}
