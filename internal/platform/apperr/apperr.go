// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary shared by YaMDB services and handlers.

An [AppError] pairs an HTTP status with a stable machine code (NOT_FOUND,
DUPLICATE_REVIEW, ...) and a client message. Constructors keep the message as
a format key plus arguments so the HTTP boundary can print it in the
negotiated language. Anything that is not an AppError is reported to clients
as INTERNAL_ERROR.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/text/message"
)

// Printer is the subset of [message.Printer] used for localization.
type Printer interface {
	Sprintf(key message.Reference, args ...any) string
}

// AppError is a client-facing failure. Cause is logged and never serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`

	key  string
	args []any
}

// FieldError names the JSON field that failed a rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches two application errors by code and message, so sentinel values
// still match after [AppError.WithCause] copies them.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

// WithCause returns a copy of the error carrying cause for server-side logs.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// Localize renders the client message through printer.
//
// Errors built without a message key (struct literals) fall back to [AppError.Message].
func (e *AppError) Localize(printer Printer) string {
	if printer == nil || e.key == "" {
		return e.Message
	}
	return printer.Sprintf(e.key, e.args...)
}

// New builds an [AppError] whose message is the format key rendered with args.
//
// The key doubles as the English message and as the lookup key for translations.
func New(status int, code, key string, args []any) *AppError {
	return &AppError{
		Code:       code,
		Message:    render(key, args),
		HTTPStatus: status,
		key:        key,
		args:       args,
	}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Title") // Returns "Title not found"
func NotFound(resource string) *AppError {
	return New(http.StatusNotFound, "NOT_FOUND", "%s not found", []any{resource})
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", msg, nil)
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return New(http.StatusForbidden, "FORBIDDEN", msg, nil)
}

// Conflict creates a 400 [AppError] for identities already bound elsewhere.
//
// The public API reports these as plain client errors, as existing YaMDB clients expect.
func Conflict(msg string) *AppError {
	return New(http.StatusBadRequest, "CONFLICT", msg, nil)
}

// BadRequest creates a 400 [AppError] with a domain-specific code.
func BadRequest(code, msg string) *AppError {
	return New(http.StatusBadRequest, code, msg, nil)
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	err := New(http.StatusBadRequest, "VALIDATION_ERROR", msg, nil)
	err.Details = details
	return err
}

// MethodNotAllowed creates a 405 [AppError].
func MethodNotAllowed(method string) *AppError {
	return New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method %q not allowed", []any{method})
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return New(http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Try again in %ds.", []any{retryAfterSeconds})
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	err := New(http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
	err.Cause = cause
	return err
}

// ServiceUnavailable creates a 503 [AppError] for unreachable collaborators.
func ServiceUnavailable(msg string) *AppError {
	return New(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", msg, nil)
}

// # Helpers

// render formats key only when arguments are present, so literal percent signs survive.
func render(key string, args []any) string {
	if len(args) == 0 {
		return key
	}
	return fmt.Sprintf(key, args...)
}

// IsAppError reports whether err's chain holds an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}
