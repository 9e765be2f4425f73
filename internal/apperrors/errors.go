// Package apperrors provides structured errors with HTTP status code mapping.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an error for response mapping and metrics labels.
type Kind string

const (
	// KindValidation indicates invalid input (HTTP 400)
	KindValidation Kind = "validation"
	// KindUnauthorized indicates a missing or invalid session (HTTP 401)
	KindUnauthorized Kind = "unauthorized"
	// KindNotFound indicates resource not found (HTTP 404)
	KindNotFound Kind = "not_found"
	// KindConflict indicates a uniqueness violation (HTTP 409)
	KindConflict Kind = "conflict"
	// KindInternal indicates a server-side failure (HTTP 500)
	KindInternal Kind = "internal"
)

// Error carries a kind, a client-safe message, and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the HTTP status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// As converts any error into a structured *Error. A nil error maps to nil,
// an unstructured error is wrapped as internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}
	return Internal("internal server error", err)
}

// IsKind reports whether err is a structured error of the given kind.
func IsKind(err error, kind Kind) bool {
	var structured *Error
	return errors.As(err, &structured) && structured.Kind == kind
}
