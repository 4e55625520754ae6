package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error standardizes application faults and their HTTP translation.
type Error struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidation(message string) error {
	return &Error{Code: "VALIDATION_FAILED", Message: message, HTTPStatus: http.StatusBadRequest}
}

func NewMissingCredentials() error {
	return &Error{Code: "MISSING_CREDENTIALS", Message: "missing authorization token", HTTPStatus: http.StatusUnauthorized}
}

// NewAuthentication covers bad login credentials. The underlying cause
// is never attached: credential-path failures must not leak internals.
func NewAuthentication() error {
	return &Error{Code: "AUTHENTICATION_FAILED", Message: "invalid credentials", HTTPStatus: http.StatusUnauthorized}
}

func NewInvalidToken() error {
	return &Error{Code: "INVALID_TOKEN", Message: "invalid or expired token", HTTPStatus: http.StatusForbidden}
}

func NewForbidden(message string) error {
	return &Error{Code: "FORBIDDEN", Message: message, HTTPStatus: http.StatusForbidden}
}

func NewNotFound(resource string) error {
	return &Error{Code: "NOT_FOUND", Message: fmt.Sprintf("%s not found", resource), HTTPStatus: http.StatusNotFound}
}

func NewConflict(message string) error {
	return &Error{Code: "CONFLICT", Message: message, HTTPStatus: http.StatusConflict}
}

func NewUpload(err error) error {
	return &Error{Code: "UPLOAD_FAILED", Message: "failed to store evidence", HTTPStatus: http.StatusInternalServerError, Err: err}
}

func NewPersistence(message string, err error) error {
	return &Error{Code: "PERSISTENCE_FAILED", Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

func NewInternal(err error) error {
	return &Error{Code: "INTERNAL_ERROR", Message: "internal server error", HTTPStatus: http.StatusInternalServerError, Err: err}
}

// From converts any error to an *Error, wrapping unknown faults as
// internal ones.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
