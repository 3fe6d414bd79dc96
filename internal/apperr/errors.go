// Package apperr defines the error taxonomy shared by services and the HTTP
// boundary. Every domain failure is an *Error carrying an HTTP status, a
// machine-readable code and a human message; the handlers package normalizes
// anything else into an internal error so driver details never leak.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int    `json:"-"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Validation(code, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Name: "ValidationError", Code: code, Message: message}
}

func Unauthorized(code, message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Name: "Unauthorized", Code: code, Message: message}
}

func Forbidden(code, message string) *Error {
	return &Error{Status: http.StatusForbidden, Name: "Forbidden", Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Status: http.StatusNotFound, Name: "NotFound", Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Status: http.StatusConflict, Name: "Conflict", Code: code, Message: message}
}

func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Name: "InternalError", Code: "INTERNAL_ERROR", Message: message}
}

// From extracts the *Error from err's chain, or wraps err into an opaque
// internal error. The original message is deliberately dropped for unknown
// errors.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error")
}

// Error codes used across the auth and todo flows.
const (
	CodeInvalidPayload      = "INVALID_PAYLOAD"
	CodeInvalidEmail        = "INVALID_EMAIL"
	CodeWeakPassword        = "WEAK_PASSWORD"
	CodeInvalidName         = "INVALID_NAME"
	CodeEmailExists         = "EMAIL_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeTooManyAttempts     = "TOO_MANY_LOGIN_ATTEMPTS"
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CodeTokenMissing        = "TOKEN_MISSING"
	CodeTokenInvalid        = "TOKEN_INVALID"
	CodeTokenRevoked        = "TOKEN_REVOKED"
	CodeTodoInvalidID       = "TODO_INVALID_ID"
	CodeTodoNotFound        = "TODO_NOT_FOUND"
)
