package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures so transports can pick a status code.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "not_found"
	KindInvalidInput        ErrorKind = "invalid_input"
	KindConflict            ErrorKind = "conflict"
	KindUnauthorized        ErrorKind = "unauthorized"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	KindConfirmation        ErrorKind = "confirmation_error"
	KindInternal            ErrorKind = "internal_error"
)

// AppError carries a kind, a client-facing message and the underlying cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *AppError     { return NewAppError(KindNotFound, message, nil) }
func InvalidInput(message string) *AppError { return NewAppError(KindInvalidInput, message, nil) }
func Conflict(message string) *AppError     { return NewAppError(KindConflict, message, nil) }

func Internal(message string, err error) *AppError {
	return NewAppError(KindInternal, message, err)
}

func Upstream(message string, err error) *AppError {
	return NewAppError(KindUpstreamUnavailable, message, err)
}

// KindOf reports the kind of the first AppError in err's chain.
// Errors that carry no kind are internal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to a response status.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindInvalidInput:
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
