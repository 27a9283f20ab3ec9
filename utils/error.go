package utils

import (
	"errors"
	"net/http"
)

var ErrorRecordNotFound = errors.New("record not found")

// ErrorKind classifies an error for the HTTP boundary.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindUpstream
	KindDataIntegrity
)

// AppError carries a client-safe message plus the wrapped cause for logging.
// Provider/driver error text must never reach clients; it travels in Err only.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string) error {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewUnauthenticatedError(message string) error {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func NewForbiddenError(message string) error {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(message string) error {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) error {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewUpstreamError(message string, cause error) error {
	return &AppError{Kind: KindUpstream, Message: message, Err: cause}
}

func NewDataIntegrityError(message string, cause error) error {
	return &AppError{Kind: KindDataIntegrity, Message: message, Err: cause}
}

// KindOf reports the classification of err, unwrapping as needed.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if errors.Is(err, ErrorRecordNotFound) {
		return KindNotFound
	}
	return KindInternal
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to place in the response body.
// Upstream and integrity failures get a generic message; the cause is for logs.
func ClientMessage(err error) string {
	switch KindOf(err) {
	case KindUpstream, KindDataIntegrity, KindInternal:
		return "internal server error"
	}
	if errors.Is(err, ErrorRecordNotFound) {
		return ErrorRecordNotFound.Error()
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
