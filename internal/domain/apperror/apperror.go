package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so the HTTP adapter can pick a status
// code without inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	// Errors carries field -> message details for validation failures.
	Errors map[string]string
	// Err is the wrapped cause, logged but never returned to the caller.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NotFound yields the canonical "<Entity> couldn't be found" message.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s couldn't be found", entity)}
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Errors: fields}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// As extracts an *Error from err, or nil when err is of another type.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsNotFound(err error) bool {
	appErr := As(err)
	return appErr != nil && appErr.Kind == KindNotFound
}
