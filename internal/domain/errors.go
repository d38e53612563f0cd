package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("rate limited")
)

// Error carries a client-facing message alongside one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string
}

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(message string) *Error {
	return NewError(ErrNotFound, message)
}

func InvalidInput(message string) *Error {
	return NewError(ErrInvalidInput, message)
}

func Forbidden(message string) *Error {
	return NewError(ErrForbidden, message)
}

func Conflict(message string) *Error {
	return NewError(ErrConflict, message)
}
