// Package server holds the error kinds shared between services and the rest
// handlers. Services wrap domain errors into a kind; handlers map kinds to
// http status codes.
package server

import (
	"errors"
	"fmt"
)

var (
	ErrInternalServerError = errors.New("internal server error")
	ErrNotFound            = errors.New("your requested item is not found")
	ErrBadParamInput       = errors.New("given param is not valid")
	ErrUnprocessableEntity = errors.New("request cannot be processed")
)

type Error struct {
	orig    error
	kind    error
	message string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Is(target error) bool {
	return target == e.kind
}

func WrapErrorf(orig error, kind error, format string, args ...interface{}) *Error {
	return &Error{
		orig:    orig,
		kind:    kind,
		message: fmt.Sprintf(format, args...),
	}
}

func NewErrorf(kind error, format string, args ...interface{}) *Error {
	return WrapErrorf(nil, kind, format, args...)
}
