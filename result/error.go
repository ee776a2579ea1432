package result

import (
	"errors"
	"strings"
)

// ErrEmptyMessage is returned when an Error is created with a blank message.
var ErrEmptyMessage = errors.New("error message is empty")

// DetailedError is a failure that can describe itself beyond its message.
type DetailedError interface {
	error
	DetailedMessage() string
}

// Error is the base failure: a required, non-blank message.
type Error struct {
	message string
}

// NewError returns an Error with message.
func NewError(message string) (Error, error) {
	if strings.TrimSpace(message) == "" {
		return Error{}, ErrEmptyMessage
	}
	return Error{message: message}, nil
}

// MustError is like NewError but panics on a blank message.
func MustError(message string) Error {
	e, err := NewError(message)
	if err != nil {
		panic(err)
	}
	return e
}

// Message returns the error message.
func (e Error) Message() string { return e.message }

func (e Error) Error() string { return e.message }

// DetailedMessage returns the message. Types embedding Error override it to
// add their own fields.
func (e Error) DetailedMessage() string { return e.message }
