package mediator

import (
	"errors"
	"fmt"
)

var (
	// ErrNilRequest is returned when Send is called with a nil request.
	ErrNilRequest = errors.New("request is nil")

	// ErrNoHandler is returned when no handler is registered for a pair.
	// It indicates a wiring defect, not a data error.
	ErrNoHandler = errors.New("no handler registered")

	// ErrNilHandler is reported for nil handler registrations.
	ErrNilHandler = errors.New("handler is nil")

	// ErrDuplicateHandler is reported when a pair gets a second handler.
	ErrDuplicateHandler = errors.New("handler already registered")

	// ErrNilBehavior is reported for nil behavior registrations.
	ErrNilBehavior = errors.New("behavior is nil")

	// ErrResponseType is returned when a behavior produced a value that is not
	// of the declared response type.
	ErrResponseType = errors.New("response type mismatch")
)

// NoHandlerError reports the pair that had no handler.
type NoHandlerError struct {
	Pair Pair
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("could not find handler for request of type %s and response of type %s", e.Pair.Request, e.Pair.Response)
}

func (e *NoHandlerError) Unwrap() error { return ErrNoHandler }
