package mediator

import (
	"context"
)

// Request is a value that can be dispatched and declares its response type R.
//
// Request types satisfy the interface by embedding Returns:
//
//	type GetUser struct {
//	    mediator.Returns[*User]
//	    ID string
//	}
//
// The runtime type of the request and R together form the Pair used to find
// the handler and behaviors.
type Request[R any] interface {
	response(R)
}

// Returns marks the embedding type as a request producing R.
type Returns[R any] struct{}

func (Returns[R]) response(R) {}

// Unit is the response type of requests that produce nothing.
type Unit struct{}

// NoResponse marks the embedding type as a fire-and-forget request.
// Dispatch it with Execute.
type NoResponse = Returns[Unit]

// Handler produces the response for exactly one request/response pair.
//
// Example:
//
//	type GetUserHandler struct {
//	    db *sql.DB
//	}
//
//	func (h *GetUserHandler) Handle(ctx context.Context, q *GetUser) (*User, error) {
//	    return loadUser(ctx, h.db, q.ID)
//	}
type Handler[Q Request[R], R any] interface {
	Handle(ctx context.Context, req Q) (R, error)
}

// HandlerFunc is a function adapter for Handler. Use for simple handlers
// that don't need a struct:
//
//	mediator.RegisterFunc(b, func(ctx context.Context, q *Ping) (string, error) {
//	    return "pong", nil
//	})
type HandlerFunc[Q Request[R], R any] func(ctx context.Context, req Q) (R, error)

// Handle implements the Handler interface.
func (f HandlerFunc[Q, R]) Handle(ctx context.Context, req Q) (R, error) {
	return f(ctx, req)
}

// Next continues the pipeline: it runs the remaining behaviors and the
// handler and returns their response. Calling it again runs them again.
type Next[R any] func(ctx context.Context) (R, error)

// Behavior wraps handler execution with cross-cutting logic.
//
// A behavior registered as Behavior[Q, R] applies to every pair whose request
// type is assignable to Q and whose response type is assignable to R, so
// Behavior[any, any] wraps every dispatch.
//
// A behavior may call next and return its result, transform it, or return a
// response of its own without calling next at all.
type Behavior[Q, R any] interface {
	Handle(ctx context.Context, req Q, next Next[R]) (R, error)
}

// BehaviorFunc is a function adapter for Behavior.
type BehaviorFunc[Q, R any] func(ctx context.Context, req Q, next Next[R]) (R, error)

// Handle implements the Behavior interface.
func (f BehaviorFunc[Q, R]) Handle(ctx context.Context, req Q, next Next[R]) (R, error) {
	return f(ctx, req, next)
}
