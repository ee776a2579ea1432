// Package api provides the outcome type returned by API-facing handlers and
// its mapping to a transport-neutral Response.
//
// Handlers answer with a Result: a Success variant (Ok, Created, Accepted,
// NoContent) or a *ProblemDetails. A Mapper turns the Result into a Response
// carrying kind, status, body, location and problem members, which a
// transport layer serializes (see Encode).
//
//	type GetUser struct {
//	    mediator.Returns[api.Result]
//	    ID string
//	}
//
//	func (h *GetUserHandler) Handle(ctx context.Context, q *GetUser) (api.Result, error) {
//	    u, ok := h.users[q.ID]
//	    if !ok {
//	        return api.Fail(api.NotFound("user not found")), nil
//	    }
//	    return api.Succeed(api.Ok{Value: u}), nil
//	}
package api

import "github.com/bjaus/mediator/result"

// Result is the outcome of an API request.
type Result = result.Result[Success, *ProblemDetails]

// Succeed returns a successful Result. It panics on a nil success.
func Succeed(s Success) Result {
	return result.Success[Success, *ProblemDetails](s)
}

// Fail returns a failed Result. It panics on a nil problem.
func Fail(p *ProblemDetails) Result {
	return result.Failure[Success](p)
}
