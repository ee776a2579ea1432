// Package mediator provides in-process request dispatch with typed handlers
// and composable behaviors.
//
// A request is routed to exactly one handler, chosen by the request's type
// and the response type it declares. On the way the request passes through
// an ordered chain of behaviors for cross-cutting concerns such as logging,
// validation and measurement.
//
// # Quick Start
//
// Declare a request and its response type by embedding Returns:
//
//	type GetUser struct {
//	    mediator.Returns[*User]
//	    ID string
//	}
//
// Write a handler for it:
//
//	type GetUserHandler struct {
//	    users UserStore
//	}
//
//	func (h *GetUserHandler) Handle(ctx context.Context, q *GetUser) (*User, error) {
//	    return h.users.Find(ctx, q.ID)
//	}
//
// Register handlers on a Builder, build the Mediator and send requests:
//
//	b := mediator.NewBuilder()
//	mediator.Register(b, &GetUserHandler{users: store})
//
//	m, err := b.Build()
//	if err != nil {
//	    return err
//	}
//
//	user, err := mediator.Send(ctx, m, &GetUser{ID: "42"})
//
// The response type is inferred from the request, so Send returns *User
// without any type arguments at the call site.
//
// # Pairs
//
// The runtime type of a request and its declared response type form a Pair.
// Each pair has at most one handler; registering a second is a build error.
// Sending a request whose pair has no handler fails with *NoHandlerError,
// which wraps ErrNoHandler. A missing handler is a wiring defect, so it is
// reported even when behaviors would have applied, and no behavior runs.
//
// Requests that produce nothing embed NoResponse and are sent with Execute:
//
//	type ArchiveUser struct {
//	    mediator.NoResponse
//	    ID string
//	}
//
//	err := mediator.Execute(ctx, m, &ArchiveUser{ID: "42"})
//
// # Behaviors
//
// A behavior wraps the handler. It receives the request and a Next
// continuation, and may call next and return its result, transform it, or
// answer on its own without calling next:
//
//	mediator.AddBehaviorFunc(b, func(ctx context.Context, req any, next mediator.Next[any]) (any, error) {
//	    start := time.Now()
//	    resp, err := next(ctx)
//	    log.Printf("%T took %s", req, time.Since(start))
//	    return resp, err
//	})
//
// Behaviors run in registration order: the first one added is the
// outermost. A behavior registered as Behavior[Q, R] applies to every pair
// whose request type is assignable to Q and whose response type is
// assignable to R. That makes constraints open:
//
//   - Behavior[any, any] wraps every dispatch
//   - Behavior[*GetUser, *User] wraps one pair
//   - Behavior[any, api.Result] wraps every request answering api.Result
//   - Behavior[Auditable, any] wraps requests implementing Auditable
//
// The chain for a pair is resolved once and cached. Calling next more than
// once runs the rest of the chain again, which is how retry behaviors work.
//
// # Lifetimes
//
// Register and AddBehavior share one instance across all dispatches. The
// factory variants choose a Lifetime:
//
//   - Transient: the factory runs for every dispatch
//   - Singleton: the factory runs once, on first use
//
//	mediator.RegisterFactory(b, mediator.Transient, func() mediator.Handler[*GetUser, *User] {
//	    return &GetUserHandler{users: store.Session()}
//	})
//
// # Hooks
//
// Hooks observe dispatches without being part of the chain. Use functional
// options to configure them:
//
//	b := mediator.NewBuilder(
//	    mediator.WithOnDispatch(func(ctx context.Context, p mediator.Pair) context.Context {
//	        return logx.WithCtx(ctx, slog.String("request", p.RequestName()))
//	    }),
//	    mediator.WithOnSuccess(func(ctx context.Context, p mediator.Pair, d time.Duration) {
//	        metrics.Timing("mediator.success", d, "request:"+p.RequestName())
//	    }),
//	    mediator.WithOnFailure(func(ctx context.Context, p mediator.Pair, err error, d time.Duration) {
//	        metrics.Incr("mediator.error", "request:"+p.RequestName())
//	    }),
//	)
//
// Available hooks:
//   - WithOnDispatch: called before the chain runs, enriches context
//   - WithOnSuccess: called after the chain returns without error
//   - WithOnFailure: called after the chain returns an error
//   - WithOnNoHandler: called when the pair has no handler
//   - WithOnChainResolved: called when a pair's chain is first cached
//
// Multiple hooks of the same type are called in order.
//
// # Errors
//
// Errors and panics from handlers and behaviors reach the caller unchanged.
// The mediator adds only its own wiring errors: ErrNilRequest, ErrNoHandler,
// ErrNilHandler and ErrNilBehavior for factories that return nil, and
// ErrResponseType when a behavior answers with a value of the wrong type.
// Registration errors are collected and returned together by Build.
//
// # Related Packages
//
//   - result: the generic Result[S, F] outcome union
//   - api: success variants, ProblemDetails and the transport-neutral Mapper
//   - validation: a validating behavior and field-name mapping
//   - behavior: logging, OpenTelemetry and Prometheus behaviors
//
// # Thread Safety
//
// A Mediator is safe for concurrent use and its registrations are fixed at
// Build. A Builder is not safe for concurrent use.
package mediator
