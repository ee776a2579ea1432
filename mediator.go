package mediator

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Mediator dispatches requests to their registered handler through the
// behaviors that apply to them.
//
// Usage:
//  1. Create a Builder with NewBuilder
//  2. Register handlers with Register and behaviors with AddBehavior
//  3. Build the Mediator
//  4. Dispatch requests with Send or Execute
//
// Mediator is safe for concurrent use. Its registrations are fixed at Build.
type Mediator struct {
	handlers  map[Pair]any
	behaviors []*behaviorEntry
	hooks     hooks
	logger    *slog.Logger

	// chains caches the resolved chain per pair. Entries are pure metadata,
	// so concurrent first use may compute one twice; the first store wins.
	chains sync.Map // Pair -> *chain
}

func newMediator(handlers map[Pair]any, behaviors []*behaviorEntry, opts ...Option) *Mediator {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Mediator{
		handlers:  handlers,
		behaviors: behaviors,
		hooks:     o.hooks,
		logger:    o.logger,
	}
}

// Send dispatches req to the handler registered for its runtime type and R,
// through every behavior that applies, and returns the response unmodified.
//
// The dispatch flow:
//  1. Reject a nil request
//  2. Resolve the behavior chain for the pair (cached per pair)
//  3. Resolve the handler; fail with *NoHandlerError when there is none,
//     even if behaviors apply
//  4. Run the behaviors in registration order around the handler
//
// Errors and panics from handlers and behaviors are returned to the caller
// unchanged. Cancellation is carried by ctx; honoring it is up to handlers
// and behaviors.
//
// Example:
//
//	user, err := mediator.Send(ctx, m, &GetUser{ID: "42"})
func Send[R any](ctx context.Context, m *Mediator, req Request[R]) (R, error) {
	var zero R
	if isNil(req) {
		return zero, ErrNilRequest
	}

	pair := Pair{Request: reflect.TypeOf(req), Response: reflect.TypeFor[R]()}
	c := m.chain(pair)

	entry, found := m.handlers[pair]
	if !found {
		m.hooks.callOnNoHandler(ctx, pair)
		m.logger.ErrorContext(ctx, "no handler registered",
			slog.String("request", pair.Request.String()),
			slog.String("response", pair.Response.String()),
		)
		return zero, &NoHandlerError{Pair: pair}
	}
	h := entry.(invoker[R])

	ctx = withPair(ctx, pair)
	ctx = m.hooks.callOnDispatch(ctx, pair)

	start := time.Now()
	resp, err := execute(ctx, c, req, h)
	duration := time.Since(start)

	if err != nil {
		m.hooks.callOnFailure(ctx, pair, err, duration)
	} else {
		m.hooks.callOnSuccess(ctx, pair, duration)
	}

	return resp, err
}

// Execute dispatches a fire-and-forget request.
func Execute(ctx context.Context, m *Mediator, req Request[Unit]) error {
	_, err := Send(ctx, m, req)
	return err
}

// chain returns the cached chain for pair, resolving it on first use.
func (m *Mediator) chain(pair Pair) *chain {
	if c, ok := m.chains.Load(pair); ok {
		return c.(*chain)
	}

	c, loaded := m.chains.LoadOrStore(pair, resolveChain(pair, m.behaviors))
	resolved := c.(*chain)
	if !loaded {
		m.logger.Debug("behavior chain resolved",
			slog.String("pair", pair.String()),
			slog.Int("behaviors", len(resolved.behaviors)),
		)
		m.hooks.callOnChainResolved(pair, len(resolved.behaviors))
	}
	return resolved
}

type pairKey struct{}

func withPair(ctx context.Context, pair Pair) context.Context {
	return context.WithValue(ctx, pairKey{}, pair)
}

// PairFromContext returns the pair being dispatched. It is set for
// behaviors and handlers.
func PairFromContext(ctx context.Context) (Pair, bool) {
	p, ok := ctx.Value(pairKey{}).(Pair)
	return p, ok
}
