package mediator

import (
	"context"
	"log/slog"
	"time"
)

// OnDispatchFunc is called after the handler is resolved, just before the
// pipeline runs. The returned context is used for the rest of the dispatch.
type OnDispatchFunc func(ctx context.Context, pair Pair) context.Context

// OnSuccessFunc is called after the pipeline returns without error.
type OnSuccessFunc func(ctx context.Context, pair Pair, duration time.Duration)

// OnFailureFunc is called after the pipeline returns an error.
type OnFailureFunc func(ctx context.Context, pair Pair, err error, duration time.Duration)

// OnNoHandlerFunc is called when no handler is registered for the pair.
// It observes the condition; the dispatch still fails.
type OnNoHandlerFunc func(ctx context.Context, pair Pair)

// OnChainResolvedFunc is called once per pair, when its behavior chain is
// first resolved and cached.
type OnChainResolvedFunc func(pair Pair, behaviors int)

// hooks holds all configured hook functions.
type hooks struct {
	onDispatch      []OnDispatchFunc
	onSuccess       []OnSuccessFunc
	onFailure       []OnFailureFunc
	onNoHandler     []OnNoHandlerFunc
	onChainResolved []OnChainResolvedFunc
}

// options holds everything an Option can configure.
type options struct {
	logger *slog.Logger
	hooks  hooks
}

// Option configures a Mediator.
type Option func(*options)

// WithLogger sets the logger used for chain resolution and wiring errors.
// By default the mediator discards its logs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOnDispatch adds a hook called just before the pipeline runs.
// Multiple hooks are called in order, with context chaining through each.
//
// Example:
//
//	mediator.WithOnDispatch(func(ctx context.Context, p mediator.Pair) context.Context {
//	    return logx.WithCtx(ctx, slog.String("request", p.RequestName()))
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(o *options) {
		o.hooks.onDispatch = append(o.hooks.onDispatch, fn)
	}
}

// WithOnSuccess adds a hook called after the pipeline succeeds.
// Multiple hooks are called in order.
//
// Example:
//
//	mediator.WithOnSuccess(func(ctx context.Context, p mediator.Pair, d time.Duration) {
//	    metrics.Timing("mediator.success", d, "request:"+p.RequestName())
//	})
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(o *options) {
		o.hooks.onSuccess = append(o.hooks.onSuccess, fn)
	}
}

// WithOnFailure adds a hook called after the pipeline fails.
// Multiple hooks are called in order.
func WithOnFailure(fn OnFailureFunc) Option {
	return func(o *options) {
		o.hooks.onFailure = append(o.hooks.onFailure, fn)
	}
}

// WithOnNoHandler adds a hook called when no handler is registered for the
// pair. Multiple hooks are called in order.
func WithOnNoHandler(fn OnNoHandlerFunc) Option {
	return func(o *options) {
		o.hooks.onNoHandler = append(o.hooks.onNoHandler, fn)
	}
}

// WithOnChainResolved adds a hook called when a pair's behavior chain is
// first resolved.
func WithOnChainResolved(fn OnChainResolvedFunc) Option {
	return func(o *options) {
		o.hooks.onChainResolved = append(o.hooks.onChainResolved, fn)
	}
}

func (h *hooks) callOnDispatch(ctx context.Context, pair Pair) context.Context {
	for _, fn := range h.onDispatch {
		ctx = fn(ctx, pair)
	}
	return ctx
}

func (h *hooks) callOnSuccess(ctx context.Context, pair Pair, d time.Duration) {
	for _, fn := range h.onSuccess {
		fn(ctx, pair, d)
	}
}

func (h *hooks) callOnFailure(ctx context.Context, pair Pair, err error, d time.Duration) {
	for _, fn := range h.onFailure {
		fn(ctx, pair, err, d)
	}
}

func (h *hooks) callOnNoHandler(ctx context.Context, pair Pair) {
	for _, fn := range h.onNoHandler {
		fn(ctx, pair)
	}
}

func (h *hooks) callOnChainResolved(pair Pair, n int) {
	for _, fn := range h.onChainResolved {
		fn(pair, n)
	}
}
