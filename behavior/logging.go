package behavior

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bjaus/mediator"
)

type dispatchIDKey struct{}

// WithDispatchID sets the correlation id used by Logging. Use it to carry an
// id that already exists, such as a request id from the transport.
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey{}, id)
}

// DispatchID returns the correlation id of the current dispatch.
func DispatchID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(dispatchIDKey{}).(string)
	return id, ok && id != ""
}

// Logging returns a behavior that logs the start and end of every dispatch.
// Each dispatch gets a random correlation id unless ctx already carries one;
// inner behaviors and the handler can read it with DispatchID.
//
// Start and success are logged at debug level, failures at warn level and
// errors at error level. A nil logger means slog.Default().
func Logging(logger *slog.Logger) mediator.Behavior[any, any] {
	if logger == nil {
		logger = slog.Default()
	}
	return mediator.BehaviorFunc[any, any](func(ctx context.Context, req any, next mediator.Next[any]) (any, error) {
		id, ok := DispatchID(ctx)
		if !ok {
			id = uuid.NewString()
			ctx = WithDispatchID(ctx, id)
		}
		request, response := names(ctx, req)
		log := logger.With(
			slog.String("dispatch_id", id),
			slog.String("request", request),
			slog.String("response", response),
		)

		log.DebugContext(ctx, "dispatch started")
		start := time.Now()
		resp, err := next(ctx)
		elapsed := slog.Duration("duration", time.Since(start))

		switch status(resp, err) {
		case StatusError:
			log.ErrorContext(ctx, "dispatch failed", elapsed, slog.String("error", err.Error()))
		case StatusFailure:
			log.WarnContext(ctx, "dispatch returned a failure", elapsed)
		default:
			log.DebugContext(ctx, "dispatch completed", elapsed)
		}
		return resp, err
	})
}
