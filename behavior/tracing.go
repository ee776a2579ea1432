package behavior

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bjaus/mediator"
)

// Tracing returns a behavior that wraps each dispatch in a span using the
// global TracerProvider.
//
// The span is named "mediator.dispatch" and carries mediator.request,
// mediator.response and mediator.status. An error is recorded on the span
// and sets its status to codes.Error.
func Tracing() mediator.Behavior[any, any] {
	return TracingWithTracer(otel.Tracer(scopeName))
}

// TracingWithTracer returns the tracing behavior using tracer.
func TracingWithTracer(tracer trace.Tracer) mediator.Behavior[any, any] {
	return mediator.BehaviorFunc[any, any](func(ctx context.Context, req any, next mediator.Next[any]) (any, error) {
		request, response := names(ctx, req)
		ctx, span := tracer.Start(ctx, "mediator.dispatch",
			trace.WithAttributes(
				attribute.String("mediator.request", request),
				attribute.String("mediator.response", response),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		if id, ok := DispatchID(ctx); ok {
			span.SetAttributes(attribute.String("mediator.dispatch_id", id))
		}

		resp, err := next(ctx)
		st := status(resp, err)
		span.SetAttributes(attribute.String("mediator.status", st))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return resp, err
	})
}
