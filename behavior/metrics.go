package behavior

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bjaus/mediator"
)

// scopeName is the instrumentation scope name for mediator telemetry.
const scopeName = "github.com/bjaus/mediator"

// Metrics returns a behavior that records per-dispatch metrics using the
// global OTel MeterProvider. Without a configured provider the instruments
// are noops.
//
// Instruments:
//   - mediator.dispatch.duration (Float64Histogram): dispatch time in
//     seconds, with attributes request, response and status
//   - mediator.dispatch.count (Int64Counter): total dispatches, with the
//     same attributes
func Metrics() mediator.Behavior[any, any] {
	return MetricsWithMeter(otel.Meter(scopeName))
}

// MetricsWithMeter returns the metrics behavior using meter.
func MetricsWithMeter(meter metric.Meter) mediator.Behavior[any, any] {
	// The API returns noop instruments alongside any error.
	duration, _ := meter.Float64Histogram(
		"mediator.dispatch.duration",
		metric.WithDescription("Duration of request dispatch in seconds"),
		metric.WithUnit("s"),
	)
	count, _ := meter.Int64Counter(
		"mediator.dispatch.count",
		metric.WithDescription("Total number of request dispatches"),
		metric.WithUnit("{dispatch}"),
	)

	return mediator.BehaviorFunc[any, any](func(ctx context.Context, req any, next mediator.Next[any]) (any, error) {
		start := time.Now()
		resp, err := next(ctx)
		elapsed := time.Since(start).Seconds()

		request, response := names(ctx, req)
		attrs := metric.WithAttributes(
			attribute.String("request", request),
			attribute.String("response", response),
			attribute.String("status", status(resp, err)),
		)
		duration.Record(ctx, elapsed, attrs)
		count.Add(ctx, 1, attrs)

		return resp, err
	})
}
