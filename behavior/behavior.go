// Package behavior provides ready-made mediator behaviors for logging,
// OpenTelemetry metrics and tracing, and Prometheus measurement.
//
// Every behavior here is a Behavior[any, any] and so applies to every
// request. Register them on a Builder in the order they should wrap the
// handler, outermost first:
//
//	b := mediator.NewBuilder()
//	mediator.AddBehavior(b, behavior.Tracing())
//	mediator.AddBehavior(b, behavior.Logging(logger))
//	mediator.AddBehavior(b, behavior.Metrics())
//
// Each dispatch is reported with one of three statuses: "ok", "error" when
// the chain returned an error, and "failure" when it returned a response
// that reports itself as failed, such as an api.Result holding a problem.
package behavior

import (
	"context"
	"reflect"

	"github.com/bjaus/mediator"
)

// Dispatch statuses.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusFailure = "failure"
)

// failed is implemented by outcome types that carry a failure as data.
type failed interface {
	IsError() bool
}

func status(resp any, err error) string {
	if err != nil {
		return StatusError
	}
	if f, ok := resp.(failed); ok && f.IsError() {
		return StatusFailure
	}
	return StatusOK
}

// names returns the request and response names of the dispatch, falling
// back to the request's type when the behavior runs outside a Mediator.
func names(ctx context.Context, req any) (string, string) {
	if pair, ok := mediator.PairFromContext(ctx); ok {
		return pair.RequestName(), pair.ResponseName()
	}
	t := reflect.TypeOf(req)
	if t == nil {
		return "<nil>", "unknown"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name(), "unknown"
}
