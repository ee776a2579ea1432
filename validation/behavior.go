package validation

import (
	"context"
	"fmt"
	"reflect"

	"github.com/bjaus/mediator"
	"github.com/bjaus/mediator/api"
)

// NewBehavior returns a behavior for every request answering api.Result.
// It validates the request with set and answers with an api.BadRequest
// problem when there are failures; otherwise it calls next. Validator
// errors are returned unchanged.
func NewBehavior(set *Set) mediator.Behavior[any, api.Result] {
	return mediator.BehaviorFunc[any, api.Result](func(ctx context.Context, req any, next mediator.Next[api.Result]) (api.Result, error) {
		failures, err := set.Validate(ctx, req)
		if err != nil {
			return api.Result{}, err
		}
		if len(failures) == 0 {
			return next(ctx)
		}
		msg := fmt.Sprintf("Validation failed for request of type '%s'.", requestName(ctx, req))
		return api.Fail(api.BadRequest(msg, failures)), nil
	})
}

func requestName(ctx context.Context, req any) string {
	if pair, ok := mediator.PairFromContext(ctx); ok {
		return pair.RequestName()
	}
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
