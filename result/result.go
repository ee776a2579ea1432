// Package result provides Result, a closed two-variant outcome: exactly one
// of a success value or a failure.
package result

import (
	"context"
	"reflect"
)

type state uint8

const (
	invalid state = iota
	success
	failure
)

// Result holds either a success value of type S or a failure of type F.
//
// The zero Result holds neither and is not valid; construct results with
// Success or Failure.
type Result[S any, F error] struct {
	value S
	err   F
	state state
}

// Success returns a Result holding value. It panics if value is nil.
func Success[S any, F error](value S) Result[S, F] {
	if isNil(value) {
		panic("result: success value is nil")
	}
	return Result[S, F]{value: value, state: success}
}

// Failure returns a Result holding err. It panics if err is nil.
func Failure[S any, F error](err F) Result[S, F] {
	if isNil(err) {
		panic("result: failure is nil")
	}
	return Result[S, F]{err: err, state: failure}
}

// IsSuccess reports whether the result holds a success value.
func (r Result[S, F]) IsSuccess() bool { return r.state == success }

// IsError reports whether the result holds a failure.
func (r Result[S, F]) IsError() bool { return r.state == failure }

// Value returns the success value, or the zero S for a failure.
func (r Result[S, F]) Value() S { return r.value }

// Err returns the failure, or the zero F for a success.
func (r Result[S, F]) Err() F { return r.err }

// Switch calls exactly one of onSuccess or onError.
func (r Result[S, F]) Switch(onSuccess func(S), onError func(F)) {
	r.mustBeValid()
	if onSuccess == nil || onError == nil {
		panic("result: nil switch callback")
	}
	if r.state == success {
		onSuccess(r.value)
		return
	}
	onError(r.err)
}

// SwitchContext is the context-aware variant of Switch.
func (r Result[S, F]) SwitchContext(
	ctx context.Context,
	onSuccess func(context.Context, S) error,
	onError func(context.Context, F) error,
) error {
	r.mustBeValid()
	if onSuccess == nil || onError == nil {
		panic("result: nil switch callback")
	}
	if r.state == success {
		return onSuccess(ctx, r.value)
	}
	return onError(ctx, r.err)
}

func (r Result[S, F]) mustBeValid() {
	if r.state == invalid {
		panic("result: zero Result")
	}
}

// Match calls exactly one of onSuccess or onError and returns its result.
//
// Match is a function rather than a method because methods cannot declare
// their own type parameters.
func Match[S any, F error, T any](r Result[S, F], onSuccess func(S) T, onError func(F) T) T {
	r.mustBeValid()
	if onSuccess == nil || onError == nil {
		panic("result: nil match callback")
	}
	if r.state == success {
		return onSuccess(r.value)
	}
	return onError(r.err)
}

// MatchContext is the context-aware variant of Match.
func MatchContext[S any, F error, T any](
	ctx context.Context,
	r Result[S, F],
	onSuccess func(context.Context, S) (T, error),
	onError func(context.Context, F) (T, error),
) (T, error) {
	r.mustBeValid()
	if onSuccess == nil || onError == nil {
		panic("result: nil match callback")
	}
	if r.state == success {
		return onSuccess(ctx, r.value)
	}
	return onError(ctx, r.err)
}

// Map transforms a success value. A failure is returned unchanged.
func Map[S, U any, F error](r Result[S, F], fn func(S) U) Result[U, F] {
	r.mustBeValid()
	if r.state == failure {
		return Failure[U](r.err)
	}
	return Success[U, F](fn(r.value))
}

// Bind chains a result-returning operation onto a success value. A failure
// is returned unchanged.
func Bind[S, U any, F error](r Result[S, F], fn func(S) Result[U, F]) Result[U, F] {
	r.mustBeValid()
	if r.state == failure {
		return Failure[U](r.err)
	}
	return fn(r.value)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
