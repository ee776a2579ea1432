// Package validation validates API requests before their handlers run and
// maps the resulting field names for clients.
//
// Validators are collected in a Set, keyed by request type. NewBehavior
// wraps a Set as a mediator behavior for every request answering
// api.Result: it runs the validators matching the request concurrently and,
// when any report failures, answers with an api.BadRequest problem instead
// of calling the handler.
//
//	set := validation.NewSet()
//	validation.Add(set, validation.Struct[*CreateUser]())
//	mediator.AddBehavior(b, validation.NewBehavior(set))
//
// A FailureMapper renames fields in those problems through a PropertyMapper
// bound to the request context, so internal names do not leak:
//
//	fm := validation.NewFailureMapper(
//	    validation.WithMapper("users", validation.MapFieldsOf[CreateUser](validation.NewPropertyMap())),
//	)
//	p := api.NewProcessor(m, api.NewMapper(api.WithErrorsMapper(fm)))
//	resp, err := p.Process(validation.WithPropertyMapper(ctx, "users"), req)
package validation

import (
	"context"
	"reflect"

	"golang.org/x/sync/errgroup"

	"github.com/bjaus/mediator/api"
)

// Validator checks a request and reports field failures. A returned error
// means validation could not run, not that the request is invalid.
type Validator[Q any] interface {
	Validate(ctx context.Context, req Q) ([]api.FieldFailure, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc[Q any] func(ctx context.Context, req Q) ([]api.FieldFailure, error)

// Validate implements Validator.
func (f ValidatorFunc[Q]) Validate(ctx context.Context, req Q) ([]api.FieldFailure, error) {
	return f(ctx, req)
}

type validatorEntry struct {
	request  reflect.Type
	validate func(ctx context.Context, req any) ([]api.FieldFailure, error)
}

// Set holds validators by request type. Add every validator before the Set
// is used.
type Set struct {
	entries []validatorEntry
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{}
}

// Add registers v for requests assignable to Q. It panics on a nil
// validator.
func Add[Q any](s *Set, v Validator[Q]) {
	if v == nil {
		panic("validation: nil validator")
	}
	s.entries = append(s.entries, validatorEntry{
		request: reflect.TypeFor[Q](),
		validate: func(ctx context.Context, req any) ([]api.FieldFailure, error) {
			return v.Validate(ctx, req.(Q))
		},
	})
}

// AddFunc registers fn for requests assignable to Q.
func AddFunc[Q any](s *Set, fn func(ctx context.Context, req Q) ([]api.FieldFailure, error)) {
	if fn == nil {
		panic("validation: nil validator")
	}
	Add[Q](s, ValidatorFunc[Q](fn))
}

// Len returns the number of registered validators.
func (s *Set) Len() int { return len(s.entries) }

func (s *Set) matching(req any) []validatorEntry {
	t := reflect.TypeOf(req)
	if t == nil {
		return nil
	}
	var out []validatorEntry
	for _, e := range s.entries {
		if t.AssignableTo(e.request) {
			out = append(out, e)
		}
	}
	return out
}

// Validate runs every validator matching req concurrently and returns their
// failures in registration order. The first validator error cancels the
// rest and is returned.
func (s *Set) Validate(ctx context.Context, req any) ([]api.FieldFailure, error) {
	entries := s.matching(req)
	if len(entries) == 0 {
		return nil, nil
	}

	results := make([][]api.FieldFailure, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range entries {
		g.Go(func() error {
			failures, err := e.validate(gctx, req)
			if err != nil {
				return err
			}
			results[i] = failures
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failures []api.FieldFailure
	for _, r := range results {
		failures = append(failures, r...)
	}
	return failures, nil
}
