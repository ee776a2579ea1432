package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bjaus/mediator/api"
)

// StructOption configures a Struct validator.
type StructOption func(*structConfig)

type structConfig struct {
	validate *validator.Validate
}

// WithValidator sets the go-playground validator instance, e.g. one with
// custom rules registered.
func WithValidator(v *validator.Validate) StructOption {
	return func(c *structConfig) {
		c.validate = v
	}
}

// Struct returns a Validator that checks the `validate` struct tags of Q.
// Each failed rule becomes a failure keyed by the field path below the
// request, such as "Address.Street". Requests that are not structs have
// nothing to check.
func Struct[Q any](opts ...StructOption) Validator[Q] {
	c := &structConfig{}
	for _, opt := range opts {
		opt(c)
	}
	if c.validate == nil {
		c.validate = validator.New()
	}
	return ValidatorFunc[Q](func(ctx context.Context, req Q) ([]api.FieldFailure, error) {
		return validateStruct(ctx, c.validate, req)
	})
}

func validateStruct(ctx context.Context, v *validator.Validate, req any) ([]api.FieldFailure, error) {
	err := v.StructCtx(ctx, req)
	if err == nil {
		return nil, nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("validate struct: %w", err)
	}

	failures := make([]api.FieldFailure, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fieldPath(fe.StructNamespace())
		failures = append(failures, api.FieldFailure{
			Field:   field,
			Message: fmt.Sprintf("'%s' failed validation: %s", field, rule(fe)),
		})
	}
	return failures, nil
}

// fieldPath drops the root type name from a struct namespace.
func fieldPath(ns string) string {
	_, path, ok := strings.Cut(ns, ".")
	if !ok {
		return ns
	}
	return path
}

func rule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
