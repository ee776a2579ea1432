package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/bjaus/mediator/api"
)

var (
	// ErrPropertyMapperNotFound is returned when the bound property mapper
	// was never registered with the FailureMapper.
	ErrPropertyMapperNotFound = errors.New("property mapper not found")

	// ErrInvalidBinding is returned when the context binds a blank mapper
	// name.
	ErrInvalidBinding = errors.New("invalid property mapper binding")
)

type bindingKey struct{}

// WithPropertyMapper binds the named property mapper to ctx. A
// FailureMapper uses the binding to pick the mapper for the validation
// errors produced under ctx, typically one per endpoint.
func WithPropertyMapper(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, bindingKey{}, name)
}

// PropertyMapperFrom returns the mapper name bound to ctx.
func PropertyMapperFrom(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(bindingKey{}).(string)
	return name, ok
}

// FailureMapper rewrites validation errors with the property mapper bound to
// the context. It implements api.ErrorsMapper.
type FailureMapper struct {
	mappers map[string]PropertyMapper
	logger  *slog.Logger
}

// FailureMapperOption configures a FailureMapper.
type FailureMapperOption func(*FailureMapper)

// WithMapper registers m under name. A later registration for the same
// name replaces the earlier one.
func WithMapper(name string, m PropertyMapper) FailureMapperOption {
	return func(f *FailureMapper) {
		f.mappers[name] = m
	}
}

// WithLogger sets the logger used for the missing binding warning.
func WithLogger(logger *slog.Logger) FailureMapperOption {
	return func(f *FailureMapper) {
		f.logger = logger
	}
}

// NewFailureMapper creates a FailureMapper.
func NewFailureMapper(opts ...FailureMapperOption) *FailureMapper {
	f := &FailureMapper{
		mappers: make(map[string]PropertyMapper),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// MapErrors renames the fields of errs and rewrites each message, replacing
// the original field name where it appears as a whole word, ignoring case.
// Fields that map to the same public name are merged without losing
// messages. Source fields are taken in sorted order and later messages are
// appended after earlier ones.
//
// When ctx binds no mapper the errors are returned unchanged and a warning
// is logged. A binding to an unregistered mapper is a configuration error.
func (f *FailureMapper) MapErrors(ctx context.Context, errs api.ValidationErrors) (api.ValidationErrors, error) {
	name, ok := PropertyMapperFrom(ctx)
	if !ok {
		f.logger.WarnContext(ctx, "no property mapper bound, validation errors are not mapped",
			slog.Int("fields", len(errs)),
		)
		return errs, nil
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidBinding
	}
	mapper, ok := f.mappers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPropertyMapperNotFound, name)
	}
	return mapFailures(errs, mapper), nil
}

func mapFailures(errs api.ValidationErrors, mapper PropertyMapper) api.ValidationErrors {
	out := make(api.ValidationErrors, len(errs))
	keys := make(map[string]string, len(errs))

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		to := mapper.MapProperty(field)
		messages := rewrite(errs[field], field, to)

		fold := strings.ToLower(to)
		if existing, ok := keys[fold]; ok {
			out[existing] = append(out[existing], messages...)
			continue
		}
		keys[fold] = to
		out[to] = messages
	}
	return out
}

func rewrite(messages []string, from, to string) []string {
	out := make([]string, len(messages))
	if from == "" {
		copy(out, messages)
		return out
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(from) + `\b`)
	for i, msg := range messages {
		out[i] = re.ReplaceAllLiteralString(msg, to)
	}
	return out
}
