package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bjaus/mediator/result"
)

var (
	// ErrUnhandledResult is returned when a Success variant has no mapping.
	// It is a programming error: a variant was added without updating Map.
	ErrUnhandledResult = errors.New("unhandled result type")

	// ErrEmptyResult is returned when mapping a zero Result.
	ErrEmptyResult = errors.New("result holds neither success nor problem")
)

// UnhandledResultError reports the Success value that had no mapping.
type UnhandledResultError struct {
	Success Success
}

func (e *UnhandledResultError) Error() string {
	return fmt.Sprintf("unhandled success result type '%T'", e.Success)
}

func (e *UnhandledResultError) Unwrap() error { return ErrUnhandledResult }

// Kind classifies a Response.
type Kind int

const (
	KindOk Kind = iota + 1
	KindCreated
	KindAccepted
	KindNoContent
	KindProblem
)

func (k Kind) String() string {
	switch k {
	case KindOk:
		return "ok"
	case KindCreated:
		return "created"
	case KindAccepted:
		return "accepted"
	case KindNoContent:
		return "no_content"
	case KindProblem:
		return "problem"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Response is the transport-neutral form of a Result. A transport layer
// writes Status, sets Location when present, and serializes Body or Problem.
type Response struct {
	Kind     Kind
	Status   int
	Body     any
	Location string
	Problem  *Problem
}

// Problem is the RFC 9457 payload of a problem Response.
type Problem struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]any
}

// ErrorsMapper rewrites the ErrorsKey extension before it leaves the
// process, e.g. to hide internal field names.
type ErrorsMapper interface {
	MapErrors(ctx context.Context, errs ValidationErrors) (ValidationErrors, error)
}

// ErrorsMapperFunc is a function adapter for ErrorsMapper.
type ErrorsMapperFunc func(ctx context.Context, errs ValidationErrors) (ValidationErrors, error)

// MapErrors implements the ErrorsMapper interface.
func (f ErrorsMapperFunc) MapErrors(ctx context.Context, errs ValidationErrors) (ValidationErrors, error) {
	return f(ctx, errs)
}

// Mapper converts a Result into a Response.
type Mapper struct {
	errors ErrorsMapper
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithErrorsMapper sets the mapper applied to the ErrorsKey extension of
// problems. Other extensions are never touched.
func WithErrorsMapper(m ErrorsMapper) MapperOption {
	return func(mp *Mapper) {
		mp.errors = m
	}
}

// NewMapper creates a Mapper.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map converts r into a Response.
//
// Success variants map to 200, 201, 202 and 204. An unknown Success
// variant fails with *UnhandledResultError. A problem maps to its status
// with its members and extensions; a missing title defaults to the status
// text.
func (m *Mapper) Map(ctx context.Context, r Result) (Response, error) {
	if !r.IsSuccess() && !r.IsError() {
		return Response{}, ErrEmptyResult
	}
	return result.MatchContext(ctx, r, m.mapSuccess, m.mapProblem)
}

func (m *Mapper) mapSuccess(_ context.Context, s Success) (Response, error) {
	switch v := s.(type) {
	case Ok:
		return Response{Kind: KindOk, Status: http.StatusOK, Body: v.Value}, nil
	case *Ok:
		return Response{Kind: KindOk, Status: http.StatusOK, Body: v.Value}, nil
	case Created:
		return Response{Kind: KindCreated, Status: http.StatusCreated, Body: v.Value, Location: location(v.Location)}, nil
	case *Created:
		return Response{Kind: KindCreated, Status: http.StatusCreated, Body: v.Value, Location: location(v.Location)}, nil
	case Accepted:
		return Response{Kind: KindAccepted, Status: http.StatusAccepted, Body: v.Value, Location: location(v.Location)}, nil
	case *Accepted:
		return Response{Kind: KindAccepted, Status: http.StatusAccepted, Body: v.Value, Location: location(v.Location)}, nil
	case NoContent, *NoContent:
		return Response{Kind: KindNoContent, Status: http.StatusNoContent}, nil
	default:
		return Response{}, &UnhandledResultError{Success: s}
	}
}

func (m *Mapper) mapProblem(ctx context.Context, p *ProblemDetails) (Response, error) {
	extensions, err := m.mapExtensions(ctx, p.Extensions())
	if err != nil {
		return Response{}, err
	}

	title := p.Title()
	if title == "" {
		title = http.StatusText(p.Status())
	}

	return Response{
		Kind:   KindProblem,
		Status: p.Status(),
		Problem: &Problem{
			Type:       p.Type(),
			Title:      title,
			Status:     p.Status(),
			Detail:     p.Detail(),
			Instance:   p.Instance(),
			Extensions: extensions,
		},
	}, nil
}

func (m *Mapper) mapExtensions(ctx context.Context, ext Extensions) (map[string]any, error) {
	if m.errors == nil {
		return ext.Map(), nil
	}
	v, ok := ext.Get(ErrorsKey)
	if !ok {
		return ext.Map(), nil
	}
	errs, ok := v.(ValidationErrors)
	if !ok {
		return ext.Map(), nil
	}

	mapped, err := m.errors.MapErrors(ctx, errs.Clone())
	if err != nil {
		return nil, fmt.Errorf("map validation errors: %w", err)
	}

	out := ext.Without(ErrorsKey).Map()
	out[ErrorsKey] = mapped
	return out, nil
}

func location(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}
