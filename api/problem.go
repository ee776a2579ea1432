package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bjaus/mediator/result"
)

// ErrStatusOutOfRange is returned when a problem status is outside [400, 599].
var ErrStatusOutOfRange = errors.New("problem status out of range")

const (
	minProblemStatus = 400
	maxProblemStatus = 599
)

// ProblemDetails is the failure side of a Result: a message, a status in
// [400, 599], optional RFC 9457 members and extensions.
//
// ProblemDetails is immutable; build it with NewProblemDetails or one of the
// fixed-status constructors.
type ProblemDetails struct {
	base       result.Error
	status     int
	typ        string
	title      string
	detail     string
	instance   string
	extensions Extensions
}

// ProblemOption sets an optional member of a ProblemDetails.
type ProblemOption func(*problemBuilder)

type problemBuilder struct {
	typ      string
	title    string
	detail   string
	instance string
	ext      *ExtensionsBuilder
	err      error
}

// WithType sets the problem type URI reference.
func WithType(t string) ProblemOption {
	return func(b *problemBuilder) { b.typ = t }
}

// WithTitle sets the short, human-readable summary.
func WithTitle(title string) ProblemOption {
	return func(b *problemBuilder) { b.title = title }
}

// WithDetail sets the occurrence-specific explanation.
func WithDetail(detail string) ProblemOption {
	return func(b *problemBuilder) { b.detail = detail }
}

// WithInstance sets the URI reference identifying the occurrence.
func WithInstance(instance string) ProblemOption {
	return func(b *problemBuilder) { b.instance = instance }
}

// WithExtension adds an extension member. A key already present, in any
// case, makes construction fail with ErrDuplicateExtension.
func WithExtension(key string, value any) ProblemOption {
	return func(b *problemBuilder) {
		if b.err != nil {
			return
		}
		b.err = b.ext.Add(key, value)
	}
}

// NewProblemDetails returns a problem with message and status.
//
// It fails with result.ErrEmptyMessage for a blank message,
// ErrStatusOutOfRange for a status outside [400, 599] and
// ErrDuplicateExtension when options add a key twice.
func NewProblemDetails(message string, status int, opts ...ProblemOption) (*ProblemDetails, error) {
	base, err := result.NewError(message)
	if err != nil {
		return nil, err
	}
	if status < minProblemStatus || status > maxProblemStatus {
		return nil, fmt.Errorf("%w: %d", ErrStatusOutOfRange, status)
	}

	b := &problemBuilder{ext: NewExtensionsBuilder()}
	for _, opt := range opts {
		opt(b)
	}
	if b.err != nil {
		return nil, b.err
	}

	return &ProblemDetails{
		base:       base,
		status:     status,
		typ:        b.typ,
		title:      b.title,
		detail:     b.detail,
		instance:   b.instance,
		extensions: b.ext.Build(),
	}, nil
}

// MustProblemDetails is like NewProblemDetails but panics on error.
func MustProblemDetails(message string, status int, opts ...ProblemOption) *ProblemDetails {
	p, err := NewProblemDetails(message, status, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// InternalServerError returns a 500 problem. It panics on a blank message.
func InternalServerError(message string, opts ...ProblemOption) *ProblemDetails {
	return MustProblemDetails(message, 500, opts...)
}

// NotFound returns a 404 problem. It panics on a blank message.
func NotFound(message string, opts ...ProblemOption) *ProblemDetails {
	return MustProblemDetails(message, 404, opts...)
}

// Unauthorized returns a 401 problem. It panics on a blank message.
func Unauthorized(message string, opts ...ProblemOption) *ProblemDetails {
	return MustProblemDetails(message, 401, opts...)
}

// Forbidden returns a 403 problem. It panics on a blank message.
func Forbidden(message string, opts ...ProblemOption) *ProblemDetails {
	return MustProblemDetails(message, 403, opts...)
}

// Conflict returns a 409 problem. It panics on a blank message.
func Conflict(message string, opts ...ProblemOption) *ProblemDetails {
	return MustProblemDetails(message, 409, opts...)
}

// BadRequest returns a 400 problem whose ErrorsKey extension holds failures
// grouped by field, messages kept in order.
//
// It panics on a blank message or when options also add ErrorsKey.
func BadRequest(message string, failures []FieldFailure, opts ...ProblemOption) *ProblemDetails {
	opts = append([]ProblemOption{WithExtension(ErrorsKey, GroupFailures(failures))}, opts...)
	return MustProblemDetails(message, 400, opts...)
}

// Message returns the problem message.
func (p *ProblemDetails) Message() string { return p.base.Message() }

func (p *ProblemDetails) Error() string { return p.base.Error() }

// Status returns the status code.
func (p *ProblemDetails) Status() int { return p.status }

// Type returns the problem type URI reference.
func (p *ProblemDetails) Type() string { return p.typ }

// Title returns the problem title.
func (p *ProblemDetails) Title() string { return p.title }

// Detail returns the problem detail.
func (p *ProblemDetails) Detail() string { return p.detail }

// Instance returns the problem instance.
func (p *ProblemDetails) Instance() string { return p.instance }

// Extensions returns the extension members.
func (p *ProblemDetails) Extensions() Extensions { return p.extensions }

// ValidationErrors returns a copy of the ErrorsKey extension when it holds
// ValidationErrors.
func (p *ProblemDetails) ValidationErrors() (ValidationErrors, bool) {
	v, ok := p.extensions.Get(ErrorsKey)
	if !ok {
		return nil, false
	}
	errs, ok := v.(ValidationErrors)
	if !ok {
		return nil, false
	}
	return errs.Clone(), true
}

// DetailedMessage describes the problem with its status and members.
func (p *ProblemDetails) DetailedMessage() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d: %s", p.status, p.Message())
	if p.title != "" {
		fmt.Fprintf(&sb, " (title: %s)", p.title)
	}
	if p.detail != "" {
		fmt.Fprintf(&sb, " (detail: %s)", p.detail)
	}
	if errs, ok := p.ValidationErrors(); ok {
		for _, field := range errs.Fields() {
			fmt.Fprintf(&sb, "\n  %s: %s", field, strings.Join(errs[field], "; "))
		}
	}
	return sb.String()
}
