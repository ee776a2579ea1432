package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Pair identifies a request type and the response type it declares.
type Pair struct {
	Request  reflect.Type
	Response reflect.Type
}

// PairOf returns the pair for request type Q and response type R.
func PairOf[Q Request[R], R any]() Pair {
	return Pair{Request: reflect.TypeFor[Q](), Response: reflect.TypeFor[R]()}
}

// RequestName returns the request type name without package or pointer.
func (p Pair) RequestName() string { return typeName(p.Request) }

// ResponseName returns the response type name without package or pointer.
func (p Pair) ResponseName() string { return typeName(p.Response) }

func (p Pair) String() string {
	return fmt.Sprintf("%s -> %s", p.Request, p.Response)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// Lifetime controls how often a registered factory is called.
type Lifetime int

const (
	// Transient calls the factory once per dispatch.
	Transient Lifetime = iota
	// Singleton calls the factory once, on first use, and shares the instance.
	Singleton
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return fmt.Sprintf("Lifetime(%d)", int(l))
	}
}

// provider resolves an instance according to its lifetime.
type provider[T any] struct {
	lifetime Lifetime
	factory  func() T

	once     sync.Once
	instance T
}

func newProvider[T any](lifetime Lifetime, factory func() T) *provider[T] {
	return &provider[T]{lifetime: lifetime, factory: factory}
}

func (p *provider[T]) get() T {
	if p.lifetime != Singleton {
		return p.factory()
	}
	p.once.Do(func() {
		p.instance = p.factory()
	})
	return p.instance
}

// invoker calls the handler registered for one pair. It is stored as any in
// the registry and asserted back with the response type known at Send.
type invoker[R any] interface {
	invoke(ctx context.Context, req Request[R]) (R, error)
}

type handlerEntry[Q Request[R], R any] struct {
	pair     Pair
	provider *provider[Handler[Q, R]]
}

func (e *handlerEntry[Q, R]) invoke(ctx context.Context, req Request[R]) (R, error) {
	h := e.provider.get()
	if isNil(h) {
		var zero R
		return zero, fmt.Errorf("%w: factory for %s returned nil", ErrNilHandler, e.pair)
	}
	return h.Handle(ctx, req.(Q))
}

// link is a behavior with its types erased so behaviors registered against
// different constraints can share one chain.
type link func(ctx context.Context, req any, next func(context.Context) (any, error)) (any, error)

type behaviorEntry struct {
	request  reflect.Type
	response reflect.Type
	lifetime Lifetime
	resolve  func() (link, error)
}

// applies reports whether the behavior's constraint covers the pair.
func (e *behaviorEntry) applies(p Pair) bool {
	return p.Request.AssignableTo(e.request) && p.Response.AssignableTo(e.response)
}

// Builder collects handler and behavior registrations. Registration order of
// behaviors is execution order: the first behavior added is the outermost.
//
// A Builder is not safe for concurrent use. Build freezes a copy of the
// registrations; later calls on the Builder do not affect built mediators.
type Builder struct {
	opts      []Option
	handlers  map[Pair]any
	behaviors []*behaviorEntry
	errs      []error
}

// NewBuilder creates a Builder. The options are applied to every Mediator it
// builds.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		opts:     opts,
		handlers: make(map[Pair]any),
	}
}

// Register adds the handler for the pair (Q, R). The instance is shared by
// every dispatch.
//
// This is a package-level function (not a method) due to Go generics limitations:
// methods cannot have type parameters independent of the receiver.
//
// Example:
//
//	mediator.Register(b, &GetUserHandler{db: db})
func Register[Q Request[R], R any](b *Builder, h Handler[Q, R]) {
	if isNil(h) {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrNilHandler, PairOf[Q, R]()))
		return
	}
	RegisterFactory(b, Singleton, func() Handler[Q, R] { return h })
}

// RegisterFunc is a convenience function for registering a handler function.
//
// Example:
//
//	mediator.RegisterFunc(b, func(ctx context.Context, q *Ping) (string, error) {
//	    return "pong", nil
//	})
func RegisterFunc[Q Request[R], R any](b *Builder, fn func(ctx context.Context, req Q) (R, error)) {
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrNilHandler, PairOf[Q, R]()))
		return
	}
	Register[Q, R](b, HandlerFunc[Q, R](fn))
}

// RegisterFactory adds the handler for the pair (Q, R), created by factory
// according to lifetime. Only one handler may be registered per pair.
func RegisterFactory[Q Request[R], R any](b *Builder, lifetime Lifetime, factory func() Handler[Q, R]) {
	pair := PairOf[Q, R]()
	if factory == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrNilHandler, pair))
		return
	}
	if _, exists := b.handlers[pair]; exists {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrDuplicateHandler, pair))
		return
	}
	b.handlers[pair] = &handlerEntry[Q, R]{
		pair:     pair,
		provider: newProvider(lifetime, factory),
	}
}

// AddBehavior appends a behavior shared by every dispatch it applies to.
//
// Example:
//
//	mediator.AddBehavior(b, behavior.Logging(logger))   // every pair
//	mediator.AddBehavior(b, validation.NewBehavior(set)) // pairs answering api.Result
func AddBehavior[Q, R any](b *Builder, bh Behavior[Q, R]) {
	if isNil(bh) {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrNilBehavior, reflect.TypeFor[Behavior[Q, R]]()))
		return
	}
	AddBehaviorFactory(b, Singleton, func() Behavior[Q, R] { return bh })
}

// AddBehaviorFunc is a convenience function for registering a behavior function.
func AddBehaviorFunc[Q, R any](b *Builder, fn func(ctx context.Context, req Q, next Next[R]) (R, error)) {
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrNilBehavior, reflect.TypeFor[Behavior[Q, R]]()))
		return
	}
	AddBehavior[Q, R](b, BehaviorFunc[Q, R](fn))
}

// AddBehaviorFactory appends a behavior created by factory according to
// lifetime.
func AddBehaviorFactory[Q, R any](b *Builder, lifetime Lifetime, factory func() Behavior[Q, R]) {
	if factory == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrNilBehavior, reflect.TypeFor[Behavior[Q, R]]()))
		return
	}
	p := newProvider(lifetime, factory)
	b.behaviors = append(b.behaviors, &behaviorEntry{
		request:  reflect.TypeFor[Q](),
		response: reflect.TypeFor[R](),
		lifetime: lifetime,
		resolve: func() (link, error) {
			bh := p.get()
			if isNil(bh) {
				return nil, fmt.Errorf("%w: factory for %s returned nil", ErrNilBehavior, reflect.TypeFor[Behavior[Q, R]]())
			}
			return erase(bh), nil
		},
	})
}

// erase adapts a typed behavior to a link. The request assertion holds because
// the chain only contains behaviors whose constraint covers the pair. An inner
// behavior may still answer with a value that is not an R.
func erase[Q, R any](bh Behavior[Q, R]) link {
	return func(ctx context.Context, req any, next func(context.Context) (any, error)) (any, error) {
		return bh.Handle(ctx, req.(Q), func(ctx context.Context) (R, error) {
			var zero R
			v, err := next(ctx)
			if v == nil {
				return zero, err
			}
			r, ok := v.(R)
			if !ok {
				pair, _ := PairFromContext(ctx)
				return zero, fmt.Errorf("%w: got %T for %s", ErrResponseType, v, pair)
			}
			return r, err
		})
	}
}

// Build validates the registrations and returns a Mediator. Every
// registration error is reported, joined.
func (b *Builder) Build() (*Mediator, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	handlers := make(map[Pair]any, len(b.handlers))
	for pair, h := range b.handlers {
		handlers[pair] = h
	}
	behaviors := make([]*behaviorEntry, len(b.behaviors))
	copy(behaviors, b.behaviors)

	return newMediator(handlers, behaviors, b.opts...), nil
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
