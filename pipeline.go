package mediator

import (
	"context"
	"fmt"
)

// chain is the resolved shape of the pipeline for one pair: the behaviors
// that apply to it, in registration order. It holds no per-call state.
type chain struct {
	pair      Pair
	behaviors []*behaviorEntry
}

func resolveChain(pair Pair, registered []*behaviorEntry) *chain {
	c := &chain{pair: pair}
	for _, b := range registered {
		if b.applies(pair) {
			c.behaviors = append(c.behaviors, b)
		}
	}
	return c
}

// links resolves the behavior instances for one dispatch.
func (c *chain) links() ([]link, error) {
	if len(c.behaviors) == 0 {
		return nil, nil
	}
	links := make([]link, len(c.behaviors))
	for i, b := range c.behaviors {
		l, err := b.resolve()
		if err != nil {
			return nil, err
		}
		links[i] = l
	}
	return links, nil
}

// pipeline walks a chain for one dispatch. Each continuation captures the
// index of the step it starts, so calling it twice re-runs the rest.
type pipeline[R any] struct {
	req     Request[R]
	links   []link
	handler invoker[R]
}

func (p *pipeline[R]) next(i int) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return p.call(ctx, i)
	}
}

func (p *pipeline[R]) call(ctx context.Context, i int) (any, error) {
	if i >= len(p.links) {
		return p.handler.invoke(ctx, p.req)
	}
	return p.links[i](ctx, p.req, p.next(i+1))
}

func execute[R any](ctx context.Context, c *chain, req Request[R], h invoker[R]) (R, error) {
	var zero R

	links, err := c.links()
	if err != nil {
		return zero, err
	}

	p := &pipeline[R]{req: req, links: links, handler: h}
	v, err := p.call(ctx, 0)
	if v == nil {
		return zero, err
	}
	r, ok := v.(R)
	if !ok {
		return zero, fmt.Errorf("%w: got %T for %s", ErrResponseType, v, c.pair)
	}
	return r, err
}
