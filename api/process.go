package api

import (
	"context"

	"github.com/bjaus/mediator"
)

// Processor sends API requests through a Mediator and maps their outcome.
type Processor struct {
	mediator *mediator.Mediator
	mapper   *Mapper
}

// NewProcessor creates a Processor. A nil mapper means NewMapper().
func NewProcessor(m *mediator.Mediator, mapper *Mapper) *Processor {
	if mapper == nil {
		mapper = NewMapper()
	}
	return &Processor{mediator: m, mapper: mapper}
}

// Process dispatches req and maps the Result. Dispatch errors are returned
// unchanged; they are not turned into problems.
//
// Example:
//
//	resp, err := p.Process(ctx, &GetUser{ID: id})
//	if err != nil {
//	    return err // wiring defect or handler error
//	}
//	contentType, body, err := api.Encode(resp)
func (p *Processor) Process(ctx context.Context, req mediator.Request[Result]) (Response, error) {
	r, err := mediator.Send(ctx, p.mediator, req)
	if err != nil {
		return Response{}, err
	}
	return p.mapper.Map(ctx, r)
}
