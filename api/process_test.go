package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bjaus/mediator"
)

type getUser struct {
	mediator.Returns[Result]
	ID string
}

type ProcessorSuite struct {
	suite.Suite
	ctx   context.Context
	users map[string]user
}

func (s *ProcessorSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = map[string]user{"1": {ID: "1", Name: "Ada"}}
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorSuite))
}

func (s *ProcessorSuite) processor(fn func(context.Context, *getUser) (Result, error)) *Processor {
	b := mediator.NewBuilder()
	mediator.RegisterFunc(b, fn)
	m, err := b.Build()
	s.Require().NoError(err)
	return NewProcessor(m, nil)
}

func (s *ProcessorSuite) lookup(_ context.Context, q *getUser) (Result, error) {
	u, ok := s.users[q.ID]
	if !ok {
		return Fail(NotFound("user not found")), nil
	}
	return Succeed(Ok{Value: u}), nil
}

func (s *ProcessorSuite) TestSuccess() {
	p := s.processor(s.lookup)

	resp, err := p.Process(s.ctx, &getUser{ID: "1"})

	s.Require().NoError(err)
	s.Assert().Equal(200, resp.Status)
	s.Assert().Equal(user{ID: "1", Name: "Ada"}, resp.Body)
}

func (s *ProcessorSuite) TestProblem() {
	p := s.processor(s.lookup)

	resp, err := p.Process(s.ctx, &getUser{ID: "2"})

	s.Require().NoError(err)
	s.Assert().Equal(KindProblem, resp.Kind)
	s.Assert().Equal(404, resp.Status)
}

func (s *ProcessorSuite) TestHandlerErrorReturnedUnchanged() {
	boom := errors.New("db down")
	p := s.processor(func(context.Context, *getUser) (Result, error) {
		return Result{}, boom
	})

	_, err := p.Process(s.ctx, &getUser{ID: "1"})

	s.Assert().ErrorIs(err, boom)
}

func (s *ProcessorSuite) TestNoHandler() {
	m, err := mediator.NewBuilder().Build()
	s.Require().NoError(err)

	_, err = NewProcessor(m, nil).Process(s.ctx, &getUser{ID: "1"})

	s.Assert().ErrorIs(err, mediator.ErrNoHandler)
}

func (s *ProcessorSuite) TestCustomMapper() {
	mapper := NewMapper(WithErrorsMapper(ErrorsMapperFunc(func(_ context.Context, errs ValidationErrors) (ValidationErrors, error) {
		return ValidationErrors{"id": errs["ID"]}, nil
	})))
	b := mediator.NewBuilder()
	mediator.RegisterFunc(b, func(context.Context, *getUser) (Result, error) {
		return Fail(BadRequest("invalid", []FieldFailure{{Field: "ID", Message: "required"}})), nil
	})
	m, err := b.Build()
	s.Require().NoError(err)

	resp, err := NewProcessor(m, mapper).Process(s.ctx, &getUser{})

	s.Require().NoError(err)
	s.Assert().Equal(ValidationErrors{"id": {"required"}}, resp.Problem.Extensions[ErrorsKey])
}
