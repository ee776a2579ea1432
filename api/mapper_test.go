package api

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MapperSuite struct {
	suite.Suite
	ctx    context.Context
	mapper *Mapper
}

func (s *MapperSuite) SetupTest() {
	s.ctx = context.Background()
	s.mapper = NewMapper()
}

func TestMapperSuite(t *testing.T) {
	suite.Run(t, new(MapperSuite))
}

type user struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// overlyClever embeds a variant and so slips past the closed set.
type overlyClever struct {
	Ok
}

func (s *MapperSuite) TestOk() {
	resp, err := s.mapper.Map(s.ctx, Succeed(Ok{Value: user{ID: "1", Name: "Ada"}}))

	s.Require().NoError(err)
	s.Assert().Equal(KindOk, resp.Kind)
	s.Assert().Equal(200, resp.Status)
	s.Assert().Equal(user{ID: "1", Name: "Ada"}, resp.Body)
	s.Assert().Empty(resp.Location)
	s.Assert().Nil(resp.Problem)
}

func (s *MapperSuite) TestOkPointer() {
	resp, err := s.mapper.Map(s.ctx, Succeed(&Ok{Value: "x"}))

	s.Require().NoError(err)
	s.Assert().Equal(KindOk, resp.Kind)
	s.Assert().Equal("x", resp.Body)
}

func (s *MapperSuite) TestNoContent() {
	resp, err := s.mapper.Map(s.ctx, Succeed(NoContent{}))

	s.Require().NoError(err)
	s.Assert().Equal(KindNoContent, resp.Kind)
	s.Assert().Equal(204, resp.Status)
	s.Assert().Nil(resp.Body)
}

func (s *MapperSuite) TestCreated() {
	loc, _ := url.Parse("/users/1")

	resp, err := s.mapper.Map(s.ctx, Succeed(Created{Value: user{ID: "1"}, Location: loc}))

	s.Require().NoError(err)
	s.Assert().Equal(KindCreated, resp.Kind)
	s.Assert().Equal(201, resp.Status)
	s.Assert().Equal("/users/1", resp.Location)
	s.Assert().Equal(user{ID: "1"}, resp.Body)
}

func (s *MapperSuite) TestAccepted() {
	loc, _ := url.Parse("https://example.com/jobs/9")

	resp, err := s.mapper.Map(s.ctx, Succeed(&Accepted{Location: loc}))

	s.Require().NoError(err)
	s.Assert().Equal(KindAccepted, resp.Kind)
	s.Assert().Equal(202, resp.Status)
	s.Assert().Equal("https://example.com/jobs/9", resp.Location)
	s.Assert().Nil(resp.Body)
}

func (s *MapperSuite) TestCreatedWithoutLocation() {
	resp, err := s.mapper.Map(s.ctx, Succeed(Created{}))

	s.Require().NoError(err)
	s.Assert().Empty(resp.Location)
}

func (s *MapperSuite) TestUnhandledSuccess() {
	_, err := s.mapper.Map(s.ctx, Succeed(overlyClever{}))

	s.Require().ErrorIs(err, ErrUnhandledResult)
	var unhandled *UnhandledResultError
	s.Require().ErrorAs(err, &unhandled)
	s.Assert().Contains(err.Error(), "overlyClever")
}

func (s *MapperSuite) TestEmptyResult() {
	var r Result

	_, err := s.mapper.Map(s.ctx, r)

	s.Assert().ErrorIs(err, ErrEmptyResult)
}

func (s *MapperSuite) TestProblem() {
	p := MustProblemDetails("user 7 not found", 404,
		WithType("https://example.com/probs/not-found"),
		WithDetail("no user with id 7"),
		WithInstance("/users/7"),
		WithExtension("traceId", "t-1"),
	)

	resp, err := s.mapper.Map(s.ctx, Fail(p))

	s.Require().NoError(err)
	s.Assert().Equal(KindProblem, resp.Kind)
	s.Assert().Equal(404, resp.Status)
	s.Assert().Nil(resp.Body)
	s.Require().NotNil(resp.Problem)
	s.Assert().Equal(&Problem{
		Type:       "https://example.com/probs/not-found",
		Title:      "Not Found",
		Status:     404,
		Detail:     "no user with id 7",
		Instance:   "/users/7",
		Extensions: map[string]any{"traceId": "t-1"},
	}, resp.Problem)
}

func (s *MapperSuite) TestProblemKeepsExplicitTitle() {
	resp, err := s.mapper.Map(s.ctx, Fail(Conflict("taken", WithTitle("Name taken"))))

	s.Require().NoError(err)
	s.Assert().Equal("Name taken", resp.Problem.Title)
}

func (s *MapperSuite) TestValidationErrorsPassThroughWithoutErrorsMapper() {
	p := BadRequest("validation failed", []FieldFailure{{Field: "Name", Message: "required"}})

	resp, err := s.mapper.Map(s.ctx, Fail(p))

	s.Require().NoError(err)
	s.Assert().Equal(ValidationErrors{"Name": {"required"}}, resp.Problem.Extensions[ErrorsKey])
}

func (s *MapperSuite) TestErrorsMapperRewritesOnlyErrors() {
	var seen ValidationErrors
	mapper := NewMapper(WithErrorsMapper(ErrorsMapperFunc(func(_ context.Context, errs ValidationErrors) (ValidationErrors, error) {
		seen = errs
		return ValidationErrors{"name": errs["Name"]}, nil
	})))
	p := BadRequest("validation failed",
		[]FieldFailure{{Field: "Name", Message: "required"}},
		WithExtension("traceId", "t-1"),
	)

	resp, err := mapper.Map(s.ctx, Fail(p))

	s.Require().NoError(err)
	s.Assert().Equal(ValidationErrors{"Name": {"required"}}, seen)
	s.Assert().Equal(map[string]any{
		ErrorsKey: ValidationErrors{"name": {"required"}},
		"traceId": "t-1",
	}, resp.Problem.Extensions)

	original, _ := p.ValidationErrors()
	s.Assert().Equal(ValidationErrors{"Name": {"required"}}, original)
}

func (s *MapperSuite) TestErrorsMapperSkippedWithoutErrors() {
	called := false
	mapper := NewMapper(WithErrorsMapper(ErrorsMapperFunc(func(_ context.Context, errs ValidationErrors) (ValidationErrors, error) {
		called = true
		return errs, nil
	})))

	_, err := mapper.Map(s.ctx, Fail(NotFound("missing")))

	s.Require().NoError(err)
	s.Assert().False(called)
}

func (s *MapperSuite) TestErrorsMapperFailure() {
	boom := errors.New("boom")
	mapper := NewMapper(WithErrorsMapper(ErrorsMapperFunc(func(context.Context, ValidationErrors) (ValidationErrors, error) {
		return nil, boom
	})))

	_, err := mapper.Map(s.ctx, Fail(BadRequest("validation failed", nil)))

	s.Assert().ErrorIs(err, boom)
	s.Assert().Contains(err.Error(), "map validation errors")
}

func (s *MapperSuite) TestKindString() {
	s.Assert().Equal("ok", KindOk.String())
	s.Assert().Equal("no_content", KindNoContent.String())
	s.Assert().Equal("problem", KindProblem.String())
	s.Assert().Equal("Kind(0)", Kind(0).String())
}
