package validation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bjaus/mediator/api"
)

type FailureMapperSuite struct {
	suite.Suite
	logs   *bytes.Buffer
	mapper *FailureMapper
	ctx    context.Context
}

func (s *FailureMapperSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	field1 := PropertyMapperFunc(func(name string) string {
		if name == "Field1" {
			return "MappedField1"
		}
		return UnknownProperty
	})
	s.mapper = NewFailureMapper(
		WithMapper("fields", field1),
		WithMapper("signup", MapFieldsOf[signup](NewPropertyMap())),
		WithLogger(slog.New(slog.NewTextHandler(s.logs, nil))),
	)
	s.ctx = WithPropertyMapper(context.Background(), "fields")
}

func TestFailureMapperSuite(t *testing.T) {
	suite.Run(t, new(FailureMapperSuite))
}

func (s *FailureMapperSuite) TestRenamesFieldAndMessages() {
	out, err := s.mapper.MapErrors(s.ctx, api.ValidationErrors{
		"Field1": {"Error1 with Field1", "Error2 with field1"},
	})

	s.Require().NoError(err)
	s.Assert().Equal(api.ValidationErrors{
		"MappedField1": {"Error1 with MappedField1", "Error2 with MappedField1"},
	}, out)
}

func (s *FailureMapperSuite) TestOnlyWholeWordsAreRewritten() {
	out, err := s.mapper.MapErrors(s.ctx, api.ValidationErrors{
		"Field1": {"Error1 withField1", "Error1 with Field123"},
	})

	s.Require().NoError(err)
	s.Assert().Equal(api.ValidationErrors{
		"MappedField1": {"Error1 withField1", "Error1 with Field123"},
	}, out)
}

func (s *FailureMapperSuite) TestUnmappedFieldsMergeWithoutLoss() {
	out, err := s.mapper.MapErrors(s.ctx, api.ValidationErrors{
		"Field2": {"Field2 is required"},
		"Field3": {"too short", "too plain"},
	})

	s.Require().NoError(err)
	s.Assert().Equal(api.ValidationErrors{
		UnknownProperty: {"unknown property is required", "too short", "too plain"},
	}, out)
	s.Assert().Equal(3, out.Count())
}

func (s *FailureMapperSuite) TestMergeIgnoresCaseOfMappedNames() {
	upper := PropertyMapperFunc(func(name string) string {
		if name == "A" {
			return "Name"
		}
		return "name"
	})
	m := NewFailureMapper(WithMapper("upper", upper))

	out, err := m.MapErrors(WithPropertyMapper(context.Background(), "upper"), api.ValidationErrors{
		"A": {"too short"},
		"B": {"too plain"},
	})

	s.Require().NoError(err)
	s.Assert().Equal(api.ValidationErrors{"Name": {"too short", "too plain"}}, out)
}

func (s *FailureMapperSuite) TestInputNotModified() {
	in := api.ValidationErrors{"Field1": {"Field1 is bad"}}

	_, err := s.mapper.MapErrors(s.ctx, in)

	s.Require().NoError(err)
	s.Assert().Equal(api.ValidationErrors{"Field1": {"Field1 is bad"}}, in)
}

func (s *FailureMapperSuite) TestStructFieldMapper() {
	ctx := WithPropertyMapper(context.Background(), "signup")

	out, err := s.mapper.MapErrors(ctx, api.ValidationErrors{
		"UserName": {"'UserName' failed validation: required"},
		"Password": {"'Password' failed validation: min=8"},
	})

	s.Require().NoError(err)
	s.Assert().Equal(api.ValidationErrors{
		"login":         {"'login' failed validation: required"},
		UnknownProperty: {"'unknown property' failed validation: min=8"},
	}, out)
}

func (s *FailureMapperSuite) TestNoBindingPassesThroughWithWarning() {
	in := api.ValidationErrors{"Field1": {"bad"}}

	out, err := s.mapper.MapErrors(context.Background(), in)

	s.Require().NoError(err)
	s.Assert().Equal(in, out)
	s.Assert().Contains(s.logs.String(), "level=WARN")
	s.Assert().Contains(s.logs.String(), "no property mapper bound")
}

func (s *FailureMapperSuite) TestUnregisteredMapper() {
	ctx := WithPropertyMapper(context.Background(), "orders")

	_, err := s.mapper.MapErrors(ctx, api.ValidationErrors{"Field1": {"bad"}})

	s.Assert().ErrorIs(err, ErrPropertyMapperNotFound)
	s.Assert().Contains(err.Error(), `"orders"`)
}

func (s *FailureMapperSuite) TestBlankBinding() {
	ctx := WithPropertyMapper(context.Background(), "  ")

	_, err := s.mapper.MapErrors(ctx, api.ValidationErrors{"Field1": {"bad"}})

	s.Assert().ErrorIs(err, ErrInvalidBinding)
}

func (s *FailureMapperSuite) TestPropertyMapperFrom() {
	name, ok := PropertyMapperFrom(s.ctx)
	s.Assert().True(ok)
	s.Assert().Equal("fields", name)

	_, ok = PropertyMapperFrom(context.Background())
	s.Assert().False(ok)
}
