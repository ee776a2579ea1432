package api

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ExtensionsSuite struct {
	suite.Suite
	builder *ExtensionsBuilder
}

func (s *ExtensionsSuite) SetupTest() {
	s.builder = NewExtensionsBuilder()
}

func TestExtensionsSuite(t *testing.T) {
	suite.Run(t, new(ExtensionsSuite))
}

func (s *ExtensionsSuite) TestCaseInsensitiveLookup() {
	s.Require().NoError(s.builder.Add("TraceId", "abc"))
	ext := s.builder.Build()

	v, ok := ext.Get("traceid")
	s.Assert().True(ok)
	s.Assert().Equal("abc", v)
	s.Assert().True(ext.Has("TRACEID"))
	s.Assert().Equal([]string{"TraceId"}, ext.Keys())
}

func (s *ExtensionsSuite) TestDuplicateKeyRejected() {
	s.Require().NoError(s.builder.Add("errors", 1))

	err := s.builder.Add("Errors", 2)

	s.Assert().ErrorIs(err, ErrDuplicateExtension)
	v, _ := s.builder.Build().Get("errors")
	s.Assert().Equal(1, v)
}

func (s *ExtensionsSuite) TestInsertionOrder() {
	for _, k := range []string{"c", "a", "b"} {
		s.Require().NoError(s.builder.Add(k, k))
	}
	ext := s.builder.Build()

	var keys []string
	for k := range ext.All() {
		keys = append(keys, k)
	}
	s.Assert().Equal([]string{"c", "a", "b"}, keys)
	s.Assert().Equal(3, ext.Len())
}

func (s *ExtensionsSuite) TestBuiltValueUnaffectedByLaterAdds() {
	s.Require().NoError(s.builder.Add("a", 1))
	ext := s.builder.Build()

	s.Require().NoError(s.builder.Add("b", 2))

	s.Assert().Equal(1, ext.Len())
	s.Assert().False(ext.Has("b"))
}

func (s *ExtensionsSuite) TestMapReturnsCopy() {
	s.Require().NoError(s.builder.Add("a", 1))
	ext := s.builder.Build()

	m := ext.Map()
	m["b"] = 2

	s.Assert().False(ext.Has("b"))
}

func (s *ExtensionsSuite) TestWithout() {
	s.Require().NoError(s.builder.Add("Errors", 1))
	s.Require().NoError(s.builder.Add("other", 2))
	ext := s.builder.Build()

	out := ext.Without("errors")

	s.Assert().Equal([]string{"other"}, out.Keys())
	s.Assert().True(ext.Has("errors"))
}

func (s *ExtensionsSuite) TestExtensionsFrom() {
	s.Require().NoError(s.builder.Add("a", 1))
	seeded := ExtensionsFrom(s.builder.Build())

	s.Assert().ErrorIs(seeded.Add("A", 2), ErrDuplicateExtension)
	s.Assert().NoError(seeded.Add("b", 2))
	s.Assert().Equal([]string{"a", "b"}, seeded.Build().Keys())
}

func (s *ExtensionsSuite) TestZeroValue() {
	var ext Extensions

	_, ok := ext.Get("x")
	s.Assert().False(ok)
	s.Assert().Equal(0, ext.Len())
	s.Assert().Empty(ext.Map())
}

func (s *ExtensionsSuite) TestGroupFailures() {
	errs := GroupFailures([]FieldFailure{
		{Field: "B", Message: "b1"},
		{Field: "A", Message: "a1"},
		{Field: "B", Message: "b2"},
	})

	s.Assert().Equal(ValidationErrors{"A": {"a1"}, "B": {"b1", "b2"}}, errs)
	s.Assert().Equal([]string{"A", "B"}, errs.Fields())
	s.Assert().Equal(3, errs.Count())
}

func (s *ExtensionsSuite) TestValidationErrorsReadAsCopies() {
	s.Require().NoError(s.builder.Add(ErrorsKey, ValidationErrors{"Name": {"required"}}))
	ext := s.builder.Build()

	v, _ := ext.Get(ErrorsKey)
	v.(ValidationErrors)["Name"][0] = "changed"
	ext.Map()[ErrorsKey].(ValidationErrors)["Other"] = []string{"added"}

	again, _ := ext.Get(ErrorsKey)
	s.Assert().Equal(ValidationErrors{"Name": {"required"}}, again)
}

func (s *ExtensionsSuite) TestValidationErrorsCopiedOnAdd() {
	errs := ValidationErrors{"Name": {"required"}}
	s.Require().NoError(s.builder.Add(ErrorsKey, errs))
	ext := s.builder.Build()

	errs["Name"][0] = "changed"
	errs["Other"] = []string{"added"}

	got, _ := ext.Get(ErrorsKey)
	s.Assert().Equal(ValidationErrors{"Name": {"required"}}, got)
}
