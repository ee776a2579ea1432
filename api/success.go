package api

import "net/url"

// Success is the success side of a Result. The set of variants is closed:
// Ok, Created, Accepted and NoContent.
type Success interface {
	success()
}

// Ok is a success carrying an optional value.
type Ok struct {
	Value any
}

// Created is a success for a newly created resource, with an optional value
// and location.
type Created struct {
	Value    any
	Location *url.URL
}

// Accepted is a success for work accepted for later processing, with an
// optional value and status location.
type Accepted struct {
	Value    any
	Location *url.URL
}

// NoContent is a success with no body.
type NoContent struct{}

func (Ok) success()        {}
func (Created) success()   {}
func (Accepted) success()  {}
func (NoContent) success() {}
