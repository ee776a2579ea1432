package api

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// Content types produced by Encode.
const (
	ContentTypeJSON    = "application/json"
	ContentTypeProblem = "application/problem+json"
)

// Encode serializes a Response body to JSON. Success bodies are marshaled
// as is; a nil body yields no bytes. Problems are written as an RFC 9457
// object with extensions as top-level members; the standard members win
// over extensions of the same name.
func Encode(resp Response) (contentType string, body []byte, err error) {
	if resp.Kind == KindProblem {
		if resp.Problem == nil {
			return "", nil, fmt.Errorf("encode problem response: %w", ErrEmptyResult)
		}
		body, err = json.Marshal(problemObject(resp.Problem), json.Deterministic(true))
		if err != nil {
			return "", nil, fmt.Errorf("encode problem response: %w", err)
		}
		return ContentTypeProblem, body, nil
	}

	if resp.Body == nil {
		return "", nil, nil
	}
	body, err = json.Marshal(resp.Body, json.Deterministic(true))
	if err != nil {
		return "", nil, fmt.Errorf("encode %s response: %w", resp.Kind, err)
	}
	return ContentTypeJSON, body, nil
}

func problemObject(p *Problem) map[string]any {
	obj := make(map[string]any, len(p.Extensions)+5)
	for k, v := range p.Extensions {
		obj[k] = v
	}
	set := func(key, value string) {
		if value != "" {
			obj[key] = value
		}
	}
	set("type", p.Type)
	set("title", p.Title)
	set("detail", p.Detail)
	set("instance", p.Instance)
	obj["status"] = p.Status
	return obj
}
