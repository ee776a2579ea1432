package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when the input is not a JSON object.
var ErrInvalidJSON = errors.New("invalid JSON")

// DecodeProblem reads an RFC 9457 problem object, such as one written by
// Encode, back into a ProblemDetails.
//
// The standard members fill the matching fields. An "errors" object of
// string arrays becomes ValidationErrors; every other member becomes an
// extension holding its decoded JSON value. The message is taken from
// detail, then title, then the status text.
func DecodeProblem(raw []byte) (*ProblemDetails, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: problem must be an object", ErrInvalidJSON)
	}

	var (
		status        int
		title, detail string
		opts          []ProblemOption
	)
	doc.ForEach(func(key, value gjson.Result) bool {
		switch k := key.String(); k {
		case "status":
			status = int(value.Int())
		case "type":
			opts = append(opts, WithType(value.String()))
		case "title":
			title = value.String()
			opts = append(opts, WithTitle(title))
		case "detail":
			detail = value.String()
			opts = append(opts, WithDetail(detail))
		case "instance":
			opts = append(opts, WithInstance(value.String()))
		case ErrorsKey:
			if errs, ok := decodeValidationErrors(value); ok {
				opts = append(opts, WithExtension(k, errs))
				break
			}
			opts = append(opts, WithExtension(k, value.Value()))
		default:
			opts = append(opts, WithExtension(k, value.Value()))
		}
		return true
	})

	message := detail
	if message == "" {
		message = title
	}
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = fmt.Sprintf("problem %d", status)
	}

	p, err := NewProblemDetails(message, status, opts...)
	if err != nil {
		return nil, fmt.Errorf("decode problem: %w", err)
	}
	return p, nil
}

// decodeValidationErrors reads an object whose members are arrays of strings.
func decodeValidationErrors(v gjson.Result) (ValidationErrors, bool) {
	if !v.IsObject() {
		return nil, false
	}
	errs := make(ValidationErrors)
	ok := true
	v.ForEach(func(field, messages gjson.Result) bool {
		if !messages.IsArray() {
			ok = false
			return false
		}
		list := []string{}
		for _, m := range messages.Array() {
			if m.Type != gjson.String {
				ok = false
				return false
			}
			list = append(list, m.String())
		}
		errs[field.String()] = list
		return true
	})
	if !ok {
		return nil, false
	}
	return errs, true
}
