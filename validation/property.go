package validation

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownProperty is the public name given to properties without a mapping,
// so internal names never reach clients.
const UnknownProperty = "unknown property"

// PropertyMapper translates an internal property name into the name shown
// to clients.
type PropertyMapper interface {
	MapProperty(name string) string
}

// PropertyMapperFunc adapts a function to PropertyMapper.
type PropertyMapperFunc func(name string) string

// MapProperty implements PropertyMapper.
func (f PropertyMapperFunc) MapProperty(name string) string { return f(name) }

type conditionalMapping struct {
	when Predicate
	to   string
}

// PropertyMap is a PropertyMapper configured with conditional and exact
// mappings. Conditional mappings are checked first, in the order they were
// added; then exact mappings, ignoring case. Anything else maps to
// UnknownProperty. Mapped names have their first letter lower-cased.
//
// A PropertyMap must be fully configured before it is shared.
type PropertyMap struct {
	conditional []conditionalMapping
	exact       map[string]string
}

// NewPropertyMap returns an empty PropertyMap.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{exact: make(map[string]string)}
}

// Map maps the property from to the public name to. The first mapping for a
// name wins. It panics on a blank name.
func (m *PropertyMap) Map(from, to string) *PropertyMap {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		panic("validation: blank property name in mapping")
	}
	key := strings.ToLower(from)
	if _, ok := m.exact[key]; !ok {
		m.exact[key] = lowerFirst(to)
	}
	return m
}

// MapWhen maps every property accepted by when to the public name to. It
// panics on a nil predicate or a blank name.
func (m *PropertyMap) MapWhen(when Predicate, to string) *PropertyMap {
	if when == nil {
		panic("validation: nil predicate in mapping")
	}
	if strings.TrimSpace(to) == "" {
		panic("validation: blank property name in mapping")
	}
	m.conditional = append(m.conditional, conditionalMapping{when: when, to: lowerFirst(to)})
	return m
}

// MapFieldsOf maps each exported field of struct T to itself, or to its json
// tag name when one is set. Embedded fields and fields tagged "-" are
// skipped.
func MapFieldsOf[T any](m *PropertyMap) *PropertyMap {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return m
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		to := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				to = name
			}
		}
		m.Map(f.Name, to)
	}
	return m
}

// MapProperty implements PropertyMapper.
func (m *PropertyMap) MapProperty(name string) string {
	for _, c := range m.conditional {
		if c.when.Match(name) {
			return c.to
		}
	}
	if to, ok := m.exact[strings.ToLower(name)]; ok {
		return to
	}
	return UnknownProperty
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
