package api

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// ErrDuplicateExtension is returned when an extension key is added twice.
// Keys are compared case-insensitively.
var ErrDuplicateExtension = errors.New("duplicate extension key")

// ErrorsKey is the extension key holding ValidationErrors.
const ErrorsKey = "errors"

// Extensions is an immutable, case-insensitive map of problem extension
// members. Iteration follows insertion order.
type Extensions struct {
	entries map[string]extension
	order   []string
}

type extension struct {
	key   string
	value any
}

// Get returns the value for key, compared case-insensitively.
func (e Extensions) Get(key string) (any, bool) {
	ext, ok := e.entries[fold(key)]
	return detach(ext.value), ok
}

// Has reports whether key is present.
func (e Extensions) Has(key string) bool {
	_, ok := e.entries[fold(key)]
	return ok
}

// Len returns the number of extensions.
func (e Extensions) Len() int { return len(e.order) }

// Keys returns the keys, as inserted, in insertion order.
func (e Extensions) Keys() []string {
	keys := make([]string, len(e.order))
	for i, k := range e.order {
		keys[i] = e.entries[k].key
	}
	return keys
}

// All iterates over the extensions in insertion order.
func (e Extensions) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range e.order {
			ext := e.entries[k]
			if !yield(ext.key, detach(ext.value)) {
				return
			}
		}
	}
}

// Map returns a copy of the extensions as a plain map.
func (e Extensions) Map() map[string]any {
	m := make(map[string]any, len(e.order))
	for k, v := range e.All() {
		m[k] = v
	}
	return m
}

// Without returns the extensions minus key.
func (e Extensions) Without(key string) Extensions {
	folded := fold(key)
	if _, ok := e.entries[folded]; !ok {
		return e
	}
	out := Extensions{
		entries: maps.Clone(e.entries),
		order:   slices.DeleteFunc(slices.Clone(e.order), func(k string) bool { return k == folded }),
	}
	delete(out.entries, folded)
	return out
}

// ExtensionsBuilder builds Extensions, rejecting duplicate keys.
type ExtensionsBuilder struct {
	entries map[string]extension
	order   []string
}

// NewExtensionsBuilder returns an empty builder.
func NewExtensionsBuilder() *ExtensionsBuilder {
	return &ExtensionsBuilder{entries: make(map[string]extension)}
}

// ExtensionsFrom returns a builder seeded with e.
func ExtensionsFrom(e Extensions) *ExtensionsBuilder {
	b := NewExtensionsBuilder()
	for _, k := range e.order {
		b.entries[k] = e.entries[k]
		b.order = append(b.order, k)
	}
	return b
}

// Add inserts key. Adding a key that is already present, in any case, fails
// with ErrDuplicateExtension.
func (b *ExtensionsBuilder) Add(key string, value any) error {
	folded := fold(key)
	if _, exists := b.entries[folded]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateExtension, key)
	}
	b.entries[folded] = extension{key: key, value: detach(value)}
	b.order = append(b.order, folded)
	return nil
}

// Build returns the extensions added so far. The builder may keep being used;
// built values are not affected.
func (b *ExtensionsBuilder) Build() Extensions {
	return Extensions{
		entries: maps.Clone(b.entries),
		order:   slices.Clone(b.order),
	}
}

func fold(key string) string { return strings.ToLower(key) }

// detach copies values of the known mutable types so neither the caller's
// value nor a read can change a built Extensions.
func detach(v any) any {
	if errs, ok := v.(ValidationErrors); ok {
		return errs.Clone()
	}
	return v
}

// FieldFailure is one field-level validation failure.
type FieldFailure struct {
	Field   string
	Message string
}

// ValidationErrors maps a field name to its error messages, in order.
type ValidationErrors map[string][]string

// GroupFailures groups failures by field, keeping message order.
func GroupFailures(failures []FieldFailure) ValidationErrors {
	errs := make(ValidationErrors)
	for _, f := range failures {
		errs[f.Field] = append(errs[f.Field], f.Message)
	}
	return errs
}

// Clone returns a deep copy.
func (v ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for k, msgs := range v {
		out[k] = slices.Clone(msgs)
	}
	return out
}

// Fields returns the field names, sorted.
func (v ValidationErrors) Fields() []string {
	return slices.Sorted(maps.Keys(v))
}

// Count returns the total number of messages.
func (v ValidationErrors) Count() int {
	n := 0
	for _, msgs := range v {
		n += len(msgs)
	}
	return n
}
