package schema

import (
	"fmt"
	"strings"
)

// Schema is an ordered, validated set of field descriptors. It is safe for
// concurrent readers once constructed.
type Schema struct {
	fields []Field
	index  map[string]int
}

// New validates the descriptors and returns a Schema preserving their order.
func New(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, field := range fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return nil, fmt.Errorf("%w (position %d)", ErrEmptyName, i)
		}
		if _, exists := s.index[field.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, field.Name)
		}
		field.Kind = ParseKind(string(field.Kind))
		if field.Kind == KindSelect && len(field.Options) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingOptions, field.Name)
		}
		if len(field.Options) > 0 {
			field.Options = append([]Option(nil), field.Options...)
		}
		s.index[field.Name] = len(s.fields)
		s.fields = append(s.fields, field)
	}
	return s, nil
}

// MustNew panics when the descriptors are invalid. Useful for static schemas.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the descriptor registered under name.
func (s *Schema) Lookup(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx], true
}

// Has reports whether name identifies a descriptor.
func (s *Schema) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Fields returns a copy of the descriptors in declaration order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	return append([]Field(nil), s.fields...)
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.fields))
	for i, field := range s.fields {
		names[i] = field.Name
	}
	return names
}

// Defaults returns the reset target: every field mapped to its default value
// or the empty string.
func (s *Schema) Defaults() map[string]string {
	if s == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(s.fields))
	for _, field := range s.fields {
		out[field.Name] = field.Default
	}
	return out
}

// Len reports the number of fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}
