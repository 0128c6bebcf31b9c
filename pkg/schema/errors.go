package schema

import "errors"

var (
	// ErrEmptyName is returned when a field descriptor has no name.
	ErrEmptyName = errors.New("schema: field name is required")
	// ErrDuplicateField is returned when two descriptors share a name.
	ErrDuplicateField = errors.New("schema: duplicate field name")
	// ErrMissingOptions is returned for select fields without options.
	ErrMissingOptions = errors.New("schema: select field requires options")
)
