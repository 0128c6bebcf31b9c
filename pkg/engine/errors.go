package engine

import "errors"

var (
	// ErrUnknownField signals an event for a name that is not in the schema.
	ErrUnknownField = errors.New("engine: unknown field")
	// ErrClosed is returned by mutating operations after Close.
	ErrClosed = errors.New("engine: closed")
	// ErrNilSchema is returned when New receives no schema.
	ErrNilSchema = errors.New("engine: schema is required")
	// ErrNegativeDuration is returned for a negative success banner duration.
	ErrNegativeDuration = errors.New("engine: success duration must not be negative")
)
