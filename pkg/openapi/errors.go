package openapi

import "errors"

var (
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no usable object body.
	ErrNoRequestBody = errors.New("openapi: operation has no object request body")
	// ErrEmptyDocument is returned for empty payloads.
	ErrEmptyDocument = errors.New("openapi: document payload is empty")
)
