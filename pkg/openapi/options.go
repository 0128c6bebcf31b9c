package openapi

import "github.com/rs/zerolog"

// OrderExtension lists property names in display order on a request body
// schema. Unlisted properties follow in lexical order.
const OrderExtension = "x-formstate-order"

// FieldExtension carries per-property presentation overrides
// (label, placeholder, icon, type, showCharCount, default).
const FieldExtension = "x-formstate"

// TextareaThreshold is the maxLength above which string properties render as
// a textarea.
const TextareaThreshold = 255

type config struct {
	logger            zerolog.Logger
	allowExternalRefs bool
}

// Option configures FromDocument.
type Option func(*config)

// WithLogger logs skipped properties at debug level and dropped patterns at
// warn level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithExternalRefs allows the loader to resolve external $ref targets.
func WithExternalRefs(allow bool) Option {
	return func(c *config) {
		c.allowExternalRefs = allow
	}
}

func newConfig(opts []Option) config {
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
