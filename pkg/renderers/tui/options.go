package tui

import "github.com/rs/zerolog"

// OutputFormat controls how submitted values are serialised.
type OutputFormat string

const (
	// OutputFormatJSON emits an indented JSON object.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits "Label: value" lines in schema order.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures message prefixes the session prints through the driver.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme mirrors the widget's inline markers.
var DefaultTheme = Theme{
	InfoPrefix:    "",
	ErrorPrefix:   "⚠️ ",
	SuccessPrefix: "🎉 ",
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialisation format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.format = format
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithMaxAttempts bounds how many times one field is re-prompted while
// invalid. Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}
