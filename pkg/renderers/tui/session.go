package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/engine"
	"github.com/goliatone/go-formstate/pkg/formdef"
	"github.com/goliatone/go-formstate/pkg/schema"
)

// Session drives an engine from a terminal: every field is prompted until it
// validates, then the user confirms submission or a reset.
type Session struct {
	engine      *engine.Engine
	chrome      formdef.Chrome
	driver      PromptDriver
	format      OutputFormat
	theme       Theme
	maxAttempts int
	logger      zerolog.Logger
}

// NewSession binds a session to e. The survey driver writing to stdout is
// used unless WithPromptDriver is given.
func NewSession(e *engine.Engine, chrome formdef.Chrome, options ...Option) (*Session, error) {
	if e == nil {
		return nil, fmt.Errorf("tui: engine is required")
	}
	s := &Session{
		engine: e,
		chrome: chrome,
		format: OutputFormatJSON,
		theme:  DefaultTheme,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run loops until a submission is accepted and returns the submitted values.
// Declining both submit and reset returns ErrAborted.
func (s *Session) Run(ctx context.Context) (map[string]string, error) {
	if s.chrome.Title != "" {
		if err := s.info(ctx, s.theme.InfoPrefix+s.chrome.Title); err != nil {
			return nil, err
		}
	}

	for round := 1; ; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.promptFields(ctx); err != nil {
			return nil, err
		}

		submit, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.chrome.SubmitText + "?",
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if submit {
			if s.engine.Submit() {
				values := s.engine.Values()
				s.logger.Debug().Int("round", round).Msg("submission accepted")
				if err := s.info(ctx, s.theme.SuccessPrefix+s.chrome.SuccessMessage); err != nil {
					return nil, err
				}
				return values, nil
			}
			if err := s.reportErrors(ctx); err != nil {
				return nil, err
			}
			continue
		}

		if !s.chrome.ShowReset {
			return nil, ErrAborted
		}
		reset, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.chrome.ResetText + "?",
		})
		if err != nil {
			return nil, err
		}
		if !reset {
			return nil, ErrAborted
		}
		s.engine.Reset()
		s.logger.Debug().Int("round", round).Msg("session reset")
	}
}

// promptFields walks the schema and only leaves a field once its error is
// cleared.
func (s *Session) promptFields(ctx context.Context) error {
	for _, field := range s.engine.Schema().Fields() {
		for attempt := 1; ; attempt++ {
			raw, err := s.prompt(ctx, field)
			if err != nil {
				return err
			}
			if err := s.engine.Change(field.Name, raw); err != nil {
				return err
			}
			msg, invalid := s.engine.Error(field.Name)
			if !invalid {
				break
			}
			if err := s.info(ctx, s.theme.ErrorPrefix+msg); err != nil {
				return err
			}
			if s.maxAttempts > 0 && attempt >= s.maxAttempts {
				return fmt.Errorf("%w: field %q", ErrTooManyAttempts, field.Name)
			}
		}
	}
	return nil
}

func (s *Session) prompt(ctx context.Context, field schema.Field) (string, error) {
	current := s.engine.Value(field.Name)
	message := field.DisplayLabel()
	if field.Required {
		message += " *"
	}

	switch field.Kind {
	case schema.KindSelect:
		labels := make([]string, len(field.Options))
		def := 0
		for i, opt := range field.Options {
			labels[i] = opt.Label
			if opt.Value == current {
				def = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: def,
			Help:         field.PlaceholderText(),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", nil
		}
		return field.Options[idx].Value, nil
	case schema.KindTextarea:
		help := field.PlaceholderText()
		if field.MaxLength > 0 {
			help = fmt.Sprintf("%s (max %d characters)", help, field.MaxLength)
		}
		return s.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: current,
			Help:    help,
		})
	case schema.KindPassword:
		return s.driver.Password(ctx, InputConfig{
			Message: message,
			Help:    field.PlaceholderText(),
		})
	default:
		return s.driver.Input(ctx, InputConfig{
			Message:     message,
			Default:     current,
			Help:        field.PlaceholderText(),
			Placeholder: field.PlaceholderText(),
		})
	}
}

func (s *Session) reportErrors(ctx context.Context) error {
	errs := s.engine.Errors()
	for _, name := range s.engine.Schema().Names() {
		if msg, ok := errs[name]; ok {
			if err := s.info(ctx, s.theme.ErrorPrefix+msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, msg)
}

// Encode serialises values in the session's output format.
func (s *Session) Encode(values map[string]string) ([]byte, error) {
	return Encode(s.engine.Schema(), values, s.format)
}

// Encode serialises values using format. Pretty output follows schema order.
func Encode(sch *schema.Schema, values map[string]string, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatJSON, "":
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return append(out, '\n'), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range sch.Fields() {
			fmt.Fprintf(&b, "%s: %s\n", field.DisplayLabel(), values[field.Name])
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
