package formdef

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formstate/pkg/engine"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Schema compiles the field definitions and their rules.
func (d Definition) Schema() (*schema.Schema, error) {
	fields := make([]schema.Field, 0, len(d.Fields))
	for _, def := range d.Fields {
		field, err := def.Field()
		if err != nil {
			return nil, fmt.Errorf("formdef: form %q: %w", d.ID, err)
		}
		fields = append(fields, field)
	}
	s, err := schema.New(fields...)
	if err != nil {
		return nil, fmt.Errorf("formdef: form %q: %w", d.ID, err)
	}
	return s, nil
}

// SuccessDuration returns the banner duration, defaulting to
// DefaultSuccessDurationMS.
func (d Definition) SuccessDuration() time.Duration {
	ms := DefaultSuccessDurationMS
	if d.SuccessDurationMS != nil {
		ms = *d.SuccessDurationMS
	}
	return time.Duration(ms) * time.Millisecond
}

// EngineOptions translates the definition-level settings into engine options.
// Callers append their own hooks.
func (d Definition) EngineOptions() []engine.Option {
	opts := []engine.Option{
		engine.WithSuccessDuration(d.SuccessDuration()),
		engine.WithDarkMode(d.DarkMode),
	}
	if len(d.InitialValues) > 0 {
		opts = append(opts, engine.WithInitialValues(d.InitialValues))
	}
	return opts
}

// NewEngine builds the schema and an engine for the definition.
func (d Definition) NewEngine(extra ...engine.Option) (*engine.Engine, error) {
	s, err := d.Schema()
	if err != nil {
		return nil, err
	}
	opts := append(d.EngineOptions(), extra...)
	e, err := engine.New(s, opts...)
	if err != nil {
		return nil, fmt.Errorf("formdef: form %q: %w", d.ID, err)
	}
	return e, nil
}

// Field compiles a single field definition. A required field without an
// explicit required rule gets one prepended.
func (f FieldDef) Field() (schema.Field, error) {
	rules := f.Rules
	if f.Required && !hasRule(rules, validation.RuleRequired) {
		label := f.Label
		if label == "" {
			label = f.Name
		}
		rules = append([]validation.Rule{{
			Kind:    validation.RuleRequired,
			Message: label + " is required",
		}}, rules...)
	}

	validate, err := validation.Compile(rules)
	if err != nil {
		return schema.Field{}, fmt.Errorf("field %q: %w", f.Name, err)
	}

	return schema.Field{
		Name:          strings.TrimSpace(f.Name),
		Label:         f.Label,
		Kind:          schema.ParseKind(f.Type),
		Required:      f.Required,
		Placeholder:   f.Placeholder,
		Validate:      validate,
		Options:       f.Options,
		MaxLength:     f.MaxLength,
		Min:           f.Min,
		Max:           f.Max,
		Default:       f.Default,
		ShowCharCount: f.ShowCharCount,
		Icon:          f.Icon,
	}, nil
}

func hasRule(rules []validation.Rule, kind string) bool {
	for _, r := range rules {
		if r.Kind == kind {
			return true
		}
	}
	return false
}
