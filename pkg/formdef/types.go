package formdef

import (
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// DefaultSuccessDurationMS applies when a definition omits successDurationMs.
const DefaultSuccessDurationMS = 5000

// Store keeps parsed definitions keyed by id. It is safe for concurrent
// readers when treated as immutable after construction.
type Store struct {
	definitions map[string]Definition
}

// Definition describes one form.
type Definition struct {
	ID                string            `json:"id" yaml:"id"`
	Title             string            `json:"title" yaml:"title"`
	TitleIcon         string            `json:"titleIcon,omitempty" yaml:"titleIcon,omitempty"`
	Subtitle          string            `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	SubmitText        string            `json:"submitText,omitempty" yaml:"submitText,omitempty"`
	ResetText         string            `json:"resetText,omitempty" yaml:"resetText,omitempty"`
	ShowReset         *bool             `json:"showReset,omitempty" yaml:"showReset,omitempty"`
	SuccessMessage    string            `json:"successMessage,omitempty" yaml:"successMessage,omitempty"`
	SuccessIcon       string            `json:"successIcon,omitempty" yaml:"successIcon,omitempty"`
	SuccessDurationMS *int              `json:"successDurationMs,omitempty" yaml:"successDurationMs,omitempty"`
	DarkMode          bool              `json:"darkMode,omitempty" yaml:"darkMode,omitempty"`
	InitialValues     map[string]string `json:"initialValues,omitempty" yaml:"initialValues,omitempty"`
	Fields            []FieldDef        `json:"fields" yaml:"fields"`
	Source            string            `json:"-" yaml:"-"`
}

// FieldDef is the serialised form of a schema.Field.
type FieldDef struct {
	Name          string            `json:"name" yaml:"name"`
	Label         string            `json:"label,omitempty" yaml:"label,omitempty"`
	Type          string            `json:"type,omitempty" yaml:"type,omitempty"`
	Required      bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder   string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Icon          string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	MaxLength     int               `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min           string            `json:"min,omitempty" yaml:"min,omitempty"`
	Max           string            `json:"max,omitempty" yaml:"max,omitempty"`
	Default       string            `json:"default,omitempty" yaml:"default,omitempty"`
	ShowCharCount bool              `json:"showCharCount,omitempty" yaml:"showCharCount,omitempty"`
	Options       []schema.Option   `json:"options,omitempty" yaml:"options,omitempty"`
	Rules         []validation.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Chrome returns presentation strings with the widget defaults applied.
func (d Definition) Chrome() Chrome {
	c := Chrome{
		Title:          d.Title,
		TitleIcon:      d.TitleIcon,
		Subtitle:       d.Subtitle,
		SubmitText:     d.SubmitText,
		ResetText:      d.ResetText,
		ShowReset:      d.ShowReset == nil || *d.ShowReset,
		SuccessMessage: d.SuccessMessage,
		SuccessIcon:    d.SuccessIcon,
	}
	if c.Title == "" {
		c.Title = "Registration Form"
	}
	if c.SubmitText == "" {
		c.SubmitText = "Submit Form"
	}
	if c.ResetText == "" {
		c.ResetText = "Reset"
	}
	if c.SuccessMessage == "" {
		c.SuccessMessage = "Form submitted successfully!"
	}
	return c
}

// Chrome holds the non-field strings a renderer draws around the form.
type Chrome struct {
	Title          string
	TitleIcon      string
	Subtitle       string
	SubmitText     string
	ResetText      string
	ShowReset      bool
	SuccessMessage string
	SuccessIcon    string
}
