package schema

import "strings"

// Kind selects the input control a renderer draws for a field and the
// structural constraints that apply to it.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindPassword Kind = "password"
	KindNumber   Kind = "number"
	KindTel      Kind = "tel"
	KindURL      Kind = "url"
	KindDate     Kind = "date"
)

// ParseKind normalises a raw type string. Empty or unrecognised values fall
// back to KindText.
func ParseKind(raw string) Kind {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case KindText, KindEmail, KindTextarea, KindSelect, KindPassword,
		KindNumber, KindTel, KindURL, KindDate:
		return kind
	default:
		return KindText
	}
}

// Validator maps the field's current value and the full value set to an error
// message. An empty string means the value is valid. Validators must be
// deterministic and free of side effects.
type Validator func(value string, values map[string]string) string

// Option is a single choice offered by a select field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field describes one form input. Required is a rendering hint only;
// enforcement is left entirely to Validate.
type Field struct {
	Name          string
	Label         string
	Kind          Kind
	Required      bool
	Placeholder   string
	Validate      Validator
	Options       []Option
	MaxLength     int
	Min           string
	Max           string
	Default       string
	ShowCharCount bool
	Icon          string
}

// PlaceholderText returns the explicit placeholder or one derived from the
// label ("Enter full name", "Select gender").
func (f Field) PlaceholderText() string {
	if f.Placeholder != "" {
		return f.Placeholder
	}
	label := strings.ToLower(f.DisplayLabel())
	if f.Kind == KindSelect {
		return "Select " + label
	}
	return "Enter " + label
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Check runs the field validator. Fields without a validator are always valid.
func (f Field) Check(value string, values map[string]string) string {
	if f.Validate == nil {
		return ""
	}
	return f.Validate(value, values)
}
