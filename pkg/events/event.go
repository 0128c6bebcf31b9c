package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type names an interaction.
type Type string

const (
	TypeChange      Type = "change"
	TypeBlur        Type = "blur"
	TypeSubmit      Type = "submit"
	TypeReset       Type = "reset"
	TypeToggleTheme Type = "toggleTheme"
	TypePatch       Type = "patch"
)

var (
	// ErrUnknownEvent is returned for unrecognised event types.
	ErrUnknownEvent = errors.New("events: unknown event type")
	// ErrMissingField is returned when a change or blur names no field.
	ErrMissingField = errors.New("events: event requires a field")
	// ErrInvalidPatch is returned when a patch cannot be applied or yields a
	// non scalar value.
	ErrInvalidPatch = errors.New("events: invalid patch")
)

// Operation is one RFC 6902 step.
type Operation struct {
	Op    string `json:"op" yaml:"op"`
	Path  string `json:"path" yaml:"path"`
	From  string `json:"from,omitempty" yaml:"from,omitempty"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Event is a single scripted interaction.
type Event struct {
	Type  Type        `json:"type" yaml:"type"`
	Field string      `json:"field,omitempty" yaml:"field,omitempty"`
	Value string      `json:"value,omitempty" yaml:"value,omitempty"`
	Patch []Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
}

// Validate checks the event shape without touching an engine.
func (ev Event) Validate() error {
	switch ev.Type {
	case TypeChange, TypeBlur:
		if strings.TrimSpace(ev.Field) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, ev.Type)
		}
	case TypePatch:
		if len(ev.Patch) == 0 {
			return fmt.Errorf("%w: no operations", ErrInvalidPatch)
		}
	case TypeSubmit, TypeReset, TypeToggleTheme:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}

type scriptFile struct {
	Events []Event `json:"events" yaml:"events"`
}

// ParseScript decodes a script. Both a bare list and an object with an
// "events" key are accepted; JSON is tried before YAML.
func ParseScript(data []byte) ([]Event, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, errors.New("events: script is empty")
	}

	events, err := decode(data, json.Unmarshal)
	if err != nil {
		events, err = decode(data, yaml.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("events: parse script: invalid JSON or YAML")
		}
	}

	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("events: event %d: %w", i, err)
		}
	}
	return events, nil
}

func decode(data []byte, unmarshal func([]byte, any) error) ([]Event, error) {
	var list []Event
	if err := unmarshal(data, &list); err == nil {
		return list, nil
	}
	var file scriptFile
	if err := unmarshal(data, &file); err != nil {
		return nil, err
	}
	return file.Events, nil
}
