package events

import (
	"encoding/json"
	"fmt"
	"strconv"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/goliatone/go-formstate/pkg/engine"
)

// Step records the outcome of one replayed event.
type Step struct {
	Index     int               `json:"index"`
	Type      Type              `json:"type"`
	Field     string            `json:"field,omitempty"`
	Changed   []string          `json:"changed,omitempty"`
	Submitted *bool             `json:"submitted,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// Result summarises a replay.
type Result struct {
	Steps    []Step          `json:"steps"`
	Accepted int             `json:"accepted"`
	Rejected int             `json:"rejected"`
	Final    engine.Snapshot `json:"final"`
}

// Replay applies events to e in order. It stops at the first event the
// engine refuses (unknown field, closed engine, bad patch).
func Replay(e *engine.Engine, events []Event) (Result, error) {
	var res Result
	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			return res, fmt.Errorf("events: event %d: %w", i, err)
		}
		step := Step{Index: i, Type: ev.Type, Field: ev.Field}

		switch ev.Type {
		case TypeChange:
			if err := e.Change(ev.Field, ev.Value); err != nil {
				return res, fmt.Errorf("events: event %d: %w", i, err)
			}
		case TypeBlur:
			if err := e.Blur(ev.Field, ev.Value); err != nil {
				return res, fmt.Errorf("events: event %d: %w", i, err)
			}
		case TypeSubmit:
			ok := e.Submit()
			step.Submitted = &ok
			if ok {
				res.Accepted++
			} else {
				res.Rejected++
				step.Errors = e.Errors()
			}
		case TypeReset:
			e.Reset()
		case TypeToggleTheme:
			e.ToggleTheme()
		case TypePatch:
			changes, err := Expand(e, ev.Patch)
			if err != nil {
				return res, fmt.Errorf("events: event %d: %w", i, err)
			}
			for _, ch := range changes {
				if err := e.Change(ch.Field, ch.Value); err != nil {
					return res, fmt.Errorf("events: event %d: %w", i, err)
				}
				step.Changed = append(step.Changed, ch.Field)
			}
		}
		res.Steps = append(res.Steps, step)
	}
	res.Final = e.Snapshot()
	return res, nil
}

// Expand applies ops to the engine's current values and returns one change
// event per field whose value differs, in schema order. Removed fields
// become empty strings.
func Expand(e *engine.Engine, ops []Operation) ([]Event, error) {
	current := e.Values()
	doc, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal values: %v", ErrInvalidPatch, err)
	}
	raw, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal operations: %v", ErrInvalidPatch, err)
	}
	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidPatch, err)
	}
	modified, err := patch.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: apply: %v", ErrInvalidPatch, err)
	}

	var next map[string]any
	if err := json.Unmarshal(modified, &next); err != nil {
		return nil, fmt.Errorf("%w: result is not an object", ErrInvalidPatch)
	}

	updated := make(map[string]string, len(next))
	for name, value := range next {
		if !e.Schema().Has(name) {
			return nil, fmt.Errorf("%w: %q", engine.ErrUnknownField, name)
		}
		s, err := scalar(value)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidPatch, name, err)
		}
		updated[name] = s
	}

	var out []Event
	for _, name := range e.Schema().Names() {
		if updated[name] != current[name] {
			out = append(out, Event{Type: TypeChange, Field: name, Value: updated[name]})
		}
	}
	return out, nil
}

func scalar(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
