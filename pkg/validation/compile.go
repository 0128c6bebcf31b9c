package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/schema"
)

const (
	RuleRequired  = "required"
	RuleEmail     = "email"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleEqualTo   = "equalTo"
	RuleOneOf     = "oneOf"
	RuleRange     = "range"
)

// ErrUnknownRule is returned when a rule kind is not recognised.
var ErrUnknownRule = errors.New("validation: unknown rule")

// Rule is a declarative validation constraint. Length limits encode their
// threshold in Params["value"], pattern rules keep the expression in
// Params["pattern"], equalTo names the other field in Params["field"] and
// oneOf lists comma separated values in Params["values"]. range reads
// optional Params["min"] and Params["max"].
type Rule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Compile turns rules into a single validator evaluated in declaration order.
// It returns a nil validator when rules is empty.
func Compile(rules []Rule) (schema.Validator, error) {
	validators := make([]schema.Validator, 0, len(rules))
	for i, rule := range rules {
		v, err := compileRule(rule)
		if err != nil {
			return nil, fmt.Errorf("validation: rule %d (%s): %w", i, rule.Kind, err)
		}
		validators = append(validators, v)
	}
	return Chain(validators...), nil
}

func compileRule(rule Rule) (schema.Validator, error) {
	switch strings.TrimSpace(rule.Kind) {
	case RuleRequired:
		return Required(rule.Message), nil
	case RuleEmail:
		return Email(rule.Message), nil
	case RuleMinLength:
		n, err := intParam(rule.Params, "value")
		if err != nil {
			return nil, err
		}
		return MinLength(n, rule.Message), nil
	case RuleMaxLength:
		n, err := intParam(rule.Params, "value")
		if err != nil {
			return nil, err
		}
		return MaxLength(n, rule.Message), nil
	case RulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return nil, errors.New("pattern param is required")
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern: %w", err)
		}
		return Pattern(re, rule.Message), nil
	case RuleEqualTo:
		field := strings.TrimSpace(rule.Params["field"])
		if field == "" {
			return nil, errors.New("field param is required")
		}
		return EqualTo(field, rule.Message), nil
	case RuleOneOf:
		raw := rule.Params["values"]
		if strings.TrimSpace(raw) == "" {
			return nil, errors.New("values param is required")
		}
		var allowed []string
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				allowed = append(allowed, v)
			}
		}
		return OneOf(allowed, rule.Message), nil
	case RuleRange:
		lo, err := floatParam(rule.Params, "min")
		if err != nil {
			return nil, err
		}
		hi, err := floatParam(rule.Params, "max")
		if err != nil {
			return nil, err
		}
		return Range(lo, hi, rule.Message), nil
	default:
		return nil, ErrUnknownRule
	}
}

func intParam(params map[string]string, key string) (int, error) {
	raw := strings.TrimSpace(params[key])
	if raw == "" {
		return 0, fmt.Errorf("%s param is required", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return n, nil
}

func floatParam(params map[string]string, key string) (*float64, error) {
	raw := strings.TrimSpace(params[key])
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	return &f, nil
}
