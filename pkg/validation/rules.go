// Package validation provides composable field validators and compiles
// declarative rules into schema.Validator functions.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/schema"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Required rejects empty values. Whitespace counts as input.
func Required(msg string) schema.Validator {
	if msg == "" {
		msg = "This field is required"
	}
	return func(value string, _ map[string]string) string {
		if value == "" {
			return msg
		}
		return ""
	}
}

// Email rejects values that do not look like an address. Empty values pass so
// Required can own that message.
func Email(msg string) schema.Validator {
	if msg == "" {
		msg = "Invalid email format"
	}
	return func(value string, _ map[string]string) string {
		if value == "" || emailPattern.MatchString(value) {
			return ""
		}
		return msg
	}
}

// MinLength rejects non-empty values shorter than n runes.
func MinLength(n int, msg string) schema.Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %d characters", n)
	}
	return func(value string, _ map[string]string) string {
		if value == "" {
			return ""
		}
		if utf8.RuneCountInString(value) < n {
			return msg
		}
		return ""
	}
}

// MaxLength rejects values longer than n runes.
func MaxLength(n int, msg string) schema.Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %d characters", n)
	}
	return func(value string, _ map[string]string) string {
		if utf8.RuneCountInString(value) > n {
			return msg
		}
		return ""
	}
}

// Pattern rejects non-empty values that do not match re.
func Pattern(re *regexp.Regexp, msg string) schema.Validator {
	if msg == "" {
		msg = "Does not match required pattern"
	}
	return func(value string, _ map[string]string) string {
		if value == "" || re == nil || re.MatchString(value) {
			return ""
		}
		return msg
	}
}

// EqualTo requires the value to match another field of the same form, e.g. a
// password confirmation.
func EqualTo(field, msg string) schema.Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must match %s", field)
	}
	return func(value string, values map[string]string) string {
		if value != values[field] {
			return msg
		}
		return ""
	}
}

// OneOf restricts non-empty values to the allowed set.
func OneOf(allowed []string, msg string) schema.Validator {
	if msg == "" {
		msg = "Please choose a valid option"
	}
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	return func(value string, _ map[string]string) string {
		if value == "" {
			return ""
		}
		if _, ok := set[value]; ok {
			return ""
		}
		return msg
	}
}

// Range rejects non-empty values that are not numbers within [lo, hi]. A
// nil bound is open.
func Range(lo, hi *float64, msg string) schema.Validator {
	if msg == "" {
		msg = "Must be a number"
		switch {
		case lo != nil && hi != nil:
			msg = fmt.Sprintf("Must be between %s and %s", formatFloat(*lo), formatFloat(*hi))
		case lo != nil:
			msg = fmt.Sprintf("Must be at least %s", formatFloat(*lo))
		case hi != nil:
			msg = fmt.Sprintf("Must be at most %s", formatFloat(*hi))
		}
	}
	return func(value string, _ map[string]string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return ""
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return msg
		}
		if (lo != nil && n < *lo) || (hi != nil && n > *hi) {
			return msg
		}
		return ""
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Chain runs validators in order and returns the first message.
func Chain(validators ...schema.Validator) schema.Validator {
	list := make([]schema.Validator, 0, len(validators))
	for _, v := range validators {
		if v != nil {
			list = append(list, v)
		}
	}
	if len(list) == 0 {
		return nil
	}
	if len(list) == 1 {
		return list[0]
	}
	return func(value string, values map[string]string) string {
		for _, v := range list {
			if msg := v(value, values); msg != "" {
				return msg
			}
		}
		return ""
	}
}
