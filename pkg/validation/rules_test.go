package validation

import (
	"errors"
	"regexp"
	"testing"
)

func TestValidators(t *testing.T) {
	values := map[string]string{"password": "s3cret"}

	cases := []struct {
		name      string
		validator func(string, map[string]string) string
		value     string
		wantError bool
	}{
		{"required empty", Required(""), "", true},
		{"required whitespace is input", Required(""), "   ", false},
		{"required set", Required(""), "x", false},
		{"email empty passes", Email(""), "", false},
		{"email invalid", Email(""), "bad", true},
		{"email valid", Email(""), "a@b.com", false},
		{"min length short", MinLength(10, ""), "short", true},
		{"min length ok", MinLength(10, ""), "long enough!", false},
		{"min length counts runes", MinLength(3, ""), "äöü", false},
		{"max length over", MaxLength(3, ""), "abcd", true},
		{"max length ok", MaxLength(3, ""), "abc", false},
		{"pattern mismatch", Pattern(regexp.MustCompile(`^\d+$`), ""), "12a", true},
		{"pattern match", Pattern(regexp.MustCompile(`^\d+$`), ""), "123", false},
		{"equal mismatch", EqualTo("password", ""), "other", true},
		{"equal match", EqualTo("password", ""), "s3cret", false},
		{"one of invalid", OneOf([]string{"male", "female"}, ""), "robot", true},
		{"one of valid", OneOf([]string{"male", "female"}, ""), "male", false},
		{"range not a number", Range(nil, nil, ""), "abc", true},
		{"range below", Range(ptr(1), ptr(5), ""), "0", true},
		{"range above", Range(ptr(1), ptr(5), ""), "5.5", true},
		{"range inside", Range(ptr(1), ptr(5), ""), "3", false},
		{"range empty passes", Range(ptr(1), nil, ""), "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := tc.validator(tc.value, values)
			if tc.wantError && msg == "" {
				t.Fatalf("expected message for %q", tc.value)
			}
			if !tc.wantError && msg != "" {
				t.Fatalf("expected no message for %q, got %q", tc.value, msg)
			}
		})
	}
}

func TestChain_FirstMessageWins(t *testing.T) {
	v := Chain(Required("Tell us something"), MinLength(10, "Minimum 10 chars"))
	if got := v("", nil); got != "Tell us something" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := v("short", nil); got != "Minimum 10 chars" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := v("this is long", nil); got != "" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestChain_Empty(t *testing.T) {
	if Chain() != nil {
		t.Fatalf("expected nil validator for empty chain")
	}
}

func TestValidators_Deterministic(t *testing.T) {
	v := Chain(Required(""), Email(""))
	values := map[string]string{"email": "bad"}
	for i := 0; i < 3; i++ {
		if got := v("bad", values); got != "Invalid email format" {
			t.Fatalf("iteration %d: unexpected message %q", i, got)
		}
	}
}

func TestCompile(t *testing.T) {
	v, err := Compile([]Rule{
		{Kind: RuleRequired, Message: "Email is required"},
		{Kind: RuleEmail},
		{Kind: RuleMaxLength, Params: map[string]string{"value": "20"}},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := v("", nil); got != "Email is required" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := v("nope", nil); got != "Invalid email format" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := v("someone@example.com", nil); got != "" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCompile_Errors(t *testing.T) {
	cases := []struct {
		name string
		rule Rule
	}{
		{"unknown", Rule{Kind: "shout"}},
		{"min length missing value", Rule{Kind: RuleMinLength}},
		{"max length not a number", Rule{Kind: RuleMaxLength, Params: map[string]string{"value": "ten"}}},
		{"bad pattern", Rule{Kind: RulePattern, Params: map[string]string{"pattern": "("}}},
		{"equal missing field", Rule{Kind: RuleEqualTo}},
		{"one of missing values", Rule{Kind: RuleOneOf}},
		{"range bad bound", Rule{Kind: RuleRange, Params: map[string]string{"min": "x"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Compile([]Rule{tc.rule}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := Compile([]Rule{{Kind: "shout"}})
	if !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
}

func TestCompile_EmptyRules(t *testing.T) {
	v, err := Compile(nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil validator")
	}
}

func TestRange_DefaultMessage(t *testing.T) {
	if got := Range(ptr(1), ptr(5), "")("9", nil); got != "Must be between 1 and 5" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := Range(nil, ptr(2.5), "")("9", nil); got != "Must be at most 2.5" {
		t.Fatalf("unexpected message %q", got)
	}
}

func ptr(f float64) *float64 { return &f }
