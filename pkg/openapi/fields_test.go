package openapi

import "testing"

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"first_name": "First name",
		"firstName":  "First name",
		"zip-code":   "Zip code",
		"email":      "Email",
		"":           "",
	}
	for in, want := range cases {
		if got := humanize(in); got != want {
			t.Errorf("humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
