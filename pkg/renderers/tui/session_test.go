package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/engine"
	"github.com/goliatone/go-formstate/pkg/formdef"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func registration(t *testing.T, opts ...engine.Option) (*engine.Engine, formdef.Chrome) {
	t.Helper()
	store, err := formdef.LoadFS(formdef.EmbeddedFS())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def, _ := store.Definition(formdef.DefaultFormID)
	ms := 0
	def.SuccessDurationMS = &ms
	e, err := def.NewEngine(opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)
	return e, def.Chrome()
}

func TestSession_RepromptsUntilValid(t *testing.T) {
	var submitted map[string]string
	e, chrome := registration(t, engine.WithOnSubmit(func(v map[string]string) { submitted = v }))
	driver := &stubDriver{
		inputs:    []string{"", "Ada", "foo", "ada@example.com"},
		selectIdx: []int{1},
		textAreas: []string{"short", "Writes programs"},
		confirm:   []bool{true},
	}
	s, err := NewSession(e, chrome, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	values, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := map[string]string{
		"name":   "Ada",
		"email":  "ada@example.com",
		"gender": "female",
		"about":  "Writes programs",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Fatalf("submit hook mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"User Information",
		"⚠️ Name is required",
		"⚠️ Invalid email format",
		"⚠️ Minimum 10 chars",
		"🎉 Form submitted successfully!",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_ResetThenSubmit(t *testing.T) {
	resets := 0
	e, chrome := registration(t, engine.WithOnReset(func() { resets++ }))
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com", "Grace", "grace@example.com"},
		selectIdx: []int{0, 1},
		textAreas: []string{"first attempt text", "second attempt text"},
		confirm:   []bool{false, true, true},
	}
	s, err := NewSession(e, chrome, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	values, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if resets != 1 {
		t.Fatalf("expected one reset, got %d", resets)
	}
	if values["name"] != "Grace" || values["gender"] != "female" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestSession_DeclineEverything(t *testing.T) {
	e, chrome := registration(t)
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		selectIdx: []int{2},
		textAreas: []string{"long enough text"},
		confirm:   []bool{false, false},
	}
	s, _ := NewSession(e, chrome, WithPromptDriver(driver))
	if _, err := s.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if e.Submissions() != 0 {
		t.Fatalf("nothing should be submitted")
	}
}

func TestSession_MaxAttempts(t *testing.T) {
	e, chrome := registration(t)
	driver := &stubDriver{inputs: []string{"", ""}}
	s, _ := NewSession(e, chrome, WithPromptDriver(driver), WithMaxAttempts(2))
	if _, err := s.Run(context.Background()); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestSession_CrossFieldRejection(t *testing.T) {
	s := schema.MustNew(
		schema.Field{Name: "password", Kind: schema.KindPassword, Validate: validation.Required("Password is required")},
		schema.Field{Name: "confirm", Label: "Confirm", Validate: validation.EqualTo("password", "Passwords must match")},
	)
	e, err := engine.New(s)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	driver := &stubDriver{
		passwords: []string{"s3cret", "s3cret"},
		inputs:    []string{"s3cret", "s3cret"},
		confirm:   []bool{true},
	}
	session, _ := NewSession(e, formdef.Definition{}.Chrome(), WithPromptDriver(driver))
	values, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if values["confirm"] != "s3cret" {
		t.Fatalf("unexpected values %v", values)
	}
	if driver.passPos != 1 {
		t.Fatalf("password should be prompted once, got %d", driver.passPos)
	}
}

func TestEncode(t *testing.T) {
	s := schema.MustNew(schema.Field{Name: "name", Label: "Full Name"}, schema.Field{Name: "email"})
	values := map[string]string{"name": "Ada", "email": "ada@example.com"}

	pretty, err := Encode(s, values, OutputFormatPrettyText)
	if err != nil {
		t.Fatalf("encode pretty: %v", err)
	}
	if got := string(pretty); got != "Full Name: Ada\nemail: ada@example.com\n" {
		t.Fatalf("unexpected pretty output %q", got)
	}

	js, err := Encode(s, values, OutputFormatJSON)
	if err != nil {
		t.Fatalf("encode json: %v", err)
	}
	if !strings.Contains(string(js), `"email": "ada@example.com"`) {
		t.Fatalf("unexpected json %s", js)
	}

	if _, err := Encode(s, values, "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRenderer_TextSummary(t *testing.T) {
	e, chrome := registration(t)
	if err := e.Change("about", "tiny"); err != nil {
		t.Fatalf("change: %v", err)
	}
	out, err := NewRenderer().Render(context.Background(), render.NewView("registration", e, chrome), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	for _, fragment := range []string{
		"User Information\n",
		"Full Name *: \n",
		"About You: tiny (4/100)\n",
		"  ⚠️ Minimum 10 chars\n",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("summary missing %q:\n%s", fragment, got)
		}
	}
}
