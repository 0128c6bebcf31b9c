package orchestrator_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formstate/pkg/engine"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func TestOrchestrator_OpenDefaultForm(t *testing.T) {
	timers := &testsupport.ManualTimers{}
	gen := orchestrator.New(orchestrator.WithEngineOptions(engine.WithTimerFunc(timers.AfterFunc)))

	form, err := gen.Open(testsupport.Context(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer form.Close()

	if form.ID != "registration" {
		t.Fatalf("expected registration form, got %q", form.ID)
	}

	e := form.Engine
	for _, step := range [][2]string{
		{"name", "Ada Lovelace"},
		{"email", "ada@example.com"},
		{"gender", "female"},
		{"about", "Writes programs for engines"},
	} {
		if err := e.Change(step[0], step[1]); err != nil {
			t.Fatalf("change %s: %v", step[0], err)
		}
	}
	if !e.Submit() {
		t.Fatalf("expected submit to succeed, errors: %v", e.Errors())
	}

	got := e.Snapshot()
	goldenPath := filepath.Join("testdata", "registration_submitted.golden.json")
	if testsupport.WriteGolden(t, goldenPath, got) {
		return
	}
	var want engine.Snapshot
	testsupport.MustLoadJSON(t, goldenPath, &want)
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if timers.Scheduled() != 1 {
		t.Fatalf("expected one banner timer, got %d", timers.Scheduled())
	}
}

func TestOrchestrator_UnknownForm(t *testing.T) {
	gen := orchestrator.New()
	_, err := gen.Open(testsupport.Context(), orchestrator.Request{FormID: "missing"})
	if !errors.Is(err, orchestrator.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestOrchestrator_CustomDefinitions(t *testing.T) {
	fsys := fstest.MapFS{
		"contact.yaml": {Data: []byte(`
id: contact
title: Contact
fields:
  - name: message
    label: Message
    type: textarea
    required: true
`)},
	}
	gen := orchestrator.New(orchestrator.WithDefinitions(fsys))

	ids, err := gen.FormIDs()
	if err != nil {
		t.Fatalf("form ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != "contact" {
		t.Fatalf("unexpected ids: %v", ids)
	}

	form, err := gen.Open(testsupport.Context(), orchestrator.Request{FormID: "contact"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer form.Close()

	if form.Engine.Submit() {
		t.Fatalf("expected empty required message to block submit")
	}
	if msg, _ := form.Engine.Error("message"); msg != "Message is required" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestOrchestrator_OpenAPISource(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "openapi", "testdata", "users.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	gen := orchestrator.New()

	if _, err := gen.Open(testsupport.Context(), orchestrator.Request{OpenAPI: data}); !errors.Is(err, orchestrator.ErrOperationRequired) {
		t.Fatalf("expected ErrOperationRequired, got %v", err)
	}

	form, err := gen.Open(testsupport.Context(), orchestrator.Request{OpenAPI: data, OperationID: "createUser"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer form.Close()

	if form.Definition.Title != "Register a user" {
		t.Fatalf("expected operation summary as title, got %q", form.Definition.Title)
	}
	names := form.Schema.Names()
	if len(names) == 0 || names[0] != "full_name" {
		t.Fatalf("expected x-formstate-order to lead, got %v", names)
	}
}

func TestOrchestrator_Render(t *testing.T) {
	gen := orchestrator.New()
	form, err := gen.Open(testsupport.Context(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer form.Close()

	if got := gen.Renderers(); len(got) != 2 || got[0] != "html" || got[1] != "text" {
		t.Fatalf("unexpected renderers: %v", got)
	}

	out, err := gen.Render(testsupport.Context(), form, "", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(string(out), "User Information") {
		t.Fatalf("expected title in html output")
	}

	text, err := gen.Render(testsupport.Context(), form, "text", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render text: %v", err)
	}
	if !strings.Contains(string(text), "Full Name *") {
		t.Fatalf("expected required marker in text output:\n%s", text)
	}

	if _, err := gen.Render(testsupport.Context(), form, "pdf", render.RenderOptions{}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}
