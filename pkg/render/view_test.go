package render_test

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/engine"
	"github.com/goliatone/go-formstate/pkg/formdef"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func TestNewView_Fields(t *testing.T) {
	s := schema.MustNew(
		schema.Field{Name: "name", Label: "Full Name", Validate: validation.Required("Name is required")},
		schema.Field{Name: "about", Label: "About", Kind: schema.KindTextarea, MaxLength: 100, ShowCharCount: true},
	)
	e, err := engine.New(s, engine.WithSuccessDuration(0))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	if err := e.Change("about", "héllo"); err != nil {
		t.Fatalf("change: %v", err)
	}
	e.Submit()

	view := render.NewView("demo", e, formdef.Definition{}.Chrome())
	fields := view.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 field views, got %d", len(fields))
	}
	if fields[0].Error != "Name is required" || fields[0].Placeholder != "Enter full name" {
		t.Fatalf("name view mismatch: %+v", fields[0])
	}
	if fields[1].Value != "héllo" || fields[1].CharCount != 5 {
		t.Fatalf("about view mismatch: %+v", fields[1])
	}
	if view.ShowSuccess() {
		t.Fatalf("banner should be hidden")
	}
}
