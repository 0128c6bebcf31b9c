// Package formstate is the top-level entry point: it re-exports the
// orchestrator so callers can open a form session and render it with one
// import.
package formstate

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formstate/pkg/formdef"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
)

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Form aliases orchestrator.Form.
type Form = orchestrator.Form

// RenderOptions describes per-request rendering overrides.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Open builds a form session for req using the default orchestrator.
func Open(ctx context.Context, req Request, options ...orchestrator.Option) (*Form, error) {
	return orchestrator.New(options...).Open(ctx, req)
}

// GenerateHTML opens req and renders its initial state with the html
// renderer. The engine is closed before returning.
func GenerateHTML(ctx context.Context, req Request, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	form, err := gen.Open(ctx, req)
	if err != nil {
		return nil, err
	}
	defer form.Close()
	return gen.Render(ctx, form, "html", RenderOptions{})
}

// EmbeddedDefinitions exposes the bundled form definitions.
func EmbeddedDefinitions() fs.FS {
	return formdef.EmbeddedFS()
}

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the stylesheet so applications can serve it themselves.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formstate.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
