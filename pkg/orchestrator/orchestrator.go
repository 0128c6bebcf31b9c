package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/engine"
	"github.com/goliatone/go-formstate/pkg/formdef"
	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
	"github.com/goliatone/go-formstate/pkg/schema"
)

const defaultRendererName = "html"

var (
	// ErrFormNotFound is returned when the requested definition id is absent.
	ErrFormNotFound = errors.New("orchestrator: form not found")
	// ErrOperationRequired is returned when an OpenAPI document is supplied
	// without an operation id.
	ErrOperationRequired = errors.New("orchestrator: operation id is required")
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDefinitions supplies the fs.FS holding form definitions. The embedded
// registration form is used when omitted.
func WithDefinitions(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.definitions = fsys
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when Render is called with
// an empty name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithEngineOptions appends options to every engine the orchestrator opens,
// after the definition's own settings.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(o *Orchestrator) {
		o.engineOptions = append(o.engineOptions, opts...)
	}
}

// WithOpenAPIOptions forwards options to the OpenAPI field source.
func WithOpenAPIOptions(opts ...openapi.Option) Option {
	return func(o *Orchestrator) {
		o.openapiOptions = append(o.openapiOptions, opts...)
	}
}

// WithLogger sets the logger handed to engines and the OpenAPI loader.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator resolves forms and renders them. Defaults are the embedded
// definitions and a registry holding the html and text renderers.
type Orchestrator struct {
	definitions     fs.FS
	store           *formdef.Store
	registry        *render.Registry
	defaultRenderer string
	engineOptions   []engine.Option
	openapiOptions  []openapi.Option
	logger          zerolog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Failures
// while preparing defaults surface from the first Open or Render call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.definitions == nil {
		o.definitions = formdef.EmbeddedFS()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: html renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		o.registry.MustRegister(tui.NewRenderer())
	}
}

// Request selects the field source. OpenAPI takes precedence over FormID
// when set; FormID defaults to the bundled registration form.
type Request struct {
	FormID      string
	OpenAPI     []byte
	OperationID string
}

// Form is an opened session: its definition chrome, schema and engine.
type Form struct {
	ID         string
	Definition formdef.Definition
	Schema     *schema.Schema
	Engine     *engine.Engine
}

// View snapshots the engine for rendering.
func (f *Form) View() render.View {
	return render.NewView(f.ID, f.Engine, f.Definition.Chrome())
}

// Close releases the engine.
func (f *Form) Close() {
	f.Engine.Close()
}

// Open builds the schema for req and an engine over it. Extra options are
// applied after the orchestrator-level engine options.
func (o *Orchestrator) Open(ctx context.Context, req Request, extra ...engine.Option) (*Form, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	def, s, err := o.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	opts := def.EngineOptions()
	opts = append(opts, engine.WithLogger(o.logger.With().Str("form", def.ID).Logger()))
	opts = append(opts, o.engineOptions...)
	opts = append(opts, extra...)
	e, err := engine.New(s, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: form %q: %w", def.ID, err)
	}

	o.logger.Debug().Str("form", def.ID).Int("fields", s.Len()).Msg("form opened")
	return &Form{ID: def.ID, Definition: def, Schema: s, Engine: e}, nil
}

func (o *Orchestrator) resolve(ctx context.Context, req Request) (formdef.Definition, *schema.Schema, error) {
	if len(req.OpenAPI) > 0 {
		return o.resolveOpenAPI(ctx, req)
	}

	store, err := o.loadStore()
	if err != nil {
		return formdef.Definition{}, nil, err
	}
	id := req.FormID
	if id == "" {
		id = formdef.DefaultFormID
	}
	def, ok := store.Definition(id)
	if !ok {
		return formdef.Definition{}, nil, fmt.Errorf("%w: %q", ErrFormNotFound, id)
	}
	s, err := def.Schema()
	if err != nil {
		return formdef.Definition{}, nil, err
	}
	return def, s, nil
}

func (o *Orchestrator) resolveOpenAPI(ctx context.Context, req Request) (formdef.Definition, *schema.Schema, error) {
	if req.OperationID == "" {
		return formdef.Definition{}, nil, ErrOperationRequired
	}
	opts := append([]openapi.Option{openapi.WithLogger(o.logger)}, o.openapiOptions...)
	s, err := openapi.FromDocument(ctx, req.OpenAPI, req.OperationID, opts...)
	if err != nil {
		return formdef.Definition{}, nil, fmt.Errorf("orchestrator: openapi: %w", err)
	}

	def := formdef.Definition{ID: req.OperationID}
	ops, err := openapi.Operations(ctx, req.OpenAPI, opts...)
	if err == nil {
		for _, op := range ops {
			if op.ID == req.OperationID {
				def.Title = op.Summary
				break
			}
		}
	}
	return def, s, nil
}

// FormIDs lists the loaded definition ids.
func (o *Orchestrator) FormIDs() ([]string, error) {
	store, err := o.loadStore()
	if err != nil {
		return nil, err
	}
	return store.IDs(), nil
}

func (o *Orchestrator) loadStore() (*formdef.Store, error) {
	if o.store != nil {
		return o.store, nil
	}
	store, err := formdef.LoadFS(o.definitions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load definitions: %w", err)
	}
	o.store = store
	return store, nil
}

// Renderer returns the named renderer, or the default when name is empty.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if name == "" {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	return o.registry.List()
}

// Render draws the current state of form with the named renderer.
func (o *Orchestrator) Render(ctx context.Context, form *Form, rendererName string, opts render.RenderOptions) ([]byte, error) {
	renderer, err := o.Renderer(rendererName)
	if err != nil {
		return nil, err
	}
	out, err := renderer.Render(ctx, form.View(), opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return out, nil
}
