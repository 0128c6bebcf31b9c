package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/schema"
)

const formTemplate = "templates/form.tpl"

// Option configures the HTML renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	manifest   *theme.Manifest
	selector   theme.ThemeSelector
	stylesheet string
	inlineCSS  bool
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/form.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithManifest replaces the bundled theme manifest.
func WithManifest(manifest *theme.Manifest) Option {
	return func(cfg *config) {
		cfg.manifest = manifest
	}
}

// WithThemeSelector resolves the manifest through a go-theme selector. The
// variant requested is "light" or "dark" depending on the engine flag.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		cfg.selector = selector
	}
}

// WithStylesheet links an external stylesheet instead of inlining the default.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
		cfg.inlineCSS = false
	}
}

// Renderer draws the form markup.
type Renderer struct {
	tmpl       *pongo2.Template
	manifest   *theme.Manifest
	selector   theme.ThemeSelector
	stylesheet string
	inlineCSS  string
}

var _ render.Renderer = (*Renderer)(nil)

// New parses the template bundle.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		manifest:   DefaultManifest(),
		inlineCSS:  true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	set := pongo2.NewSet("formstate", pongo2.NewFSLoader(cfg.templateFS))
	tmpl, err := set.FromFile(formTemplate)
	if err != nil {
		return nil, fmt.Errorf("html renderer: parse %s: %w", formTemplate, err)
	}

	r := &Renderer{
		tmpl:       tmpl,
		manifest:   cfg.manifest,
		selector:   cfg.selector,
		stylesheet: cfg.stylesheet,
	}
	if cfg.inlineCSS {
		r.inlineCSS = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the form template against the view.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if view.Schema == nil {
		return nil, fmt.Errorf("html renderer: view has no schema")
	}

	themeCfg, err := resolveTheme(r.selector, r.manifest, view.State.DarkMode)
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(opts.BasePath, "/")
	data := pongo2.Context{
		"form_id":      view.FormID,
		"chrome":       view.Chrome,
		"title_icon":   sanitizeIcon(view.Chrome.TitleIcon),
		"success_icon": sanitizeIcon(view.Chrome.SuccessIcon),
		"fields":       buildFields(view.Fields()),
		"dark":         view.State.DarkMode,
		"phase":        view.State.PhaseName,
		"show_success": view.ShowSuccess(),
		"show_toggle":  !opts.HideThemeToggle,
		"partial":      opts.Partial,
		"theme_name":   themeCfg.Theme,
		"variant":      themeCfg.Variant,
		"theme_style":  cssVarsStyle(themeCfg.CSSVars),
		"stylesheet":   r.stylesheet,
		"inline_css":   r.inlineCSS,
		"actions": map[string]string{
			"submit": base + "/submit",
			"reset":  base + "/reset",
			"theme":  base + "/theme",
			"fields": base + "/fields/",
		},
	}

	out, err := r.tmpl.ExecuteBytes(data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: execute template: %w", err)
	}
	return out, nil
}

type fieldData struct {
	ID          string
	Name        string
	Label       string
	Control     string
	InputType   string
	Value       string
	Error       string
	Placeholder string
	Required    bool
	MaxLength   int
	Min         string
	Max         string
	Options     []optionData
	CharCounter bool
	CharCount   int
	Icon        string
	Delay       string
}

type optionData struct {
	Value    string
	Label    string
	Selected bool
}

func buildFields(views []render.FieldView) []fieldData {
	out := make([]fieldData, 0, len(views))
	for i, v := range views {
		fd := fieldData{
			ID:          "fs-" + v.Name,
			Name:        v.Name,
			Label:       v.DisplayLabel(),
			Control:     controlFor(v.Kind),
			InputType:   string(v.Kind),
			Value:       v.Value,
			Error:       v.Error,
			Placeholder: v.Placeholder,
			Required:    v.Required,
			MaxLength:   v.MaxLength,
			Min:         v.Min,
			Max:         v.Max,
			CharCounter: v.ShowCharCount && v.MaxLength > 0,
			CharCount:   v.CharCount,
			Icon:        sanitizeIcon(v.Icon),
			Delay:       fmt.Sprintf("%.1f", float64(i)*0.1),
		}
		for _, opt := range v.Options {
			fd.Options = append(fd.Options, optionData{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == v.Value,
			})
		}
		out = append(out, fd)
	}
	return out
}

func controlFor(kind schema.Kind) string {
	switch kind {
	case schema.KindTextarea:
		return "textarea"
	case schema.KindSelect:
		return "select"
	default:
		return "input"
	}
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
