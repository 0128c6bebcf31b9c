package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/schema"
)

// Renderer prints a plain-text summary of a form session: one line per
// field with its value and, when invalid, its message.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer returns the text renderer using DefaultTheme.
func NewRenderer() *Renderer {
	return &Renderer{theme: DefaultTheme}
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view render.View, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if view.Schema == nil {
		return nil, fmt.Errorf("tui renderer: view has no schema")
	}

	var b strings.Builder
	if view.Chrome.Title != "" {
		b.WriteString(view.Chrome.Title)
		b.WriteString("\n")
		if view.Chrome.Subtitle != "" {
			b.WriteString(view.Chrome.Subtitle)
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("-", len([]rune(view.Chrome.Title))))
		b.WriteString("\n")
	}
	if view.ShowSuccess() {
		b.WriteString(r.theme.SuccessPrefix + view.Chrome.SuccessMessage + "\n")
	}

	for _, field := range view.Fields() {
		label := field.DisplayLabel()
		if field.Required {
			label += " *"
		}
		value := field.Value
		if field.Kind == schema.KindPassword && value != "" {
			value = strings.Repeat("*", field.CharCount)
		}
		fmt.Fprintf(&b, "%s: %s", label, value)
		if field.ShowCharCount && field.MaxLength > 0 {
			fmt.Fprintf(&b, " (%d/%d)", field.CharCount, field.MaxLength)
		}
		b.WriteString("\n")
		if field.Error != "" {
			b.WriteString("  " + r.theme.ErrorPrefix + field.Error + "\n")
		}
	}
	return []byte(b.String()), nil
}
