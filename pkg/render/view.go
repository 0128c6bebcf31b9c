package render

import (
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/engine"
	"github.com/goliatone/go-formstate/pkg/formdef"
	"github.com/goliatone/go-formstate/pkg/schema"
)

// View is everything a renderer needs to draw one form session.
type View struct {
	FormID string
	Schema *schema.Schema
	State  engine.Snapshot
	Chrome formdef.Chrome
}

// FieldView pairs a descriptor with its current value and error.
type FieldView struct {
	schema.Field
	Value       string
	Error       string
	Placeholder string
	CharCount   int
}

// NewView snapshots e.
func NewView(formID string, e *engine.Engine, chrome formdef.Chrome) View {
	return View{
		FormID: formID,
		Schema: e.Schema(),
		State:  e.Snapshot(),
		Chrome: chrome,
	}
}

// Fields returns the field views in schema order.
func (v View) Fields() []FieldView {
	fields := v.Schema.Fields()
	out := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		value := v.State.Values[f.Name]
		out = append(out, FieldView{
			Field:       f,
			Value:       value,
			Error:       v.State.Errors[f.Name],
			Placeholder: f.PlaceholderText(),
			CharCount:   utf8.RuneCountInString(value),
		})
	}
	return out
}

// ShowSuccess reports whether the success banner should be drawn.
func (v View) ShowSuccess() bool {
	return v.State.BannerVisible && len(v.State.Errors) == 0
}
