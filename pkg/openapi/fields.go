package openapi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// convertProperty maps a scalar property to a field. It reports false for
// objects and arrays.
func convertProperty(name string, prop *openapi3.Schema, required bool, logger zerolog.Logger) (schema.Field, bool) {
	typ := schemaType(prop)
	if typ == openapi3.TypeObject || typ == openapi3.TypeArray {
		return schema.Field{}, false
	}

	ext := fieldExtension(prop)
	field := schema.Field{
		Name:        name,
		Label:       firstNonEmpty(ext["label"], prop.Title, humanize(name)),
		Required:    required,
		Placeholder: ext["placeholder"],
		Icon:        ext["icon"],
		Default:     firstNonEmpty(ext["default"], scalarString(prop.Default)),
	}
	field.ShowCharCount, _ = strconv.ParseBool(ext["showCharCount"])
	if prop.MaxLength != nil {
		field.MaxLength = int(*prop.MaxLength)
	}
	if prop.Min != nil {
		field.Min = formatNumber(*prop.Min)
	}
	if prop.Max != nil {
		field.Max = formatNumber(*prop.Max)
	}

	var allowed []string
	for _, v := range prop.Enum {
		if s := scalarString(v); s != "" {
			allowed = append(allowed, s)
		}
	}
	if typ == openapi3.TypeBoolean && len(allowed) == 0 {
		allowed = []string{"true", "false"}
	}
	for _, v := range allowed {
		field.Options = append(field.Options, schema.Option{Value: v, Label: humanize(v)})
	}

	field.Kind = fieldKind(typ, prop, len(field.Options) > 0)
	if override := ext["type"]; override != "" {
		field.Kind = schema.ParseKind(override)
	}
	field.Validate = validators(field, prop, allowed, logger)
	return field, true
}

func fieldKind(typ string, prop *openapi3.Schema, hasOptions bool) schema.Kind {
	if hasOptions {
		return schema.KindSelect
	}
	switch strings.ToLower(prop.Format) {
	case "email":
		return schema.KindEmail
	case "password":
		return schema.KindPassword
	case "date", "date-time":
		return schema.KindDate
	case "uri", "url":
		return schema.KindURL
	case "tel", "phone":
		return schema.KindTel
	case "textarea":
		return schema.KindTextarea
	}
	switch typ {
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return schema.KindNumber
	}
	if prop.MaxLength != nil && *prop.MaxLength > TextareaThreshold {
		return schema.KindTextarea
	}
	return schema.KindText
}

func validators(field schema.Field, prop *openapi3.Schema, allowed []string, logger zerolog.Logger) schema.Validator {
	label := field.DisplayLabel()
	var chain []schema.Validator
	if field.Required {
		msg := label + " is required"
		if field.Kind == schema.KindSelect {
			msg = "Please select " + strings.ToLower(label)
		}
		chain = append(chain, validation.Required(msg))
	}
	if field.Kind == schema.KindEmail {
		chain = append(chain, validation.Email(""))
	}
	if prop.MinLength > 0 {
		chain = append(chain, validation.MinLength(int(prop.MinLength), fmt.Sprintf("Minimum %d chars", prop.MinLength)))
	}
	if prop.MaxLength != nil {
		chain = append(chain, validation.MaxLength(int(*prop.MaxLength), fmt.Sprintf("Maximum %d chars", *prop.MaxLength)))
	}
	if prop.Pattern != "" {
		// ECMA-only syntax such as lookahead does not compile under RE2.
		re, err := regexp.Compile(prop.Pattern)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("property", field.Name).
				Str("pattern", prop.Pattern).
				Msg("unsupported pattern, constraint dropped")
		} else {
			chain = append(chain, validation.Pattern(re, ""))
		}
	}
	if len(allowed) > 0 {
		chain = append(chain, validation.OneOf(allowed, ""))
	}
	if field.Kind == schema.KindNumber {
		chain = append(chain, validation.Range(prop.Min, prop.Max, ""))
	}
	return validation.Chain(chain...)
}

func schemaType(prop *openapi3.Schema) string {
	if prop.Type == nil {
		return ""
	}
	for _, t := range prop.Type.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}

func fieldExtension(prop *openapi3.Schema) map[string]string {
	raw, ok := prop.Extensions[FieldExtension].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		out[key] = scalarString(value)
	}
	return out
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatNumber(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// humanize turns snake, kebab or camel case identifiers into a label:
// "first_name" and "firstName" both become "First name".
func humanize(raw string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}
	for i, r := range raw {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0:
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	if len(words) == 0 {
		return raw
	}
	label := strings.Join(words, " ")
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
