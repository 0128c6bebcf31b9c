package openapi

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// Operation summarises an operation that can back a form.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

var methods = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "HEAD", "OPTIONS", "TRACE"}

// ReadFile loads a document from disk.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return data, nil
}

// Operations lists every operation that declares an object request body,
// sorted by id.
func Operations(ctx context.Context, data []byte, opts ...Option) ([]Operation, error) {
	cfg := newConfig(opts)
	doc, err := load(ctx, data, cfg)
	if err != nil {
		return nil, err
	}

	var out []Operation
	eachOperation(doc, func(method, path string, op *openapi3.Operation) bool {
		if requestSchema(op) != nil {
			out = append(out, Operation{
				ID:      operationID(method, path, op),
				Method:  method,
				Path:    path,
				Summary: op.Summary,
			})
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FromDocument finds operationID in the document and maps its request body
// properties to form fields. Nested objects and arrays are skipped.
func FromDocument(ctx context.Context, data []byte, operationID string, opts ...Option) (*schema.Schema, error) {
	cfg := newConfig(opts)
	doc, err := load(ctx, data, cfg)
	if err != nil {
		return nil, err
	}

	var found *openapi3.Operation
	eachOperation(doc, func(method, path string, op *openapi3.Operation) bool {
		if op.OperationID == operationID || operationIDFallback(method, path) == operationID {
			found = op
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(found)
	if body == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	fields := make([]schema.Field, 0, len(body.Properties))
	for _, name := range propertyOrder(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := convertProperty(name, ref.Value, required[name], cfg.logger.With().Str("operation", operationID).Logger())
		if !ok {
			cfg.logger.Debug().Str("operation", operationID).Str("property", name).Msg("skipping non-scalar property")
			continue
		}
		fields = append(fields, field)
	}

	s, err := schema.New(fields...)
	if err != nil {
		return nil, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	return s, nil
}

func load(ctx context.Context, data []byte, cfg config) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyDocument
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.allowExternalRefs,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}

func eachOperation(doc *openapi3.T, fn func(method, path string, op *openapi3.Operation) bool) {
	if doc.Paths == nil {
		return
	}
	items := doc.Paths.Map()
	paths := make([]string, 0, len(items))
	for path := range items {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := items[path]
		if item == nil {
			continue
		}
		for _, method := range methods {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			if !fn(method, path, op) {
				return
			}
		}
	}
}

func operationID(method, path string, op *openapi3.Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return operationIDFallback(method, path)
}

func operationIDFallback(method, path string) string {
	return strings.ToLower(method) + ":" + path
}

// requestSchema returns the object schema of the first supported media type.
func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	var ref *openapi3.SchemaRef
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			ref = mt.Schema
			break
		}
	}
	if ref == nil {
		keys := make([]string, 0, len(content))
		for key := range content {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if mt := content[key]; mt != nil && mt.Schema != nil {
				ref = mt.Schema
				break
			}
		}
	}
	if ref == nil || ref.Value == nil || len(ref.Value.Properties) == 0 {
		return nil
	}
	return ref.Value
}

func propertyOrder(body *openapi3.Schema) []string {
	seen := make(map[string]bool, len(body.Properties))
	var order []string
	if raw, ok := body.Extensions[OrderExtension].([]any); ok {
		for _, item := range raw {
			name, ok := item.(string)
			if !ok || seen[name] {
				continue
			}
			if _, exists := body.Properties[name]; !exists {
				continue
			}
			seen[name] = true
			order = append(order, name)
		}
	}

	rest := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
