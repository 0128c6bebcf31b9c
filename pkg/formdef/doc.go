// Package formdef loads declarative form definitions from JSON or YAML files
// and turns them into schemas and engine options. Definitions carry the field
// descriptors, their validation rules, initial values and the chrome a
// renderer needs (title, button text, success message).
package formdef
