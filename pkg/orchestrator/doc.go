// Package orchestrator wires a field source (form definitions or an OpenAPI
// operation) to an engine and a renderer registry, providing a single entry
// point for the CLI and for callers embedding a form session.
package orchestrator
