// Package engine owns the runtime state of one form session: current values,
// current validation errors and the submission confirmation state machine.
//
// The engine is driven by four events (field change, field blur, submit and
// reset) that run synchronously to completion. It calls caller-supplied hooks
// but owns no rendering logic; renderers read Values, Errors and Phase to
// decide what to draw.
//
// An Engine is not safe for concurrent use. Callers that receive events from
// several goroutines (an HTTP server, for example) must serialise access.
package engine
