// Package schema describes the static shape of a form: an ordered list of
// immutable field descriptors, each carrying identity, presentation hints and
// a pure validation function. The engine consumes a Schema read-only.
package schema
