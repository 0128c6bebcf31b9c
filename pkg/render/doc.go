// Package render defines the renderer contract shared by the HTML and
// terminal front ends, plus a name-keyed registry.
package render
