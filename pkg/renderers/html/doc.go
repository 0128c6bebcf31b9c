// Package html renders a form session as a server-side HTML page using pongo2
// templates. Colours and spacing come from a go-theme manifest whose "light"
// and "dark" variants follow the engine's dark-mode flag.
package html
