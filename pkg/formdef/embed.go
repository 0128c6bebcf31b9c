package formdef

import (
	"embed"
	"io/fs"
)

//go:embed definitions/*
var embeddedDefinitions embed.FS

// DefaultFormID names the bundled registration form.
const DefaultFormID = "registration"

// EmbeddedFS returns the bundled definitions. Pass it to LoadFS to use the
// default registration form.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
