package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the engine.
type RenderOptions struct {
	// BasePath prefixes the form action URLs (e.g. "/forms/registration").
	// Empty means actions are rooted at "/".
	BasePath string
	// Partial omits the document wrapper so the markup can be embedded.
	Partial bool
	// HideThemeToggle suppresses the dark-mode button.
	HideThemeToggle bool
}
