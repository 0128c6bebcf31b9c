package html

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// ThemeName identifies the bundled manifest.
	ThemeName    = "formstate"
	VariantLight = "light"
	VariantDark  = "dark"
)

// DefaultManifest returns the bundled palette. The dark variant only
// overrides colours.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"accent-primary":    "#2575fc",
			"accent-secondary":  "#6a11cb",
			"success-color":     "#28a745",
			"error-color":       "#ff4d4f",
			"text-color":        "#333333",
			"text-light":        "#555555",
			"border-color":      "#e0e0e0",
			"background":        "#ffffff",
			"input-bg":          "#ffffff",
			"field-gap":         "20px",
			"padding":           "14px 16px",
			"border-radius":     "12px",
			"container-padding": "50px 60px",
			"duration":          "0.3s",
			"easing":            "cubic-bezier(0.4, 0, 0.2, 1)",
		},
		Variants: map[string]theme.Variant{
			VariantDark: {
				Tokens: map[string]string{
					"text-color":   "#f0f0f0",
					"text-light":   "#b5b5c3",
					"border-color": "#3a3a4f",
					"background":   "#1e1e2f",
					"input-bg":     "#2a2a3d",
				},
			},
		},
	}
}

func variantName(dark bool) string {
	if dark {
		return VariantDark
	}
	return VariantLight
}

// resolveTheme merges the manifest tokens with the variant overrides and
// derives the CSS custom properties.
func resolveTheme(selector theme.ThemeSelector, manifest *theme.Manifest, dark bool) (*theme.RendererConfig, error) {
	variant := variantName(dark)
	name := ThemeName
	if manifest != nil && manifest.Name != "" {
		name = manifest.Name
	}

	if selector != nil {
		selection, err := selector.Select(name, variant)
		if err != nil {
			return nil, fmt.Errorf("html renderer: select theme %q/%s: %w", name, variant, err)
		}
		if selection != nil {
			if selection.Manifest != nil {
				manifest = selection.Manifest
			}
			if selection.Theme != "" {
				name = selection.Theme
			}
			if selection.Variant != "" {
				variant = selection.Variant
			}
		}
	}
	if manifest == nil {
		manifest = DefaultManifest()
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if v, ok := manifest.Variants[variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:   name,
		Variant: variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}, nil
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	return b.String()
}
