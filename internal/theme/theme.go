// Package theme resolves go-theme manifests into renderer configuration for
// the onboarding pages: merged design tokens, derived CSS custom properties,
// and asset URL resolution.
package theme

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Default returns the built-in SMART manifest with a light base palette and
// a dark variant.
func Default() *theme.Manifest {
	return &theme.Manifest{
		Name:    "smart",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":      "#1d4ed8",
			"surface":    "#ffffff",
			"text":       "#111827",
			"muted":      "#6b7280",
			"danger":     "#dc2626",
			"success":    "#15803d",
			"radius":     "8px",
			"font-stack": "system-ui, -apple-system, sans-serif",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#111827",
					"text":    "#f9fafb",
					"muted":   "#9ca3af",
				},
			},
		},
	}
}

// Selector resolves a named theme and variant into a renderer config.
type Selector struct {
	manifests map[string]*theme.Manifest
}

// NewSelector builds a Selector over the given manifests. Nil manifests and
// unnamed manifests are skipped.
func NewSelector(manifests ...*theme.Manifest) *Selector {
	s := &Selector{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Config resolves the named theme and variant. Variant tokens overlay the
// base tokens; every token also becomes a CSS custom property. An empty
// variant selects the base palette; an unknown variant is an error.
func (s *Selector) Config(name, variant string) (*theme.RendererConfig, error) {
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme: unknown theme %q", name)
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if variant != "" && variant != "light" {
		overlay, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("theme: theme %q has no variant %q", name, variant)
		}
		for key, value := range overlay.Tokens {
			tokens[key] = value
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	cfg := &theme.RendererConfig{
		Theme:   name,
		Variant: variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}
	if manifest.Assets.Prefix != "" {
		files := manifest.Assets.Files
		prefix := strings.TrimRight(manifest.Assets.Prefix, "/")
		cfg.AssetURL = func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			return prefix + "/" + file
		}
	}
	return cfg, nil
}

// CSSVarsStyle renders CSS custom properties as a :root block, sorted for
// stable output.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		fmt.Fprintf(&b, "  %s: %s;\n", key, vars[key])
	}
	b.WriteString("}")
	return b.String()
}
