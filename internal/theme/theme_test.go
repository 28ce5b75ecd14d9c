package theme

import (
	"strings"
	"testing"

	gotheme "github.com/goliatone/go-theme"
)

func TestSelectorConfigBase(t *testing.T) {
	selector := NewSelector(Default())

	cfg, err := selector.Config("smart", "light")
	if err != nil {
		t.Fatalf("Config returned error: %v", err)
	}
	if cfg.Theme != "smart" {
		t.Errorf("unexpected theme %q", cfg.Theme)
	}
	if cfg.Tokens["surface"] != "#ffffff" {
		t.Errorf("unexpected surface token %q", cfg.Tokens["surface"])
	}
	if cfg.CSSVars["--brand"] != cfg.Tokens["brand"] {
		t.Errorf("css vars not derived from tokens")
	}
}

func TestSelectorConfigVariantOverlay(t *testing.T) {
	selector := NewSelector(Default())

	cfg, err := selector.Config("smart", "dark")
	if err != nil {
		t.Fatalf("Config returned error: %v", err)
	}
	if cfg.Tokens["surface"] != "#111827" {
		t.Errorf("variant token not overlaid, got %q", cfg.Tokens["surface"])
	}
	if cfg.Tokens["brand"] == "" {
		t.Errorf("base tokens must survive the overlay")
	}
}

func TestSelectorConfigUnknown(t *testing.T) {
	selector := NewSelector(Default())

	if _, err := selector.Config("missing", ""); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	if _, err := selector.Config("smart", "sepia"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestSelectorAssetURL(t *testing.T) {
	manifest := &gotheme.Manifest{
		Name: "acme",
		Assets: gotheme.Assets{
			Prefix: "/assets/themes/acme/",
			Files:  map[string]string{"stylesheet": "theme.css"},
		},
	}
	selector := NewSelector(manifest)

	cfg, err := selector.Config("acme", "")
	if err != nil {
		t.Fatalf("Config returned error: %v", err)
	}
	if cfg.AssetURL == nil {
		t.Fatalf("expected asset resolver")
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Errorf("unexpected asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Errorf("unknown asset should resolve empty, got %q", got)
	}
}

func TestCSSVarsStyle(t *testing.T) {
	style := CSSVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	if !strings.HasPrefix(style, ":root {") {
		t.Fatalf("unexpected style prefix: %q", style)
	}
	if strings.Index(style, "--a") > strings.Index(style, "--b") {
		t.Errorf("vars must be sorted: %q", style)
	}
	if CSSVarsStyle(nil) != "" {
		t.Errorf("empty vars should render empty style")
	}
}
