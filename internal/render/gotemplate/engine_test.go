package gotemplate

import (
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"page.html": &fstest.MapFile{
			Data: []byte("Hello {{ name }} from {{ app }}"),
		},
		"phone.html": &fstest.MapFile{
			Data: []byte("{{ number|phone }}"),
		},
	}
}

func TestEngineRequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func TestRenderNamedTemplate(t *testing.T) {
	engine, err := New(WithFS(testFS()), WithGlobalData(map[string]any{"app": "onboarding"}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var sink strings.Builder
	out, err := engine.Render("page", map[string]any{"name": "Pat"}, &sink)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != "Hello Pat from onboarding" {
		t.Fatalf("unexpected output %q", out)
	}
	if sink.String() != out {
		t.Fatalf("writer output mismatch: %q", sink.String())
	}

	// extension may be given explicitly
	if _, err := engine.Render("page.html", map[string]any{"name": "Pat"}); err != nil {
		t.Fatalf("Render with extension returned error: %v", err)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := engine.Render("missing", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestRenderString(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	out, err := engine.RenderString("{{ value|trim }}", map[string]any{"value": "  x  "})
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if out != "x" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPhoneFilter(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	out, err := engine.Render("phone", map[string]any{"number": "5551234567"})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != "(555) 123-4567" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderStructIntegersStayIntegers(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{
		"progress.html": &fstest.MapFile{
			Data: []byte("Step {{ step }} of {{ totalSteps }}{% if step == 1 %} (first){% endif %}"),
		},
	}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	data := struct {
		Step       int     `json:"step"`
		TotalSteps int     `json:"totalSteps"`
		Score      float64 `json:"score"`
	}{Step: 1, TotalSteps: 5, Score: 0.5}
	out, err := engine.Render("progress", data)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != "Step 1 of 5 (first)" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderStructData(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	data := struct {
		Name string `json:"name"`
	}{Name: "Riley"}
	out, err := engine.Render("page", data)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(out, "Riley") {
		t.Fatalf("unexpected output %q", out)
	}
}
