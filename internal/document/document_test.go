package document_test

import (
	"errors"
	"strings"
	"testing"

	"cigen/internal/document"
)

func parse(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := document.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParseRustChoice(t *testing.T) {
	doc := parse(t, `
presets:
  - rust:
      version: stable
      coverage: true
      linter: true
      security: false
      formatter: true
      build_release: false
`)
	if len(doc.Presets) != 1 {
		t.Fatalf("got %d presets, want 1", len(doc.Presets))
	}
	id, err := doc.Presets[0].PresetID()
	if err != nil {
		t.Fatalf("PresetID: %v", err)
	}
	if id != "rust" {
		t.Errorf("id = %q, want rust", id)
	}
	r := doc.Presets[0].Rust
	if !r.Coverage || !r.Linter || r.Security || !r.Formatter || r.BuildRelease {
		t.Errorf("option values not decoded: %+v", r)
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := document.Parse(strings.NewReader(`
presets:
  - rust:
      coverage: true
      bogus_option: true
`))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc := parse(t, "")
	if len(doc.Presets) != 0 {
		t.Errorf("empty input must parse to an empty document")
	}
	if err := doc.Validate(); !errors.Is(err, document.ErrEmpty) {
		t.Errorf("Validate = %v, want ErrEmpty", err)
	}
}

func TestValidateRejectsEmptyChoice(t *testing.T) {
	doc := &document.Document{Presets: []document.Choice{{}}}
	if err := doc.Validate(); err == nil {
		t.Fatal("expected error for choice naming no preset")
	}
}

func TestValidateRejectsDoubleChoice(t *testing.T) {
	doc := &document.Document{Presets: []document.Choice{{
		Rust: &document.RustChoice{},
		Go:   &document.GoChoice{},
	}}}
	if err := doc.Validate(); err == nil {
		t.Fatal("expected error for choice naming two presets")
	}
}

func TestPythonOptionalEnumAbsent(t *testing.T) {
	doc := parse(t, `
presets:
  - python:
      type_check: true
`)
	_, cfg, _, err := document.ToConfig(&doc.Presets[0])
	if err != nil {
		t.Fatalf("ToConfig: %v", err)
	}
	if sel, _ := cfg.GetEnum("linter"); sel != "none" {
		t.Errorf("absent linter must decode to none, got %q", sel)
	}
	if sel, _ := cfg.GetEnum("formatter"); sel != "none" {
		t.Errorf("absent formatter must decode to none, got %q", sel)
	}
}

func TestPythonUnknownEnumValue(t *testing.T) {
	doc := parse(t, `
presets:
  - python:
      linter: pylint
      type_check: false
`)
	_, _, _, err := document.ToConfig(&doc.Presets[0])
	if err == nil {
		t.Fatal("expected error for unknown linter value")
	}
	if !strings.Contains(err.Error(), "pylint") {
		t.Errorf("error should name the bad value, got %v", err)
	}
}

func TestMarshalOmitsNoneEnums(t *testing.T) {
	doc := &document.Document{Presets: []document.Choice{{
		Python: &document.PythonChoice{Version: "3.11", TypeCheck: true},
	}}}
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "linter") || strings.Contains(string(data), "formatter") {
		t.Errorf("disabled tools must be omitted from the file:\n%s", data)
	}
}

func TestRoundTripAllPresets(t *testing.T) {
	src := `
presets:
  - rust:
      version: stable
      coverage: true
      linter: true
      security: true
      formatter: false
      build_release: true
  - python:
      version: "3.12"
      linter: ruff
      type_check: true
      formatter: black
  - go:
      version: "1.22"
      linter: true
      security: false
  - docker:
      image_name: webapp
      registry: github
      cache: true
      tags_only: true
      qemu: true
      multiplatform: true
`
	doc := parse(t, src)
	if err := doc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for i := range doc.Presets {
		id, cfg, version, err := document.ToConfig(&doc.Presets[i])
		if err != nil {
			t.Fatalf("ToConfig %d: %v", i, err)
		}
		choice, err := document.FromConfig(cfg)
		if err != nil {
			t.Fatalf("FromConfig %s: %v", id, err)
		}
		backID, _, _, err := document.ToConfig(choice)
		if err != nil {
			t.Fatalf("ToConfig round trip %s: %v", id, err)
		}
		if backID != id {
			t.Errorf("round trip changed preset id: %q -> %q", id, backID)
		}
		_, cfg2, _, err := document.ToConfig(choice)
		if err != nil {
			t.Fatalf("second ToConfig %s: %v", id, err)
		}
		if !cfg.Equal(cfg2) {
			t.Errorf("%s: config changed across document round trip", id)
		}
		_ = version
	}
}

func TestDockerRoundTripKeepsImageName(t *testing.T) {
	doc := parse(t, `
presets:
  - docker:
      image_name: backend
      cache: false
      tags_only: false
      qemu: false
      multiplatform: false
`)
	_, cfg, _, err := document.ToConfig(&doc.Presets[0])
	if err != nil {
		t.Fatalf("ToConfig: %v", err)
	}
	if got := cfg.GetString("image_name"); got != "backend" {
		t.Errorf("image_name = %q, want backend", got)
	}
	if sel, _ := cfg.GetEnum("registry_type"); sel != "none" {
		t.Errorf("absent registry must decode to none, got %q", sel)
	}
}
