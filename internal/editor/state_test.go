package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cigen/internal/detect"
	"cigen/internal/document"
	"cigen/internal/platform"
	"cigen/internal/preset"
)

func newTestState(t *testing.T, typ detect.ProjectType, version string) *State {
	t.Helper()
	res := &detect.Result{Type: typ, LanguageVersion: version}
	return New(res, t.TempDir(), platform.GitHub)
}

func presetRows(s *State) []string {
	var ids []string
	for _, item := range s.Items {
		if item.Kind == ItemPreset {
			ids = append(ids, item.PresetID)
		}
	}
	return ids
}

func TestTreeMatchingPresetFirst(t *testing.T) {
	s := newTestState(t, detect.GoApp, "1.21")

	rows := presetRows(s)
	if rows[0] != "go-app" {
		t.Errorf("first preset = %q, want go-app", rows[0])
	}
	// Non-matching presets keep their registration order.
	want := []string{"go-app", "rust", "python-app", "docker"}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("preset order = %v, want %v", rows, want)
		}
	}

	if !s.IsPresetExpanded("go-app") {
		t.Error("matching preset must start expanded")
	}
	if s.IsPresetExpanded("rust") {
		t.Error("non-matching preset must start collapsed")
	}
}

func TestTreeWellFormed(t *testing.T) {
	s := newTestState(t, detect.RustBinary, "stable")
	s.ExpandFeature("rust", "testing")

	for i, item := range s.Items {
		switch item.Kind {
		case ItemPreset:
			if item.PresetID == "" {
				t.Errorf("item %d: preset row without id", i)
			}
		case ItemFeature:
			if !s.IsPresetExpanded(item.PresetID) {
				t.Errorf("item %d: feature row under collapsed preset", i)
			}
		case ItemOption:
			if !s.IsFeatureExpanded(item.PresetID, item.FeatureID) {
				t.Errorf("item %d: option row under collapsed feature", i)
			}
		}
	}
}

func TestCursorSaturates(t *testing.T) {
	s := newTestState(t, detect.GoApp, "1.21")
	s.MoveCursor(-10)
	if s.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.Cursor)
	}
	s.MoveCursor(1000)
	if s.Cursor != len(s.Items)-1 {
		t.Errorf("cursor = %d, want %d", s.Cursor, len(s.Items)-1)
	}
}

func TestCollapseToFeatureMovesCursor(t *testing.T) {
	s := newTestState(t, detect.RustBinary, "stable")
	s.ExpandFeature("rust", "testing")

	// Put the cursor on the coverage option row.
	optIdx := -1
	for i, item := range s.Items {
		if item.Kind == ItemOption && item.OptionID == "enable_coverage" {
			optIdx = i
			break
		}
	}
	if optIdx < 0 {
		t.Fatal("coverage option row not found")
	}
	s.Cursor = optIdx

	s.CollapseToFeature("rust", "testing")
	item, ok := s.CurrentItem()
	if !ok || item.Kind != ItemFeature || item.FeatureID != "testing" {
		t.Errorf("cursor after collapse = %+v, want the testing feature row", item)
	}
	for _, it := range s.Items {
		if it.Kind == ItemOption && it.FeatureID == "testing" {
			t.Error("option rows must disappear when the feature collapses")
		}
	}
}

func TestPreviewForDetectedRustProject(t *testing.T) {
	s := newTestState(t, detect.RustBinary, "stable")
	if s.GenError != "" {
		t.Fatalf("unexpected generation error: %s", s.GenError)
	}
	if !strings.Contains(s.Preview, "rust/test:") {
		t.Errorf("preview must show the rust workflow:\n%s", s.Preview)
	}
}

// The preview is driven by the first preset in registration order with any
// enabled option. Enum and string options always carry a value, so with the
// rust booleans all off the python preset takes over.
func TestPreviewPresetSelectionOrder(t *testing.T) {
	s := newTestState(t, detect.GoApp, "1.21")
	active, ok := s.ActivePreset()
	if !ok {
		t.Fatal("no active preset")
	}
	if active.ID() != "python-app" {
		t.Errorf("active preset = %q, want python-app", active.ID())
	}

	s.Config("rust").Set("enable_linter", preset.BoolValue(true))
	active, _ = s.ActivePreset()
	if active.ID() != "rust" {
		t.Errorf("active preset = %q, want rust once a rust option is on", active.ID())
	}
}

func TestToggleOptionUpdatesPreview(t *testing.T) {
	s := newTestState(t, detect.RustBinary, "stable")
	if !strings.Contains(s.Preview, "rust/lint:") {
		t.Fatalf("lint job expected with defaults:\n%s", s.Preview)
	}
	s.ToggleOption("rust", "enable_linter")
	if strings.Contains(s.Preview, "rust/lint:") {
		t.Errorf("lint job must vanish after toggling the linter off:\n%s", s.Preview)
	}
}

func TestTogglePresetFlipsAllBooleans(t *testing.T) {
	s := newTestState(t, detect.RustBinary, "stable")
	if !s.Config("rust").AnyBoolOn() {
		t.Fatal("detected rust preset must start with booleans on")
	}

	s.TogglePreset("rust")
	if s.Config("rust").AnyBoolOn() {
		t.Error("toggle must turn every boolean off")
	}

	s.TogglePreset("rust")
	cfg := s.Config("rust")
	for _, id := range []string{"enable_coverage", "enable_linter", "enable_security", "enable_formatter", "build_release"} {
		if !cfg.GetBool(id) {
			t.Errorf("toggle must turn %s back on", id)
		}
	}
}

func TestScrollResetsOnRegenerate(t *testing.T) {
	s := newTestState(t, detect.RustBinary, "stable")
	s.ScrollPreview(5)
	if s.PreviewScroll != 5 {
		t.Fatalf("scroll = %d, want 5", s.PreviewScroll)
	}
	s.ToggleOption("rust", "enable_coverage")
	if s.PreviewScroll != 0 {
		t.Errorf("scroll = %d, want 0 after regeneration", s.PreviewScroll)
	}
	s.ScrollPreview(-3)
	if s.PreviewScroll != 0 {
		t.Errorf("scroll must not go negative, got %d", s.PreviewScroll)
	}
}

func TestCyclePlatformReloadsSnapshot(t *testing.T) {
	res := &detect.Result{Type: detect.RustBinary, LanguageVersion: "stable"}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitlab-ci.yml"), []byte("stages:\n  - test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(res, dir, platform.GitHub)
	if s.HasExisting {
		t.Fatal("no GitHub workflow file exists yet")
	}

	s.CyclePlatform()
	if s.Target != platform.Gitea {
		t.Fatalf("target = %v, want Gitea", s.Target)
	}
	s.CyclePlatform()
	if s.Target != platform.GitLab {
		t.Fatalf("target = %v, want GitLab", s.Target)
	}
	if !s.HasExisting {
		t.Error("existing .gitlab-ci.yml must be picked up after cycling")
	}
	if !strings.Contains(s.Preview, "stages:") {
		t.Errorf("preview must regenerate for the new platform:\n%s", s.Preview)
	}
}

func TestMenuSelection(t *testing.T) {
	s := newTestState(t, detect.RustBinary, "stable")
	s.OpenMenu()
	if !s.MenuOpen {
		t.Fatal("menu must open")
	}
	s.MoveMenuCursor(100)
	if s.MenuCursor != len(platform.All())-1 {
		t.Errorf("menu cursor = %d, want last entry", s.MenuCursor)
	}
	s.SelectFromMenu()
	if s.MenuOpen {
		t.Error("menu must close after selection")
	}
	if s.Target != platform.Jenkins {
		t.Errorf("target = %v, want Jenkins", s.Target)
	}
	if !strings.Contains(s.Preview, "pipeline {") {
		t.Errorf("preview must switch to the Jenkinsfile:\n%s", s.Preview)
	}
}

func TestDescriptionFollowsCursor(t *testing.T) {
	s := newTestState(t, detect.RustBinary, "stable")
	s.Cursor = 0
	s.UpdateDescription()
	if s.Description == "" {
		t.Error("preset row must have a description")
	}
}

func TestWriteOutput(t *testing.T) {
	res := &detect.Result{Type: detect.RustBinary, LanguageVersion: "stable"}
	dir := t.TempDir()
	s := New(res, dir, platform.GitHub)
	s.ShouldWrite = true

	if err := s.WriteOutput(); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".github", "workflows", "ci.yml"))
	if err != nil {
		t.Fatalf("workflow file: %v", err)
	}
	if string(data) != s.Preview {
		t.Error("written file must equal the preview")
	}

	doc, err := document.Load(filepath.Join(dir, document.DefaultPath))
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if len(doc.Presets) == 0 {
		t.Fatal("document must record the enabled preset")
	}
	id, err := doc.Presets[0].PresetID()
	if err != nil || id != "rust" {
		t.Errorf("document preset = %q (%v), want rust", id, err)
	}
}

func TestApplyDocumentOverlaysChoices(t *testing.T) {
	s := newTestState(t, detect.RustBinary, "stable")
	doc := &document.Document{Presets: []document.Choice{{
		Rust: &document.RustChoice{Version: "stable", Coverage: true},
	}}}
	if err := s.ApplyDocument(doc); err != nil {
		t.Fatalf("ApplyDocument: %v", err)
	}
	cfg := s.Config("rust")
	if !cfg.GetBool("enable_coverage") {
		t.Error("coverage must be on after applying the document")
	}
	if cfg.GetBool("enable_linter") {
		t.Error("options absent from the document record must be off")
	}
}
