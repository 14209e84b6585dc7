// Package editor implements the interactive configuration editor: a tree of
// presets, features, and options on the left, a live preview of the emitted
// CI file on the right, and a diff against whatever is already on disk.
package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cigen/internal/detect"
	"cigen/internal/document"
	"cigen/internal/platform"
	"cigen/internal/preset"
)

// placeholder is shown when no preset has any option enabled.
const placeholder = "# No preset options enabled\n# Enable at least one option to generate configuration"

// ItemKind discriminates tree rows.
type ItemKind int

const (
	ItemPreset ItemKind = iota
	ItemFeature
	ItemOption
)

// TreeItem is one visible row of the tree pane.
type TreeItem struct {
	Kind      ItemKind
	PresetID  string
	FeatureID string
	OptionID  string
}

type featureKey struct {
	preset  string
	feature string
}

// State is the complete editor session state. All mutation happens on the
// single UI goroutine; transitions rebuild the derived tree and preview as
// needed.
type State struct {
	ProjectType     detect.ProjectType
	LanguageVersion string
	WorkingDir      string
	Target          platform.Platform

	registry *preset.Registry
	configs  map[string]*preset.Config

	expandedPresets  map[string]bool
	expandedFeatures map[featureKey]bool

	Items  []TreeItem
	Cursor int

	MenuOpen   bool
	MenuCursor int

	PreviewScroll int
	Preview       string
	GenError      string
	Description   string

	// Existing holds the current platform's on-disk file for diffing.
	// Empty (with HasExisting false) when the file is absent or unreadable.
	Existing    string
	HasExisting bool

	ShouldQuit  bool
	ShouldWrite bool
}

// New builds a session from a detection result. Matching presets start with
// their declared defaults and expanded; the rest start fully off and
// collapsed.
func New(res *detect.Result, dir string, target platform.Platform) *State {
	s := &State{
		ProjectType:      res.Type,
		LanguageVersion:  res.LanguageVersion,
		WorkingDir:       dir,
		Target:           target,
		registry:         preset.NewRegistry(),
		configs:          map[string]*preset.Config{},
		expandedPresets:  map[string]bool{},
		expandedFeatures: map[featureKey]bool{},
	}

	for _, p := range s.registry.All() {
		matches := p.MatchesProject(res.Type, dir)
		s.configs[p.ID()] = p.DefaultConfig(matches)
		if matches {
			s.expandedPresets[p.ID()] = true
		}
	}

	for i, p := range platform.All() {
		if p == target {
			s.MenuCursor = i
		}
	}

	s.LoadExisting()
	s.RebuildTree()
	s.Regenerate()
	s.UpdateDescription()
	return s
}

// ApplyDocument overlays stored preset choices onto the session configs.
func (s *State) ApplyDocument(doc *document.Document) error {
	for i := range doc.Presets {
		id, cfg, version, err := document.ToConfig(&doc.Presets[i])
		if err != nil {
			return err
		}
		// Keep options the document does not carry (hidden or newer ones)
		// at their current values.
		base, ok := s.configs[id]
		if !ok {
			return fmt.Errorf("unknown preset %q", id)
		}
		merged := base.Clone()
		for _, f := range s.mustLookup(id).Features() {
			for _, opt := range f.Options {
				if v, ok := cfg.Get(opt.ID); ok {
					merged.Set(opt.ID, v)
				}
			}
		}
		s.configs[id] = merged
		if version != "" && s.mustLookup(id).MatchesProject(s.ProjectType, s.WorkingDir) {
			s.LanguageVersion = version
		}
	}
	s.Regenerate()
	return nil
}

func (s *State) mustLookup(id string) preset.Preset {
	p, _ := s.registry.Lookup(id)
	return p
}

// Registry exposes the read-only preset registry.
func (s *State) Registry() *preset.Registry { return s.registry }

// Config returns the session config for a preset id.
func (s *State) Config(id string) *preset.Config { return s.configs[id] }

// RebuildTree recomputes the visible rows: presets in registration order
// with matching ones first, features under expanded presets, options under
// expanded features. The cursor is clamped afterwards.
func (s *State) RebuildTree() {
	s.Items = s.Items[:0]

	presets := make([]preset.Preset, len(s.registry.All()))
	copy(presets, s.registry.All())
	sort.SliceStable(presets, func(i, j int) bool {
		mi := presets[i].MatchesProject(s.ProjectType, s.WorkingDir)
		mj := presets[j].MatchesProject(s.ProjectType, s.WorkingDir)
		return mi && !mj
	})

	for _, p := range presets {
		id := p.ID()
		s.Items = append(s.Items, TreeItem{Kind: ItemPreset, PresetID: id})
		if !s.expandedPresets[id] {
			continue
		}
		for _, f := range p.Features() {
			s.Items = append(s.Items, TreeItem{Kind: ItemFeature, PresetID: id, FeatureID: f.ID})
			if !s.expandedFeatures[featureKey{id, f.ID}] {
				continue
			}
			for _, opt := range f.Options {
				s.Items = append(s.Items, TreeItem{
					Kind:      ItemOption,
					PresetID:  id,
					FeatureID: f.ID,
					OptionID:  opt.ID,
				})
			}
		}
	}

	s.clampCursor()
}

func (s *State) clampCursor() {
	if s.Cursor >= len(s.Items) {
		s.Cursor = len(s.Items) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// CurrentItem returns the row under the cursor.
func (s *State) CurrentItem() (TreeItem, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return TreeItem{}, false
	}
	return s.Items[s.Cursor], true
}

// MoveCursor shifts the cursor by delta, saturating at both ends.
func (s *State) MoveCursor(delta int) {
	s.Cursor += delta
	s.clampCursor()
	s.UpdateDescription()
}

// IsPresetExpanded reports the expansion state of a preset row.
func (s *State) IsPresetExpanded(id string) bool { return s.expandedPresets[id] }

// IsFeatureExpanded reports the expansion state of a feature row.
func (s *State) IsFeatureExpanded(presetID, featureID string) bool {
	return s.expandedFeatures[featureKey{presetID, featureID}]
}

// ExpandPreset expands a preset (no-op when already expanded).
func (s *State) ExpandPreset(id string) {
	if !s.expandedPresets[id] {
		s.expandedPresets[id] = true
		s.RebuildTree()
	}
}

// CollapsePreset collapses a preset and all of its features.
func (s *State) CollapsePreset(id string) {
	if s.expandedPresets[id] {
		delete(s.expandedPresets, id)
		for key := range s.expandedFeatures {
			if key.preset == id {
				delete(s.expandedFeatures, key)
			}
		}
		s.RebuildTree()
	}
}

// ExpandFeature expands a feature (no-op when already expanded).
func (s *State) ExpandFeature(presetID, featureID string) {
	key := featureKey{presetID, featureID}
	if !s.expandedFeatures[key] {
		s.expandedFeatures[key] = true
		s.RebuildTree()
	}
}

// CollapseFeature collapses a feature.
func (s *State) CollapseFeature(presetID, featureID string) {
	key := featureKey{presetID, featureID}
	if s.expandedFeatures[key] {
		delete(s.expandedFeatures, key)
		s.RebuildTree()
	}
}

// CollapseToFeature collapses the parent feature of an option row and moves
// the cursor onto that feature.
func (s *State) CollapseToFeature(presetID, featureID string) {
	s.CollapseFeature(presetID, featureID)
	for i, item := range s.Items {
		if item.Kind == ItemFeature && item.PresetID == presetID && item.FeatureID == featureID {
			s.Cursor = i
			break
		}
	}
	s.UpdateDescription()
}

// ToggleOption advances the value of one option and refreshes the preview.
func (s *State) ToggleOption(presetID, optionID string) {
	if cfg, ok := s.configs[presetID]; ok {
		cfg.Toggle(optionID)
	}
	s.Regenerate()
}

// TogglePreset flips all boolean options of a preset at once: everything on
// when currently none are, everything off otherwise.
func (s *State) TogglePreset(presetID string) {
	cfg, ok := s.configs[presetID]
	if !ok {
		return
	}
	p, ok := s.registry.Lookup(presetID)
	if !ok {
		return
	}
	on := !cfg.AnyBoolOn()
	for _, f := range p.Features() {
		for _, opt := range f.Options {
			if opt.Default.Kind == preset.KindBool {
				cfg.Set(opt.ID, preset.BoolValue(on))
			}
		}
	}
	s.Regenerate()
}

// ActivePreset returns the first preset in registry order whose config has
// any enabled option; it drives the preview and the editor's write action.
func (s *State) ActivePreset() (preset.Preset, bool) {
	for _, p := range s.registry.All() {
		if s.configs[p.ID()].AnyEnabled() {
			return p, true
		}
	}
	return nil, false
}

// Regenerate recomputes the preview from the first enabled preset and resets
// the preview scroll. Emitter failures land in GenError, never in a crash.
func (s *State) Regenerate() {
	s.PreviewScroll = 0

	active, ok := s.ActivePreset()
	if !ok {
		s.Preview = placeholder
		s.GenError = ""
		return
	}

	out, err := active.Generate(s.configs[active.ID()], s.Target, s.LanguageVersion)
	if err != nil {
		s.GenError = err.Error()
		return
	}
	s.Preview = out
	s.GenError = ""
}

// SetPlatform retargets the session: preview and existing-file snapshot both
// follow the new platform.
func (s *State) SetPlatform(p platform.Platform) {
	s.Target = p
	s.LoadExisting()
	s.Regenerate()
}

// CyclePlatform advances to the next platform in display order.
func (s *State) CyclePlatform() {
	all := platform.All()
	for i, p := range all {
		if p == s.Target {
			s.SetPlatform(all[(i+1)%len(all)])
			return
		}
	}
}

// OpenMenu opens the platform menu.
func (s *State) OpenMenu() { s.MenuOpen = true }

// CloseMenu closes the platform menu without changing the platform.
func (s *State) CloseMenu() { s.MenuOpen = false }

// MoveMenuCursor shifts the menu cursor, saturating.
func (s *State) MoveMenuCursor(delta int) {
	s.MenuCursor += delta
	if s.MenuCursor < 0 {
		s.MenuCursor = 0
	}
	if max := len(platform.All()) - 1; s.MenuCursor > max {
		s.MenuCursor = max
	}
}

// SelectFromMenu applies the platform under the menu cursor and closes the
// menu.
func (s *State) SelectFromMenu() {
	all := platform.All()
	if s.MenuCursor >= 0 && s.MenuCursor < len(all) {
		s.SetPlatform(all[s.MenuCursor])
	}
	s.MenuOpen = false
}

// ScrollPreview shifts the preview scroll, saturating at zero. The upper
// bound is enforced by the rendering layer, which knows the pane height.
func (s *State) ScrollPreview(delta int) {
	s.PreviewScroll += delta
	if s.PreviewScroll < 0 {
		s.PreviewScroll = 0
	}
}

// LoadExisting snapshots the current platform's output file for diffing.
// Read failures are treated as "no existing file".
func (s *State) LoadExisting() {
	data, err := os.ReadFile(filepath.Join(s.WorkingDir, s.Target.OutputPath()))
	if err != nil {
		s.Existing = ""
		s.HasExisting = false
		return
	}
	s.Existing = string(data)
	s.HasExisting = true
}

// UpdateDescription refreshes the help text for the row under the cursor.
func (s *State) UpdateDescription() {
	s.Description = ""
	item, ok := s.CurrentItem()
	if !ok {
		return
	}
	p, ok := s.registry.Lookup(item.PresetID)
	if !ok {
		return
	}
	switch item.Kind {
	case ItemPreset:
		s.Description = p.Description()
	case ItemFeature:
		for _, f := range p.Features() {
			if f.ID == item.FeatureID {
				s.Description = f.Description
			}
		}
	case ItemOption:
		for _, f := range p.Features() {
			if f.ID != item.FeatureID {
				continue
			}
			for _, opt := range f.Options {
				if opt.ID == item.OptionID {
					s.Description = opt.Description
				}
			}
		}
	}
}

// Document builds the declarative document for every preset with at least
// one enabled option, in registry order.
func (s *State) Document() (*document.Document, error) {
	doc := &document.Document{}
	for _, p := range s.registry.All() {
		cfg := s.configs[p.ID()]
		if !cfg.AnyBoolOn() && !hasNonDefaultValue(p, cfg) {
			continue
		}
		choice, err := document.FromConfig(cfg)
		if err != nil {
			return nil, err
		}
		doc.Presets = append(doc.Presets, *choice)
	}
	return doc, nil
}

// hasNonDefaultValue reports whether any non-boolean option differs from its
// declared default, which also marks a preset as worth persisting.
func hasNonDefaultValue(p preset.Preset, cfg *preset.Config) bool {
	for _, f := range p.Features() {
		for _, opt := range f.Options {
			if opt.Default.Kind == preset.KindBool {
				continue
			}
			if v, ok := cfg.Get(opt.ID); ok && !v.Equal(opt.Default) {
				return true
			}
		}
	}
	return false
}

// WriteOutput writes the previewed file to the platform's output path and
// saves the document next to it.
func (s *State) WriteOutput() error {
	if _, ok := s.ActivePreset(); !ok {
		return fmt.Errorf("no preset options enabled")
	}
	if s.GenError != "" {
		return fmt.Errorf("cannot write: %s", s.GenError)
	}

	outPath := filepath.Join(s.WorkingDir, s.Target.OutputPath())
	if parent := filepath.Dir(outPath); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", parent, err)
		}
	}
	if err := os.WriteFile(outPath, []byte(s.Preview), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	doc, err := s.Document()
	if err != nil {
		return err
	}
	if len(doc.Presets) > 0 {
		if err := doc.Save(filepath.Join(s.WorkingDir, document.DefaultPath)); err != nil {
			return err
		}
	}
	return nil
}
