package document

// bridge.go — conversions between preset.Config (the editor's dynamic store)
// and the document's typed choice records. The mapping is explicit per
// preset; the set is small and stable.
//
// Round-trip invariant: FromConfig followed by ToConfig yields an equal
// Config. Hidden version fields live only in the document; the editor tracks
// the language version separately.

import (
	"fmt"

	"cigen/internal/preset"
)

const enumNone = "none"

// FromConfig builds the document choice for one preset config.
func FromConfig(cfg *preset.Config) (*Choice, error) {
	switch cfg.PresetID {
	case "rust":
		return &Choice{Rust: &RustChoice{
			Version:      "stable",
			Coverage:     cfg.GetBool("enable_coverage"),
			Linter:       cfg.GetBool("enable_linter"),
			Security:     cfg.GetBool("enable_security"),
			Formatter:    cfg.GetBool("enable_formatter"),
			BuildRelease: cfg.GetBool("build_release"),
		}}, nil
	case "python-app":
		return &Choice{Python: &PythonChoice{
			Version:   "3.11",
			Linter:    enumToField(cfg, "linter"),
			TypeCheck: cfg.GetBool("type_check"),
			Formatter: enumToField(cfg, "formatter"),
		}}, nil
	case "go-app":
		return &Choice{Go: &GoChoice{
			Version:  "1.21",
			Linter:   cfg.GetBool("enable_linter"),
			Security: cfg.GetBool("enable_security"),
		}}, nil
	case "docker":
		name := cfg.GetString("image_name")
		if name == "" {
			name = "myapp"
		}
		return &Choice{Docker: &DockerChoice{
			ImageName:     name,
			Registry:      enumToField(cfg, "registry_type"),
			Cache:         cfg.GetBool("enable_cache"),
			TagsOnly:      cfg.GetBool("tags_only"),
			QEMU:          cfg.GetBool("enable_qemu"),
			MultiPlatform: cfg.GetBool("multiplatform"),
		}}, nil
	}
	return nil, fmt.Errorf("unknown preset id %q", cfg.PresetID)
}

// enumToField maps an optional-enum option to its document field: "" when
// the sentinel "none" is selected, the variant name otherwise.
func enumToField(cfg *preset.Config, optionID string) string {
	sel, ok := cfg.GetEnum(optionID)
	if !ok || sel == enumNone {
		return ""
	}
	return sel
}

// ToConfig rebuilds the preset config a choice describes. It returns the
// preset id, the config, and the language version the document carries
// (empty when the preset has none).
func ToConfig(c *Choice) (presetID string, cfg *preset.Config, version string, err error) {
	id, err := c.presetID()
	if err != nil {
		return "", nil, "", err
	}
	switch id {
	case "rust":
		r := c.Rust
		cfg = preset.NewConfig(id)
		cfg.Set("enable_coverage", preset.BoolValue(r.Coverage))
		cfg.Set("enable_linter", preset.BoolValue(r.Linter))
		cfg.Set("enable_security", preset.BoolValue(r.Security))
		cfg.Set("enable_formatter", preset.BoolValue(r.Formatter))
		cfg.Set("build_release", preset.BoolValue(r.BuildRelease))
		return id, cfg, r.Version, nil
	case "python-app":
		p := c.Python
		cfg = preset.NewConfig(id)
		linter, err := fieldToEnum("linter", p.Linter, "flake8", "ruff")
		if err != nil {
			return "", nil, "", err
		}
		formatter, err := fieldToEnum("formatter", p.Formatter, "black", "ruff")
		if err != nil {
			return "", nil, "", err
		}
		cfg.Set("linter", linter)
		cfg.Set("type_check", preset.BoolValue(p.TypeCheck))
		cfg.Set("formatter", formatter)
		return id, cfg, p.Version, nil
	case "go-app":
		g := c.Go
		cfg = preset.NewConfig(id)
		cfg.Set("enable_linter", preset.BoolValue(g.Linter))
		cfg.Set("enable_security", preset.BoolValue(g.Security))
		return id, cfg, g.Version, nil
	default: // docker
		d := c.Docker
		cfg = preset.NewConfig(id)
		name := d.ImageName
		if name == "" {
			name = "myapp"
		}
		registry, err := fieldToEnum("registry_type", d.Registry, "dockerhub", "github")
		if err != nil {
			return "", nil, "", err
		}
		cfg.Set("image_name", preset.StringValue(name))
		cfg.Set("registry_type", registry)
		cfg.Set("enable_cache", preset.BoolValue(d.Cache))
		cfg.Set("tags_only", preset.BoolValue(d.TagsOnly))
		cfg.Set("enable_qemu", preset.BoolValue(d.QEMU))
		cfg.Set("multiplatform", preset.BoolValue(d.MultiPlatform))
		return id, cfg, "", nil
	}
}

// fieldToEnum maps a document field back to the internal optional-enum
// value. An absent field selects the sentinel "none" variant.
func fieldToEnum(optionID, value string, variants ...string) (preset.OptionValue, error) {
	all := append([]string{enumNone}, variants...)
	if value == "" {
		return preset.EnumValue(enumNone, all...), nil
	}
	for _, v := range variants {
		if v == value {
			return preset.EnumValue(value, all...), nil
		}
	}
	return preset.OptionValue{}, fmt.Errorf("option %s: unknown value %q", optionID, value)
}
