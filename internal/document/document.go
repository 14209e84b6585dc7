// Package document reads and writes the declarative configuration file
// (cigen.yaml by default): an ordered list of preset choices meant to be
// committed into a repository, and the bridge between those choices and the
// editor's dynamic preset configs.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the conventional document file name.
const DefaultPath = "cigen.yaml"

// ErrEmpty is returned when a document parses but names no presets.
var ErrEmpty = errors.New("document contains no presets")

// Document is the root of the configuration file.
type Document struct {
	Presets []Choice `yaml:"presets"`
}

// Choice selects one preset with its options. Exactly one field is set.
type Choice struct {
	Rust   *RustChoice   `yaml:"rust,omitempty"`
	Python *PythonChoice `yaml:"python,omitempty"`
	Go     *GoChoice     `yaml:"go,omitempty"`
	Docker *DockerChoice `yaml:"docker,omitempty"`
}

// RustChoice carries the rust preset's options. Field names are the option
// ids with the enable_ prefix stripped.
type RustChoice struct {
	Version      string `yaml:"version,omitempty"`
	Coverage     bool   `yaml:"coverage"`
	Linter       bool   `yaml:"linter"`
	Security     bool   `yaml:"security"`
	Formatter    bool   `yaml:"formatter"`
	BuildRelease bool   `yaml:"build_release"`
}

// PythonChoice carries the python-app preset's options. Linter and Formatter
// are empty when the tool is disabled; the file simply omits the key.
type PythonChoice struct {
	Version   string `yaml:"version,omitempty"`
	Linter    string `yaml:"linter,omitempty"`
	TypeCheck bool   `yaml:"type_check"`
	Formatter string `yaml:"formatter,omitempty"`
}

// GoChoice carries the go-app preset's options.
type GoChoice struct {
	Version  string `yaml:"version,omitempty"`
	Linter   bool   `yaml:"linter"`
	Security bool   `yaml:"security"`
}

// DockerChoice carries the docker preset's options. Registry is empty when
// images are built but not pushed.
type DockerChoice struct {
	ImageName     string `yaml:"image_name"`
	Registry      string `yaml:"registry,omitempty"`
	Cache         bool   `yaml:"cache"`
	TagsOnly      bool   `yaml:"tags_only"`
	QEMU          bool   `yaml:"qemu"`
	MultiPlatform bool   `yaml:"multiplatform"`
}

// presetID returns the id of the preset the choice names, or an error when
// the choice does not name exactly one.
func (c *Choice) presetID() (string, error) {
	var ids []string
	if c.Rust != nil {
		ids = append(ids, "rust")
	}
	if c.Python != nil {
		ids = append(ids, "python-app")
	}
	if c.Go != nil {
		ids = append(ids, "go-app")
	}
	if c.Docker != nil {
		ids = append(ids, "docker")
	}
	switch len(ids) {
	case 1:
		return ids[0], nil
	case 0:
		return "", fmt.Errorf("preset choice names no known preset")
	default:
		return "", fmt.Errorf("preset choice names more than one preset: %v", ids)
	}
}

// PresetID returns the id of the preset the choice names.
func (c *Choice) PresetID() (string, error) {
	return c.presetID()
}

// Parse decodes a document, rejecting unknown fields.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks structural well-formedness: at least one preset choice,
// each naming exactly one known preset.
func (d *Document) Validate() error {
	if len(d.Presets) == 0 {
		return ErrEmpty
	}
	for i := range d.Presets {
		if _, err := d.Presets[i].presetID(); err != nil {
			return fmt.Errorf("preset %d: %w", i+1, err)
		}
	}
	return nil
}

// Marshal renders the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close yaml encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
