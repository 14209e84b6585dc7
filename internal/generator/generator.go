// Package generator turns a declarative document into CI files on disk: it
// plans one output file per preset choice and writes them, refusing to
// overwrite existing files unless forced.
package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cigen/internal/document"
	"cigen/internal/platform"
	"cigen/internal/preset"
)

// ErrFileConflict is returned when a target file exists and force is off.
var ErrFileConflict = errors.New("file already exists")

// Output is one planned file.
type Output struct {
	// Path is relative to the output root.
	Path     string
	PresetID string
	Content  string
}

// Plan renders every preset choice of the document for the target platform.
func Plan(doc *document.Document, reg *preset.Registry, target platform.Platform) ([]Output, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	multi := len(doc.Presets) > 1
	outputs := make([]Output, 0, len(doc.Presets))
	for i := range doc.Presets {
		id, cfg, version, err := document.ToConfig(&doc.Presets[i])
		if err != nil {
			return nil, err
		}
		p, ok := reg.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", id)
		}
		content, err := p.Generate(cfg, target, version)
		if err != nil {
			return nil, fmt.Errorf("generate %s for %s: %w", id, target, err)
		}
		outputs = append(outputs, Output{
			Path:     outputPath(target, id, multi),
			PresetID: id,
			Content:  content,
		})
	}
	return outputs, nil
}

// outputPath picks the file path for one preset. Single-preset documents use
// the platform's conventional path. With several presets, GitHub and Gitea
// get one workflow file per preset; the single-file platforms get the preset
// id suffixed onto the basename.
func outputPath(target platform.Platform, presetID string, multi bool) string {
	if !multi {
		return target.OutputPath()
	}
	switch target {
	case platform.GitHub:
		return ".github/workflows/" + presetID + ".yml"
	case platform.Gitea:
		return ".gitea/workflows/" + presetID + ".yml"
	default:
		return suffixPath(target.OutputPath(), presetID)
	}
}

// suffixPath appends "-id" to the basename, before any extension.
//
//	.gitlab-ci.yml → .gitlab-ci-docker.yml
//	Jenkinsfile    → Jenkinsfile-docker
func suffixPath(path, id string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + id + ext
}

// Write materializes planned outputs under dir, creating parent directories.
// Without force, any pre-existing target aborts before anything is written.
func Write(dir string, outputs []Output, force bool) ([]string, error) {
	if !force {
		for _, o := range outputs {
			full := filepath.Join(dir, o.Path)
			if _, err := os.Stat(full); err == nil {
				return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrFileConflict, o.Path)
			}
		}
	}

	written := make([]string, 0, len(outputs))
	for _, o := range outputs {
		full := filepath.Join(dir, o.Path)
		if parent := filepath.Dir(full); parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, fmt.Errorf("create %s: %w", parent, err)
			}
		}
		if err := os.WriteFile(full, []byte(o.Content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", full, err)
		}
		written = append(written, o.Path)
	}
	return written, nil
}

// Generate loads the document at configPath and writes the planned files
// under dir. It returns the relative paths written.
func Generate(dir, configPath string, target platform.Platform, force bool) ([]string, error) {
	doc, err := document.Load(configPath)
	if err != nil {
		return nil, err
	}
	outputs, err := Plan(doc, preset.NewRegistry(), target)
	if err != nil {
		return nil, err
	}
	return Write(dir, outputs, force)
}

// Validate loads the document and checks structural well-formedness.
func Validate(configPath string) (*document.Document, error) {
	doc, err := document.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}
