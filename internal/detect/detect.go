// Package detect infers a project's type from build manifests on disk.
//
// Detectors run in a fixed order (Rust, Python, Go, Docker); the first one
// that recognizes the directory wins. Detection reads manifests only, never
// source trees.
package detect

import (
	"errors"
	"fmt"
	"sort"
)

// ProjectType classifies a repository by its primary toolchain.
type ProjectType int

const (
	Unknown ProjectType = iota
	RustBinary
	RustLibrary
	RustWorkspace
	PythonApp
	PythonLibrary
	GoApp
	GoLibrary
	DockerImage
)

// String returns a human-readable name for the project type.
func (t ProjectType) String() string {
	switch t {
	case RustBinary:
		return "Rust Binary"
	case RustLibrary:
		return "Rust Library"
	case RustWorkspace:
		return "Rust Workspace"
	case PythonApp:
		return "Python Application"
	case PythonLibrary:
		return "Python Library"
	case GoApp:
		return "Go Application"
	case GoLibrary:
		return "Go Library"
	case DockerImage:
		return "Docker Image"
	default:
		return "Unknown"
	}
}

// ErrNoProject is returned when no detector recognizes the directory.
var ErrNoProject = errors.New("no supported project type detected")

// Result is the outcome of a successful detection.
type Result struct {
	Type ProjectType
	// LanguageVersion is the toolchain version to seed presets with.
	// Empty when the toolchain has no meaningful version (Docker).
	LanguageVersion string
	// Metadata holds free-form facts about the project for display.
	Metadata map[string]string
}

// MetadataKeys returns the metadata keys in sorted order.
func (r *Result) MetadataKeys() []string {
	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Detector recognizes one project family. Detect returns (nil, nil) when the
// directory does not belong to the family.
type Detector interface {
	Name() string
	Detect(dir string) (*Result, error)
}

// Detectors returns the standard detector chain in priority order.
func Detectors() []Detector {
	return []Detector{rustDetector{}, pythonDetector{}, goDetector{}, dockerDetector{}}
}

// Project runs the standard detector chain over dir.
func Project(dir string) (*Result, error) {
	for _, d := range Detectors() {
		res, err := d.Detect(dir)
		if err != nil {
			return nil, fmt.Errorf("%s detector: %w", d.Name(), err)
		}
		if res != nil {
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w in %s", ErrNoProject, dir)
}
