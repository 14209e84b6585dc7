package detect

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

type goDetector struct{}

func (goDetector) Name() string { return "Go" }

func (goDetector) Detect(dir string) (*Result, error) {
	path := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	metadata := map[string]string{}
	version := "1.21"
	if f, err := modfile.ParseLax(path, data, nil); err == nil {
		if f.Module != nil {
			metadata["module"] = f.Module.Mod.Path
		}
		if f.Go != nil && f.Go.Version != "" {
			metadata["go_version"] = f.Go.Version
			version = f.Go.Version
		}
	}

	// Applications have a main package at the root or under cmd/.
	projectType := GoLibrary
	if fileExists(filepath.Join(dir, "main.go")) || dirExists(filepath.Join(dir, "cmd")) {
		projectType = GoApp
	}

	return &Result{Type: projectType, LanguageVersion: version, Metadata: metadata}, nil
}
