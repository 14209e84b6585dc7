package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// cargoManifest is the subset of Cargo.toml detection looks at.
type cargoManifest struct {
	Package *struct {
		Name       string `toml:"name"`
		Version    string `toml:"version"`
		DefaultRun string `toml:"default-run"`
	} `toml:"package"`
	Workspace *struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
	Lib map[string]any   `toml:"lib"`
	Bin []map[string]any `toml:"bin"`
}

type rustDetector struct{}

func (rustDetector) Name() string { return "Rust" }

func (rustDetector) Detect(dir string) (*Result, error) {
	path := filepath.Join(dir, "Cargo.toml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var manifest cargoManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	metadata := map[string]string{}

	if manifest.Workspace != nil {
		metadata["type"] = "workspace"
		metadata["members"] = strings.Join(manifest.Workspace.Members, ", ")
		metadata["member_count"] = strconv.Itoa(len(manifest.Workspace.Members))
		return &Result{Type: RustWorkspace, LanguageVersion: "stable", Metadata: metadata}, nil
	}

	projectType := RustBinary
	switch {
	case manifest.Lib != nil || fileExists(filepath.Join(dir, "src", "lib.rs")):
		metadata["type"] = "library"
		projectType = RustLibrary
	case len(manifest.Bin) > 0 || (manifest.Package != nil && manifest.Package.DefaultRun != ""):
		metadata["type"] = "binary"
	default:
		metadata["type"] = "binary (assumed)"
	}

	if manifest.Package != nil {
		metadata["name"] = manifest.Package.Name
	}

	return &Result{Type: projectType, LanguageVersion: "stable", Metadata: metadata}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
