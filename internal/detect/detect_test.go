package detect_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cigen/internal/detect"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectNothing(t *testing.T) {
	_, err := detect.Project(t.TempDir())
	if !errors.Is(err, detect.ErrNoProject) {
		t.Fatalf("err = %v, want ErrNoProject", err)
	}
}

func TestDetectRustBinary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", `[package]
name = "mytool"
version = "0.1.0"

[[bin]]
name = "mytool"
`)
	res, err := detect.Project(dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if res.Type != detect.RustBinary {
		t.Errorf("type = %v, want RustBinary", res.Type)
	}
	if res.LanguageVersion != "stable" {
		t.Errorf("version = %q, want stable", res.LanguageVersion)
	}
	if res.Metadata["name"] != "mytool" {
		t.Errorf("name metadata = %q, want mytool", res.Metadata["name"])
	}
}

func TestDetectRustLibrary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", `[package]
name = "mylib"
version = "0.1.0"
`)
	writeFile(t, dir, "src/lib.rs", "")
	res, err := detect.Project(dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if res.Type != detect.RustLibrary {
		t.Errorf("type = %v, want RustLibrary", res.Type)
	}
}

func TestDetectRustWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", `[workspace]
members = ["core", "cli"]
`)
	res, err := detect.Project(dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if res.Type != detect.RustWorkspace {
		t.Errorf("type = %v, want RustWorkspace", res.Type)
	}
	if res.Metadata["members"] == "" {
		t.Error("workspace members metadata missing")
	}
}

func TestDetectPythonApp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", `[project]
name = "myservice"
`)
	writeFile(t, dir, "main.py", "")
	res, err := detect.Project(dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if res.Type != detect.PythonApp {
		t.Errorf("type = %v, want PythonApp", res.Type)
	}
	if res.LanguageVersion != "3.11" {
		t.Errorf("version = %q, want 3.11", res.LanguageVersion)
	}
	if res.Metadata["name"] != "myservice" {
		t.Errorf("name metadata = %q, want myservice", res.Metadata["name"])
	}
}

func TestDetectPythonLibraryFromRequirements(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", "flask\n")
	res, err := detect.Project(dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if res.Type != detect.PythonLibrary {
		t.Errorf("type = %v, want PythonLibrary", res.Type)
	}
}

func TestDetectGoApp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/svc\n\ngo 1.22\n")
	writeFile(t, dir, "main.go", "package main\n")
	res, err := detect.Project(dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if res.Type != detect.GoApp {
		t.Errorf("type = %v, want GoApp", res.Type)
	}
	if res.LanguageVersion != "1.22" {
		t.Errorf("version = %q, want the go directive value 1.22", res.LanguageVersion)
	}
	if res.Metadata["module"] != "example.com/svc" {
		t.Errorf("module metadata = %q", res.Metadata["module"])
	}
	if res.Metadata["go_version"] != "1.22" {
		t.Errorf("go_version metadata = %q", res.Metadata["go_version"])
	}
}

func TestDetectGoLibraryWithoutMain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/lib\n")
	res, err := detect.Project(dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if res.Type != detect.GoLibrary {
		t.Errorf("type = %v, want GoLibrary", res.Type)
	}
	if res.LanguageVersion != "1.21" {
		t.Errorf("version = %q, want the 1.21 fallback without a go directive", res.LanguageVersion)
	}
}

func TestDetectGoAppFromCmdDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/tool\n")
	writeFile(t, dir, "cmd/tool/main.go", "package main\n")
	res, err := detect.Project(dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if res.Type != detect.GoApp {
		t.Errorf("type = %v, want GoApp", res.Type)
	}
}

func TestDetectDockerImage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Dockerfile", "# build stage\nFROM alpine:3.19\nRUN true\n")
	writeFile(t, dir, "docker-compose.yml", "services: {}\n")
	res, err := detect.Project(dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if res.Type != detect.DockerImage {
		t.Errorf("type = %v, want DockerImage", res.Type)
	}
	if res.Metadata["base_image"] != "alpine:3.19" {
		t.Errorf("base_image = %q, want alpine:3.19", res.Metadata["base_image"])
	}
	if res.Metadata["has_compose"] != "yes" {
		t.Errorf("has_compose = %q, want yes", res.Metadata["has_compose"])
	}
}

func TestDetectOrderRustBeforeDocker(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", `[package]
name = "svc"

[[bin]]
name = "svc"
`)
	writeFile(t, dir, "Dockerfile", "FROM rust:1\n")
	res, err := detect.Project(dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if res.Type != detect.RustBinary {
		t.Errorf("rust must win over docker, got %v", res.Type)
	}
}

func TestMetadataKeysSorted(t *testing.T) {
	res := &detect.Result{Metadata: map[string]string{"b": "2", "a": "1", "c": "3"}}
	keys := res.MetadataKeys()
	want := []string{"a", "b", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}
