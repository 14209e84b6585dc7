package detect

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// pyProject is the subset of pyproject.toml detection looks at.
type pyProject struct {
	Project *struct {
		Name string `toml:"name"`
	} `toml:"project"`
}

type pythonDetector struct{}

func (pythonDetector) Name() string { return "Python" }

func (pythonDetector) Detect(dir string) (*Result, error) {
	hasPyproject := fileExists(filepath.Join(dir, "pyproject.toml"))
	hasSetup := fileExists(filepath.Join(dir, "setup.py"))
	hasRequirements := fileExists(filepath.Join(dir, "requirements.txt"))

	if !hasPyproject && !hasSetup && !hasRequirements {
		return nil, nil
	}

	metadata := map[string]string{}
	switch {
	case hasPyproject:
		metadata["config"] = "pyproject.toml"
		data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
		if err != nil {
			return nil, fmt.Errorf("read pyproject.toml: %w", err)
		}
		var project pyProject
		// Malformed pyproject files do not block detection.
		if err := toml.Unmarshal(data, &project); err == nil && project.Project != nil {
			metadata["name"] = project.Project.Name
		}
	case hasSetup:
		metadata["config"] = "setup.py"
	}

	// Applications ship an entry point; libraries do not.
	projectType := PythonLibrary
	if fileExists(filepath.Join(dir, "main.py")) || fileExists(filepath.Join(dir, "__main__.py")) {
		projectType = PythonApp
	}

	return &Result{Type: projectType, LanguageVersion: "3.11", Metadata: metadata}, nil
}
