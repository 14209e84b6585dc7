package detect

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// dockerfileNames lists the Dockerfile spellings detection recognizes, in
// priority order.
var dockerfileNames = []string{
	"Dockerfile",
	"dockerfile",
	"Dockerfile.dev",
	"Dockerfile.prod",
	"Dockerfile.build",
}

var composeNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

type dockerDetector struct{}

func (dockerDetector) Name() string { return "Docker" }

func (dockerDetector) Detect(dir string) (*Result, error) {
	var found []string
	for _, name := range dockerfileNames {
		if fileExists(filepath.Join(dir, name)) {
			found = append(found, name)
		}
	}

	metadata := map[string]string{}
	hasCompose := false
	for _, name := range composeNames {
		if fileExists(filepath.Join(dir, name)) {
			hasCompose = true
			metadata["compose_file"] = name
			break
		}
	}

	if len(found) == 0 && !hasCompose {
		return nil, nil
	}

	if len(found) > 0 {
		metadata["dockerfile"] = found[0]
		if len(found) > 1 {
			metadata["dockerfile_count"] = strconv.Itoa(len(found))
			metadata["dockerfiles"] = strings.Join(found, ", ")
		}
		if data, err := os.ReadFile(filepath.Join(dir, found[0])); err == nil {
			if image := baseImage(string(data)); image != "" {
				metadata["base_image"] = image
			}
		}
	}
	if hasCompose {
		metadata["has_compose"] = "yes"
	}

	return &Result{Type: DockerImage, Metadata: metadata}, nil
}

// baseImage extracts the image of the first FROM instruction.
func baseImage(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(trimmed), "FROM ") {
			fields := strings.Fields(trimmed)
			if len(fields) >= 2 {
				return fields[1]
			}
		}
	}
	return ""
}
