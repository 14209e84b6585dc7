package platform

// jenkins.go — declarative Jenkinsfile model and its Groovy-style renderer.
// Jenkins is the one platform that is not YAML; the output follows a fixed
// pipeline template.

import (
	"fmt"
	"strings"
)

// JenkinsConfig models the subset of a declarative pipeline cigen emits.
type JenkinsConfig struct {
	Agent       string
	Environment []Pair
	Stages      []JenkinsStage
}

// JenkinsStage is one stage with its shell step lines.
type JenkinsStage struct {
	Name  string
	Steps []string
}

// Serialize renders the pipeline as a Jenkinsfile.
func (c *JenkinsConfig) Serialize() (string, error) {
	var b strings.Builder
	b.WriteString("pipeline {\n")
	b.WriteString("    agent {\n")
	fmt.Fprintf(&b, "        label '%s'\n", c.Agent)
	b.WriteString("    }\n\n")

	if len(c.Environment) > 0 {
		b.WriteString("    environment {\n")
		for _, e := range c.Environment {
			fmt.Fprintf(&b, "        %s = '%s'\n", e.Key, e.Value)
		}
		b.WriteString("    }\n\n")
	}

	b.WriteString("    stages {\n")
	for _, stage := range c.Stages {
		fmt.Fprintf(&b, "        stage('%s') {\n", stage.Name)
		b.WriteString("            steps {\n")
		for _, step := range stage.Steps {
			fmt.Fprintf(&b, "                %s\n", step)
		}
		b.WriteString("            }\n")
		b.WriteString("        }\n")
	}
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String(), nil
}
