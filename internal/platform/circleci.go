package platform

// circleci.go — structural model of a .circleci/config.yml file. CircleCI
// steps come in several shapes (a bare builtin name, a run command, cache
// save/restore), modeled as a one-of struct with a custom marshaller.

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CircleCIConfig is the root of a CircleCI configuration file.
type CircleCIConfig struct {
	Version   string
	Orbs      Pairs
	Jobs      []CircleCIJobEntry
	Workflows []CircleCIWorkflowEntry
}

// CircleCIJobEntry is one named job.
type CircleCIJobEntry struct {
	ID  string
	Job CircleCIJob
}

// CircleCIWorkflowEntry is one named workflow.
type CircleCIWorkflowEntry struct {
	ID       string
	Workflow CircleCIWorkflow
}

// CircleCIJob is one job definition.
type CircleCIJob struct {
	Docker      []CircleCIDocker `yaml:"docker"`
	Steps       []CircleCIStep   `yaml:"steps"`
	Environment Pairs            `yaml:"environment,omitempty"`
}

// CircleCIDocker selects the executor image.
type CircleCIDocker struct {
	Image string `yaml:"image"`
}

// CircleCIStep is one job step. Exactly one field is populated.
type CircleCIStep struct {
	Simple       string
	Run          *CircleCIRun
	RestoreCache *CircleCIRestoreCache
	SaveCache    *CircleCISaveCache
}

// MarshalYAML implements yaml.Marshaler.
func (s CircleCIStep) MarshalYAML() (interface{}, error) {
	switch {
	case s.Simple != "":
		return s.Simple, nil
	case s.Run != nil:
		return struct {
			Run *CircleCIRun `yaml:"run"`
		}{s.Run}, nil
	case s.RestoreCache != nil:
		return struct {
			RestoreCache *CircleCIRestoreCache `yaml:"restore_cache"`
		}{s.RestoreCache}, nil
	case s.SaveCache != nil:
		return struct {
			SaveCache *CircleCISaveCache `yaml:"save_cache"`
		}{s.SaveCache}, nil
	}
	return nil, fmt.Errorf("empty circleci step")
}

// CircleCIRun is a run step body: either a bare shell string or a named
// command.
type CircleCIRun struct {
	Shell   string
	Name    string
	Command string
}

// MarshalYAML implements yaml.Marshaler.
func (r *CircleCIRun) MarshalYAML() (interface{}, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}
	return struct {
		Name    string `yaml:"name"`
		Command string `yaml:"command"`
	}{r.Name, r.Command}, nil
}

// CircleCIRestoreCache restores a previously saved cache.
type CircleCIRestoreCache struct {
	Keys []string `yaml:"keys"`
}

// CircleCISaveCache saves paths under a cache key.
type CircleCISaveCache struct {
	Key   string   `yaml:"key"`
	Paths []string `yaml:"paths"`
}

// CircleCIWorkflow lists the jobs a workflow runs.
type CircleCIWorkflow struct {
	Jobs []CircleCIWorkflowJob `yaml:"jobs"`
}

// CircleCIWorkflowJob references a job, optionally with dependencies.
type CircleCIWorkflowJob struct {
	Name     string
	Requires []string
}

// MarshalYAML implements yaml.Marshaler.
func (j CircleCIWorkflowJob) MarshalYAML() (interface{}, error) {
	if j.Requires == nil {
		return j.Name, nil
	}
	body, err := encodeNode(struct {
		Requires []string `yaml:"requires"`
	}{j.Requires})
	if err != nil {
		return nil, err
	}
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	node.Content = append(node.Content, scalarNode(j.Name), body)
	return node, nil
}

// MarshalYAML implements yaml.Marshaler.
func (c *CircleCIConfig) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, v interface{}) error {
		val, err := encodeNode(v)
		if err != nil {
			return err
		}
		node.Content = append(node.Content, scalarNode(key), val)
		return nil
	}
	if err := add("version", c.Version); err != nil {
		return nil, err
	}
	if len(c.Orbs) > 0 {
		if err := add("orbs", c.Orbs); err != nil {
			return nil, err
		}
	}
	jobs := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range c.Jobs {
		val, err := encodeNode(e.Job)
		if err != nil {
			return nil, err
		}
		jobs.Content = append(jobs.Content, scalarNode(e.ID), val)
	}
	node.Content = append(node.Content, scalarNode("jobs"), jobs)
	workflows := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range c.Workflows {
		val, err := encodeNode(e.Workflow)
		if err != nil {
			return nil, err
		}
		workflows.Content = append(workflows.Content, scalarNode(e.ID), val)
	}
	node.Content = append(node.Content, scalarNode("workflows"), workflows)
	return node, nil
}

// Serialize renders the configuration as YAML.
func (c *CircleCIConfig) Serialize() (string, error) {
	return marshal(c)
}
