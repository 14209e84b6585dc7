package platform

// gitlab.go — structural model of a .gitlab-ci.yml file. Jobs live at the
// top level of the document next to the global keys, so the root type builds
// its own mapping node instead of relying on struct tags.

import "gopkg.in/yaml.v3"

// GitLabCI is the root of a GitLab CI configuration file.
type GitLabCI struct {
	Stages    []string
	Variables Pairs
	Cache     *GitLabCache
	Jobs      []GitLabJobEntry
}

// GitLabJobEntry is one named job of the configuration.
type GitLabJobEntry struct {
	ID  string
	Job GitLabJob
}

// GitLabJob is one job definition.
type GitLabJob struct {
	Stage        string           `yaml:"stage"`
	Image        string           `yaml:"image,omitempty"`
	Script       []string         `yaml:"script"`
	BeforeScript []string         `yaml:"before_script,omitempty"`
	AfterScript  []string         `yaml:"after_script,omitempty"`
	Needs        []string         `yaml:"needs,omitempty"`
	Cache        *GitLabCache     `yaml:"cache,omitempty"`
	Artifacts    *GitLabArtifacts `yaml:"artifacts,omitempty"`
	Only         *GitLabOnly      `yaml:"only,omitempty"`
	Timeout      string           `yaml:"timeout,omitempty"`
}

// GitLabCache configures dependency caching for a job or globally.
type GitLabCache struct {
	Key   string   `yaml:"key"`
	Paths []string `yaml:"paths"`
}

// GitLabArtifacts declares files a job publishes.
type GitLabArtifacts struct {
	Paths []string `yaml:"paths"`
	Name  string   `yaml:"name,omitempty"`
}

// GitLabOnly restricts the refs a job runs for.
type GitLabOnly struct {
	Refs []string `yaml:"refs,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (c *GitLabCI) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, v interface{}) error {
		val, err := encodeNode(v)
		if err != nil {
			return err
		}
		node.Content = append(node.Content, scalarNode(key), val)
		return nil
	}
	if c.Stages != nil {
		if err := add("stages", c.Stages); err != nil {
			return nil, err
		}
	}
	if len(c.Variables) > 0 {
		if err := add("variables", c.Variables); err != nil {
			return nil, err
		}
	}
	if c.Cache != nil {
		if err := add("cache", c.Cache); err != nil {
			return nil, err
		}
	}
	for _, e := range c.Jobs {
		if err := add(e.ID, e.Job); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// Serialize renders the configuration as YAML.
func (c *GitLabCI) Serialize() (string, error) {
	return marshal(c)
}
