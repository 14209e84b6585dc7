package platform

// github.go — structural model of a GitHub Actions workflow file. Gitea
// Actions accepts the same schema, so Gitea output reuses these types.

import "gopkg.in/yaml.v3"

// Workflow is the root of a GitHub Actions workflow file.
type Workflow struct {
	Name string   `yaml:"name"`
	On   Triggers `yaml:"on"`
	Env  Pairs    `yaml:"env,omitempty"`
	Jobs Jobs     `yaml:"jobs"`
}

// Triggers is the workflow "on" clause: either a bare list of event names or
// a mapping from event name to branch/tag filters. Exactly one of the two
// forms is populated.
type Triggers struct {
	Simple   []string
	Detailed []Trigger
}

// Trigger is one event entry of the detailed trigger form.
type Trigger struct {
	Event    string
	Branches []string
	Tags     []string
}

type triggerFilters struct {
	Branches []string `yaml:"branches,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (t Triggers) MarshalYAML() (interface{}, error) {
	if t.Simple != nil {
		return t.Simple, nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, tr := range t.Detailed {
		val, err := encodeNode(triggerFilters{Branches: tr.Branches, Tags: tr.Tags})
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalarNode(tr.Event), val)
	}
	return node, nil
}

// Jobs maps job id to job definition, preserving insertion order.
type Jobs []JobEntry

// JobEntry is one named job of a workflow.
type JobEntry struct {
	ID  string
	Job Job
}

// MarshalYAML implements yaml.Marshaler.
func (j Jobs) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range j {
		val, err := encodeNode(e.Job)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalarNode(e.ID), val)
	}
	return node, nil
}

// Job is one job of a workflow.
type Job struct {
	RunsOn          string   `yaml:"runs-on"`
	Steps           []Step   `yaml:"steps"`
	Needs           []string `yaml:"needs,omitempty"`
	TimeoutMinutes  int      `yaml:"timeout-minutes,omitempty"`
	ContinueOnError bool     `yaml:"continue-on-error,omitempty"`
}

// Step is one step of a job. A step either uses an action or runs a command.
type Step struct {
	Name string `yaml:"name,omitempty"`
	Uses string `yaml:"uses,omitempty"`
	ID   string `yaml:"id,omitempty"`
	Run  string `yaml:"run,omitempty"`
	With Pairs  `yaml:"with,omitempty"`
	Env  Pairs  `yaml:"env,omitempty"`
}

// Serialize renders the workflow as YAML.
func (w *Workflow) Serialize() (string, error) {
	return marshal(w)
}
