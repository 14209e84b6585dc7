package preset

// preset.go — the capability set every preset exposes and the shared
// plumbing for default configs and platform dispatch.

import (
	"cigen/internal/detect"
	"cigen/internal/platform"
)

// Preset is the capability set of one registered preset.
type Preset interface {
	// ID is the stable preset identifier ("rust", "python-app", ...).
	ID() string
	Name() string
	Description() string
	// Features lists the preset's feature groups in declaration order.
	Features() []FeatureMeta
	// MatchesProject reports whether the preset applies to the detected
	// project. dir allows filesystem probes beyond the project type.
	MatchesProject(t detect.ProjectType, dir string) bool
	// DefaultConfig builds the initial config. When detected is false every
	// boolean option starts off so a non-matching preset contributes
	// nothing until the user opts in.
	DefaultConfig(detected bool) *Config
	// Generate renders the CI file for the target platform.
	Generate(cfg *Config, target platform.Platform, langVersion string) (string, error)
}

// defaultConfig builds a config from the preset's declared metadata.
func defaultConfig(p Preset, detected bool) *Config {
	cfg := NewConfig(p.ID())
	for _, feature := range p.Features() {
		for _, opt := range feature.Options {
			v := opt.Default
			if !detected && v.Kind == KindBool {
				v = BoolValue(false)
			}
			cfg.Set(opt.ID, v)
		}
	}
	return cfg
}

// emitter produces platform models from a typed preset instance. Gitea
// shares the GitHub workflow schema, so there is no separate method for it.
type emitter interface {
	GitHub() (*platform.Workflow, error)
	GitLab() (*platform.GitLabCI, error)
	CircleCI() (*platform.CircleCIConfig, error)
	Jenkins() (*platform.JenkinsConfig, error)
}

// render emits and serializes for the target platform.
func render(e emitter, target platform.Platform) (string, error) {
	switch target {
	case platform.GitLab:
		m, err := e.GitLab()
		if err != nil {
			return "", err
		}
		return m.Serialize()
	case platform.CircleCI:
		m, err := e.CircleCI()
		if err != nil {
			return "", err
		}
		return m.Serialize()
	case platform.Jenkins:
		m, err := e.Jenkins()
		if err != nil {
			return "", err
		}
		return m.Serialize()
	default:
		m, err := e.GitHub()
		if err != nil {
			return "", err
		}
		return m.Serialize()
	}
}

// defaultBranches is the branch filter presets attach to push and
// pull_request triggers.
func defaultBranches() []string {
	return []string{"main", "master"}
}

// ciTriggers is the standard push + pull_request trigger pair.
func ciTriggers() platform.Triggers {
	return platform.Triggers{Detailed: []platform.Trigger{
		{Event: "push", Branches: defaultBranches()},
		{Event: "pull_request", Branches: defaultBranches()},
	}}
}

// checkoutStep is the checkout step shared by all GitHub jobs.
func checkoutStep() platform.Step {
	return platform.Step{Name: "Checkout code", Uses: "actions/checkout@v4"}
}

// insertAt inserts s into script at index i.
func insertAt(script []string, i int, s string) []string {
	script = append(script, "")
	copy(script[i+1:], script[i:])
	script[i] = s
	return script
}
