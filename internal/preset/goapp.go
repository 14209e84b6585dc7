package preset

// goapp.go — the Go application preset: go test with optional golangci-lint
// and gosec.

import (
	"cigen/internal/detect"
	"cigen/internal/platform"
)

// GoApp is the preset for Go applications and libraries.
type GoApp struct{}

func (GoApp) ID() string   { return "go-app" }
func (GoApp) Name() string { return "Go App" }

func (GoApp) Description() string {
	return "CI pipeline for Go applications with testing and linting"
}

func (GoApp) Features() []FeatureMeta {
	return []FeatureMeta{
		{
			ID:          "linting",
			DisplayName: "Linting",
			Description: "Code quality checks with golangci-lint",
			Options: []OptionMeta{{
				ID:          "enable_linter",
				DisplayName: "Enable Linter",
				Description: "Run golangci-lint for code quality",
				Default:     BoolValue(true),
			}},
		},
		{
			ID:          "security",
			DisplayName: "Security",
			Description: "Security vulnerability scanning",
			Options: []OptionMeta{{
				ID:          "enable_security",
				DisplayName: "Security Scan",
				Description: "Run gosec for security vulnerabilities",
				Default:     BoolValue(true),
			}},
		},
	}
}

func (GoApp) MatchesProject(t detect.ProjectType, _ string) bool {
	return t == detect.GoApp || t == detect.GoLibrary
}

func (p GoApp) DefaultConfig(detected bool) *Config {
	return defaultConfig(p, detected)
}

func (p GoApp) Generate(cfg *Config, target platform.Platform, langVersion string) (string, error) {
	return render(goFromConfig(cfg, langVersion), target)
}

// goInstance is the typed view of a go-app Config.
type goInstance struct {
	Version      string
	Linter       bool
	SecurityScan bool
}

func goFromConfig(cfg *Config, version string) goInstance {
	if version == "" {
		version = "1.21"
	}
	return goInstance{
		Version:      version,
		Linter:       cfg.GetBool("enable_linter"),
		SecurityScan: cfg.GetBool("enable_security"),
	}
}

func (g goInstance) setupStep() platform.Step {
	return platform.Step{
		Name: "Setup Go",
		Uses: "actions/setup-go@v5",
		With: platform.Pairs{{Key: "go-version", Value: g.Version}},
	}
}

func (g goInstance) GitHub() (*platform.Workflow, error) {
	jobs := platform.Jobs{{ID: "go/test", Job: platform.Job{
		RunsOn: "ubuntu-latest",
		Steps: []platform.Step{
			checkoutStep(),
			g.setupStep(),
			{Name: "Download dependencies", Run: "go mod download"},
			{Name: "Run tests", Run: "go test -v ./..."},
			{Name: "Build", Run: "go build -v ./..."},
		},
		TimeoutMinutes: 30,
	}}}

	if g.Linter {
		jobs = append(jobs, platform.JobEntry{ID: "go/lint", Job: platform.Job{
			RunsOn: "ubuntu-latest",
			Steps: []platform.Step{
				checkoutStep(),
				g.setupStep(),
				{
					Name: "Run golangci-lint",
					Uses: "golangci/golangci-lint-action@v3",
					With: platform.Pairs{{Key: "version", Value: "latest"}},
				},
			},
			TimeoutMinutes: 15,
		}})
	}

	if g.SecurityScan {
		jobs = append(jobs, platform.JobEntry{ID: "go/security", Job: platform.Job{
			RunsOn: "ubuntu-latest",
			Steps: []platform.Step{
				checkoutStep(),
				g.setupStep(),
				{
					Name: "Run gosec",
					Uses: "securego/gosec@master",
					With: platform.Pairs{{Key: "args", Value: "./..."}},
				},
			},
			TimeoutMinutes: 10,
		}})
	}

	return &platform.Workflow{Name: "CI", On: ciTriggers(), Jobs: jobs}, nil
}

func (g goInstance) GitLab() (*platform.GitLabCI, error) {
	script := []string{"go test -v ./..."}
	if g.Linter {
		script = insertAt(script, 0, "golangci-lint run")
	}
	if g.SecurityScan {
		script = insertAt(script, 0, "gosec ./...")
	}

	return &platform.GitLabCI{
		Stages: []string{"test"},
		Jobs: []platform.GitLabJobEntry{{ID: "go/test", Job: platform.GitLabJob{
			Stage:  "test",
			Image:  "golang:" + g.Version,
			Script: script,
			Cache:  &platform.GitLabCache{Key: "go-cache", Paths: []string{"~/go/pkg/mod"}},
		}}},
	}, nil
}

func (g goInstance) CircleCI() (*platform.CircleCIConfig, error) {
	steps := []platform.CircleCIStep{{Simple: "checkout"}}
	if g.SecurityScan {
		steps = append(steps, platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Security scan", Command: "gosec ./..."}})
	}
	if g.Linter {
		steps = append(steps, platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Lint", Command: "golangci-lint run"}})
	}
	steps = append(steps, platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Run tests", Command: "go test -v ./..."}})

	return &platform.CircleCIConfig{
		Version: "2.1",
		Jobs: []platform.CircleCIJobEntry{{ID: "go/test", Job: platform.CircleCIJob{
			Docker: []platform.CircleCIDocker{{Image: "golang:" + g.Version}},
			Steps:  steps,
		}}},
		Workflows: []platform.CircleCIWorkflowEntry{{ID: "main", Workflow: platform.CircleCIWorkflow{
			Jobs: []platform.CircleCIWorkflowJob{{Name: "go/test"}},
		}}},
	}, nil
}

func (g goInstance) Jenkins() (*platform.JenkinsConfig, error) {
	var steps []string
	if g.SecurityScan {
		steps = append(steps, "sh 'gosec ./...'")
	}
	if g.Linter {
		steps = append(steps, "sh 'golangci-lint run'")
	}
	steps = append(steps, "sh 'go test -v ./...'")

	return &platform.JenkinsConfig{
		Agent:  "any",
		Stages: []platform.JenkinsStage{{Name: "Test", Steps: steps}},
	}, nil
}
