package preset

// rust.go — the Rust preset: cargo test with optional tarpaulin coverage,
// clippy, rustfmt, cargo-audit, and release builds.

import (
	"fmt"

	"cigen/internal/detect"
	"cigen/internal/platform"
)

// Rust is the preset for Rust binaries, libraries, and workspaces.
type Rust struct{}

func (Rust) ID() string   { return "rust" }
func (Rust) Name() string { return "Rust" }

func (Rust) Description() string {
	return "CI pipeline for Rust projects (binaries, libraries, and workspaces)"
}

func (Rust) Features() []FeatureMeta {
	return []FeatureMeta{
		{
			ID:          "testing",
			DisplayName: "Testing",
			Description: "Test coverage reporting",
			Options: []OptionMeta{{
				ID:          "enable_coverage",
				DisplayName: "Code Coverage",
				Description: "Enable code coverage reporting with tarpaulin",
				Default:     BoolValue(true),
			}},
		},
		{
			ID:          "linting",
			DisplayName: "Linting",
			Description: "Code quality checks",
			Options: []OptionMeta{{
				ID:          "enable_linter",
				DisplayName: "Clippy Linter",
				Description: "Run Clippy linter for code quality",
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
				Description: "Run cargo-audit for dependency vulnerabilities",
				Default:     BoolValue(true),
			}},
		},
		{
			ID:          "formatting",
			DisplayName: "Formatting",
			Description: "Code formatting checks",
			Options: []OptionMeta{{
				ID:          "enable_formatter",
				DisplayName: "Rustfmt Check",
				Description: "Check code formatting with rustfmt",
				Default:     BoolValue(true),
			}},
		},
		{
			ID:          "building",
			DisplayName: "Building",
			Description: "Release binary builds",
			Options: []OptionMeta{{
				ID:          "build_release",
				DisplayName: "Build Release",
				Description: "Build optimized release binary in CI",
				Default:     BoolValue(true),
			}},
		},
	}
}

func (Rust) MatchesProject(t detect.ProjectType, _ string) bool {
	return t == detect.RustBinary || t == detect.RustLibrary || t == detect.RustWorkspace
}

func (p Rust) DefaultConfig(detected bool) *Config {
	return defaultConfig(p, detected)
}

func (p Rust) Generate(cfg *Config, target platform.Platform, langVersion string) (string, error) {
	return render(rustFromConfig(cfg, langVersion), target)
}

// rustInstance is the typed view of a rust Config.
type rustInstance struct {
	Version      string
	Coverage     bool
	Linter       bool
	SecurityScan bool
	FormatCheck  bool
	BuildRelease bool
}

func rustFromConfig(cfg *Config, version string) rustInstance {
	if version == "" {
		version = "stable"
	}
	return rustInstance{
		Version:      version,
		Coverage:     cfg.GetBool("enable_coverage"),
		Linter:       cfg.GetBool("enable_linter"),
		SecurityScan: cfg.GetBool("enable_security"),
		FormatCheck:  cfg.GetBool("enable_formatter"),
		BuildRelease: cfg.GetBool("build_release"),
	}
}

func (r rustInstance) toolchainStep(components string) platform.Step {
	with := platform.Pairs{{Key: "toolchain", Value: r.Version}}
	if components != "" {
		with = append(with, platform.Pair{Key: "components", Value: components})
	}
	return platform.Step{
		Name: "Setup Rust toolchain",
		Uses: "dtolnay/rust-toolchain@stable",
		With: with,
	}
}

// rustupLine is the shell installer invocation used on the platforms without
// a toolchain action.
func (r rustInstance) rustupLine(component string) string {
	line := fmt.Sprintf("curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y --default-toolchain %s", r.Version)
	if component != "" {
		line += " --component " + component
	}
	return line
}

func (r rustInstance) GitHub() (*platform.Workflow, error) {
	testSteps := []platform.Step{
		checkoutStep(),
		r.toolchainStep(""),
		{Name: "Cache dependencies", Uses: "Swatinem/rust-cache@v2"},
		{Name: "Run tests", Run: "cargo test --all-features"},
	}
	if r.Coverage {
		testSteps = append(testSteps,
			platform.Step{Name: "Install tarpaulin", Run: "cargo install cargo-tarpaulin"},
			platform.Step{Name: "Generate coverage", Run: "cargo tarpaulin --out Xml --all-features"},
			platform.Step{Name: "Upload coverage to Codecov", Uses: "codecov/codecov-action@v3"},
		)
	}
	if r.BuildRelease {
		testSteps = append(testSteps, platform.Step{Name: "Build release binary", Run: "cargo build --release"})
	}

	jobs := platform.Jobs{{ID: "rust/test", Job: platform.Job{
		RunsOn:         "ubuntu-latest",
		Steps:          testSteps,
		TimeoutMinutes: 30,
	}}}

	if r.Linter {
		jobs = append(jobs, platform.JobEntry{ID: "rust/lint", Job: platform.Job{
			RunsOn: "ubuntu-latest",
			Steps: []platform.Step{
				checkoutStep(),
				r.toolchainStep("clippy"),
				{Name: "Run clippy", Run: "cargo clippy --all-features -- -D warnings"},
			},
			TimeoutMinutes: 15,
		}})
	}

	if r.FormatCheck {
		jobs = append(jobs, platform.JobEntry{ID: "rust/format", Job: platform.Job{
			RunsOn: "ubuntu-latest",
			Steps: []platform.Step{
				checkoutStep(),
				r.toolchainStep("rustfmt"),
				{Name: "Check formatting", Run: "cargo fmt -- --check"},
			},
			TimeoutMinutes: 10,
		}})
	}

	if r.SecurityScan {
		jobs = append(jobs, platform.JobEntry{ID: "rust/security", Job: platform.Job{
			RunsOn: "ubuntu-latest",
			Steps: []platform.Step{
				checkoutStep(),
				{
					Name: "Run cargo audit",
					Uses: "rustsec/audit-check@v1",
					With: platform.Pairs{{Key: "token", Value: "${{ secrets.GITHUB_TOKEN }}"}},
				},
			},
			TimeoutMinutes: 10,
		}})
	}

	return &platform.Workflow{Name: "CI", On: ciTriggers(), Jobs: jobs}, nil
}

func (r rustInstance) GitLab() (*platform.GitLabCI, error) {
	mainRefs := &platform.GitLabOnly{Refs: []string{"main", "master", "merge_requests"}}
	stages := []string{"test"}

	testScript := []string{
		r.rustupLine(""),
		"source $HOME/.cargo/env",
		"cargo test --all-features",
	}
	if r.Coverage {
		testScript = append(testScript, "cargo install cargo-tarpaulin", "cargo tarpaulin --out Xml --all-features")
	}
	if r.BuildRelease {
		stages = append(stages, "build")
	}

	testJob := platform.GitLabJob{
		Stage:   "test",
		Image:   "rust:latest",
		Script:  testScript,
		Cache:   &platform.GitLabCache{Key: "rust-cache", Paths: []string{"target/", ".cargo/"}},
		Only:    mainRefs,
		Timeout: "30m",
	}
	if r.Coverage {
		testJob.Artifacts = &platform.GitLabArtifacts{Paths: []string{"cobertura.xml"}, Name: "coverage"}
	}
	jobs := []platform.GitLabJobEntry{{ID: "rust/test", Job: testJob}}

	if r.BuildRelease {
		jobs = append(jobs, platform.GitLabJobEntry{ID: "rust/build", Job: platform.GitLabJob{
			Stage:     "build",
			Image:     "rust:" + r.Version,
			Script:    []string{"cargo build --release"},
			Cache:     &platform.GitLabCache{Key: "rust-cache", Paths: []string{"target/"}},
			Artifacts: &platform.GitLabArtifacts{Paths: []string{"target/release/"}},
		}})
	}

	if r.Linter {
		stages = appendStage(stages, "lint")
		jobs = append(jobs, platform.GitLabJobEntry{ID: "rust/lint", Job: platform.GitLabJob{
			Stage: "lint",
			Image: "rust:latest",
			Script: []string{
				r.rustupLine("clippy"),
				"source $HOME/.cargo/env",
				"cargo clippy --all-features -- -D warnings",
			},
			Cache:   &platform.GitLabCache{Key: "rust-cache", Paths: []string{"target/", ".cargo/"}},
			Only:    mainRefs,
			Timeout: "15m",
		}})
	}

	if r.FormatCheck {
		stages = appendStage(stages, "lint")
		jobs = append(jobs, platform.GitLabJobEntry{ID: "rust/format", Job: platform.GitLabJob{
			Stage: "lint",
			Image: "rust:latest",
			Script: []string{
				r.rustupLine("rustfmt"),
				"source $HOME/.cargo/env",
				"cargo fmt -- --check",
			},
			Only:    mainRefs,
			Timeout: "10m",
		}})
	}

	if r.SecurityScan {
		stages = appendStage(stages, "security")
		jobs = append(jobs, platform.GitLabJobEntry{ID: "rust/security", Job: platform.GitLabJob{
			Stage:   "security",
			Image:   "rust:latest",
			Script:  []string{"cargo install cargo-audit", "cargo audit"},
			Cache:   &platform.GitLabCache{Key: "cargo-audit-cache", Paths: []string{".cargo/"}},
			Only:    mainRefs,
			Timeout: "10m",
		}})
	}

	return &platform.GitLabCI{Stages: stages, Jobs: jobs}, nil
}

func appendStage(stages []string, stage string) []string {
	for _, s := range stages {
		if s == stage {
			return stages
		}
	}
	return append(stages, stage)
}

func (r rustInstance) CircleCI() (*platform.CircleCIConfig, error) {
	const cacheKey = `v1-cargo-cache-{{ checksum "Cargo.lock" }}`

	testSteps := []platform.CircleCIStep{
		{Simple: "checkout"},
		{RestoreCache: &platform.CircleCIRestoreCache{Keys: []string{cacheKey}}},
		{Run: &platform.CircleCIRun{Name: "Install Rust", Command: r.rustupLine("")}},
		{Run: &platform.CircleCIRun{Shell: "source $HOME/.cargo/env"}},
		{Run: &platform.CircleCIRun{Name: "Run tests", Command: "cargo test --all-features"}},
	}
	if r.Coverage {
		testSteps = append(testSteps,
			platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Install tarpaulin", Command: "cargo install cargo-tarpaulin"}},
			platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Generate coverage", Command: "cargo tarpaulin --out Xml --all-features"}},
		)
	}
	if r.BuildRelease {
		testSteps = append(testSteps,
			platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Build release", Command: "cargo build --release"}},
		)
	}
	testSteps = append(testSteps, platform.CircleCIStep{
		SaveCache: &platform.CircleCISaveCache{Key: cacheKey, Paths: []string{"~/.cargo", "./target"}},
	})

	rustExecutor := []platform.CircleCIDocker{{Image: "rust:latest"}}
	jobs := []platform.CircleCIJobEntry{{ID: "rust/test", Job: platform.CircleCIJob{Docker: rustExecutor, Steps: testSteps}}}
	workflowJobs := []platform.CircleCIWorkflowJob{{Name: "rust/test"}}

	if r.Linter {
		jobs = append(jobs, platform.CircleCIJobEntry{ID: "rust/lint", Job: platform.CircleCIJob{
			Docker: rustExecutor,
			Steps: []platform.CircleCIStep{
				{Simple: "checkout"},
				{Run: &platform.CircleCIRun{Name: "Install Rust with clippy", Command: r.rustupLine("clippy")}},
				{Run: &platform.CircleCIRun{Shell: "source $HOME/.cargo/env"}},
				{Run: &platform.CircleCIRun{Name: "Run clippy", Command: "cargo clippy --all-features -- -D warnings"}},
			},
		}})
		workflowJobs = append(workflowJobs, platform.CircleCIWorkflowJob{Name: "rust/lint"})
	}

	if r.FormatCheck {
		jobs = append(jobs, platform.CircleCIJobEntry{ID: "rust/format", Job: platform.CircleCIJob{
			Docker: rustExecutor,
			Steps: []platform.CircleCIStep{
				{Simple: "checkout"},
				{Run: &platform.CircleCIRun{Name: "Install Rust with rustfmt", Command: r.rustupLine("rustfmt")}},
				{Run: &platform.CircleCIRun{Shell: "source $HOME/.cargo/env"}},
				{Run: &platform.CircleCIRun{Name: "Check formatting", Command: "cargo fmt -- --check"}},
			},
		}})
		workflowJobs = append(workflowJobs, platform.CircleCIWorkflowJob{Name: "rust/format"})
	}

	return &platform.CircleCIConfig{
		Version:   "2.1",
		Jobs:      jobs,
		Workflows: []platform.CircleCIWorkflowEntry{{ID: "ci", Workflow: platform.CircleCIWorkflow{Jobs: workflowJobs}}},
	}, nil
}

func (r rustInstance) Jenkins() (*platform.JenkinsConfig, error) {
	testSteps := []string{
		r.rustupLine(""),
		"source $HOME/.cargo/env",
		"cargo test --all-features",
	}
	if r.Coverage {
		testSteps = append(testSteps, "cargo install cargo-tarpaulin", "cargo tarpaulin --out Xml --all-features")
	}
	if r.BuildRelease {
		testSteps = append(testSteps, "cargo build --release")
	}

	stages := []platform.JenkinsStage{{Name: "Test", Steps: testSteps}}

	if r.Linter {
		stages = append(stages, platform.JenkinsStage{Name: "Lint", Steps: []string{
			r.rustupLine("clippy"),
			"source $HOME/.cargo/env",
			"cargo clippy --all-features -- -D warnings",
		}})
	}
	if r.FormatCheck {
		stages = append(stages, platform.JenkinsStage{Name: "Format Check", Steps: []string{
			r.rustupLine("rustfmt"),
			"source $HOME/.cargo/env",
			"cargo fmt -- --check",
		}})
	}
	if r.SecurityScan {
		stages = append(stages, platform.JenkinsStage{Name: "Security Scan", Steps: []string{
			"cargo install cargo-audit",
			"cargo audit",
		}})
	}

	return &platform.JenkinsConfig{Agent: "any", Stages: stages}, nil
}
