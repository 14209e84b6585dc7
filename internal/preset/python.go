package preset

// python.go — the Python application preset: pytest with selectable linter
// (flake8 or ruff), mypy type checking, and selectable formatter (black or
// ruff).

import (
	"cigen/internal/detect"
	"cigen/internal/platform"
)

// PythonLinter selects the lint tool. The zero value means no linting.
type PythonLinter string

const (
	LinterNone   PythonLinter = ""
	LinterFlake8 PythonLinter = "flake8"
	LinterRuff   PythonLinter = "ruff"
)

// CheckCommand returns the lint invocation.
func (l PythonLinter) CheckCommand() string {
	if l == LinterRuff {
		return "ruff check ."
	}
	return "flake8 ."
}

// PythonFormatter selects the format-check tool. The zero value means no
// format checking.
type PythonFormatter string

const (
	FormatterNone  PythonFormatter = ""
	FormatterBlack PythonFormatter = "black"
	FormatterRuff  PythonFormatter = "ruff"
)

// CheckCommand returns the format-check invocation.
func (f PythonFormatter) CheckCommand() string {
	if f == FormatterRuff {
		return "ruff format --check ."
	}
	return "black --check ."
}

// enumNone is the sentinel variant optional enum options use for "off".
const enumNone = "none"

// PythonApp is the preset for Python applications and libraries.
type PythonApp struct{}

func (PythonApp) ID() string   { return "python-app" }
func (PythonApp) Name() string { return "Python App" }

func (PythonApp) Description() string {
	return "CI pipeline for Python applications with pytest, linting, and type checking"
}

func (PythonApp) Features() []FeatureMeta {
	return []FeatureMeta{
		{
			ID:          "linting",
			DisplayName: "Linting",
			Description: "Code quality checks with configurable tools",
			Options: []OptionMeta{{
				ID:          "linter",
				DisplayName: "Linter",
				Description: "Choose linter tool (None, Flake8, or Ruff)",
				Default:     EnumValue(enumNone, enumNone, "flake8", "ruff"),
			}},
		},
		{
			ID:          "testing",
			DisplayName: "Testing",
			Description: "Test execution and type checking",
			Options: []OptionMeta{{
				ID:          "type_check",
				DisplayName: "Type Checking",
				Description: "Enable mypy static type checking",
				Default:     BoolValue(true),
			}},
		},
		{
			ID:          "formatting",
			DisplayName: "Formatting",
			Description: "Code formatting checks",
			Options: []OptionMeta{{
				ID:          "formatter",
				DisplayName: "Formatter",
				Description: "Choose formatter tool (None, Black, or Ruff)",
				Default:     EnumValue(enumNone, enumNone, "black", "ruff"),
			}},
		},
	}
}

func (PythonApp) MatchesProject(t detect.ProjectType, _ string) bool {
	return t == detect.PythonApp || t == detect.PythonLibrary
}

func (p PythonApp) DefaultConfig(detected bool) *Config {
	return defaultConfig(p, detected)
}

func (p PythonApp) Generate(cfg *Config, target platform.Platform, langVersion string) (string, error) {
	return render(pythonFromConfig(cfg, langVersion), target)
}

// pythonInstance is the typed view of a python-app Config.
type pythonInstance struct {
	Version   string
	Linter    PythonLinter
	TypeCheck bool
	Formatter PythonFormatter
}

func pythonFromConfig(cfg *Config, version string) pythonInstance {
	if version == "" {
		version = "3.11"
	}
	inst := pythonInstance{
		Version:   version,
		TypeCheck: cfg.GetBool("type_check"),
	}
	if sel, ok := cfg.GetEnum("linter"); ok {
		switch PythonLinter(sel) {
		case LinterFlake8, LinterRuff:
			inst.Linter = PythonLinter(sel)
		}
	}
	if sel, ok := cfg.GetEnum("formatter"); ok {
		switch PythonFormatter(sel) {
		case FormatterBlack, FormatterRuff:
			inst.Formatter = PythonFormatter(sel)
		}
	}
	return inst
}

func (p pythonInstance) setupStep() platform.Step {
	return platform.Step{
		Name: "Setup Python",
		Uses: "actions/setup-python@v5",
		With: platform.Pairs{{Key: "python-version", Value: p.Version}},
	}
}

func (p pythonInstance) GitHub() (*platform.Workflow, error) {
	jobs := platform.Jobs{{ID: "python/test", Job: platform.Job{
		RunsOn: "ubuntu-latest",
		Steps: []platform.Step{
			checkoutStep(),
			p.setupStep(),
			{Name: "Install dependencies", Run: "pip install -r requirements.txt"},
			{Name: "Run tests", Run: "pytest"},
		},
		TimeoutMinutes: 30,
	}}}

	if p.Linter != LinterNone {
		jobs = append(jobs, platform.JobEntry{ID: "python/lint", Job: platform.Job{
			RunsOn: "ubuntu-latest",
			Steps: []platform.Step{
				checkoutStep(),
				p.setupStep(),
				{Name: "Install " + string(p.Linter), Run: "pip install " + string(p.Linter)},
				{Name: "Run " + string(p.Linter), Run: p.Linter.CheckCommand()},
			},
			TimeoutMinutes: 15,
		}})
	}

	if p.TypeCheck {
		jobs = append(jobs, platform.JobEntry{ID: "python/type-check", Job: platform.Job{
			RunsOn: "ubuntu-latest",
			Steps: []platform.Step{
				checkoutStep(),
				p.setupStep(),
				{Name: "Install mypy", Run: "pip install mypy"},
				{Name: "Run mypy", Run: "mypy ."},
			},
			TimeoutMinutes: 15,
		}})
	}

	if p.Formatter != FormatterNone {
		jobs = append(jobs, platform.JobEntry{ID: "python/format", Job: platform.Job{
			RunsOn: "ubuntu-latest",
			Steps: []platform.Step{
				checkoutStep(),
				p.setupStep(),
				{Name: "Install " + string(p.Formatter), Run: "pip install " + string(p.Formatter)},
				{Name: "Check formatting", Run: p.Formatter.CheckCommand()},
			},
			TimeoutMinutes: 10,
		}})
	}

	return &platform.Workflow{Name: "CI", On: ciTriggers(), Jobs: jobs}, nil
}

func (p pythonInstance) GitLab() (*platform.GitLabCI, error) {
	script := []string{"pip install -r requirements.txt", "pytest"}

	// Each block inserts right after the dependency install, so the final
	// command order is the reverse of the insertion order, with pytest last.
	if p.Linter != LinterNone {
		script = insertAt(script, 1, "pip install "+string(p.Linter))
		script = insertAt(script, 2, p.Linter.CheckCommand())
	}
	if p.TypeCheck {
		script = insertAt(script, 1, "pip install mypy")
		script = insertAt(script, 2, "mypy .")
	}
	if p.Formatter != FormatterNone {
		script = insertAt(script, 1, "pip install "+string(p.Formatter))
		script = insertAt(script, 2, p.Formatter.CheckCommand())
	}

	return &platform.GitLabCI{
		Stages: []string{"test"},
		Jobs: []platform.GitLabJobEntry{{ID: "python/test", Job: platform.GitLabJob{
			Stage:  "test",
			Image:  "python:" + p.Version,
			Script: script,
		}}},
	}, nil
}

func (p pythonInstance) CircleCI() (*platform.CircleCIConfig, error) {
	steps := []platform.CircleCIStep{
		{Simple: "checkout"},
		{Run: &platform.CircleCIRun{Name: "Install dependencies", Command: "pip install -r requirements.txt"}},
	}

	if p.Linter != LinterNone {
		steps = append(steps,
			platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Install " + string(p.Linter), Command: "pip install " + string(p.Linter)}},
			platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Lint", Command: p.Linter.CheckCommand()}},
		)
	}
	if p.TypeCheck {
		steps = append(steps,
			platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Install mypy", Command: "pip install mypy"}},
			platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Type check", Command: "mypy ."}},
		)
	}
	if p.Formatter != FormatterNone {
		steps = append(steps,
			platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Install " + string(p.Formatter), Command: "pip install " + string(p.Formatter)}},
			platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Format check", Command: p.Formatter.CheckCommand()}},
		)
	}
	steps = append(steps, platform.CircleCIStep{Run: &platform.CircleCIRun{Name: "Run tests", Command: "pytest"}})

	return &platform.CircleCIConfig{
		Version: "2.1",
		Jobs: []platform.CircleCIJobEntry{{ID: "python/test", Job: platform.CircleCIJob{
			Docker: []platform.CircleCIDocker{{Image: "python:" + p.Version}},
			Steps:  steps,
		}}},
		Workflows: []platform.CircleCIWorkflowEntry{{ID: "main", Workflow: platform.CircleCIWorkflow{
			Jobs: []platform.CircleCIWorkflowJob{{Name: "python/test"}},
		}}},
	}, nil
}

func (p pythonInstance) Jenkins() (*platform.JenkinsConfig, error) {
	steps := []string{"sh 'pip install -r requirements.txt'"}
	if p.TypeCheck {
		steps = append(steps, "sh 'mypy .'")
	}
	if p.Linter != LinterNone {
		steps = append(steps, "sh '"+p.Linter.CheckCommand()+"'")
	}
	if p.Formatter != FormatterNone {
		steps = append(steps, "sh '"+p.Formatter.CheckCommand()+"'")
	}
	steps = append(steps, "sh 'pytest'")

	return &platform.JenkinsConfig{
		Agent:  "any",
		Stages: []platform.JenkinsStage{{Name: "Test", Steps: steps}},
	}, nil
}
