package platform_test

import (
	"strings"
	"testing"

	"cigen/internal/platform"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want platform.Platform
	}{
		{"github", platform.GitHub},
		{"GitHub", platform.GitHub},
		{"gitea", platform.Gitea},
		{"gitlab", platform.GitLab},
		{"circleci", platform.CircleCI},
		{"jenkins", platform.Jenkins},
		{"", platform.GitHub},
		{"unknown", platform.GitHub},
	}
	for _, tc := range cases {
		if got := platform.Parse(tc.in); got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		p    platform.Platform
		want string
	}{
		{platform.GitHub, ".github/workflows/ci.yml"},
		{platform.Gitea, ".gitea/workflows/ci.yml"},
		{platform.GitLab, ".gitlab-ci.yml"},
		{platform.CircleCI, ".circleci/config.yml"},
		{platform.Jenkins, "Jenkinsfile"},
	}
	for _, tc := range cases {
		if got := tc.p.OutputPath(); got != tc.want {
			t.Errorf("%v.OutputPath() = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestAllRoundTripsThroughParse(t *testing.T) {
	for _, p := range platform.All() {
		if got := platform.Parse(p.String()); got != p {
			t.Errorf("Parse(%q) = %v, want %v", p.String(), got, p)
		}
	}
}

func TestWorkflowJobOrder(t *testing.T) {
	wf := &platform.Workflow{
		Name: "ci",
		On:   platform.Triggers{Simple: []string{"push"}},
		Jobs: platform.Jobs{
			{ID: "zeta", Job: platform.Job{RunsOn: "ubuntu-latest"}},
			{ID: "alpha", Job: platform.Job{RunsOn: "ubuntu-latest"}},
		},
	}
	out, err := wf.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if strings.Index(out, "zeta:") > strings.Index(out, "alpha:") {
		t.Errorf("jobs not emitted in declaration order:\n%s", out)
	}
}

func TestWorkflowSerializeDeterministic(t *testing.T) {
	wf := &platform.Workflow{
		Name: "ci",
		On: platform.Triggers{Detailed: []platform.Trigger{
			{Event: "push", Branches: []string{"main", "master"}},
		}},
		Env: platform.Pairs{{Key: "CARGO_TERM_COLOR", Value: "always"}},
		Jobs: platform.Jobs{{ID: "test", Job: platform.Job{
			RunsOn:         "ubuntu-latest",
			TimeoutMinutes: 30,
			Steps: []platform.Step{
				{Name: "Checkout", Uses: "actions/checkout@v4"},
				{Name: "Test", Run: "cargo test"},
			},
		}}},
	}
	first, err := wf.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := wf.Serialize()
		if err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		if again != first {
			t.Fatalf("non-deterministic output on run %d", i)
		}
	}
	for _, want := range []string{
		"name: ci",
		"runs-on: ubuntu-latest",
		"timeout-minutes: 30",
		"branches:",
		"CARGO_TERM_COLOR: always",
	} {
		if !strings.Contains(first, want) {
			t.Errorf("output missing %q:\n%s", want, first)
		}
	}
}

func TestTriggersSimpleForm(t *testing.T) {
	wf := &platform.Workflow{
		Name: "ci",
		On:   platform.Triggers{Simple: []string{"push", "pull_request"}},
		Jobs: platform.Jobs{{ID: "test", Job: platform.Job{RunsOn: "ubuntu-latest"}}},
	}
	out, err := wf.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !strings.Contains(out, "- push") || !strings.Contains(out, "- pull_request") {
		t.Errorf("simple trigger list missing:\n%s", out)
	}
}

func TestGitLabJobsAtTopLevel(t *testing.T) {
	ci := &platform.GitLabCI{
		Stages: []string{"test", "lint"},
		Jobs: []platform.GitLabJobEntry{
			{ID: "go/test", Job: platform.GitLabJob{Stage: "test", Image: "golang:1.21", Script: []string{"go test ./..."}}},
			{ID: "go/lint", Job: platform.GitLabJob{Stage: "lint", Image: "golang:1.21", Script: []string{"golangci-lint run"}}},
		},
	}
	out, err := ci.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !strings.Contains(out, "go/test:") || !strings.Contains(out, "go/lint:") {
		t.Errorf("jobs not flattened to top level:\n%s", out)
	}
	if strings.Contains(out, "jobs:") {
		t.Errorf("gitlab output must not nest jobs under a jobs key:\n%s", out)
	}
	if strings.Index(out, "stages:") > strings.Index(out, "go/test:") {
		t.Errorf("stages must precede jobs:\n%s", out)
	}
}

func TestCircleCISerialize(t *testing.T) {
	cfg := &platform.CircleCIConfig{
		Version: "2.1",
		Jobs: []platform.CircleCIJobEntry{{ID: "build", Job: platform.CircleCIJob{
			Docker: []platform.CircleCIDocker{{Image: "cimg/base:stable"}},
			Steps: []platform.CircleCIStep{
				{Simple: "checkout"},
				{Run: &platform.CircleCIRun{Name: "Test", Command: "make test"}},
			},
		}}},
		Workflows: []platform.CircleCIWorkflowEntry{{ID: "main", Workflow: platform.CircleCIWorkflow{
			Jobs: []platform.CircleCIWorkflowJob{{Name: "build"}},
		}}},
	}
	out, err := cfg.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	for _, want := range []string{"version: \"2.1\"", "- checkout", "cimg/base:stable", "workflows:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJenkinsSerialize(t *testing.T) {
	cfg := &platform.JenkinsConfig{
		Agent: "any",
		Environment: []platform.Pair{
			{Key: "GO_VERSION", Value: "1.21"},
		},
		Stages: []platform.JenkinsStage{
			{Name: "Test", Steps: []string{"sh 'go test ./...'"}},
		},
	}
	out, err := cfg.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	for _, want := range []string{
		"pipeline {",
		"agent {",
		"label 'any'",
		"environment {",
		"GO_VERSION = '1.21'",
		"stage('Test')",
		"sh 'go test ./...'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("output must end with closing brace and newline, got %q", out[len(out)-5:])
	}
}
