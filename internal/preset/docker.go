package preset

// docker.go — the Docker preset: buildx image builds with optional registry
// push, layer caching, tags-only triggers, and multi-architecture support.

import (
	"fmt"
	"os"
	"path/filepath"

	"cigen/internal/detect"
	"cigen/internal/platform"
)

// DockerRegistry selects where built images are pushed. The zero value means
// build only, no push.
type DockerRegistry string

const (
	RegistryNone      DockerRegistry = ""
	RegistryDockerHub DockerRegistry = "dockerhub"
	RegistryGitHub    DockerRegistry = "github"
)

// Docker is the preset for Dockerfile-based projects.
type Docker struct{}

func (Docker) ID() string   { return "docker" }
func (Docker) Name() string { return "Docker" }

func (Docker) Description() string {
	return "CI pipeline for building and pushing Docker images to registries"
}

func (Docker) Features() []FeatureMeta {
	return []FeatureMeta{
		{
			ID:          "configuration",
			DisplayName: "Configuration",
			Description: "Basic Docker image configuration",
			Options: []OptionMeta{{
				ID:          "image_name",
				DisplayName: "Image Name",
				Description: "Docker image name (e.g., myapp)",
				Default:     StringValue("myapp"),
			}},
		},
		{
			ID:          "registry",
			DisplayName: "Registry",
			Description: "Container registry configuration",
			Options: []OptionMeta{{
				ID:          "registry_type",
				DisplayName: "Registry Type",
				Description: "Choose where to push Docker images",
				Default:     EnumValue(enumNone, enumNone, "dockerhub", "github"),
			}},
		},
		{
			ID:          "optimization",
			DisplayName: "Optimization",
			Description: "Build optimization settings",
			Options: []OptionMeta{
				{
					ID:          "enable_cache",
					DisplayName: "Enable Cache",
					Description: "Use Docker layer caching for faster builds",
					Default:     BoolValue(true),
				},
				{
					ID:          "tags_only",
					DisplayName: "Tags Only",
					Description: "Only push images on git tags (not on branch pushes)",
					Default:     BoolValue(false),
				},
			},
		},
		{
			ID:          "multiarch",
			DisplayName: "Multi-Architecture",
			Description: "Cross-platform build settings",
			Options: []OptionMeta{
				{
					ID:          "enable_qemu",
					DisplayName: "Enable QEMU",
					Description: "Enable cross-architecture builds using QEMU emulation",
					Default:     BoolValue(false),
				},
				{
					ID:          "multiplatform",
					DisplayName: "Multi-Platform",
					Description: "Build for multiple platforms (linux/amd64, linux/arm64)",
					Default:     BoolValue(false),
					DependsOn:   "enable_qemu",
				},
			},
		},
	}
}

// MatchesProject is true for detected Docker projects and for any directory
// that carries a Dockerfile, whatever its primary toolchain.
func (Docker) MatchesProject(t detect.ProjectType, dir string) bool {
	if t == detect.DockerImage {
		return true
	}
	for _, name := range []string{"Dockerfile", "Dockerfile.dev", "Dockerfile.prod", "dockerfile"} {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

func (p Docker) DefaultConfig(detected bool) *Config {
	return defaultConfig(p, detected)
}

func (p Docker) Generate(cfg *Config, target platform.Platform, _ string) (string, error) {
	return render(dockerFromConfig(cfg), target)
}

// dockerInstance is the typed view of a docker Config.
type dockerInstance struct {
	ImageName      string
	Registry       DockerRegistry
	DockerfilePath string
	BuildContext   string
	EnableCache    bool
	TagsOnly       bool
	EnableQEMU     bool
	MultiPlatform  bool
}

func dockerFromConfig(cfg *Config) dockerInstance {
	inst := dockerInstance{
		ImageName:      cfg.GetString("image_name"),
		DockerfilePath: "./Dockerfile",
		BuildContext:   ".",
		EnableCache:    cfg.GetBool("enable_cache"),
		TagsOnly:       cfg.GetBool("tags_only"),
		EnableQEMU:     cfg.GetBool("enable_qemu"),
		MultiPlatform:  cfg.GetBool("multiplatform"),
	}
	if inst.ImageName == "" {
		inst.ImageName = "myapp"
	}
	switch sel, _ := cfg.GetEnum("registry_type"); sel {
	case "dockerhub":
		inst.Registry = RegistryDockerHub
	case "github":
		inst.Registry = RegistryGitHub
	}
	return inst
}

func (d dockerInstance) GitHub() (*platform.Workflow, error) {
	steps := []platform.Step{checkoutStep()}

	if d.EnableQEMU {
		steps = append(steps, platform.Step{
			Name: "Set up QEMU",
			Uses: "docker/setup-qemu-action@v3",
		})
	}

	steps = append(steps, platform.Step{
		Name: "Set up Docker Buildx",
		Uses: "docker/setup-buildx-action@v3",
	})

	switch d.Registry {
	case RegistryDockerHub:
		steps = append(steps, platform.Step{
			Name: "Login to Docker Hub",
			Uses: "docker/login-action@v3",
			With: platform.Pairs{
				{Key: "username", Value: "${{ secrets.DOCKER_USERNAME }}"},
				{Key: "password", Value: "${{ secrets.DOCKER_PASSWORD }}"},
			},
		})
	case RegistryGitHub:
		steps = append(steps, platform.Step{
			Name: "Login to GitHub Container Registry",
			Uses: "docker/login-action@v3",
			With: platform.Pairs{
				{Key: "registry", Value: "ghcr.io"},
				{Key: "username", Value: "${{ github.actor }}"},
				{Key: "password", Value: "${{ secrets.GITHUB_TOKEN }}"},
			},
		})
	}

	images := d.ImageName
	if d.Registry == RegistryGitHub {
		images = fmt.Sprintf("ghcr.io/${{ github.repository_owner }}/%s", d.ImageName)
	}
	steps = append(steps, platform.Step{
		Name: "Extract Docker metadata",
		Uses: "docker/metadata-action@v5",
		ID:   "meta",
		With: platform.Pairs{
			{Key: "images", Value: images},
			{Key: "tags", Value: "type=ref,event=branch\ntype=ref,event=pr\ntype=semver,pattern={{version}}\ntype=semver,pattern={{major}}.{{minor}}"},
		},
	})

	buildWith := platform.Pairs{
		{Key: "context", Value: d.BuildContext},
		{Key: "file", Value: d.DockerfilePath},
		{Key: "tags", Value: "${{ steps.meta.outputs.tags }}"},
		{Key: "labels", Value: "${{ steps.meta.outputs.labels }}"},
	}
	if d.Registry != RegistryNone {
		buildWith = append(buildWith, platform.Pair{Key: "push", Value: "true"})
	}
	if d.EnableCache {
		buildWith = append(buildWith,
			platform.Pair{Key: "cache-from", Value: "type=gha"},
			platform.Pair{Key: "cache-to", Value: "type=gha,mode=max"},
		)
	}
	if d.MultiPlatform {
		buildWith = append(buildWith, platform.Pair{Key: "platforms", Value: "linux/amd64,linux/arm64"})
	}
	steps = append(steps, platform.Step{
		Name: "Build and push Docker image",
		Uses: "docker/build-push-action@v5",
		With: buildWith,
	})

	var triggers platform.Triggers
	if d.TagsOnly {
		triggers = platform.Triggers{Detailed: []platform.Trigger{
			{Event: "push", Tags: []string{"v*"}},
			{Event: "pull_request", Branches: defaultBranches()},
		}}
	} else {
		triggers = platform.Triggers{Detailed: []platform.Trigger{
			{Event: "push", Branches: defaultBranches(), Tags: []string{"v*"}},
			{Event: "pull_request", Branches: defaultBranches()},
		}}
	}

	return &platform.Workflow{
		Name: "Docker Build and Push",
		On:   triggers,
		Jobs: platform.Jobs{{ID: "docker/build", Job: platform.Job{
			RunsOn:         "ubuntu-latest",
			Steps:          steps,
			TimeoutMinutes: 30,
		}}},
	}, nil
}

func (d dockerInstance) buildCommand() string {
	return fmt.Sprintf("docker build -t %s -f %s %s", d.ImageName, d.DockerfilePath, d.BuildContext)
}

func (d dockerInstance) GitLab() (*platform.GitLabCI, error) {
	script := []string{
		"docker login -u $CI_REGISTRY_USER -p $CI_REGISTRY_PASSWORD $CI_REGISTRY",
		d.buildCommand(),
	}
	if d.Registry != RegistryNone {
		script = append(script, "docker push "+d.ImageName)
	}

	job := platform.GitLabJob{
		Stage:  "build",
		Image:  "docker:latest",
		Script: script,
	}
	if d.TagsOnly {
		job.Only = &platform.GitLabOnly{Refs: []string{"tags"}}
	}

	return &platform.GitLabCI{
		Stages: []string{"build"},
		Jobs:   []platform.GitLabJobEntry{{ID: "docker/build", Job: job}},
	}, nil
}

func (d dockerInstance) CircleCI() (*platform.CircleCIConfig, error) {
	steps := []platform.CircleCIStep{
		{Simple: "checkout"},
		{Simple: "setup_remote_docker"},
	}

	switch d.Registry {
	case RegistryDockerHub:
		steps = append(steps, platform.CircleCIStep{Run: &platform.CircleCIRun{
			Shell: "echo $DOCKER_PASSWORD | docker login -u $DOCKER_USERNAME --password-stdin",
		}})
	case RegistryGitHub:
		steps = append(steps, platform.CircleCIStep{Run: &platform.CircleCIRun{
			Shell: "echo $GITHUB_TOKEN | docker login ghcr.io -u $GITHUB_USERNAME --password-stdin",
		}})
	}

	steps = append(steps, platform.CircleCIStep{Run: &platform.CircleCIRun{
		Name:    "Build Docker image",
		Command: d.buildCommand(),
	}})
	if d.Registry != RegistryNone {
		steps = append(steps, platform.CircleCIStep{Run: &platform.CircleCIRun{
			Name:    "Push Docker image",
			Command: "docker push " + d.ImageName,
		}})
	}

	return &platform.CircleCIConfig{
		Version: "2.1",
		Jobs: []platform.CircleCIJobEntry{{ID: "docker/build", Job: platform.CircleCIJob{
			Docker: []platform.CircleCIDocker{{Image: "cimg/base:stable"}},
			Steps:  steps,
		}}},
		Workflows: []platform.CircleCIWorkflowEntry{{ID: "main", Workflow: platform.CircleCIWorkflow{
			Jobs: []platform.CircleCIWorkflowJob{{Name: "docker/build"}},
		}}},
	}, nil
}

func (d dockerInstance) Jenkins() (*platform.JenkinsConfig, error) {
	var steps []string

	switch d.Registry {
	case RegistryDockerHub:
		steps = append(steps, "sh 'echo $DOCKER_PASSWORD | docker login -u $DOCKER_USERNAME --password-stdin'")
	case RegistryGitHub:
		steps = append(steps, "sh 'echo $GITHUB_TOKEN | docker login ghcr.io -u $GITHUB_USERNAME --password-stdin'")
	}

	steps = append(steps, "sh '"+d.buildCommand()+"'")
	if d.Registry != RegistryNone {
		steps = append(steps, "sh 'docker push "+d.ImageName+"'")
	}

	return &platform.JenkinsConfig{
		Agent:  "any",
		Stages: []platform.JenkinsStage{{Name: "Docker Build", Steps: steps}},
	}, nil
}
