// Package platform defines the CI platforms cigen can target, the structural
// models of their configuration files, and the serializers that turn those
// models into file contents.
//
// Every model here is plain data. Construction never touches the filesystem;
// serialization is deterministic for equal inputs.
package platform

import "strings"

// Platform identifies one target CI service.
type Platform int

const (
	GitHub Platform = iota
	Gitea
	GitLab
	CircleCI
	Jenkins
)

// All returns every platform in display order.
func All() []Platform {
	return []Platform{GitHub, Gitea, GitLab, CircleCI, Jenkins}
}

// Parse maps a user-supplied platform string, case-insensitively, to a
// Platform. Unknown strings fall back to GitHub.
func Parse(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gitea":
		return Gitea
	case "gitlab":
		return GitLab
	case "circleci":
		return CircleCI
	case "jenkins":
		return Jenkins
	default:
		return GitHub
	}
}

// Name returns the human-readable platform name.
func (p Platform) Name() string {
	switch p {
	case Gitea:
		return "Gitea Actions"
	case GitLab:
		return "GitLab CI"
	case CircleCI:
		return "CircleCI"
	case Jenkins:
		return "Jenkins"
	default:
		return "GitHub Actions"
	}
}

// String returns the canonical lower-case identifier, the inverse of Parse.
func (p Platform) String() string {
	switch p {
	case Gitea:
		return "gitea"
	case GitLab:
		return "gitlab"
	case CircleCI:
		return "circleci"
	case Jenkins:
		return "jenkins"
	default:
		return "github"
	}
}

// OutputPath returns the conventional output file path for the platform,
// relative to the repository root.
func (p Platform) OutputPath() string {
	switch p {
	case Gitea:
		return ".gitea/workflows/ci.yml"
	case GitLab:
		return ".gitlab-ci.yml"
	case CircleCI:
		return ".circleci/config.yml"
	case Jenkins:
		return "Jenkinsfile"
	default:
		return ".github/workflows/ci.yml"
	}
}
