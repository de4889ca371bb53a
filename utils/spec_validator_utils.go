package utils

import (
	"fmt"
	"strings"

	"github.com/specdeploy/dto"
	"github.com/specdeploy/models"
)

// maxInstanceCount is the platform-wide replica cap per service
const maxInstanceCount = 100

// ValidateAppSpec runs the full structural validation of a descriptor.
// An empty result means the descriptor is deployable. Call ApplyDefaults
// before validating; the checks assume defaults are already filled.
func ValidateAppSpec(spec models.AppSpec) []dto.SpecViolation {
	var violations []dto.SpecViolation

	add := func(field, format string, args ...interface{}) {
		violations = append(violations, dto.SpecViolation{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if spec.Name == "" {
		add("name", "app name is required")
	} else if !IsValidResourceName(spec.Name) {
		add("name", "app name %q must be a lowercase DNS label (max 63 chars)", spec.Name)
	}

	if len(spec.Services) == 0 {
		add("services", "descriptor must declare at least one service")
	}

	seenServices := make(map[string]bool)
	for i, svc := range spec.Services {
		prefix := fmt.Sprintf("services[%d]", i)

		if svc.Name == "" {
			add(prefix+".name", "service name is required")
		} else {
			if !IsValidResourceName(svc.Name) {
				add(prefix+".name", "service name %q must be a lowercase DNS label", svc.Name)
			}
			if seenServices[svc.Name] {
				add(prefix+".name", "duplicate service name %q", svc.Name)
			}
			seenServices[svc.Name] = true
		}

		validateGithubSource(svc.Github, prefix, add)

		if svc.HealthCheck.HTTPPath == "" {
			add(prefix+".health_check.http_path", "health check path is required")
		} else if !strings.HasPrefix(svc.HealthCheck.HTTPPath, "/") {
			add(prefix+".health_check.http_path", "health check path %q must be absolute", svc.HealthCheck.HTTPPath)
		}

		if svc.HTTPPort < 1 || svc.HTTPPort > 65535 {
			add(prefix+".http_port", "http_port %d must be between 1 and 65535", svc.HTTPPort)
		}

		if svc.InstanceCount < 1 {
			add(prefix+".instance_count", "instance_count must be at least 1")
		} else if svc.InstanceCount > maxInstanceCount {
			add(prefix+".instance_count", "instance_count %d exceeds the limit of %d", svc.InstanceCount, maxInstanceCount)
		}

		if _, ok := LookupInstanceSize(svc.InstanceSizeSlug); !ok {
			add(prefix+".instance_size_slug", "unknown instance size slug %q", svc.InstanceSizeSlug)
		}

		if svc.RunCommand == "" {
			add(prefix+".run_command", "run command is required")
		} else if port, ok := RunCommandPort(svc.RunCommand); ok && port != svc.HTTPPort {
			add(prefix+".run_command", "run command binds port %d but http_port is %d", port, svc.HTTPPort)
		}

		validateEnvs(svc.Envs, prefix, add)
	}

	return violations
}

func validateGithubSource(src models.GithubSource, prefix string, add func(string, string, ...interface{})) {
	if src.Repo == "" {
		add(prefix+".github.repo", "github repo is required")
		return
	}

	parts := strings.Split(src.Repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		add(prefix+".github.repo", "github repo %q must be in owner/repo form", src.Repo)
	}

	if src.Branch == "" {
		add(prefix+".github.branch", "github branch is required")
	}
}

func validateEnvs(envs []models.EnvVarSpec, prefix string, add func(string, string, ...interface{})) {
	seen := make(map[string]bool)

	for i, env := range envs {
		field := fmt.Sprintf("%s.envs[%d]", prefix, i)

		if env.Key == "" {
			add(field+".key", "env key is required")
		} else {
			if !isValidEnvKey(env.Key) {
				add(field+".key", "env key %q is not a valid environment variable name", env.Key)
			}
			if seen[env.Key] {
				add(field+".key", "duplicate env key %q", env.Key)
			}
			seen[env.Key] = true
		}

		switch env.Scope {
		case models.EnvScopeRunTime, models.EnvScopeBuildTime:
		default:
			add(field+".scope", "scope %q must be RUN_TIME or BUILD_TIME", env.Scope)
		}

		switch env.Type {
		case models.EnvTypeGeneral, models.EnvTypeSecret:
		default:
			add(field+".type", "type %q must be GENERAL or SECRET", env.Type)
		}
	}
}

// isValidEnvKey checks the POSIX environment variable name rules
func isValidEnvKey(key string) bool {
	for i, char := range key {
		isLetter := (char >= 'A' && char <= 'Z') || (char >= 'a' && char <= 'z') || char == '_'
		isDigit := char >= '0' && char <= '9'

		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return len(key) > 0
}
