package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EnvScope controls when an environment variable is made available
type EnvScope string

const (
	EnvScopeRunTime   EnvScope = "RUN_TIME"   // injected into the running process only
	EnvScopeBuildTime EnvScope = "BUILD_TIME" // available during image build only
)

// EnvType controls how an environment variable value is stored and displayed
type EnvType string

const (
	EnvTypeGeneral EnvType = "GENERAL" // plain value
	EnvTypeSecret  EnvType = "SECRET"  // stored encrypted, redacted everywhere
)

// EnvVarSpec is a single environment variable declaration in a descriptor
type EnvVarSpec struct {
	Key   string   `json:"key" yaml:"key"`
	Value string   `json:"value,omitempty" yaml:"value,omitempty"`
	Scope EnvScope `json:"scope" yaml:"scope"`
	Type  EnvType  `json:"type" yaml:"type"`
}

// IsSecret reports whether the declaration is typed SECRET
func (e EnvVarSpec) IsSecret() bool {
	return e.Type == EnvTypeSecret
}

// GithubSource identifies the repository a service is deployed from
type GithubSource struct {
	Repo         string `json:"repo" yaml:"repo"` // owner/repo
	Branch       string `json:"branch" yaml:"branch"`
	DeployOnPush bool   `json:"deploy_on_push" yaml:"deploy_on_push"`
}

// HealthCheck describes how the platform probes a running service
type HealthCheck struct {
	HTTPPath string `json:"http_path" yaml:"http_path"`
}

// ServiceSpec is a single service entry in a descriptor
type ServiceSpec struct {
	Name             string       `json:"name" yaml:"name"`
	Github           GithubSource `json:"github" yaml:"github"`
	HealthCheck      HealthCheck  `json:"health_check" yaml:"health_check"`
	HTTPPort         int          `json:"http_port" yaml:"http_port"`
	InstanceCount    int          `json:"instance_count" yaml:"instance_count"`
	InstanceSizeSlug string       `json:"instance_size_slug" yaml:"instance_size_slug"`
	RunCommand       string       `json:"run_command" yaml:"run_command"`
	Envs             []EnvVarSpec `json:"envs" yaml:"envs"`
}

// AppSpec is a full service deployment descriptor: one app, its services,
// and their environment declarations. Authored once, read on every deploy.
type AppSpec struct {
	Name     string        `json:"name" yaml:"name"`
	Services []ServiceSpec `json:"services" yaml:"services"`
}

// ParseAppSpec decodes a raw YAML descriptor. Unknown fields are rejected
// so typos in descriptors fail loudly instead of being silently dropped.
func ParseAppSpec(raw []byte) (AppSpec, error) {
	var spec AppSpec

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)

	if err := decoder.Decode(&spec); err != nil {
		return AppSpec{}, fmt.Errorf("invalid descriptor: %w", err)
	}

	spec.ApplyDefaults()
	return spec, nil
}

// ApplyDefaults fills the optional descriptor fields the same way the
// deployment platform would before validation
func (s *AppSpec) ApplyDefaults() {
	for i := range s.Services {
		svc := &s.Services[i]

		if svc.Github.Branch == "" {
			svc.Github.Branch = "main"
		}
		if svc.InstanceCount == 0 {
			svc.InstanceCount = 1
		}
		if svc.InstanceSizeSlug == "" {
			svc.InstanceSizeSlug = "basic-xxs"
		}

		for j := range svc.Envs {
			env := &svc.Envs[j]
			if env.Scope == "" {
				env.Scope = EnvScopeRunTime
			}
			if env.Type == "" {
				env.Type = EnvTypeGeneral
			}
		}
	}
}

// Service returns the named service entry, or nil when absent
func (s *AppSpec) Service(name string) *ServiceSpec {
	for i := range s.Services {
		if s.Services[i].Name == name {
			return &s.Services[i]
		}
	}
	return nil
}

// ToYAML renders the descriptor back to its canonical YAML form
func (s AppSpec) ToYAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// Value implements driver.Valuer so the descriptor is stored as jsonb
func (s AppSpec) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for jsonb columns
func (s *AppSpec) Scan(value interface{}) error {
	if value == nil {
		*s = AppSpec{}
		return nil
	}

	raw, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(raw, s)
}
