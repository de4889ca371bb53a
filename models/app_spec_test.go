package models

import (
	"testing"
)

const intakeBotSpec = `name: medical-intake-bot
services:
  - name: bot-runner
    github:
      repo: abdulelsaied/medical-intake-bot
      branch: main
      deploy_on_push: true
    health_check:
      http_path: /
    http_port: 7860
    instance_count: 1
    instance_size_slug: basic-xxs
    run_command: uvicorn bot_runner:app --host 0.0.0.0 --port 7860
    envs:
      - key: OPENAI_API_KEY
        scope: RUN_TIME
        type: SECRET
      - key: DAILY_API_KEY
        scope: RUN_TIME
        type: SECRET
      - key: ELEVENLABS_API_KEY
        scope: RUN_TIME
        type: SECRET
      - key: ELEVENLABS_VOICE_ID
        scope: RUN_TIME
        type: SECRET
      - key: TWILIO_ACCOUNT_SID
        scope: RUN_TIME
        type: SECRET
      - key: TWILIO_AUTH_TOKEN
        scope: RUN_TIME
        type: SECRET
      - key: TWILIO_PHONE_NUMBER
        scope: RUN_TIME
        type: SECRET
      - key: SENDGRID_API_KEY
        scope: RUN_TIME
        type: SECRET
`

func TestParseAppSpec(t *testing.T) {
	spec, err := ParseAppSpec([]byte(intakeBotSpec))
	if err != nil {
		t.Fatalf("ParseAppSpec returned error: %v", err)
	}

	if spec.Name != "medical-intake-bot" {
		t.Errorf("expected app name medical-intake-bot, got %q", spec.Name)
	}
	if len(spec.Services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(spec.Services))
	}

	svc := spec.Services[0]
	if svc.Name != "bot-runner" {
		t.Errorf("expected service name bot-runner, got %q", svc.Name)
	}
	if svc.Github.Repo != "abdulelsaied/medical-intake-bot" {
		t.Errorf("unexpected repo %q", svc.Github.Repo)
	}
	if !svc.Github.DeployOnPush {
		t.Error("expected deploy_on_push to be true")
	}
	if svc.HealthCheck.HTTPPath != "/" {
		t.Errorf("unexpected health check path %q", svc.HealthCheck.HTTPPath)
	}
	if svc.HTTPPort != 7860 {
		t.Errorf("expected http_port 7860, got %d", svc.HTTPPort)
	}
	if len(svc.Envs) != 8 {
		t.Fatalf("expected 8 env declarations, got %d", len(svc.Envs))
	}
	for _, env := range svc.Envs {
		if env.Scope != EnvScopeRunTime {
			t.Errorf("env %s: expected scope RUN_TIME, got %q", env.Key, env.Scope)
		}
		if env.Type != EnvTypeSecret {
			t.Errorf("env %s: expected type SECRET, got %q", env.Key, env.Type)
		}
	}
}

func TestParseAppSpecRejectsUnknownFields(t *testing.T) {
	raw := `name: demo
services:
  - name: web
    run_comand: npm start
`
	if _, err := ParseAppSpec([]byte(raw)); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestParseAppSpecRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseAppSpec([]byte("name: [unclosed")); err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
}

func TestApplyDefaults(t *testing.T) {
	spec := AppSpec{
		Name: "demo",
		Services: []ServiceSpec{
			{
				Name:       "web",
				Github:     GithubSource{Repo: "acme/web"},
				RunCommand: "npm start",
				Envs: []EnvVarSpec{
					{Key: "LOG_LEVEL", Value: "info"},
				},
			},
		},
	}

	spec.ApplyDefaults()

	svc := spec.Services[0]
	if svc.Github.Branch != "main" {
		t.Errorf("expected default branch main, got %q", svc.Github.Branch)
	}
	if svc.InstanceCount != 1 {
		t.Errorf("expected default instance_count 1, got %d", svc.InstanceCount)
	}
	if svc.InstanceSizeSlug != "basic-xxs" {
		t.Errorf("expected default size slug basic-xxs, got %q", svc.InstanceSizeSlug)
	}
	if svc.Envs[0].Scope != EnvScopeRunTime {
		t.Errorf("expected default scope RUN_TIME, got %q", svc.Envs[0].Scope)
	}
	if svc.Envs[0].Type != EnvTypeGeneral {
		t.Errorf("expected default type GENERAL, got %q", svc.Envs[0].Type)
	}
}

func TestAppSpecJSONRoundtrip(t *testing.T) {
	spec, err := ParseAppSpec([]byte(intakeBotSpec))
	if err != nil {
		t.Fatalf("ParseAppSpec returned error: %v", err)
	}

	value, err := spec.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}

	var restored AppSpec
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if restored.Name != spec.Name {
		t.Errorf("name changed across roundtrip: %q != %q", restored.Name, spec.Name)
	}
	if len(restored.Services) != len(spec.Services) {
		t.Fatalf("service count changed across roundtrip")
	}
	if len(restored.Services[0].Envs) != len(spec.Services[0].Envs) {
		t.Errorf("env count changed across roundtrip")
	}
}
