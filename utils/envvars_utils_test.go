package utils

import (
	"testing"

	"github.com/specdeploy/models"
)

const testEncryptionKey = "test-platform-key"

func testServiceSpec(t *testing.T) models.ServiceSpec {
	t.Helper()

	sealed, err := EncryptEnvValue(testEncryptionKey, "sk-secret-token")
	if err != nil {
		t.Fatalf("EncryptEnvValue returned error: %v", err)
	}

	return models.ServiceSpec{
		Name:     "bot-runner",
		HTTPPort: 7860,
		Envs: []models.EnvVarSpec{
			{Key: "OPENAI_API_KEY", Value: sealed, Scope: models.EnvScopeRunTime, Type: models.EnvTypeSecret},
			{Key: "LOG_LEVEL", Value: "info", Scope: models.EnvScopeRunTime, Type: models.EnvTypeGeneral},
			{Key: "BUILD_FLAG", Value: "1", Scope: models.EnvScopeBuildTime, Type: models.EnvTypeGeneral},
		},
	}
}

func TestRuntimeEnvVars(t *testing.T) {
	svc := testServiceSpec(t)

	env, err := RuntimeEnvVars(svc, testEncryptionKey)
	if err != nil {
		t.Fatalf("RuntimeEnvVars returned error: %v", err)
	}

	byName := make(map[string]string, len(env))
	for _, e := range env {
		byName[e.Name] = e.Value
	}

	if byName["OPENAI_API_KEY"] != "sk-secret-token" {
		t.Errorf("secret was not opened: got %q", byName["OPENAI_API_KEY"])
	}
	if byName["LOG_LEVEL"] != "info" {
		t.Errorf("general value mangled: got %q", byName["LOG_LEVEL"])
	}
	if _, ok := byName["BUILD_FLAG"]; ok {
		t.Error("BUILD_TIME variable leaked into the runtime environment")
	}
	if byName["PORT"] != "7860" {
		t.Errorf("expected injected PORT=7860, got %q", byName["PORT"])
	}
}

func TestRuntimeEnvVarsWrongKey(t *testing.T) {
	svc := testServiceSpec(t)

	if _, err := RuntimeEnvVars(svc, "some-other-key"); err == nil {
		t.Fatal("expected error opening secrets with wrong key, got nil")
	}
}

func TestMissingRuntimeKeys(t *testing.T) {
	svc := models.ServiceSpec{
		Name: "bot-runner",
		Envs: []models.EnvVarSpec{
			{Key: "OPENAI_API_KEY", Scope: models.EnvScopeRunTime, Type: models.EnvTypeSecret},
			{Key: "DAILY_API_KEY", Scope: models.EnvScopeRunTime, Type: models.EnvTypeSecret},
			{Key: "LOG_LEVEL", Value: "info", Scope: models.EnvScopeRunTime, Type: models.EnvTypeGeneral},
			{Key: "BUILD_FLAG", Scope: models.EnvScopeBuildTime, Type: models.EnvTypeGeneral},
		},
	}

	missing := MissingRuntimeKeys(svc)

	if len(missing) != 2 {
		t.Fatalf("expected 2 missing keys, got %v", missing)
	}
	if missing[0] != "OPENAI_API_KEY" || missing[1] != "DAILY_API_KEY" {
		t.Errorf("unexpected missing keys %v", missing)
	}
}

func TestMissingRuntimeKeysAllSet(t *testing.T) {
	svc := testServiceSpec(t)

	if missing := MissingRuntimeKeys(svc); len(missing) != 0 {
		t.Errorf("expected no missing keys, got %v", missing)
	}
}

func TestSealSecretValues(t *testing.T) {
	spec := models.AppSpec{
		Name: "demo",
		Services: []models.ServiceSpec{
			{
				Name: "web",
				Envs: []models.EnvVarSpec{
					{Key: "API_KEY", Value: "plain-secret", Scope: models.EnvScopeRunTime, Type: models.EnvTypeSecret},
					{Key: "LOG_LEVEL", Value: "debug", Scope: models.EnvScopeRunTime, Type: models.EnvTypeGeneral},
				},
			},
		},
	}

	if err := SealSecretValues(&spec, testEncryptionKey); err != nil {
		t.Fatalf("SealSecretValues returned error: %v", err)
	}

	if !IsEncryptedEnvValue(spec.Services[0].Envs[0].Value) {
		t.Error("secret value was not sealed")
	}
	if spec.Services[0].Envs[1].Value != "debug" {
		t.Error("general value should stay plain")
	}

	// Sealing again must not wrap the ciphertext a second time
	sealed := spec.Services[0].Envs[0].Value
	if err := SealSecretValues(&spec, testEncryptionKey); err != nil {
		t.Fatalf("SealSecretValues returned error: %v", err)
	}
	if spec.Services[0].Envs[0].Value != sealed {
		t.Error("already sealed value was re-encrypted")
	}
}

func TestCarryForwardSecrets(t *testing.T) {
	sealed, err := EncryptEnvValue(testEncryptionKey, "stored-secret")
	if err != nil {
		t.Fatalf("EncryptEnvValue returned error: %v", err)
	}

	current := models.AppSpec{
		Name: "demo",
		Services: []models.ServiceSpec{
			{
				Name: "web",
				Envs: []models.EnvVarSpec{
					{Key: "API_KEY", Value: sealed, Scope: models.EnvScopeRunTime, Type: models.EnvTypeSecret},
				},
			},
		},
	}

	next := models.AppSpec{
		Name: "demo",
		Services: []models.ServiceSpec{
			{
				Name: "web",
				Envs: []models.EnvVarSpec{
					{Key: "API_KEY", Scope: models.EnvScopeRunTime, Type: models.EnvTypeSecret},
					{Key: "NEW_SECRET", Value: "fresh", Scope: models.EnvScopeRunTime, Type: models.EnvTypeSecret},
				},
			},
		},
	}

	CarryForwardSecrets(&next, current)

	if next.Services[0].Envs[0].Value != sealed {
		t.Error("omitted secret did not keep its stored ciphertext")
	}
	if next.Services[0].Envs[1].Value != "fresh" {
		t.Error("explicitly provided secret value must win over stored one")
	}
}

func TestRedactSecrets(t *testing.T) {
	svc := testServiceSpec(t)
	spec := models.AppSpec{Name: "demo", Services: []models.ServiceSpec{svc}}

	redacted := RedactSecrets(spec)

	if redacted.Services[0].Envs[0].Value != "" {
		t.Error("secret value visible after redaction")
	}
	if redacted.Services[0].Envs[1].Value != "info" {
		t.Error("general value should survive redaction")
	}

	// The original descriptor must be untouched
	if spec.Services[0].Envs[0].Value == "" {
		t.Error("redaction mutated the source descriptor")
	}
}
