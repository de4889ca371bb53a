package utils

import (
	"testing"

	"github.com/specdeploy/models"
)

func testApp(t *testing.T) models.App {
	t.Helper()

	return models.App{
		ID:   "2f1c9a6e-0000-4000-8000-000000000001",
		Name: "medical-intake-bot",
		Spec: models.AppSpec{
			Name:     "medical-intake-bot",
			Services: []models.ServiceSpec{renderServiceSpec(t)},
		},
	}
}

func renderServiceSpec(t *testing.T) models.ServiceSpec {
	t.Helper()

	return models.ServiceSpec{
		Name: "bot-runner",
		Github: models.GithubSource{
			Repo:   "abdulelsaied/medical-intake-bot",
			Branch: "main",
		},
		HealthCheck:      models.HealthCheck{HTTPPath: "/"},
		HTTPPort:         7860,
		InstanceCount:    2,
		InstanceSizeSlug: "basic-xs",
		RunCommand:       "uvicorn bot_runner:app --host 0.0.0.0 --port 7860",
		Envs: []models.EnvVarSpec{
			{Key: "LOG_LEVEL", Value: "info", Scope: models.EnvScopeRunTime, Type: models.EnvTypeGeneral},
		},
	}
}

func TestRenderDeployment(t *testing.T) {
	app := testApp(t)
	svc := app.Spec.Services[0]

	deployment, err := RenderDeployment(app, svc, "ghcr.io", testEncryptionKey)
	if err != nil {
		t.Fatalf("RenderDeployment returned error: %v", err)
	}

	if deployment.Name != "medical-intake-bot-bot-runner" {
		t.Errorf("unexpected deployment name %q", deployment.Name)
	}
	if deployment.Namespace != app.ID {
		t.Errorf("expected namespace %q, got %q", app.ID, deployment.Namespace)
	}
	if *deployment.Spec.Replicas != 2 {
		t.Errorf("expected 2 replicas from instance_count, got %d", *deployment.Spec.Replicas)
	}

	container := deployment.Spec.Template.Spec.Containers[0]
	if container.Image != "ghcr.io/abdulelsaied/medical-intake-bot:main" {
		t.Errorf("unexpected image %q", container.Image)
	}
	if len(container.Command) != 3 || container.Command[2] != svc.RunCommand {
		t.Errorf("run command not wired through shell: %v", container.Command)
	}
	if container.Ports[0].ContainerPort != 7860 {
		t.Errorf("unexpected container port %d", container.Ports[0].ContainerPort)
	}

	if container.LivenessProbe == nil || container.LivenessProbe.HTTPGet == nil {
		t.Fatal("liveness probe missing")
	}
	if container.LivenessProbe.HTTPGet.Path != "/" {
		t.Errorf("probe path %q does not match health_check.http_path", container.LivenessProbe.HTTPGet.Path)
	}
	if container.LivenessProbe.HTTPGet.Port.IntValue() != 7860 {
		t.Errorf("probe port %d does not match http_port", container.LivenessProbe.HTTPGet.Port.IntValue())
	}

	// basic-xs maps to 1 CPU / 1Gi
	cpu := container.Resources.Limits.Cpu()
	if cpu.String() != "1" {
		t.Errorf("unexpected CPU limit %s for basic-xs", cpu.String())
	}

	foundPort := false
	for _, env := range container.Env {
		if env.Name == "PORT" && env.Value == "7860" {
			foundPort = true
		}
	}
	if !foundPort {
		t.Error("PORT not injected into container env")
	}
}

func TestRenderDeploymentUnknownSlug(t *testing.T) {
	app := testApp(t)
	svc := app.Spec.Services[0]
	svc.InstanceSizeSlug = "mega-xxl"

	if _, err := RenderDeployment(app, svc, "ghcr.io", testEncryptionKey); err == nil {
		t.Fatal("expected error for unknown instance size slug, got nil")
	}
}

func TestRenderService(t *testing.T) {
	app := testApp(t)
	svc := app.Spec.Services[0]

	service := RenderService(app, svc)

	if service.Name != "medical-intake-bot-bot-runner" {
		t.Errorf("unexpected service name %q", service.Name)
	}
	if service.Spec.Ports[0].Port != 7860 {
		t.Errorf("unexpected service port %d", service.Spec.Ports[0].Port)
	}
	if service.Spec.Ports[0].TargetPort.IntValue() != 7860 {
		t.Errorf("unexpected target port %d", service.Spec.Ports[0].TargetPort.IntValue())
	}
	if service.Spec.Selector["app"] != "medical-intake-bot-bot-runner" {
		t.Errorf("selector does not match resource name: %v", service.Spec.Selector)
	}
}
