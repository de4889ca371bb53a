package services

import (
	"log"

	"github.com/specdeploy/dto"
	"github.com/specdeploy/models"
	"github.com/specdeploy/repositories"
)

// WebhookService turns GitHub push events into deployments
type WebhookService struct {
	appRepo           *repositories.AppRepository
	deploymentService *DeploymentService
}

// NewWebhookService creates a new webhook service instance
func NewWebhookService(deploymentService *DeploymentService) *WebhookService {
	return &WebhookService{
		appRepo:           repositories.NewAppRepository(),
		deploymentService: deploymentService,
	}
}

// HandlePush deploys every app with a service whose github source matches
// the pushed repo and branch and has deploy_on_push enabled. Returns the
// IDs of the deployments it started.
func (s *WebhookService) HandlePush(event dto.PushEvent) ([]string, error) {
	branch := event.Branch()
	if branch == "" {
		// Tag pushes and branch deletions are ignored
		return nil, nil
	}

	apps, err := s.appRepo.FindAll()
	if err != nil {
		return nil, err
	}

	var deploymentIDs []string
	for _, app := range apps {
		if !pushMatchesApp(app, event.Repository.FullName, branch) {
			continue
		}

		log.Printf("Push to %s@%s triggers deploy of app %s", event.Repository.FullName, branch, app.Name)

		deployment, err := s.deploymentService.CreateDeployment(
			app.ID, models.DeploymentTriggerWebhook, event.After, app.UserID, false)
		if err != nil {
			log.Printf("Error deploying app %s from push: %v", app.Name, err)
			continue
		}

		deploymentIDs = append(deploymentIDs, deployment.ID)
	}

	return deploymentIDs, nil
}

// pushMatchesApp reports whether any service of the app auto-deploys from
// the pushed repo and branch
func pushMatchesApp(app models.App, repo, branch string) bool {
	for _, svc := range app.Spec.Services {
		if svc.Github.DeployOnPush && svc.Github.Repo == repo && svc.Github.Branch == branch {
			return true
		}
	}
	return false
}
