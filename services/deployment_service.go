package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/specdeploy/models"
	"github.com/specdeploy/repositories"
	"github.com/specdeploy/utils"
)

// deployTimeout bounds a single provisioning run
const deployTimeout = 5 * time.Minute

// DeploymentService handles the deployment lifecycle of apps
type DeploymentService struct {
	appRepo        *repositories.AppRepository
	deploymentRepo *repositories.DeploymentRepository
	provisioner    *ProvisionService
	notifyURL      string
}

// NewDeploymentService creates a new deployment service instance
func NewDeploymentService(provisioner *ProvisionService, notifyURL string) *DeploymentService {
	return &DeploymentService{
		appRepo:        repositories.NewAppRepository(),
		deploymentRepo: repositories.NewDeploymentRepository(),
		provisioner:    provisioner,
		notifyURL:      notifyURL,
	}
}

// CreateDeployment records a deployment of the app's current descriptor
// revision and provisions it in the background
func (s *DeploymentService) CreateDeployment(appID string, trigger models.DeploymentTrigger, commitRef string, userID string, isAdmin bool) (models.Deployment, error) {
	app, err := s.authorizedApp(appID, userID, isAdmin)
	if err != nil {
		return models.Deployment{}, err
	}

	// Every declared RUN_TIME key must have a value before the process starts
	for _, svc := range app.Spec.Services {
		if missing := utils.MissingRuntimeKeys(svc); len(missing) > 0 {
			return models.Deployment{}, fmt.Errorf("%w: service %s needs %s",
				ErrMissingRuntimeValues, svc.Name, strings.Join(missing, ", "))
		}
	}

	// One deployment at a time per app
	if latest, err := s.deploymentRepo.FindLatestByAppID(app.ID); err == nil && !latest.IsFinished() {
		return models.Deployment{}, ErrDeploymentInProgress
	}

	deployment := models.Deployment{
		ID:           uuid.NewString(),
		AppID:        app.ID,
		SpecRevision: app.SpecRevision,
		Trigger:      trigger,
		CommitRef:    commitRef,
		Status:       models.DeploymentStatusPending,
	}

	created, err := s.deploymentRepo.Create(deployment)
	if err != nil {
		return models.Deployment{}, err
	}

	go s.runDeployment(created, app)

	return created, nil
}

// runDeployment drives one deployment to a terminal state
func (s *DeploymentService) runDeployment(deployment models.Deployment, app models.App) {
	ctx, cancel := context.WithTimeout(context.Background(), deployTimeout)
	defer cancel()

	if err := s.deploymentRepo.UpdateStatus(deployment.ID, models.DeploymentStatusDeploying, ""); err != nil {
		log.Printf("Error marking deployment %s as deploying: %v", deployment.ID, err)
	}

	if err := s.provisioner.Provision(ctx, app); err != nil {
		log.Printf("Deployment %s of app %s failed: %v", deployment.ID, app.Name, err)
		if updateErr := s.deploymentRepo.UpdateStatus(deployment.ID, models.DeploymentStatusFailed, err.Error()); updateErr != nil {
			log.Printf("Error marking deployment %s as failed: %v", deployment.ID, updateErr)
		}
		utils.SendDeployNotification(s.notifyURL, deployment.ID, app.ID, string(models.DeploymentStatusFailed), err.Error())
		return
	}

	log.Printf("Deployment %s of app %s is running", deployment.ID, app.Name)
	if err := s.deploymentRepo.UpdateStatus(deployment.ID, models.DeploymentStatusRunning, ""); err != nil {
		log.Printf("Error marking deployment %s as running: %v", deployment.ID, err)
	}
	utils.SendDeployNotification(s.notifyURL, deployment.ID, app.ID, string(models.DeploymentStatusRunning), "")
}

// ListDeployments retrieves the deployment history of an app
func (s *DeploymentService) ListDeployments(appID string, userID string, isAdmin bool) ([]models.Deployment, error) {
	if _, err := s.authorizedApp(appID, userID, isAdmin); err != nil {
		return nil, err
	}
	return s.deploymentRepo.FindByAppID(appID)
}

// GetLatestDeployment retrieves the most recent deployment of an app
func (s *DeploymentService) GetLatestDeployment(appID string, userID string, isAdmin bool) (models.Deployment, error) {
	if _, err := s.authorizedApp(appID, userID, isAdmin); err != nil {
		return models.Deployment{}, err
	}
	return s.deploymentRepo.FindLatestByAppID(appID)
}

// GetDeployment retrieves one deployment, enforcing app ownership
func (s *DeploymentService) GetDeployment(deploymentID string, userID string, isAdmin bool) (models.Deployment, error) {
	deployment, err := s.deploymentRepo.FindByID(deploymentID)
	if err != nil {
		return deployment, err
	}

	if _, err := s.authorizedApp(deployment.AppID, userID, isAdmin); err != nil {
		return models.Deployment{}, err
	}

	return deployment, nil
}

// authorizedApp loads an app and checks the caller may act on it
func (s *DeploymentService) authorizedApp(appID string, userID string, isAdmin bool) (models.App, error) {
	app, err := s.appRepo.FindByID(appID)
	if err != nil {
		return app, err
	}

	if !isAdmin && app.UserID != userID {
		return models.App{}, ErrUnauthorizedApp
	}

	return app, nil
}
