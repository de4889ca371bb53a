package repositories

import (
	"time"

	"github.com/specdeploy/database"
	"github.com/specdeploy/models"
)

// DeploymentRepository handles database operations for deployments
type DeploymentRepository struct{}

// NewDeploymentRepository creates a new deployment repository instance
func NewDeploymentRepository() *DeploymentRepository {
	return &DeploymentRepository{}
}

// FindByID retrieves a deployment by its ID
func (r *DeploymentRepository) FindByID(id string) (models.Deployment, error) {
	var deployment models.Deployment
	result := database.DB.First(&deployment, "id = ?", id)
	return deployment, result.Error
}

// FindByAppID retrieves all deployments of an app, newest first
func (r *DeploymentRepository) FindByAppID(appID string) ([]models.Deployment, error) {
	var deployments []models.Deployment
	result := database.DB.Where("app_id = ?", appID).Order("created_at DESC").Find(&deployments)
	return deployments, result.Error
}

// FindLatestByAppID retrieves the most recent deployment of an app
func (r *DeploymentRepository) FindLatestByAppID(appID string) (models.Deployment, error) {
	var deployment models.Deployment
	result := database.DB.Where("app_id = ?", appID).Order("created_at DESC").First(&deployment)
	return deployment, result.Error
}

// Create inserts a new deployment into the database
func (r *DeploymentRepository) Create(deployment models.Deployment) (models.Deployment, error) {
	result := database.DB.Create(&deployment)
	return deployment, result.Error
}

// UpdateStatus transitions a deployment's status, stamping the finish time
// on terminal states
func (r *DeploymentRepository) UpdateStatus(id string, status models.DeploymentStatus, errorMessage string) error {
	updates := map[string]interface{}{
		"status": status,
		"error":  errorMessage,
	}

	if status == models.DeploymentStatusRunning || status == models.DeploymentStatusFailed {
		now := time.Now()
		updates["finished_at"] = &now
	}

	return database.DB.Model(&models.Deployment{}).
		Where("id = ?", id).
		Updates(updates).Error
}
