package dto

import (
	"time"

	"github.com/specdeploy/models"
)

// DeploymentResponse is the API view of a deployment
type DeploymentResponse struct {
	ID           string                   `json:"id"`
	AppID        string                   `json:"appId"`
	SpecRevision int                      `json:"specRevision"`
	Trigger      models.DeploymentTrigger `json:"trigger"`
	CommitRef    string                   `json:"commitRef,omitempty"`
	Status       models.DeploymentStatus  `json:"status"`
	Error        string                   `json:"error,omitempty"`
	CreatedAt    time.Time                `json:"createdAt"`
	FinishedAt   *time.Time               `json:"finishedAt,omitempty"`
}

// DeploymentListResponse wraps a list of deployments
type DeploymentListResponse struct {
	Deployments []DeploymentResponse `json:"deployments"`
}

// FromDeployment maps a deployment model to its API view
func FromDeployment(d models.Deployment) DeploymentResponse {
	return DeploymentResponse{
		ID:           d.ID,
		AppID:        d.AppID,
		SpecRevision: d.SpecRevision,
		Trigger:      d.Trigger,
		CommitRef:    d.CommitRef,
		Status:       d.Status,
		Error:        d.Error,
		CreatedAt:    d.CreatedAt,
		FinishedAt:   d.FinishedAt,
	}
}
