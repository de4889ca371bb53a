package models

import (
	"time"

	"gorm.io/gorm"
)

// DeploymentStatus tracks a deployment through its lifecycle
type DeploymentStatus string

const (
	DeploymentStatusPending   DeploymentStatus = "pending"
	DeploymentStatusDeploying DeploymentStatus = "deploying"
	DeploymentStatusRunning   DeploymentStatus = "running"
	DeploymentStatusFailed    DeploymentStatus = "failed"
)

// DeploymentTrigger records what started a deployment
type DeploymentTrigger string

const (
	DeploymentTriggerAPI     DeploymentTrigger = "api"
	DeploymentTriggerWebhook DeploymentTrigger = "webhook"
)

// Deployment is one materialization of an app's descriptor onto the cluster
type Deployment struct {
	ID    string `json:"id" gorm:"primaryKey;type:uuid"`
	AppID string `json:"appId" gorm:"type:uuid;not null;index"`

	// Descriptor revision that was deployed
	SpecRevision int `json:"specRevision" gorm:"not null"`

	Trigger   DeploymentTrigger `json:"trigger" gorm:"type:varchar(20);default:'api'"`
	CommitRef string            `json:"commitRef" gorm:"default:null"` // set for webhook deploys

	Status DeploymentStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Error  string           `json:"error,omitempty" gorm:"default:null"`

	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	FinishedAt *time.Time     `json:"finishedAt,omitempty" gorm:"default:null"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	App App `json:"app,omitempty" gorm:"foreignKey:AppID;constraint:OnDelete:CASCADE"`
}

// IsFinished reports whether the deployment reached a terminal state
func (d Deployment) IsFinished() bool {
	return d.Status == DeploymentStatusRunning || d.Status == DeploymentStatusFailed
}

// TableName sets the table name for Deployment model
func (Deployment) TableName() string {
	return "deployments"
}
