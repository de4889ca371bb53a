package dto

import (
	"time"

	"github.com/specdeploy/models"
)

// CreateAppRequest registers a new app from a raw YAML descriptor
type CreateAppRequest struct {
	Spec string `json:"spec" binding:"required"` // raw YAML descriptor
}

// UpdateAppRequest replaces the app's descriptor with a new revision.
// Secret values omitted from the new descriptor keep their stored ciphertext.
type UpdateAppRequest struct {
	Spec string `json:"spec" binding:"required"`
}

// AppResponse is the API view of an app. The embedded descriptor always has
// secret env values redacted.
type AppResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	UserID       string         `json:"userId"`
	Spec         models.AppSpec `json:"spec"`
	SpecRevision int            `json:"specRevision"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// AppListResponse wraps a list of apps
type AppListResponse struct {
	Apps []AppResponse `json:"apps"`
}

// SpecViolation is one structural problem found in a descriptor
type SpecViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateSpecRequest carries a raw descriptor for standalone validation
type ValidateSpecRequest struct {
	Spec string `json:"spec" binding:"required"`
}

// ValidateSpecResponse reports the outcome of descriptor validation
type ValidateSpecResponse struct {
	Valid      bool            `json:"valid"`
	Violations []SpecViolation `json:"violations"`
}
