package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/specdeploy/dto"
	"github.com/specdeploy/models"
	"github.com/specdeploy/services"
	"gorm.io/gorm"
)

// DeploymentController handles deployment-related API endpoints
type DeploymentController struct {
	deploymentService *services.DeploymentService
}

// NewDeploymentController creates a new deployment controller
func NewDeploymentController(deploymentService *services.DeploymentService) *DeploymentController {
	return &DeploymentController{
		deploymentService: deploymentService,
	}
}

// RegisterRoutes registers deployment routes
func (c *DeploymentController) RegisterRoutes(router *gin.RouterGroup) {
	apps := router.Group("/apps")
	{
		apps.POST("/:id/deployments", c.CreateDeployment)
		apps.GET("/:id/deployments", c.ListDeployments)
		apps.GET("/:id/latest-deployment", c.GetLatestDeployment)
	}

	deployments := router.Group("/deployments")
	{
		deployments.GET("/:id", c.GetDeployment)
	}
}

// CreateDeployment deploys the app's current descriptor revision
func (c *DeploymentController) CreateDeployment(ctx *gin.Context) {
	userID, isAdmin := callerIdentity(ctx)

	deployment, err := c.deploymentService.CreateDeployment(
		ctx.Param("id"), models.DeploymentTriggerAPI, "", userID, isAdmin)
	if err != nil {
		ctx.JSON(deploymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusAccepted, gin.H{
		"data": gin.H{
			"deployment": dto.FromDeployment(deployment),
		},
	})
}

// ListDeployments returns the deployment history of an app
func (c *DeploymentController) ListDeployments(ctx *gin.Context) {
	userID, isAdmin := callerIdentity(ctx)

	deployments, err := c.deploymentService.ListDeployments(ctx.Param("id"), userID, isAdmin)
	if err != nil {
		ctx.JSON(deploymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	response := dto.DeploymentListResponse{
		Deployments: make([]dto.DeploymentResponse, 0, len(deployments)),
	}
	for _, deployment := range deployments {
		response.Deployments = append(response.Deployments, dto.FromDeployment(deployment))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// GetLatestDeployment returns the most recent deployment of an app
func (c *DeploymentController) GetLatestDeployment(ctx *gin.Context) {
	userID, isAdmin := callerIdentity(ctx)

	deployment, err := c.deploymentService.GetLatestDeployment(ctx.Param("id"), userID, isAdmin)
	if err != nil {
		ctx.JSON(deploymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"deployment": dto.FromDeployment(deployment),
		},
	})
}

// GetDeployment returns one deployment by ID
func (c *DeploymentController) GetDeployment(ctx *gin.Context) {
	userID, isAdmin := callerIdentity(ctx)

	deployment, err := c.deploymentService.GetDeployment(ctx.Param("id"), userID, isAdmin)
	if err != nil {
		ctx.JSON(deploymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"deployment": dto.FromDeployment(deployment),
		},
	})
}

// deploymentErrorStatus maps service errors to HTTP statuses
func deploymentErrorStatus(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorizedApp):
		return http.StatusForbidden
	case errors.Is(err, services.ErrMissingRuntimeValues):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrDeploymentInProgress):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
