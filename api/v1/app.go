package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/specdeploy/dto"
	"github.com/specdeploy/services"
	"gorm.io/gorm"
)

// AppController handles app-related API endpoints
type AppController struct {
	appService *services.AppService
}

// NewAppController creates a new app controller
func NewAppController(appService *services.AppService) *AppController {
	return &AppController{
		appService: appService,
	}
}

// RegisterRoutes registers app routes
func (c *AppController) RegisterRoutes(router *gin.RouterGroup) {
	specs := router.Group("/specs")
	{
		specs.POST("/validate", c.ValidateSpec)
	}

	apps := router.Group("/apps")
	{
		apps.GET("", c.ListApps)
		apps.POST("", c.CreateApp)
		apps.GET("/:id", c.GetApp)
		apps.PUT("/:id", c.UpdateApp)
		apps.DELETE("/:id", c.DeleteApp)
	}
}

// ValidateSpec runs standalone descriptor validation without storing anything
func (c *AppController) ValidateSpec(ctx *gin.Context) {
	var req dto.ValidateSpecRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, violations := c.appService.ParseAndValidateSpec(req.Spec)
	if violations == nil {
		violations = []dto.SpecViolation{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": dto.ValidateSpecResponse{
			Valid:      len(violations) == 0,
			Violations: violations,
		},
	})
}

// CreateApp registers a new app from a raw descriptor
func (c *AppController) CreateApp(ctx *gin.Context) {
	userIDValue, _ := ctx.Get("userId")
	userID, _ := userIDValue.(string)

	var req dto.CreateAppRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, violations, err := c.appService.CreateApp(req.Spec, userID)
	if len(violations) > 0 {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "descriptor failed validation",
			"violations": violations,
		})
		return
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrAppNameTaken) {
			status = http.StatusConflict
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"app": c.appService.RedactedResponse(app),
		},
	})
}

// ListApps retrieves the apps visible to the caller
func (c *AppController) ListApps(ctx *gin.Context) {
	userID, isAdmin := callerIdentity(ctx)

	apps, err := c.appService.ListApps(userID, isAdmin)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve apps"})
		return
	}

	response := dto.AppListResponse{Apps: make([]dto.AppResponse, 0, len(apps))}
	for _, app := range apps {
		response.Apps = append(response.Apps, c.appService.RedactedResponse(app))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// GetApp retrieves one app with its descriptor redacted
func (c *AppController) GetApp(ctx *gin.Context) {
	userID, isAdmin := callerIdentity(ctx)

	app, err := c.appService.GetAppDetail(ctx.Param("id"), userID, isAdmin)
	if err != nil {
		ctx.JSON(appErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"app": c.appService.RedactedResponse(app),
		},
	})
}

// UpdateApp replaces the app's descriptor with a new revision
func (c *AppController) UpdateApp(ctx *gin.Context) {
	userID, isAdmin := callerIdentity(ctx)

	var req dto.UpdateAppRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, violations, err := c.appService.UpdateApp(ctx.Param("id"), req.Spec, userID, isAdmin)
	if len(violations) > 0 {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "descriptor failed validation",
			"violations": violations,
		})
		return
	}
	if err != nil {
		ctx.JSON(appErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"app": c.appService.RedactedResponse(app),
		},
	})
}

// DeleteApp removes an app and tears down its cluster resources
func (c *AppController) DeleteApp(ctx *gin.Context) {
	userID, isAdmin := callerIdentity(ctx)

	if err := c.appService.DeleteApp(ctx.Param("id"), userID, isAdmin); err != nil {
		ctx.JSON(appErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"deleted": true,
		},
	})
}

// appErrorStatus maps app service errors to HTTP statuses
func appErrorStatus(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorizedApp):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// callerIdentity pulls the authenticated user from the gin context
func callerIdentity(ctx *gin.Context) (string, bool) {
	userIDValue, _ := ctx.Get("userId")
	userID, _ := userIDValue.(string)
	roleValue, _ := ctx.Get("role")
	role, _ := roleValue.(string)
	return userID, role == "admin"
}
