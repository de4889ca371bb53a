package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/specdeploy/config"
	"github.com/specdeploy/middleware"
	"github.com/specdeploy/services"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, cfg config.Config) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Shared service instances
	authService := services.NewAuthService(cfg.JWTSecret)
	appService := services.NewAppService(cfg.EnvEncryptionKey, cfg.K8sProxyURL)
	provisioner := services.NewProvisionService(cfg.RegistryHost, cfg.EnvEncryptionKey, cfg.K8sProxyURL)
	deploymentService := services.NewDeploymentService(provisioner, cfg.DeployNotifyURL)

	authMiddleware := middleware.AuthMiddleware(authService)

	// Auth endpoints
	authController := NewAuthController(authService)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		// Use auth middleware here only for the /me endpoint
		authGroup.GET("/me", authMiddleware, authController.GetCurrentUser)
	}

	// App and deployment endpoints - protected by AuthMiddleware
	authRouter := router.Group("")
	authRouter.Use(authMiddleware)

	appController := NewAppController(appService)
	appController.RegisterRoutes(authRouter)

	deploymentController := NewDeploymentController(deploymentService)
	deploymentController.RegisterRoutes(authRouter)

	// Webhook endpoint - authenticated by delivery signature, not JWT
	webhookController := NewWebhookController(services.NewWebhookService(deploymentService), cfg.GithubWebhookSecret)
	webhookController.RegisterRoutes(router)

	// Admin endpoints - protected by AdminMiddleware
	adminGroup := router.Group("/admin")
	adminGroup.Use(authMiddleware, middleware.AdminMiddleware())
	{
		statsController := NewStatsController(cfg.K8sProxyURL)
		statsController.RegisterRoutes(adminGroup)
	}
}
