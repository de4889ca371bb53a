package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/specdeploy/dto"
	"github.com/specdeploy/services"
	"github.com/specdeploy/utils"
)

// WebhookController handles incoming GitHub push webhooks
type WebhookController struct {
	webhookService *services.WebhookService
	webhookSecret  string
}

// NewWebhookController creates a new webhook controller
func NewWebhookController(webhookService *services.WebhookService, webhookSecret string) *WebhookController {
	return &WebhookController{
		webhookService: webhookService,
		webhookSecret:  webhookSecret,
	}
}

// RegisterRoutes registers webhook routes
func (c *WebhookController) RegisterRoutes(router *gin.RouterGroup) {
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/github", c.HandleGithubPush)
	}
}

// HandleGithubPush verifies the delivery signature and triggers deployments
// for apps with deploy_on_push enabled
func (c *WebhookController) HandleGithubPush(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := ctx.GetHeader("X-Hub-Signature-256")
	if !utils.VerifyWebhookSignature(c.webhookSecret, body, signature) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	if event := ctx.GetHeader("X-GitHub-Event"); event != "push" {
		// Ping and other event types are acknowledged without action
		ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"ignored": event}})
		return
	}

	var event dto.PushEvent
	if err := json.Unmarshal(body, &event); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid push payload"})
		return
	}

	deploymentIDs, err := c.webhookService.HandlePush(event)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusAccepted, gin.H{
		"data": dto.WebhookResponse{
			DeliveryID:    utils.GenerateShortID(),
			DeploymentIDs: deploymentIDs,
		},
	})
}
