package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/specdeploy/services"
	"gorm.io/gorm"
)

// StatsController exposes instance usage stats for administrators
type StatsController struct {
	statsService *services.InstanceStatsService
}

// NewStatsController creates a new stats controller
func NewStatsController(k8sProxyURL string) *StatsController {
	return &StatsController{
		statsService: services.NewInstanceStatsService(k8sProxyURL),
	}
}

// RegisterRoutes registers stats routes
func (c *StatsController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats/apps/:id/instances", c.GetAppInstanceStats)
}

// GetAppInstanceStats returns CPU/memory usage of an app's instances
func (c *StatsController) GetAppInstanceStats(ctx *gin.Context) {
	stats, err := c.statsService.GetAppInstanceStats(ctx.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}
