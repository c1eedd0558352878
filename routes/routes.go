package routes

import (
	"net/http"

	"courier/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterNotificationRoutes registers the interactive send endpoints.
func RegisterNotificationRoutes(r *gin.Engine, h *handlers.NotificationHandler) {
	api := r.Group("/api/notifications")
	{
		api.POST("/send", h.SendNotificationHandler)
		api.GET("/templates", h.ListTemplatesHandler)
		api.GET("/templates/:id", h.GetTemplateHandler)
	}
}

// RegisterReminderRoutes registers the manual sweep trigger.
func RegisterReminderRoutes(r *gin.Engine, h *handlers.ReminderHandler) {
	api := r.Group("/api/reminders")
	{
		api.POST("/sweep", h.RunSweepHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Courier"})
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
