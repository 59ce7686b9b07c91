package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupServiceRoutes configures service-specific API routes (not health routes).
// Health routes are handled by the infrastructure gin package. metrics may be nil.
func SetupServiceRoutes(router *gin.Engine, handler *Handler, metrics http.Handler) {
	router.POST("/analyze", handler.Analyze) // POST /analyze

	api := router.Group("/api")
	api.GET("/stats", handler.Stats)         // GET /api/stats
	api.POST("/v1/analyze", handler.Analyze) // POST /api/v1/analyze

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics)) // GET /metrics
	}
}
