package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/healthz", handler.HealthCheck)

	v1 := router.Group("/v1")
	{
		// Cached origin data (public read access)
		v1.GET("/data/:kind/:id", handler.GetData)

		// Materialized image assets (public read access)
		v1.GET("/assets/:kind", handler.GetAssets)
		v1.GET("/assets/:kind/:id", handler.GetAsset)
	}
}
