package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupWebRoutes registers the informational pages.
func SetupWebRoutes(router *gin.Engine, version string) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Health Center Lookup Service",
			"version": version,
			"docs":    "/docs",
		})
	})

	router.GET("/docs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"api": "Health Center Lookup API",
			"endpoints": map[string]string{
				"chat":        "POST /api/chat",
				"health":      "GET /api/health",
				"misses":      "GET /api/admin/misses?limit=N",
				"cache_clear": "POST /api/admin/cache/clear",
				"stats":       "GET /api/admin/stats",
			},
		})
	})
}
