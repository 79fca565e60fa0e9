package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/health-center-lookup/app/controllers"
)

// SetupAPIRoutes registers the /api endpoints.
func SetupAPIRoutes(router *gin.Engine, chatController *controllers.ChatController, adminController *controllers.AdminController) {
	api := router.Group("/api")
	{
		api.POST("/chat", chatController.Chat)
		api.GET("/health", chatController.Health)

		admin := api.Group("/admin")
		{
			admin.GET("/misses", adminController.ListMisses)
			admin.POST("/cache/clear", adminController.ClearCache)
			admin.GET("/stats", adminController.GetStats)
		}
	}
}

// SetupHealthRoutes registers the probes used by the orchestrator.
func SetupHealthRoutes(router *gin.Engine, chatController *controllers.ChatController) {
	router.GET("/health", chatController.Health)
	router.GET("/ready", chatController.Health)
	router.GET("/live", chatController.Health)
}
