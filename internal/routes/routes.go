package routes

import (
	"net/http"

	_ "poolservice_backend/docs"
	"poolservice_backend/internal/handlers"
	"poolservice_backend/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes registers the HTTP API under /api/v1, the health check and
// the Swagger UI.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	for _, h := range appHandlers.All() {
		h.RegisterRoutes(api)
	}

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
