// Package routes wires the HTTP surface of the service:
//   - api.go: /api endpoints and health probes
//   - web.go: informational pages
//   - routes.go: middleware and SetupAllRoutes
package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/health-center-lookup/app/controllers"
	"go.uber.org/zap"
)

// Version is reported on the home page.
const Version = "1.0.0"

// Options configures SetupAllRoutes.
type Options struct {
	// AllowedOrigins may call /api from a browser. Empty disables CORS.
	AllowedOrigins []string
	Logger         *zap.Logger
}

// SetupAllRoutes installs middleware and every route on router.
func SetupAllRoutes(router *gin.Engine, chatController *controllers.ChatController, adminController *controllers.AdminController, opts Options) {
	setupMiddleware(router, opts)

	SetupWebRoutes(router, Version)
	SetupHealthRoutes(router, chatController)
	SetupAPIRoutes(router, chatController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func setupMiddleware(router *gin.Engine, opts Options) {
	router.Use(gin.Recovery())
	if opts.Logger != nil {
		router.Use(requestLogger(opts.Logger))
	}
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       12 * time.Hour,
		}))
	}
}

// requestLogger logs one line per request with zap instead of gin's stdout
// logger.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
