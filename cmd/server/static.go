package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupStaticFiles serves generated images and answers unknown routes.
// The frontend is deployed separately.
func setupStaticFiles(router *gin.Engine, outputDir string, logger *zap.Logger) {
	logger.Info("Serving generated files", zap.String("dir", outputDir), zap.String("path", "/outputs"))
	router.Static("/outputs", outputDir)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
			"hint":  "The web UI is served separately; the API lives under /api/v1",
		})
	})
}
