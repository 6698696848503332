package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pct-cclausen/huntkeeper/internal/config"
	"github.com/pct-cclausen/huntkeeper/internal/handler/middleware"
)

func SetupRouter(cfg *config.Config, logger *zap.Logger, gameHandler *GameHandler) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/highscores", gameHandler.Highscores)
		api.POST("/add-points", gameHandler.AddPoints)
		api.POST("/create-qr-code", gameHandler.CreateQRCode)
	}

	return r
}
