package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pct-cclausen/huntkeeper/internal/config"
)

// CORS builds the cross-origin policy. With no origins configured it allows
// everything: the leaderboard page and the scanner app are served from
// whatever host the event organizers have handy.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowedOrigins) == 0 {
		c := cors.DefaultConfig()
		c.AllowAllOrigins = true
		return cors.New(c)
	}
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge.Seconds()) * time.Second,
	})
}
