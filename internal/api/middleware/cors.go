package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS answers preflight for any origin with the headers the web client sends.
func CORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}
	cfg.ExposeHeaders = []string{"X-Request-Id"}
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}
