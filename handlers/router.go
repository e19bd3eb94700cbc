package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"formfiller/config"
	"formfiller/middleware"
)

const maxGenerateBody = 64 << 10

// NewRouter wires the HTTP surface. tokens may be nil to leave /generate open.
func NewRouter(cfg *config.AppConfig, runner Runner, tokens middleware.TokenValidator, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(logger))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/health", Health)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	generate := NewGenerateHandler(runner, logger)
	r.POST("/generate",
		limiter.Limit(),
		middleware.JWTAuth(tokens),
		middleware.MaxRequestSize(maxGenerateBody),
		middleware.ValidateJSON(),
		generate.Generate,
	)
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
