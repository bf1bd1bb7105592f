// Package httpapi exposes the prompt console's HTTP surface: catalog
// listings, prompt execution, and a health probe, behind CORS and
// per-caller rate limits.
package httpapi

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptstudio/prompt-studio/internal/config"
	"github.com/promptstudio/prompt-studio/internal/execute"
	"github.com/promptstudio/prompt-studio/internal/platform/logger"
)

func NewServer(cfg *config.Config, log *logger.Logger, executor *execute.Executor) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           NewRouter(cfg, log, executor),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
}

func NewRouter(cfg *config.Config, log *logger.Logger, executor *execute.Executor) *gin.Engine {
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	h := NewHandler(executor, log, cfg.Development())

	r := gin.New()
	r.Use(requestIDMiddleware())
	r.Use(recoverMiddleware(log, cfg.Development()))
	r.Use(accessLogMiddleware(log))
	r.Use(corsMiddleware(cfg.ClientOrigin))
	r.Use(bodyLimitMiddleware(cfg.HTTP.MaxRequestBytes))

	r.GET("/health", h.Health)

	// The execute endpoint gets the stricter budget; everything else under
	// /api shares the general one.
	executeLimiter := newIPRateLimiter(cfg.HTTP.ExecuteRateLimit)
	generalLimiter := newIPRateLimiter(cfg.HTTP.GeneralRateLimit)

	api := r.Group("/api", rateLimitMiddleware(generalLimiter))
	{
		api.GET("/prompt/templates", h.ListTemplates)
		api.POST("/prompt/execute", rateLimitMiddleware(executeLimiter), h.Execute)
		api.GET("/models", h.ListModels)
	}

	r.NoRoute(h.NotFound)
	return r
}
