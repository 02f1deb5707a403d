package handler

import (
	"net/http"

	"github.com/BerylCAtieno/brand-intel-agent/internal/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
}

func NewRouter(h *BrandHandler, logger *zap.Logger, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Request ID first so recovery and access logs can include it.
	router.Use(RequestID())
	router.Use(Recovery(logger))
	router.Use(RequestLogger(logger))

	router.GET("/", web.ServeIndex)
	router.POST("/generate", h.HandleGenerate)
	router.GET("/health", h.Health)

	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	return router
}
