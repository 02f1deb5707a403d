package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/brand-intel-agent/internal/apperrors"
	"github.com/BerylCAtieno/brand-intel-agent/internal/models"
	"github.com/BerylCAtieno/brand-intel-agent/internal/profiler"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Generator is the part of profiler.Generator the handler depends on.
type Generator interface {
	Generate(ctx context.Context, brandName string) (*models.GenerateResponse, error)
}

type BrandHandler struct {
	generator Generator
	logger    *zap.Logger
	timeout   time.Duration
}

// NewBrandHandler builds the handler. A zero timeout leaves the request
// context as the only deadline.
func NewBrandHandler(generator Generator, logger *zap.Logger, timeout time.Duration) *BrandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrandHandler{
		generator: generator,
		logger:    logger,
		timeout:   timeout,
	}
}

// HandleGenerate serves POST /generate.
func (h *BrandHandler) HandleGenerate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid generate request body",
			zap.String("request_id", RequestIDFrom(c)),
			zap.Error(err))
		h.sendError(c, http.StatusBadRequest, profiler.BrandNameRequired)
		return
	}

	brand, ok := req.Brand.(string)
	if !ok || strings.TrimSpace(brand) == "" {
		h.sendError(c, http.StatusBadRequest, profiler.BrandNameRequired)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	resp, err := h.generator.Generate(ctx, brand)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			h.sendError(c, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error("generate request failed",
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("error_kind", apperrors.Kind(err)),
			zap.Error(err))
		h.sendError(c, http.StatusInternalServerError, errorMessage(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health serves GET /health.
func (h *BrandHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *BrandHandler) sendError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Error: message})
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Failed to generate brand intelligence"
}
