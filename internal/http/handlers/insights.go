package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chamados/dashboard/internal/ai"
)

type InsightsRequest struct {
	Mode  string `json:"mode" validate:"omitempty,oneof=summary tickets"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=200"`
}

// @Summary Generate an AI report
// @Description Ask the configured AI provider for a pt-BR report on the current dataset
// @Tags insights
// @Accept json
// @Produce json
// @Param X-API-Key header string false "API key"
// @Param request body InsightsRequest false "report options"
// @Success 200 {object} ai.Insight
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Failure 429 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /api/insights [post]
func (h *Handler) Insights(c *gin.Context) {
	var req InsightsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
			return
		}
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	ds, ok := h.current(c)
	if !ok {
		return
	}
	if h.InsightWriter == nil {
		writeError(c, http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI provider not configured", nil)
		return
	}

	ctx, cancel := h.timeout(c)
	defer cancel()

	insight, err := h.InsightWriter.Write(ctx, ai.InsightMode(req.Mode), ds.Result, ds.Tickets, req.Limit)
	if err != nil {
		h.log(c).Error().Err(err).Str("dataset_id", ds.ID).Msg("insight generation failed")
		var rl ai.RateLimitError
		switch {
		case errors.As(err, &rl):
			writeRateLimit(c, rl)
		case errors.Is(err, ai.ErrNotConfigured), errors.Is(err, ai.ErrTimeout):
			writeError(c, http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI provider unavailable", err.Error())
		default:
			writeError(c, http.StatusBadGateway, "AI_ERROR", "Failed to generate insights", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, insight)
}

func writeRateLimit(c *gin.Context, rl ai.RateLimitError) {
	if rl.RetryAfter > 0 {
		c.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(rl.RetryAfter.Seconds()))))
	}
	writeError(c, http.StatusTooManyRequests, "AI_RATE_LIMITED", "AI provider rate limit reached", rl.Error())
}

func (h *Handler) timeout(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.RequestTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.RequestTimeout)
}
