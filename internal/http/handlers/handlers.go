package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/chamados/dashboard/internal/ai"
	"github.com/chamados/dashboard/internal/analytics"
	"github.com/chamados/dashboard/internal/http/middleware"
	"github.com/chamados/dashboard/internal/ingest"
	"github.com/chamados/dashboard/internal/models"
	"github.com/chamados/dashboard/internal/session"
)

type Handler struct {
	Sessions       *session.Store
	Engine         *analytics.Engine
	Decoder        *ingest.Decoder
	InsightWriter  *ai.InsightWriter
	Validator      *validator.Validate
	Logger         zerolog.Logger
	RequestTimeout time.Duration
	MaxUploadBytes int64
}

// DatasetResponse is the dataset view returned after a load.
type DatasetResponse struct {
	models.Dataset
	Highlights []string `json:"highlights"`
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	_, loaded := h.Sessions.Current()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dataset_loaded": loaded})
}

func (h *Handler) log(c *gin.Context) *zerolog.Logger {
	l := h.Logger.With().Str("request_id", middleware.GetRequestID(c)).Logger()
	return &l
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

func (h *Handler) current(c *gin.Context) (models.Dataset, bool) {
	ds, ok := h.Sessions.Current()
	if !ok {
		writeError(c, http.StatusNotFound, "NO_DATA", "No dataset loaded, upload a file or load the sample", nil)
	}
	return ds, ok
}
