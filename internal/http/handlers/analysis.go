package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chamados/dashboard/internal/models"
	"github.com/chamados/dashboard/internal/report"
)

const (
	defaultTicketLimit = 50
	maxTicketLimit     = 500
)

type TicketPage struct {
	Items  []models.Ticket `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// @Summary Current analysis
// @Tags dataset
// @Produce json
// @Success 200 {object} DatasetResponse
// @Failure 404 {object} map[string]any
// @Router /api/analysis [get]
func (h *Handler) Analysis(c *gin.Context) {
	ds, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, DatasetResponse{Dataset: ds, Highlights: report.Highlights(ds.Result)})
}

// @Summary Processed tickets
// @Tags dataset
// @Produce json
// @Param limit query int false "page size (max 500)"
// @Param offset query int false "page offset"
// @Success 200 {object} TicketPage
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/tickets [get]
func (h *Handler) Tickets(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultTicketLimit)))
	if err != nil || limit < 1 || limit > maxTicketLimit {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be between 1 and 500", c.Query("limit"))
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "offset must be a non-negative integer", c.Query("offset"))
		return
	}

	ds, ok := h.current(c)
	if !ok {
		return
	}
	total := len(ds.Tickets)
	start := min(offset, total)
	end := min(start+limit, total)
	c.JSON(http.StatusOK, TicketPage{
		Items:  ds.Tickets[start:end],
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// @Summary Dashboard highlights
// @Tags dataset
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/highlights [get]
func (h *Handler) Highlights(c *gin.Context) {
	ds, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": report.Highlights(ds.Result)})
}

// @Summary Clear the current dataset
// @Tags dataset
// @Success 204
// @Router /api/session [delete]
func (h *Handler) ClearSession(c *gin.Context) {
	h.Sessions.Clear()
	c.Status(http.StatusNoContent)
}
