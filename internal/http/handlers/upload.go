package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chamados/dashboard/internal/ai"
	"github.com/chamados/dashboard/internal/ingest"
	"github.com/chamados/dashboard/internal/report"
)

// @Summary Upload tickets
// @Description Decode a CSV, JSON, XLSX or PDF file, analyse it and make it the current dataset
// @Tags dataset
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "tickets file"
// @Success 200 {object} DatasetResponse
// @Failure 400 {object} map[string]any
// @Failure 413 {object} map[string]any
// @Failure 415 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /api/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		limit := h.MaxUploadBytes + multipartOverhead
		if c.Request.ContentLength > limit {
			h.tooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.tooLarge(c)
			return
		}
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "file field required", nil)
		return
	}
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		h.tooLarge(c)
		return
	}
	if _, err := ingest.FormatFromFilename(fh.Filename); err != nil {
		writeError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", err.Error(), fh.Filename)
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "cannot read uploaded file", err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "cannot read uploaded file", err.Error())
		return
	}

	h.load(c, fh.Filename, data)
}

// multipartOverhead is the slack allowed on top of MaxUploadBytes for
// multipart boundaries and part headers.
const multipartOverhead = 1 << 20

func (h *Handler) tooLarge(c *gin.Context) {
	writeError(c, http.StatusRequestEntityTooLarge, "INVALID_REQUEST",
		fmt.Sprintf("file exceeds the %d MB limit", h.MaxUploadBytes>>20), nil)
}

// @Summary Load the sample dataset
// @Tags dataset
// @Produce json
// @Success 200 {object} DatasetResponse
// @Router /api/sample [post]
func (h *Handler) LoadSample(c *gin.Context) {
	h.load(c, ingest.SampleName, ingest.SampleCSV())
}

// @Summary Download the sample dataset
// @Tags dataset
// @Produce text/csv
// @Success 200 {string} string
// @Router /api/sample.csv [get]
func (h *Handler) SampleCSV(c *gin.Context) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ingest.SampleName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", ingest.SampleCSV())
}

// load decodes and analyses data. The session is only replaced once both
// steps succeed.
func (h *Handler) load(c *gin.Context, filename string, data []byte) {
	ctx, cancel := h.timeout(c)
	defer cancel()

	rows, err := h.Decoder.Decode(ctx, filename, data)
	if err != nil {
		h.log(c).Warn().Err(err).Str("file", filename).Msg("ingest failed")
		h.writeIngestError(c, err)
		return
	}

	analysis := h.Engine.Analyze(rows)
	ds := h.Sessions.Replace(filename, analysis)
	h.log(c).Info().
		Str("dataset_id", ds.ID).
		Str("file", filename).
		Int("tickets", ds.Result.Total).
		Msg("dataset loaded")

	c.JSON(http.StatusOK, DatasetResponse{Dataset: ds, Highlights: report.Highlights(ds.Result)})
}

func (h *Handler) writeIngestError(c *gin.Context, err error) {
	var rl ai.RateLimitError
	switch {
	case errors.Is(err, ingest.ErrUnsupportedFormat), errors.Is(err, ingest.ErrLegacyWorkbook):
		writeError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", err.Error(), nil)
	case errors.As(err, &rl):
		writeRateLimit(c, rl)
	case errors.Is(err, ai.ErrNotConfigured), errors.Is(err, ai.ErrTimeout):
		writeError(c, http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI provider unavailable", err.Error())
	default:
		writeError(c, http.StatusUnprocessableEntity, "PARSE_ERROR", "Could not read the file", err.Error())
	}
}
