package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rawblock/muling-graph-engine/internal/engine"
)

// handleHealth is the liveness probe.
func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAnalyze runs the full analysis pipeline over an uploaded CSV and
// returns the report. It accepts either a raw text/csv body or a
// multipart file upload under the "file" field.
func (h *APIHandler) handleAnalyze(c *gin.Context) {
	content, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runID := uuid.NewString()

	report, err := h.engine.Analyze(c.Request.Context(), runID, content)
	if err != nil {
		var parseErr *engine.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": parseErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	c.Header("X-Run-Id", runID)
	c.JSON(http.StatusOK, report)
}

// handleGetRun fetches a previously persisted run digest. It is a thin
// single-row lookup, not the relational history/browse API spec.md §1
// treats as an external collaborator.
func (h *APIHandler) handleGetRun(c *gin.Context) {
	if h.historyStore == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history store not configured"})
		return
	}

	runID := c.Param("id")
	summary, err := h.historyStore.GetRun(c.Request.Context(), runID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func readUpload(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errors.New("empty request body")
	}
	return body, nil
}
