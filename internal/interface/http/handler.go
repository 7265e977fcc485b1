package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/primalpath/report-engine/internal/domain/report"
	apperrors "github.com/primalpath/report-engine/pkg/errors"
)

// Handler wires the HTTP transport to the report service.
type Handler struct {
	reportSvc *report.Service
	jobs      report.JobQueue
	async     bool
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(reportSvc *report.Service, jobs report.JobQueue, async bool, logger *slog.Logger) *Handler {
	return &Handler{
		reportSvc: reportSvc,
		jobs:      jobs,
		async:     async,
		logger:    logger.With("component", "http.handler"),
	}
}

// GenerateReport accepts a questionnaire and produces a report. In async mode
// the questionnaire is queued and the client gets a 202; the access link still
// arrives by email once the worker finishes.
func (h *Handler) GenerateReport(c *gin.Context) {
	var q report.Questionnaire
	if err := c.ShouldBindJSON(&q); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	if h.async && h.jobs != nil {
		if err := q.Validate(); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return
		}
		payload, err := questionnairePayload(q)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusInternalServerError, "queue_failed", errMessage(err), err))
			return
		}
		if err := h.jobs.Enqueue(c.Request.Context(), report.JobGenerate, payload); err != nil {
			abortWithError(c, NewHTTPError(http.StatusInternalServerError, "queue_failed", errMessage(err), err))
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
		return
	}

	resp, err := h.reportSvc.Generate(c.Request.Context(), q)
	if err != nil {
		status := http.StatusInternalServerError
		code := "report_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "llm_error"):
			status = http.StatusBadGateway
			code = "llm_error"
		case apperrors.IsCode(err, "mail_error"):
			status = http.StatusBadGateway
			code = "mail_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FetchReport resolves a signed access token to the stored HTML document.
func (h *Handler) FetchReport(c *gin.Context) {
	token := c.Param("token")
	html, err := h.reportSvc.Fetch(c.Request.Context(), token)
	if err != nil {
		status := http.StatusInternalServerError
		code := "report_failed"
		if apperrors.IsCode(err, "not_found") {
			status = http.StatusNotFound
			code = "not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func questionnairePayload(q report.Questionnaire) (map[string]any, error) {
	encoded, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
