package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/domain/models"
	"github.com/mamadbah2/sarpras/internal/service/report"
)

const queryDateLayout = "2006-01-02"

// ReportHandler exposes report downloads, the spreadsheet export, and the
// dashboard summary.
type ReportHandler struct {
	svc         *report.Service
	sheetsRange string
	logger      *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *report.Service, sheetsRange string, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, sheetsRange: sheetsRange, logger: logger}
}

// Download generates a report file from query parameters:
// ?type=all|active|disposed|procurement&format=csv|xlsx|pdf&from=...&to=...
// Warnings (e.g. a date range on a non-procurement report) come back in the
// X-Report-Warning header.
func (h *ReportHandler) Download(c *gin.Context) {
	req, err := parseReportRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := h.svc.Generate(c.Request.Context(), req)
	if errors.Is(err, report.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tidak ada data yang cocok dengan kriteria laporan"})
		return
	}
	if errors.Is(err, report.ErrUnknownFormat) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed generating report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	if len(file.Warnings) > 0 {
		c.Header("X-Report-Warning", strings.Join(file.Warnings, "; "))
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// ExportToSheet pushes the report into the configured Google Sheet.
func (h *ReportHandler) ExportToSheet(c *gin.Context) {
	req, err := parseReportRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	warnings, err := h.svc.ExportToSheet(c.Request.Context(), req, h.sheetsRange)
	if errors.Is(err, report.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tidak ada data yang cocok dengan kriteria laporan"})
		return
	}
	if err != nil {
		h.logger.Error("failed exporting report to sheet", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "exported", "warnings": warnings})
}

// Summary returns the dashboard headline numbers.
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("failed computing summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func parseReportRequest(c *gin.Context) (models.ReportRequest, error) {
	req := models.ReportRequest{
		Type:   models.ReportType(c.DefaultQuery("type", string(models.ReportAll))),
		Format: models.ReportFormat(c.DefaultQuery("format", string(models.FormatXLSX))),
	}

	switch req.Type {
	case models.ReportAll, models.ReportActive, models.ReportDisposed, models.ReportProcurement:
	default:
		return models.ReportRequest{}, fmt.Errorf("unknown report type %q", req.Type)
	}

	for _, q := range []struct {
		name string
		dst  **time.Time
	}{
		{"from", &req.From},
		{"to", &req.To},
	} {
		value := c.Query(q.name)
		if value == "" {
			continue
		}
		t, err := time.Parse(queryDateLayout, value)
		if err != nil {
			return models.ReportRequest{}, fmt.Errorf("%s must be formatted as %s", q.name, queryDateLayout)
		}
		*q.dst = &t
	}

	return req, nil
}
