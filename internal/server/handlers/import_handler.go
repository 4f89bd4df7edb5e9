package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/service/importer"
	"github.com/mamadbah2/sarpras/pkg/clients/webhook"
)

// ImportHandler accepts spreadsheet uploads for bulk record ingestion.
type ImportHandler struct {
	svc      *importer.Service
	notifier *webhook.Client
	logger   *zap.Logger
}

// NewImportHandler constructs the HTTP handler adapter. notifier may be nil.
func NewImportHandler(svc *importer.Service, notifier *webhook.Client, logger *zap.Logger) *ImportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportHandler{svc: svc, notifier: notifier, logger: logger}
}

// Import ingests the uploaded file. Row failures come back in the summary;
// only a file that cannot be parsed at all fails the request.
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed opening upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open uploaded file"})
		return
	}
	defer file.Close()

	summary, err := h.svc.Import(c.Request.Context(), file, fileHeader.Filename)
	if errors.Is(err, importer.ErrUnreadableFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file tidak dapat dibaca sebagai spreadsheet"})
		return
	}
	if err != nil {
		h.logger.Error("import failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to import records"})
		return
	}

	if h.notifier != nil {
		if err := h.notifier.Notify(c.Request.Context(), webhook.EventImportCompleted, summary); err != nil {
			h.logger.Warn("failed notifying import completion", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, summary)
}
