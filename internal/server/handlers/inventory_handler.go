package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/domain/models"
	"github.com/mamadbah2/sarpras/internal/repository/mongodb"
	"github.com/mamadbah2/sarpras/internal/service/inventory"
)

// InventoryHandler exposes the record CRUD surface and the live stream.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

// List returns the full record set.
func (h *InventoryHandler) List(c *gin.Context) {
	recs, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load records"})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// Get returns one record by id.
func (h *InventoryHandler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, mongodb.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load record"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Create validates and stores a new record.
func (h *InventoryHandler) Create(c *gin.Context) {
	var rec models.InventoryRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), rec)
	if h.handleMutationError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update replaces an existing record in full.
func (h *InventoryHandler) Update(c *gin.Context) {
	var rec models.InventoryRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), rec)
	if h.handleMutationError(c, err) {
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes one record.
func (h *InventoryHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, mongodb.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete record"})
		return
	}
	c.Status(http.StatusNoContent)
}

// BatchDelete removes the selected records in one store operation.
func (h *InventoryHandler) BatchDelete(c *gin.Context) {
	var req struct {
		RecordIDs []string `json:"recordIds" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.DeleteBatch(c.Request.Context(), req.RecordIDs); err != nil {
		h.logger.Error("failed batch deleting records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": len(req.RecordIDs)})
}

// Stream pushes the full record set to the client as server-sent events:
// once on connect, then again after every store change.
func (h *InventoryHandler) Stream(c *gin.Context) {
	ch, err := h.svc.Subscribe(c.Request.Context())
	if err != nil {
		h.logger.Error("failed opening record stream", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open stream"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		recs, ok := <-ch
		if !ok {
			return false
		}
		c.SSEvent("inventory", recs)
		return true
	})
}

// handleMutationError maps service errors from create/update onto HTTP
// responses. Validation failures carry the full field-error list.
func (h *InventoryHandler) handleMutationError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs inventory.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verrs})
		return true
	}
	if errors.Is(err, mongodb.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return true
	}

	h.logger.Error("failed saving record", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save record"})
	return true
}
