package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/andresuchdata/autowms/internal/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type scanRequest struct {
	Command string `json:"command" binding:"required"`
}

// ApplyScan executes one scan command against the ledger. Shortfall and
// clamped putaway come back as a 200 with the applied amounts; only the
// error taxonomy maps to error statuses.
func (h *InventoryHandler) ApplyScan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "command is required"})
		return
	}

	result, err := h.service.ApplyScan(c.Request.Context(), req.Command)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrMalformedCommand), errors.Is(err, domain.ErrInvalidQuantity):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrBinNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) parseFilter(c *gin.Context) domain.BinFilter {
	return domain.BinFilter{
		Zone: strings.TrimSpace(c.Query("zone")),
		SKU:  strings.TrimSpace(c.Query("sku")),
	}
}

// ListBins returns the bin snapshot, optionally filtered by zone and sku.
func (h *InventoryHandler) ListBins(c *gin.Context) {
	bins := h.service.ListBins(h.parseFilter(c))

	c.JSON(http.StatusOK, gin.H{
		"bins":  bins,
		"total": len(bins),
	})
}

// ExportBins streams the bin listing as CSV.
func (h *InventoryHandler) ExportBins(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="bins.csv"`)

	if err := h.service.ExportBins(c.Writer, h.parseFilter(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export bins", "details": err.Error()})
	}
}
