package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/autowms/internal/service"
	"github.com/gin-gonic/gin"
)

type ReplenishmentHandler struct {
	service *service.ReplenishmentService
}

func NewReplenishmentHandler(service *service.ReplenishmentService) *ReplenishmentHandler {
	return &ReplenishmentHandler{service: service}
}

// GetRecommendations computes recommendations for the requested SKUs
// (?skus=A,B,C) or for every profiled SKU when the parameter is absent.
func (h *ReplenishmentHandler) GetRecommendations(c *gin.Context) {
	var skus []string
	if raw := strings.TrimSpace(c.Query("skus")); raw != "" {
		for _, sku := range strings.Split(raw, ",") {
			if sku = strings.TrimSpace(sku); sku != "" {
				skus = append(skus, sku)
			}
		}
	}

	recs, err := h.service.GetRecommendations(c.Request.Context(), skus)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute recommendations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"total":           len(recs),
	})
}

// GetABCClassification returns the value-ranked SKU buckets.
func (h *ReplenishmentHandler) GetABCClassification(c *gin.Context) {
	buckets := h.service.GetABCClassification()

	c.JSON(http.StatusOK, gin.H{
		"buckets": buckets,
		"total":   len(buckets),
	})
}

type draftLineRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity"`
	Vendor   string `json:"vendor"`
	ETA      string `json:"eta"`
}

func (r draftLineRequest) eta() (time.Time, error) {
	if strings.TrimSpace(r.ETA) == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", r.ETA)
}

// AddToDraft stages a draft order line. Adding an already-staged SKU is a
// no-op: the first staged values win.
func (h *ReplenishmentHandler) AddToDraft(c *gin.Context) {
	var req draftLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku is required"})
		return
	}

	eta, err := req.eta()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eta must be YYYY-MM-DD"})
		return
	}

	if err := h.service.AddToDraft(req.SKU, req.Quantity, req.Vendor, eta); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lines": h.service.ListDraft()})
}

// UpdateDraft explicitly replaces a staged line.
func (h *ReplenishmentHandler) UpdateDraft(c *gin.Context) {
	var req draftLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku is required"})
		return
	}

	eta, err := req.eta()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eta must be YYYY-MM-DD"})
		return
	}

	if err := h.service.UpdateDraft(req.SKU, req.Quantity, req.Vendor, eta); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lines": h.service.ListDraft()})
}

// ListDraft returns staged lines in insertion order.
func (h *ReplenishmentHandler) ListDraft(c *gin.Context) {
	lines := h.service.ListDraft()

	c.JSON(http.StatusOK, gin.H{
		"lines": lines,
		"total": len(lines),
	})
}

// ClearDraft empties the staging list.
func (h *ReplenishmentHandler) ClearDraft(c *gin.Context) {
	h.service.ClearDraft()
	c.JSON(http.StatusOK, gin.H{"lines": []any{}})
}

// ExportDraft streams the staged lines as CSV.
func (h *ReplenishmentHandler) ExportDraft(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="draft_order.csv"`)

	if err := h.service.ExportDraft(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export draft", "details": err.Error()})
	}
}
