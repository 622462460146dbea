// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/autowms/internal/api/handlers"
	"github.com/andresuchdata/autowms/internal/api/middleware"
	"github.com/andresuchdata/autowms/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	InventoryService     *service.InventoryService
	ReplenishmentService *service.ReplenishmentService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.InventoryService != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.InventoryService)
			apiGroup.POST("/scan", inventoryHandler.ApplyScan)
			binsGroup := apiGroup.Group("/bins")
			{
				binsGroup.GET("", inventoryHandler.ListBins)
				binsGroup.GET("/export", inventoryHandler.ExportBins)
			}
		}

		if services.ReplenishmentService != nil {
			replenishmentHandler := handlers.NewReplenishmentHandler(services.ReplenishmentService)
			replenishGroup := apiGroup.Group("/replenishment")
			{
				replenishGroup.GET("/recommendations", replenishmentHandler.GetRecommendations)
				replenishGroup.GET("/abc", replenishmentHandler.GetABCClassification)
			}

			draftGroup := apiGroup.Group("/draft")
			{
				draftGroup.POST("", replenishmentHandler.AddToDraft)
				draftGroup.PUT("", replenishmentHandler.UpdateDraft)
				draftGroup.GET("", replenishmentHandler.ListDraft)
				draftGroup.DELETE("", replenishmentHandler.ClearDraft)
				draftGroup.GET("/export", replenishmentHandler.ExportDraft)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
