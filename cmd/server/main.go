// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/autowms/internal/abc"
	"github.com/andresuchdata/autowms/internal/allocation"
	"github.com/andresuchdata/autowms/internal/api"
	"github.com/andresuchdata/autowms/internal/cache"
	"github.com/andresuchdata/autowms/internal/config"
	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/andresuchdata/autowms/internal/draft"
	"github.com/andresuchdata/autowms/internal/ledger"
	"github.com/andresuchdata/autowms/internal/replenish"
	"github.com/andresuchdata/autowms/internal/repository"
	"github.com/andresuchdata/autowms/internal/repository/postgres"
	"github.com/andresuchdata/autowms/internal/seed"
	"github.com/andresuchdata/autowms/internal/service"
	"github.com/andresuchdata/autowms/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Build the ledger from seed data
	bins, err := seed.LoadBinsFile(cfg.Seed.BinsCSV)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load bin seed")
	}
	binLedger := ledger.New()
	if err := binLedger.Seed(bins); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to seed ledger")
	}

	profilesData, err := seed.LoadDemandProfilesFile(cfg.Seed.DemandCSV)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load demand seed")
	}
	profiles := replenish.NewProfileStore()
	profiles.Load(profilesData)

	catalogData, err := seed.LoadCatalogFile(cfg.Seed.CatalogCSV)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load catalog seed")
	}
	catalog := domain.NewCatalog(catalogData)

	logger.Log.Info().
		Int("bins", len(bins)).
		Int("profiles", len(profilesData)).
		Int("catalog_skus", len(catalogData)).
		Msg("Seed data loaded")

	// Initialize the scan journal
	journal := repository.NewNoopScanJournal()
	if cfg.Database.JournalEnabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		journalRepo, err := postgres.NewScanJournalRepository(db)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize scan journal")
		}
		journal = journalRepo
	}

	// Initialize the recommendation cache
	recCache, err := cache.NewRecommendationCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize recommendation cache")
	}

	// Initialize services
	engine := allocation.NewEngine(binLedger, cfg.Policy.DefaultBinCapacity)
	calculator := replenish.NewCalculator(domain.CostPolicy{
		OrderingCost:       cfg.Policy.OrderingCost,
		HoldingCostPerUnit: cfg.Policy.HoldingCostPerUnit,
	}, cfg.Policy.ServiceLevelZ)
	thresholds := abc.Thresholds{
		ClassA: cfg.Policy.ABCClassAThreshold,
		ClassB: cfg.Policy.ABCClassBThreshold,
	}

	services := &api.Services{
		InventoryService:     service.NewInventoryService(binLedger, engine, catalog, journal, recCache),
		ReplenishmentService: service.NewReplenishmentService(profiles, binLedger, calculator, thresholds, catalog, draft.NewStaging(), recCache),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
