package service

import (
	"context"
	"io"

	"github.com/andresuchdata/autowms/internal/allocation"
	"github.com/andresuchdata/autowms/internal/cache"
	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/andresuchdata/autowms/internal/export"
	"github.com/andresuchdata/autowms/internal/ledger"
	"github.com/andresuchdata/autowms/internal/repository"
	"github.com/rs/zerolog/log"
)

// InventoryService is the write path of the engine: scans come in here and
// everything downstream (journal, caches) reacts to applied results.
type InventoryService struct {
	ledger  *ledger.Ledger
	engine  *allocation.Engine
	catalog *domain.Catalog
	journal repository.ScanJournal
	cache   cache.RecommendationCache
}

func NewInventoryService(l *ledger.Ledger, engine *allocation.Engine, catalog *domain.Catalog, journal repository.ScanJournal, cacheImpl cache.RecommendationCache) *InventoryService {
	if journal == nil {
		journal = repository.NewNoopScanJournal()
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRecommendationCache()
	}
	return &InventoryService{
		ledger:  l,
		engine:  engine,
		catalog: catalog,
		journal: journal,
		cache:   cacheImpl,
	}
}

// ApplyScan executes one scan command. Journal and cache failures are
// logged, not propagated: the ledger mutation already happened and the
// result must reach the caller.
func (s *InventoryService) ApplyScan(ctx context.Context, command string) (domain.ScanResult, error) {
	result, err := s.engine.Apply(command)
	if err != nil {
		return domain.ScanResult{}, err
	}

	if err := s.journal.Append(ctx, result); err != nil {
		log.Warn().Err(err).Str("command", command).Msg("scan: journal append failed")
	}

	if result.Fulfilled > 0 {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("scan: recommendation cache invalidation failed")
		}
	}

	if result.Shortfall > 0 {
		log.Info().
			Str("sku", result.SKU).
			Str("verb", result.Verb).
			Int("requested", result.Requested).
			Int("fulfilled", result.Fulfilled).
			Int("shortfall", result.Shortfall).
			Msg("scan applied with shortfall")
	}

	return result, nil
}

// ListBins returns a bin snapshot ordered by bin key.
func (s *InventoryService) ListBins(filter domain.BinFilter) []domain.BinRecord {
	return s.ledger.List(filter)
}

// ExportBins writes the filtered bin listing as CSV.
func (s *InventoryService) ExportBins(w io.Writer, filter domain.BinFilter) error {
	return export.WriteBinCSV(w, s.ledger.List(filter), s.catalog)
}
