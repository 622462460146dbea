package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/andresuchdata/autowms/internal/abc"
	"github.com/andresuchdata/autowms/internal/cache"
	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/andresuchdata/autowms/internal/draft"
	"github.com/andresuchdata/autowms/internal/export"
	"github.com/andresuchdata/autowms/internal/ledger"
	"github.com/andresuchdata/autowms/internal/replenish"
	"github.com/rs/zerolog/log"
)

// ReplenishmentService is the read path over the same ledger: it derives
// recommendations and ABC classes from snapshots and never mutates bins.
type ReplenishmentService struct {
	profiles   *replenish.ProfileStore
	ledger     *ledger.Ledger
	calculator *replenish.Calculator
	thresholds abc.Thresholds
	catalog    *domain.Catalog
	staging    *draft.Staging
	cache      cache.RecommendationCache
}

func NewReplenishmentService(
	profiles *replenish.ProfileStore,
	l *ledger.Ledger,
	calculator *replenish.Calculator,
	thresholds abc.Thresholds,
	catalog *domain.Catalog,
	staging *draft.Staging,
	cacheImpl cache.RecommendationCache,
) *ReplenishmentService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRecommendationCache()
	}
	return &ReplenishmentService{
		profiles:   profiles,
		ledger:     l,
		calculator: calculator,
		thresholds: thresholds,
		catalog:    catalog,
		staging:    staging,
		cache:      cacheImpl,
	}
}

// GetRecommendations computes recommendations for the requested SKUs, or
// for every profiled SKU when none are given. A SKU with an invalid demand
// profile is skipped with a warning; the others are unaffected.
func (s *ReplenishmentService) GetRecommendations(ctx context.Context, skus []string) ([]domain.Recommendation, error) {
	if recs, ok, err := s.cache.Get(ctx, skus); err == nil && ok {
		return recs, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("replenishment: cache get failed")
	}

	targets := skus
	if len(targets) == 0 {
		targets = s.profiles.SKUs()
	}

	recs := make([]domain.Recommendation, 0, len(targets))
	for _, sku := range targets {
		profile, ok := s.profiles.Get(sku)
		if !ok {
			log.Debug().Str("sku", sku).Msg("replenishment: no demand profile, skipping")
			continue
		}

		rec, err := s.calculator.Compute(sku, profile, s.ledger.OnHand(sku))
		if err != nil {
			if errors.Is(err, domain.ErrInvalidDemandProfile) {
				log.Warn().Err(err).Str("sku", sku).Msg("replenishment: recommendation omitted")
				continue
			}
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := s.cache.Set(ctx, skus, recs); err != nil {
		log.Warn().Err(err).Msg("replenishment: cache set failed")
	}

	return recs, nil
}

// GetABCClassification ranks every profiled SKU by annual consumption value.
func (s *ReplenishmentService) GetABCClassification() []domain.ABCBucket {
	skus := s.profiles.SKUs()
	items := make([]abc.Item, 0, len(skus))
	for _, sku := range skus {
		profile, ok := s.profiles.Get(sku)
		if !ok {
			continue
		}
		items = append(items, abc.Item{
			SKU:         sku,
			AnnualValue: replenish.AnnualValue(profile, s.catalog.Lookup(sku)),
		})
	}

	return abc.Classify(items, s.thresholds)
}

// AddToDraft stages one draft order line; repeated adds for a SKU keep the
// first staged values.
func (s *ReplenishmentService) AddToDraft(sku string, qty int, vendor string, eta time.Time) error {
	return s.staging.AddLine(sku, qty, vendor, eta)
}

// UpdateDraft explicitly replaces a staged line.
func (s *ReplenishmentService) UpdateDraft(sku string, qty int, vendor string, eta time.Time) error {
	return s.staging.UpdateLine(sku, qty, vendor, eta)
}

// ListDraft returns staged lines in insertion order.
func (s *ReplenishmentService) ListDraft() []domain.DraftOrderLine {
	return s.staging.List()
}

// ClearDraft empties the staging list.
func (s *ReplenishmentService) ClearDraft() {
	s.staging.Clear()
}

// ExportDraft writes the staged lines as CSV.
func (s *ReplenishmentService) ExportDraft(w io.Writer) error {
	return export.WriteDraftCSV(w, s.staging.List(), s.catalog)
}
