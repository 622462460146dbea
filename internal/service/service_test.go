package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/autowms/internal/abc"
	"github.com/andresuchdata/autowms/internal/allocation"
	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/andresuchdata/autowms/internal/draft"
	"github.com/andresuchdata/autowms/internal/ledger"
	"github.com/andresuchdata/autowms/internal/replenish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	hits        []domain.Recommendation
	hit         bool
	getErr      error
	setCalls    int
	invalidated int
}

func (f *fakeCache) Get(ctx context.Context, skus []string) ([]domain.Recommendation, bool, error) {
	return f.hits, f.hit, f.getErr
}

func (f *fakeCache) Set(ctx context.Context, skus []string, recs []domain.Recommendation) error {
	f.setCalls++
	return nil
}

func (f *fakeCache) InvalidateAll(ctx context.Context) error {
	f.invalidated++
	return nil
}

type fakeJournal struct {
	entries []domain.ScanResult
	err     error
}

func (f *fakeJournal) Append(ctx context.Context, result domain.ScanResult) error {
	f.entries = append(f.entries, result)
	return f.err
}

func seededLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	require.NoError(t, l.UpsertBin(domain.BinRecord{
		Key:      domain.BinKey{Zone: "A", Aisle: 1, Level: 1, Position: 1},
		SKU:      "X",
		Quantity: 100,
		Capacity: 150,
	}))
	return l
}

func TestApplyScan_JournalsAndInvalidatesCache(t *testing.T) {
	l := seededLedger(t)
	cacheImpl := &fakeCache{}
	journal := &fakeJournal{}
	svc := NewInventoryService(l, allocation.NewEngine(l, 1500), domain.NewCatalog(nil), journal, cacheImpl)

	result, err := svc.ApplyScan(context.Background(), "PICK:X:30")
	require.NoError(t, err)
	assert.Equal(t, 30, result.Fulfilled)

	require.Len(t, journal.entries, 1)
	assert.Equal(t, "PICK:X:30", journal.entries[0].Command)
	assert.Equal(t, 1, cacheImpl.invalidated)
}

func TestApplyScan_NoInvalidationWithoutAppliedStock(t *testing.T) {
	l := seededLedger(t)
	cacheImpl := &fakeCache{}
	svc := NewInventoryService(l, allocation.NewEngine(l, 1500), domain.NewCatalog(nil), &fakeJournal{}, cacheImpl)

	// Full shortfall: nothing applied, cached recommendations stay valid
	result, err := svc.ApplyScan(context.Background(), "PICK:MISSING:10")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Fulfilled)
	assert.Zero(t, cacheImpl.invalidated)
}

func TestApplyScan_MalformedDoesNotReachJournal(t *testing.T) {
	l := seededLedger(t)
	journal := &fakeJournal{}
	svc := NewInventoryService(l, allocation.NewEngine(l, 1500), domain.NewCatalog(nil), journal, &fakeCache{})

	_, err := svc.ApplyScan(context.Background(), "MOVE:X:10")
	require.ErrorIs(t, err, domain.ErrMalformedCommand)
	assert.Empty(t, journal.entries)
}

func TestApplyScan_JournalFailureIsNotFatal(t *testing.T) {
	l := seededLedger(t)
	journal := &fakeJournal{err: errors.New("db down")}
	svc := NewInventoryService(l, allocation.NewEngine(l, 1500), domain.NewCatalog(nil), journal, &fakeCache{})

	result, err := svc.ApplyScan(context.Background(), "PICK:X:10")
	require.NoError(t, err)
	assert.Equal(t, 10, result.Fulfilled)
}

func newReplenishmentService(t *testing.T, l *ledger.Ledger, cacheImpl *fakeCache) *ReplenishmentService {
	t.Helper()
	profiles := replenish.NewProfileStore()
	profiles.Load([]domain.DemandProfile{
		{SKU: "X", DailyDemand: 50, LeadTimeDays: 10, DemandStdDev: 10},
		{SKU: "BROKEN", DailyDemand: 5, LeadTimeDays: 0},
	})

	calculator := replenish.NewCalculator(domain.CostPolicy{OrderingCost: 50, HoldingCostPerUnit: 2}, 1.65)
	return NewReplenishmentService(profiles, l, calculator, abc.DefaultThresholds, domain.NewCatalog(nil), draft.NewStaging(), cacheImpl)
}

func TestGetRecommendations_SkipsInvalidProfile(t *testing.T) {
	cacheImpl := &fakeCache{}
	svc := newReplenishmentService(t, seededLedger(t), cacheImpl)

	recs, err := svc.GetRecommendations(context.Background(), nil)
	require.NoError(t, err)

	// BROKEN has a zero lead time and is omitted, X survives
	require.Len(t, recs, 1)
	assert.Equal(t, "X", recs[0].SKU)
	assert.Equal(t, 100, recs[0].OnHand)
	assert.Equal(t, 1, cacheImpl.setCalls)
}

func TestGetRecommendations_UnknownSKUSkipped(t *testing.T) {
	svc := newReplenishmentService(t, seededLedger(t), &fakeCache{})

	recs, err := svc.GetRecommendations(context.Background(), []string{"X", "NO-PROFILE"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "X", recs[0].SKU)
}

func TestGetRecommendations_CacheHitShortCircuits(t *testing.T) {
	cached := []domain.Recommendation{{SKU: "CACHED", RecommendedQty: 42}}
	cacheImpl := &fakeCache{hits: cached, hit: true}
	svc := newReplenishmentService(t, seededLedger(t), cacheImpl)

	recs, err := svc.GetRecommendations(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, cached, recs)
	assert.Zero(t, cacheImpl.setCalls)
}

func TestGetRecommendations_CacheErrorFallsThrough(t *testing.T) {
	cacheImpl := &fakeCache{getErr: errors.New("redis down")}
	svc := newReplenishmentService(t, seededLedger(t), cacheImpl)

	recs, err := svc.GetRecommendations(context.Background(), []string{"X"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "X", recs[0].SKU)
}

func TestGetABCClassification(t *testing.T) {
	svc := newReplenishmentService(t, seededLedger(t), &fakeCache{})

	buckets := svc.GetABCClassification()
	require.Len(t, buckets, 2)
	// no catalog prices means zero annual value for everything
	for _, bucket := range buckets {
		assert.Equal(t, "C", bucket.Class)
	}
}

func TestDraftFlow(t *testing.T) {
	svc := newReplenishmentService(t, seededLedger(t), &fakeCache{})
	eta := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.AddToDraft("X", 955, "Acme", eta))
	require.NoError(t, svc.AddToDraft("X", 1, "Other", eta))

	lines := svc.ListDraft()
	require.Len(t, lines, 1)
	assert.Equal(t, 955, lines[0].Quantity)

	require.NoError(t, svc.UpdateDraft("X", 500, "Acme", eta))
	assert.Equal(t, 500, svc.ListDraft()[0].Quantity)

	var sb strings.Builder
	require.NoError(t, svc.ExportDraft(&sb))
	assert.Contains(t, sb.String(), "X,,500,Acme,2026-09-15")

	svc.ClearDraft()
	assert.Empty(t, svc.ListDraft())
}
