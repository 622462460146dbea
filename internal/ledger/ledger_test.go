package ledger

import (
	"sync"
	"testing"

	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(zone string, aisle, level, pos int) domain.BinKey {
	return domain.BinKey{Zone: zone, Aisle: aisle, Level: level, Position: pos}
}

func TestUpsertBin_RejectsInvalidCapacity(t *testing.T) {
	l := New()

	testCases := []struct {
		name string
		rec  domain.BinRecord
	}{
		{"zero capacity", domain.BinRecord{Key: key("A", 1, 1, 1), SKU: "X", Capacity: 0}},
		{"negative capacity", domain.BinRecord{Key: key("A", 1, 1, 1), SKU: "X", Capacity: -5}},
		{"quantity above capacity", domain.BinRecord{Key: key("A", 1, 1, 1), SKU: "X", Quantity: 11, Capacity: 10}},
		{"negative quantity", domain.BinRecord{Key: key("A", 1, 1, 1), SKU: "X", Quantity: -1, Capacity: 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := l.UpsertBin(tc.rec)
			require.ErrorIs(t, err, domain.ErrInvalidCapacity)
		})
	}

	assert.Empty(t, l.List(domain.BinFilter{}))
}

func TestUpsertBin_ReplacesByKey(t *testing.T) {
	l := New()
	k := key("A", 1, 1, 1)

	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: k, SKU: "X", Quantity: 5, Capacity: 10}))
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: k, SKU: "Y", Quantity: 7, Capacity: 20}))

	rec, err := l.Get(k)
	require.NoError(t, err)
	assert.Equal(t, "Y", rec.SKU)
	assert.Equal(t, 7, rec.Quantity)
	assert.Len(t, l.List(domain.BinFilter{}), 1)
}

func TestFindBinsBySKU_Ordering(t *testing.T) {
	l := New()
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("B", 1, 1, 1), SKU: "X", Quantity: 40, Capacity: 150}))
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("A", 2, 1, 1), SKU: "X", Quantity: 100, Capacity: 150}))
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("A", 1, 1, 1), SKU: "X", Quantity: 40, Capacity: 150}))
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("A", 3, 1, 1), SKU: "Y", Quantity: 99, Capacity: 150}))

	bins := l.FindBinsBySKU("X")
	require.Len(t, bins, 3)

	// Descending by quantity, ties broken by key ascending
	assert.Equal(t, key("A", 2, 1, 1), bins[0].Key)
	assert.Equal(t, key("A", 1, 1, 1), bins[1].Key)
	assert.Equal(t, key("B", 1, 1, 1), bins[2].Key)
}

func TestAdjustQuantity_ClampsAndReportsApplied(t *testing.T) {
	l := New()
	k := key("A", 1, 1, 1)
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: k, SKU: "X", Quantity: 90, Capacity: 100}))

	applied, err := l.AdjustQuantity(k, 25)
	require.NoError(t, err)
	assert.Equal(t, 10, applied, "overage beyond capacity must be clamped")

	applied, err = l.AdjustQuantity(k, -150)
	require.NoError(t, err)
	assert.Equal(t, -100, applied, "cannot take more than on hand")

	rec, err := l.Get(k)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Quantity)
}

func TestAdjustQuantity_UnknownBin(t *testing.T) {
	l := New()
	_, err := l.AdjustQuantity(key("Z", 1, 1, 1), 5)
	require.ErrorIs(t, err, domain.ErrBinNotFound)
}

func TestOnHand_SumsAcrossBins(t *testing.T) {
	l := New()
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("A", 1, 1, 1), SKU: "X", Quantity: 30, Capacity: 100}))
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("A", 1, 1, 2), SKU: "X", Quantity: 20, Capacity: 100}))
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("A", 1, 1, 3), SKU: "Y", Quantity: 99, Capacity: 100}))

	assert.Equal(t, 50, l.OnHand("X"))
	assert.Equal(t, 99, l.OnHand("Y"))
	assert.Equal(t, 0, l.OnHand("Z"))
}

func TestCreateBin_NextFreeTriple(t *testing.T) {
	l := New()
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("A", 1, 1, 1), SKU: "X", Quantity: 1, Capacity: 10}))
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("A", 1, 1, 2), SKU: "X", Quantity: 1, Capacity: 10}))

	rec, err := l.CreateBin("A", "Y", 1500)
	require.NoError(t, err)
	assert.Equal(t, key("A", 1, 1, 3), rec.Key)
	assert.Equal(t, 0, rec.Quantity)
	assert.Equal(t, 1500, rec.Capacity)
	assert.Equal(t, "Y", rec.SKU)

	// A fresh zone starts at the first triple
	rec, err = l.CreateBin("B", "Y", 1500)
	require.NoError(t, err)
	assert.Equal(t, key("B", 1, 1, 1), rec.Key)
	assert.Equal(t, "B-01-1-01", rec.Key.String())
}

func TestCreateBin_RejectsBadCapacity(t *testing.T) {
	l := New()
	_, err := l.CreateBin("A", "X", 0)
	require.ErrorIs(t, err, domain.ErrInvalidCapacity)
}

func TestList_FiltersAndOrders(t *testing.T) {
	l := New()
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("B", 1, 1, 1), SKU: "X", Quantity: 1, Capacity: 10}))
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("A", 2, 1, 1), SKU: "Y", Quantity: 1, Capacity: 10}))
	require.NoError(t, l.UpsertBin(domain.BinRecord{Key: key("A", 1, 1, 1), SKU: "X", Quantity: 1, Capacity: 10}))

	all := l.List(domain.BinFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, key("A", 1, 1, 1), all[0].Key)
	assert.Equal(t, key("A", 2, 1, 1), all[1].Key)
	assert.Equal(t, key("B", 1, 1, 1), all[2].Key)

	zoneA := l.List(domain.BinFilter{Zone: "A"})
	assert.Len(t, zoneA, 2)

	skuX := l.List(domain.BinFilter{SKU: "X"})
	assert.Len(t, skuX, 2)
}

// Hammer the same SKU from many goroutines and verify conservation and the
// capacity invariant: total on hand must equal seeded + applied puts -
// applied picks, and no bin may ever leave [0, capacity].
func TestAdjustQuantity_ConcurrentConservation(t *testing.T) {
	l := New()
	keys := []domain.BinKey{key("A", 1, 1, 1), key("A", 1, 1, 2), key("A", 1, 1, 3)}
	for _, k := range keys {
		require.NoError(t, l.UpsertBin(domain.BinRecord{Key: k, SKU: "X", Quantity: 500, Capacity: 1000}))
	}
	seeded := l.OnHand("X")

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		netApplied int
	)
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		delta := 7
		if worker%2 == 0 {
			delta = -11
		}
		go func(delta int) {
			defer wg.Done()
			local := 0
			for i := 0; i < 200; i++ {
				k := keys[i%len(keys)]
				applied, err := l.AdjustQuantity(k, delta)
				if err != nil {
					continue
				}
				local += applied
			}
			mu.Lock()
			netApplied += local
			mu.Unlock()
		}(delta)
	}
	wg.Wait()

	assert.Equal(t, seeded+netApplied, l.OnHand("X"))
	for _, rec := range l.List(domain.BinFilter{}) {
		assert.GreaterOrEqual(t, rec.Quantity, 0)
		assert.LessOrEqual(t, rec.Quantity, rec.Capacity)
	}
}
