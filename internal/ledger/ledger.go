// internal/ledger/ledger.go
package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/andresuchdata/autowms/internal/domain"
)

// Zone allocation bounds for CreateBin. A zone holds at most
// maxAisle*maxLevel*maxPosition bins before provisioning fails.
const (
	maxAisle    = 99
	maxLevel    = 9
	maxPosition = 99
)

// Ledger is the authoritative in-memory bin table. It is the only owner of
// bin mutation: quantity changes go through AdjustQuantity exclusively, so
// the capacity invariant 0 <= quantity <= capacity holds at all times.
//
// Each bin carries its own mutex, so concurrent adjustments to different
// bins do not contend. Multi-bin operations (a pick walking several bins)
// serialize per SKU via WithSKU; single-bin adjustments never hold more
// than one bin lock, so there is no lock ordering to violate.
type Ledger struct {
	mu       sync.RWMutex
	bins     map[domain.BinKey]*bin
	skuLocks map[string]*sync.Mutex
}

type bin struct {
	mu  sync.Mutex
	rec domain.BinRecord
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		bins:     make(map[domain.BinKey]*bin),
		skuLocks: make(map[string]*sync.Mutex),
	}
}

// UpsertBin inserts or replaces a bin by key. Seed data with a non-positive
// capacity or a quantity above capacity is rejected with ErrInvalidCapacity.
func (l *Ledger) UpsertBin(rec domain.BinRecord) error {
	if rec.Capacity <= 0 {
		return fmt.Errorf("%w: bin %s capacity %d", domain.ErrInvalidCapacity, rec.Key, rec.Capacity)
	}
	if rec.Quantity < 0 || rec.Quantity > rec.Capacity {
		return fmt.Errorf("%w: bin %s quantity %d outside [0, %d]", domain.ErrInvalidCapacity, rec.Key, rec.Quantity, rec.Capacity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.bins[rec.Key]; ok {
		existing.mu.Lock()
		existing.rec = rec
		existing.mu.Unlock()
		return nil
	}

	l.bins[rec.Key] = &bin{rec: rec}
	return nil
}

// Seed loads an initial bin set, stopping at the first invalid record.
func (l *Ledger) Seed(records []domain.BinRecord) error {
	for _, rec := range records {
		if err := l.UpsertBin(rec); err != nil {
			return err
		}
	}
	return nil
}

// FindBinsBySKU returns a point-in-time snapshot of all bins currently
// holding the SKU, descending by quantity with ties broken by bin key
// ascending. The snapshot may go stale under concurrent writes; callers
// re-check via AdjustQuantity's applied amount.
func (l *Ledger) FindBinsBySKU(sku string) []domain.BinRecord {
	l.mu.RLock()
	records := make([]domain.BinRecord, 0)
	for _, b := range l.bins {
		b.mu.Lock()
		rec := b.rec
		b.mu.Unlock()
		if rec.SKU == sku {
			records = append(records, rec)
		}
	}
	l.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if records[i].Quantity != records[j].Quantity {
			return records[i].Quantity > records[j].Quantity
		}
		return records[i].Key.Less(records[j].Key)
	})

	return records
}

// AdjustQuantity atomically changes a bin's quantity by delta, clamped to
// [0, capacity]. It returns the signed delta actually applied, which may be
// smaller in magnitude than requested when the clamp engages. This is the
// sole quantity mutation primitive.
func (l *Ledger) AdjustQuantity(key domain.BinKey, delta int) (int, error) {
	l.mu.RLock()
	b, ok := l.bins[key]
	l.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrBinNotFound, key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.rec.Quantity + delta
	if next < 0 {
		next = 0
	}
	if next > b.rec.Capacity {
		next = b.rec.Capacity
	}

	applied := next - b.rec.Quantity
	b.rec.Quantity = next
	return applied, nil
}

// OnHand sums quantities across all bins holding the SKU.
func (l *Ledger) OnHand(sku string) int {
	total := 0
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, b := range l.bins {
		b.mu.Lock()
		if b.rec.SKU == sku {
			total += b.rec.Quantity
		}
		b.mu.Unlock()
	}
	return total
}

// Get returns a snapshot of one bin.
func (l *Ledger) Get(key domain.BinKey) (domain.BinRecord, error) {
	l.mu.RLock()
	b, ok := l.bins[key]
	l.mu.RUnlock()
	if !ok {
		return domain.BinRecord{}, fmt.Errorf("%w: %s", domain.ErrBinNotFound, key)
	}

	b.mu.Lock()
	rec := b.rec
	b.mu.Unlock()
	return rec, nil
}

// CreateBin allocates a new empty bin for the SKU in the given zone, at the
// lowest aisle/level/position triple not already in use. Bin codes are never
// reused within a run, which keeps provisioning deterministic.
func (l *Ledger) CreateBin(zone, sku string, defaultCapacity int) (domain.BinRecord, error) {
	if defaultCapacity <= 0 {
		return domain.BinRecord{}, fmt.Errorf("%w: default capacity %d", domain.ErrInvalidCapacity, defaultCapacity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key, ok := l.nextFreeKeyLocked(zone)
	if !ok {
		return domain.BinRecord{}, fmt.Errorf("zone %s has no free bin positions", zone)
	}

	rec := domain.BinRecord{
		Key:      key,
		SKU:      sku,
		Quantity: 0,
		Capacity: defaultCapacity,
	}
	l.bins[key] = &bin{rec: rec}
	return rec, nil
}

func (l *Ledger) nextFreeKeyLocked(zone string) (domain.BinKey, bool) {
	used := make(map[[3]int]bool)
	for key := range l.bins {
		if key.Zone == zone {
			used[[3]int{key.Aisle, key.Level, key.Position}] = true
		}
	}

	for aisle := 1; aisle <= maxAisle; aisle++ {
		for level := 1; level <= maxLevel; level++ {
			for pos := 1; pos <= maxPosition; pos++ {
				if !used[[3]int{aisle, level, pos}] {
					return domain.BinKey{Zone: zone, Aisle: aisle, Level: level, Position: pos}, true
				}
			}
		}
	}
	return domain.BinKey{}, false
}

// List returns a snapshot of all bins passing the filter, ascending by key.
func (l *Ledger) List(filter domain.BinFilter) []domain.BinRecord {
	l.mu.RLock()
	records := make([]domain.BinRecord, 0, len(l.bins))
	for _, b := range l.bins {
		b.mu.Lock()
		rec := b.rec
		b.mu.Unlock()
		if filter.Matches(rec) {
			records = append(records, rec)
		}
	}
	l.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].Key.Less(records[j].Key)
	})
	return records
}

// WithSKU runs fn while holding the SKU's ordering lock. Multi-bin
// operations on the same SKU serialize here, which rules out deadlock
// between concurrent picks competing for the same bin set.
func (l *Ledger) WithSKU(sku string, fn func()) {
	l.mu.Lock()
	lock, ok := l.skuLocks[sku]
	if !ok {
		lock = &sync.Mutex{}
		l.skuLocks[sku] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	fn()
}
