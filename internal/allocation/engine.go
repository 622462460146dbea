// internal/allocation/engine.go
package allocation

import (
	"fmt"
	"sort"

	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/andresuchdata/autowms/internal/ledger"
)

// DefaultProvisionZone is where putaway auto-provisions a bin when no
// existing bin can receive the SKU.
const DefaultProvisionZone = "R"

// Engine applies parsed scan commands against the bin ledger. It never
// writes bin quantities directly; every mutation goes through the ledger's
// AdjustQuantity primitive, so the capacity invariant is enforced in one
// place.
type Engine struct {
	ledger             *ledger.Ledger
	defaultBinCapacity int
	provisionZone      string
}

// NewEngine creates an allocation engine over the ledger. defaultBinCapacity
// is used when putaway has to provision a new bin.
func NewEngine(l *ledger.Ledger, defaultBinCapacity int) *Engine {
	return &Engine{
		ledger:             l,
		defaultBinCapacity: defaultBinCapacity,
		provisionZone:      DefaultProvisionZone,
	}
}

// Apply parses and executes one scan command. Partial fulfillment (pick
// shortfall, capacity-clamped putaway) is a normal outcome reported in the
// result, not an error.
func (e *Engine) Apply(command string) (domain.ScanResult, error) {
	scan, err := Parse(command)
	if err != nil {
		return domain.ScanResult{}, err
	}

	if scan.Qty <= 0 {
		return domain.ScanResult{}, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, scan.Qty)
	}

	result := domain.ScanResult{
		Command:   command,
		Verb:      scan.Verb,
		SKU:       scan.SKU,
		Requested: scan.Qty,
	}

	switch scan.Verb {
	case VerbPick:
		e.pick(scan, &result)
	case VerbPut:
		if err := e.put(scan, &result); err != nil {
			return domain.ScanResult{}, err
		}
	}

	result.Shortfall = result.Requested - result.Fulfilled
	return result, nil
}

// pick drains fuller bins first, which empties partially-filled bins as
// fast as possible and keeps fragmentation down. The bin snapshot may be
// stale under concurrency; the applied amount returned by AdjustQuantity
// is what actually came out of each bin.
func (e *Engine) pick(scan Scan, result *domain.ScanResult) {
	e.ledger.WithSKU(scan.SKU, func() {
		remaining := scan.Qty
		for _, rec := range e.ledger.FindBinsBySKU(scan.SKU) {
			if remaining == 0 {
				break
			}

			take := rec.Quantity
			if take > remaining {
				take = remaining
			}
			if take == 0 {
				continue
			}

			applied, err := e.ledger.AdjustQuantity(rec.Key, -take)
			if err != nil {
				continue
			}

			got := -applied
			if got == 0 {
				continue
			}
			remaining -= got
			result.Fulfilled += got
			result.Allocations = append(result.Allocations, domain.BinAllocation{Bin: rec.Key, Applied: got})
		}
	})
}

func (e *Engine) put(scan Scan, result *domain.ScanResult) error {
	if scan.TargetBin != nil {
		// Explicit target: the bin must exist; overage beyond capacity is
		// clamped and surfaces as shortfall in the result.
		if _, err := e.ledger.Get(*scan.TargetBin); err != nil {
			return err
		}

		applied, err := e.ledger.AdjustQuantity(*scan.TargetBin, scan.Qty)
		if err != nil {
			return err
		}
		result.Fulfilled = applied
		result.Allocations = append(result.Allocations, domain.BinAllocation{Bin: *scan.TargetBin, Applied: applied})
		return nil
	}

	var outer error
	e.ledger.WithSKU(scan.SKU, func() {
		target, ok := e.firstBinWithSpace(scan.SKU)
		if !ok {
			created, err := e.ledger.CreateBin(e.provisionZone, scan.SKU, e.defaultBinCapacity)
			if err != nil {
				outer = err
				return
			}
			target = created.Key
		}

		applied, err := e.ledger.AdjustQuantity(target, scan.Qty)
		if err != nil {
			outer = err
			return
		}
		result.Fulfilled = applied
		result.Allocations = append(result.Allocations, domain.BinAllocation{Bin: target, Applied: applied})
	})
	return outer
}

// firstBinWithSpace returns the first bin by key order that already holds
// the SKU and has spare capacity.
func (e *Engine) firstBinWithSpace(sku string) (domain.BinKey, bool) {
	bins := e.ledger.FindBinsBySKU(sku)
	sort.Slice(bins, func(i, j int) bool {
		return bins[i].Key.Less(bins[j].Key)
	})

	for _, rec := range bins {
		if rec.SpareCapacity() > 0 {
			return rec.Key, true
		}
	}
	return domain.BinKey{}, false
}
