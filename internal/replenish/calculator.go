// internal/replenish/calculator.go
package replenish

import (
	"fmt"
	"math"

	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/shopspring/decimal"
)

const daysPerYear = 365

// Calculator computes replenishment recommendations. It is a pure function
// over a demand profile and an on-hand snapshot; it never mutates the ledger.
type Calculator struct {
	costs    domain.CostPolicy
	defaultZ float64
}

// NewCalculator creates a calculator with the given cost policy. defaultZ is
// the service-level z-score used when a profile does not carry its own.
func NewCalculator(costs domain.CostPolicy, defaultZ float64) *Calculator {
	return &Calculator{costs: costs, defaultZ: defaultZ}
}

// Compute derives safety stock, reorder point, EOQ and the recommended
// order quantity for one SKU. Rounding is to the nearest whole unit and
// negative intermediates are clamped to zero before use.
func (c *Calculator) Compute(sku string, profile domain.DemandProfile, onHand int) (domain.Recommendation, error) {
	if profile.LeadTimeDays <= 0 {
		return domain.Recommendation{}, fmt.Errorf("%w: sku %s lead time %d days", domain.ErrInvalidDemandProfile, sku, profile.LeadTimeDays)
	}

	z := profile.ServiceLevelZ
	if z == 0 {
		z = c.defaultZ
	}

	dailyDemand := math.Max(0, profile.DailyDemand)
	stdDev := math.Max(0, profile.DemandStdDev)
	leadTime := float64(profile.LeadTimeDays)

	rec := domain.Recommendation{SKU: sku, OnHand: onHand}

	// 1. Safety stock = z * sigma * sqrt(lead time)
	rec.SafetyStock = int(math.Round(math.Max(0, z*stdDev*math.Sqrt(leadTime))))

	// 2. Reorder point = daily demand * lead time + safety stock
	rec.ReorderPoint = int(math.Round(math.Max(0, dailyDemand*leadTime+float64(rec.SafetyStock))))

	// 3. EOQ = sqrt(2 * annual demand * ordering cost / holding cost)
	orderingCost, holdingCost := c.costs.CostsFor(sku)
	annualDemand := dailyDemand * daysPerYear
	if holdingCost > 0 {
		rec.EOQ = int(math.Round(math.Sqrt(2 * annualDemand * orderingCost / holdingCost)))
	}

	// 4. Need = how far on-hand sits below the reorder point
	if need := rec.ReorderPoint - onHand; need > 0 {
		rec.Need = need
	}

	// 5. Recommended quantity: order at least the EOQ once below the
	// reorder point, nothing otherwise
	if rec.Need > 0 {
		rec.RecommendedQty = rec.EOQ
		if rec.Need > rec.RecommendedQty {
			rec.RecommendedQty = rec.Need
		}
	}

	return rec, nil
}

// AnnualValue returns the annual consumption value of a SKU (annual demand
// x unit price), the ranking input for ABC classification.
func AnnualValue(profile domain.DemandProfile, info domain.SKUInfo) decimal.Decimal {
	dailyDemand := math.Max(0, profile.DailyDemand)
	return decimal.NewFromFloat(dailyDemand * daysPerYear).Mul(info.UnitPrice)
}
