// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BinRecord represents a single storage bin in the warehouse
type BinRecord struct {
	Key       BinKey          `json:"key"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	Capacity  int             `json:"capacity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Value returns the monetary value held in the bin (quantity x unit price).
func (b BinRecord) Value() decimal.Decimal {
	return b.UnitPrice.Mul(decimal.NewFromInt(int64(b.Quantity)))
}

// SpareCapacity returns how many more units the bin can take.
func (b BinRecord) SpareCapacity() int {
	return b.Capacity - b.Quantity
}

// SKUInfo is immutable reference data for a stock keeping unit.
// It is owned externally and read-only to the engine.
type SKUInfo struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UoM       string          `json:"uom"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// DemandProfile holds per-SKU demand statistics supplied by an external
// forecasting collaborator. The engine only consumes it.
type DemandProfile struct {
	SKU           string  `json:"sku"`
	DailyDemand   float64 `json:"daily_demand"`
	LeadTimeDays  int     `json:"lead_time_days"`
	DemandStdDev  float64 `json:"demand_std_dev"`
	ServiceLevelZ float64 `json:"service_level_z"`
}

// Recommendation is the replenishment output for one SKU
type Recommendation struct {
	SKU            string `json:"sku"`
	SafetyStock    int    `json:"safety_stock"`
	ReorderPoint   int    `json:"reorder_point"`
	EOQ            int    `json:"eoq"`
	OnHand         int    `json:"on_hand"`
	Need           int    `json:"need"`
	RecommendedQty int    `json:"recommended_qty"`
}

// ABCBucket is one row of the ABC value ranking
type ABCBucket struct {
	SKU           string          `json:"sku"`
	AnnualValue   decimal.Decimal `json:"annual_value"`
	CumulativePct float64         `json:"cumulative_pct"`
	Class         string          `json:"class"`
}

// DraftOrderLine is a staged purchase-order line, at most one per SKU
type DraftOrderLine struct {
	SKU      string    `json:"sku"`
	Quantity int       `json:"quantity"`
	Vendor   string    `json:"vendor"`
	ETA      time.Time `json:"eta"`
}

// BinAllocation records how much of a scan was applied to one bin
type BinAllocation struct {
	Bin     BinKey `json:"bin"`
	Applied int    `json:"applied"`
}

// ScanResult reports the outcome of an applied scan command.
// Shortfall and capacity clamping are normal outcomes, not errors.
type ScanResult struct {
	Command     string          `json:"command"`
	Verb        string          `json:"verb"`
	SKU         string          `json:"sku"`
	Requested   int             `json:"requested"`
	Fulfilled   int             `json:"fulfilled"`
	Shortfall   int             `json:"shortfall"`
	Allocations []BinAllocation `json:"allocations"`
}

// BinFilter narrows bin listings; zero values mean "no filter"
type BinFilter struct {
	Zone string `json:"zone"`
	SKU  string `json:"sku"`
}

// Matches reports whether the bin passes the filter.
func (f BinFilter) Matches(b BinRecord) bool {
	if f.Zone != "" && b.Key.Zone != f.Zone {
		return false
	}
	if f.SKU != "" && b.SKU != f.SKU {
		return false
	}
	return true
}

// CostPolicy supplies ordering and holding costs for the EOQ formula,
// with optional per-SKU overrides on top of the configured defaults.
type CostPolicy struct {
	OrderingCost       float64
	HoldingCostPerUnit float64
	Overrides          map[string]CostOverride
}

// CostOverride replaces the default costs for a single SKU
type CostOverride struct {
	OrderingCost       float64
	HoldingCostPerUnit float64
}

// CostsFor resolves the effective costs for a SKU.
func (p CostPolicy) CostsFor(sku string) (orderingCost, holdingCost float64) {
	if o, ok := p.Overrides[sku]; ok {
		return o.OrderingCost, o.HoldingCostPerUnit
	}
	return p.OrderingCost, p.HoldingCostPerUnit
}
